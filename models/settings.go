package models

// Setting is a single persisted key/value pair. Config blobs are stored as
// JSON under a stable id per module.
type Setting struct {
	ID    string `db:"id"`
	Value string `db:"value"`
}
