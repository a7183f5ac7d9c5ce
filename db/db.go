package db

import "embed"

// Store persists user configuration between sessions. It sits entirely
// outside the hot path: configs are loaded once at boot and written back
// when the UI changes something.
type Store interface {
	ApplyMigrations(migrations embed.FS) error
	GetSetting(id string) string
	UpsertSetting(id, value string) error
}
