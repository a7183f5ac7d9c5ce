package db

import (
	"embed"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"

	"github.com/tobyns/heliograph/models"

	_ "modernc.org/sqlite"
)

type SqliteStore struct {
	DB *sqlx.DB
}

func NewSqliteStore(dsn string) (*SqliteStore, error) {
	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	return &SqliteStore{
		DB: db,
	}, nil
}

func (s *SqliteStore) ApplyMigrations(migrations embed.FS) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect(string(goose.DialectSQLite3)); err != nil {
		return err
	}

	if err := goose.Up(s.DB.DB, "."); err != nil {
		return err
	}

	return nil
}

// GetSetting returns the stored value for id, or "" when nothing has ever
// been saved. Callers fall back to their documented defaults.
func (s *SqliteStore) GetSetting(id string) string {
	setting := models.Setting{}
	err := s.DB.Get(&setting, "SELECT id, value FROM settings WHERE id = ?", id)
	if err != nil {
		return ""
	}
	return setting.Value
}

func (s *SqliteStore) UpsertSetting(id, value string) error {
	query := `
	INSERT INTO settings (id, value)
	VALUES (?, ?)
	ON CONFLICT (id) DO UPDATE SET
	value = excluded.value
	WHERE id = ?
	`
	_, err := s.DB.Exec(query, id, value, id)
	return err
}
