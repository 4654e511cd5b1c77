package sqlite

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// migrate runs all pending schema migrations against db.
func migrate(db *sql.DB) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite"); err != nil {
		return fmt.Errorf("set migration dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// schemaVersion reports the applied migration version.
func schemaVersion(db *sql.DB) (int64, error) {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("sqlite"); err != nil {
		return 0, fmt.Errorf("set migration dialect: %w", err)
	}
	return goose.GetDBVersion(db)
}

// SchemaVersion reports the migration version of the attached database.
func (b *Backend) SchemaVersion() (int64, error) {
	var v int64
	err := b.withDB(func(db *sql.DB) error {
		var err error
		v, err = schemaVersion(db)
		return err
	})
	return v, err
}
