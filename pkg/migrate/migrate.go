package migrate

import (
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

// Up применяет все миграции из fsys к базе PostgreSQL
func Up(db *sql.DB, fsys fs.FS) error {
	goose.SetBaseFS(fsys)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("migrate: set dialect: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("migrate: up: %w", err)
	}

	return nil
}

// Version возвращает текущую версию схемы
func Version(db *sql.DB, fsys fs.FS) (int64, error) {
	goose.SetBaseFS(fsys)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return 0, fmt.Errorf("migrate: set dialect: %w", err)
	}

	return goose.GetDBVersion(db)
}
