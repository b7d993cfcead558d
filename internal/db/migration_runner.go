package db

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

func setupGoose() error {
	goose.SetBaseFS(nil)
	goose.SetLogger(log.New(os.Stdout, "[migrations] ", log.LstdFlags))
	if err := goose.SetDialect("sqlite"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	return nil
}

// RunMigrations runs all pending migrations on the database using the
// migrations directory located relative to the current working directory.
func RunMigrations(db *sql.DB) error {
	migrationDir, err := getMigrationDir()
	if err != nil {
		return fmt.Errorf("failed to get migration directory: %w", err)
	}
	return RunMigrationsWithDir(db, migrationDir)
}

// RunMigrationsWithDir runs all pending migrations from the specified directory.
func RunMigrationsWithDir(db *sql.DB, migrationDir string) error {
	if err := setupGoose(); err != nil {
		return err
	}
	if err := goose.Up(db, migrationDir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Rollback rolls back the latest migration.
func Rollback(db *sql.DB) error {
	migrationDir, err := getMigrationDir()
	if err != nil {
		return fmt.Errorf("failed to get migration directory: %w", err)
	}
	return RollbackWithDir(db, migrationDir)
}

// RollbackWithDir rolls back the latest migration from the specified directory.
func RollbackWithDir(db *sql.DB, migrationDir string) error {
	if err := setupGoose(); err != nil {
		return err
	}
	if err := goose.Down(db, migrationDir); err != nil {
		return fmt.Errorf("failed to rollback migration: %w", err)
	}
	return nil
}

// Status prints the migration status.
func Status(db *sql.DB) error {
	migrationDir, err := getMigrationDir()
	if err != nil {
		return fmt.Errorf("failed to get migration directory: %w", err)
	}
	return StatusWithDir(db, migrationDir)
}

// StatusWithDir prints the migration status from the specified directory.
func StatusWithDir(db *sql.DB, migrationDir string) error {
	if err := setupGoose(); err != nil {
		return err
	}
	return goose.Status(db, migrationDir)
}

func getMigrationDir() (string, error) {
	for _, dir := range []string{
		filepath.Join(".", "migrations"),
		filepath.Join("..", "migrations"),
		"migrations",
	} {
		if _, err := os.Stat(dir); err == nil {
			return dir, nil
		}
	}
	return "", fmt.Errorf("migration directory not found (looked in ./migrations, ../migrations, migrations)")
}
