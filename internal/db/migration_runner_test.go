package db

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

func TestRunMigrations(t *testing.T) {
	migrationsSrc, err := findMigrationsDir()
	if err != nil {
		t.Skipf("Could not find migration files: %v", err)
	}

	tmpDir := t.TempDir()
	migrationsDst := filepath.Join(tmpDir, "migrations")
	if err := copyMigrationFiles(migrationsSrc, migrationsDst); err != nil {
		t.Skipf("Could not copy migration files: %v", err)
	}

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}

	if err := RunMigrationsWithDir(db, migrationsDst); err != nil {
		t.Fatalf("RunMigrations failed: %v", err)
	}

	for _, table := range []string{"players", "items", "matches"} {
		var count int
		query := `SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`
		if err := db.QueryRow(query, table).Scan(&count); err != nil {
			t.Errorf("Failed to query for table %s: %v", table, err)
			continue
		}
		if count != 1 {
			t.Errorf("Table %s was not created", table)
		}
	}

	// The items migration also seeds the shop catalog.
	var items int
	if err := db.QueryRow(`SELECT COUNT(*) FROM items`).Scan(&items); err != nil {
		t.Fatalf("Failed to count items: %v", err)
	}
	if items == 0 {
		t.Error("Item catalog was not seeded")
	}

	if err := RollbackWithDir(db, migrationsDst); err != nil {
		t.Fatalf("Rollback failed: %v", err)
	}
}

func findMigrationsDir() (string, error) {
	dir := "migrations"
	if _, err := os.Stat(dir); err == nil {
		return dir, nil
	}
	dir = filepath.Join("..", "..", "migrations")
	if _, err := os.Stat(dir); err == nil {
		return dir, nil
	}
	return "", os.ErrNotExist
}

func copyMigrationFiles(srcDir, dstDir string) error {
	if err := os.MkdirAll(dstDir, 0755); err != nil {
		return err
	}
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".sql" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(srcDir, entry.Name()))
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(dstDir, entry.Name()), data, 0644); err != nil {
			return err
		}
	}
	return nil
}

// TestMigratedSchemaStoreRoundTrip drives the player store against the
// schema produced by the goose migrations rather than the test helper's
// inline copy, so any drift between the two surfaces here.
func TestMigratedSchemaStoreRoundTrip(t *testing.T) {
	migrationsSrc, err := findMigrationsDir()
	if err != nil {
		t.Skipf("Could not find migration files: %v", err)
	}

	tmpDir := t.TempDir()
	migrationsDst := filepath.Join(tmpDir, "migrations")
	if err := copyMigrationFiles(migrationsSrc, migrationsDst); err != nil {
		t.Skipf("Could not copy migration files: %v", err)
	}

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}

	if err := RunMigrationsWithDir(db, migrationsDst); err != nil {
		t.Fatalf("RunMigrations failed: %v", err)
	}

	ctx := context.Background()
	store := NewPlayerStore(db)

	player := &Player{PlayerID: "migrated-1", PlayerName: "Voyager"}
	if err := store.Create(ctx, player); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	created, err := store.Get(ctx, "migrated-1")
	if err != nil {
		t.Fatalf("Get after Create failed: %v", err)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("Expected the migrated column defaults to populate timestamps")
	}

	update := FieldUpdate{"currency.coin": int64(75)}
	if err := store.UpdateFields(ctx, "migrated-1", update); err != nil {
		t.Fatalf("UpdateFields failed: %v", err)
	}

	updated, err := store.Get(ctx, "migrated-1")
	if err != nil {
		t.Fatalf("Get after UpdateFields failed: %v", err)
	}
	if updated.Coin != 75 {
		t.Errorf("Expected coin 75, got %d", updated.Coin)
	}
	if updated.UpdatedAt.IsZero() {
		t.Error("Expected updated_at to survive the update")
	}
}
