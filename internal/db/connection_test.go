package db

import (
	"testing"
	"time"

	"github.com/Namnipitpon/ScrapDown-dev-api/pkg/config"
)

func TestOpenDB(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory failed: %v", err)
	}
	defer db.Close()

	var fkEnabled int
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&fkEnabled); err != nil {
		t.Errorf("Failed to query foreign_keys pragma: %v", err)
	}
	if fkEnabled != 1 {
		t.Errorf("Foreign keys not enabled, got %d", fkEnabled)
	}

	var journalMode string
	if err := db.QueryRow("PRAGMA journal_mode").Scan(&journalMode); err != nil {
		t.Errorf("Failed to query journal_mode pragma: %v", err)
	}
	if journalMode != "wal" && journalMode != "WAL" {
		// Some SQLite builds do not support WAL for in-memory databases.
		t.Logf("journal_mode is %q (expected wal or WAL)", journalMode)
	}

	if maxOpen := db.Stats().MaxOpenConnections; maxOpen != defaultMaxOpenConns {
		t.Errorf("MaxOpenConnections = %d, want %d", maxOpen, defaultMaxOpenConns)
	}
}

func TestOpenDBFile(t *testing.T) {
	tmpFile := t.TempDir() + "/test.db"
	db, err := OpenDB(config.DatabaseConfig{Path: tmpFile, MaxOpenConns: 1})
	if err != nil {
		t.Fatalf("OpenDB failed: %v", err)
	}
	defer db.Close()

	var result int
	if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
		t.Errorf("Failed to execute query: %v", err)
	}
	if result != 1 {
		t.Errorf("Expected 1, got %d", result)
	}
	if maxOpen := db.Stats().MaxOpenConnections; maxOpen != 1 {
		t.Errorf("MaxOpenConnections = %d, want 1", maxOpen)
	}
}

func TestPoolReuse(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory failed: %v", err)
	}
	defer db.Close()

	const numQueries = 10
	errCh := make(chan error, numQueries)
	for i := 0; i < numQueries; i++ {
		go func(val int) {
			var result int
			if err := db.QueryRow("SELECT ?", val).Scan(&result); err != nil {
				errCh <- err
				return
			}
			errCh <- nil
		}(i)
	}

	for i := 0; i < numQueries; i++ {
		select {
		case err := <-errCh:
			if err != nil {
				t.Errorf("Query failed: %v", err)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("Timeout waiting for query results")
		}
	}
}
