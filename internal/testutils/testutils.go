package testutils

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/Namnipitpon/ScrapDown-dev-api/internal/db"
	"github.com/Namnipitpon/ScrapDown-dev-api/pkg/config"
)

func GetTestConfig() config.Config {
	return config.Config{
		Database: config.DatabaseConfig{
			Path:           ":memory:",
			MigrationsPath: "./migrations",
		},
		Server: config.ServerConfig{
			Host:              "localhost",
			Port:              8080,
			CORSAllowOrigins:  "*",
			RateLimitMax:      100,
			RateLimitDuration: time.Minute,
		},
		Game: config.GameConfig{
			MaxPlayersPerMatch: 8,
			MinSearchLength:    4,
		},
	}
}

func SetupTestDB(t *testing.T) *sql.DB {
	dbConn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	// Enable foreign keys
	if _, err := dbConn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}
	createTables(t, dbConn)
	return dbConn
}

// createTables mirrors the goose files under migrations/ (minus the item
// catalog seed). Any schema change there must be copied here so the
// suite exercises the schema the server runs.
func createTables(t *testing.T, dbConn *sql.DB) {
	tables := []string{
		`CREATE TABLE players (
            player_id TEXT PRIMARY KEY,
            player_name TEXT NOT NULL,
            player_name_lower TEXT NOT NULL UNIQUE,
            title TEXT NOT NULL DEFAULT '',
            pilot_active TEXT NOT NULL DEFAULT '',
            spaceship_active TEXT NOT NULL DEFAULT '',
            battle_pass INTEGER NOT NULL DEFAULT 0,
            exp INTEGER NOT NULL DEFAULT 0,
            coin INTEGER NOT NULL DEFAULT 0,
            diamond INTEGER NOT NULL DEFAULT 0,
            inventory_pilot TEXT NOT NULL DEFAULT '[]',
            inventory_spaceship TEXT NOT NULL DEFAULT '[]',
            achievements TEXT NOT NULL DEFAULT '[]',
            friend_list TEXT NOT NULL DEFAULT '[]',
            request_list TEXT NOT NULL DEFAULT '[]',
            block_list TEXT NOT NULL DEFAULT '[]',
            play_stats TEXT NOT NULL DEFAULT '{}',
            created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now')),
            updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
        );`,
		`CREATE TABLE items (
            item_id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            item_type TEXT NOT NULL CHECK (item_type IN ('pilot', 'spaceship', 'coin_pack')),
            price_coin INTEGER NOT NULL DEFAULT 0,
            price_diamond INTEGER NOT NULL DEFAULT 0,
            coin_amount INTEGER NOT NULL DEFAULT 0
        );`,
		`CREATE TABLE matches (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            player_id TEXT NOT NULL REFERENCES players(player_id) ON DELETE CASCADE,
            match_code TEXT NOT NULL,
            match_type TEXT NOT NULL CHECK (match_type IN ('CustomRoom', 'MatchMaking')),
            mode TEXT NOT NULL DEFAULT 'deathMatch',
            ranking INTEGER NOT NULL,
            kills INTEGER NOT NULL DEFAULT 0,
            deaths INTEGER NOT NULL DEFAULT 0,
            play_time INTEGER NOT NULL DEFAULT 0,
            current_player INTEGER NOT NULL,
            score INTEGER NOT NULL,
            created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now')),
            UNIQUE (player_id, match_code)
        );`,
		`CREATE INDEX idx_players_name_lower ON players(player_name_lower);`,
		`CREATE INDEX idx_matches_player ON matches(player_id);`,
	}

	for _, stmt := range tables {
		if _, err := dbConn.Exec(stmt); err != nil {
			t.Fatalf("Failed to execute SQL: %v\nSQL: %s", err, stmt)
		}
	}
}

// CreateTestPlayer inserts a player through the store and returns its id.
func CreateTestPlayer(t *testing.T, dbConn *sql.DB, playerName string) string {
	store := db.NewPlayerStore(dbConn)
	player := &db.Player{
		PlayerID:   uuid.NewString(),
		PlayerName: playerName,
	}
	if err := store.Create(context.Background(), player); err != nil {
		t.Fatalf("Failed to create player: %v", err)
	}
	return player.PlayerID
}

// CreateTestItem inserts one shop catalog row.
func CreateTestItem(t *testing.T, dbConn *sql.DB, itemID, itemType string, priceCoin, priceDiamond, coinAmount int64) {
	_, err := dbConn.Exec(
		`INSERT INTO items (item_id, name, item_type, price_coin, price_diamond, coin_amount)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		itemID, itemID, itemType, priceCoin, priceDiamond, coinAmount)
	if err != nil {
		t.Fatalf("Failed to insert item: %v", err)
	}
}
