package config

import (
	"os"
	"testing"
	"time"
)

func clearConfigEnv() {
	os.Unsetenv("DB_PATH")
	os.Unsetenv("DB_MAX_OPEN_CONNS")
	os.Unsetenv("DB_MAX_IDLE_CONNS")
	os.Unsetenv("DB_CONN_MAX_LIFETIME")
	os.Unsetenv("DB_CONN_MAX_IDLE_TIME")
	os.Unsetenv("DB_MIGRATIONS_PATH")
	os.Unsetenv("SERVER_HOST")
	os.Unsetenv("SERVER_PORT")
	os.Unsetenv("SERVER_CORS_ALLOW_ORIGINS")
	os.Unsetenv("SERVER_RATE_LIMIT_MAX")
	os.Unsetenv("SERVER_RATE_LIMIT_DURATION")
	os.Unsetenv("GAME_MAX_PLAYERS_PER_MATCH")
	os.Unsetenv("GAME_MIN_SEARCH_LENGTH")
}

func TestLoadConfigDefaults(t *testing.T) {
	clearConfigEnv()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	// Check defaults
	if cfg.Database.Path != "./data.db" {
		t.Errorf("Default DB_PATH mismatch: got %s", cfg.Database.Path)
	}
	if cfg.Database.MaxOpenConns != 5 {
		t.Errorf("Default DB_MAX_OPEN_CONNS mismatch: got %d", cfg.Database.MaxOpenConns)
	}
	if cfg.Database.MaxIdleConns != 2 {
		t.Errorf("Default DB_MAX_IDLE_CONNS mismatch: got %d", cfg.Database.MaxIdleConns)
	}
	if cfg.Database.ConnMaxLifetime != 5*time.Minute {
		t.Errorf("Default DB_CONN_MAX_LIFETIME mismatch: got %v", cfg.Database.ConnMaxLifetime)
	}
	if cfg.Database.MigrationsPath != "./migrations" {
		t.Errorf("Default DB_MIGRATIONS_PATH mismatch: got %s", cfg.Database.MigrationsPath)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Default SERVER_HOST mismatch: got %s", cfg.Server.Host)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Default SERVER_PORT mismatch: got %d", cfg.Server.Port)
	}
	if cfg.Server.CORSAllowOrigins != "*" {
		t.Errorf("Default SERVER_CORS_ALLOW_ORIGINS mismatch: got %s", cfg.Server.CORSAllowOrigins)
	}
	if cfg.Server.RateLimitMax != 100 {
		t.Errorf("Default SERVER_RATE_LIMIT_MAX mismatch: got %d", cfg.Server.RateLimitMax)
	}
	if cfg.Game.MaxPlayersPerMatch != 8 {
		t.Errorf("Default GAME_MAX_PLAYERS_PER_MATCH mismatch: got %d", cfg.Game.MaxPlayersPerMatch)
	}
	if cfg.Game.MinSearchLength != 4 {
		t.Errorf("Default GAME_MIN_SEARCH_LENGTH mismatch: got %d", cfg.Game.MinSearchLength)
	}
}

func TestLoadConfigEnvironmentOverride(t *testing.T) {
	clearConfigEnv()
	t.Setenv("DB_PATH", "/custom/path.db")
	t.Setenv("DB_MAX_OPEN_CONNS", "10")
	t.Setenv("SERVER_HOST", "127.0.0.1")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_RATE_LIMIT_MAX", "250")
	t.Setenv("GAME_MAX_PLAYERS_PER_MATCH", "12")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Database.Path != "/custom/path.db" {
		t.Errorf("DB_PATH override mismatch: got %s", cfg.Database.Path)
	}
	if cfg.Database.MaxOpenConns != 10 {
		t.Errorf("DB_MAX_OPEN_CONNS override mismatch: got %d", cfg.Database.MaxOpenConns)
	}
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("SERVER_HOST override mismatch: got %s", cfg.Server.Host)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("SERVER_PORT override mismatch: got %d", cfg.Server.Port)
	}
	if cfg.Server.RateLimitMax != 250 {
		t.Errorf("SERVER_RATE_LIMIT_MAX override mismatch: got %d", cfg.Server.RateLimitMax)
	}
	if cfg.Game.MaxPlayersPerMatch != 12 {
		t.Errorf("GAME_MAX_PLAYERS_PER_MATCH override mismatch: got %d", cfg.Game.MaxPlayersPerMatch)
	}
}

func TestLoadConfigInvalidGameSettings(t *testing.T) {
	clearConfigEnv()
	t.Setenv("GAME_MAX_PLAYERS_PER_MATCH", "0")

	_, err := LoadConfig()
	if err == nil {
		t.Fatal("Expected error for non-positive GAME_MAX_PLAYERS_PER_MATCH")
	}
}
