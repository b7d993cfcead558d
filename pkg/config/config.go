package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Game     GameConfig
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	MigrationsPath  string
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host              string
	Port              int
	CORSAllowOrigins  string
	RateLimitMax      int
	RateLimitDuration time.Duration
}

// GameConfig holds gameplay tuning values used by the services.
type GameConfig struct {
	MaxPlayersPerMatch int
	MinSearchLength    int
}

// LoadConfig loads configuration from environment variables and defaults.
// Environment variables should be uppercase with underscores, e.g., DB_PATH.
// Uses viper for automatic env binding.
func LoadConfig() (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Bind environment variables
	bindEnv(v)

	// Read environment variables
	v.AutomaticEnv()

	// Validate settings
	if err := validate(v); err != nil {
		return nil, err
	}

	// Build config struct
	cfg := &Config{
		Database: DatabaseConfig{
			Path:            v.GetString("db_path"),
			MaxOpenConns:    v.GetInt("db_max_open_conns"),
			MaxIdleConns:    v.GetInt("db_max_idle_conns"),
			ConnMaxLifetime: v.GetDuration("db_conn_max_lifetime"),
			ConnMaxIdleTime: v.GetDuration("db_conn_max_idle_time"),
			MigrationsPath:  v.GetString("db_migrations_path"),
		},
		Server: ServerConfig{
			Host:              v.GetString("server_host"),
			Port:              v.GetInt("server_port"),
			CORSAllowOrigins:  v.GetString("server_cors_allow_origins"),
			RateLimitMax:      v.GetInt("server_rate_limit_max"),
			RateLimitDuration: v.GetDuration("server_rate_limit_duration"),
		},
		Game: GameConfig{
			MaxPlayersPerMatch: v.GetInt("game_max_players_per_match"),
			MinSearchLength:    v.GetInt("game_min_search_length"),
		},
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Database defaults
	v.SetDefault("db_path", "./data.db")
	v.SetDefault("db_max_open_conns", 5)
	v.SetDefault("db_max_idle_conns", 2)
	v.SetDefault("db_conn_max_lifetime", 5*time.Minute)
	v.SetDefault("db_conn_max_idle_time", 2*time.Minute)
	v.SetDefault("db_migrations_path", "./migrations")

	// Server defaults
	v.SetDefault("server_host", "0.0.0.0")
	v.SetDefault("server_port", 8080)
	v.SetDefault("server_cors_allow_origins", "*")
	v.SetDefault("server_rate_limit_max", 100)
	v.SetDefault("server_rate_limit_duration", time.Minute)

	// Game defaults
	v.SetDefault("game_max_players_per_match", 8)
	v.SetDefault("game_min_search_length", 4)
}

func bindEnv(v *viper.Viper) {
	// Database
	_ = v.BindEnv("db_path", "DB_PATH")
	_ = v.BindEnv("db_max_open_conns", "DB_MAX_OPEN_CONNS")
	_ = v.BindEnv("db_max_idle_conns", "DB_MAX_IDLE_CONNS")
	_ = v.BindEnv("db_conn_max_lifetime", "DB_CONN_MAX_LIFETIME")
	_ = v.BindEnv("db_conn_max_idle_time", "DB_CONN_MAX_IDLE_TIME")
	_ = v.BindEnv("db_migrations_path", "DB_MIGRATIONS_PATH")

	// Server
	_ = v.BindEnv("server_host", "SERVER_HOST")
	_ = v.BindEnv("server_port", "SERVER_PORT")
	_ = v.BindEnv("server_cors_allow_origins", "SERVER_CORS_ALLOW_ORIGINS")
	_ = v.BindEnv("server_rate_limit_max", "SERVER_RATE_LIMIT_MAX")
	_ = v.BindEnv("server_rate_limit_duration", "SERVER_RATE_LIMIT_DURATION")

	// Game
	_ = v.BindEnv("game_max_players_per_match", "GAME_MAX_PLAYERS_PER_MATCH")
	_ = v.BindEnv("game_min_search_length", "GAME_MIN_SEARCH_LENGTH")
}

func validate(v *viper.Viper) error {
	if v.GetInt("game_max_players_per_match") <= 0 {
		return fmt.Errorf("GAME_MAX_PLAYERS_PER_MATCH must be positive")
	}
	if v.GetInt("game_min_search_length") <= 0 {
		return fmt.Errorf("GAME_MIN_SEARCH_LENGTH must be positive")
	}
	return nil
}
