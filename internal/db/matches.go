package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Namnipitpon/ScrapDown-dev-api/internal/db/types"
)

// ErrMatchAlreadyRecorded is returned when a (player, match code) pair
// has already been recorded. Match results are idempotent per code.
var ErrMatchAlreadyRecorded = errors.New("match already recorded")

// MatchRecord is one recorded death-match result for one player.
type MatchRecord struct {
	ID            int64
	PlayerID      string
	MatchCode     string
	MatchType     string
	Mode          string
	Ranking       int64
	Kills         int64
	Deaths        int64
	PlayTime      int64
	CurrentPlayer int64
	Score         int64
	CreatedAt     types.Timestamp
}

// MatchStore records per-player match results.
type MatchStore interface {
	Record(ctx context.Context, rec *MatchRecord) error
	ListByPlayer(ctx context.Context, playerID string, limit int) ([]*MatchRecord, error)
}

type sqliteMatchStore struct {
	db *sql.DB
}

// NewMatchStore returns a MatchStore backed by the given database.
func NewMatchStore(db *sql.DB) MatchStore {
	return &sqliteMatchStore{db: db}
}

func (s *sqliteMatchStore) Record(ctx context.Context, rec *MatchRecord) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO matches (player_id, match_code, match_type, mode, ranking, kills, deaths, play_time, current_player, score)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.PlayerID, rec.MatchCode, rec.MatchType, rec.Mode, rec.Ranking,
		rec.Kills, rec.Deaths, rec.PlayTime, rec.CurrentPlayer, rec.Score)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrMatchAlreadyRecorded
		}
		return fmt.Errorf("record match: %w", err)
	}
	rec.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("record match: %w", err)
	}
	return nil
}

func (s *sqliteMatchStore) ListByPlayer(ctx context.Context, playerID string, limit int) ([]*MatchRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, player_id, match_code, match_type, mode, ranking, kills, deaths, play_time, current_player, score, created_at
		FROM matches WHERE player_id = ? ORDER BY id DESC LIMIT ?`,
		playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	defer rows.Close()
	var records []*MatchRecord
	for rows.Next() {
		var rec MatchRecord
		if err := rows.Scan(&rec.ID, &rec.PlayerID, &rec.MatchCode, &rec.MatchType, &rec.Mode,
			&rec.Ranking, &rec.Kills, &rec.Deaths, &rec.PlayTime,
			&rec.CurrentPlayer, &rec.Score, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return records, nil
}
