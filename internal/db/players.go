package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Namnipitpon/ScrapDown-dev-api/internal/db/types"
)

// Sentinel errors for the player store.
var (
	ErrPlayerNotFound = errors.New("player not found")
	ErrNameTaken      = errors.New("player name already taken")
	ErrUnknownField   = errors.New("unknown field path")
)

// Relationships holds the three relationship sets of a player document.
// Each set is an ordered list of player IDs with no duplicates; ordering
// is insertion order and is preserved across writes.
type Relationships struct {
	Friends  types.StringList `json:"friend"`
	Requests types.StringList `json:"request"`
	Blocked  types.StringList `json:"block"`
}

// Inventory holds the unlockable items a player owns, keyed by category.
type Inventory struct {
	Pilots     types.StringList `json:"pilot"`
	Spaceships types.StringList `json:"spaceship"`
}

// DeathMatchStats accumulates per-mode play statistics for a player.
// It is stored as a JSON object in a TEXT column.
type DeathMatchStats struct {
	Matches  int64 `json:"matches"`
	Wins     int64 `json:"win"`
	Kills    int64 `json:"kills"`
	Deaths   int64 `json:"deaths"`
	PlayTime int64 `json:"playTime"`
}

// Scan implements sql.Scanner for DeathMatchStats.
func (s *DeathMatchStats) Scan(value interface{}) error {
	if value == nil {
		*s = DeathMatchStats{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("cannot scan %T into DeathMatchStats", value)
	}
	if len(data) == 0 {
		*s = DeathMatchStats{}
		return nil
	}
	return json.Unmarshal(data, s)
}

// Value implements driver.Valuer for DeathMatchStats.
func (s DeathMatchStats) Value() (driver.Value, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Player is one player document. It maps 1:1 to a row in the players
// table; list- and object-valued fields are stored as JSON TEXT columns.
type Player struct {
	PlayerID        string
	PlayerName      string
	Title           string
	PilotActive     string
	SpaceshipActive string
	BattlePass      bool
	Exp             int64
	Coin            int64
	Diamond         int64
	Inventory       Inventory
	Achievements    types.StringList
	Relationships   Relationships
	PlayStats       DeathMatchStats
	CreatedAt       types.Timestamp
	UpdatedAt       types.Timestamp
}

// FieldUpdate is a partial update of a single player document, keyed by
// logical field paths. Only the named fields are written; everything else
// on the row is left untouched.
type FieldUpdate map[string]interface{}

// fieldColumns whitelists the logical field paths accepted by
// UpdateFields and maps each to its column. Paths outside this map are
// rejected so a typo can never silently create or clobber data.
var fieldColumns = map[string]string{
	"profile.playerName":      "player_name",
	"profile.title":           "title",
	"profile.pilotActive":     "pilot_active",
	"profile.spaceshipActive": "spaceship_active",
	"profile.battlePass":      "battle_pass",
	"currency.coin":           "coin",
	"currency.diamond":        "diamond",
	"progress.exp":            "exp",
	"progress.achievements":   "achievements",
	"inventory.pilot":         "inventory_pilot",
	"inventory.spaceship":     "inventory_spaceship",
	"relationships.friend":    "friend_list",
	"relationships.request":   "request_list",
	"relationships.block":     "block_list",
	"stats.deathMatch":        "play_stats",
}

// PlayerStore is the document-style access layer over the players table.
// Every mutation is a single-row write; there are no cross-row
// transactions, and callers that must touch two players issue two writes.
type PlayerStore interface {
	Get(ctx context.Context, playerID string) (*Player, error)
	GetMany(ctx context.Context, playerIDs []string) (map[string]*Player, error)
	Create(ctx context.Context, player *Player) error
	UpdateFields(ctx context.Context, playerID string, update FieldUpdate) error
	FindByNameLower(ctx context.Context, nameLower string) (*Player, error)
	SearchByName(ctx context.Context, queryLower string, limit int) ([]*Player, error)
}

type sqlitePlayerStore struct {
	db *sql.DB
}

// NewPlayerStore returns a PlayerStore backed by the given database.
func NewPlayerStore(db *sql.DB) PlayerStore {
	return &sqlitePlayerStore{db: db}
}

const playerColumns = `player_id, player_name, title, pilot_active, spaceship_active,
	battle_pass, exp, coin, diamond, inventory_pilot, inventory_spaceship,
	achievements, friend_list, request_list, block_list, play_stats,
	created_at, updated_at`

func scanPlayer(row interface{ Scan(...interface{}) error }) (*Player, error) {
	var p Player
	err := row.Scan(
		&p.PlayerID, &p.PlayerName, &p.Title, &p.PilotActive, &p.SpaceshipActive,
		&p.BattlePass, &p.Exp, &p.Coin, &p.Diamond,
		&p.Inventory.Pilots, &p.Inventory.Spaceships,
		&p.Achievements,
		&p.Relationships.Friends, &p.Relationships.Requests, &p.Relationships.Blocked,
		&p.PlayStats,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *sqlitePlayerStore) Get(ctx context.Context, playerID string) (*Player, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+playerColumns+` FROM players WHERE player_id = ?`, playerID)
	p, err := scanPlayer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlayerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get player: %w", err)
	}
	return p, nil
}

// GetMany fetches a batch of players by ID in one query. IDs with no
// matching row are simply absent from the result map.
func (s *sqlitePlayerStore) GetMany(ctx context.Context, playerIDs []string) (map[string]*Player, error) {
	result := make(map[string]*Player, len(playerIDs))
	if len(playerIDs) == 0 {
		return result, nil
	}
	placeholders := strings.Repeat("?,", len(playerIDs))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]interface{}, len(playerIDs))
	for i, id := range playerIDs {
		args[i] = id
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+playerColumns+` FROM players WHERE player_id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("get players: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		result[p.PlayerID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get players: %w", err)
	}
	return result, nil
}

func (s *sqlitePlayerStore) Create(ctx context.Context, player *Player) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO players (
			player_id, player_name, player_name_lower, title, pilot_active,
			spaceship_active, battle_pass, exp, coin, diamond,
			inventory_pilot, inventory_spaceship, achievements,
			friend_list, request_list, block_list, play_stats
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		player.PlayerID, player.PlayerName, strings.ToLower(player.PlayerName),
		player.Title, player.PilotActive, player.SpaceshipActive,
		player.BattlePass, player.Exp, player.Coin, player.Diamond,
		player.Inventory.Pilots, player.Inventory.Spaceships, player.Achievements,
		player.Relationships.Friends, player.Relationships.Requests, player.Relationships.Blocked,
		player.PlayStats,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrNameTaken
		}
		return fmt.Errorf("create player: %w", err)
	}
	return nil
}

// UpdateFields applies a partial update to one player document. The write
// is a single UPDATE statement so the document changes atomically; the
// updated_at column is bumped on every write.
func (s *sqlitePlayerStore) UpdateFields(ctx context.Context, playerID string, update FieldUpdate) error {
	if len(update) == 0 {
		return nil
	}
	assignments := make([]string, 0, len(update)+1)
	args := make([]interface{}, 0, len(update)+1)
	for path, value := range update {
		column, ok := fieldColumns[path]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownField, path)
		}
		assignments = append(assignments, column+" = ?")
		args = append(args, value)
		if path == "profile.playerName" {
			name, ok := value.(string)
			if !ok {
				return fmt.Errorf("%w: profile.playerName must be a string", ErrUnknownField)
			}
			assignments = append(assignments, "player_name_lower = ?")
			args = append(args, strings.ToLower(name))
		}
	}
	// ISO 8601, matching the column defaults; CURRENT_TIMESTAMP would
	// produce a space-separated form the Timestamp scanner rejects.
	assignments = append(assignments, "updated_at = strftime('%Y-%m-%dT%H:%M:%SZ', 'now')")
	args = append(args, playerID)
	res, err := s.db.ExecContext(ctx,
		`UPDATE players SET `+strings.Join(assignments, ", ")+` WHERE player_id = ?`, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrNameTaken
		}
		return fmt.Errorf("update player: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update player: %w", err)
	}
	if affected == 0 {
		return ErrPlayerNotFound
	}
	return nil
}

func (s *sqlitePlayerStore) FindByNameLower(ctx context.Context, nameLower string) (*Player, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+playerColumns+` FROM players WHERE player_name_lower = ?`, nameLower)
	p, err := scanPlayer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlayerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find player by name: %w", err)
	}
	return p, nil
}

// SearchByName returns players whose lowercase name contains
// queryLower, ordered by name.
func (s *sqlitePlayerStore) SearchByName(ctx context.Context, queryLower string, limit int) ([]*Player, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+playerColumns+` FROM players
		 WHERE player_name_lower LIKE ? ESCAPE '\'
		 ORDER BY player_name_lower LIMIT ?`,
		"%"+escapeLike(queryLower)+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("search players: %w", err)
	}
	defer rows.Close()
	var players []*Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search players: %w", err)
	}
	return players, nil
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
