package match

import (
	"context"
	"errors"

	"github.com/Namnipitpon/ScrapDown-dev-api/internal/db/types"
)

// Match types recognized by the reward calculator.
const (
	TypeCustomRoom  = "CustomRoom"
	TypeMatchMaking = "MatchMaking"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidMatchType = errors.New("unknown match type")
	ErrPlayerNotFound   = errors.New("player not found")
	ErrDuplicateMatch   = errors.New("match already recorded for this player")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Result describes one player's outcome in a finished death match.
type Result struct {
	PlayerID      string `json:"playerId"`
	MatchCode     string `json:"matchCode"`
	MatchType     string `json:"matchType"`
	Mode          string `json:"mode"`
	Kills         int64  `json:"kills"`
	Deaths        int64  `json:"deaths"`
	PlayTime      int64  `json:"playTime"`
	CurrentPlayer int64  `json:"currentPlayer"`
	Ranking       int64  `json:"ranking"`
}

// Reward is the experience and coins granted for a match result.
type Reward struct {
	Exp  int64 `json:"exp"`
	Coin int64 `json:"coin"`
}

// HistoryEntry is one recorded match as returned by History, newest
// first.
type HistoryEntry struct {
	MatchCode     string          `json:"matchCode"`
	MatchType     string          `json:"matchType"`
	Mode          string          `json:"mode"`
	Ranking       int64           `json:"ranking"`
	Kills         int64           `json:"kills"`
	Deaths        int64           `json:"deaths"`
	PlayTime      int64           `json:"playTime"`
	CurrentPlayer int64           `json:"currentPlayer"`
	Score         int64           `json:"score"`
	PlayedAt      types.Timestamp `json:"playedAt"`
}

type Service interface {
	// GenerateCode produces a fresh random match code.
	GenerateCode(ctx context.Context) (string, error)
	// RecordResult stores a match result, accumulates the player's
	// death-match statistics, and grants the calculated reward. A match
	// code can be recorded at most once per player.
	RecordResult(ctx context.Context, result *Result) (*Reward, error)
	// History returns the player's most recent recorded matches,
	// newest first.
	History(ctx context.Context, playerID string) ([]HistoryEntry, error)
}
