package account

import (
	"context"
	"errors"

	"github.com/Namnipitpon/ScrapDown-dev-api/internal/db"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrPlayerNotFound   = errors.New("player not found")
	ErrNameTaken        = errors.New("player name already in use")
	ErrNotOwned         = errors.New("item not in player inventory")
	ErrQueryTooShort    = errors.New("search query too short")
	ErrStoreUnavailable = errors.New("player store unavailable")
)

// Profile is the client-facing view of a player document.
type Profile struct {
	PlayerID        string       `json:"playerId"`
	PlayerName      string       `json:"playerName"`
	Title           string       `json:"title"`
	PilotActive     string       `json:"pilotActive"`
	SpaceshipActive string       `json:"spaceshipActive"`
	BattlePass      bool         `json:"battlePass"`
	Exp             int64        `json:"exp"`
	Coin            int64        `json:"coin"`
	Diamond         int64        `json:"diamond"`
	Inventory       db.Inventory `json:"inventory"`
	Achievements    []string     `json:"achievements"`
}

// SearchResult is one hit from a player-name search.
type SearchResult struct {
	PlayerID    string `json:"playerId"`
	PlayerName  string `json:"playerName"`
	PilotActive string `json:"pilotActive"`
}

type Service interface {
	CreatePlayer(ctx context.Context, playerName string) (*Profile, error)
	GetPlayer(ctx context.Context, playerID string) (*Profile, error)
	ChangePlayerName(ctx context.Context, playerID, playerName string) error
	// SelectPilotSpaceship grants the chosen pilot and spaceship (first
	// selection after account creation) and makes them active.
	SelectPilotSpaceship(ctx context.Context, playerID, pilot, spaceship string) (*Profile, error)
	// SetActives switches the active pilot and/or spaceship to ones the
	// player already owns. Empty arguments leave the current selection.
	SetActives(ctx context.Context, playerID, pilot, spaceship string) (*Profile, error)
	AddAchievement(ctx context.Context, playerID, achievementID string) error
	SearchPlayers(ctx context.Context, query string) ([]SearchResult, error)
}
