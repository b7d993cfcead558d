package account

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Namnipitpon/ScrapDown-dev-api/internal/db"
	"github.com/Namnipitpon/ScrapDown-dev-api/internal/db/types"
	"github.com/Namnipitpon/ScrapDown-dev-api/pkg/config"
)

// minPlayerNameLength rejects throwaway one and two character names.
const minPlayerNameLength = 3

type accountService struct {
	config config.Config
	logger *zap.Logger
	store  db.PlayerStore
}

func NewAccountService(cfg config.Config, logger *zap.Logger, store db.PlayerStore) Service {
	return &accountService{
		config: cfg,
		logger: logger,
		store:  store,
	}
}

func toProfile(p *db.Player) *Profile {
	return &Profile{
		PlayerID:        p.PlayerID,
		PlayerName:      p.PlayerName,
		Title:           p.Title,
		PilotActive:     p.PilotActive,
		SpaceshipActive: p.SpaceshipActive,
		BattlePass:      p.BattlePass,
		Exp:             p.Exp,
		Coin:            p.Coin,
		Diamond:         p.Diamond,
		Inventory:       p.Inventory,
		Achievements:    p.Achievements,
	}
}

func (s *accountService) getPlayer(ctx context.Context, playerID string) (*db.Player, error) {
	player, err := s.store.Get(ctx, playerID)
	if err != nil {
		if errors.Is(err, db.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		s.logger.Error("Failed to load player", zap.String("player_id", playerID), zap.Error(err))
		return nil, ErrStoreUnavailable
	}
	return player, nil
}

func (s *accountService) CreatePlayer(ctx context.Context, playerName string) (*Profile, error) {
	if len(strings.TrimSpace(playerName)) < minPlayerNameLength {
		return nil, ErrInvalidInput
	}
	player := &db.Player{
		PlayerID:   uuid.NewString(),
		PlayerName: playerName,
	}
	if err := s.store.Create(ctx, player); err != nil {
		if errors.Is(err, db.ErrNameTaken) {
			return nil, ErrNameTaken
		}
		s.logger.Error("Failed to create player", zap.Error(err))
		return nil, ErrStoreUnavailable
	}
	s.logger.Info("Player created", zap.String("player_id", player.PlayerID), zap.String("player_name", playerName))
	return toProfile(player), nil
}

func (s *accountService) GetPlayer(ctx context.Context, playerID string) (*Profile, error) {
	if playerID == "" {
		return nil, ErrInvalidInput
	}
	player, err := s.getPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	return toProfile(player), nil
}

func (s *accountService) ChangePlayerName(ctx context.Context, playerID, playerName string) error {
	if playerID == "" || len(strings.TrimSpace(playerName)) < minPlayerNameLength {
		return ErrInvalidInput
	}
	// Name uniqueness is case-insensitive.
	existing, err := s.store.FindByNameLower(ctx, strings.ToLower(playerName))
	if err != nil && !errors.Is(err, db.ErrPlayerNotFound) {
		s.logger.Error("Failed to check player name", zap.Error(err))
		return ErrStoreUnavailable
	}
	if existing != nil && existing.PlayerID != playerID {
		return ErrNameTaken
	}
	if _, err := s.getPlayer(ctx, playerID); err != nil {
		return err
	}
	err = s.store.UpdateFields(ctx, playerID, db.FieldUpdate{
		"profile.playerName": playerName,
	})
	if err != nil {
		if errors.Is(err, db.ErrNameTaken) {
			return ErrNameTaken
		}
		if errors.Is(err, db.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		s.logger.Error("Failed to change player name", zap.String("player_id", playerID), zap.Error(err))
		return ErrStoreUnavailable
	}
	s.logger.Info("Player name changed", zap.String("player_id", playerID), zap.String("player_name", playerName))
	return nil
}

func (s *accountService) SelectPilotSpaceship(ctx context.Context, playerID, pilot, spaceship string) (*Profile, error) {
	if playerID == "" || pilot == "" || spaceship == "" {
		return nil, ErrInvalidInput
	}
	player, err := s.getPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	update := db.FieldUpdate{
		"profile.pilotActive":     pilot,
		"profile.spaceshipActive": spaceship,
	}
	if !player.Inventory.Pilots.Contains(pilot) {
		pilots := append(types.StringList{}, player.Inventory.Pilots...)
		update["inventory.pilot"] = append(pilots, pilot)
	}
	if !player.Inventory.Spaceships.Contains(spaceship) {
		spaceships := append(types.StringList{}, player.Inventory.Spaceships...)
		update["inventory.spaceship"] = append(spaceships, spaceship)
	}
	if err := s.updatePlayer(ctx, playerID, update); err != nil {
		return nil, err
	}
	return s.GetPlayer(ctx, playerID)
}

func (s *accountService) SetActives(ctx context.Context, playerID, pilot, spaceship string) (*Profile, error) {
	if playerID == "" || (pilot == "" && spaceship == "") {
		return nil, ErrInvalidInput
	}
	player, err := s.getPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	update := db.FieldUpdate{}
	if pilot != "" {
		if !player.Inventory.Pilots.Contains(pilot) {
			return nil, ErrNotOwned
		}
		update["profile.pilotActive"] = pilot
	}
	if spaceship != "" {
		if !player.Inventory.Spaceships.Contains(spaceship) {
			return nil, ErrNotOwned
		}
		update["profile.spaceshipActive"] = spaceship
	}
	if err := s.updatePlayer(ctx, playerID, update); err != nil {
		return nil, err
	}
	return s.GetPlayer(ctx, playerID)
}

func (s *accountService) AddAchievement(ctx context.Context, playerID, achievementID string) error {
	if playerID == "" || achievementID == "" {
		return ErrInvalidInput
	}
	player, err := s.getPlayer(ctx, playerID)
	if err != nil {
		return err
	}
	if player.Achievements.Contains(achievementID) {
		return nil
	}
	achievements := append(types.StringList{}, player.Achievements...)
	achievements = append(achievements, achievementID)
	return s.updatePlayer(ctx, playerID, db.FieldUpdate{
		"progress.achievements": achievements,
	})
}

func (s *accountService) SearchPlayers(ctx context.Context, query string) ([]SearchResult, error) {
	if len(query) < s.config.Game.MinSearchLength {
		return nil, ErrQueryTooShort
	}
	players, err := s.store.SearchByName(ctx, strings.ToLower(query), 50)
	if err != nil {
		s.logger.Error("Failed to search players", zap.Error(err))
		return nil, ErrStoreUnavailable
	}
	results := make([]SearchResult, 0, len(players))
	for _, p := range players {
		if p.PlayerName == "" {
			continue
		}
		results = append(results, SearchResult{
			PlayerID:    p.PlayerID,
			PlayerName:  p.PlayerName,
			PilotActive: p.PilotActive,
		})
	}
	return results, nil
}

func (s *accountService) updatePlayer(ctx context.Context, playerID string, update db.FieldUpdate) error {
	if err := s.store.UpdateFields(ctx, playerID, update); err != nil {
		if errors.Is(err, db.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		s.logger.Error("Failed to update player", zap.String("player_id", playerID), zap.Error(err))
		return ErrStoreUnavailable
	}
	return nil
}
