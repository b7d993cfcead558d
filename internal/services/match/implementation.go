package match

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"go.uber.org/zap"

	"github.com/Namnipitpon/ScrapDown-dev-api/internal/db"
	"github.com/Namnipitpon/ScrapDown-dev-api/pkg/config"
)

const (
	matchCodeLength  = 10
	matchCodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz1234567890"
)

type matchService struct {
	config  config.Config
	logger  *zap.Logger
	players db.PlayerStore
	matches db.MatchStore
}

func NewMatchService(cfg config.Config, logger *zap.Logger, players db.PlayerStore, matches db.MatchStore) Service {
	return &matchService{
		config:  cfg,
		logger:  logger,
		players: players,
		matches: matches,
	}
}

func (s *matchService) GenerateCode(_ context.Context) (string, error) {
	code := make([]byte, matchCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(matchCodeCharset))))
		if err != nil {
			return "", fmt.Errorf("generate match code: %w", err)
		}
		code[i] = matchCodeCharset[n.Int64()]
	}
	return string(code), nil
}

// calculateReward derives experience and coins from a match outcome.
// Rewards scale with how full the lobby was relative to the configured
// maximum; an unknown match type earns nothing.
func (s *matchService) calculateReward(result *Result) Reward {
	maxPlayers := int64(s.config.Game.MaxPlayersPerMatch)
	var baseValue int64

	switch result.MatchType {
	case TypeCustomRoom:
		switch {
		case result.Ranking == 1:
			baseValue = 25
		case result.Ranking == 2:
			baseValue = 15
		case result.Ranking == 3:
			baseValue = 10
		case result.Ranking >= 4 && result.Ranking <= maxPlayers:
			baseValue = 5
		}
	case TypeMatchMaking:
		switch {
		case result.Ranking == 1:
			baseValue = 50
		case result.Ranking == 2:
			baseValue = 40
		case result.Ranking == 3:
			baseValue = 35
		case result.Ranking == 4:
			baseValue = 30
		case result.Ranking >= 5 && result.Ranking <= maxPlayers:
			baseValue = 25
		}
	}

	return Reward{
		Exp:  floorDiv((baseValue+result.Kills-result.Deaths)*result.CurrentPlayer, maxPlayers),
		Coin: floorDiv(baseValue*result.CurrentPlayer, maxPlayers),
	}
}

// floorDiv rounds toward negative infinity. Go's / truncates toward
// zero, which would make a death-heavy result lose one less exp than
// the reward table intends.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func (s *matchService) RecordResult(ctx context.Context, result *Result) (*Reward, error) {
	if result == nil || result.PlayerID == "" || result.MatchCode == "" {
		return nil, ErrInvalidInput
	}
	if result.Kills < 0 || result.Deaths < 0 || result.PlayTime < 0 ||
		result.CurrentPlayer <= 0 || result.Ranking <= 0 {
		return nil, ErrInvalidInput
	}
	if result.MatchType != TypeCustomRoom && result.MatchType != TypeMatchMaking {
		return nil, ErrInvalidMatchType
	}

	player, err := s.players.Get(ctx, result.PlayerID)
	if err != nil {
		if errors.Is(err, db.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		s.logger.Error("Failed to load player", zap.String("player_id", result.PlayerID), zap.Error(err))
		return nil, ErrStoreUnavailable
	}

	reward := s.calculateReward(result)

	err = s.matches.Record(ctx, &db.MatchRecord{
		PlayerID:      result.PlayerID,
		MatchCode:     result.MatchCode,
		MatchType:     result.MatchType,
		Mode:          result.Mode,
		Ranking:       result.Ranking,
		Kills:         result.Kills,
		Deaths:        result.Deaths,
		PlayTime:      result.PlayTime,
		CurrentPlayer: result.CurrentPlayer,
		Score:         reward.Exp,
	})
	if err != nil {
		if errors.Is(err, db.ErrMatchAlreadyRecorded) {
			return nil, ErrDuplicateMatch
		}
		s.logger.Error("Failed to record match", zap.String("player_id", result.PlayerID), zap.Error(err))
		return nil, ErrStoreUnavailable
	}

	stats := player.PlayStats
	stats.Matches++
	if result.Ranking == 1 {
		stats.Wins++
	}
	stats.Kills += result.Kills
	stats.Deaths += result.Deaths
	stats.PlayTime += result.PlayTime

	err = s.players.UpdateFields(ctx, result.PlayerID, db.FieldUpdate{
		"progress.exp":     player.Exp + reward.Exp,
		"currency.coin":    player.Coin + reward.Coin,
		"stats.deathMatch": stats,
	})
	if err != nil {
		s.logger.Error("Failed to apply match reward", zap.String("player_id", result.PlayerID), zap.Error(err))
		return nil, ErrStoreUnavailable
	}

	s.logger.Info("Match recorded",
		zap.String("player_id", result.PlayerID),
		zap.String("match_code", result.MatchCode),
		zap.Int64("exp", reward.Exp),
		zap.Int64("coin", reward.Coin))
	return &reward, nil
}

// historyLimit caps how many recorded matches History returns.
const historyLimit = 50

func (s *matchService) History(ctx context.Context, playerID string) ([]HistoryEntry, error) {
	if playerID == "" {
		return nil, ErrInvalidInput
	}

	if _, err := s.players.Get(ctx, playerID); err != nil {
		if errors.Is(err, db.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		s.logger.Error("Failed to load player", zap.String("player_id", playerID), zap.Error(err))
		return nil, ErrStoreUnavailable
	}

	records, err := s.matches.ListByPlayer(ctx, playerID, historyLimit)
	if err != nil {
		s.logger.Error("Failed to list matches", zap.String("player_id", playerID), zap.Error(err))
		return nil, ErrStoreUnavailable
	}

	history := make([]HistoryEntry, 0, len(records))
	for _, rec := range records {
		history = append(history, HistoryEntry{
			MatchCode:     rec.MatchCode,
			MatchType:     rec.MatchType,
			Mode:          rec.Mode,
			Ranking:       rec.Ranking,
			Kills:         rec.Kills,
			Deaths:        rec.Deaths,
			PlayTime:      rec.PlayTime,
			CurrentPlayer: rec.CurrentPlayer,
			Score:         rec.Score,
			PlayedAt:      rec.CreatedAt,
		})
	}
	return history, nil
}
