package shop

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/Namnipitpon/ScrapDown-dev-api/internal/db"
	"github.com/Namnipitpon/ScrapDown-dev-api/internal/db/types"
	"github.com/Namnipitpon/ScrapDown-dev-api/pkg/config"
)

type shopService struct {
	config  config.Config
	logger  *zap.Logger
	players db.PlayerStore
	items   db.ItemStore
}

func NewShopService(cfg config.Config, logger *zap.Logger, players db.PlayerStore, items db.ItemStore) Service {
	return &shopService{
		config:  cfg,
		logger:  logger,
		players: players,
		items:   items,
	}
}

func (s *shopService) ListItems(ctx context.Context) ([]*db.Item, error) {
	items, err := s.items.List(ctx)
	if err != nil {
		s.logger.Error("Failed to list items", zap.Error(err))
		return nil, ErrStoreUnavailable
	}
	return items, nil
}

func (s *shopService) load(ctx context.Context, playerID, itemID string) (*db.Player, *db.Item, error) {
	player, err := s.players.Get(ctx, playerID)
	if err != nil {
		if errors.Is(err, db.ErrPlayerNotFound) {
			return nil, nil, ErrPlayerNotFound
		}
		s.logger.Error("Failed to load player", zap.String("player_id", playerID), zap.Error(err))
		return nil, nil, ErrStoreUnavailable
	}
	item, err := s.items.Get(ctx, itemID)
	if err != nil {
		if errors.Is(err, db.ErrItemNotFound) {
			return nil, nil, ErrItemNotFound
		}
		s.logger.Error("Failed to load item", zap.String("item_id", itemID), zap.Error(err))
		return nil, nil, ErrStoreUnavailable
	}
	return player, item, nil
}

func (s *shopService) BuyItem(ctx context.Context, playerID, itemID, paymentMethod string) (*Balance, error) {
	if playerID == "" || itemID == "" {
		return nil, ErrInvalidInput
	}
	if paymentMethod != PaymentCoin && paymentMethod != PaymentDiamond {
		return nil, ErrInvalidPayment
	}
	player, item, err := s.load(ctx, playerID, itemID)
	if err != nil {
		return nil, err
	}

	var inventoryField string
	var owned types.StringList
	switch item.ItemType {
	case db.ItemTypePilot:
		inventoryField, owned = "inventory.pilot", player.Inventory.Pilots
	case db.ItemTypeSpaceship:
		inventoryField, owned = "inventory.spaceship", player.Inventory.Spaceships
	default:
		return nil, ErrWrongItemType
	}
	if owned.Contains(itemID) {
		return nil, ErrAlreadyOwned
	}

	balance := Balance{Coin: player.Coin, Diamond: player.Diamond}
	switch paymentMethod {
	case PaymentCoin:
		if player.Coin < item.PriceCoin {
			return nil, ErrInsufficientFunds
		}
		balance.Coin -= item.PriceCoin
	case PaymentDiamond:
		if player.Diamond < item.PriceDiamond {
			return nil, ErrInsufficientFunds
		}
		balance.Diamond -= item.PriceDiamond
	}

	inventory := append(append(types.StringList{}, owned...), itemID)
	err = s.players.UpdateFields(ctx, playerID, db.FieldUpdate{
		"currency.coin":    balance.Coin,
		"currency.diamond": balance.Diamond,
		inventoryField:     inventory,
	})
	if err != nil {
		s.logger.Error("Failed to apply purchase", zap.String("player_id", playerID), zap.Error(err))
		return nil, ErrStoreUnavailable
	}

	s.logger.Info("Item purchased",
		zap.String("player_id", playerID),
		zap.String("item_id", itemID),
		zap.String("payment_method", paymentMethod))
	return &balance, nil
}

func (s *shopService) BuyCoins(ctx context.Context, playerID, itemID string) (*Balance, error) {
	if playerID == "" || itemID == "" {
		return nil, ErrInvalidInput
	}
	player, item, err := s.load(ctx, playerID, itemID)
	if err != nil {
		return nil, err
	}
	if item.ItemType != db.ItemTypeCoinPack {
		return nil, ErrWrongItemType
	}
	if player.Diamond < item.PriceDiamond {
		return nil, ErrInsufficientFunds
	}

	balance := Balance{
		Coin:    player.Coin + item.CoinAmount,
		Diamond: player.Diamond - item.PriceDiamond,
	}
	err = s.players.UpdateFields(ctx, playerID, db.FieldUpdate{
		"currency.coin":    balance.Coin,
		"currency.diamond": balance.Diamond,
	})
	if err != nil {
		s.logger.Error("Failed to apply coin purchase", zap.String("player_id", playerID), zap.Error(err))
		return nil, ErrStoreUnavailable
	}

	s.logger.Info("Coins purchased",
		zap.String("player_id", playerID),
		zap.String("item_id", itemID),
		zap.Int64("coin_amount", item.CoinAmount))
	return &balance, nil
}
