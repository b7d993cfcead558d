package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrItemNotFound is returned when an item id has no catalog row.
var ErrItemNotFound = errors.New("item not found")

// Item categories in the shop catalog.
const (
	ItemTypePilot     = "pilot"
	ItemTypeSpaceship = "spaceship"
	ItemTypeCoinPack  = "coin_pack"
)

// Item is one row of the shop catalog. Coin packs carry a CoinAmount;
// pilots and spaceships are unlockables added to the player inventory.
type Item struct {
	ItemID       string
	Name         string
	ItemType     string
	PriceCoin    int64
	PriceDiamond int64
	CoinAmount   int64
}

// ItemStore reads the shop catalog. The catalog is seeded by migrations
// and read-only at runtime.
type ItemStore interface {
	Get(ctx context.Context, itemID string) (*Item, error)
	List(ctx context.Context) ([]*Item, error)
}

type sqliteItemStore struct {
	db *sql.DB
}

// NewItemStore returns an ItemStore backed by the given database.
func NewItemStore(db *sql.DB) ItemStore {
	return &sqliteItemStore{db: db}
}

const itemColumns = `item_id, name, item_type, price_coin, price_diamond, coin_amount`

func (s *sqliteItemStore) Get(ctx context.Context, itemID string) (*Item, error) {
	var it Item
	err := s.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE item_id = ?`, itemID).
		Scan(&it.ItemID, &it.Name, &it.ItemType, &it.PriceCoin, &it.PriceDiamond, &it.CoinAmount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &it, nil
}

func (s *sqliteItemStore) List(ctx context.Context) ([]*Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items ORDER BY item_type, item_id`)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var items []*Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ItemID, &it.Name, &it.ItemType, &it.PriceCoin, &it.PriceDiamond, &it.CoinAmount); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}
