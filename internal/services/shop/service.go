package shop

import (
	"context"
	"errors"

	"github.com/Namnipitpon/ScrapDown-dev-api/internal/db"
)

// Payment methods accepted by BuyItem.
const (
	PaymentCoin    = "coin"
	PaymentDiamond = "diamond"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidPayment    = errors.New("payment method not supported")
	ErrPlayerNotFound    = errors.New("player not found")
	ErrItemNotFound      = errors.New("item not found")
	ErrAlreadyOwned      = errors.New("player already owns this item")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrWrongItemType     = errors.New("item cannot be bought this way")
	ErrStoreUnavailable  = errors.New("store unavailable")
)

// Balance is a player's currency after a purchase.
type Balance struct {
	Coin    int64 `json:"coin"`
	Diamond int64 `json:"diamond"`
}

type Service interface {
	ListItems(ctx context.Context) ([]*db.Item, error)
	// BuyItem purchases a pilot or spaceship for coins or diamonds and
	// adds it to the player's inventory.
	BuyItem(ctx context.Context, playerID, itemID, paymentMethod string) (*Balance, error)
	// BuyCoins exchanges diamonds for the coin pack's coin amount.
	BuyCoins(ctx context.Context, playerID, itemID string) (*Balance, error)
}
