package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Namnipitpon/ScrapDown-dev-api/internal/services/shop"
)

type ShopHandlers struct {
	service shop.Service
	logger  *zap.Logger
}

func NewShopHandlers(service shop.Service, logger *zap.Logger) *ShopHandlers {
	return &ShopHandlers{
		service: service,
		logger:  logger,
	}
}

type BuyItemRequest struct {
	PlayerID      string `json:"playerId"`
	ItemID        string `json:"itemId"`
	PaymentMethod string `json:"paymentMethod"`
}

type BuyCoinsRequest struct {
	PlayerID string `json:"playerId"`
	ItemID   string `json:"itemId"`
}

func (h *ShopHandlers) errorResponse(c *fiber.Ctx, err error) error {
	var status int
	var code string
	switch {
	case errors.Is(err, shop.ErrInvalidInput):
		status, code = fiber.StatusBadRequest, "invalid_input"
	case errors.Is(err, shop.ErrInvalidPayment):
		status, code = fiber.StatusBadRequest, "invalid_payment"
	case errors.Is(err, shop.ErrWrongItemType):
		status, code = fiber.StatusBadRequest, "wrong_item_type"
	case errors.Is(err, shop.ErrPlayerNotFound):
		status, code = fiber.StatusNotFound, "player_not_found"
	case errors.Is(err, shop.ErrItemNotFound):
		status, code = fiber.StatusNotFound, "item_not_found"
	case errors.Is(err, shop.ErrAlreadyOwned):
		status, code = fiber.StatusConflict, "already_owned"
	case errors.Is(err, shop.ErrInsufficientFunds):
		status, code = fiber.StatusConflict, "insufficient_funds"
	case errors.Is(err, shop.ErrStoreUnavailable):
		status, code = fiber.StatusServiceUnavailable, "store_unavailable"
	default:
		h.logger.Error("Unexpected shop service error", zap.Error(err))
		status, code = fiber.StatusInternalServerError, "internal_error"
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}

// ListItems handles GET /shop/items
func (h *ShopHandlers) ListItems(c *fiber.Ctx) error {
	items, err := h.service.ListItems(c.Context())
	if err != nil {
		return h.errorResponse(c, err)
	}
	out := make([]fiber.Map, 0, len(items))
	for _, item := range items {
		out = append(out, fiber.Map{
			"itemId":       item.ItemID,
			"name":         item.Name,
			"type":         item.ItemType,
			"priceCoin":    item.PriceCoin,
			"priceDiamond": item.PriceDiamond,
			"coinAmount":   item.CoinAmount,
		})
	}
	return c.Status(fiber.StatusOK).JSON(out)
}

// BuyItem handles POST /shop/buy-item
func (h *ShopHandlers) BuyItem(c *fiber.Ctx) error {
	var req BuyItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
			"code":  "invalid_input",
		})
	}
	balance, err := h.service.BuyItem(c.Context(), req.PlayerID, req.ItemID, req.PaymentMethod)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":   "purchased",
		"itemId":   req.ItemID,
		"currency": balance,
	})
}

// BuyCoins handles POST /shop/buy-coins
func (h *ShopHandlers) BuyCoins(c *fiber.Ctx) error {
	var req BuyCoinsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
			"code":  "invalid_input",
		})
	}
	balance, err := h.service.BuyCoins(c.Context(), req.PlayerID, req.ItemID)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":   "purchased",
		"currency": balance,
	})
}
