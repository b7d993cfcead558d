package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Namnipitpon/ScrapDown-dev-api/internal/services/account"
	"github.com/Namnipitpon/ScrapDown-dev-api/internal/services/social"
)

type AccountHandlers struct {
	service account.Service
	social  social.Service
	logger  *zap.Logger
}

func NewAccountHandlers(service account.Service, socialSvc social.Service, logger *zap.Logger) *AccountHandlers {
	return &AccountHandlers{
		service: service,
		social:  socialSvc,
		logger:  logger,
	}
}

type CreatePlayerRequest struct {
	PlayerName string `json:"playerName"`
}

type ChangeNameRequest struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
}

type SelectLoadoutRequest struct {
	PlayerID  string `json:"playerId"`
	Pilot     string `json:"pilot"`
	Spaceship string `json:"spaceship"`
}

type AchievementRequest struct {
	PlayerID      string `json:"playerId"`
	AchievementID string `json:"achievementId"`
}

func (h *AccountHandlers) errorResponse(c *fiber.Ctx, err error) error {
	var status int
	var code string
	switch {
	case errors.Is(err, account.ErrInvalidInput):
		status, code = fiber.StatusBadRequest, "invalid_input"
	case errors.Is(err, account.ErrQueryTooShort):
		status, code = fiber.StatusBadRequest, "query_too_short"
	case errors.Is(err, account.ErrPlayerNotFound):
		status, code = fiber.StatusNotFound, "player_not_found"
	case errors.Is(err, account.ErrNameTaken):
		status, code = fiber.StatusConflict, "name_taken"
	case errors.Is(err, account.ErrNotOwned):
		status, code = fiber.StatusConflict, "not_owned"
	case errors.Is(err, account.ErrStoreUnavailable):
		status, code = fiber.StatusServiceUnavailable, "store_unavailable"
	default:
		h.logger.Error("Unexpected account service error", zap.Error(err))
		status, code = fiber.StatusInternalServerError, "internal_error"
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}

// CreatePlayer handles POST /account
func (h *AccountHandlers) CreatePlayer(c *fiber.Ctx) error {
	var req CreatePlayerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
			"code":  "invalid_input",
		})
	}
	profile, err := h.service.CreatePlayer(c.Context(), req.PlayerName)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(profile)
}

// GetPlayer handles GET /account/:playerId. The response pairs the
// profile with the player's relationship view so the client's home
// screen loads from a single call.
func (h *AccountHandlers) GetPlayer(c *fiber.Ctx) error {
	playerID := c.Params("playerId")
	profile, err := h.service.GetPlayer(c.Context(), playerID)
	if err != nil {
		return h.errorResponse(c, err)
	}
	view, err := h.social.GetRelationshipView(c.Context(), playerID)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"profile":       profile,
		"relationships": view,
	})
}

// ChangePlayerName handles PUT /account/playername
func (h *AccountHandlers) ChangePlayerName(c *fiber.Ctx) error {
	var req ChangeNameRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
			"code":  "invalid_input",
		})
	}
	if err := h.service.ChangePlayerName(c.Context(), req.PlayerID, req.PlayerName); err != nil {
		return h.errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"playerName": req.PlayerName,
	})
}

// SelectPilotSpaceship handles PUT /account/select-loadout
func (h *AccountHandlers) SelectPilotSpaceship(c *fiber.Ctx) error {
	var req SelectLoadoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
			"code":  "invalid_input",
		})
	}
	profile, err := h.service.SelectPilotSpaceship(c.Context(), req.PlayerID, req.Pilot, req.Spaceship)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(profile)
}

// SetActives handles PUT /account/actives
func (h *AccountHandlers) SetActives(c *fiber.Ctx) error {
	var req SelectLoadoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
			"code":  "invalid_input",
		})
	}
	profile, err := h.service.SetActives(c.Context(), req.PlayerID, req.Pilot, req.Spaceship)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(profile)
}

// AddAchievement handles POST /account/achievements
func (h *AccountHandlers) AddAchievement(c *fiber.Ctx) error {
	var req AchievementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
			"code":  "invalid_input",
		})
	}
	if err := h.service.AddAchievement(c.Context(), req.PlayerID, req.AchievementID); err != nil {
		return h.errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "achievement_added",
	})
}

// SearchPlayers handles GET /account/search?query=...
func (h *AccountHandlers) SearchPlayers(c *fiber.Ctx) error {
	results, err := h.service.SearchPlayers(c.Context(), c.Query("query"))
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(results)
}
