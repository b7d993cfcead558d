package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Namnipitpon/ScrapDown-dev-api/internal/services/match"
)

type MatchHandlers struct {
	service match.Service
	logger  *zap.Logger
}

func NewMatchHandlers(service match.Service, logger *zap.Logger) *MatchHandlers {
	return &MatchHandlers{
		service: service,
		logger:  logger,
	}
}

func (h *MatchHandlers) errorResponse(c *fiber.Ctx, err error) error {
	var status int
	var code string
	switch {
	case errors.Is(err, match.ErrInvalidInput):
		status, code = fiber.StatusBadRequest, "invalid_input"
	case errors.Is(err, match.ErrInvalidMatchType):
		status, code = fiber.StatusBadRequest, "invalid_match_type"
	case errors.Is(err, match.ErrPlayerNotFound):
		status, code = fiber.StatusNotFound, "player_not_found"
	case errors.Is(err, match.ErrDuplicateMatch):
		status, code = fiber.StatusConflict, "duplicate_match"
	case errors.Is(err, match.ErrStoreUnavailable):
		status, code = fiber.StatusServiceUnavailable, "store_unavailable"
	default:
		h.logger.Error("Unexpected match service error", zap.Error(err))
		status, code = fiber.StatusInternalServerError, "internal_error"
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}

// GenerateCode handles POST /matches/generate-code
func (h *MatchHandlers) GenerateCode(c *fiber.Ctx) error {
	code, err := h.service.GenerateCode(c.Context())
	if err != nil {
		h.logger.Error("Failed to generate match code", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate match code",
			"code":  "internal_error",
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"matchCode": code,
	})
}

// RecordResult handles PUT /matches/result
func (h *MatchHandlers) RecordResult(c *fiber.Ctx) error {
	var result match.Result
	if err := c.BodyParser(&result); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
			"code":  "invalid_input",
		})
	}
	reward, err := h.service.RecordResult(c.Context(), &result)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "recorded",
		"reward": reward,
	})
}

// History handles GET /matches/:playerId
func (h *MatchHandlers) History(c *fiber.Ctx) error {
	history, err := h.service.History(c.Context(), c.Params("playerId"))
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"matches": history,
	})
}
