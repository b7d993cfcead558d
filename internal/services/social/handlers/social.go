package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Namnipitpon/ScrapDown-dev-api/internal/services/social"
)

type SocialHandlers struct {
	service social.Service
	logger  *zap.Logger
}

func NewSocialHandlers(service social.Service, logger *zap.Logger) *SocialHandlers {
	return &SocialHandlers{
		service: service,
		logger:  logger,
	}
}

type RelationshipRequest struct {
	PlayerID string `json:"playerId"`
	FriendID string `json:"friendId"`
}

// errorResponse maps service errors to a stable HTTP status and
// machine-readable code. Store detail never reaches the client.
func (h *SocialHandlers) errorResponse(c *fiber.Ctx, err error) error {
	var status int
	var code string
	switch {
	case errors.Is(err, social.ErrInvalidRequest):
		status, code = fiber.StatusBadRequest, "invalid_request"
	case errors.Is(err, social.ErrPlayerNotFound):
		status, code = fiber.StatusNotFound, "player_not_found"
	case errors.Is(err, social.ErrRequestNotFound):
		status, code = fiber.StatusNotFound, "request_not_found"
	case errors.Is(err, social.ErrBlocked):
		status, code = fiber.StatusForbidden, "blocked"
	case errors.Is(err, social.ErrAlreadyFriends):
		status, code = fiber.StatusConflict, "already_friends"
	case errors.Is(err, social.ErrDuplicateRequest):
		status, code = fiber.StatusConflict, "duplicate_request"
	case errors.Is(err, social.ErrNotFriends):
		status, code = fiber.StatusConflict, "not_friends"
	case errors.Is(err, social.ErrNotBlocked):
		status, code = fiber.StatusConflict, "not_blocked"
	case errors.Is(err, social.ErrPartialWrite):
		status, code = fiber.StatusInternalServerError, "partial_write_failure"
	case errors.Is(err, social.ErrStoreUnavailable):
		status, code = fiber.StatusServiceUnavailable, "store_unavailable"
	default:
		h.logger.Error("Unexpected social service error", zap.Error(err))
		status, code = fiber.StatusInternalServerError, "internal_error"
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}

// respondWithView returns the acting player's refreshed relationship
// view after a successful mutation, so clients never need a follow-up
// read to repaint their social screen.
func (h *SocialHandlers) respondWithView(c *fiber.Ctx, playerID, status string) error {
	view, err := h.service.GetRelationshipView(c.Context(), playerID)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":        status,
		"relationships": view,
	})
}

func (h *SocialHandlers) parsePair(c *fiber.Ctx) (string, string, bool) {
	var req RelationshipRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.Error("Failed to parse request body", zap.Error(err))
		return "", "", false
	}
	return req.PlayerID, req.FriendID, true
}

// SendRequest handles POST /social/send-request
func (h *SocialHandlers) SendRequest(c *fiber.Ctx) error {
	playerID, friendID, ok := h.parsePair(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
			"code":  "invalid_request",
		})
	}
	if err := h.service.SendRequest(c.Context(), playerID, friendID); err != nil {
		return h.errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "request_sent",
	})
}

// AcceptRequest handles POST /social/accept-request
func (h *SocialHandlers) AcceptRequest(c *fiber.Ctx) error {
	playerID, friendID, ok := h.parsePair(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
			"code":  "invalid_request",
		})
	}
	alreadyFriends, err := h.service.AcceptRequest(c.Context(), playerID, friendID)
	if err != nil {
		return h.errorResponse(c, err)
	}
	status := "accepted"
	if alreadyFriends {
		status = "already_friends"
	}
	return h.respondWithView(c, playerID, status)
}

// RemoveRequest handles POST /social/remove-request
func (h *SocialHandlers) RemoveRequest(c *fiber.Ctx) error {
	playerID, friendID, ok := h.parsePair(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
			"code":  "invalid_request",
		})
	}
	if err := h.service.RemoveRequest(c.Context(), playerID, friendID); err != nil {
		return h.errorResponse(c, err)
	}
	return h.respondWithView(c, playerID, "request_removed")
}

// RemoveFriend handles POST /social/remove-friend
func (h *SocialHandlers) RemoveFriend(c *fiber.Ctx) error {
	playerID, friendID, ok := h.parsePair(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
			"code":  "invalid_request",
		})
	}
	if err := h.service.RemoveFriend(c.Context(), playerID, friendID); err != nil {
		return h.errorResponse(c, err)
	}
	return h.respondWithView(c, playerID, "friend_removed")
}

// Block handles POST /social/block
func (h *SocialHandlers) Block(c *fiber.Ctx) error {
	playerID, friendID, ok := h.parsePair(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
			"code":  "invalid_request",
		})
	}
	if err := h.service.Block(c.Context(), playerID, friendID); err != nil {
		return h.errorResponse(c, err)
	}
	return h.respondWithView(c, playerID, "blocked")
}

// Unblock handles POST /social/unblock
func (h *SocialHandlers) Unblock(c *fiber.Ctx) error {
	playerID, friendID, ok := h.parsePair(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
			"code":  "invalid_request",
		})
	}
	if err := h.service.Unblock(c.Context(), playerID, friendID); err != nil {
		return h.errorResponse(c, err)
	}
	return h.respondWithView(c, playerID, "unblocked")
}

// GetRelationshipView handles GET /social/:playerId
func (h *SocialHandlers) GetRelationshipView(c *fiber.Ctx) error {
	playerID := c.Params("playerId")
	view, err := h.service.GetRelationshipView(c.Context(), playerID)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(view)
}
