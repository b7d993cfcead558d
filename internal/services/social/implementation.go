package social

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Namnipitpon/ScrapDown-dev-api/internal/db"
	"github.com/Namnipitpon/ScrapDown-dev-api/pkg/config"
)

type socialService struct {
	config config.Config
	logger *zap.Logger
	store  db.PlayerStore
}

func NewSocialService(cfg config.Config, logger *zap.Logger, store db.PlayerStore) Service {
	return &socialService{
		config: cfg,
		logger: logger,
		store:  store,
	}
}

// loadPair validates the identifiers and fetches both player documents.
// All precondition checks run against this snapshot before any write.
func (s *socialService) loadPair(ctx context.Context, selfID, otherID string) (*db.Player, *db.Player, error) {
	if selfID == "" || otherID == "" {
		return nil, nil, ErrInvalidRequest
	}
	if selfID == otherID {
		return nil, nil, ErrInvalidRequest
	}
	self, err := s.getPlayer(ctx, selfID)
	if err != nil {
		return nil, nil, err
	}
	other, err := s.getPlayer(ctx, otherID)
	if err != nil {
		return nil, nil, err
	}
	return self, other, nil
}

func (s *socialService) getPlayer(ctx context.Context, playerID string) (*db.Player, error) {
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

func (s *socialService) writeRelationships(ctx context.Context, playerID string, rel db.Relationships) error {
	err := s.store.UpdateFields(ctx, playerID, db.FieldUpdate{
		"relationships.friend":  rel.Friends,
		"relationships.request": rel.Requests,
		"relationships.block":   rel.Blocked,
	})
	if err != nil {
		if errors.Is(err, db.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		s.logger.Error("Failed to write relationships", zap.String("player_id", playerID), zap.Error(err))
		return ErrStoreUnavailable
	}
	return nil
}

func (s *socialService) SendRequest(ctx context.Context, selfID, otherID string) error {
	self, other, err := s.loadPair(ctx, selfID, otherID)
	if err != nil {
		return err
	}
	if containsID(other.Relationships.Blocked, selfID) || containsID(self.Relationships.Blocked, otherID) {
		return ErrBlocked
	}
	if containsID(other.Relationships.Friends, selfID) {
		return ErrAlreadyFriends
	}
	if containsID(other.Relationships.Requests, selfID) {
		return ErrDuplicateRequest
	}

	requests, _ := addIfAbsent(other.Relationships.Requests, selfID)
	other.Relationships.Requests = requests
	if err := s.writeRelationships(ctx, otherID, other.Relationships); err != nil {
		return err
	}
	s.logger.Debug("Friend request sent", zap.String("self_id", selfID), zap.String("other_id", otherID))
	return nil
}

func (s *socialService) AcceptRequest(ctx context.Context, selfID, otherID string) (bool, error) {
	self, other, err := s.loadPair(ctx, selfID, otherID)
	if err != nil {
		return false, err
	}
	// An accepted request has already been consumed, so re-accepting an
	// established friendship succeeds without writing.
	if containsID(self.Relationships.Friends, otherID) {
		return true, nil
	}
	if !containsID(self.Relationships.Requests, otherID) {
		return false, ErrRequestNotFound
	}

	self.Relationships.Requests, _ = removeIfPresent(self.Relationships.Requests, otherID)
	self.Relationships.Friends, _ = addIfAbsent(self.Relationships.Friends, otherID)
	if err := s.writeRelationships(ctx, selfID, self.Relationships); err != nil {
		return false, err
	}

	other.Relationships.Friends, _ = addIfAbsent(other.Relationships.Friends, selfID)
	// Clear any mirrored request so neither side keeps a stale invite.
	other.Relationships.Requests, _ = removeIfPresent(other.Relationships.Requests, selfID)
	if err := s.writeRelationships(ctx, otherID, other.Relationships); err != nil {
		return false, s.partialWrite("accept request", selfID, otherID, err)
	}

	s.logger.Debug("Friend request accepted", zap.String("self_id", selfID), zap.String("other_id", otherID))
	return false, nil
}

func (s *socialService) RemoveRequest(ctx context.Context, selfID, otherID string) error {
	self, _, err := s.loadPair(ctx, selfID, otherID)
	if err != nil {
		return err
	}
	requests, changed := removeIfPresent(self.Relationships.Requests, otherID)
	if !changed {
		// Removing an absent request converges to the same state.
		return nil
	}
	self.Relationships.Requests = requests
	if err := s.writeRelationships(ctx, selfID, self.Relationships); err != nil {
		return err
	}
	s.logger.Debug("Friend request removed", zap.String("self_id", selfID), zap.String("other_id", otherID))
	return nil
}

func (s *socialService) RemoveFriend(ctx context.Context, selfID, otherID string) error {
	self, other, err := s.loadPair(ctx, selfID, otherID)
	if err != nil {
		return err
	}
	friends, changed := removeIfPresent(self.Relationships.Friends, otherID)
	if !changed {
		return ErrNotFriends
	}
	self.Relationships.Friends = friends
	if err := s.writeRelationships(ctx, selfID, self.Relationships); err != nil {
		return err
	}

	otherFriends, changed := removeIfPresent(other.Relationships.Friends, selfID)
	if changed {
		other.Relationships.Friends = otherFriends
		if err := s.writeRelationships(ctx, otherID, other.Relationships); err != nil {
			return s.partialWrite("remove friend", selfID, otherID, err)
		}
	}

	s.logger.Debug("Friend removed", zap.String("self_id", selfID), zap.String("other_id", otherID))
	return nil
}

func (s *socialService) Block(ctx context.Context, selfID, otherID string) error {
	self, other, err := s.loadPair(ctx, selfID, otherID)
	if err != nil {
		return err
	}
	var blockChanged, friendChanged, requestChanged bool
	self.Relationships.Blocked, blockChanged = addIfAbsent(self.Relationships.Blocked, otherID)
	self.Relationships.Friends, friendChanged = removeIfPresent(self.Relationships.Friends, otherID)
	self.Relationships.Requests, requestChanged = removeIfPresent(self.Relationships.Requests, otherID)
	if blockChanged || friendChanged || requestChanged {
		if err := s.writeRelationships(ctx, selfID, self.Relationships); err != nil {
			return err
		}
	}

	// Only friend symmetry is cleaned up on the other side; their block
	// and request sets are owner-controlled and stay untouched.
	otherFriends, changed := removeIfPresent(other.Relationships.Friends, selfID)
	if changed {
		other.Relationships.Friends = otherFriends
		if err := s.writeRelationships(ctx, otherID, other.Relationships); err != nil {
			return s.partialWrite("block", selfID, otherID, err)
		}
	}

	s.logger.Debug("Player blocked", zap.String("self_id", selfID), zap.String("other_id", otherID))
	return nil
}

func (s *socialService) Unblock(ctx context.Context, selfID, otherID string) error {
	self, _, err := s.loadPair(ctx, selfID, otherID)
	if err != nil {
		return err
	}
	blocked, changed := removeIfPresent(self.Relationships.Blocked, otherID)
	if !changed {
		return ErrNotBlocked
	}
	self.Relationships.Blocked = blocked
	if err := s.writeRelationships(ctx, selfID, self.Relationships); err != nil {
		return err
	}
	s.logger.Debug("Player unblocked", zap.String("self_id", selfID), zap.String("other_id", otherID))
	return nil
}

func (s *socialService) GetRelationshipView(ctx context.Context, selfID string) (*RelationshipView, error) {
	if selfID == "" {
		return nil, ErrInvalidRequest
	}
	self, err := s.getPlayer(ctx, selfID)
	if err != nil {
		return nil, err
	}
	return s.project(ctx, []IDGroup{
		{Category: CategoryFriend, IDs: self.Relationships.Friends},
		{Category: CategoryRequest, IDs: self.Relationships.Requests},
		{Category: CategoryBlock, IDs: self.Relationships.Blocked},
	})
}

func (s *socialService) partialWrite(op, committedID, failedID string, err error) error {
	s.logger.Error("Partial relationship write",
		zap.String("op", op),
		zap.String("committed_id", committedID),
		zap.String("failed_id", failedID),
		zap.Error(err))
	return &PartialWriteError{Op: op, CommittedID: committedID, FailedID: failedID, Err: fmt.Errorf("%s: %w", op, err)}
}
