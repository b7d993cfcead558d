package social

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrInvalidRequest   = errors.New("invalid player identifier")
	ErrPlayerNotFound   = errors.New("player not found")
	ErrBlocked          = errors.New("player is blocked")
	ErrAlreadyFriends   = errors.New("players are already friends")
	ErrDuplicateRequest = errors.New("friend request already sent")
	ErrRequestNotFound  = errors.New("friend request not found")
	ErrNotFriends       = errors.New("players are not friends")
	ErrNotBlocked       = errors.New("player is not blocked")
	ErrStoreUnavailable = errors.New("player store unavailable")

	// ErrPartialWrite marks a two-sided transition that committed on one
	// side but not the other. Match with errors.Is; the concrete
	// *PartialWriteError carries which side committed.
	ErrPartialWrite = errors.New("partial write failure")
)

// PartialWriteError reports a two-sided relationship write that
// committed for one player but failed for the other. The engine does
// not roll back the committed side; retrying the same operation is safe
// because every set mutation is idempotent.
type PartialWriteError struct {
	Op          string
	CommittedID string
	FailedID    string
	Err         error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("%s: wrote %s but failed to write %s: %v", e.Op, e.CommittedID, e.FailedID, e.Err)
}

func (e *PartialWriteError) Unwrap() error { return e.Err }

// Is reports true for ErrPartialWrite so callers can classify without
// unwrapping manually.
func (e *PartialWriteError) Is(target error) bool { return target == ErrPartialWrite }

// Service maintains the friend, request, and block sets of every player
// and keeps the friend relation symmetric across both players' documents.
type Service interface {
	// SendRequest records self as an incoming friend request on other.
	SendRequest(ctx context.Context, selfID, otherID string) error
	// AcceptRequest consumes the pending request from other and makes
	// the players friends on both sides. If they are already friends it
	// succeeds without writing and returns alreadyFriends=true.
	AcceptRequest(ctx context.Context, selfID, otherID string) (alreadyFriends bool, err error)
	// RemoveRequest discards the pending request from other. Removing a
	// request that is not present is a no-op success.
	RemoveRequest(ctx context.Context, selfID, otherID string) error
	// RemoveFriend ends the friendship on both sides.
	RemoveFriend(ctx context.Context, selfID, otherID string) error
	// Block adds other to self's block set and severs any friendship or
	// pending request between the two.
	Block(ctx context.Context, selfID, otherID string) error
	// Unblock removes other from self's block set.
	Unblock(ctx context.Context, selfID, otherID string) error
	// GetRelationshipView projects self's three sets into display records.
	GetRelationshipView(ctx context.Context, selfID string) (*RelationshipView, error)
}
