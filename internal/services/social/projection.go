package social

import (
	"context"

	"go.uber.org/zap"
)

// Relationship categories used by the projection.
const (
	CategoryFriend  = "friend"
	CategoryRequest = "request"
	CategoryBlock   = "block"
)

// IDGroup is one category-labeled list of player identifiers to project.
type IDGroup struct {
	Category string
	IDs      []string
}

// PlayerSummary is the display record produced for one resolved player.
type PlayerSummary struct {
	PlayerID    string `json:"playerId"`
	PlayerName  string `json:"playerName"`
	PilotActive string `json:"pilotActive"`
}

// RelationshipView is the projected view of a player's three sets.
type RelationshipView struct {
	Friends  []PlayerSummary `json:"friend"`
	Requests []PlayerSummary `json:"request"`
	Blocked  []PlayerSummary `json:"block"`
}

// project resolves every identifier across all groups in one batched
// store read, then filters the resolved sequence against each
// category's membership. An identifier present in two categories is
// listed under both. Identifiers that fail to resolve, and resolved
// players with no display name, are dropped with a diagnostic; they
// never fail the batch.
func (s *socialService) project(ctx context.Context, groups []IDGroup) (*RelationshipView, error) {
	var flat []string
	seen := make(map[string]bool)
	for _, group := range groups {
		for _, id := range group.IDs {
			if !seen[id] {
				seen[id] = true
				flat = append(flat, id)
			}
		}
	}

	players, err := s.store.GetMany(ctx, flat)
	if err != nil {
		s.logger.Error("Failed to resolve players for projection", zap.Error(err))
		return nil, ErrStoreUnavailable
	}

	resolved := make([]PlayerSummary, 0, len(flat))
	for _, id := range flat {
		player, ok := players[id]
		if !ok {
			s.logger.Warn("Dropping unresolvable player from projection", zap.String("player_id", id))
			continue
		}
		if player.PlayerName == "" {
			s.logger.Warn("Dropping player with no display name from projection", zap.String("player_id", id))
			continue
		}
		resolved = append(resolved, PlayerSummary{
			PlayerID:    player.PlayerID,
			PlayerName:  player.PlayerName,
			PilotActive: player.PilotActive,
		})
	}

	view := &RelationshipView{
		Friends:  []PlayerSummary{},
		Requests: []PlayerSummary{},
		Blocked:  []PlayerSummary{},
	}
	for _, group := range groups {
		members := make(map[string]bool, len(group.IDs))
		for _, id := range group.IDs {
			members[id] = true
		}
		var out []PlayerSummary
		for _, summary := range resolved {
			if members[summary.PlayerID] {
				out = append(out, summary)
			}
		}
		switch group.Category {
		case CategoryFriend:
			view.Friends = append(view.Friends, out...)
		case CategoryRequest:
			view.Requests = append(view.Requests, out...)
		case CategoryBlock:
			view.Blocked = append(view.Blocked, out...)
		}
	}
	return view, nil
}
