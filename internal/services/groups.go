package services

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"github.com/pexkit/pexkit/internal/models"
)

// defaultGroupColor is used when a new group is created without one.
const defaultGroupColor = "#3b82f6"

// DefaultGroups are seeded once for every user whose group collection is
// observed empty.
var DefaultGroups = []models.GroupInput{
	{Name: "Family", Color: "#3b82f6"},
	{Name: "Friends", Color: "#10b981"},
	{Name: "Colleagues", Color: "#8b5cf6"},
}

// GroupService syncs the groups collection.
type GroupService struct {
	store *Store
}

// Subscribe streams full snapshots of the user's groups, oldest first, until
// ctx is cancelled. The first empty snapshot triggers the one-time default
// seeding; the seeded groups then arrive through the live query like any
// other remote change.
func (s *GroupService) Subscribe(ctx context.Context, userID string) <-chan Snapshot[models.Group] {
	if userID == "" {
		return emptySnapshot[models.Group]()
	}
	q := s.store.client.Collection(groupsCollection).
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Asc)

	inner := make(chan Snapshot[models.Group], 1)
	go watch(ctx, q, s.store.log, groupsCollection, decodeGroup, inner)

	out := make(chan Snapshot[models.Group], 1)
	go func() {
		defer close(out)
		seeded := false
		for snap := range inner {
			if snap.Err == nil && len(snap.Records) == 0 && !seeded {
				seeded = true
				if err := s.EnsureDefaults(ctx, userID); err != nil {
					s.store.log.Error().Err(err).Str("userId", userID).Msg("failed to seed default groups")
					// Fall through and surface the empty list rather than
					// leaving the subscriber waiting forever.
				} else {
					// Suppress the empty snapshot; the listener delivers the
					// seeded groups next.
					continue
				}
			}
			select {
			case out <- snap:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// EnsureDefaults seeds the starter groups for a user whose group collection
// is empty. The emptiness check and the writes run in a single transaction,
// so two concurrent bootstraps cannot both seed.
func (s *GroupService) EnsureDefaults(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrUnauthenticated
	}
	err := s.store.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		q := s.store.client.Collection(groupsCollection).
			Where("userId", "==", userID).
			Limit(1)
		existing, err := tx.Documents(q).GetAll()
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return nil
		}
		for _, g := range DefaultGroups {
			ref := s.store.client.Collection(groupsCollection).Doc(uuid.New().String())
			if err := tx.Set(ref, map[string]interface{}{
				"userId":    userID,
				"name":      g.Name,
				"color":     g.Color,
				"createdAt": firestore.ServerTimestamp,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to seed default groups: %w", err)
	}
	return nil
}

// Create validates and writes a new group for the user.
func (s *GroupService) Create(ctx context.Context, userID string, in models.GroupInput) (string, error) {
	if userID == "" {
		return "", ErrUnauthenticated
	}
	if err := in.Validate(); err != nil {
		return "", err
	}
	color := in.Color
	if color == "" {
		color = defaultGroupColor
	}

	id := uuid.New().String()
	_, err := s.store.client.Collection(groupsCollection).Doc(id).Set(ctx, map[string]interface{}{
		"userId":    userID,
		"name":      in.Name,
		"color":     color,
		"createdAt": firestore.ServerTimestamp,
	})
	if err != nil {
		s.store.log.Error().Err(err).Str("userId", userID).Msg("failed to create group")
		return "", fmt.Errorf("failed to create group: %w", err)
	}
	return id, nil
}

// Update applies a partial update to the group's name or color.
func (s *GroupService) Update(ctx context.Context, id string, u models.GroupUpdate) error {
	if err := u.Validate(); err != nil {
		return err
	}

	var updates []firestore.Update
	if u.Name.IsSet() {
		updates = append(updates, firestore.Update{Path: "name", Value: u.Name.Value()})
	}
	if u.Color.IsSet() {
		updates = append(updates, firestore.Update{Path: "color", Value: u.Color.Value()})
	}
	if len(updates) == 0 {
		return nil
	}

	if _, err := s.store.client.Collection(groupsCollection).Doc(id).Update(ctx, updates); err != nil {
		s.store.log.Error().Err(err).Str("id", id).Msg("failed to update group")
		return fmt.Errorf("failed to update group: %w", err)
	}
	return nil
}

// Delete removes the group. Birthdays referencing it keep their dangling
// reference; it is skipped on display.
func (s *GroupService) Delete(ctx context.Context, id string) error {
	if _, err := s.store.client.Collection(groupsCollection).Doc(id).Delete(ctx); err != nil {
		s.store.log.Error().Err(err).Str("id", id).Msg("failed to delete group")
		return fmt.Errorf("failed to delete group: %w", err)
	}
	return nil
}

func decodeGroup(doc *firestore.DocumentSnapshot) (models.Group, error) {
	var g models.Group
	if err := doc.DataTo(&g); err != nil {
		return models.Group{}, fmt.Errorf("failed to unmarshal group: %w", err)
	}
	g.ID = doc.Ref.ID
	return g, nil
}
