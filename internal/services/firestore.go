// Package services is the remote collection sync layer: Firestore-backed
// realtime subscriptions plus write-through create/update/delete for todos,
// birthdays, and groups. Every record is scoped to one owning user and the
// scope is enforced in the subscription query, never by client-side trust.
//
// Failures surface to the caller as-is; no retry or backoff happens here.
package services

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/rs/zerolog"
)

const (
	todosCollection     = "todos"
	birthdaysCollection = "birthdays"
	groupsCollection    = "groups"
)

// Store owns the Firestore client shared by the per-collection services.
type Store struct {
	client *firestore.Client
	log    zerolog.Logger
}

// NewStore connects to Firestore for the given project.
func NewStore(ctx context.Context, projectID string, log zerolog.Logger) (*Store, error) {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}
	return &Store{client: client, log: log}, nil
}

// Close releases the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

// Todos returns the todo collection service.
func (s *Store) Todos() *TodoService {
	return &TodoService{store: s}
}

// Birthdays returns the birthday collection service.
func (s *Store) Birthdays() *BirthdayService {
	return &BirthdayService{store: s}
}

// Groups returns the group collection service.
func (s *Store) Groups() *GroupService {
	return &GroupService{store: s}
}
