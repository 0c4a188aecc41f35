package services

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"github.com/pexkit/pexkit/internal/models"
)

// TodoService syncs the todos collection.
type TodoService struct {
	store *Store
}

// Subscribe streams full snapshots of the user's todos, newest first, until
// ctx is cancelled. With no user it emits one empty snapshot and closes.
func (s *TodoService) Subscribe(ctx context.Context, userID string) <-chan Snapshot[models.Todo] {
	if userID == "" {
		return emptySnapshot[models.Todo]()
	}
	q := s.store.client.Collection(todosCollection).
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc)

	out := make(chan Snapshot[models.Todo], 1)
	go watch(ctx, q, s.store.log, todosCollection, decodeTodo, out)
	return out
}

// Create validates and writes a new todo for the user. Timestamps are
// assigned by the server; empty optional fields are omitted from the stored
// document rather than written as nulls.
func (s *TodoService) Create(ctx context.Context, userID string, in models.TodoInput) (string, error) {
	if userID == "" {
		return "", ErrUnauthenticated
	}
	if err := in.Validate(); err != nil {
		return "", err
	}

	doc := map[string]interface{}{
		"userId":    userID,
		"title":     in.Title,
		"completed": in.Completed,
		"priority":  in.Priority,
		"tags":      models.NormalizeTags(in.Tags),
		"createdAt": firestore.ServerTimestamp,
		"updatedAt": firestore.ServerTimestamp,
	}
	if in.Description != "" {
		doc["description"] = in.Description
	}
	if in.DueDate != nil {
		doc["dueDate"] = *in.DueDate
	}

	id := uuid.New().String()
	if _, err := s.store.client.Collection(todosCollection).Doc(id).Set(ctx, doc); err != nil {
		s.store.log.Error().Err(err).Str("userId", userID).Msg("failed to create todo")
		return "", fmt.Errorf("failed to create todo: %w", err)
	}
	return id, nil
}

// Update applies a partial update. Only fields explicitly present change;
// cleared optional fields are written as explicit nulls so "clear" stays
// distinct from "don't touch". The update timestamp always refreshes.
func (s *TodoService) Update(ctx context.Context, id string, u models.TodoUpdate) error {
	if err := u.Validate(); err != nil {
		return err
	}

	updates := []firestore.Update{
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	}
	if u.Title.IsSet() {
		updates = append(updates, firestore.Update{Path: "title", Value: u.Title.Value()})
	}
	if u.Completed.IsSet() {
		updates = append(updates, firestore.Update{Path: "completed", Value: u.Completed.Value()})
	}
	if u.Priority.IsSet() {
		updates = append(updates, firestore.Update{Path: "priority", Value: u.Priority.Value()})
	}
	if u.Tags.IsSet() {
		updates = append(updates, firestore.Update{Path: "tags", Value: models.NormalizeTags(u.Tags.Value())})
	}
	switch {
	case u.Description.IsSet():
		updates = append(updates, firestore.Update{Path: "description", Value: u.Description.Value()})
	case u.Description.IsClear():
		updates = append(updates, firestore.Update{Path: "description", Value: nil})
	}
	switch {
	case u.DueDate.IsSet():
		updates = append(updates, firestore.Update{Path: "dueDate", Value: u.DueDate.Value()})
	case u.DueDate.IsClear():
		updates = append(updates, firestore.Update{Path: "dueDate", Value: nil})
	}

	if _, err := s.store.client.Collection(todosCollection).Doc(id).Update(ctx, updates); err != nil {
		s.store.log.Error().Err(err).Str("id", id).Msg("failed to update todo")
		return fmt.Errorf("failed to update todo: %w", err)
	}
	return nil
}

// ToggleComplete sets the completion flag and stamps or clears completedAt
// in the same write, keeping the two consistent.
func (s *TodoService) ToggleComplete(ctx context.Context, id string, completed bool) error {
	var completedAt interface{}
	if completed {
		completedAt = firestore.ServerTimestamp
	}

	updates := []firestore.Update{
		{Path: "completed", Value: completed},
		{Path: "completedAt", Value: completedAt},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	}
	if _, err := s.store.client.Collection(todosCollection).Doc(id).Update(ctx, updates); err != nil {
		s.store.log.Error().Err(err).Str("id", id).Msg("failed to toggle todo")
		return fmt.Errorf("failed to toggle todo: %w", err)
	}
	return nil
}

// Delete removes the todo. Nothing cascades.
func (s *TodoService) Delete(ctx context.Context, id string) error {
	if _, err := s.store.client.Collection(todosCollection).Doc(id).Delete(ctx); err != nil {
		s.store.log.Error().Err(err).Str("id", id).Msg("failed to delete todo")
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	return nil
}

func decodeTodo(doc *firestore.DocumentSnapshot) (models.Todo, error) {
	var todo models.Todo
	if err := doc.DataTo(&todo); err != nil {
		return models.Todo{}, fmt.Errorf("failed to unmarshal todo: %w", err)
	}
	todo.ID = doc.Ref.ID
	if todo.Tags == nil {
		todo.Tags = []string{}
	}
	return todo, nil
}
