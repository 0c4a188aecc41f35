package services

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"github.com/pexkit/pexkit/internal/models"
)

// BirthdayService syncs the birthdays collection.
type BirthdayService struct {
	store *Store
}

// Subscribe streams full snapshots of the user's birthdays, newest first,
// until ctx is cancelled. With no user it emits one empty snapshot and
// closes.
func (s *BirthdayService) Subscribe(ctx context.Context, userID string) <-chan Snapshot[models.Birthday] {
	if userID == "" {
		return emptySnapshot[models.Birthday]()
	}
	q := s.store.client.Collection(birthdaysCollection).
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc)

	out := make(chan Snapshot[models.Birthday], 1)
	go watch(ctx, q, s.store.log, birthdaysCollection, decodeBirthday, out)
	return out
}

// Create validates and writes a new birthday for the user. Unknown year,
// empty notes, and empty group refs are omitted from the stored document.
func (s *BirthdayService) Create(ctx context.Context, userID string, in models.BirthdayInput) (string, error) {
	if userID == "" {
		return "", ErrUnauthenticated
	}
	if err := in.Validate(); err != nil {
		return "", err
	}

	doc := map[string]interface{}{
		"userId":     userID,
		"name":       in.Name,
		"birthMonth": in.BirthMonth,
		"birthDay":   in.BirthDay,
		"createdAt":  firestore.ServerTimestamp,
		"updatedAt":  firestore.ServerTimestamp,
	}
	if in.BirthYear != 0 {
		doc["birthYear"] = in.BirthYear
	}
	if in.Notes != "" {
		doc["notes"] = in.Notes
	}
	if len(in.Groups) > 0 {
		doc["groups"] = in.Groups
	}

	id := uuid.New().String()
	if _, err := s.store.client.Collection(birthdaysCollection).Doc(id).Set(ctx, doc); err != nil {
		s.store.log.Error().Err(err).Str("userId", userID).Msg("failed to create birthday")
		return "", fmt.Errorf("failed to create birthday: %w", err)
	}
	return id, nil
}

// Update applies a partial update; cleared optional fields become explicit
// nulls. The update timestamp always refreshes.
func (s *BirthdayService) Update(ctx context.Context, id string, u models.BirthdayUpdate) error {
	if err := u.Validate(); err != nil {
		return err
	}

	updates := []firestore.Update{
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	}
	if u.Name.IsSet() {
		updates = append(updates, firestore.Update{Path: "name", Value: u.Name.Value()})
	}
	if u.BirthMonth.IsSet() {
		updates = append(updates, firestore.Update{Path: "birthMonth", Value: u.BirthMonth.Value()})
	}
	if u.BirthDay.IsSet() {
		updates = append(updates, firestore.Update{Path: "birthDay", Value: u.BirthDay.Value()})
	}
	switch {
	case u.BirthYear.IsSet():
		updates = append(updates, firestore.Update{Path: "birthYear", Value: u.BirthYear.Value()})
	case u.BirthYear.IsClear():
		updates = append(updates, firestore.Update{Path: "birthYear", Value: nil})
	}
	switch {
	case u.Groups.IsSet():
		updates = append(updates, firestore.Update{Path: "groups", Value: u.Groups.Value()})
	case u.Groups.IsClear():
		updates = append(updates, firestore.Update{Path: "groups", Value: nil})
	}
	switch {
	case u.Notes.IsSet():
		updates = append(updates, firestore.Update{Path: "notes", Value: u.Notes.Value()})
	case u.Notes.IsClear():
		updates = append(updates, firestore.Update{Path: "notes", Value: nil})
	}

	if _, err := s.store.client.Collection(birthdaysCollection).Doc(id).Update(ctx, updates); err != nil {
		s.store.log.Error().Err(err).Str("id", id).Msg("failed to update birthday")
		return fmt.Errorf("failed to update birthday: %w", err)
	}
	return nil
}

// Delete removes the birthday. Group references simply disappear with it.
func (s *BirthdayService) Delete(ctx context.Context, id string) error {
	if _, err := s.store.client.Collection(birthdaysCollection).Doc(id).Delete(ctx); err != nil {
		s.store.log.Error().Err(err).Str("id", id).Msg("failed to delete birthday")
		return fmt.Errorf("failed to delete birthday: %w", err)
	}
	return nil
}

func decodeBirthday(doc *firestore.DocumentSnapshot) (models.Birthday, error) {
	var b models.Birthday
	if err := doc.DataTo(&b); err != nil {
		return models.Birthday{}, fmt.Errorf("failed to unmarshal birthday: %w", err)
	}
	b.ID = doc.Ref.ID
	return b, nil
}
