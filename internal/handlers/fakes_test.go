package handlers

import (
	"context"
	"time"

	"github.com/pexkit/pexkit/internal/auth"
	"github.com/pexkit/pexkit/internal/models"
	"github.com/pexkit/pexkit/internal/services"
)

// fakeAuth satisfies auth.Authenticator with a fixed user, or none.
type fakeAuth struct {
	user *auth.User
}

func (f *fakeAuth) CurrentUser() (auth.User, bool) {
	if f.user == nil {
		return auth.User{}, false
	}
	return *f.user, true
}

func (f *fakeAuth) SignOut() error { return nil }

func (f *fakeAuth) OnStateChange(func(auth.State, *auth.User)) (cancel func()) {
	return func() {}
}

func signedIn() *fakeAuth {
	return &fakeAuth{user: &auth.User{ID: "user-1", DisplayName: "Test User"}}
}

func signedOut() *fakeAuth { return &fakeAuth{} }

// oneShot wraps a snapshot into a closed single-element channel, the shape
// fetchOnce and stream consume.
func oneShot[T any](records []T, err error) <-chan services.Snapshot[T] {
	ch := make(chan services.Snapshot[T], 1)
	ch <- services.Snapshot[T]{Records: records, Err: err}
	close(ch)
	return ch
}

// fakeTodoStore records mutation calls and serves canned snapshots. Error
// fields inject failures per operation.
type fakeTodoStore struct {
	todos        []models.Todo
	subscribeErr error
	createErr    error
	updateErr    error
	toggleErr    error
	deleteErr    error

	createdUserID string
	createdInput  models.TodoInput
	updatedID     string
	updated       models.TodoUpdate
	toggledID     string
	toggledTo     bool
	deletedID     string
}

func (f *fakeTodoStore) Subscribe(_ context.Context, _ string) <-chan services.Snapshot[models.Todo] {
	return oneShot(f.todos, f.subscribeErr)
}

func (f *fakeTodoStore) Create(_ context.Context, userID string, in models.TodoInput) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.createdUserID = userID
	f.createdInput = in
	return "new-todo-id", nil
}

func (f *fakeTodoStore) Update(_ context.Context, id string, u models.TodoUpdate) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updatedID = id
	f.updated = u
	return nil
}

func (f *fakeTodoStore) ToggleComplete(_ context.Context, id string, completed bool) error {
	if f.toggleErr != nil {
		return f.toggleErr
	}
	f.toggledID = id
	f.toggledTo = completed
	return nil
}

func (f *fakeTodoStore) Delete(_ context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedID = id
	return nil
}

type fakeBirthdayStore struct {
	birthdays    []models.Birthday
	subscribeErr error
	createErr    error
	updateErr    error
	deleteErr    error

	createdUserID string
	createdInput  models.BirthdayInput
	updatedID     string
	updated       models.BirthdayUpdate
	deletedID     string
}

func (f *fakeBirthdayStore) Subscribe(_ context.Context, _ string) <-chan services.Snapshot[models.Birthday] {
	return oneShot(f.birthdays, f.subscribeErr)
}

func (f *fakeBirthdayStore) Create(_ context.Context, userID string, in models.BirthdayInput) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.createdUserID = userID
	f.createdInput = in
	return "new-birthday-id", nil
}

func (f *fakeBirthdayStore) Update(_ context.Context, id string, u models.BirthdayUpdate) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updatedID = id
	f.updated = u
	return nil
}

func (f *fakeBirthdayStore) Delete(_ context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedID = id
	return nil
}

type fakeGroupStore struct {
	groups       []models.Group
	subscribeErr error
	createErr    error

	createdUserID string
	createdInput  models.GroupInput
	updatedID     string
	updated       models.GroupUpdate
	deletedID     string
}

func (f *fakeGroupStore) Subscribe(_ context.Context, _ string) <-chan services.Snapshot[models.Group] {
	return oneShot(f.groups, f.subscribeErr)
}

func (f *fakeGroupStore) Create(_ context.Context, userID string, in models.GroupInput) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.createdUserID = userID
	f.createdInput = in
	return "new-group-id", nil
}

func (f *fakeGroupStore) Update(_ context.Context, id string, u models.GroupUpdate) error {
	f.updatedID = id
	f.updated = u
	return nil
}

func (f *fakeGroupStore) Delete(_ context.Context, id string) error {
	f.deletedID = id
	return nil
}

type fakeSender struct {
	err   error
	calls int

	todos     []models.Todo
	birthdays []models.Birthday
}

func (f *fakeSender) SendDigest(todos []models.Todo, birthdays []models.Birthday, _ time.Time) error {
	if f.err != nil {
		return f.err
	}
	f.calls++
	f.todos = todos
	f.birthdays = birthdays
	return nil
}
