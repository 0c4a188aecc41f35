package state

import "github.com/pexkit/pexkit/internal/views"

// TodoView groups the view-state slots for the todo page. SelectedTags is
// declared but not yet consulted by the engine; it is reserved for tag
// filtering.
type TodoView struct {
	Filter        *Slot[views.TodoFilter]
	Sort          *Slot[views.TodoSort]
	Search        *Slot[string]
	SelectedTags  *Slot[[]string]
	AddDialogOpen *Slot[bool]
	EditingID     *Slot[string]
}

// NewTodoView creates the todo slots with their defaults.
func NewTodoView() *TodoView {
	return &TodoView{
		Filter:        NewSlot(views.FilterAll),
		Sort:          NewSlot(views.SortCreatedAt),
		Search:        NewSlot(""),
		SelectedTags:  NewSlot[[]string](nil),
		AddDialogOpen: NewSlot(false),
		EditingID:     NewSlot(""),
	}
}

// BirthdayView groups the view-state slots for the birthday page.
// SelectedGroups is reserved the same way TodoView.SelectedTags is.
type BirthdayView struct {
	Mode             *Slot[views.ViewMode]
	Search           *Slot[string]
	SelectedGroups   *Slot[[]string]
	AddDialogOpen    *Slot[bool]
	EditingID        *Slot[string]
	ManageGroupsOpen *Slot[bool]
}

// NewBirthdayView creates the birthday slots with their defaults.
func NewBirthdayView() *BirthdayView {
	return &BirthdayView{
		Mode:             NewSlot(views.ModeList),
		Search:           NewSlot(""),
		SelectedGroups:   NewSlot[[]string](nil),
		AddDialogOpen:    NewSlot(false),
		EditingID:        NewSlot(""),
		ManageGroupsOpen: NewSlot(false),
	}
}
