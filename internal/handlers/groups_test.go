package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/rs/zerolog"

	"github.com/pexkit/pexkit/internal/models"
)

func TestGroupList(t *testing.T) {
	store := &fakeGroupStore{groups: []models.Group{
		{ID: "g1", Name: "Family", Color: "#3b82f6"},
		{ID: "g2", Name: "Friends", Color: "#10b981"},
	}}
	h := NewGroupHandler(signedIn(), store, zerolog.Nop())

	c, rec := newTestContext(http.MethodGet, "/api/groups", "")
	if err := h.List(c); err != nil {
		t.Fatalf("List: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp map[string][]models.Group
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	groups := resp["groups"]
	if len(groups) != 2 || groups[0].Name != "Family" || groups[1].Name != "Friends" {
		t.Errorf("groups = %+v", groups)
	}
}

func TestGroupCreate(t *testing.T) {
	store := &fakeGroupStore{}
	h := NewGroupHandler(signedIn(), store, zerolog.Nop())

	c, rec := newTestContext(http.MethodPost, "/api/groups", `{"name": "Team", "color": "#ff0000"}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if store.createdUserID != "user-1" {
		t.Errorf("created for user %q", store.createdUserID)
	}
	if store.createdInput.Name != "Team" || store.createdInput.Color != "#ff0000" {
		t.Errorf("created input = %+v", store.createdInput)
	}
}

func TestGroupCreateRequiresSignIn(t *testing.T) {
	h := NewGroupHandler(signedOut(), &fakeGroupStore{}, zerolog.Nop())

	c, rec := newTestContext(http.MethodPost, "/api/groups", `{"name": "Team"}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestGroupUpdate(t *testing.T) {
	store := &fakeGroupStore{}
	h := NewGroupHandler(signedIn(), store, zerolog.Nop())

	c, rec := newTestContext(http.MethodPatch, "/api/groups/g1", `{"name": "Close friends"}`)
	c.SetParamNames("id")
	c.SetParamValues("g1")
	if err := h.Update(c); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if store.updatedID != "g1" {
		t.Errorf("updated id = %q", store.updatedID)
	}
	if !store.updated.Name.IsSet() || store.updated.Name.Value() != "Close friends" {
		t.Errorf("name field = %+v", store.updated.Name)
	}
	if !store.updated.Color.IsUnchanged() {
		t.Errorf("absent color arrived as %+v", store.updated.Color)
	}
}

func TestGroupDelete(t *testing.T) {
	store := &fakeGroupStore{}
	h := NewGroupHandler(signedIn(), store, zerolog.Nop())

	c, rec := newTestContext(http.MethodDelete, "/api/groups/g1", "")
	c.SetParamNames("id")
	c.SetParamValues("g1")
	if err := h.Delete(c); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if store.deletedID != "g1" {
		t.Errorf("deleted id = %q", store.deletedID)
	}
}
