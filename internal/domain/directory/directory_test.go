package directory

import (
	"testing"

	"shopwise-server/internal/domain/session/model"
)

func TestSeededLookup(t *testing.T) {
	dir := NewSeeded()

	tests := []struct {
		name     string
		username string
		password string
		wantOK   bool
		wantRole model.Role
	}{
		{name: "seeded user", username: "muser", password: "muser", wantOK: true, wantRole: model.RoleUser},
		{name: "seeded admin", username: "mvc", password: "mvc", wantOK: true, wantRole: model.RoleAdmin},
		{name: "wrong password", username: "muser", password: "nope", wantOK: false},
		{name: "unknown user", username: "ghost", password: "ghost", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := dir.Lookup(tt.username, tt.password)
			if ok != tt.wantOK {
				t.Fatalf("Lookup ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && p.Role != tt.wantRole {
				t.Fatalf("Lookup role = %s, want %s", p.Role, tt.wantRole)
			}
		})
	}
}

func TestExistsAndCount(t *testing.T) {
	dir := NewSeeded()

	if !dir.Exists("muser") {
		t.Fatalf("expected muser to exist")
	}
	if dir.Exists("ghost") {
		t.Fatalf("did not expect ghost to exist")
	}
	if dir.Count() != 2 {
		t.Fatalf("expected 2 seeded users, got %d", dir.Count())
	}
}

func TestAddUpdateRemove(t *testing.T) {
	dir := NewSeeded()

	p := model.Principal{
		Username:  "newbie",
		Password:  "secret",
		Email:     "newbie@example.com",
		FirstName: "New",
		LastName:  "Bie",
	}
	if err := dir.Add(p); err != nil {
		t.Fatalf("Add error: %v", err)
	}
	if dir.Count() != 3 {
		t.Fatalf("expected 3 users after add, got %d", dir.Count())
	}

	added, ok := dir.Get("3")
	if !ok {
		t.Fatalf("expected generated id 3")
	}
	if added.Role != model.RoleUser {
		t.Fatalf("expected default role user, got %s", added.Role)
	}

	if err := dir.Add(model.Principal{Username: "newbie"}); err == nil {
		t.Fatalf("expected duplicate username error")
	}

	added.FirstName = "Renamed"
	if err := dir.Update(added); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	got, _ := dir.Get("3")
	if got.FirstName != "Renamed" {
		t.Fatalf("update not applied: %+v", got)
	}

	if err := dir.Remove("3"); err != nil {
		t.Fatalf("Remove error: %v", err)
	}
	if dir.Count() != 2 {
		t.Fatalf("expected 2 users after remove, got %d", dir.Count())
	}
	if err := dir.Remove("3"); err == nil {
		t.Fatalf("expected error removing absent user")
	}
}

func TestListReturnsCopy(t *testing.T) {
	dir := NewSeeded()
	users := dir.List()
	users[0].Username = "mutated"

	if _, ok := dir.Lookup("mutated", "muser"); ok {
		t.Fatalf("mutating the listed slice must not affect the directory")
	}
}
