// Package directory holds the known-user set the session domain
// authenticates against. The set is seeded at startup; registrations do
// not write back into it, matching the mock credential model where a real
// deployment would persist accounts to a user table instead.
package directory

import (
	"fmt"
	"sync"

	"shopwise-server/internal/domain/session/model"
)

// Directory is the in-memory known-user set.
type Directory struct {
	mu    sync.RWMutex
	users []model.Principal
}

// New builds a directory from the given principals.
func New(users []model.Principal) *Directory {
	copied := make([]model.Principal, len(users))
	copy(copied, users)
	return &Directory{users: copied}
}

// NewSeeded builds a directory preloaded with the demo accounts.
func NewSeeded() *Directory {
	return New(seedUsers())
}

func seedUsers() []model.Principal {
	return []model.Principal{
		{
			ID:        "1",
			Username:  "muser",
			Password:  "muser",
			Role:      model.RoleUser,
			Email:     "mockuser@example.com",
			FirstName: "Mock",
			LastName:  "User",
		},
		{
			ID:        "2",
			Username:  "mvc",
			Password:  "mvc",
			Role:      model.RoleAdmin,
			Email:     "mockadmin@example.com",
			FirstName: "Mock",
			LastName:  "Admin",
		},
	}
}

// Lookup finds a principal by exact username and password match. Unknown
// username and wrong password are indistinguishable to the caller.
func (d *Directory) Lookup(username, password string) (model.Principal, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, u := range d.users {
		if u.Username == username && u.Password == password {
			return u, true
		}
	}
	return model.Principal{}, false
}

// Exists reports whether a username is already taken.
func (d *Directory) Exists(username string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, u := range d.users {
		if u.Username == username {
			return true
		}
	}
	return false
}

// Count returns the number of known users.
func (d *Directory) Count() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.users)
}

// List returns a copy of all known users.
func (d *Directory) List() []model.Principal {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]model.Principal, len(d.users))
	copy(out, d.users)
	return out
}

// Get returns a principal by id.
func (d *Directory) Get(id string) (model.Principal, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, u := range d.users {
		if u.ID == id {
			return u, true
		}
	}
	return model.Principal{}, false
}

// Add inserts a new principal, used by the admin user management surface.
func (d *Directory) Add(p model.Principal) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, u := range d.users {
		if u.Username == p.Username {
			return fmt.Errorf("username already exists: %s", p.Username)
		}
	}
	if p.ID == "" {
		p.ID = fmt.Sprintf("%d", len(d.users)+1)
	}
	if p.Role == "" {
		p.Role = model.RoleUser
	}
	d.users = append(d.users, p)
	return nil
}

// Update replaces the principal with the same id.
func (d *Directory) Update(p model.Principal) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i, u := range d.users {
		if u.ID == p.ID {
			d.users[i] = p
			return nil
		}
	}
	return fmt.Errorf("user not found: %s", p.ID)
}

// Remove deletes the principal by id.
func (d *Directory) Remove(id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i, u := range d.users {
		if u.ID == id {
			d.users = append(d.users[:i], d.users[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("user not found: %s", id)
}
