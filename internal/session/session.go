// Package session holds the portal's role context: a single process-wide
// role toggled between user and admin. This is a visibility toggle for the
// portal UI, not a security boundary; there is no authentication in scope.
package session

import "sync"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Roles is the role context. It is owned by the composition root and passed
// by handle to the handlers and middleware that need it.
type Roles struct {
	mu   sync.RWMutex
	role Role
}

// NewRoles returns a role context with the default role, user.
func NewRoles() *Roles {
	return &Roles{role: RoleUser}
}

func (r *Roles) Role() Role {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.role
}

func (r *Roles) LoginAsAdmin() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.role = RoleAdmin
}

func (r *Roles) LoginAsUser() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.role = RoleUser
}
