package models

import "time"

// Role is a marketplace role a user has onboarded into.
type Role string

const (
	RoleBrand   Role = "brand"
	RoleTalent  Role = "talent"
	RoleService Role = "service"
)

// ValidRole reports whether r is a known marketplace role.
func ValidRole(r Role) bool {
	switch r {
	case RoleBrand, RoleTalent, RoleService:
		return true
	}
	return false
}

// RoleSet is the explicit owned set of role flags attached to a user
// identity. Transitions are add-only and idempotent; roles are never
// removed by this layer.
type RoleSet map[Role]bool

// Add records a role. Adding an already-present role is a no-op.
func (s RoleSet) Add(r Role) {
	s[r] = true
}

// Has reports membership.
func (s RoleSet) Has(r Role) bool {
	return s[r]
}

// Slice returns the roles in a stable order for persistence.
func (s RoleSet) Slice() []Role {
	out := make([]Role, 0, len(s))
	for _, r := range []Role{RoleBrand, RoleTalent, RoleService} {
		if s[r] {
			out = append(out, r)
		}
	}
	return out
}

// User is the signed-in identity as supplied by the identity provider, plus
// the role flags this application maintains.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	IsAdmin   bool      `json:"isAdmin"`
	Roles     RoleSet   `json:"roles"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CanEdit reports whether the user may mutate a record owned by ownerID.
// Ownership or the admin override; the backend policy remains the source of
// truth, this check only decides which view the API serves.
func (u *User) CanEdit(ownerID string) bool {
	return u != nil && (u.IsAdmin || u.ID == ownerID)
}
