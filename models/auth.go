package models

// Roles carried in the auth token. Ownership of a guide is not a role: it is
// derived from Guide.OwnerUserID and must be checked against the specific
// guide being mutated.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// AuthContext is the caller identity passed explicitly into every core
// operation instead of an ambient session lookup, so authorization decisions
// stay deterministic and testable.
type AuthContext struct {
	UserID string `json:"userId"`
	Role   Role   `json:"role"`
}

// IsAdmin reports whether the caller holds the platform admin role.
func (a AuthContext) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Owns reports whether the caller is the owning user of the given guide.
func (a AuthContext) Owns(g *Guide) bool {
	return g != nil && g.OwnerUserID != "" && g.OwnerUserID == a.UserID
}
