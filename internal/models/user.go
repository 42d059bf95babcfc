package models

import "time"

// Role represents a principal role within the platform.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleCoordinator Role = "coordinator"
	RoleTeacher     Role = "teacher"
	RoleStudent     Role = "student"
)

// ValidRole reports whether the tag is one of the four known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleCoordinator, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

// NormalizeRoles deduplicates the set and enforces the invariant that any
// principal holding coordinator also holds teacher. Coordinator is never a
// standalone role.
func NormalizeRoles(roles []Role) []Role {
	seen := make(map[Role]struct{}, len(roles))
	out := make([]Role, 0, len(roles)+1)
	for _, r := range roles {
		if !ValidRole(r) {
			continue
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	if _, ok := seen[RoleCoordinator]; ok {
		if _, ok := seen[RoleTeacher]; !ok {
			out = append(out, RoleTeacher)
		}
	}
	return out
}

// User is an application principal. Roles is always a non-empty set; there is
// no single-role/role-array ambiguity at this layer.
type User struct {
	ID                  string    `json:"id"`
	NationalID          string    `json:"national_id"`
	FirstName           string    `json:"first_name"`
	LastName            string    `json:"last_name"`
	Email               string    `json:"email"`
	PasswordHash        string    `json:"password_hash"`
	Roles               []Role    `json:"roles"`
	Career              string    `json:"career,omitempty"`
	Semester            string    `json:"semester,omitempty"`
	Phone               string    `json:"phone,omitempty"`
	Active              bool      `json:"active"`
	ForcePasswordChange bool      `json:"force_password_change"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// Key returns the collection key for the record.
func (u User) Key() string { return u.ID }

// HasRole reports whether the user holds the given role.
func (u User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// FullName joins given and family names for display.
func (u User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// PublicUser is the user shape handed to API consumers; the password hash
// never leaves the service layer.
type PublicUser struct {
	ID                  string    `json:"id"`
	NationalID          string    `json:"national_id"`
	FirstName           string    `json:"first_name"`
	LastName            string    `json:"last_name"`
	Email               string    `json:"email"`
	Roles               []Role    `json:"roles"`
	Career              string    `json:"career,omitempty"`
	Semester            string    `json:"semester,omitempty"`
	Phone               string    `json:"phone,omitempty"`
	Active              bool      `json:"active"`
	ForcePasswordChange bool      `json:"force_password_change"`
	CreatedAt           time.Time `json:"created_at"`
}

// Public strips credentials from the user record.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:                  u.ID,
		NationalID:          u.NationalID,
		FirstName:           u.FirstName,
		LastName:            u.LastName,
		Email:               u.Email,
		Roles:               u.Roles,
		Career:              u.Career,
		Semester:            u.Semester,
		Phone:               u.Phone,
		Active:              u.Active,
		ForcePasswordChange: u.ForcePasswordChange,
		CreatedAt:           u.CreatedAt,
	}
}
