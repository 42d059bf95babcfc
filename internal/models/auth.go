package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// LoginRequest holds credentials for authenticating a user.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the issued token and user info. When the principal
// holds several roles no token is issued yet; RoleOptions lists the choices
// and the caller completes login via role selection.
type LoginResponse struct {
	AccessToken         string     `json:"access_token,omitempty"`
	ExpiresIn           int64      `json:"expires_in,omitempty"`
	User                PublicUser `json:"user"`
	ActiveRole          Role       `json:"active_role,omitempty"`
	RoleOptions         []Role     `json:"role_options,omitempty"`
	ForcePasswordChange bool       `json:"force_password_change"`
	IssuedAt            time.Time  `json:"issued_at"`
}

// SelectRoleRequest designates the active role for a multi-role session.
type SelectRoleRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Role   Role   `json:"role" validate:"required"`
}

// ChangePasswordRequest payload for updating a password.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// JWTClaims represents the JWT payload for access tokens. ActiveRole is the
// single role the principal selected for this session; authorization checks
// gate on it, not on the full role set.
type JWTClaims struct {
	UserID     string `json:"user_id"`
	ActiveRole Role   `json:"active_role"`
	Email      string `json:"email"`
	FullName   string `json:"full_name"`
	jwt.RegisteredClaims
}

// SessionKey is the fixed key of the single session record.
const SessionKey = "current"

// Session is the persisted snapshot of the authenticated principal. It caches
// the profile so downstream consumers never need the password hash.
type Session struct {
	User       PublicUser `json:"user"`
	ActiveRole Role       `json:"active_role,omitempty"`
	LoginAt    time.Time  `json:"login_at"`
}

// Key satisfies the collection record contract; the session collection holds
// at most one record.
func (s Session) Key() string { return SessionKey }
