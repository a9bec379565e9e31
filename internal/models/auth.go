package models

import "github.com/golang-jwt/jwt/v5"

// LoginRequest holds credentials for authenticating a user.
type LoginRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	IP        string `json:"-"`
	UserAgent string `json:"-"`
}

// UserInfo describes the authenticated user in responses. No password field.
type UserInfo struct {
	ID     int64    `json:"id"`
	Nombre string   `json:"nombre"`
	Email  string   `json:"email"`
	Rol    UserRole `json:"rol"`
	Activo bool     `json:"activo"`
}

// LoginResponse returns the issued token and a sanitized user projection.
type LoginResponse struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

// JWTClaims is the access token payload. Key names match the tokens issued by
// the legacy API so outstanding sessions stay valid across the migration.
type JWTClaims struct {
	UserID int64    `json:"userId"`
	Email  string   `json:"email"`
	Rol    UserRole `json:"rol"`
	jwt.RegisteredClaims
}

// Principal is the per-request identity resolved by the auth gate. It is
// re-read from the store on every request, never trusted from claims alone,
// and carries no password hash.
type Principal struct {
	ID     int64    `db:"id" json:"id"`
	Nombre string   `db:"nombre" json:"nombre"`
	Email  string   `db:"email" json:"email"`
	Rol    UserRole `db:"rol" json:"rol"`
	Activo bool     `db:"activo" json:"activo"`
}

// Info converts the principal to the response projection.
func (p *Principal) Info() UserInfo {
	return UserInfo{ID: p.ID, Nombre: p.Nombre, Email: p.Email, Rol: p.Rol, Activo: p.Activo}
}
