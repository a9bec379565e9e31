package models

import "time"

// UserRole is the closed set of roles understood by the role gate. Values match
// the `rol` column of the Usuario table.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleTeacher UserRole = "profesor"
	RoleStudent UserRole = "alumno"
)

// Valid reports whether the role is one of the known variants.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

// User represents a row of the Usuario table. The password hash never
// serialises to JSON.
type User struct {
	ID            int64     `db:"id" json:"id"`
	Nombre        string    `db:"nombre" json:"nombre"`
	Email         string    `db:"email" json:"email"`
	PasswordHash  string    `db:"password" json:"-"`
	Rol           UserRole  `db:"rol" json:"rol"`
	Activo        bool      `db:"activo" json:"activo"`
	FechaCreacion time.Time `db:"fecha_creacion" json:"fecha_creacion"`
}

// PublicUser is the Usuario projection returned by the API (no hash column is
// even selected for it).
type PublicUser struct {
	ID            int64     `db:"id" json:"id"`
	Nombre        string    `db:"nombre" json:"nombre"`
	Email         string    `db:"email" json:"email"`
	Rol           UserRole  `db:"rol" json:"rol"`
	Activo        bool      `db:"activo" json:"activo"`
	FechaCreacion time.Time `db:"fecha_creacion" json:"fecha_creacion"`
}

// UserFilter captures list criteria for Usuario queries.
type UserFilter struct {
	Search string
	Page   int
	Limit  int
}

// Pagination contains pagination metadata for list responses.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalCount int `json:"total_count"`
}
