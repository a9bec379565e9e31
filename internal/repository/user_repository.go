package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sga-api/internal/models"
)

const (
	userColumns       = "id, nombre, email, password, rol, activo, fecha_creacion"
	userPublicColumns = "id, nombre, email, rol, activo, fecha_creacion"
)

// UserRepository provides database access for the Usuario table.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByEmail returns a user (hash included) by email address. Used by login.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := fmt.Sprintf("SELECT %s FROM Usuario WHERE email = $1 LIMIT 1", userColumns)
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

// FindByID returns a public user projection by identifier.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*models.PublicUser, error) {
	query := fmt.Sprintf("SELECT %s FROM Usuario WHERE id = $1 LIMIT 1", userPublicColumns)
	var user models.PublicUser
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &user, nil
}

// FindPrincipalByID resolves the authenticated principal for the auth gate.
// The password column is never selected here.
func (r *UserRepository) FindPrincipalByID(ctx context.Context, id int64) (*models.Principal, error) {
	const query = `SELECT id, nombre, email, rol, activo FROM Usuario WHERE id = $1 LIMIT 1`
	var p models.Principal
	if err := r.db.GetContext(ctx, &p, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find principal by id: %w", err)
	}
	return &p, nil
}

// ExistsByEmail checks whether an email is already registered.
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists int
	if err := r.db.GetContext(ctx, &exists, "SELECT 1 FROM Usuario WHERE email = $1 LIMIT 1", email); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check email: %w", err)
	}
	return true, nil
}

// List returns public users matching the filter with the total count.
func (r *UserRepository) List(ctx context.Context, filter models.UserFilter) ([]models.PublicUser, int, error) {
	base := "FROM Usuario WHERE 1=1"
	var args []interface{}

	if filter.Search != "" {
		base += fmt.Sprintf(" AND (LOWER(nombre) LIKE $%d OR LOWER(email) LIKE $%d)", len(args)+1, len(args)+1)
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	listQuery := fmt.Sprintf("SELECT %s %s ORDER BY fecha_creacion DESC LIMIT %d OFFSET %d",
		userPublicColumns, base, limit, offset)

	users := []models.PublicUser{}
	if err := r.db.SelectContext(ctx, &users, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	return users, total, nil
}

// Create inserts a new user and returns the stored public projection.
func (r *UserRepository) Create(ctx context.Context, nombre, email, passwordHash string, rol models.UserRole) (*models.PublicUser, error) {
	query := fmt.Sprintf(`INSERT INTO Usuario (nombre, email, password, rol) VALUES ($1, $2, $3, $4) RETURNING %s`, userPublicColumns)
	var user models.PublicUser
	if err := r.db.GetContext(ctx, &user, query, nombre, email, passwordHash, rol); err != nil {
		return nil, translateError(err, "create user")
	}
	return &user, nil
}

// PartialUpdate applies the supplied field set and returns the updated row.
func (r *UserRepository) PartialUpdate(ctx context.Context, id int64, fields []Field) (*models.PublicUser, error) {
	var user models.PublicUser
	if err := applyPartialUpdate(ctx, r.db, "Usuario", "id", id, userPublicColumns, fields, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete removes a user row. sql.ErrNoRows signals a missing identifier.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	var deleted int64
	if err := r.db.GetContext(ctx, &deleted, "DELETE FROM Usuario WHERE id = $1 RETURNING id", id); err != nil {
		if err == sql.ErrNoRows {
			return err
		}
		return translateError(err, "delete user")
	}
	return nil
}
