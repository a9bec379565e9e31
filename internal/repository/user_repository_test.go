package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sga-api/internal/models"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	sqlxdb := sqlx.NewDb(db, "sqlmock")
	return sqlxdb, mock, func() {
		db.Close()
	}
}

func TestFindByEmail(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "nombre", "email", "password", "rol", "activo", "fecha_creacion"}).
		AddRow(1, "Admin", "admin@universidad.edu", "hash", string(models.RoleAdmin), true, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, nombre, email, password, rol, activo, fecha_creacion FROM Usuario WHERE email = $1 LIMIT 1")).
		WithArgs("admin@universidad.edu").
		WillReturnRows(rows)

	user, err := repo.FindByEmail(context.Background(), "admin@universidad.edu")
	require.NoError(t, err)
	assert.Equal(t, "admin@universidad.edu", user.Email)
	assert.Equal(t, "hash", user.PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindPrincipalByIDExcludesHash(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"id", "nombre", "email", "rol", "activo"}).
		AddRow(3, "Profe", "profe@universidad.edu", string(models.RoleTeacher), true)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, nombre, email, rol, activo FROM Usuario WHERE id = $1 LIMIT 1")).
		WithArgs(int64(3)).
		WillReturnRows(rows)

	principal, err := repo.FindPrincipalByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, models.RoleTeacher, principal.Rol)
	assert.True(t, principal.Activo)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListUsersWithSearch(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	now := time.Now()
	listRows := sqlmock.NewRows([]string{"id", "nombre", "email", "rol", "activo", "fecha_creacion"}).
		AddRow(1, "Ana", "ana@universidad.edu", string(models.RoleStudent), true, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, nombre, email, rol, activo, fecha_creacion FROM Usuario WHERE 1=1 AND (LOWER(nombre) LIKE $1 OR LOWER(email) LIKE $1) ORDER BY fecha_creacion DESC LIMIT 20 OFFSET 0")).
		WithArgs("%ana%").
		WillReturnRows(listRows)

	countRows := sqlmock.NewRows([]string{"count"}).AddRow(1)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM Usuario WHERE 1=1 AND (LOWER(nombre) LIKE $1 OR LOWER(email) LIKE $1)")).
		WithArgs("%ana%").
		WillReturnRows(countRows)

	users, total, err := repo.List(context.Background(), models.UserFilter{Search: "Ana"})
	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPartialUpdate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "nombre", "email", "rol", "activo", "fecha_creacion"}).
		AddRow(5, "Ana", "ana@universidad.edu", string(models.RoleStudent), false, now)
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE Usuario SET activo = $1 WHERE id = $2 RETURNING id, nombre, email, rol, activo, fecha_creacion")).
		WithArgs(false, int64(5)).
		WillReturnRows(rows)

	user, err := repo.PartialUpdate(context.Background(), 5, []Field{{Column: "activo", Value: false}})
	require.NoError(t, err)
	assert.False(t, user.Activo)
	assert.Equal(t, "Ana", user.Nombre)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteUserNotFound(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM Usuario WHERE id = $1 RETURNING id")).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	err := repo.Delete(context.Background(), 99)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
