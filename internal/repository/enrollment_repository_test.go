package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sga-api/internal/models"
	appErrors "github.com/noah-isme/sga-api/pkg/errors"
)

func TestCreateEnrollment(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	rows := sqlmock.NewRows([]string{"id", "alumno_id", "grupo_id", "calificacion", "estatus", "fecha_inscripcion"}).
		AddRow(1, 10, 20, nil, string(models.EnrollmentStatusEnrolled), time.Now())
	mock.ExpectQuery("INSERT INTO Inscripcion").
		WithArgs(int64(10), int64(20), nil, models.EnrollmentStatusEnrolled).
		WillReturnRows(rows)

	stored, err := repo.Create(context.Background(), &models.Enrollment{
		AlumnoID: 10,
		GrupoID:  20,
		Estatus:  models.EnrollmentStatusEnrolled,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.ID)
	assert.Nil(t, stored.Calificacion)
	assert.False(t, stored.FechaInscripcion.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateEnrollmentDuplicatePairConflicts(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectQuery("INSERT INTO Inscripcion").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "inscripcion_alumno_id_grupo_id_key"})

	_, err := repo.Create(context.Background(), &models.Enrollment{
		AlumnoID: 10,
		GrupoID:  20,
		Estatus:  models.EnrollmentStatusEnrolled,
	})
	require.Error(t, err)
	assert.Equal(t, 409, appErrors.FromError(err).Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentPartialUpdateNotFound(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE Inscripcion SET estatus = $1 WHERE id = $2 RETURNING id, alumno_id, grupo_id, calificacion, estatus, fecha_inscripcion")).
		WithArgs("aprobado", int64(44)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "alumno_id", "grupo_id", "calificacion", "estatus", "fecha_inscripcion"}))

	_, err := repo.PartialUpdate(context.Background(), 44, []Field{{Column: "estatus", Value: "aprobado"}})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
