package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sga-api/internal/models"
)

const enrollmentColumns = "id, alumno_id, grupo_id, calificacion, estatus, fecha_inscripcion"

// EnrollmentRepository manages persistence for the Inscripcion table.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs an EnrollmentRepository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// List returns all enrollments ordered by id.
func (r *EnrollmentRepository) List(ctx context.Context) ([]models.Enrollment, error) {
	query := fmt.Sprintf("SELECT %s FROM Inscripcion ORDER BY id", enrollmentColumns)
	enrollments := []models.Enrollment{}
	if err := r.db.SelectContext(ctx, &enrollments, query); err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	return enrollments, nil
}

// FindByID fetches an enrollment by identifier.
func (r *EnrollmentRepository) FindByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	query := fmt.Sprintf("SELECT %s FROM Inscripcion WHERE id = $1 LIMIT 1", enrollmentColumns)
	var enrollment models.Enrollment
	if err := r.db.GetContext(ctx, &enrollment, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find enrollment by id: %w", err)
	}
	return &enrollment, nil
}

// Create inserts a new enrollment and returns the stored row. The unique
// (alumno_id, grupo_id) index rejects duplicates with a conflict.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) (*models.Enrollment, error) {
	query := fmt.Sprintf(`INSERT INTO Inscripcion (alumno_id, grupo_id, calificacion, estatus)
        VALUES ($1, $2, $3, $4) RETURNING %s`, enrollmentColumns)
	var stored models.Enrollment
	if err := r.db.GetContext(ctx, &stored, query,
		enrollment.AlumnoID, enrollment.GrupoID, enrollment.Calificacion, enrollment.Estatus); err != nil {
		return nil, translateError(err, "create enrollment")
	}
	return &stored, nil
}

// PartialUpdate applies the supplied field set and returns the updated row.
func (r *EnrollmentRepository) PartialUpdate(ctx context.Context, id int64, fields []Field) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	if err := applyPartialUpdate(ctx, r.db, "Inscripcion", "id", id, enrollmentColumns, fields, &enrollment); err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// Delete removes an enrollment row.
func (r *EnrollmentRepository) Delete(ctx context.Context, id int64) error {
	var deleted int64
	if err := r.db.GetContext(ctx, &deleted, "DELETE FROM Inscripcion WHERE id = $1 RETURNING id", id); err != nil {
		if err == sql.ErrNoRows {
			return err
		}
		return translateError(err, "delete enrollment")
	}
	return nil
}
