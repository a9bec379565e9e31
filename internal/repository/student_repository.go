package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sga-api/internal/models"
)

const studentColumns = "id, usuario_id, matricula, carrera, semestre, fecha_ingreso, estatus"

// StudentRepository manages persistence for the Alumno table.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns all students joined with their usuario identity, ordered by
// matricula.
func (r *StudentRepository) List(ctx context.Context) ([]models.StudentDetail, error) {
	const query = `SELECT a.id, a.usuario_id, a.matricula, a.carrera, a.semestre, a.fecha_ingreso, a.estatus,
        u.nombre, u.email
        FROM Alumno a
        JOIN Usuario u ON a.usuario_id = u.id
        ORDER BY a.matricula`
	students := []models.StudentDetail{}
	if err := r.db.SelectContext(ctx, &students, query); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// FindByID fetches a student with its usuario identity.
func (r *StudentRepository) FindByID(ctx context.Context, id int64) (*models.StudentDetail, error) {
	const query = `SELECT a.id, a.usuario_id, a.matricula, a.carrera, a.semestre, a.fecha_ingreso, a.estatus,
        u.nombre, u.email, u.activo
        FROM Alumno a
        JOIN Usuario u ON a.usuario_id = u.id
        WHERE a.id = $1`
	var detail models.StudentDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find student by id: %w", err)
	}
	return &detail, nil
}

// ExistsByMatricula checks whether a matricula is already registered.
func (r *StudentRepository) ExistsByMatricula(ctx context.Context, matricula string) (bool, error) {
	var exists int
	if err := r.db.GetContext(ctx, &exists, "SELECT 1 FROM Alumno WHERE matricula = $1 LIMIT 1", matricula); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check matricula: %w", err)
	}
	return true, nil
}

// Create inserts a new student and returns the stored row.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) (*models.Student, error) {
	query := fmt.Sprintf(`INSERT INTO Alumno (usuario_id, matricula, carrera, semestre, fecha_ingreso, estatus)
        VALUES ($1, $2, $3, $4, $5, $6) RETURNING %s`, studentColumns)
	var stored models.Student
	if err := r.db.GetContext(ctx, &stored, query,
		student.UsuarioID, student.Matricula, student.Carrera, student.Semestre, student.FechaIngreso, student.Estatus); err != nil {
		return nil, translateError(err, "create student")
	}
	return &stored, nil
}

// PartialUpdate applies the supplied field set and returns the updated row.
func (r *StudentRepository) PartialUpdate(ctx context.Context, id int64, fields []Field) (*models.Student, error) {
	var student models.Student
	if err := applyPartialUpdate(ctx, r.db, "Alumno", "id", id, studentColumns, fields, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

// Delete removes a student row.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	var deleted int64
	if err := r.db.GetContext(ctx, &deleted, "DELETE FROM Alumno WHERE id = $1 RETURNING id", id); err != nil {
		if err == sql.ErrNoRows {
			return err
		}
		return translateError(err, "delete student")
	}
	return nil
}
