package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sga-api/internal/models"
)

const teacherColumns = "id, usuario_id, codigo_empleado, departamento, especialidad, telefono, fecha_ingreso"

// TeacherRepository manages persistence for the Profesor table.
type TeacherRepository struct {
	db *sqlx.DB
}

// NewTeacherRepository constructs a TeacherRepository.
func NewTeacherRepository(db *sqlx.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// List returns all teachers ordered by most recent hire.
func (r *TeacherRepository) List(ctx context.Context) ([]models.Teacher, error) {
	query := fmt.Sprintf("SELECT %s FROM Profesor ORDER BY fecha_ingreso DESC", teacherColumns)
	teachers := []models.Teacher{}
	if err := r.db.SelectContext(ctx, &teachers, query); err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}
	return teachers, nil
}

// FindByID fetches a teacher by identifier.
func (r *TeacherRepository) FindByID(ctx context.Context, id int64) (*models.Teacher, error) {
	query := fmt.Sprintf("SELECT %s FROM Profesor WHERE id = $1 LIMIT 1", teacherColumns)
	var teacher models.Teacher
	if err := r.db.GetContext(ctx, &teacher, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find teacher by id: %w", err)
	}
	return &teacher, nil
}

// ExistsByCodigoEmpleado checks whether an employee code is registered.
func (r *TeacherRepository) ExistsByCodigoEmpleado(ctx context.Context, codigo string) (bool, error) {
	var exists int
	if err := r.db.GetContext(ctx, &exists, "SELECT 1 FROM Profesor WHERE codigo_empleado = $1 LIMIT 1", codigo); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check codigo_empleado: %w", err)
	}
	return true, nil
}

// Create inserts a new teacher and returns the stored row.
func (r *TeacherRepository) Create(ctx context.Context, teacher *models.Teacher) (*models.Teacher, error) {
	query := fmt.Sprintf(`INSERT INTO Profesor (usuario_id, codigo_empleado, departamento, especialidad, telefono, fecha_ingreso)
        VALUES ($1, $2, $3, $4, $5, $6) RETURNING %s`, teacherColumns)
	var stored models.Teacher
	if err := r.db.GetContext(ctx, &stored, query,
		teacher.UsuarioID, teacher.CodigoEmpleado, teacher.Departamento, teacher.Especialidad, teacher.Telefono, teacher.FechaIngreso); err != nil {
		return nil, translateError(err, "create teacher")
	}
	return &stored, nil
}

// PartialUpdate applies the supplied field set and returns the updated row.
func (r *TeacherRepository) PartialUpdate(ctx context.Context, id int64, fields []Field) (*models.Teacher, error) {
	var teacher models.Teacher
	if err := applyPartialUpdate(ctx, r.db, "Profesor", "id", id, teacherColumns, fields, &teacher); err != nil {
		return nil, err
	}
	return &teacher, nil
}

// Delete removes a teacher row.
func (r *TeacherRepository) Delete(ctx context.Context, id int64) error {
	var deleted int64
	if err := r.db.GetContext(ctx, &deleted, "DELETE FROM Profesor WHERE id = $1 RETURNING id", id); err != nil {
		if err == sql.ErrNoRows {
			return err
		}
		return translateError(err, "delete teacher")
	}
	return nil
}
