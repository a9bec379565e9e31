package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sga-api/internal/models"
)

const subjectColumns = "id, codigo, nombre, creditos, descripcion, prerequisitos, semestre_recomendado"

// SubjectRepository manages persistence for the Materia table.
type SubjectRepository struct {
	db *sqlx.DB
}

// NewSubjectRepository constructs a SubjectRepository.
func NewSubjectRepository(db *sqlx.DB) *SubjectRepository {
	return &SubjectRepository{db: db}
}

// List returns all subjects ordered by id.
func (r *SubjectRepository) List(ctx context.Context) ([]models.Subject, error) {
	query := fmt.Sprintf("SELECT %s FROM Materia ORDER BY id", subjectColumns)
	subjects := []models.Subject{}
	if err := r.db.SelectContext(ctx, &subjects, query); err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return subjects, nil
}

// FindByID fetches a subject by identifier.
func (r *SubjectRepository) FindByID(ctx context.Context, id int64) (*models.Subject, error) {
	query := fmt.Sprintf("SELECT %s FROM Materia WHERE id = $1 LIMIT 1", subjectColumns)
	var subject models.Subject
	if err := r.db.GetContext(ctx, &subject, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find subject by id: %w", err)
	}
	return &subject, nil
}

// Create inserts a new subject and returns the stored row.
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) (*models.Subject, error) {
	query := fmt.Sprintf(`INSERT INTO Materia (codigo, nombre, creditos, descripcion, prerequisitos, semestre_recomendado)
        VALUES ($1, $2, $3, $4, $5, $6) RETURNING %s`, subjectColumns)
	var stored models.Subject
	if err := r.db.GetContext(ctx, &stored, query,
		subject.Codigo, subject.Nombre, subject.Creditos, subject.Descripcion, subject.Prerequisitos, subject.SemestreRecomendado); err != nil {
		return nil, translateError(err, "create subject")
	}
	return &stored, nil
}

// PartialUpdate applies the supplied field set and returns the updated row.
func (r *SubjectRepository) PartialUpdate(ctx context.Context, id int64, fields []Field) (*models.Subject, error) {
	var subject models.Subject
	if err := applyPartialUpdate(ctx, r.db, "Materia", "id", id, subjectColumns, fields, &subject); err != nil {
		return nil, err
	}
	return &subject, nil
}

// Delete removes a subject row.
func (r *SubjectRepository) Delete(ctx context.Context, id int64) error {
	var deleted int64
	if err := r.db.GetContext(ctx, &deleted, "DELETE FROM Materia WHERE id = $1 RETURNING id", id); err != nil {
		if err == sql.ErrNoRows {
			return err
		}
		return translateError(err, "delete subject")
	}
	return nil
}
