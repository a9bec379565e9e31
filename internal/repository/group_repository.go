package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sga-api/internal/models"
)

const groupColumns = "id, materia_id, profesor_id, codigo_grupo, horario, aula, cupo_maximo, periodo, activo"

// GroupRepository manages persistence for the Grupo table.
type GroupRepository struct {
	db *sqlx.DB
}

// NewGroupRepository constructs a GroupRepository.
func NewGroupRepository(db *sqlx.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

// List returns all groups ordered by id.
func (r *GroupRepository) List(ctx context.Context) ([]models.Group, error) {
	query := fmt.Sprintf("SELECT %s FROM Grupo ORDER BY id", groupColumns)
	groups := []models.Group{}
	if err := r.db.SelectContext(ctx, &groups, query); err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}

// FindByID fetches a group by identifier.
func (r *GroupRepository) FindByID(ctx context.Context, id int64) (*models.Group, error) {
	query := fmt.Sprintf("SELECT %s FROM Grupo WHERE id = $1 LIMIT 1", groupColumns)
	var group models.Group
	if err := r.db.GetContext(ctx, &group, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find group by id: %w", err)
	}
	return &group, nil
}

// Create inserts a new group and returns the stored row.
func (r *GroupRepository) Create(ctx context.Context, group *models.Group) (*models.Group, error) {
	query := fmt.Sprintf(`INSERT INTO Grupo (materia_id, profesor_id, codigo_grupo, horario, aula, cupo_maximo, periodo, activo)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING %s`, groupColumns)
	var stored models.Group
	if err := r.db.GetContext(ctx, &stored, query,
		group.MateriaID, group.ProfesorID, group.CodigoGrupo, group.Horario, group.Aula, group.CupoMaximo, group.Periodo, group.Activo); err != nil {
		return nil, translateError(err, "create group")
	}
	return &stored, nil
}

// PartialUpdate applies the supplied field set and returns the updated row.
func (r *GroupRepository) PartialUpdate(ctx context.Context, id int64, fields []Field) (*models.Group, error) {
	var group models.Group
	if err := applyPartialUpdate(ctx, r.db, "Grupo", "id", id, groupColumns, fields, &group); err != nil {
		return nil, err
	}
	return &group, nil
}

// Delete removes a group row.
func (r *GroupRepository) Delete(ctx context.Context, id int64) error {
	var deleted int64
	if err := r.db.GetContext(ctx, &deleted, "DELETE FROM Grupo WHERE id = $1 RETURNING id", id); err != nil {
		if err == sql.ErrNoRows {
			return err
		}
		return translateError(err, "delete group")
	}
	return nil
}
