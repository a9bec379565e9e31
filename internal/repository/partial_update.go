package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	appErrors "github.com/noah-isme/sga-api/pkg/errors"
)

// Field is one column assignment of a partial update. Order is preserved so
// the rendered statement is deterministic.
type Field struct {
	Column string
	Value  interface{}
}

// buildPartialUpdate renders `UPDATE <table> SET c1 = $1, ... WHERE <idColumn> = $n
// RETURNING <returning>` for exactly the supplied fields. An empty field set is
// rejected before any SQL is built; the legacy API emitted a malformed
// statement in that case.
func buildPartialUpdate(table, idColumn string, id interface{}, returning string, fields []Field) (string, []interface{}, error) {
	if len(fields) == 0 {
		return "", nil, appErrors.ErrEmptyUpdate
	}

	assignments := make([]string, 0, len(fields))
	args := make([]interface{}, 0, len(fields)+1)
	for i, f := range fields {
		assignments = append(assignments, fmt.Sprintf("%s = $%d", f.Column, i+1))
		args = append(args, f.Value)
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d RETURNING %s",
		table, strings.Join(assignments, ", "), idColumn, len(args), returning)
	return query, args, nil
}

// applyPartialUpdate executes the built statement and scans the updated row
// into dest. Zero matched rows map to not-found; constraint violations are
// translated like any other write.
func applyPartialUpdate(ctx context.Context, db *sqlx.DB, table, idColumn string, id interface{}, returning string, fields []Field, dest interface{}) error {
	query, args, err := buildPartialUpdate(table, idColumn, id, returning, fields)
	if err != nil {
		return err
	}
	if err := db.GetContext(ctx, dest, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return err
		}
		return translateError(err, fmt.Sprintf("update %s", table))
	}
	return nil
}

// translateError maps driver errors onto the domain taxonomy. The store's
// unique-constraint rejection is the authoritative conflict guard; advisory
// pre-checks in the services only improve the error message.
func translateError(err error, op string) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			return appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, appErrors.ErrConflict.Message)
		case "23503":
			return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "Referencia a un registro inexistente")
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
