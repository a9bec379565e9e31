package repository

import (
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/sga-api/pkg/errors"
)

func TestBuildPartialUpdate(t *testing.T) {
	query, args, err := buildPartialUpdate("Usuario", "id", int64(7), "id, nombre", []Field{
		{Column: "nombre", Value: "Ana"},
		{Column: "activo", Value: false},
	})
	require.NoError(t, err)
	assert.Equal(t, "UPDATE Usuario SET nombre = $1, activo = $2 WHERE id = $3 RETURNING id, nombre", query)
	assert.Equal(t, []interface{}{"Ana", false, int64(7)}, args)
}

func TestBuildPartialUpdateSingleField(t *testing.T) {
	query, args, err := buildPartialUpdate("Alumno", "id", int64(1), "id", []Field{
		{Column: "estatus", Value: "baja"},
	})
	require.NoError(t, err)
	assert.Equal(t, "UPDATE Alumno SET estatus = $1 WHERE id = $2 RETURNING id", query)
	assert.Len(t, args, 2)
}

func TestBuildPartialUpdateEmptyFields(t *testing.T) {
	_, _, err := buildPartialUpdate("Usuario", "id", int64(7), "id", nil)
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrEmptyUpdate.Code, appErr.Code)
	assert.Equal(t, 400, appErr.Status)
}

func TestTranslateErrorUniqueViolation(t *testing.T) {
	err := translateError(&pq.Error{Code: "23505"}, "create enrollment")
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	assert.Equal(t, 409, appErr.Status)
}

func TestTranslateErrorForeignKeyViolation(t *testing.T) {
	err := translateError(&pq.Error{Code: "23503"}, "create group")
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Equal(t, 400, appErr.Status)
}

func TestTranslateErrorPassthrough(t *testing.T) {
	cause := errors.New("connection reset")
	err := translateError(cause, "list users")
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}
