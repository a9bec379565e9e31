package service

import (
	"time"

	appErrors "github.com/noah-isme/sga-api/pkg/errors"
)

// parseDate accepts the plain date form the existing clients send, falling
// back to full RFC 3339 timestamps.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, appErrors.Clone(appErrors.ErrValidation, "Fecha inválida, se espera el formato YYYY-MM-DD")
	}
	return t, nil
}
