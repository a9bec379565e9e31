package models

import "time"

// EnrollmentStatus enumerates the Inscripcion estatus column.
type EnrollmentStatus string

const (
	EnrollmentStatusEnrolled  EnrollmentStatus = "inscrito"
	EnrollmentStatusPassed    EnrollmentStatus = "aprobado"
	EnrollmentStatusFailed    EnrollmentStatus = "reprobado"
	EnrollmentStatusWithdrawn EnrollmentStatus = "baja"
)

// Enrollment represents a row of the Inscripcion table. The (alumno_id,
// grupo_id) pair is unique at the store level.
type Enrollment struct {
	ID               int64            `db:"id" json:"id"`
	AlumnoID         int64            `db:"alumno_id" json:"alumno_id"`
	GrupoID          int64            `db:"grupo_id" json:"grupo_id"`
	Calificacion     *float64         `db:"calificacion" json:"calificacion,omitempty"`
	Estatus          EnrollmentStatus `db:"estatus" json:"estatus"`
	FechaInscripcion time.Time        `db:"fecha_inscripcion" json:"fecha_inscripcion"`
}
