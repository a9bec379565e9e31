package models

import "time"

// StudentStatus enumerates the Alumno estatus column.
type StudentStatus string

const (
	StudentStatusActive    StudentStatus = "activo"
	StudentStatusWithdrawn StudentStatus = "baja"
	StudentStatusGraduated StudentStatus = "egresado"
)

// Student represents a row of the Alumno table.
type Student struct {
	ID           int64         `db:"id" json:"id"`
	UsuarioID    int64         `db:"usuario_id" json:"usuario_id"`
	Matricula    string        `db:"matricula" json:"matricula"`
	Carrera      string        `db:"carrera" json:"carrera"`
	Semestre     int           `db:"semestre" json:"semestre"`
	FechaIngreso time.Time     `db:"fecha_ingreso" json:"fecha_ingreso"`
	Estatus      StudentStatus `db:"estatus" json:"estatus"`
}

// StudentDetail joins the Alumno row with its Usuario identity, mirroring the
// listing/detail queries.
type StudentDetail struct {
	Student
	Nombre string `db:"nombre" json:"nombre"`
	Email  string `db:"email" json:"email"`
	Activo *bool  `db:"activo" json:"activo,omitempty"`
}
