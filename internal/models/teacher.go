package models

import "time"

// Teacher represents a row of the Profesor table.
type Teacher struct {
	ID             int64     `db:"id" json:"id"`
	UsuarioID      int64     `db:"usuario_id" json:"usuario_id"`
	CodigoEmpleado string    `db:"codigo_empleado" json:"codigo_empleado"`
	Departamento   *string   `db:"departamento" json:"departamento,omitempty"`
	Especialidad   *string   `db:"especialidad" json:"especialidad,omitempty"`
	Telefono       *string   `db:"telefono" json:"telefono,omitempty"`
	FechaIngreso   time.Time `db:"fecha_ingreso" json:"fecha_ingreso"`
}
