package models

// Group represents a row of the Grupo table (a scheduled section of a materia).
type Group struct {
	ID          int64   `db:"id" json:"id"`
	MateriaID   int64   `db:"materia_id" json:"materia_id"`
	ProfesorID  *int64  `db:"profesor_id" json:"profesor_id,omitempty"`
	CodigoGrupo string  `db:"codigo_grupo" json:"codigo_grupo"`
	Horario     *string `db:"horario" json:"horario,omitempty"`
	Aula        *string `db:"aula" json:"aula,omitempty"`
	CupoMaximo  int     `db:"cupo_maximo" json:"cupo_maximo"`
	Periodo     string  `db:"periodo" json:"periodo"`
	Activo      bool    `db:"activo" json:"activo"`
}
