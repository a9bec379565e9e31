package models

// Subject represents a row of the Materia table.
type Subject struct {
	ID                  int64   `db:"id" json:"id"`
	Codigo              string  `db:"codigo" json:"codigo"`
	Nombre              string  `db:"nombre" json:"nombre"`
	Creditos            int     `db:"creditos" json:"creditos"`
	Descripcion         *string `db:"descripcion" json:"descripcion,omitempty"`
	Prerequisitos       *string `db:"prerequisitos" json:"prerequisitos,omitempty"`
	SemestreRecomendado *int    `db:"semestre_recomendado" json:"semestre_recomendado,omitempty"`
}
