package models

// Class is a turma: a named group of students with an optional teacher.
type Class struct {
	ID          int64   `json:"id_turma" db:"id_turma" gorm:"column:id_turma;primaryKey;autoIncrement"`
	NomeTurma   *string `json:"nome_turma" db:"nome_turma" gorm:"column:nome_turma;not null;size:100" validate:"required" required:"true"`
	IDProfessor *int64  `json:"id_professor" db:"id_professor" gorm:"column:id_professor;index"`
	Horario     *string `json:"horario" db:"horario" gorm:"column:horario;size:100"`
}

func (Class) TableName() string {
	return "turma"
}
