package models

type Teacher struct {
	ID           int64   `json:"id_professor" db:"id_professor" gorm:"column:id_professor;primaryKey;autoIncrement"`
	NomeCompleto *string `json:"nome_completo" db:"nome_completo" gorm:"column:nome_completo;not null;size:150" validate:"required" required:"true"`
	Email        *string `json:"email" db:"email" gorm:"column:email;size:255" validate:"omitempty,email"`
	Telefone     *string `json:"telefone" db:"telefone" gorm:"column:telefone;size:30"`
}

func (Teacher) TableName() string {
	return "professor"
}
