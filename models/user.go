package models

import "school-backend/auth"

// AccessAdmin is the nivel_acesso of the seeded administrator. The column
// is otherwise free text.
const AccessAdmin = "admin"

type User struct {
	ID          int64   `json:"id_usuario" db:"id_usuario" gorm:"column:id_usuario;primaryKey;autoIncrement"`
	Login       *string `json:"login" db:"login" gorm:"column:login;not null;size:100;uniqueIndex" validate:"required" required:"true"`
	Senha       *string `json:"senha,omitempty" db:"senha" gorm:"column:senha;not null;size:255" validate:"required" required:"true"`
	NivelAcesso *string `json:"nivel_acesso" db:"nivel_acesso" gorm:"column:nivel_acesso;size:30"`
	IDProfessor *int64  `json:"id_professor" db:"id_professor" gorm:"column:id_professor;index"`
}

func (User) TableName() string {
	return "usuario"
}

// PrepareSave replaces the submitted password with its bcrypt hash. Every
// value is hashed, including one that already looks like a hash.
func (u *User) PrepareSave() error {
	if u.Senha == nil {
		return nil
	}
	hashed, err := auth.HashPassword(*u.Senha)
	if err != nil {
		return err
	}
	u.Senha = &hashed
	return nil
}

func (u *User) Sanitize() {
	u.Senha = nil
}
