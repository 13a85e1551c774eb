package models

type Student struct {
	ID             int64   `json:"id_aluno" db:"id_aluno" gorm:"column:id_aluno;primaryKey;autoIncrement"`
	NomeCompleto   *string `json:"nome_completo" db:"nome_completo" gorm:"column:nome_completo;not null;size:150;index" validate:"required" required:"true"`
	DataNascimento *Date   `json:"data_nascimento" db:"data_nascimento" gorm:"column:data_nascimento;type:date"`
	IDTurma        *int64  `json:"id_turma" db:"id_turma" gorm:"column:id_turma;index"`
	Endereco       *string `json:"endereco" db:"endereco" gorm:"column:endereco;size:255"`
	Cidade         *string `json:"cidade" db:"cidade" gorm:"column:cidade;size:100"`
	Estado         *string `json:"estado" db:"estado" gorm:"column:estado;size:50"`
	CEP            *string `json:"cep" db:"cep" gorm:"column:cep;size:20"`
	Pais           *string `json:"pais" db:"pais" gorm:"column:pais;size:50"`
	Telefone       *string `json:"telefone" db:"telefone" gorm:"column:telefone;size:30"`
}

func (Student) TableName() string {
	return "alunos"
}
