package models

type Activity struct {
	ID             int64   `json:"id_atividade" db:"id_atividade" gorm:"column:id_atividade;primaryKey;autoIncrement"`
	Descricao      *string `json:"descricao" db:"descricao" gorm:"column:descricao;not null;size:255" validate:"required" required:"true"`
	DataRealizacao *Date   `json:"data_realizacao" db:"data_realizacao" gorm:"column:data_realizacao;type:date;not null" validate:"required" required:"true"`
}

func (Activity) TableName() string {
	return "atividade"
}

// ActivityStudent links a student to an activity. Both keys are supplied
// by the client; the association has no other columns.
type ActivityStudent struct {
	IDAtividade *int64 `json:"id_atividade" db:"id_atividade" gorm:"column:id_atividade;primaryKey;autoIncrement:false" validate:"required" required:"true"`
	IDAluno     *int64 `json:"id_aluno" db:"id_aluno" gorm:"column:id_aluno;primaryKey;autoIncrement:false" validate:"required" required:"true"`
}

func (ActivityStudent) TableName() string {
	return "atividade_aluno"
}
