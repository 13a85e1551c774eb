package models

type Attendance struct {
	ID           int64  `json:"id_presenca" db:"id_presenca" gorm:"column:id_presenca;primaryKey;autoIncrement"`
	IDAluno      *int64 `json:"id_aluno" db:"id_aluno" gorm:"column:id_aluno;not null;index" validate:"required" required:"true"`
	DataPresenca *Date  `json:"data_presenca" db:"data_presenca" gorm:"column:data_presenca;type:date;not null" validate:"required" required:"true"`
	Presente     *bool  `json:"presente" db:"presente" gorm:"column:presente;not null" validate:"required" required:"true"`
}

func (Attendance) TableName() string {
	return "presenca"
}
