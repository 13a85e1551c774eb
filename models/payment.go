package models

import "github.com/shopspring/decimal"

type Payment struct {
	ID             int64            `json:"id_pagamento" db:"id_pagamento" gorm:"column:id_pagamento;primaryKey;autoIncrement"`
	IDAluno        *int64           `json:"id_aluno" db:"id_aluno" gorm:"column:id_aluno;not null;index" validate:"required" required:"true"`
	DataPagamento  *Date            `json:"data_pagamento" db:"data_pagamento" gorm:"column:data_pagamento;type:date;not null" validate:"required" required:"true"`
	ValorPago      *decimal.Decimal `json:"valor_pago" db:"valor_pago" gorm:"column:valor_pago;type:numeric(10,2);not null" validate:"required" required:"true"`
	FormaPagamento *string          `json:"forma_pagamento" db:"forma_pagamento" gorm:"column:forma_pagamento;size:50"`
	Referencia     *string          `json:"referencia" db:"referencia" gorm:"column:referencia;size:100"`
	Status         *string          `json:"status" db:"status" gorm:"column:status;size:30"`
}

func (Payment) TableName() string {
	return "pagamento"
}
