package models

import "github.com/shopspring/decimal"

// OrderDetail is one product line of an order, keyed by (order_id, product_id).
type OrderDetail struct {
	OrderID   *int64           `json:"order_id" db:"order_id" gorm:"column:order_id;primaryKey;autoIncrement:false" validate:"required" required:"true"`
	ProductID *int64           `json:"product_id" db:"product_id" gorm:"column:product_id;primaryKey;autoIncrement:false" validate:"required" required:"true"`
	UnitPrice *decimal.Decimal `json:"unit_price" db:"unit_price" gorm:"column:unit_price;type:numeric(10,2);not null" validate:"required" required:"true"`
	Quantity  *int64           `json:"quantity" db:"quantity" gorm:"column:quantity;not null" validate:"required" required:"true"`
	// Discount defaults to zero when the client omits it.
	Discount decimal.Decimal `json:"discount" db:"discount" gorm:"column:discount;type:numeric(4,2);not null;default:0"`
}

func (OrderDetail) TableName() string {
	return "order_details"
}
