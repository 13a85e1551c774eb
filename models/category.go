package models

type Category struct {
	ID           int64   `json:"category_id" db:"category_id" gorm:"column:category_id;primaryKey;autoIncrement"`
	CategoryName *string `json:"category_name" db:"category_name" gorm:"column:category_name;not null;size:100" validate:"required" required:"true"`
	Description  *string `json:"description" db:"description" gorm:"column:description"`
	// Picture is raw image bytes; encoding/json renders it as base64.
	Picture []byte `json:"picture" db:"picture" gorm:"column:picture"`
}

func (Category) TableName() string {
	return "categories"
}
