package models

import "github.com/shopspring/decimal"

func init() {
	// Money travels as a JSON number, the way clients submit it.
	decimal.MarshalJSONWithoutQuotes = true
}

// SavePreparer is implemented by records that must be transformed before
// they are written over HTTP.
type SavePreparer interface {
	PrepareSave() error
}

// Sanitizer is implemented by records carrying fields that must never be
// written back to a client.
type Sanitizer interface {
	Sanitize()
}

// All lists every table-backed model, in creation order.
func All() []interface{} {
	return []interface{}{
		&Teacher{},
		&Class{},
		&Student{},
		&Payment{},
		&Attendance{},
		&Activity{},
		&ActivityStudent{},
		&User{},
		&Category{},
		&OrderDetail{},
	}
}
