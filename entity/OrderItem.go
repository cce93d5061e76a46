package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderItem is a line item snapshot. Name and unit price are copied from the
// menu at placement time so later menu edits never touch placed orders.
type OrderItem struct {
	gorm.Model
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"price" gorm:"type:numeric"`
	Qty       int             `json:"quantity"`
	Note      string          `json:"note,omitempty"`

	OrderID uint `json:"orderId" gorm:"index"`
}

// LineTotal = unit price × quantity.
func (i *OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Qty)))
}
