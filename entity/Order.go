package entity

import (
	"bytes"
	"strconv"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TableLabel is a table identifier. Menus in the wild send both numeric and
// string labels, so it accepts either on the wire and stores as text.
type TableLabel string

func (t *TableLabel) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) >= 2 && b[0] == '"' {
		s, err := strconv.Unquote(string(b))
		if err != nil {
			return err
		}
		*t = TableLabel(s)
		return nil
	}
	if string(b) == "null" {
		*t = ""
		return nil
	}
	*t = TableLabel(b)
	return nil
}

type Order struct {
	gorm.Model
	TableNumber  TableLabel      `json:"tableNumber"`
	CustomerName string          `json:"customerName"`
	Status       OrderStatus     `json:"status" gorm:"type:text;index"`
	TotalAmount  decimal.Decimal `json:"totalAmount" gorm:"type:numeric"`

	RestaurantID uint `json:"restaurantId" gorm:"index"`
	Restaurant   User `json:"-"` // preload เมื่อจำเป็น

	// snapshot rows; immutable after placement
	Items []OrderItem `json:"items" gorm:"foreignKey:OrderID"`

	// optional client-supplied idempotency token
	ClientToken *string `json:"clientToken,omitempty" gorm:"uniqueIndex"`
}

// DisplayName is the customer name shown on dashboards.
func (o *Order) DisplayName() string {
	if o.CustomerName == "" {
		return "Guest"
	}
	return o.CustomerName
}
