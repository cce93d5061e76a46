package entity

import (
	"gorm.io/gorm"
)

// User is a restaurant owner. Registration, password reset and profile media
// live in the auth collaborator; the ordering core only needs the row as the
// grouping key for orders and live events.
type User struct {
	gorm.Model
	Email          string `json:"email" gorm:"uniqueIndex"`
	RestaurantName string `json:"restaurantName"`

	Orders []Order `gorm:"foreignKey:RestaurantID" json:"-"`
}
