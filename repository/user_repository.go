package repository

import (
	"qrmenu/entity"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// RestaurantExists checks the opaque restaurant id against the owner table.
func (r *UserRepository) RestaurantExists(id uint) (bool, error) {
	var count int64
	err := r.DB.Model(&entity.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
