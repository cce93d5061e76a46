package configs

import (
	"log"

	"qrmenu/entity"
)

// สร้างร้าน demo ครั้งแรก (ไว้ลองระบบโดยไม่ต้องผ่าน auth service)
func SeedDemoOwner() error {
	db := DB()
	email := getEnv("DEMO_OWNER_EMAIL", "")
	name := getEnv("DEMO_RESTAURANT_NAME", "Demo Restaurant")
	if email == "" {
		log.Println("skip seeding demo owner: missing DEMO_OWNER_EMAIL")
		return nil
	}

	var count int64
	db.Model(&entity.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		log.Println("demo owner already exists:", email)
		return nil
	}

	owner := entity.User{
		Email:          email,
		RestaurantName: name,
	}
	return db.Create(&owner).Error
}
