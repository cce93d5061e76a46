package configs

import (
	"qrmenu/entity"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var db *gorm.DB

func DB() *gorm.DB {
	return db
}

func ConnectionDB(source string) {
	database, err := gorm.Open(sqlite.Open(source), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	// sqlite: one writer connection so status updates serialize at the store
	sqlDB, err := database.DB()
	if err != nil {
		panic("failed to get sql.DB")
	}
	sqlDB.SetMaxOpenConns(1)
	database.Exec("PRAGMA busy_timeout = 5000")

	db = database
}

func SetupDatabase() {
	// Migrate the schema
	db.AutoMigrate(
		&entity.User{},
		&entity.Order{}, &entity.OrderItem{},
	)
}
