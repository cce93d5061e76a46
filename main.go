package main

import (
	"fmt"
	"log"

	"qrmenu/configs"
	"qrmenu/middlewares"
	"qrmenu/pkg/logx"
	"qrmenu/routes"
	"qrmenu/ws"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := configs.LoadConfig()

	// DB
	configs.ConnectionDB(cfg.DBSource)
	db := configs.DB()

	// migrate
	configs.SetupDatabase()

	if err := configs.SeedDemoOwner(); err != nil {
		log.Fatalf("seed demo owner failed: %v", err)
	}

	// Event hub
	hub := ws.NewOrderHub(logx.New(), cfg.AllowGuestJoin)
	go hub.Run()

	// HTTP
	r := gin.Default()

	r.Use(middlewares.CORSMiddleware())

	routes.RegisterRoutes(r, db, cfg, hub)

	port := cfg.Port
	addr := fmt.Sprintf(":%s", port)
	log.Println("🚀 Server running at", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
