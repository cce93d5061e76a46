package routes

import (
	"qrmenu/configs"
	"qrmenu/controllers"
	"qrmenu/middlewares"
	"qrmenu/pkg/logx"
	"qrmenu/repository"
	"qrmenu/services"
	"qrmenu/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config, hub *ws.OrderHub) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	log := logx.New()

	// Wiring
	orderRepo := repository.NewOrderRepository(db)
	userRepo := repository.NewUserRepository(db)
	orderSvc := services.NewOrderService(db, orderRepo, userRepo, hub, log)
	orderCtrl := controllers.NewOrderController(orderSvc)

	// Orders (customer)
	r.POST("/api/orders", orderCtrl.Create)
	r.GET("/api/orders/:id", orderCtrl.Detail)

	// Orders (owner dashboard)
	owner := r.Group("/api", middlewares.AuthMiddleware(cfg.JWTSecret))
	{
		owner.GET("/orders", orderCtrl.List)
		owner.PUT("/orders/:id", orderCtrl.UpdateStatus)
	}

	// Real-time channel
	r.GET("/ws/orders", middlewares.WSAuthMiddleware(cfg.JWTSecret), hub.HandleWebSocket)
}
