package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/khoalevan2535/Goldenbamboo-sub001/configs"
	"github.com/khoalevan2535/Goldenbamboo-sub001/controllers"
	"github.com/khoalevan2535/Goldenbamboo-sub001/middlewares"
	"github.com/khoalevan2535/Goldenbamboo-sub001/repository"
	"github.com/khoalevan2535/Goldenbamboo-sub001/services"
	"github.com/khoalevan2535/Goldenbamboo-sub001/ws"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Repositories
	orderRepo := repository.NewOrderRepository(db)
	tableRepo := repository.NewTableRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	discountRepo := repository.NewDiscountRepository(db)
	accountRepo := repository.NewAccountRepository(db)

	// Services
	hub := ws.NewEventHub()
	locks := services.NewOrderLocks()
	pricing := services.NewPricingService()
	tableSvc := services.NewTableService(db, tableRepo, hub)
	orderSvc := services.NewOrderService(db, orderRepo, menuRepo, discountRepo, tableSvc, pricing, hub, locks)
	itemSvc := services.NewOrderItemService(db, orderRepo, menuRepo, discountRepo, pricing, hub, locks)

	// Controllers
	authCtrl := controllers.NewAuthController(accountRepo, cfg)
	orderCtrl := controllers.NewOrderController(orderSvc, itemSvc)
	tableCtrl := controllers.NewTableController(tableSvc)

	r.POST("/auth/login", authCtrl.Login)

	staff := r.Group("", middlewares.AuthMiddleware(cfg.JWTSecret))
	{
		staff.POST("/orders", orderCtrl.Create)
		staff.GET("/orders/:id", orderCtrl.Detail)
		staff.PATCH("/orders/:id/status", orderCtrl.ChangeStatus)
		staff.POST("/orders/:id/pay", orderCtrl.Pay)

		staff.POST("/orders/:id/items", orderCtrl.AddItem)
		staff.PATCH("/orders/:id/items/:itemId", orderCtrl.UpdateItem)
		staff.PATCH("/orders/:id/items/:itemId/status", orderCtrl.ChangeItemStatus)
		staff.DELETE("/orders/:id/items/:itemId", orderCtrl.RemoveItem)

		staff.GET("/branches/:id/orders", orderCtrl.ListForBranch)
		staff.GET("/branches/:id/tables", tableCtrl.ListForBranch)
	}

	manager := r.Group("", middlewares.AuthMiddleware(cfg.JWTSecret, "manager"))
	{
		manager.PATCH("/tables/:id/status", tableCtrl.OverrideStatus)
	}

	// staff/kitchen display event stream
	r.GET("/ws/branches/:id/events", hub.HandleWebSocket)
}
