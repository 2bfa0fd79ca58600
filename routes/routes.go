package routes

import (
	"orderhub/config"
	"orderhub/controllers"
	"orderhub/middleware"
	"orderhub/realtime"
	"orderhub/repositories"
	"orderhub/services"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func SetupRoutes(router *gin.Engine) {
	var cartStore repositories.CartStore
	if config.RedisClient != nil {
		cartStore = repositories.NewRedisCartStore(config.RedisClient)
	} else {
		cartStore = repositories.NewMemoryCartStore()
	}

	feed := realtime.NewFeed(config.RedisClient)
	cartService := services.NewCartService(cartStore)
	orderService := services.NewOrderService(repositories.NewOrderRepository(), repositories.NewMenuRepository(), feed)
	agentService := services.NewAgentService(repositories.NewMenuRepository(),
		config.AppConfig.GeminiAPIKey, config.AppConfig.GeminiModel)

	authCtrl := controllers.NewAuthController()
	onboardingCtrl := controllers.NewOnboardingController()
	menuCtrl := controllers.NewMenuController()
	cartCtrl := controllers.NewCartController(cartService)
	checkoutCtrl := controllers.NewCheckoutController(cartService, orderService)
	orderCtrl := controllers.NewOrderController(feed)
	productCtrl := controllers.NewProductController()
	agentCtrl := controllers.NewAgentController(agentService)
	webhookCtrl := controllers.NewWebhookController(repositories.NewRestaurantRepository(), agentService)
	streamCtrl := controllers.NewStreamController(feed)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	router.POST("/onboarding/register", onboardingCtrl.Register)
	router.POST("/auth/login", authCtrl.Login)

	router.GET("/restaurants/:slug/menu", menuCtrl.GetMenu)

	router.GET("/cart", cartCtrl.GetCart)
	router.POST("/cart/items", cartCtrl.AddItem)
	router.DELETE("/cart/items/:id", cartCtrl.RemoveItem)
	router.DELETE("/cart", cartCtrl.ClearCart)
	router.POST("/checkout", checkoutCtrl.Checkout)

	router.POST("/agent/chat", agentCtrl.Chat)
	router.GET("/webhooks/whatsapp", webhookCtrl.Verify)
	router.POST("/webhooks/whatsapp", webhookCtrl.Receive)

	auth := router.Group("/")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.GET("/auth/profile", authCtrl.GetProfile)
	}

	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.OwnerMiddleware())
	{
		admin.GET("/dashboard", orderCtrl.GetDashboard)

		admin.GET("/orders", orderCtrl.GetAllOrders)
		admin.GET("/orders/stream", streamCtrl.StreamOrders)
		admin.GET("/orders/:id", orderCtrl.GetOrderByID)
		admin.PATCH("/orders/:id/status", orderCtrl.UpdateOrderStatus)

		admin.POST("/categories", productCtrl.CreateCategory)
		admin.POST("/products", productCtrl.CreateProduct)
		admin.PATCH("/products/:id", productCtrl.UpdateProduct)
		admin.PUT("/products/:id/option-groups", productCtrl.ReplaceOptionGroups)
		admin.DELETE("/products/:id", productCtrl.DeleteProduct)
		admin.POST("/products/image", productCtrl.UploadImage)

		admin.POST("/restaurant/logo", onboardingCtrl.UploadLogo)
	}
}
