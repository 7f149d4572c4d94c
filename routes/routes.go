package routes

import (
	"time"

	"rentatool-backend/firebase"
	"rentatool-backend/handlers"
	"rentatool-backend/middleware"
	"rentatool-backend/repositories"
	"rentatool-backend/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

func SetupRoutes(r *gin.Engine, db *mongo.Database, storageClient firebase.StorageClient) {
	// Repositories
	categoryRepo := repositories.NewCategoryRepository(db)
	serviceRepo := repositories.NewServiceRepository(db, storageClient)
	bannerRepo := repositories.NewBannerRepository(db)
	settingsRepo := repositories.NewSettingsRepository(db)
	userRepo := repositories.NewUserRepository(db)

	// Handlers
	authHandler := &handlers.AuthHandler{Users: userRepo}
	categoryHandler := &handlers.CategoryHandler{Categories: categoryRepo}
	serviceHandler := &handlers.ServiceHandler{Services: serviceRepo, Storage: storageClient}
	bannerHandler := &handlers.BannerHandler{Banners: bannerRepo, Storage: storageClient}
	settingsHandler := handlers.NewSettingsHandler(settingsRepo)
	contactHandler := &handlers.ContactHandler{
		Settings: settingsRepo,
		Mail:     utils.NewMailer(10 * time.Second),
	}

	loginLimiter := middleware.NewRateLimiter(5, time.Minute)
	contactLimiter := middleware.NewRateLimiter(3, time.Minute)

	// Public routes
	api := r.Group("/api")
	{
		api.POST("/auth/login", loginLimiter.Middleware(), authHandler.Login)

		api.GET("/categories", categoryHandler.GetCategories)
		api.GET("/categories/tree", categoryHandler.GetCategoryTree)
		api.GET("/categories/:id", categoryHandler.GetCategory)
		api.GET("/categories/slug/:slug/services", serviceHandler.GetServicesByCategorySlug)

		api.GET("/services", serviceHandler.GetServices)
		api.GET("/services/:id", serviceHandler.GetService)

		api.GET("/banners", bannerHandler.GetBanners)
		api.GET("/banners/:id", bannerHandler.GetBanner)

		api.GET("/settings", settingsHandler.GetSettings)

		api.POST("/contact", contactLimiter.Middleware(), contactHandler.SubmitInquiry)
	}

	// Protected routes (require authentication)
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("/auth/profile", authHandler.GetProfile)
	}

	// Admin routes (require admin role)
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.AdminMiddleware())
	{
		admin.POST("/categories", categoryHandler.CreateCategory)
		admin.PUT("/categories/:id", categoryHandler.UpdateCategory)
		admin.DELETE("/categories/:id", categoryHandler.DeleteCategory)

		admin.GET("/services", serviceHandler.GetAllServices)
		admin.POST("/services", serviceHandler.CreateService)
		admin.PUT("/services/:id", serviceHandler.UpdateService)
		admin.DELETE("/services/:id", serviceHandler.DeleteService)

		admin.POST("/banners", bannerHandler.CreateBanner)
		admin.PUT("/banners/:id", bannerHandler.UpdateBanner)
		admin.DELETE("/banners/:id", bannerHandler.DeleteBanner)

		admin.PUT("/settings", settingsHandler.UpdateSettings)
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
