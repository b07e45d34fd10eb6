package routes

import (
	"net/http"

	"iconstore-backend/assets"
	"iconstore-backend/config"
	"iconstore-backend/handlers"
	"iconstore-backend/middleware"
	"iconstore-backend/models"
	"iconstore-backend/storage"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, store storage.Client, verifier middleware.TokenVerifier) {
	guard := assets.NewGuard(db, store)

	// Initialize handlers
	authHandler := &handlers.AuthHandler{DB: db}
	homeHandler := &handlers.HomeHandler{DB: db}
	heroHandler := &handlers.HeroBannerHandler{DB: db, Assets: guard, Storage: store}
	specialHandler := &handlers.OfferHandler{
		DB: db, Assets: guard, Storage: store,
		Table: models.TableSpecialOffers, Kind: "special offer",
		Policy: config.SpecialOfferPolicy(),
	}
	laptopHandler := &handlers.OfferHandler{
		DB: db, Assets: guard, Storage: store,
		Table: models.TableLaptopOffers, Kind: "laptop offer",
		Policy: config.LaptopOfferPolicy(),
	}
	uploadHandler := &handlers.UploadHandler{Storage: store}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public routes
	api := r.Group("/api")
	{
		api.POST("/auth/user/register", authHandler.Register)
		api.POST("/auth/user/login", authHandler.Login)
		api.POST("/auth/admin/register", authHandler.RegisterAdmin)
		api.POST("/auth/admin/login", authHandler.AdminLogin)

		api.GET("/home", homeHandler.GetHome)
		api.GET("/cms", homeHandler.GetCMS)
	}

	// Protected routes (require authentication)
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(verifier))
	{
		protected.POST("/auth/handshake", authHandler.Handshake)
		protected.GET("/auth/profile", authHandler.GetProfile)
	}

	// Admin routes (require admin role)
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(verifier), middleware.AdminMiddleware())
	{
		admin.GET("/hero-banners", heroHandler.GetHeroBanners)
		admin.GET("/hero-banners/:id", heroHandler.GetHeroBanner)
		admin.POST("/hero-banners", heroHandler.CreateHeroBanner)
		admin.PATCH("/hero-banners/:id", heroHandler.UpdateHeroBanner)
		admin.DELETE("/hero-banners/:id", heroHandler.DeleteHeroBanner)

		admin.GET("/special-offers", specialHandler.GetOffers)
		admin.GET("/special-offers/:id", specialHandler.GetOffer)
		admin.POST("/special-offers", specialHandler.CreateOffer)
		admin.PATCH("/special-offers/:id", specialHandler.UpdateOffer)
		admin.DELETE("/special-offers/:id", specialHandler.DeleteOffer)

		admin.GET("/laptop-offers", laptopHandler.GetOffers)
		admin.GET("/laptop-offers/:id", laptopHandler.GetOffer)
		admin.POST("/laptop-offers", laptopHandler.CreateOffer)
		admin.PATCH("/laptop-offers/:id", laptopHandler.UpdateOffer)
		admin.DELETE("/laptop-offers/:id", laptopHandler.DeleteOffer)

		admin.POST("/uploads/presign", uploadHandler.PresignUpload)
	}
}
