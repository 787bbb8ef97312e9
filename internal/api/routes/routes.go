package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sednex/community-backend/internal/api/handlers"
	"github.com/sednex/community-backend/internal/api/middleware"
	"github.com/sednex/community-backend/internal/config"
	"github.com/sednex/community-backend/internal/services"
	"github.com/sednex/community-backend/pkg/logger"
	"gorm.io/gorm"
)

func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, verifier services.IdentityVerifier, images services.ImageStore) {
	// Middleware
	router.Use(middleware.RequestLogger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins))
	if cfg.RateLimitRPS > 0 {
		router.Use(middleware.RateLimitMiddleware(cfg))
	}

	// Initialize services
	authService := services.NewAuthService(db, verifier)
	userService := services.NewUserService(db, images)
	postService := services.NewPostService(db)
	commentService := services.NewCommentService(db)
	articleService := services.NewArticleService(db)
	categoryService := services.NewCategoryService(db)
	productService := services.NewProductService(db, images)
	touristService := services.NewTouristService(db, images)
	aboutService := services.NewAboutService(db)
	adminService := services.NewAdminService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	postHandler := handlers.NewPostHandler(postService, commentService)
	articleHandler := handlers.NewArticleHandler(articleService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	productHandler := handlers.NewProductHandler(productService)
	touristHandler := handlers.NewTouristHandler(touristService)
	aboutHandler := handlers.NewAboutHandler(aboutService)
	adminHandler := handlers.NewAdminHandler(adminService)

	authenticate := middleware.Authenticate(authService)
	adminOnly := middleware.AdminOnly()

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Server is running"})
	})

	if local, ok := images.(*services.LocalStorage); ok {
		router.Static("/uploads", local.Dir())
	}

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
	}

	users := api.Group("/users", authenticate)
	{
		users.GET("", adminOnly, userHandler.ListUsers)
		users.GET("/me", userHandler.Me)
		users.PATCH("/:uid", middleware.ImageUpload(middleware.ProfileImage), userHandler.UpdateProfile)
		users.PATCH("/:uid/role", adminOnly, userHandler.UpdateRole)
		users.DELETE("/:uid", adminOnly, userHandler.Deactivate)
	}

	posts := api.Group("/posts", authenticate)
	{
		posts.POST("", postHandler.CreatePost)
		posts.GET("", postHandler.ListPosts)
		posts.GET("/:postId", postHandler.GetPost)
		posts.GET("/category/:category", postHandler.ListByCategory)
		posts.PATCH("/:postId", postHandler.UpdatePost)
		posts.DELETE("/:postId", postHandler.DeletePost)
		posts.PATCH("/:postId/love", postHandler.ToggleLove)

		posts.POST("/comment/:postId", postHandler.CreateComment)
		posts.GET("/comment/:postId", postHandler.ListComments)
		posts.GET("/comment/replies/:commentId", postHandler.ListReplies)
	}

	articles := api.Group("/articles", authenticate)
	{
		articles.POST("", articleHandler.CreateArticle)
		articles.GET("", articleHandler.ListArticles)
		articles.GET("/saved", articleHandler.ListSaved)
		articles.GET("/:articleId", articleHandler.GetArticle)
		articles.PATCH("/:articleId", articleHandler.UpdateArticle)
		articles.DELETE("/:articleId", adminOnly, articleHandler.DeleteArticle)
		articles.POST("/:articleId/save", articleHandler.ToggleSave)
	}

	products := api.Group("/products")
	{
		products.GET("", productHandler.GetAllProducts)
		products.GET("/:productId", middleware.OptionalAuth(authService), productHandler.GetProduct)
		products.POST("", authenticate, adminOnly, middleware.ImageUpload(middleware.ProductImages), productHandler.CreateProduct)
		products.PUT("/:productId", authenticate, adminOnly, middleware.ImageUpload(middleware.ProductImages), productHandler.UpdateProduct)
		products.DELETE("/:productId", authenticate, adminOnly, productHandler.DeleteProduct)
		products.POST("/:productId/review", authenticate, productHandler.AddReview)
		products.PATCH("/:productId/love", authenticate, productHandler.ToggleLove)
	}

	categories := api.Group("/categories")
	{
		categories.GET("", categoryHandler.ListCategories)
		categories.POST("", authenticate, adminOnly, categoryHandler.CreateCategory)
	}

	tourist := api.Group("/tourist", authenticate, middleware.UserOrAdmin())
	{
		tourist.POST("", middleware.ImageUpload(middleware.TouristImage), touristHandler.CreateSpot)
		tourist.GET("", touristHandler.ListSpots)
		tourist.GET("/:touristId", touristHandler.GetSpot)
		tourist.PATCH("/:touristId", middleware.ImageUpload(middleware.TouristImage), touristHandler.UpdateSpot)
		tourist.DELETE("/:touristId", adminOnly, touristHandler.DeleteSpot)
	}

	about := api.Group("/about", authenticate)
	{
		about.POST("/terms", adminOnly, aboutHandler.CreateTerms)
		about.PATCH("/terms", adminOnly, aboutHandler.UpdateTerms)
		about.GET("/terms", aboutHandler.GetTerms)
		about.DELETE("/terms", adminOnly, aboutHandler.DeleteTerms)

		about.POST("/contact", adminOnly, aboutHandler.CreateContact)
		about.PATCH("/contact", adminOnly, aboutHandler.UpdateContact)
		about.GET("/contact", aboutHandler.GetContact)
		about.DELETE("/contact", adminOnly, aboutHandler.DeleteContact)

		about.POST("/faq", adminOnly, aboutHandler.CreateFaq)
		about.GET("/faq", aboutHandler.ListFaqs)
		about.PATCH("/faq/:faqId", adminOnly, aboutHandler.UpdateFaq)
		about.DELETE("/faq/:faqId", adminOnly, aboutHandler.DeleteFaq)
	}

	admin := api.Group("/admin", authenticate, adminOnly)
	{
		admin.GET("/dashboard", adminHandler.GetDashboard)
	}

	logger.Info("Routes initialized successfully")
}
