package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"pollboard/internal/auth"
	"pollboard/internal/cache"
	"pollboard/internal/config"
	"pollboard/internal/database"
	"pollboard/internal/handlers"
	"pollboard/internal/repository"
	"pollboard/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize JWT
	auth.InitJWT(cfg.App.JWTSecret)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations and seed reference data
	if err := database.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.SeedCategories(); err != nil {
		log.Fatalf("Failed to seed categories: %v", err)
	}

	// Optional Redis results cache (disabled when REDIS_ADDR is unset)
	resultsCache, err := cache.New(cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Initialize repository and services
	repo := repository.NewRepository(database.GetDB())
	authService := services.NewAuthService(database.GetDB())
	pollService := services.NewPollService(repo)
	voteService := services.NewVoteService(database.GetDB())
	userService := services.NewUserService(database.GetDB())

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	pollHandler := handlers.NewPollHandler(pollService, voteService, repo, resultsCache)
	categoryHandler := handlers.NewCategoryHandler(repo)
	userHandler := handlers.NewUserHandler(userService, authService)

	// Set up Gin router
	router := gin.Default()

	// CORS middleware
	allowedOrigins := []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
	}
	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Authentication routes (public)
	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.POST("/logout", authHandler.Logout)
	}

	// Authenticated /auth/me route
	authProtected := router.Group("/auth")
	authProtected.Use(auth.AuthMiddleware())
	{
		authProtected.GET("/me", authHandler.GetMe)
	}

	// Public routes
	router.GET("/api/polls", pollHandler.GetPolls)
	router.GET("/api/polls/:id/results", pollHandler.GetResults)
	router.GET("/api/categories", categoryHandler.GetCategories)

	// Routes where identity is optional: anonymous voting is a per-poll policy
	optional := router.Group("/api")
	optional.Use(auth.OptionalAuthMiddleware())
	{
		optional.GET("/polls/:id", pollHandler.GetPoll)
		optional.POST("/polls/:id/vote", pollHandler.Vote)
	}

	// API routes (protected)
	api := router.Group("/api")
	api.Use(auth.AuthMiddleware())
	{
		api.POST("/polls", pollHandler.CreatePoll)
		api.PUT("/polls/:id/status", pollHandler.UpdateStatus)
		api.DELETE("/polls/:id", pollHandler.DeletePoll)

		api.POST("/polls/:id/bookmark", userHandler.BookmarkPoll)
		api.DELETE("/polls/:id/bookmark", userHandler.RemoveBookmark)

		userRoutes := api.Group("/user")
		{
			userRoutes.GET("/stats", userHandler.GetStats)
			userRoutes.GET("/votes", userHandler.GetVotingHistory)
			userRoutes.GET("/bookmarks", userHandler.GetBookmarks)
			userRoutes.PUT("/profile", userHandler.UpdateProfile)
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		log.Printf("Health check: http://localhost:%s/health", cfg.Server.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with 5 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
