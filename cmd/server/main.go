package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"taskmanager/internal/config"
	"taskmanager/internal/constants"
	"taskmanager/internal/database"
	"taskmanager/internal/handlers"
	"taskmanager/internal/mailer"
	"taskmanager/internal/middleware"
	"taskmanager/internal/repository"
	"taskmanager/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()
	r.Use(cors.Default())

	// Setup cookie-backed session middleware
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	})
	r.Use(sessions.Sessions(constants.SessionName, store))

	db := database.GetDB()

	// Repositories
	taskRepo := repository.NewTaskRepository(db)
	workerRepo := repository.NewWorkerRepository(db)
	positionRepo := repository.NewPositionRepository(db)
	taskTypeRepo := repository.NewTaskTypeRepository(db)
	commentaryRepo := repository.NewCommentaryRepository(db)

	// Services
	mail := mailer.NewSMTPMailer(cfg)
	taskService := services.NewTaskService(taskRepo, taskTypeRepo, commentaryRepo, mail, cfg.BaseURL)
	authService := services.NewAuthService(workerRepo)
	workerService := services.NewWorkerService(workerRepo, positionRepo)
	lookupService := services.NewLookupService(positionRepo, taskTypeRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService)
	workerHandler := handlers.NewWorkerHandler(workerService)
	lookupHandler := handlers.NewLookupHandler(lookupService)

	// Public pages
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Task Manager API is running"})
	})
	r.GET("/support", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Contact the team at support@task-manager.local"})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", middleware.RequireAuth(), authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentWorker)
			auth.POST("/change-password", middleware.RequireAuth(), authHandler.ChangePassword)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/my", taskHandler.ListMyTasks)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PATCH("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
			tasks.POST("/:id/done", taskHandler.CompleteTask)
			tasks.POST("/:id/comments", taskHandler.CreateCommentary)
		}

		// Team and profile routes (protected)
		api.GET("/team", middleware.RequireAuth(), workerHandler.ListTeam)
		workers := api.Group("/workers")
		workers.Use(middleware.RequireAuth())
		{
			workers.GET("/:id", workerHandler.GetWorker)
			workers.PATCH("/:id", workerHandler.UpdateProfile)
		}

		// Named category routes (protected)
		positions := api.Group("/positions")
		positions.Use(middleware.RequireAuth())
		{
			positions.GET("", lookupHandler.ListPositions)
			positions.POST("", lookupHandler.CreatePosition)
			positions.DELETE("/:id", lookupHandler.DeletePosition)
		}
		taskTypes := api.Group("/task-types")
		taskTypes.Use(middleware.RequireAuth())
		{
			taskTypes.GET("", lookupHandler.ListTaskTypes)
			taskTypes.POST("", lookupHandler.CreateTaskType)
			taskTypes.DELETE("/:id", lookupHandler.DeleteTaskType)
		}
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
