package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/productivity-api/internal/config"
	"github.com/yukikurage/productivity-api/internal/database"
	"github.com/yukikurage/productivity-api/internal/handlers"
	"github.com/yukikurage/productivity-api/internal/middleware"
	"github.com/yukikurage/productivity-api/internal/repository"
	"github.com/yukikurage/productivity-api/internal/services"
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
	if err := database.AddIndexes(database.GetDB()); err != nil {
		log.Fatalf("Failed to add indexes: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	secret := []byte(cfg.JWTSecret)

	// Initialize handlers
	userRepo := repository.NewUserRepository(database.GetDB())
	authService := services.NewAuthService(userRepo, secret)
	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler()
	goalHandler := handlers.NewGoalHandler()
	habitHandler := handlers.NewHabitHandler()
	pomodoroHandler := handlers.NewPomodoroHandler()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Productivity API is running",
		})
	})

	// Auth routes (public)
	auth := r.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// Task routes (protected)
	tasks := r.Group("/tasks")
	tasks.Use(middleware.RequireAuth(secret))
	{
		tasks.GET("", taskHandler.ListTasks)
		tasks.POST("", taskHandler.CreateTask)
		tasks.PATCH("/:id", taskHandler.UpdateTask)
		tasks.DELETE("/:id", taskHandler.DeleteTask)
		tasks.POST("/:id/complete", taskHandler.CompleteTask)
	}

	// Goal routes (protected)
	goals := r.Group("/goals")
	goals.Use(middleware.RequireAuth(secret))
	{
		goals.GET("", goalHandler.ListGoals)
		goals.POST("", goalHandler.CreateGoal)
		goals.PATCH("/:id", goalHandler.UpdateGoal)
		goals.DELETE("/:id", goalHandler.DeleteGoal)
		goals.POST("/:id/complete", goalHandler.CompleteGoal)
	}

	// Habit routes (protected)
	habits := r.Group("/habits")
	habits.Use(middleware.RequireAuth(secret))
	{
		habits.GET("", habitHandler.ListHabits)
		habits.POST("", habitHandler.CreateHabit)
		habits.PATCH("/:id", habitHandler.UpdateHabit)
		habits.DELETE("/:id", habitHandler.DeleteHabit)
		habits.POST("/:id/complete", habitHandler.CompleteHabit)
	}

	// Pomodoro routes (protected)
	pomodoro := r.Group("/pomodoro")
	pomodoro.Use(middleware.RequireAuth(secret))
	{
		pomodoro.GET("", pomodoroHandler.ListSessions)
		pomodoro.POST("/start", pomodoroHandler.StartSession)
		pomodoro.POST("/:id/end", pomodoroHandler.EndSession)
		pomodoro.DELETE("/:id", pomodoroHandler.DeleteSession)
	}

	// Start server
	addr := ":" + cfg.Port
	log.Printf("Server starting on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
