package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/escolacolaco/backend/database"
	"github.com/escolacolaco/backend/handlers"
	"github.com/escolacolaco/backend/models"
	"github.com/escolacolaco/backend/natsserver"
	"github.com/escolacolaco/backend/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Connect to database
	if err := database.Connect(); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
	defer database.Close()

	// Seed initial data (idempotent, keyed on unique columns)
	if err := database.Seed(); err != nil {
		log.Fatalf("❌ Failed to seed database: %v", err)
	}

	// Start embedded NATS server for the live news ticker
	natsPort := 4222
	if p := os.Getenv("NATS_PORT"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil {
			natsPort = parsed
		}
	}
	natsServer, err := natsserver.New(natsserver.Config{
		Port:       natsPort,
		MaxPayload: 1024 * 1024,
	})
	if err != nil {
		log.Fatalf("❌ Failed to start NATS server: %v", err)
	}
	defer natsServer.Shutdown()

	// Initialize news hub for WebSocket streaming
	newsHub, err := services.NewNewsHub(natsServer.Conn())
	if err != nil {
		log.Fatalf("❌ Failed to start news hub: %v", err)
	}
	go newsHub.Run()
	handlers.SetNewsHub(newsHub)
	log.Println("📰 News hub initialized")

	// Setup Gin router
	if os.Getenv("ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// CORS middleware
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(config))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	// WebSocket route for the live news ticker (outside /api group)
	router.GET("/ws/news", handlers.HandleNewsWebSocket)

	// API Routes
	api := router.Group("/api")
	{
		// Public routes
		api.GET("/home", handlers.GetHomePage)
		api.GET("/news", handlers.GetNews)
		api.GET("/news/highlights", handlers.GetNewsHighlights)
		api.GET("/news/:id", handlers.GetNewsItem)
		api.POST("/contact", handlers.PostContact)

		// Authentication
		auth := api.Group("/auth")
		{
			auth.POST("/login", handlers.Login)
			auth.POST("/logout", handlers.Logout)
		}

		// Student area
		student := api.Group("/student")
		student.Use(handlers.AuthMiddleware(models.RoleStudent))
		{
			student.GET("/dashboard", handlers.GetStudentDashboard)
		}

		// Admin area (admins and teachers, admin-only routes gated again)
		admin := api.Group("/admin")
		admin.Use(handlers.AuthMiddleware(models.RoleAdmin, models.RoleTeacher))
		{
			admin.GET("/dashboard", handlers.GetAdminDashboard)
			admin.GET("/statistics", handlers.GetStatistics)

			admin.GET("/students", handlers.GetStudents)
			admin.POST("/students", handlers.RegisterStudent)
			admin.GET("/students/:id", handlers.GetStudent)
			admin.PUT("/students/:id", handlers.UpdateStudent)
			admin.DELETE("/students/:id", handlers.AuthMiddleware(models.RoleAdmin), handlers.DeleteStudent)
			admin.GET("/students/:id/enrollments", handlers.GetStudentEnrollments)

			admin.GET("/teachers", handlers.AuthMiddleware(models.RoleAdmin), handlers.GetTeachers)

			admin.GET("/news", handlers.GetAdminNews)
			admin.POST("/news", handlers.CreateNews)

			admin.POST("/enrollments", handlers.AuthMiddleware(models.RoleAdmin), handlers.CreateEnrollment)

			admin.GET("/live/stats", handlers.GetNewsHubStats)
		}
	}

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}

	log.Printf("🚀 Server running on http://localhost:%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
