package main

import (
	"log"
	"net/http"
	"os"
	"strings"

	_ "tasktrack/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"tasktrack/internal/auth"
	"tasktrack/internal/cache"
	"tasktrack/internal/config"
	"tasktrack/internal/db"
	"tasktrack/internal/handler"
	"tasktrack/internal/model"
	"tasktrack/internal/repository"
	"tasktrack/internal/router"
	"tasktrack/internal/service"
)

// @title Task Tracker API
// @version 1.0
// @description Personal task tracking API with JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Task{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Task{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTTTL)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService)
	taskService := service.NewTaskService(taskRepo)
	profileService := service.NewProfileService(userRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	taskHandler := handler.NewTaskHandler(taskService)
	profileHandler := handler.NewProfileHandler(profileService)

	// Register routes
	router.Register(e, jwtService, authHandler, taskHandler, profileHandler)

	if cfg.SwaggerHost != "" {
		swaggerURL := cfg.SwaggerHost
		if !strings.HasPrefix(swaggerURL, "http://") && !strings.HasPrefix(swaggerURL, "https://") {
			swaggerURL = "http://" + swaggerURL
		}
		log.Printf("Swagger documentation available at: %s/swagger/index.html", swaggerURL)
	} else {
		log.Printf("Swagger documentation available at: http://localhost:%s/swagger/index.html", cfg.ServerPort)
	}

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
