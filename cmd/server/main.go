package main

import (
	"log"
	"net/http"

	_ "reppup/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"reppup/internal/auth"
	"reppup/internal/config"
	"reppup/internal/db"
	"reppup/internal/handler"
	"reppup/internal/mail"
	"reppup/internal/model"
	"reppup/internal/repository"
	"reppup/internal/router"
	"reppup/internal/service"
	"reppup/internal/storage"
)

// @title Reppup User API
// @version 1.0
// @description User account backend with signup, email verification dispatch, profile management, and profile picture uploads.
// @host localhost:3000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey SessionToken
// @in header
// @name x-auth-token
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	userRepo := repository.NewUserRepository(gormDB)

	jwtService := auth.NewJWTService(cfg.JWTSecret)
	mailer := mail.NewSender(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailUser, cfg.EmailPass)

	images, err := storage.NewCloudinaryStore(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		log.Fatalf("image store init: %v", err)
	}

	userService := service.NewUserService(userRepo, jwtService, mailer, images, cfg.FrontendURL)

	userHandler := handler.NewUserHandler(userService)
	uploadHandler := handler.NewUploadHandler(userService)

	router.Register(e, cfg, userHandler, uploadHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
