package main

import (
	"rosalia.com/connect/internal/config"
	"rosalia.com/connect/internal/entity"
	"rosalia.com/connect/internal/server"
	"rosalia.com/connect/pkg/database"
	"rosalia.com/connect/pkg/logger"
	"rosalia.com/connect/pkg/token"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()

	log, cleanup := logger.New(logger.Options{
		Level: cfg.LogLevel,
		JSON:  cfg.LogJSON,
		File:  cfg.LogFile,
	})
	defer cleanup()

	db, err := database.Connect(database.Config{
		Host: cfg.DBHost,
		User: cfg.DBUser,
		Pass: cfg.DBPass,
		Name: cfg.DBName,
		Port: cfg.DBPort,
	})
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Warn("closing database", zap.Error(err))
		}
	}()

	if err := migrate(db); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	if cfg.JWTSecret == "" {
		log.Warn("JWT_SECRET not set, using the built-in fallback key; tokens are forgeable")
	}
	tokens := token.New(cfg.JWTSecret, token.DefaultTTL)

	if cfg.AppEnv == "development" {
		if err := seedAdminUser(db, log); err != nil {
			log.Fatal("failed to seed admin user", zap.Error(err))
		}
	}

	srv := server.New(db, cfg, log, tokens)

	log.Info("LMS server listening", zap.String("port", cfg.Port))
	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatal("server exited with error", zap.Error(err))
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.Course{},
		&entity.Enrollment{},
		&entity.Assignment{},
		&entity.Submission{},
		&entity.Announcement{},
	)
}

func seedAdminUser(db *gorm.DB, log *zap.Logger) error {
	var count int64
	if err := db.Model(&entity.User{}).
		Where("email = ?", "admin@rosalia.com").
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Info("admin user already exists, skipping seed")
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := entity.User{
		Email:        "admin@rosalia.com",
		PasswordHash: string(hashed),
		FirstName:    "Admin",
		LastName:     "Rosalia",
		Role:         entity.RoleAdmin,
	}

	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Info("admin user seeded", zap.String("email", admin.Email))
	return nil
}
