package main

import (
	"flag"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/healio-platform/healio-api/internal/config"
	dbpkg "github.com/healio-platform/healio-api/internal/db"
	"github.com/healio-platform/healio-api/internal/logger"
	"github.com/healio-platform/healio-api/internal/models"
)

// Seeds the first admin account. Refuses to run when an admin already
// exists; admin accounts are never created through the API.
func main() {
	email := flag.String("email", "", "admin email")
	password := flag.String("password", "", "admin password")
	name := flag.String("name", "Administrator", "admin display name")
	flag.Parse()

	log := logger.New()
	defer log.Sync()

	if *email == "" || *password == "" {
		log.Fatal("both --email and --password are required")
	}

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	var count int64
	db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count)
	if count > 0 {
		log.Fatal("an admin account already exists, refusing to create another")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("failed to hash password", zap.Error(err))
	}

	admin := models.User{
		Name:         *name,
		Email:        *email,
		PasswordHash: string(hashed),
		Role:         models.RoleAdmin,
	}

	if err := db.Create(&admin).Error; err != nil {
		log.Fatal("failed to create admin", zap.Error(err))
	}

	log.Info("admin created",
		zap.Uint("id", admin.ID),
		zap.String("email", admin.Email),
	)
}
