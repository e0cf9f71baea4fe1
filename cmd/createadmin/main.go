package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/ratehub/ratehub-backend/config"
	"github.com/ratehub/ratehub-backend/internal/app/model"
	"github.com/ratehub/ratehub-backend/internal/db"
	"github.com/ratehub/ratehub-backend/pkg/util"
	"gorm.io/gorm/clause"
)

// Bootstraps the initial admin account. Re-running resets the password
// for the same email instead of failing on the unique index.
func main() {
	name := flag.String("name", "Platform Administrator", "admin display name")
	email := flag.String("email", "admin@example.com", "admin email")
	password := flag.String("password", "", "admin password (required)")
	address := flag.String("address", "", "admin address")
	flag.Parse()

	if *password == "" {
		log.Fatal("Usage: go run cmd/createadmin/main.go -password <password> [-email <email>]")
	}
	if err := util.AdminPasswordPolicy.Validate(*password); err != nil {
		log.Fatal("Invalid password: ", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	passwordHash, err := util.HashPassword(*password)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	admin := &model.User{
		Name:         *name,
		Email:        *email,
		PasswordHash: passwordHash,
		Address:      *address,
		Role:         model.RoleAdmin,
	}

	err = db.GetDB().Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"password_hash": passwordHash}),
	}).Create(admin).Error
	if err != nil {
		log.Fatal("Failed to create admin:", err)
	}

	fmt.Println("Admin user created successfully")
	fmt.Println("Email:", *email)
}
