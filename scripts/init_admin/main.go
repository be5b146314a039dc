package main

import (
	"fmt"
	"log"
	"os"

	"github.com/pageforge/internal/config"
	"github.com/pageforge/internal/db"
	"golang.org/x/crypto/bcrypt"
)

// Seeds the first admin account. Credentials come from arguments or fall
// back to admin/admin123 for local development.
func main() {
	cfg := config.Load()
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatal("failed to initialize database:", err)
	}

	username := "admin"
	password := "admin123"
	if len(os.Args) > 2 {
		username = os.Args[1]
		password = os.Args[2]
	}

	var count int64
	db.DB.Model(&db.User{}).Count(&count)
	if count > 0 {
		fmt.Println("a user already exists, nothing to do")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("failed to hash password:", err)
	}

	if err := db.DB.Create(&db.User{Username: username, Password: string(hashed)}).Error; err != nil {
		log.Fatal("failed to create user:", err)
	}

	fmt.Printf("admin user %q created\n", username)
}
