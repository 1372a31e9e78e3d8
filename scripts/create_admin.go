// scripts/create_admin.go
package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/FakhrezaAldino/app-sipandu-sub000/config"
	"github.com/FakhrezaAldino/app-sipandu-sub000/database"
	"github.com/FakhrezaAldino/app-sipandu-sub000/models"
)

func main() {
	cfg := config.Load()
	database.Connect(cfg)

	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin1234"
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("gagal hash password: %v", err)
	}

	var existing models.User
	if err := database.DB.Where("username = ?", username).First(&existing).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Fatalf("gagal membaca users: %v", err)
		}
	} else {
		fmt.Println("admin sudah ada dengan username:", username)
		os.Exit(0)
	}

	u := models.User{
		Nama:         "Administrator",
		Username:     username,
		Email:        username + "@sipandu.local",
		PasswordHash: string(hashed),
		Role:         models.RoleAdmin,
		Aktif:        true,
	}
	if err := database.DB.Create(&u).Error; err != nil {
		log.Fatalf("gagal membuat admin: %v", err)
	}

	fmt.Println("admin dibuat:")
	fmt.Println("  username:", username)
	fmt.Println("  password:", password, "(segera ganti setelah login)")
}
