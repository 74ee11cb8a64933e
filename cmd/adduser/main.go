// Command adduser creates a user account directly in the database, for local
// setups and operators who bypass the register endpoint.
package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/deal_management/internal/models"
	"github.com/deal_management/pkg/db"
)

func main() {
	username := flag.String("username", "test", "username for the new account")
	password := flag.String("password", "test", "password for the new account")
	emailAddr := flag.String("email", "", "optional contact email")
	admin := flag.Bool("admin", false, "grant the Admin role")
	flag.Parse()

	_ = godotenv.Load()

	db.InitDB()
	defer db.CloseDB()
	gormDB := db.GetDB()

	var existing models.User
	if err := gormDB.Where("username = ?", *username).First(&existing).Error; err == nil {
		log.Printf("User %q already exists in the database.", *username)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	role := models.RoleUser
	if *admin {
		role = models.RoleAdmin
	}
	user := models.User{
		Username:     *username,
		PasswordHash: string(hash),
		Role:         role,
	}
	if *emailAddr != "" {
		user.Email = emailAddr
	}

	if err := gormDB.Create(&user).Error; err != nil {
		log.Fatalf("Failed to create user %q: %v", *username, err)
	}
	log.Printf("User %q has been added successfully.", *username)
}
