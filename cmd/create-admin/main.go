package main

import (
	"bufio"
	"community_justice_go/config"
	"community_justice_go/db"
	"community_justice_go/models"
	"community_justice_go/services"
	"fmt"
	"log"
	"os"
	"strings"
	"syscall"
	"time"

	"golang.org/x/term"
	"gorm.io/gorm"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(cfg.DBPath, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(&models.User{}, &models.UserProfile{}, &models.Session{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create Administrator ===")
	fmt.Println()

	fmt.Print("Username: ")
	username, _ := reader.ReadString('\n')
	username = strings.TrimSpace(username)

	fmt.Print("Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)

	fmt.Print("Full name: ")
	fullName, _ := reader.ReadString('\n')
	fullName = strings.TrimSpace(fullName)

	fmt.Print("Last name: ")
	lastName, _ := reader.ReadString('\n')
	lastName = strings.TrimSpace(lastName)

	fmt.Print("ID number (cédula): ")
	idNumber, _ := reader.ReadString('\n')
	idNumber = strings.TrimSpace(idNumber)

	// Get password securely
	fmt.Print("Password: ")
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		log.Fatalf("Failed to read password: %v", err)
	}
	password := string(passwordBytes)
	fmt.Println() // New line after password input

	// Validate inputs
	if username == "" || email == "" || fullName == "" || lastName == "" || idNumber == "" || password == "" {
		log.Fatal("All fields are required")
	}

	if len(password) < 8 {
		log.Fatal("Password must be at least 8 characters long")
	}

	// Check if user already exists
	var existingUser models.User
	if err := db.DB.Where("username = ? OR email = ?", username, email).First(&existingUser).Error; err == nil {
		log.Fatalf("User %s already exists", existingUser.Username)
	}

	// Hash password
	hashedPassword, err := services.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	// Administrators created here are pre-approved
	user := &models.User{
		Username: username,
		Email:    email,
		Password: hashedPassword,
		IsActive: true,
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile := &models.UserProfile{
			UserID:          user.ID,
			FullName:        fullName,
			LastName:        lastName,
			IDNumber:        idNumber,
			DateOfBirth:     time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
			RoleRequest:     models.RoleAdmin,
			ApprovedByAdmin: true,
			Role:            models.RoleAdmin,
		}
		return tx.Create(profile).Error
	})
	if err != nil {
		log.Fatalf("Failed to create administrator: %v", err)
	}

	fmt.Println()
	fmt.Println("✓ Administrator created successfully!")
	fmt.Printf("  ID: %s\n", user.ID)
	fmt.Printf("  Username: %s\n", user.Username)
	fmt.Printf("  Email: %s\n", user.Email)
	fmt.Println()
	fmt.Printf("They can now log in at http://localhost:%s/api/login\n", cfg.ServerPort)
}
