package db

import (
	"errors"
	"log"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/deal_management/internal/models"
)

var gormDB *gorm.DB

const (
	dbPathEnv               = "SQLITE_DB_PATH"
	defaultDbFile           = "data/deals.db"
	adminDefaultPasswordEnv = "ADMIN_DEFAULT_PASSWORD"
	adminUsername           = "admin"
)

// InitDB initializes the GORM database connection. The database file path
// comes from SQLITE_DB_PATH, falling back to "data/deals.db". It migrates the
// schema and seeds the admin account if absent.
func InitDB() {
	dbPath := os.Getenv(dbPathEnv)
	if dbPath == "" {
		dbPath = defaultDbFile
		log.Printf("Environment variable %s not set, using default database path: %s", dbPathEnv, dbPath)
	} else {
		log.Printf("Using database path from environment variable %s: %s", dbPathEnv, dbPath)
	}

	dbDir := filepath.Dir(dbPath)
	if _, err := os.Stat(dbDir); os.IsNotExist(err) {
		log.Printf("Database directory %s does not exist, creating it...", dbDir)
		if mkErr := os.MkdirAll(dbDir, 0755); mkErr != nil {
			log.Fatalf("Failed to create database directory %s: %v", dbDir, mkErr)
		}
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	var err error
	gormDB, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database %s: %v", dbPath, err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatalf("Failed to get underlying sql.DB from GORM: %v", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Printf("Successfully connected to database using GORM: %s", dbPath)

	err = gormDB.AutoMigrate(
		&models.User{},
		&models.Deal{},
		&models.DealStatusHistory{},
		&models.FileAttachment{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate database tables: %v", err)
	}
	log.Println("Database tables migrated successfully.")

	if err := seedAdminUser(gormDB); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}
}

// seedAdminUser creates the admin account on first start. The password comes
// from ADMIN_DEFAULT_PASSWORD and should be changed right after setup.
func seedAdminUser(db *gorm.DB) error {
	var existing models.User
	err := db.Where("username = ?", adminUsername).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	password := os.Getenv(adminDefaultPasswordEnv)
	if password == "" {
		password = "admin"
		log.Printf("Environment variable %s not set, seeding admin with the default password.", adminDefaultPasswordEnv)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Username:     adminUsername,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Printf("Seeded admin user %q.", adminUsername)
	return nil
}

// GetDB returns the GORM database instance.
func GetDB() *gorm.DB {
	if gormDB == nil {
		log.Fatal("Database not initialized. Call InitDB first.")
	}
	return gormDB
}

// CloseDB closes the GORM database connection, usually on application exit.
func CloseDB() {
	if gormDB != nil {
		sqlDB, err := gormDB.DB()
		if err != nil {
			log.Printf("Error getting underlying sql.DB for closing: %v", err)
			return
		}
		if err := sqlDB.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
		log.Println("Database connection closed.")
	}
}
