package database

import (
	"fmt"
	"log"

	config "github.com/almusafir/travel_booking/configs"
	"github.com/almusafir/travel_booking/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	dsn := config.Config("DATABASE_URL")

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:                              false,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		DisableNestedTransaction:                 true,
		// Duplicate-key violations must surface as gorm.ErrDuplicatedKey so
		// concurrent plan creation can fall back to reading the existing plan.
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	fmt.Println("✅ Database connected successfully")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.TravelPackage{},
		&models.Booking{},
		&models.BookingDeletionAudit{},
		&models.Installment{},
		&models.PaymentDeletionAudit{},
	)
	if err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}
	fmt.Println("✅ Database migration successful")
}

func SeedAdmin() {
	adminEmail := config.Config("ADMIN_EMAIL")
	adminPassword := config.Config("ADMIN_PASSWORD")

	var count int64
	err := DB.Model(&models.User{}).Where("email = ?", adminEmail).Count(&count).Error
	if err != nil {
		log.Fatalf("🔥 Failed to check for admin user: %v", err)
		return
	}

	if count > 0 {
		log.Println("Admin user already exists.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("🔥 Failed to hash admin password: %v", err)
		return
	}

	adminUser := models.User{
		FullName: config.Config("ADMIN_FULL_NAME"),
		Email:    adminEmail,
		Password: string(hashedPassword),
		Role:     "admin",
		TenantID: "public",
	}

	if err := DB.Create(&adminUser).Error; err != nil {
		log.Fatalf("🔥 Failed to seed admin user: %v", err)
		return
	}

	log.Println("✅ Admin user seeded successfully")
}

// SeedPackages loads a starter catalog for the public tenant when the table
// is empty, so a fresh install has something bookable.
func SeedPackages() {
	var count int64
	if err := DB.Model(&models.TravelPackage{}).Count(&count).Error; err != nil {
		log.Fatalf("🔥 Failed to check for travel packages: %v", err)
		return
	}
	if count > 0 {
		return
	}

	starter := []models.TravelPackage{
		{Name: "Economy Umrah Package", Description: "14 days, shared accommodation near the Haram.", Price: 9500000, DurationDays: 14, DepartureCity: "Mumbai", Active: true, TenantID: "public"},
		{Name: "Premium Umrah Package", Description: "10 days, 4-star hotels and guided ziyarat.", Price: 16500000, DurationDays: 10, DepartureCity: "Delhi", Active: true, TenantID: "public"},
		{Name: "Deluxe Umrah Package", Description: "7 days, 5-star hotels steps from the Haram.", Price: 24500000, DurationDays: 7, DepartureCity: "Hyderabad", Active: true, TenantID: "public"},
	}
	for _, pkg := range starter {
		if err := DB.Create(&pkg).Error; err != nil {
			log.Fatalf("🔥 Failed to seed travel packages: %v", err)
			return
		}
	}
	log.Println("✅ Travel packages seeded successfully")
}
