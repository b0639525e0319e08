// File: /database/database.go
package database

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"notedefrais-api/models"
)

func Initialize(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Info),
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	// Auto migrate all models
	err := db.AutoMigrate(
		&models.User{},
		&models.TravelType{},
		&models.ExpenseType{},
		&models.Worksite{},
		&models.Trip{},
		&models.Expense{},
		&models.VehicleRateRule{},
		&models.DailyMissionRate{},
		&models.UserKilometricRate{},
		&models.RoleKilometricRate{},
	)

	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Add custom indexes for better performance
	if err := addCustomIndexes(db); err != nil {
		return fmt.Errorf("failed to add custom indexes: %w", err)
	}

	return nil
}

func addCustomIndexes(db *gorm.DB) error {
	// Monthly recap queries filter by user and date range
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_trips_user_date ON trips(user_id, date)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for trips: %v\n", err)
	}

	// Expense lookups are always per trip
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_expenses_trip ON expenses(trip_id)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for expenses: %v\n", err)
	}

	// Rule selection filters on user, active flag and priority
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_vehicle_rate_rules_user_active ON vehicle_rate_rules(user_id, active, priority DESC)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for vehicle_rate_rules: %v\n", err)
	}

	// Pending-rate reminders scan by statut
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_daily_mission_rates_statut ON daily_mission_rates(statut)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for daily_mission_rates: %v\n", err)
	}

	return nil
}

// SeedData can be used to populate the database with initial data for development/testing
func SeedData(db *gorm.DB) error {
	// Check if we already have users
	var userCount int64
	db.Model(&models.User{}).Count(&userCount)

	if userCount > 0 {
		fmt.Println("Database already has data, skipping seed")
		return nil
	}

	testUsers := []models.User{
		{
			ID:            "user-1",
			Name:          "Jean Dupont",
			Handle:        "jean_dupont",
			Email:         "jean@example.com",
			Password:      "$2a$10$dummy", // This should be properly hashed in real scenarios
			Role:          models.RoleAgent,
			EmailVerified: true,
		},
		{
			ID:            "manager-1",
			Name:          "Marie Martin",
			Handle:        "marie_martin",
			Email:         "marie@example.com",
			Password:      "$2a$10$dummy",
			Role:          models.RoleManager,
			EmailVerified: true,
		},
	}

	for _, user := range testUsers {
		if err := db.Create(&user).Error; err != nil {
			fmt.Printf("Warning: Could not create test user %s: %v\n", user.Handle, err)
		}
	}

	travelTypes := []models.TravelType{
		{Label: "Mission locale"},
		{Label: "Grand déplacement"},
		{Label: "Formation"},
	}
	for _, tt := range travelTypes {
		if err := db.Create(&tt).Error; err != nil {
			fmt.Printf("Warning: Could not create travel type %s: %v\n", tt.Label, err)
		}
	}

	expenseTypes := []models.ExpenseType{
		{Label: "Repas"},
		{Label: "Hébergement"},
		{Label: "Péage"},
		{Label: "Divers"},
	}
	for _, et := range expenseTypes {
		if err := db.Create(&et).Error; err != nil {
			fmt.Printf("Warning: Could not create expense type %s: %v\n", et.Label, err)
		}
	}

	roleRate := models.RoleKilometricRate{
		Role:      models.RoleAgent,
		RatePerKm: decimal.RequireFromString("0.52"),
		Statut:    models.StatutApproved,
	}
	if err := db.Create(&roleRate).Error; err != nil {
		fmt.Printf("Warning: Could not create role kilometric rate: %v\n", err)
	}

	fmt.Println("Database seeded with test data including reference rates")
	return nil
}
