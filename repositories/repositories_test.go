// File: /repositories/repositories_test.go
package repositories

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"notedefrais-api/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Trip{},
		&models.Expense{},
		&models.VehicleRateRule{},
		&models.DailyMissionRate{},
		&models.UserKilometricRate{},
		&models.RoleKilometricRate{},
	))

	return db
}

func seedUser(t *testing.T, db *gorm.DB, id, role string) *models.User {
	t.Helper()

	user := &models.User{
		ID:       id,
		Name:     "Test User " + id,
		Handle:   "user_" + id,
		Email:    id + "@example.com",
		Password: "$2a$10$dummy",
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestTripRepositoryMonthRange(t *testing.T) {
	db := openTestDB(t)
	repo := NewTripRepository(db)
	user := seedUser(t, db, "u1", models.RoleAgent)

	dates := []models.DateOnly{
		models.NewDateOnly(2024, time.February, 1),
		models.NewDateOnly(2024, time.February, 29),
		models.NewDateOnly(2024, time.March, 1),
	}
	for i, date := range dates {
		trip := models.Trip{
			ID:           "trip-" + date.Format("2006-01-02"),
			UserID:       user.ID,
			Date:         date,
			TravelTypeID: 1,
			DistanceKm:   decimal.NewFromInt(int64(10 * (i + 1))),
		}
		require.NoError(t, db.Create(&trip).Error)
	}

	t.Run("february keeps its last day", func(t *testing.T) {
		trips, err := repo.ListTripsForMonth(user.ID, 2024, time.February)
		require.NoError(t, err)
		require.Len(t, trips, 2)
		assert.Equal(t, "trip-2024-02-01", trips[0].ID)
		assert.Equal(t, "trip-2024-02-29", trips[1].ID)
	})

	t.Run("march only sees march", func(t *testing.T) {
		trips, err := repo.ListTripsForMonth(user.ID, 2024, time.March)
		require.NoError(t, err)
		require.Len(t, trips, 1)
		assert.Equal(t, "trip-2024-03-01", trips[0].ID)
	})

	t.Run("expenses are preloaded", func(t *testing.T) {
		expense := models.Expense{TripID: "trip-2024-02-01", ExpenseTypeID: 1, Amount: decimal.NewFromInt(12)}
		require.NoError(t, db.Create(&expense).Error)

		trips, err := repo.ListTripsForMonth(user.ID, 2024, time.February)
		require.NoError(t, err)
		require.Len(t, trips[0].Expenses, 1)
	})
}

func TestTripRepositoryFindByUserAndDate(t *testing.T) {
	db := openTestDB(t)
	repo := NewTripRepository(db)
	user := seedUser(t, db, "u1", models.RoleAgent)

	date := models.NewDateOnly(2024, time.March, 5)
	trip := models.Trip{ID: "t1", UserID: user.ID, Date: date, TravelTypeID: 1}
	require.NoError(t, db.Create(&trip).Error)

	t.Run("existing day", func(t *testing.T) {
		found, err := repo.FindByUserAndDate(user.ID, date)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "t1", found.ID)
	})

	t.Run("empty day yields nil without error", func(t *testing.T) {
		found, err := repo.FindByUserAndDate(user.ID, models.NewDateOnly(2024, time.March, 6))
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestTripRepositoryDuplicateDayIsDetectable(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db, "u1", models.RoleAgent)

	date := models.NewDateOnly(2024, time.March, 5)
	first := models.Trip{ID: "t1", UserID: user.ID, Date: date, TravelTypeID: 1}
	require.NoError(t, db.Create(&first).Error)

	// A concurrent insert that slips past the lookup must still surface as a
	// duplicate-key error the handler can turn into a conflict response
	second := models.Trip{ID: "t2", UserID: user.ID, Date: date, TravelTypeID: 1}
	err := db.Create(&second).Error
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestRateRepositoryKilometricRateLists(t *testing.T) {
	db := openTestDB(t)
	repo := NewRateRepository(db)
	user := seedUser(t, db, "u1", models.RoleAgent)
	other := seedUser(t, db, "u2", models.RoleAgent)

	require.NoError(t, db.Create(&models.UserKilometricRate{
		UserID:    user.ID,
		RatePerKm: decimal.RequireFromString("0.6"),
		Statut:    models.StatutPending,
	}).Error)
	require.NoError(t, db.Create(&models.UserKilometricRate{
		UserID:    user.ID,
		RatePerKm: decimal.RequireFromString("0.7"),
		Statut:    models.StatutApproved,
	}).Error)
	require.NoError(t, db.Create(&models.UserKilometricRate{
		UserID:    other.ID,
		RatePerKm: decimal.RequireFromString("0.8"),
		Statut:    models.StatutPending,
	}).Error)
	require.NoError(t, db.Create(&models.RoleKilometricRate{
		Role:      models.RoleAgent,
		RatePerKm: decimal.RequireFromString("0.4"),
		Statut:    models.StatutPending,
	}).Error)

	t.Run("user list is scoped and pending-inclusive", func(t *testing.T) {
		rates, err := repo.ListUserKilometricRates(user.ID)
		require.NoError(t, err)
		require.Len(t, rates, 2)
		assert.Equal(t, models.StatutPending, rates[0].Statut)
		assert.Equal(t, models.StatutApproved, rates[1].Statut)
	})

	t.Run("role list includes pending rates", func(t *testing.T) {
		rates, err := repo.ListRoleKilometricRates()
		require.NoError(t, err)
		require.Len(t, rates, 1)
		assert.Equal(t, models.StatutPending, rates[0].Statut)
	})
}

func TestRateRepositoryResolveKilometricRate(t *testing.T) {
	db := openTestDB(t)
	repo := NewRateRepository(db)
	user := seedUser(t, db, "u1", models.RoleAgent)

	roleRate := models.RoleKilometricRate{
		Role:      models.RoleAgent,
		RatePerKm: decimal.RequireFromString("0.4"),
		Statut:    models.StatutApproved,
	}
	require.NoError(t, db.Create(&roleRate).Error)

	t.Run("role rate applies without a user rate", func(t *testing.T) {
		rate, found, err := repo.ResolveKilometricRate(user)
		require.NoError(t, err)
		require.True(t, found)
		assert.True(t, rate.Equal(decimal.RequireFromString("0.4")), "got %s", rate)
	})

	t.Run("pending user rate does not take precedence", func(t *testing.T) {
		pending := models.UserKilometricRate{
			UserID:    user.ID,
			RatePerKm: decimal.RequireFromString("0.9"),
			Statut:    models.StatutPending,
		}
		require.NoError(t, db.Create(&pending).Error)

		rate, found, err := repo.ResolveKilometricRate(user)
		require.NoError(t, err)
		require.True(t, found)
		assert.True(t, rate.Equal(decimal.RequireFromString("0.4")), "got %s", rate)
	})

	t.Run("approved user rate wins over role rate", func(t *testing.T) {
		approved := models.UserKilometricRate{
			UserID:    user.ID,
			RatePerKm: decimal.RequireFromString("0.7"),
			Statut:    models.StatutApproved,
		}
		require.NoError(t, db.Create(&approved).Error)

		rate, found, err := repo.ResolveKilometricRate(user)
		require.NoError(t, err)
		require.True(t, found)
		assert.True(t, rate.Equal(decimal.RequireFromString("0.7")), "got %s", rate)
	})

	t.Run("no rate at all", func(t *testing.T) {
		other := seedUser(t, db, "u2", "contractor")

		_, found, err := repo.ResolveKilometricRate(other)
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestRateRepositoryGetVehicleRule(t *testing.T) {
	db := openTestDB(t)
	repo := NewRateRepository(db)
	user := seedUser(t, db, "u1", models.RoleAgent)

	rule := models.VehicleRateRule{
		UserID:              user.ID,
		ConditionType:       models.ConditionAll,
		RateBeforeThreshold: decimal.RequireFromString("0.5"),
		Active:              true,
	}
	require.NoError(t, db.Create(&rule).Error)

	t.Run("existing rule", func(t *testing.T) {
		found, err := repo.GetVehicleRule(rule.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, rule.ID, found.ID)
	})

	t.Run("deleted rule degrades to nil", func(t *testing.T) {
		found, err := repo.GetVehicleRule(9999)
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestRateRepositoryListPendingRates(t *testing.T) {
	db := openTestDB(t)
	repo := NewRateRepository(db)
	user := seedUser(t, db, "u1", models.RoleAgent)

	require.NoError(t, db.Create(&models.DailyMissionRate{
		UserID:       user.ID,
		TravelTypeID: 1,
		TarifParJour: decimal.RequireFromString("15"),
		Statut:       models.StatutPending,
	}).Error)
	require.NoError(t, db.Create(&models.DailyMissionRate{
		UserID:       user.ID,
		TravelTypeID: 2,
		TarifParJour: decimal.RequireFromString("20"),
		Statut:       models.StatutApproved,
	}).Error)

	mission, userRates, roleRates, err := repo.ListPendingRates()
	require.NoError(t, err)
	assert.Len(t, mission, 1)
	assert.Empty(t, userRates)
	assert.Empty(t, roleRates)
}
