// File: /models/user.go
package models

import (
	"strings"
	"time"
)

// User roles
const (
	RoleAgent   = "agent"
	RoleManager = "manager"
)

type User struct {
	ID            string    `json:"id" gorm:"primaryKey;size:191"`
	Name          string    `json:"name" gorm:"not null;size:255"`
	Handle        string    `json:"handle" gorm:"uniqueIndex;not null;size:50"`
	Email         string    `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Password      string    `json:"-" gorm:"not null;size:255"`
	Role          string    `json:"role" gorm:"not null;default:'agent';size:50"`
	EmailVerified bool      `json:"email_verified" gorm:"default:false"`
	Avatar        *string   `json:"avatar" gorm:"size:500"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relationships
	Trips            []Trip             `json:"trips,omitempty" gorm:"foreignKey:UserID"`
	VehicleRateRules []VehicleRateRule  `json:"vehicule_rate_rules,omitempty" gorm:"foreignKey:UserID"`
	MissionRates     []DailyMissionRate `json:"mission_rates,omitempty" gorm:"foreignKey:UserID"`
}

// IsManager reports whether the user may approve rates and manage reference data
func (u *User) IsManager() bool {
	return u.Role == RoleManager
}

// GenerateHandleFromName creates a unique handle from the user's name
func GenerateHandleFromName(name string) string {
	// Convert to lowercase and replace spaces with underscores
	handle := strings.ToLower(strings.ReplaceAll(name, " ", "_"))
	// Remove special characters
	handle = strings.ReplaceAll(handle, ".", "")
	handle = strings.ReplaceAll(handle, "-", "_")
	return handle
}
