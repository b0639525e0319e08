// File: /models/reference.go
package models

import (
	"time"
)

// TravelType classifies a trip for mission-rate applicability (type de déplacement)
type TravelType struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Label     string    `json:"label" gorm:"not null;size:255"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ExpenseType classifies an expense line (type de dépense)
type ExpenseType struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Label     string    `json:"label" gorm:"not null;size:255"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Worksite is a job site (chantier) a trip may be associated with
type Worksite struct {
	ID        string    `json:"id" gorm:"primaryKey;size:191"`
	Label     string    `json:"label" gorm:"not null;size:255"`
	Address   string    `json:"address" gorm:"size:500"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
