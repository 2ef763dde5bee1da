package models

import (
	"time"
)

// Excursion statuses
const (
	ExcursionPlanned   = "planned"
	ExcursionActive    = "active"
	ExcursionCompleted = "completed"
	ExcursionCancelled = "cancelled"
)

// Excursion represents a guided nature excursion record
// DB: excursions
type Excursion struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UserID       uint       `gorm:"index;not null" json:"user_id"`
	Title        string     `gorm:"size:255;not null" json:"title"`
	Lat          *float64   `gorm:"type:decimal(9,6)" json:"lat,omitempty"`
	Lng          *float64   `gorm:"type:decimal(9,6)" json:"lng,omitempty"`
	LocationName string     `gorm:"size:255" json:"location_name,omitempty"`
	DurationMin  int        `gorm:"not null;default:30" json:"duration_min"`
	Status       string     `gorm:"size:20;not null;default:'planned';index" json:"status"`
	StartedAt    *time.Time `json:"started_at,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	Notes        string     `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Excursion) TableName() string {
	return "excursions"
}
