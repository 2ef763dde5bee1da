package models

import (
	"time"
)

// User represents the users table
// DB: users
type User struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Email      string     `gorm:"column:email;size:255;not null;uniqueIndex:users_email_key" json:"email"`
	Password   string     `gorm:"column:password;size:255;not null" json:"-"`
	Name       string     `gorm:"column:name;size:100;not null" json:"name"`
	IsActive   bool       `gorm:"column:is_active;not null;default:true" json:"is_active"`
	DateJoined time.Time  `gorm:"column:date_joined;not null;autoCreateTime" json:"date_joined"`
	LastLogin  *time.Time `gorm:"column:last_login" json:"last_login,omitempty"`

	// Preferences appended to the assistant prompt when set
	PreferredActivity string `gorm:"column:preferred_activity;size:100" json:"preferred_activity,omitempty"`
	TherapyGoals      string `gorm:"column:therapy_goals;size:500" json:"therapy_goals,omitempty"`
	FitnessLevel      string `gorm:"column:fitness_level;size:50" json:"fitness_level,omitempty"`
	MobilityLevel     string `gorm:"column:mobility_level;size:50" json:"mobility_level,omitempty"`

	// Relations
	Sessions   []ChatSession `gorm:"foreignKey:UserID" json:"sessions,omitempty"`
	Excursions []Excursion   `gorm:"foreignKey:UserID" json:"excursions,omitempty"`
}

func (User) TableName() string {
	return "users"
}
