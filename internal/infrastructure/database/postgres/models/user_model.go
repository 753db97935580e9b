package models

import (
	"time"

	"github.com/google/uuid"
)

// UserModel is the database representation of a marketplace account.
type UserModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email          string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHashed string    `gorm:"type:varchar(255);not null"`
	FullName       string    `gorm:"type:varchar(100);not null"`
	CompanyName    *string   `gorm:"type:varchar(200)"`
	PhoneNumber    *string   `gorm:"type:varchar(20)"`
	Role           string    `gorm:"type:varchar(20);not null;index"`
	Address        *string   `gorm:"type:text"`
	IsActive       bool      `gorm:"default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (UserModel) TableName() string {
	return "users"
}

// AgentProfileModel is the database representation of an agent profile.
type AgentProfileModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	CompanyName     string    `gorm:"type:varchar(200);not null"`
	LicenseNumber   *string   `gorm:"type:varchar(100)"`
	ServiceAreas    []string  `gorm:"serializer:json"`
	YearsInBusiness *int
	Verified        bool `gorm:"default:false"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (AgentProfileModel) TableName() string {
	return "agent_profiles"
}
