package models

import (
	"time"

	"github.com/google/uuid"
)

// FreightRequestModel is the database representation of a freight request.
// Origin and destination are flattened into prefixed columns so the
// marketplace listing can filter on city and country without JSON
// operators.
type FreightRequestModel struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID uuid.UUID `gorm:"type:uuid;not null;index"`

	Title       string  `gorm:"type:varchar(200);not null"`
	Description string  `gorm:"type:text"`
	CargoType   string  `gorm:"type:varchar(20);not null;index"`
	WeightKg    *float64
	DimLength   *float64
	DimWidth    *float64
	DimHeight   *float64

	BudgetAmount   *float64
	BudgetCurrency *string `gorm:"type:varchar(3)"`

	OriginAddress    string `gorm:"type:varchar(255)"`
	OriginCity       string `gorm:"type:varchar(100);index"`
	OriginState      string `gorm:"type:varchar(100)"`
	OriginCountry    string `gorm:"type:varchar(100);index"`
	OriginPostalCode string `gorm:"type:varchar(20)"`
	OriginLatitude   *float64
	OriginLongitude  *float64

	DestinationAddress    string `gorm:"type:varchar(255)"`
	DestinationCity       string `gorm:"type:varchar(100);index"`
	DestinationState      string `gorm:"type:varchar(100)"`
	DestinationCountry    string `gorm:"type:varchar(100);index"`
	DestinationPostalCode string `gorm:"type:varchar(20)"`
	DestinationLatitude   *float64
	DestinationLongitude  *float64

	PreferredPickupAt   *time.Time
	PreferredDeliveryAt *time.Time

	Status          string     `gorm:"type:varchar(20);not null;index"`
	AssignedAgentID *uuid.UUID `gorm:"type:uuid;index"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

func (FreightRequestModel) TableName() string {
	return "freight_requests"
}
