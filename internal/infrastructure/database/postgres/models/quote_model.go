package models

import (
	"time"

	"github.com/google/uuid"
)

// QuoteModel is the database representation of a quote.
type QuoteModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	FreightRequestID uuid.UUID `gorm:"type:uuid;not null;index"`
	AgentID          uuid.UUID `gorm:"type:uuid;not null;index"`

	Price    float64 `gorm:"not null"`
	Currency string  `gorm:"type:varchar(3);not null"`
	Message  string  `gorm:"type:text"`

	EstimatedPickupAt   *time.Time
	EstimatedDeliveryAt *time.Time

	Status string `gorm:"type:varchar(20);not null;index"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

func (QuoteModel) TableName() string {
	return "quotes"
}
