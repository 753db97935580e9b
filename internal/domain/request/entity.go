package request

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of a freight request
type Status string

const (
	StatusDraft     Status = "draft"      // Created by a shipper, not yet visible
	StatusActive    Status = "active"     // Published to the marketplace, open for quotes
	StatusAssigned  Status = "assigned"   // A quote was accepted
	StatusInTransit Status = "in_transit" // Pickup confirmed, cargo moving
	StatusDelivered Status = "delivered"  // Delivery confirmed
	StatusCancelled Status = "cancelled"  // Cancelled before delivery
)

// CargoType classifies the cargo of a freight request
type CargoType string

const (
	CargoGeneral    CargoType = "general"
	CargoFragile    CargoType = "fragile"
	CargoHazardous  CargoType = "hazardous"
	CargoPerishable CargoType = "perishable"
	CargoOversized  CargoType = "oversized"
	CargoLiquid     CargoType = "liquid"
	CargoOther      CargoType = "other"
)

// Location is an origin or destination of a freight request
type Location struct {
	Address    string
	City       string
	State      string
	Country    string
	PostalCode string
	Latitude   *float64
	Longitude  *float64
}

// Dimensions of the cargo, in centimeters
type Dimensions struct {
	Length float64
	Width  float64
	Height float64
}

// Budget is the shipper's indicative budget for the transport
type Budget struct {
	Amount   float64
	Currency string
}

// FreightRequest represents a shipper's posted need for transport
type FreightRequest struct {
	ID      uuid.UUID
	OwnerID uuid.UUID

	Title       string
	Description string
	CargoType   CargoType
	WeightKg    *float64
	Dimensions  *Dimensions
	Budget      *Budget

	Origin      Location
	Destination Location

	PreferredPickupAt   *time.Time
	PreferredDeliveryAt *time.Time

	Status Status

	// Set when a quote is accepted; identifies the winning agent.
	AssignedAgentID *uuid.UUID

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal reports whether no further status transitions are possible.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}
