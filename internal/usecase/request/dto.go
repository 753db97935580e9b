package request

import (
	"time"

	domainRequest "cargolinked/internal/domain/request"

	"github.com/google/uuid"
)

// Request DTOs
type CreateRequestRequest struct {
	Title       string   `json:"title" validate:"required,min=3,max=200"`
	Description string   `json:"description" validate:"required,min=10,max=2000"`
	CargoType   string   `json:"cargo_type" validate:"required,cargo_type"`
	WeightKg    *float64 `json:"weight_kg" validate:"omitempty,gt=0"`

	Dimensions *DimensionsInput `json:"dimensions" validate:"omitempty"`
	Budget     *BudgetInput     `json:"budget" validate:"omitempty"`

	Origin      LocationInput `json:"origin" validate:"required"`
	Destination LocationInput `json:"destination" validate:"required"`

	PreferredPickupAt   *time.Time `json:"preferred_pickup_at" validate:"omitempty"`
	PreferredDeliveryAt *time.Time `json:"preferred_delivery_at" validate:"omitempty"`
}

type LocationInput struct {
	Address    string   `json:"address" validate:"required,min=3,max=300"`
	City       string   `json:"city" validate:"required,min=1,max=100"`
	State      string   `json:"state" validate:"omitempty,max=100"`
	Country    string   `json:"country" validate:"required,min=2,max=100"`
	PostalCode string   `json:"postal_code" validate:"omitempty,max=20"`
	Latitude   *float64 `json:"latitude" validate:"omitempty,min=-90,max=90"`
	Longitude  *float64 `json:"longitude" validate:"omitempty,min=-180,max=180"`
}

type DimensionsInput struct {
	Length float64 `json:"length" validate:"required,gt=0"`
	Width  float64 `json:"width" validate:"required,gt=0"`
	Height float64 `json:"height" validate:"required,gt=0"`
}

type BudgetInput struct {
	Amount   float64 `json:"amount" validate:"required,gt=0"`
	Currency string  `json:"currency" validate:"required,currency"`
}

type RequestFilterRequest struct {
	CargoType   string `form:"cargo_type" validate:"omitempty,cargo_type"`
	Origin      string `form:"origin"`
	Destination string `form:"destination"`

	Page      int    `form:"page" validate:"omitempty,min=1"`
	PageSize  int    `form:"page_size" validate:"omitempty,min=1,max=100"`
	SortBy    string `form:"sort_by" validate:"omitempty,oneof=created_at updated_at preferred_pickup_at"`
	SortOrder string `form:"sort_order" validate:"omitempty,oneof=asc desc"`
}

// Response DTOs
type RequestResponse struct {
	ID      uuid.UUID `json:"id"`
	OwnerID uuid.UUID `json:"owner_id"`

	Title       string                  `json:"title"`
	Description string                  `json:"description"`
	CargoType   domainRequest.CargoType `json:"cargo_type"`
	WeightKg    *float64                `json:"weight_kg"`
	Dimensions  *DimensionsInput        `json:"dimensions,omitempty"`
	Budget      *BudgetInput            `json:"budget,omitempty"`

	Origin      LocationInput `json:"origin"`
	Destination LocationInput `json:"destination"`

	PreferredPickupAt   *time.Time `json:"preferred_pickup_at"`
	PreferredDeliveryAt *time.Time `json:"preferred_delivery_at"`

	Status          domainRequest.Status `json:"status"`
	AssignedAgentID *uuid.UUID           `json:"assigned_agent_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RequestListResponse struct {
	Data       []RequestResponse `json:"data"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}

// Conversion functions
func ToRequestResponse(r *domainRequest.FreightRequest) *RequestResponse {
	if r == nil {
		return nil
	}

	resp := &RequestResponse{
		ID:                  r.ID,
		OwnerID:             r.OwnerID,
		Title:               r.Title,
		Description:         r.Description,
		CargoType:           r.CargoType,
		WeightKg:            r.WeightKg,
		Origin:              toLocationInput(r.Origin),
		Destination:         toLocationInput(r.Destination),
		PreferredPickupAt:   r.PreferredPickupAt,
		PreferredDeliveryAt: r.PreferredDeliveryAt,
		Status:              r.Status,
		AssignedAgentID:     r.AssignedAgentID,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}

	if r.Dimensions != nil {
		resp.Dimensions = &DimensionsInput{
			Length: r.Dimensions.Length,
			Width:  r.Dimensions.Width,
			Height: r.Dimensions.Height,
		}
	}
	if r.Budget != nil {
		resp.Budget = &BudgetInput{
			Amount:   r.Budget.Amount,
			Currency: r.Budget.Currency,
		}
	}

	return resp
}

func toLocationInput(l domainRequest.Location) LocationInput {
	return LocationInput{
		Address:    l.Address,
		City:       l.City,
		State:      l.State,
		Country:    l.Country,
		PostalCode: l.PostalCode,
		Latitude:   l.Latitude,
		Longitude:  l.Longitude,
	}
}

func toLocation(l LocationInput) domainRequest.Location {
	return domainRequest.Location{
		Address:    l.Address,
		City:       l.City,
		State:      l.State,
		Country:    l.Country,
		PostalCode: l.PostalCode,
		Latitude:   l.Latitude,
		Longitude:  l.Longitude,
	}
}

func ToDomainFilter(req *RequestFilterRequest) *domainRequest.Filter {
	if req == nil {
		return &domainRequest.Filter{}
	}

	filter := &domainRequest.Filter{
		Origin:      req.Origin,
		Destination: req.Destination,
		Page:        req.Page,
		PageSize:    req.PageSize,
		SortBy:      req.SortBy,
		SortOrder:   req.SortOrder,
	}
	if req.CargoType != "" {
		cargoType := domainRequest.CargoType(req.CargoType)
		filter.CargoType = &cargoType
	}

	return filter
}
