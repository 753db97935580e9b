package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cargolinked/internal/domain/quote"
	"cargolinked/internal/domain/request"
	"cargolinked/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RequestRepository implements request.Repository on gorm. All status
// mutations are compare-and-set so racing writers lose cleanly instead of
// overwriting each other.
type RequestRepository struct {
	db *DB
}

// NewRequestRepository creates a new freight request repository
func NewRequestRepository(db *DB) request.Repository {
	return &RequestRepository{db: db}
}

func (r *RequestRepository) Create(ctx context.Context, req *request.FreightRequest) error {
	req.ID = uuid.New()
	req.CreatedAt = time.Now()
	req.UpdatedAt = time.Now()

	dbModel := toRequestModel(req)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create freight request: %w", err)
	}

	return nil
}

func (r *RequestRepository) GetByID(ctx context.Context, requestID uuid.UUID) (*request.FreightRequest, error) {
	var dbModel models.FreightRequestModel
	err := r.db.DB.WithContext(ctx).First(&dbModel, "id = ?", requestID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, request.ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get freight request: %w", err)
	}

	return toRequestEntity(&dbModel), nil
}

func (r *RequestRepository) Update(ctx context.Context, req *request.FreightRequest) error {
	req.UpdatedAt = time.Now()

	dbModel := toRequestModel(req)
	result := r.db.DB.WithContext(ctx).Model(&models.FreightRequestModel{}).
		Where("id = ?", req.ID).
		Updates(dbModel)

	if result.Error != nil {
		return fmt.Errorf("failed to update freight request: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return request.ErrRequestNotFound
	}

	return nil
}

func (r *RequestRepository) UpdateStatus(ctx context.Context, requestID uuid.UUID, from, to request.Status) error {
	result := r.db.DB.WithContext(ctx).Model(&models.FreightRequestModel{}).
		Where("id = ? AND status = ?", requestID, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update request status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return r.statusConflict(ctx, requestID, from, to)
	}

	return nil
}

func (r *RequestRepository) CancelAssigned(ctx context.Context, requestID uuid.UUID) error {
	return r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		result := tx.Model(&models.FreightRequestModel{}).
			Where("id = ? AND status = ?", requestID, request.StatusAssigned).
			Updates(map[string]interface{}{
				"status":     request.StatusCancelled,
				"updated_at": now,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to cancel request: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return r.statusConflict(ctx, requestID, request.StatusAssigned, request.StatusCancelled)
		}

		// The accepted quote loses its assignment along with the request.
		err := tx.Model(&models.QuoteModel{}).
			Where("freight_request_id = ? AND status = ?", requestID, quote.StatusAccepted).
			Updates(map[string]interface{}{
				"status":     quote.StatusSuperseded,
				"updated_at": now,
			}).Error
		if err != nil {
			return fmt.Errorf("failed to supersede accepted quote: %w", err)
		}

		return nil
	})
}

func (r *RequestRepository) DeleteDraft(ctx context.Context, requestID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Where("id = ? AND status = ?", requestID, request.StatusDraft).
		Delete(&models.FreightRequestModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete freight request: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		var count int64
		r.db.DB.WithContext(ctx).Model(&models.FreightRequestModel{}).
			Where("id = ?", requestID).Count(&count)
		if count == 0 {
			return request.ErrRequestNotFound
		}
		return request.ErrRequestNotDeletable
	}

	return nil
}

func (r *RequestRepository) List(ctx context.Context, filter *request.Filter) ([]*request.FreightRequest, int64, error) {
	query := r.db.DB.WithContext(ctx).Model(&models.FreightRequestModel{})

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.OwnerID != nil {
		query = query.Where("owner_id = ?", *filter.OwnerID)
	}
	if filter.CargoType != nil {
		query = query.Where("cargo_type = ?", *filter.CargoType)
	}
	if filter.Origin != "" {
		pattern := "%" + filter.Origin + "%"
		query = query.Where("origin_city ILIKE ? OR origin_country ILIKE ?", pattern, pattern)
	}
	if filter.Destination != "" {
		pattern := "%" + filter.Destination + "%"
		query = query.Where("destination_city ILIKE ? OR destination_country ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count freight requests: %w", err)
	}

	sortBy := filter.SortBy
	switch sortBy {
	case "created_at", "updated_at", "preferred_pickup_at":
	default:
		sortBy = "created_at"
	}
	sortOrder := "DESC"
	if filter.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	offset := (filter.Page - 1) * filter.PageSize

	var dbModels []models.FreightRequestModel
	err := query.
		Order(fmt.Sprintf("%s %s", sortBy, sortOrder)).
		Offset(offset).
		Limit(filter.PageSize).
		Find(&dbModels).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list freight requests: %w", err)
	}

	requests := make([]*request.FreightRequest, len(dbModels))
	for i := range dbModels {
		requests[i] = toRequestEntity(&dbModels[i])
	}

	return requests, total, nil
}

// statusConflict distinguishes a missing row from a row that moved on.
func (r *RequestRepository) statusConflict(ctx context.Context, requestID uuid.UUID, from, to request.Status) error {
	var count int64
	r.db.DB.WithContext(ctx).Model(&models.FreightRequestModel{}).
		Where("id = ?", requestID).Count(&count)
	if count == 0 {
		return request.ErrRequestNotFound
	}
	return fmt.Errorf("%w: request %s is no longer %s", request.ErrInvalidStatusTransition, requestID, from)
}

// Helper functions to convert between domain entities and database models

func toRequestModel(req *request.FreightRequest) *models.FreightRequestModel {
	m := &models.FreightRequestModel{
		ID:          req.ID,
		OwnerID:     req.OwnerID,
		Title:       req.Title,
		Description: req.Description,
		CargoType:   string(req.CargoType),
		WeightKg:    req.WeightKg,

		OriginAddress:    req.Origin.Address,
		OriginCity:       req.Origin.City,
		OriginState:      req.Origin.State,
		OriginCountry:    req.Origin.Country,
		OriginPostalCode: req.Origin.PostalCode,
		OriginLatitude:   req.Origin.Latitude,
		OriginLongitude:  req.Origin.Longitude,

		DestinationAddress:    req.Destination.Address,
		DestinationCity:       req.Destination.City,
		DestinationState:      req.Destination.State,
		DestinationCountry:    req.Destination.Country,
		DestinationPostalCode: req.Destination.PostalCode,
		DestinationLatitude:   req.Destination.Latitude,
		DestinationLongitude:  req.Destination.Longitude,

		PreferredPickupAt:   req.PreferredPickupAt,
		PreferredDeliveryAt: req.PreferredDeliveryAt,

		Status:          string(req.Status),
		AssignedAgentID: req.AssignedAgentID,

		CreatedAt: req.CreatedAt,
		UpdatedAt: req.UpdatedAt,
	}

	if req.Dimensions != nil {
		m.DimLength = &req.Dimensions.Length
		m.DimWidth = &req.Dimensions.Width
		m.DimHeight = &req.Dimensions.Height
	}
	if req.Budget != nil {
		m.BudgetAmount = &req.Budget.Amount
		m.BudgetCurrency = &req.Budget.Currency
	}

	return m
}

func toRequestEntity(m *models.FreightRequestModel) *request.FreightRequest {
	req := &request.FreightRequest{
		ID:          m.ID,
		OwnerID:     m.OwnerID,
		Title:       m.Title,
		Description: m.Description,
		CargoType:   request.CargoType(m.CargoType),
		WeightKg:    m.WeightKg,

		Origin: request.Location{
			Address:    m.OriginAddress,
			City:       m.OriginCity,
			State:      m.OriginState,
			Country:    m.OriginCountry,
			PostalCode: m.OriginPostalCode,
			Latitude:   m.OriginLatitude,
			Longitude:  m.OriginLongitude,
		},
		Destination: request.Location{
			Address:    m.DestinationAddress,
			City:       m.DestinationCity,
			State:      m.DestinationState,
			Country:    m.DestinationCountry,
			PostalCode: m.DestinationPostalCode,
			Latitude:   m.DestinationLatitude,
			Longitude:  m.DestinationLongitude,
		},

		PreferredPickupAt:   m.PreferredPickupAt,
		PreferredDeliveryAt: m.PreferredDeliveryAt,

		Status:          request.Status(m.Status),
		AssignedAgentID: m.AssignedAgentID,

		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}

	if m.DimLength != nil && m.DimWidth != nil && m.DimHeight != nil {
		req.Dimensions = &request.Dimensions{
			Length: *m.DimLength,
			Width:  *m.DimWidth,
			Height: *m.DimHeight,
		}
	}
	if m.BudgetAmount != nil && m.BudgetCurrency != nil {
		req.Budget = &request.Budget{
			Amount:   *m.BudgetAmount,
			Currency: *m.BudgetCurrency,
		}
	}

	return req
}
