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

// QuoteRepository implements quote.Repository on gorm.
type QuoteRepository struct {
	db *DB
}

// NewQuoteRepository creates a new quote repository
func NewQuoteRepository(db *DB) quote.Repository {
	return &QuoteRepository{db: db}
}

func (r *QuoteRepository) Create(ctx context.Context, q *quote.Quote) error {
	q.ID = uuid.New()
	q.CreatedAt = time.Now()
	q.UpdatedAt = time.Now()

	dbModel := toQuoteModel(q)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create quote: %w", err)
	}

	return nil
}

func (r *QuoteRepository) GetByID(ctx context.Context, quoteID uuid.UUID) (*quote.Quote, error) {
	var dbModel models.QuoteModel
	err := r.db.DB.WithContext(ctx).First(&dbModel, "id = ?", quoteID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, quote.ErrQuoteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}

	return toQuoteEntity(&dbModel), nil
}

func (r *QuoteRepository) UpdateStatus(ctx context.Context, quoteID uuid.UUID, from, to quote.Status) error {
	result := r.db.DB.WithContext(ctx).Model(&models.QuoteModel{}).
		Where("id = ? AND status = ?", quoteID, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update quote status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		var count int64
		r.db.DB.WithContext(ctx).Model(&models.QuoteModel{}).
			Where("id = ?", quoteID).Count(&count)
		if count == 0 {
			return quote.ErrQuoteNotFound
		}
		return quote.ErrQuoteNotPending
	}

	return nil
}

// Accept runs the acceptance transaction. Both conditional updates must
// hit their row; when either misses, the whole transaction rolls back and
// the caller sees which side moved first.
func (r *QuoteRepository) Accept(ctx context.Context, quoteID, requestID, agentID uuid.UUID) error {
	err := r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		result := tx.Model(&models.QuoteModel{}).
			Where("id = ? AND status = ?", quoteID, quote.StatusPending).
			Updates(map[string]interface{}{
				"status":     quote.StatusAccepted,
				"updated_at": now,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to accept quote: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return quote.ErrQuoteNotPending
		}

		result = tx.Model(&models.FreightRequestModel{}).
			Where("id = ? AND status = ?", requestID, request.StatusActive).
			Updates(map[string]interface{}{
				"status":            request.StatusAssigned,
				"assigned_agent_id": agentID,
				"updated_at":        now,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to assign request: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return request.ErrRequestNotActive
		}

		err := tx.Model(&models.QuoteModel{}).
			Where("freight_request_id = ? AND id <> ? AND status = ?",
				requestID, quoteID, quote.StatusPending).
			Updates(map[string]interface{}{
				"status":     quote.StatusSuperseded,
				"updated_at": now,
			}).Error
		if err != nil {
			return fmt.Errorf("failed to supersede sibling quotes: %w", err)
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, quote.ErrQuoteNotPending) || errors.Is(err, request.ErrRequestNotActive) {
			return err
		}
		return fmt.Errorf("%w: %v", quote.ErrAcceptConflict, err)
	}

	return nil
}

func (r *QuoteRepository) DeletePending(ctx context.Context, quoteID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Where("id = ? AND status = ?", quoteID, quote.StatusPending).
		Delete(&models.QuoteModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete quote: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		var count int64
		r.db.DB.WithContext(ctx).Model(&models.QuoteModel{}).
			Where("id = ?", quoteID).Count(&count)
		if count == 0 {
			return quote.ErrQuoteNotFound
		}
		return quote.ErrQuoteNotPending
	}

	return nil
}

func (r *QuoteRepository) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]*quote.Quote, error) {
	var dbModels []models.QuoteModel
	err := r.db.DB.WithContext(ctx).
		Where("freight_request_id = ?", requestID).
		Order("created_at DESC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}

	return toQuoteEntities(dbModels), nil
}

func (r *QuoteRepository) ListByAgent(ctx context.Context, agentID uuid.UUID) ([]*quote.Quote, error) {
	var dbModels []models.QuoteModel
	err := r.db.DB.WithContext(ctx).
		Where("agent_id = ?", agentID).
		Order("created_at DESC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}

	return toQuoteEntities(dbModels), nil
}

func (r *QuoteRepository) ExpirePendingBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.DB.WithContext(ctx).Model(&models.QuoteModel{}).
		Where("status = ? AND created_at < ?", quote.StatusPending, cutoff).
		Updates(map[string]interface{}{
			"status":     quote.StatusExpired,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return 0, fmt.Errorf("failed to expire quotes: %w", result.Error)
	}

	return result.RowsAffected, nil
}

// Helper functions to convert between domain entities and database models

func toQuoteModel(q *quote.Quote) *models.QuoteModel {
	return &models.QuoteModel{
		ID:                  q.ID,
		FreightRequestID:    q.FreightRequestID,
		AgentID:             q.AgentID,
		Price:               q.Price,
		Currency:            q.Currency,
		Message:             q.Message,
		EstimatedPickupAt:   q.EstimatedPickupAt,
		EstimatedDeliveryAt: q.EstimatedDeliveryAt,
		Status:              string(q.Status),
		CreatedAt:           q.CreatedAt,
		UpdatedAt:           q.UpdatedAt,
	}
}

func toQuoteEntity(m *models.QuoteModel) *quote.Quote {
	return &quote.Quote{
		ID:                  m.ID,
		FreightRequestID:    m.FreightRequestID,
		AgentID:             m.AgentID,
		Price:               m.Price,
		Currency:            m.Currency,
		Message:             m.Message,
		EstimatedPickupAt:   m.EstimatedPickupAt,
		EstimatedDeliveryAt: m.EstimatedDeliveryAt,
		Status:              quote.Status(m.Status),
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

func toQuoteEntities(dbModels []models.QuoteModel) []*quote.Quote {
	quotes := make([]*quote.Quote, len(dbModels))
	for i := range dbModels {
		quotes[i] = toQuoteEntity(&dbModels[i])
	}
	return quotes
}
