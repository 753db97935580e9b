package quote

import (
	"time"

	domainQuote "cargolinked/internal/domain/quote"
	usecaseRequest "cargolinked/internal/usecase/request"

	"github.com/google/uuid"
)

// Request DTOs
type SubmitQuoteRequest struct {
	Price    float64 `json:"price" validate:"required,gt=0"`
	Currency string  `json:"currency" validate:"required,currency"`
	Message  string  `json:"message" validate:"omitempty,max=1000"`

	EstimatedPickupAt   *time.Time `json:"estimated_pickup_at" validate:"omitempty"`
	EstimatedDeliveryAt *time.Time `json:"estimated_delivery_at" validate:"omitempty"`
}

// Response DTOs
type QuoteResponse struct {
	ID               uuid.UUID `json:"id"`
	FreightRequestID uuid.UUID `json:"freight_request_id"`
	AgentID          uuid.UUID `json:"agent_id"`

	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
	Message  string  `json:"message,omitempty"`

	EstimatedPickupAt   *time.Time `json:"estimated_pickup_at"`
	EstimatedDeliveryAt *time.Time `json:"estimated_delivery_at"`

	Status domainQuote.Status `json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AcceptQuoteResponse carries both sides of the acceptance transaction.
type AcceptQuoteResponse struct {
	Quote   *QuoteResponse                  `json:"quote"`
	Request *usecaseRequest.RequestResponse `json:"request"`
}

type QuoteListResponse struct {
	Data  []QuoteResponse `json:"data"`
	Total int             `json:"total"`
}

// Conversion functions
func ToQuoteResponse(q *domainQuote.Quote) *QuoteResponse {
	if q == nil {
		return nil
	}

	return &QuoteResponse{
		ID:                  q.ID,
		FreightRequestID:    q.FreightRequestID,
		AgentID:             q.AgentID,
		Price:               q.Price,
		Currency:            q.Currency,
		Message:             q.Message,
		EstimatedPickupAt:   q.EstimatedPickupAt,
		EstimatedDeliveryAt: q.EstimatedDeliveryAt,
		Status:              q.Status,
		CreatedAt:           q.CreatedAt,
		UpdatedAt:           q.UpdatedAt,
	}
}

func toQuoteListResponse(quotes []*domainQuote.Quote) *QuoteListResponse {
	responses := make([]QuoteResponse, len(quotes))
	for i, q := range quotes {
		responses[i] = *ToQuoteResponse(q)
	}

	return &QuoteListResponse{
		Data:  responses,
		Total: len(responses),
	}
}
