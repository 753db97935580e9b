package request

import (
	"context"
	"time"

	domainRequest "cargolinked/internal/domain/request"
	domainUser "cargolinked/internal/domain/user"
	"cargolinked/internal/logger"
	appErrors "cargolinked/pkg/errors"
	"cargolinked/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements the freight request side of the lifecycle workflow.
// It is the only component that mutates request status fields.
type Service struct {
	requestRepo domainRequest.Repository
	userRepo    domainUser.Repository
}

// NewService creates a new freight request service
func NewService(requestRepo domainRequest.Repository, userRepo domainUser.Repository) *Service {
	return &Service{
		requestRepo: requestRepo,
		userRepo:    userRepo,
	}
}

// Create registers a new freight request in draft status.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, req *CreateRequestRequest) (*RequestResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if err := ValidateShipper(ctx, s.userRepo, ownerID); err != nil {
		return nil, err
	}

	if err := ValidateTimeRange(req.PreferredPickupAt, req.PreferredDeliveryAt); err != nil {
		return nil, err
	}

	freightRequest := &domainRequest.FreightRequest{
		OwnerID:             ownerID,
		Title:               utils.SanitizeString(req.Title),
		Description:         utils.SanitizeText(req.Description),
		CargoType:           domainRequest.CargoType(req.CargoType),
		WeightKg:            req.WeightKg,
		Origin:              toLocation(req.Origin),
		Destination:         toLocation(req.Destination),
		PreferredPickupAt:   req.PreferredPickupAt,
		PreferredDeliveryAt: req.PreferredDeliveryAt,
		Status:              domainRequest.StatusDraft,
		CreatedAt:           time.Now(),
		UpdatedAt:           time.Now(),
	}
	if req.Dimensions != nil {
		freightRequest.Dimensions = &domainRequest.Dimensions{
			Length: req.Dimensions.Length,
			Width:  req.Dimensions.Width,
			Height: req.Dimensions.Height,
		}
	}
	if req.Budget != nil {
		freightRequest.Budget = &domainRequest.Budget{
			Amount:   req.Budget.Amount,
			Currency: req.Budget.Currency,
		}
	}

	if err := s.requestRepo.Create(ctx, freightRequest); err != nil {
		return nil, err
	}

	created, err := s.requestRepo.GetByID(ctx, freightRequest.ID)
	if err != nil {
		return nil, err
	}

	logger.Info("Freight request created",
		zap.String("request_id", created.ID.String()),
		zap.String("owner_id", ownerID.String()),
		zap.String("cargo_type", string(created.CargoType)),
		zap.String("event", "freight_request_created"),
	)

	return ToRequestResponse(created), nil
}

// Publish makes a draft request visible on the marketplace.
func (s *Service) Publish(ctx context.Context, requestID, actorID uuid.UUID) (*RequestResponse, error) {
	freightRequest, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if freightRequest.OwnerID != actorID {
		return nil, appErrors.ErrForbidden
	}

	if err := domainRequest.ValidateStatusTransition(freightRequest.Status, domainRequest.StatusActive); err != nil {
		return nil, err
	}

	if err := s.requestRepo.UpdateStatus(ctx, requestID, freightRequest.Status, domainRequest.StatusActive); err != nil {
		return nil, err
	}

	updated, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	logger.Info("Freight request published",
		zap.String("request_id", requestID.String()),
		zap.String("owner_id", actorID.String()),
		zap.String("event", "freight_request_published"),
	)

	return ToRequestResponse(updated), nil
}

// Cancel cancels a request. Cancelling an assigned request also supersedes
// its accepted quote, atomically. A request already in transit needs an
// operator, not its owner.
func (s *Service) Cancel(ctx context.Context, requestID, actorID uuid.UUID) (*RequestResponse, error) {
	freightRequest, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if freightRequest.Status == domainRequest.StatusInTransit {
		actor, err := s.userRepo.GetByID(ctx, actorID)
		if err != nil {
			return nil, domainUser.ErrUserNotFound
		}
		if actor.Role != domainUser.RoleAdmin {
			return nil, appErrors.ErrForbidden
		}
	} else if freightRequest.OwnerID != actorID {
		return nil, appErrors.ErrForbidden
	}

	if err := domainRequest.ValidateStatusTransition(freightRequest.Status, domainRequest.StatusCancelled); err != nil {
		return nil, err
	}

	if freightRequest.Status == domainRequest.StatusAssigned {
		err = s.requestRepo.CancelAssigned(ctx, requestID)
	} else {
		err = s.requestRepo.UpdateStatus(ctx, requestID, freightRequest.Status, domainRequest.StatusCancelled)
	}
	if err != nil {
		return nil, err
	}

	updated, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	logger.Info("Freight request cancelled",
		zap.String("request_id", requestID.String()),
		zap.String("actor_id", actorID.String()),
		zap.String("event", "freight_request_cancelled"),
	)

	return ToRequestResponse(updated), nil
}

// MarkInTransit records pickup completion on an assigned request. Allowed
// for the owner or the assigned agent.
func (s *Service) MarkInTransit(ctx context.Context, requestID, actorID uuid.UUID) (*RequestResponse, error) {
	return s.advance(ctx, requestID, actorID, domainRequest.StatusInTransit, "freight_request_in_transit")
}

// MarkDelivered records delivery completion on an in-transit request.
// Allowed for the owner or the assigned agent.
func (s *Service) MarkDelivered(ctx context.Context, requestID, actorID uuid.UUID) (*RequestResponse, error) {
	return s.advance(ctx, requestID, actorID, domainRequest.StatusDelivered, "freight_request_delivered")
}

func (s *Service) advance(ctx context.Context, requestID, actorID uuid.UUID, target domainRequest.Status, event string) (*RequestResponse, error) {
	freightRequest, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	isOwner := freightRequest.OwnerID == actorID
	isAssignedAgent := freightRequest.AssignedAgentID != nil && *freightRequest.AssignedAgentID == actorID
	if !isOwner && !isAssignedAgent {
		return nil, appErrors.ErrForbidden
	}

	if err := domainRequest.ValidateStatusTransition(freightRequest.Status, target); err != nil {
		return nil, err
	}

	if err := s.requestRepo.UpdateStatus(ctx, requestID, freightRequest.Status, target); err != nil {
		return nil, err
	}

	updated, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	logger.Info("Freight request status advanced",
		zap.String("request_id", requestID.String()),
		zap.String("actor_id", actorID.String()),
		zap.String("status", string(target)),
		zap.String("event", event),
	)

	return ToRequestResponse(updated), nil
}

// Delete removes a request that never reached the marketplace. Anything
// past draft is kept for the quotes that may reference it.
func (s *Service) Delete(ctx context.Context, requestID, actorID uuid.UUID) error {
	freightRequest, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}

	if freightRequest.OwnerID != actorID {
		return appErrors.ErrForbidden
	}

	if err := s.requestRepo.DeleteDraft(ctx, requestID); err != nil {
		return err
	}

	logger.Info("Freight request deleted",
		zap.String("request_id", requestID.String()),
		zap.String("owner_id", actorID.String()),
		zap.String("event", "freight_request_deleted"),
	)

	return nil
}

// Get returns a single freight request. Public.
func (s *Service) Get(ctx context.Context, requestID uuid.UUID) (*RequestResponse, error) {
	freightRequest, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	return ToRequestResponse(freightRequest), nil
}

// ListActive returns the public marketplace listing: active requests only,
// newest first unless the filter says otherwise.
func (s *Service) ListActive(ctx context.Context, filter *RequestFilterRequest) (*RequestListResponse, error) {
	if err := utils.ValidateStruct(filter); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid query parameters", err)
	}

	domainFilter := ToDomainFilter(filter)
	active := domainRequest.StatusActive
	domainFilter.Status = &active

	return s.list(ctx, domainFilter)
}

// ListOwn returns the shipper's own requests in any status.
func (s *Service) ListOwn(ctx context.Context, ownerID uuid.UUID, filter *RequestFilterRequest) (*RequestListResponse, error) {
	if err := utils.ValidateStruct(filter); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid query parameters", err)
	}

	domainFilter := ToDomainFilter(filter)
	domainFilter.OwnerID = &ownerID

	return s.list(ctx, domainFilter)
}

func (s *Service) list(ctx context.Context, filter *domainRequest.Filter) (*RequestListResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.PageSize > 100 {
		filter.PageSize = 100
	}

	requests, total, err := s.requestRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]RequestResponse, len(requests))
	for i, r := range requests {
		responses[i] = *ToRequestResponse(r)
	}

	totalPages := int(total) / filter.PageSize
	if int(total)%filter.PageSize > 0 {
		totalPages++
	}

	return &RequestListResponse{
		Data:       responses,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	}, nil
}
