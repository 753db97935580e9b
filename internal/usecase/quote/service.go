package quote

import (
	"context"
	"errors"
	"time"

	domainQuote "cargolinked/internal/domain/quote"
	domainRequest "cargolinked/internal/domain/request"
	domainUser "cargolinked/internal/domain/user"
	"cargolinked/internal/logger"
	usecaseRequest "cargolinked/internal/usecase/request"
	appErrors "cargolinked/pkg/errors"
	"cargolinked/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements the quote side of the lifecycle workflow: submission
// by agents, decisions by request owners, withdrawal, and expiry.
type Service struct {
	quoteRepo     domainQuote.Repository
	requestRepo   domainRequest.Repository
	userRepo      domainUser.Repository
	agentProfiles domainUser.AgentProfileRepository
}

// NewService creates a new quote service
func NewService(
	quoteRepo domainQuote.Repository,
	requestRepo domainRequest.Repository,
	userRepo domainUser.Repository,
	agentProfiles domainUser.AgentProfileRepository,
) *Service {
	return &Service{
		quoteRepo:     quoteRepo,
		requestRepo:   requestRepo,
		userRepo:      userRepo,
		agentProfiles: agentProfiles,
	}
}

// Submit creates a pending quote against an active freight request.
// The caller must hold a registered agent profile.
func (s *Service) Submit(ctx context.Context, requestID, agentID uuid.UUID, req *SubmitQuoteRequest) (*QuoteResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	agent, err := s.userRepo.GetByID(ctx, agentID)
	if err != nil {
		return nil, domainUser.ErrUserNotFound
	}
	if !agent.IsActive {
		return nil, domainUser.ErrUserInactive
	}

	if _, err := s.agentProfiles.GetByUserID(ctx, agentID); err != nil {
		if errors.Is(err, domainUser.ErrAgentProfileNotFound) {
			return nil, domainUser.ErrAgentProfileRequired
		}
		return nil, err
	}

	freightRequest, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if freightRequest.OwnerID == agentID {
		return nil, appErrors.NewAppError("OWN_REQUEST", "Agents cannot quote their own freight requests", nil)
	}

	if freightRequest.Status != domainRequest.StatusActive {
		return nil, domainRequest.ErrRequestNotActive
	}

	q := &domainQuote.Quote{
		FreightRequestID:    requestID,
		AgentID:             agentID,
		Price:               req.Price,
		Currency:            req.Currency,
		Message:             utils.SanitizeText(req.Message),
		EstimatedPickupAt:   req.EstimatedPickupAt,
		EstimatedDeliveryAt: req.EstimatedDeliveryAt,
		Status:              domainQuote.StatusPending,
		CreatedAt:           time.Now(),
		UpdatedAt:           time.Now(),
	}

	if err := s.quoteRepo.Create(ctx, q); err != nil {
		return nil, err
	}

	created, err := s.quoteRepo.GetByID(ctx, q.ID)
	if err != nil {
		return nil, err
	}

	logger.Info("Quote submitted",
		zap.String("quote_id", created.ID.String()),
		zap.String("request_id", requestID.String()),
		zap.String("agent_id", agentID.String()),
		zap.Float64("price", req.Price),
		zap.String("event", "quote_submitted"),
	)

	return ToQuoteResponse(created), nil
}

// Accept runs the acceptance transaction: the quote becomes accepted, the
// parent request becomes assigned and sibling pending quotes are
// superseded. Both writes commit together; a racing accept on the same
// request loses with a not-pending/not-active error.
func (s *Service) Accept(ctx context.Context, quoteID, actorID uuid.UUID) (*AcceptQuoteResponse, error) {
	q, err := s.quoteRepo.GetByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	freightRequest, err := s.requestRepo.GetByID(ctx, q.FreightRequestID)
	if err != nil {
		return nil, err
	}

	if freightRequest.OwnerID != actorID {
		return nil, appErrors.ErrForbidden
	}

	if q.Status != domainQuote.StatusPending {
		return nil, domainQuote.ErrQuoteNotPending
	}
	if freightRequest.Status != domainRequest.StatusActive {
		return nil, domainRequest.ErrRequestNotActive
	}

	// The repository re-checks both statuses inside one transaction, so a
	// concurrent accept cannot double-apply.
	if err := s.quoteRepo.Accept(ctx, quoteID, q.FreightRequestID, q.AgentID); err != nil {
		return nil, err
	}

	acceptedQuote, err := s.quoteRepo.GetByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	assignedRequest, err := s.requestRepo.GetByID(ctx, q.FreightRequestID)
	if err != nil {
		return nil, err
	}

	logger.Info("Quote accepted",
		zap.String("quote_id", quoteID.String()),
		zap.String("request_id", q.FreightRequestID.String()),
		zap.String("agent_id", q.AgentID.String()),
		zap.String("owner_id", actorID.String()),
		zap.String("event", "quote_accepted"),
	)

	return &AcceptQuoteResponse{
		Quote:   ToQuoteResponse(acceptedQuote),
		Request: usecaseRequest.ToRequestResponse(assignedRequest),
	}, nil
}

// Reject declines a pending quote. The parent request is untouched.
func (s *Service) Reject(ctx context.Context, quoteID, actorID uuid.UUID) (*QuoteResponse, error) {
	q, err := s.quoteRepo.GetByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	freightRequest, err := s.requestRepo.GetByID(ctx, q.FreightRequestID)
	if err != nil {
		return nil, err
	}

	if freightRequest.OwnerID != actorID {
		return nil, appErrors.ErrForbidden
	}

	if q.Status != domainQuote.StatusPending {
		return nil, domainQuote.ErrQuoteNotPending
	}

	if err := s.quoteRepo.UpdateStatus(ctx, quoteID, domainQuote.StatusPending, domainQuote.StatusRejected); err != nil {
		return nil, err
	}

	rejected, err := s.quoteRepo.GetByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	logger.Info("Quote rejected",
		zap.String("quote_id", quoteID.String()),
		zap.String("request_id", q.FreightRequestID.String()),
		zap.String("owner_id", actorID.String()),
		zap.String("event", "quote_rejected"),
	)

	return ToQuoteResponse(rejected), nil
}

// Withdraw deletes a still-pending quote. Only its author may do this.
func (s *Service) Withdraw(ctx context.Context, quoteID, actorID uuid.UUID) error {
	q, err := s.quoteRepo.GetByID(ctx, quoteID)
	if err != nil {
		return err
	}

	if q.AgentID != actorID {
		return appErrors.ErrForbidden
	}

	if q.Status != domainQuote.StatusPending {
		return domainQuote.ErrQuoteNotPending
	}

	if err := s.quoteRepo.DeletePending(ctx, quoteID); err != nil {
		return err
	}

	logger.Info("Quote withdrawn",
		zap.String("quote_id", quoteID.String()),
		zap.String("agent_id", actorID.String()),
		zap.String("event", "quote_withdrawn"),
	)

	return nil
}

// ListForRequest returns quotes for a freight request. The owner sees all
// of them; a quoting agent only sees their own.
func (s *Service) ListForRequest(ctx context.Context, requestID, actorID uuid.UUID) (*QuoteListResponse, error) {
	freightRequest, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	quotes, err := s.quoteRepo.ListByRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if freightRequest.OwnerID == actorID {
		return toQuoteListResponse(quotes), nil
	}

	own := make([]*domainQuote.Quote, 0, len(quotes))
	for _, q := range quotes {
		if q.AgentID == actorID {
			own = append(own, q)
		}
	}

	return toQuoteListResponse(own), nil
}

// ListOwn returns every quote the agent has submitted.
func (s *Service) ListOwn(ctx context.Context, agentID uuid.UUID) (*QuoteListResponse, error) {
	quotes, err := s.quoteRepo.ListByAgent(ctx, agentID)
	if err != nil {
		return nil, err
	}

	return toQuoteListResponse(quotes), nil
}
