package quote

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	domainQuote "cargolinked/internal/domain/quote"
	domainRequest "cargolinked/internal/domain/request"
	domainUser "cargolinked/internal/domain/user"
	"cargolinked/internal/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := logger.Init("development"); err != nil {
		os.Exit(1)
	}
	os.Exit(m.Run())
}

// --- Fakes ---

type fakeUserRepo struct {
	users map[uuid.UUID]*domainUser.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*domainUser.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, u *domainUser.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domainUser.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domainUser.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(_ context.Context, userID uuid.UUID) (*domainUser.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, domainUser.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) Update(_ context.Context, u *domainUser.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) addUser(role string) uuid.UUID {
	id := uuid.New()
	f.users[id] = &domainUser.User{
		ID:       id,
		Email:    id.String() + "@example.com",
		Role:     role,
		IsActive: true,
	}
	return id
}

type fakeAgentProfileRepo struct {
	profiles map[uuid.UUID]*domainUser.AgentProfile
}

func newFakeAgentProfileRepo() *fakeAgentProfileRepo {
	return &fakeAgentProfileRepo{profiles: make(map[uuid.UUID]*domainUser.AgentProfile)}
}

func (f *fakeAgentProfileRepo) Create(_ context.Context, p *domainUser.AgentProfile) error {
	f.profiles[p.UserID] = p
	return nil
}

func (f *fakeAgentProfileRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*domainUser.AgentProfile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, domainUser.ErrAgentProfileNotFound
	}
	return p, nil
}

func (f *fakeAgentProfileRepo) Update(_ context.Context, p *domainUser.AgentProfile) error {
	f.profiles[p.UserID] = p
	return nil
}

func (f *fakeAgentProfileRepo) addProfile(userID uuid.UUID) {
	f.profiles[userID] = &domainUser.AgentProfile{
		ID:          uuid.New(),
		UserID:      userID,
		CompanyName: "Fast Freight GmbH",
	}
}

type fakeRequestRepo struct {
	mu       sync.Mutex
	requests map[uuid.UUID]*domainRequest.FreightRequest
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[uuid.UUID]*domainRequest.FreightRequest)}
}

func (f *fakeRequestRepo) Create(_ context.Context, req *domainRequest.FreightRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *req
	f.requests[req.ID] = &clone
	return nil
}

func (f *fakeRequestRepo) GetByID(_ context.Context, requestID uuid.UUID) (*domainRequest.FreightRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.requests[requestID]
	if !ok {
		return nil, domainRequest.ErrRequestNotFound
	}
	clone := *req
	return &clone, nil
}

func (f *fakeRequestRepo) Update(_ context.Context, req *domainRequest.FreightRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *req
	f.requests[req.ID] = &clone
	return nil
}

func (f *fakeRequestRepo) UpdateStatus(_ context.Context, requestID uuid.UUID, from, to domainRequest.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.requests[requestID]
	if !ok {
		return domainRequest.ErrRequestNotFound
	}
	if req.Status != from {
		return domainRequest.ErrInvalidStatusTransition
	}
	req.Status = to
	return nil
}

func (f *fakeRequestRepo) CancelAssigned(_ context.Context, requestID uuid.UUID) error {
	return f.UpdateStatus(context.Background(), requestID, domainRequest.StatusAssigned, domainRequest.StatusCancelled)
}

func (f *fakeRequestRepo) DeleteDraft(_ context.Context, requestID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.requests, requestID)
	return nil
}

func (f *fakeRequestRepo) List(_ context.Context, _ *domainRequest.Filter) ([]*domainRequest.FreightRequest, int64, error) {
	return nil, 0, nil
}

func (f *fakeRequestRepo) addActiveRequest(ownerID uuid.UUID) uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.New()
	f.requests[id] = &domainRequest.FreightRequest{
		ID:      id,
		OwnerID: ownerID,
		Status:  domainRequest.StatusActive,
	}
	return id
}

// fakeQuoteRepo mirrors the compare-and-set semantics of the postgres
// repository, including the cross-entity Accept transaction.
type fakeQuoteRepo struct {
	mu          sync.Mutex
	quotes      map[uuid.UUID]*domainQuote.Quote
	requestRepo *fakeRequestRepo
}

func newFakeQuoteRepo(requestRepo *fakeRequestRepo) *fakeQuoteRepo {
	return &fakeQuoteRepo{
		quotes:      make(map[uuid.UUID]*domainQuote.Quote),
		requestRepo: requestRepo,
	}
}

func (f *fakeQuoteRepo) Create(_ context.Context, q *domainQuote.Quote) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	clone := *q
	f.quotes[q.ID] = &clone
	return nil
}

func (f *fakeQuoteRepo) GetByID(_ context.Context, quoteID uuid.UUID) (*domainQuote.Quote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	q, ok := f.quotes[quoteID]
	if !ok {
		return nil, domainQuote.ErrQuoteNotFound
	}
	clone := *q
	return &clone, nil
}

func (f *fakeQuoteRepo) UpdateStatus(_ context.Context, quoteID uuid.UUID, from, to domainQuote.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	q, ok := f.quotes[quoteID]
	if !ok {
		return domainQuote.ErrQuoteNotFound
	}
	if q.Status != from {
		return domainQuote.ErrQuoteNotPending
	}
	q.Status = to
	return nil
}

func (f *fakeQuoteRepo) Accept(ctx context.Context, quoteID, requestID, agentID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	q, ok := f.quotes[quoteID]
	if !ok {
		return domainQuote.ErrQuoteNotFound
	}
	if q.Status != domainQuote.StatusPending {
		return domainQuote.ErrQuoteNotPending
	}

	if err := f.requestRepo.UpdateStatus(ctx, requestID, domainRequest.StatusActive, domainRequest.StatusAssigned); err != nil {
		return domainRequest.ErrRequestNotActive
	}
	f.requestRepo.mu.Lock()
	f.requestRepo.requests[requestID].AssignedAgentID = &agentID
	f.requestRepo.mu.Unlock()

	q.Status = domainQuote.StatusAccepted
	for _, sibling := range f.quotes {
		if sibling.FreightRequestID == requestID && sibling.ID != quoteID && sibling.Status == domainQuote.StatusPending {
			sibling.Status = domainQuote.StatusSuperseded
		}
	}
	return nil
}

func (f *fakeQuoteRepo) DeletePending(_ context.Context, quoteID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	q, ok := f.quotes[quoteID]
	if !ok {
		return domainQuote.ErrQuoteNotFound
	}
	if q.Status != domainQuote.StatusPending {
		return domainQuote.ErrQuoteNotPending
	}
	delete(f.quotes, quoteID)
	return nil
}

func (f *fakeQuoteRepo) ListByRequest(_ context.Context, requestID uuid.UUID) ([]*domainQuote.Quote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*domainQuote.Quote
	for _, q := range f.quotes {
		if q.FreightRequestID == requestID {
			clone := *q
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (f *fakeQuoteRepo) ListByAgent(_ context.Context, agentID uuid.UUID) ([]*domainQuote.Quote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*domainQuote.Quote
	for _, q := range f.quotes {
		if q.AgentID == agentID {
			clone := *q
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (f *fakeQuoteRepo) ExpirePendingBefore(_ context.Context, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var expired int64
	for _, q := range f.quotes {
		if q.Status == domainQuote.StatusPending && q.CreatedAt.Before(cutoff) {
			q.Status = domainQuote.StatusExpired
			expired++
		}
	}
	return expired, nil
}

// --- Helpers ---

type fixture struct {
	svc         *Service
	quoteRepo   *fakeQuoteRepo
	requestRepo *fakeRequestRepo
	userRepo    *fakeUserRepo
	profiles    *fakeAgentProfileRepo

	ownerID   uuid.UUID
	agentID   uuid.UUID
	requestID uuid.UUID
}

func setup(t *testing.T) *fixture {
	t.Helper()

	userRepo := newFakeUserRepo()
	profiles := newFakeAgentProfileRepo()
	requestRepo := newFakeRequestRepo()
	quoteRepo := newFakeQuoteRepo(requestRepo)

	ownerID := userRepo.addUser(domainUser.RoleShipper)
	agentID := userRepo.addUser(domainUser.RoleAgent)
	profiles.addProfile(agentID)
	requestID := requestRepo.addActiveRequest(ownerID)

	return &fixture{
		svc:         NewService(quoteRepo, requestRepo, userRepo, profiles),
		quoteRepo:   quoteRepo,
		requestRepo: requestRepo,
		userRepo:    userRepo,
		profiles:    profiles,
		ownerID:     ownerID,
		agentID:     agentID,
		requestID:   requestID,
	}
}

func validSubmit() *SubmitQuoteRequest {
	return &SubmitQuoteRequest{
		Price:    1450.50,
		Currency: "EUR",
		Message:  "Can pick up Thursday morning.",
	}
}

func submitQuote(t *testing.T, fx *fixture, agentID uuid.UUID) uuid.UUID {
	t.Helper()
	resp, err := fx.svc.Submit(context.Background(), fx.requestID, agentID, validSubmit())
	require.NoError(t, err)
	return resp.ID
}

// --- Tests ---

func TestSubmitQuote(t *testing.T) {
	fx := setup(t)

	resp, err := fx.svc.Submit(context.Background(), fx.requestID, fx.agentID, validSubmit())
	require.NoError(t, err)

	assert.Equal(t, domainQuote.StatusPending, resp.Status)
	assert.Equal(t, fx.requestID, resp.FreightRequestID)
	assert.Equal(t, fx.agentID, resp.AgentID)
	assert.Equal(t, 1450.50, resp.Price)
}

func TestSubmitQuoteRequiresAgentProfile(t *testing.T) {
	fx := setup(t)
	bareAgentID := fx.userRepo.addUser(domainUser.RoleAgent)

	_, err := fx.svc.Submit(context.Background(), fx.requestID, bareAgentID, validSubmit())
	assert.ErrorIs(t, err, domainUser.ErrAgentProfileRequired)
}

func TestSubmitQuoteRequestNotActive(t *testing.T) {
	fx := setup(t)
	require.NoError(t, fx.requestRepo.UpdateStatus(context.Background(),
		fx.requestID, domainRequest.StatusActive, domainRequest.StatusCancelled))

	_, err := fx.svc.Submit(context.Background(), fx.requestID, fx.agentID, validSubmit())
	assert.ErrorIs(t, err, domainRequest.ErrRequestNotActive)
}

func TestSubmitQuoteOnOwnRequest(t *testing.T) {
	fx := setup(t)
	fx.profiles.addProfile(fx.ownerID)

	_, err := fx.svc.Submit(context.Background(), fx.requestID, fx.ownerID, validSubmit())
	assert.Error(t, err)
}

func TestSubmitQuoteValidation(t *testing.T) {
	fx := setup(t)

	req := validSubmit()
	req.Price = 0
	_, err := fx.svc.Submit(context.Background(), fx.requestID, fx.agentID, req)
	assert.Error(t, err)

	req = validSubmit()
	req.Currency = "euro"
	_, err = fx.svc.Submit(context.Background(), fx.requestID, fx.agentID, req)
	assert.Error(t, err)
}

func TestAcceptQuote(t *testing.T) {
	fx := setup(t)
	otherAgentID := fx.userRepo.addUser(domainUser.RoleAgent)
	fx.profiles.addProfile(otherAgentID)

	winnerID := submitQuote(t, fx, fx.agentID)
	loserID := submitQuote(t, fx, otherAgentID)

	result, err := fx.svc.Accept(context.Background(), winnerID, fx.ownerID)
	require.NoError(t, err)

	assert.Equal(t, domainQuote.StatusAccepted, result.Quote.Status)
	assert.Equal(t, domainRequest.StatusAssigned, result.Request.Status)
	require.NotNil(t, result.Request.AssignedAgentID)
	assert.Equal(t, fx.agentID, *result.Request.AssignedAgentID)

	// The sibling quote is superseded in the same transaction.
	loser, err := fx.quoteRepo.GetByID(context.Background(), loserID)
	require.NoError(t, err)
	assert.Equal(t, domainQuote.StatusSuperseded, loser.Status)
}

func TestAcceptQuoteOnlyOwner(t *testing.T) {
	fx := setup(t)
	quoteID := submitQuote(t, fx, fx.agentID)

	_, err := fx.svc.Accept(context.Background(), quoteID, fx.agentID)
	assert.Error(t, err)
}

func TestAcceptQuoteRace(t *testing.T) {
	fx := setup(t)
	otherAgentID := fx.userRepo.addUser(domainUser.RoleAgent)
	fx.profiles.addProfile(otherAgentID)

	firstID := submitQuote(t, fx, fx.agentID)
	secondID := submitQuote(t, fx, otherAgentID)

	_, err := fx.svc.Accept(context.Background(), firstID, fx.ownerID)
	require.NoError(t, err)

	// The second accept loses: its quote was superseded when the first one
	// won, and the request is no longer active.
	_, err = fx.svc.Accept(context.Background(), secondID, fx.ownerID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainQuote.ErrQuoteNotPending)

	req, err := fx.requestRepo.GetByID(context.Background(), fx.requestID)
	require.NoError(t, err)
	require.NotNil(t, req.AssignedAgentID)
	assert.Equal(t, fx.agentID, *req.AssignedAgentID)
}

func TestRejectQuote(t *testing.T) {
	fx := setup(t)
	quoteID := submitQuote(t, fx, fx.agentID)

	resp, err := fx.svc.Reject(context.Background(), quoteID, fx.ownerID)
	require.NoError(t, err)
	assert.Equal(t, domainQuote.StatusRejected, resp.Status)

	// The request stays open for other quotes.
	req, err := fx.requestRepo.GetByID(context.Background(), fx.requestID)
	require.NoError(t, err)
	assert.Equal(t, domainRequest.StatusActive, req.Status)

	// A rejected quote cannot be accepted afterwards.
	_, err = fx.svc.Accept(context.Background(), quoteID, fx.ownerID)
	assert.ErrorIs(t, err, domainQuote.ErrQuoteNotPending)
}

func TestWithdrawQuote(t *testing.T) {
	fx := setup(t)
	quoteID := submitQuote(t, fx, fx.agentID)

	require.NoError(t, fx.svc.Withdraw(context.Background(), quoteID, fx.agentID))

	_, err := fx.quoteRepo.GetByID(context.Background(), quoteID)
	assert.ErrorIs(t, err, domainQuote.ErrQuoteNotFound)
}

func TestWithdrawQuoteOnlyAuthor(t *testing.T) {
	fx := setup(t)
	quoteID := submitQuote(t, fx, fx.agentID)

	err := fx.svc.Withdraw(context.Background(), quoteID, fx.ownerID)
	assert.Error(t, err)
}

func TestWithdrawAcceptedQuoteFails(t *testing.T) {
	fx := setup(t)
	quoteID := submitQuote(t, fx, fx.agentID)

	_, err := fx.svc.Accept(context.Background(), quoteID, fx.ownerID)
	require.NoError(t, err)

	err = fx.svc.Withdraw(context.Background(), quoteID, fx.agentID)
	assert.ErrorIs(t, err, domainQuote.ErrQuoteNotPending)
}

func TestListForRequestVisibility(t *testing.T) {
	fx := setup(t)
	otherAgentID := fx.userRepo.addUser(domainUser.RoleAgent)
	fx.profiles.addProfile(otherAgentID)

	submitQuote(t, fx, fx.agentID)
	submitQuote(t, fx, otherAgentID)

	// The owner sees every quote.
	ownerView, err := fx.svc.ListForRequest(context.Background(), fx.requestID, fx.ownerID)
	require.NoError(t, err)
	assert.Equal(t, 2, ownerView.Total)

	// An agent only sees their own.
	agentView, err := fx.svc.ListForRequest(context.Background(), fx.requestID, fx.agentID)
	require.NoError(t, err)
	require.Equal(t, 1, agentView.Total)
	assert.Equal(t, fx.agentID, agentView.Data[0].AgentID)
}

func TestListOwn(t *testing.T) {
	fx := setup(t)
	secondRequestID := fx.requestRepo.addActiveRequest(fx.ownerID)

	submitQuote(t, fx, fx.agentID)
	_, err := fx.svc.Submit(context.Background(), secondRequestID, fx.agentID, validSubmit())
	require.NoError(t, err)

	result, err := fx.svc.ListOwn(context.Background(), fx.agentID)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)
}

func TestExpireStaleQuotes(t *testing.T) {
	fx := setup(t)
	staleID := submitQuote(t, fx, fx.agentID)
	freshID := submitQuote(t, fx, fx.agentID)

	fx.quoteRepo.mu.Lock()
	fx.quoteRepo.quotes[staleID].CreatedAt = time.Now().Add(-10 * 24 * time.Hour)
	fx.quoteRepo.mu.Unlock()

	fx.svc.expireStaleQuotes(context.Background(), 7*24*time.Hour)

	stale, err := fx.quoteRepo.GetByID(context.Background(), staleID)
	require.NoError(t, err)
	assert.Equal(t, domainQuote.StatusExpired, stale.Status)

	fresh, err := fx.quoteRepo.GetByID(context.Background(), freshID)
	require.NoError(t, err)
	assert.Equal(t, domainQuote.StatusPending, fresh.Status)
}
