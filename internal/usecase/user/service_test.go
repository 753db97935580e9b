package user

import (
	"context"
	"os"
	"testing"

	"cargolinked/internal/config"
	domainUser "cargolinked/internal/domain/user"
	"cargolinked/internal/logger"
	appErrors "cargolinked/pkg/errors"
	"cargolinked/pkg/utils"

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
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return domainUser.ErrUserAlreadyExists
		}
	}
	u.ID = uuid.New()
	u.IsActive = true
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
	if _, ok := f.users[u.ID]; !ok {
		return domainUser.ErrUserNotFound
	}
	f.users[u.ID] = u
	return nil
}

type fakeAgentProfileRepo struct {
	profiles map[uuid.UUID]*domainUser.AgentProfile
}

func newFakeAgentProfileRepo() *fakeAgentProfileRepo {
	return &fakeAgentProfileRepo{profiles: make(map[uuid.UUID]*domainUser.AgentProfile)}
}

func (f *fakeAgentProfileRepo) Create(_ context.Context, p *domainUser.AgentProfile) error {
	if _, ok := f.profiles[p.UserID]; ok {
		return domainUser.ErrAgentProfileExists
	}
	p.ID = uuid.New()
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

// --- Helpers ---

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:      "test-secret-do-not-use-in-production",
			ExpiryHours: 24,
		},
	}
}

func setupService() (*Service, *fakeUserRepo, *fakeAgentProfileRepo) {
	userRepo := newFakeUserRepo()
	profiles := newFakeAgentProfileRepo()
	return NewService(userRepo, profiles, testConfig()), userRepo, profiles
}

func validRegister(role string) *RegisterRequest {
	return &RegisterRequest{
		Email:    "anna@example.com",
		Password: "Sup3rSecret",
		FullName: "Anna Keller",
		Role:     role,
	}
}

// --- Tests ---

func TestRegister(t *testing.T) {
	svc, _, _ := setupService()

	resp, err := svc.Register(context.Background(), validRegister(domainUser.RoleShipper))
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "anna@example.com", resp.User.Email)
	assert.Equal(t, domainUser.RoleShipper, resp.User.Role)
	assert.True(t, resp.User.IsActive)

	claims, err := utils.ValidateToken(resp.AccessToken, "test-secret-do-not-use-in-production")
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, domainUser.RoleShipper, claims.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := setupService()

	_, err := svc.Register(context.Background(), validRegister(domainUser.RoleShipper))
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), validRegister(domainUser.RoleAgent))
	assert.ErrorIs(t, err, domainUser.ErrUserAlreadyExists)
}

func TestRegisterWeakPassword(t *testing.T) {
	svc, _, _ := setupService()

	req := validRegister(domainUser.RoleShipper)
	req.Password = "short"
	_, err := svc.Register(context.Background(), req)
	assert.Error(t, err)
}

func TestRegisterInvalidRole(t *testing.T) {
	svc, _, _ := setupService()

	req := validRegister("superuser")
	_, err := svc.Register(context.Background(), req)
	assert.Error(t, err)
}

func TestLogin(t *testing.T) {
	svc, _, _ := setupService()

	_, err := svc.Register(context.Background(), validRegister(domainUser.RoleShipper))
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "anna@example.com",
		Password: "Sup3rSecret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := setupService()

	_, err := svc.Register(context.Background(), validRegister(domainUser.RoleShipper))
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &LoginRequest{
		Email:    "anna@example.com",
		Password: "WrongPassw0rd",
	})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
}

func TestLoginUnknownEmailIndistinguishable(t *testing.T) {
	svc, _, _ := setupService()

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "nobody@example.com",
		Password: "Sup3rSecret",
	})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
}

func TestLoginInactiveUser(t *testing.T) {
	svc, userRepo, _ := setupService()

	resp, err := svc.Register(context.Background(), validRegister(domainUser.RoleShipper))
	require.NoError(t, err)
	userRepo.users[resp.User.ID].IsActive = false

	_, err = svc.Login(context.Background(), &LoginRequest{
		Email:    "anna@example.com",
		Password: "Sup3rSecret",
	})
	assert.ErrorIs(t, err, domainUser.ErrUserInactive)
}

func TestRegisterAgentProfile(t *testing.T) {
	svc, _, _ := setupService()

	resp, err := svc.Register(context.Background(), validRegister(domainUser.RoleAgent))
	require.NoError(t, err)

	profile, err := svc.RegisterAgentProfile(context.Background(), resp.User.ID, &RegisterAgentProfileRequest{
		CompanyName:  "Fast Freight GmbH",
		ServiceAreas: []string{"Hamburg", "Bremen"},
	})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, profile.UserID)
	assert.False(t, profile.Verified)

	// Second registration conflicts.
	_, err = svc.RegisterAgentProfile(context.Background(), resp.User.ID, &RegisterAgentProfileRequest{
		CompanyName: "Another Company",
	})
	assert.ErrorIs(t, err, domainUser.ErrAgentProfileExists)
}

func TestRegisterAgentProfileShipperForbidden(t *testing.T) {
	svc, _, _ := setupService()

	resp, err := svc.Register(context.Background(), validRegister(domainUser.RoleShipper))
	require.NoError(t, err)

	_, err = svc.RegisterAgentProfile(context.Background(), resp.User.ID, &RegisterAgentProfileRequest{
		CompanyName: "Fast Freight GmbH",
	})
	assert.ErrorIs(t, err, domainUser.ErrInvalidUserRole)
}

func TestUpdateProfile(t *testing.T) {
	svc, _, _ := setupService()

	resp, err := svc.Register(context.Background(), validRegister(domainUser.RoleShipper))
	require.NoError(t, err)

	newName := "Anna K. Keller"
	updated, err := svc.UpdateProfile(context.Background(), resp.User.ID, &UpdateProfileRequest{
		FullName: &newName,
	})
	require.NoError(t, err)
	assert.Equal(t, newName, updated.FullName)
}
