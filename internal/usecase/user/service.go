package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cargolinked/internal/config"
	domainUser "cargolinked/internal/domain/user"
	"cargolinked/internal/logger"
	appErrors "cargolinked/pkg/errors"
	"cargolinked/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service handles accounts and agent profiles.
type Service struct {
	userRepo      domainUser.Repository
	agentProfiles domainUser.AgentProfileRepository
	config        *config.Config
}

// NewService creates a new user service
func NewService(userRepo domainUser.Repository, agentProfiles domainUser.AgentProfileRepository, cfg *config.Config) *Service {
	return &Service{
		userRepo:      userRepo,
		agentProfiles: agentProfiles,
		config:        cfg,
	}
}

func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if err := utils.ValidatePassword(req.Password); err != nil {
		return nil, appErrors.NewAppError("WEAK_PASSWORD", err.Error(), nil)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, domainUser.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, domainUser.ErrUserAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &domainUser.User{
		Email:          email,
		PasswordHashed: hashedPassword,
		FullName:       utils.SanitizeString(req.FullName),
		CompanyName:    req.CompanyName,
		PhoneNumber:    req.PhoneNumber,
		Role:           req.Role,
		Address:        req.Address,
	}

	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	logger.Info("User registered",
		zap.String("user_id", u.ID.String()),
		zap.String("role", u.Role),
		zap.String("event", "user_registered"),
	)

	return s.issueToken(u)
}

func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	u, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !u.IsActive {
		return nil, domainUser.ErrUserInactive
	}

	if !utils.CheckPassword(u.PasswordHashed, req.Password) {
		return nil, appErrors.ErrInvalidCredentials
	}

	return s.issueToken(u)
}

func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return ToUserResponse(u), nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, req *UpdateProfileRequest) (*UserResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		u.FullName = utils.SanitizeString(*req.FullName)
	}
	if req.CompanyName != nil {
		u.CompanyName = req.CompanyName
	}
	if req.PhoneNumber != nil {
		u.PhoneNumber = req.PhoneNumber
	}
	if req.Address != nil {
		u.Address = req.Address
	}

	if err := s.userRepo.Update(ctx, u); err != nil {
		return nil, err
	}

	return ToUserResponse(u), nil
}

// RegisterAgentProfile records the agent credentials a user needs before
// quoting. Only accounts with the agent role may hold one, and at most one.
func (s *Service) RegisterAgentProfile(ctx context.Context, userID uuid.UUID, req *RegisterAgentProfileRequest) (*AgentProfileResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.Role != domainUser.RoleAgent {
		return nil, domainUser.ErrInvalidUserRole
	}
	if !u.IsActive {
		return nil, domainUser.ErrUserInactive
	}

	existing, err := s.agentProfiles.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, domainUser.ErrAgentProfileNotFound) {
		return nil, fmt.Errorf("failed to check existing profile: %w", err)
	}
	if existing != nil {
		return nil, domainUser.ErrAgentProfileExists
	}

	profile := &domainUser.AgentProfile{
		UserID:          userID,
		CompanyName:     utils.SanitizeString(req.CompanyName),
		LicenseNumber:   req.LicenseNumber,
		ServiceAreas:    req.ServiceAreas,
		YearsInBusiness: req.YearsInBusiness,
	}

	if err := s.agentProfiles.Create(ctx, profile); err != nil {
		return nil, err
	}

	logger.Info("Agent profile registered",
		zap.String("user_id", userID.String()),
		zap.String("profile_id", profile.ID.String()),
		zap.String("event", "agent_profile_registered"),
	)

	return ToAgentProfileResponse(profile), nil
}

func (s *Service) GetAgentProfile(ctx context.Context, userID uuid.UUID) (*AgentProfileResponse, error) {
	profile, err := s.agentProfiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return ToAgentProfileResponse(profile), nil
}

func (s *Service) issueToken(u *domainUser.User) (*AuthResponse, error) {
	token, err := utils.GenerateToken(u.ID, u.Email, u.Role, s.config.JWT.Secret, s.config.JWT.ExpiryHours)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	expiryHours := s.config.JWT.ExpiryHours
	if expiryHours <= 0 {
		expiryHours = 24
	}

	return &AuthResponse{
		User:        ToUserResponse(u),
		AccessToken: token,
		ExpiresAt:   time.Now().Add(time.Duration(expiryHours) * time.Hour),
	}, nil
}
