package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cargolinked/internal/domain/user"
	"cargolinked/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository implements user.Repository on gorm.
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	u.ID = uuid.New()
	u.CreatedAt = time.Now()
	u.UpdatedAt = time.Now()
	u.IsActive = true

	dbModel := toUserModel(u)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		errStr := strings.ToLower(err.Error())
		if strings.Contains(errStr, "duplicate key") && strings.Contains(errStr, "email") {
			return user.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var dbModel models.UserModel
	err := r.db.DB.WithContext(ctx).Where("email = ?", email).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return toUserEntity(&dbModel), nil
}

func (r *UserRepository) GetByID(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	var dbModel models.UserModel
	err := r.db.DB.WithContext(ctx).First(&dbModel, "id = ?", userID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return toUserEntity(&dbModel), nil
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	u.UpdatedAt = time.Now()

	result := r.db.DB.WithContext(ctx).Model(&models.UserModel{}).
		Where("id = ?", u.ID).
		Updates(map[string]interface{}{
			"full_name":    u.FullName,
			"company_name": u.CompanyName,
			"phone_number": u.PhoneNumber,
			"address":      u.Address,
			"updated_at":   u.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

// AgentProfileRepository implements user.AgentProfileRepository on gorm.
type AgentProfileRepository struct {
	db *DB
}

// NewAgentProfileRepository creates a new agent profile repository
func NewAgentProfileRepository(db *DB) user.AgentProfileRepository {
	return &AgentProfileRepository{db: db}
}

func (r *AgentProfileRepository) Create(ctx context.Context, profile *user.AgentProfile) error {
	profile.ID = uuid.New()
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = time.Now()

	dbModel := toAgentProfileModel(profile)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		errStr := strings.ToLower(err.Error())
		if strings.Contains(errStr, "duplicate key") && strings.Contains(errStr, "user_id") {
			return user.ErrAgentProfileExists
		}
		return fmt.Errorf("failed to create agent profile: %w", err)
	}

	return nil
}

func (r *AgentProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*user.AgentProfile, error) {
	var dbModel models.AgentProfileModel
	err := r.db.DB.WithContext(ctx).Where("user_id = ?", userID).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, user.ErrAgentProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get agent profile: %w", err)
	}

	return toAgentProfileEntity(&dbModel), nil
}

func (r *AgentProfileRepository) Update(ctx context.Context, profile *user.AgentProfile) error {
	profile.UpdatedAt = time.Now()

	result := r.db.DB.WithContext(ctx).Model(&models.AgentProfileModel{}).
		Where("id = ?", profile.ID).
		Updates(map[string]interface{}{
			"company_name":      profile.CompanyName,
			"license_number":    profile.LicenseNumber,
			"service_areas":     profile.ServiceAreas,
			"years_in_business": profile.YearsInBusiness,
			"verified":          profile.Verified,
			"updated_at":        profile.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update agent profile: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return user.ErrAgentProfileNotFound
	}

	return nil
}

// Helper functions to convert between domain entities and database models

func toUserModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		ID:             u.ID,
		Email:          u.Email,
		PasswordHashed: u.PasswordHashed,
		FullName:       u.FullName,
		CompanyName:    u.CompanyName,
		PhoneNumber:    u.PhoneNumber,
		Role:           u.Role,
		Address:        u.Address,
		IsActive:       u.IsActive,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func toUserEntity(m *models.UserModel) *user.User {
	return &user.User{
		ID:             m.ID,
		Email:          m.Email,
		PasswordHashed: m.PasswordHashed,
		FullName:       m.FullName,
		CompanyName:    m.CompanyName,
		PhoneNumber:    m.PhoneNumber,
		Role:           m.Role,
		Address:        m.Address,
		IsActive:       m.IsActive,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toAgentProfileModel(p *user.AgentProfile) *models.AgentProfileModel {
	return &models.AgentProfileModel{
		ID:              p.ID,
		UserID:          p.UserID,
		CompanyName:     p.CompanyName,
		LicenseNumber:   p.LicenseNumber,
		ServiceAreas:    p.ServiceAreas,
		YearsInBusiness: p.YearsInBusiness,
		Verified:        p.Verified,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func toAgentProfileEntity(m *models.AgentProfileModel) *user.AgentProfile {
	return &user.AgentProfile{
		ID:              m.ID,
		UserID:          m.UserID,
		CompanyName:     m.CompanyName,
		LicenseNumber:   m.LicenseNumber,
		ServiceAreas:    m.ServiceAreas,
		YearsInBusiness: m.YearsInBusiness,
		Verified:        m.Verified,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
