package user

import (
	"time"

	domainUser "cargolinked/internal/domain/user"

	"github.com/google/uuid"
)

// Request DTOs
type RegisterRequest struct {
	Email       string  `json:"email" validate:"required,email"`
	Password    string  `json:"password" validate:"required,min=8"`
	FullName    string  `json:"full_name" validate:"required,min=2,max=100"`
	Role        string  `json:"role" validate:"required,user_role"`
	CompanyName *string `json:"company_name" validate:"omitempty,max=200"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,phone"`
	Address     *string `json:"address" validate:"omitempty,max=500"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	FullName    *string `json:"full_name" validate:"omitempty,min=2,max=100"`
	CompanyName *string `json:"company_name" validate:"omitempty,max=200"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,phone"`
	Address     *string `json:"address" validate:"omitempty,max=500"`
}

type RegisterAgentProfileRequest struct {
	CompanyName     string   `json:"company_name" validate:"required,min=2,max=200"`
	LicenseNumber   *string  `json:"license_number" validate:"omitempty,max=100"`
	ServiceAreas    []string `json:"service_areas" validate:"omitempty,dive,min=2,max=100"`
	YearsInBusiness *int     `json:"years_in_business" validate:"omitempty,gte=0,lte=200"`
}

// Response DTOs
type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name"`
	CompanyName *string   `json:"company_name,omitempty"`
	PhoneNumber *string   `json:"phone_number,omitempty"`
	Role        string    `json:"role"`
	Address     *string   `json:"address,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

type AgentProfileResponse struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	CompanyName     string    `json:"company_name"`
	LicenseNumber   *string   `json:"license_number,omitempty"`
	ServiceAreas    []string  `json:"service_areas"`
	YearsInBusiness *int      `json:"years_in_business,omitempty"`
	Verified        bool      `json:"verified"`
	CreatedAt       time.Time `json:"created_at"`
}

type AuthResponse struct {
	User        *UserResponse `json:"user"`
	AccessToken string        `json:"access_token"`
	ExpiresAt   time.Time     `json:"expires_at"`
}

// Conversion functions
func ToUserResponse(u *domainUser.User) *UserResponse {
	if u == nil {
		return nil
	}

	return &UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		FullName:    u.FullName,
		CompanyName: u.CompanyName,
		PhoneNumber: u.PhoneNumber,
		Role:        u.Role,
		Address:     u.Address,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
	}
}

func ToAgentProfileResponse(p *domainUser.AgentProfile) *AgentProfileResponse {
	if p == nil {
		return nil
	}

	return &AgentProfileResponse{
		ID:              p.ID,
		UserID:          p.UserID,
		CompanyName:     p.CompanyName,
		LicenseNumber:   p.LicenseNumber,
		ServiceAreas:    p.ServiceAreas,
		YearsInBusiness: p.YearsInBusiness,
		Verified:        p.Verified,
		CreatedAt:       p.CreatedAt,
	}
}
