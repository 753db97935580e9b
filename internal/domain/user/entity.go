package user

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleShipper = "shipper"
	RoleAgent   = "agent"
	RoleAdmin   = "admin"
)

// User represents a marketplace account in the domain
type User struct {
	ID             uuid.UUID
	Email          string
	PasswordHashed string
	FullName       string
	CompanyName    *string
	PhoneNumber    *string
	Role           string
	Address        *string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// AgentProfile is the registered freight-agent profile a user must hold
// before submitting quotes.
type AgentProfile struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	CompanyName     string
	LicenseNumber   *string
	ServiceAreas    []string
	YearsInBusiness *int
	Verified        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
