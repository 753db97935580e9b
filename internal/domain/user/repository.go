package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for user repository operations
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*User, error)
	Update(ctx context.Context, user *User) error
}

// AgentProfileRepository defines the interface for agent profile operations
type AgentProfileRepository interface {
	Create(ctx context.Context, profile *AgentProfile) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*AgentProfile, error)
	Update(ctx context.Context, profile *AgentProfile) error
}
