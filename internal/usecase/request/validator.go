package request

import (
	"context"
	"time"

	domainUser "cargolinked/internal/domain/user"
	appErrors "cargolinked/pkg/errors"

	"github.com/google/uuid"
)

// ValidateShipper checks that the actor may own freight requests
func ValidateShipper(ctx context.Context, userRepo domainUser.Repository, ownerID uuid.UUID) error {
	owner, err := userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return domainUser.ErrUserNotFound
	}
	if owner.Role != domainUser.RoleShipper {
		return appErrors.NewAppError("INVALID_ROLE", "Only shippers can create freight requests", nil)
	}
	if !owner.IsActive {
		return domainUser.ErrUserInactive
	}

	return nil
}

// ValidateTimeRange validates preferred pickup and delivery dates
func ValidateTimeRange(pickupAt, deliveryAt *time.Time) error {
	if pickupAt == nil || deliveryAt == nil {
		return nil // Optional fields
	}

	if deliveryAt.Before(*pickupAt) {
		return appErrors.NewAppError("INVALID_TIME", "Delivery date must be after pickup date", nil)
	}

	return nil
}
