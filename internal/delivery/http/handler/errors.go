package handler

import (
	"errors"
	"net/http"

	domainQuote "cargolinked/internal/domain/quote"
	domainRequest "cargolinked/internal/domain/request"
	domainUser "cargolinked/internal/domain/user"
	"cargolinked/internal/logger"
	"cargolinked/internal/middleware"
	appErrors "cargolinked/pkg/errors"
	"cargolinked/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// respondWithError translates domain errors into HTTP statuses. Lifecycle
// conflicts map to 409 so clients can distinguish a stale action from a
// bad one.
func respondWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	switch {
	case errors.Is(err, appErrors.ErrInvalidCredentials),
		errors.Is(err, appErrors.ErrInvalidToken),
		errors.Is(err, appErrors.ErrUnauthorized):
		utils.ErrorResponse(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, appErrors.ErrForbidden),
		errors.Is(err, domainUser.ErrUserInactive),
		errors.Is(err, domainUser.ErrAgentProfileRequired),
		errors.Is(err, domainUser.ErrInvalidUserRole):
		utils.ErrorResponse(c, http.StatusForbidden, err.Error())
	case errors.Is(err, domainUser.ErrUserNotFound),
		errors.Is(err, domainUser.ErrAgentProfileNotFound),
		errors.Is(err, domainRequest.ErrRequestNotFound),
		errors.Is(err, domainQuote.ErrQuoteNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, domainUser.ErrUserAlreadyExists),
		errors.Is(err, domainUser.ErrAgentProfileExists),
		errors.Is(err, domainRequest.ErrInvalidStatusTransition),
		errors.Is(err, domainRequest.ErrRequestNotActive),
		errors.Is(err, domainRequest.ErrRequestNotDeletable),
		errors.Is(err, domainQuote.ErrQuoteNotPending),
		errors.Is(err, domainQuote.ErrAcceptConflict):
		utils.ErrorResponse(c, http.StatusConflict, err.Error())
	default:
		var appErr *appErrors.AppError
		if errors.As(err, &appErr) {
			utils.ErrorResponse(c, http.StatusBadRequest, appErr.Message)
			return
		}

		requestID := middleware.GetRequestID(c)
		logger.Error("Internal server error",
			zap.String("request_id", requestID),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Error(err),
		)
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}

// actorID resolves the authenticated user id set by the auth middleware.
// It writes the 401 itself so handlers only need the happy path.
func actorID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get("userID")
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User ID not found in context")
		return uuid.Nil, false
	}

	id, ok := value.(uuid.UUID)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid user ID format")
		return uuid.Nil, false
	}

	return id, true
}

// pathID parses a :id route parameter.
func pathID(c *gin.Context, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid "+label+" ID")
		return uuid.Nil, false
	}
	return id, true
}
