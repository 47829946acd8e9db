package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"contacthub/internal/repository"
	"contacthub/internal/service"
)

// respondError maps domain errors onto the HTTP statuses the API contract
// promises. Anything unmapped is a 500 and gets logged by the caller.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrUserInactive):
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
	case errors.Is(err, service.ErrNotOwner),
		errors.Is(err, service.ErrTargetProtected):
		c.JSON(http.StatusForbidden, gin.H{"message": err.Error()})
	case errors.Is(err, repository.ErrContactNotFound),
		errors.Is(err, repository.ErrShareNotFound),
		errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, service.ErrShareTargetUnknown):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case errors.Is(err, service.ErrShareWithOwner),
		errors.Is(err, repository.ErrShareExists),
		errors.Is(err, repository.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	case errors.Is(err, service.ErrMissingFields),
		errors.Is(err, service.ErrResetTokenInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
	}
}
