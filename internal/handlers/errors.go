package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pollboard/internal/services"
)

// statusForError maps domain errors to HTTP status codes
func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrTitleTooLong),
		errors.Is(err, services.ErrDescriptionTooLong),
		errors.Is(err, services.ErrInsufficientOptions),
		errors.Is(err, services.ErrTooManyOptions),
		errors.Is(err, services.ErrOptionTooLong),
		errors.Is(err, services.ErrInvalidStatus):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, services.ErrPollNotFound),
		errors.Is(err, services.ErrOptionNotFound),
		errors.Is(err, services.ErrProfileNotFound),
		errors.Is(err, services.ErrBookmarkNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrPollNotActive),
		errors.Is(err, services.ErrAlreadyVoted),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrAlreadyBookmarked):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes a domain error as a short JSON message. Unknown errors
// are masked so internals never leak across the boundary.
func respondError(c *gin.Context, err error) {
	status := statusForError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "Internal server error"
	}
	c.JSON(status, gin.H{"error": message})
}
