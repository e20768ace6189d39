package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	apierrors "github.com/lonsystemskt/evento-card-gestor-92/internal/errors"
	"github.com/lonsystemskt/evento-card-gestor-92/internal/services"
	"github.com/lonsystemskt/evento-card-gestor-92/internal/utils"
)

// respondServiceError maps service errors onto API errors
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotLoaded):
		apierrors.NotReady(c)
	case errors.Is(err, services.ErrEventNotFound),
		errors.Is(err, services.ErrDemandNotFound),
		errors.Is(err, services.ErrContactNotFound),
		errors.Is(err, services.ErrNoteNotFound):
		apierrors.NotFound(c, capitalize(err.Error()))
	case errors.Is(err, services.ErrNameRequired),
		errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrSubjectRequired):
		apierrors.MissingField(c, capitalize(err.Error()))
	case errors.Is(err, services.ErrInvalidOwner),
		errors.Is(err, services.ErrNoDraftedDemands):
		apierrors.BadRequest(c, capitalize(err.Error()))
	case errors.Is(err, services.ErrDrafterNotConfigured):
		apierrors.ServiceUnavailable(c, "Demand drafting is not configured")
	default:
		_ = c.Error(err)
		apierrors.InternalError(c, "")
	}
}

func respondBindError(c *gin.Context, err error) {
	apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
}

// parseDate parses a request date and writes a 400 response when it fails
func parseDate(c *gin.Context, cal *utils.Calendar, field, value string) (time.Time, bool) {
	t, err := cal.ParseDate(value)
	if err != nil {
		apierrors.InvalidFormat(c, field+": "+err.Error())
		return time.Time{}, false
	}
	return t, true
}

// parseOptionalDate is parseDate for partial updates; nil stays nil
func parseOptionalDate(c *gin.Context, cal *utils.Calendar, field string, value *string) (*time.Time, bool) {
	if value == nil {
		return nil, true
	}
	t, ok := parseDate(c, cal, field, *value)
	if !ok {
		return nil, false
	}
	return &t, true
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
