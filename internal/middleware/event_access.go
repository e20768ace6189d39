package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/lonsystemskt/evento-card-gestor-92/internal/constants"
	apierrors "github.com/lonsystemskt/evento-card-gestor-92/internal/errors"
	"github.com/lonsystemskt/evento-card-gestor-92/internal/models"
	"github.com/lonsystemskt/evento-card-gestor-92/internal/services"
)

// RequireEvent resolves the :id path parameter to an event and stores a copy
// of it in the context.
func RequireEvent(events *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		event, err := events.GetEvent(c.Param("id"))
		if err != nil {
			apierrors.NotFound(c, "Event not found")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyEvent, *event)
		c.Next()
	}
}

// GetEvent retrieves the event stored by RequireEvent
func GetEvent(c *gin.Context) (models.Event, bool) {
	v, exists := c.Get(constants.ContextKeyEvent)
	if !exists {
		return models.Event{}, false
	}
	event, ok := v.(models.Event)
	return event, ok
}
