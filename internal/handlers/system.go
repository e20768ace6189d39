package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lonsystemskt/evento-card-gestor-92/internal/services"
	"github.com/lonsystemskt/evento-card-gestor-92/internal/utils"
)

// PersistenceReporter exposes the pending write failure of a service.
type PersistenceReporter interface {
	PersistError() error
}

type SystemHandler struct {
	events    *services.EventService
	cal       *utils.Calendar
	reporters map[string]PersistenceReporter
}

func NewSystemHandler(events *services.EventService, cal *utils.Calendar, reporters map[string]PersistenceReporter) *SystemHandler {
	return &SystemHandler{
		events:    events,
		cal:       cal,
		reporters: reporters,
	}
}

func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Status reports, per service, whether its data is safely in the store
func (h *SystemHandler) Status(c *gin.Context) {
	type serviceStatus struct {
		Persisted bool   `json:"persisted"`
		Error     string `json:"error,omitempty"`
	}

	out := make(map[string]serviceStatus, len(h.reporters))
	healthy := true
	for name, r := range h.reporters {
		if err := r.PersistError(); err != nil {
			healthy = false
			out[name] = serviceStatus{Persisted: false, Error: err.Error()}
			continue
		}
		out[name] = serviceStatus{Persisted: true}
	}

	c.JSON(http.StatusOK, gin.H{
		"persisted": healthy,
		"services":  out,
		"today":     h.cal.FormatDate(h.cal.Today()),
	})
}

// Summary returns the dashboard counters
func (h *SystemHandler) Summary(c *gin.Context) {
	c.JSON(http.StatusOK, h.events.Summary())
}

// Calendar serves the active demands as an iCalendar feed
func (h *SystemHandler) Calendar(c *gin.Context) {
	feed := services.ExportDemandsICS(h.cal, h.events.GetAllEvents(), h.events.GetActiveDemands(""))

	c.Header("Content-Disposition", `inline; filename="demandas.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(feed))
}
