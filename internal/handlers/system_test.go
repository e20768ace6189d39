package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lonsystemskt/evento-card-gestor-92/internal/services"
	"go.uber.org/zap"
)

func (suite *HandlerTestSuite) TestHealth() {
	w := suite.do("GET", "/health", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("ok", suite.decode(w)["status"])
}

func (suite *HandlerTestSuite) TestSummary() {
	eventID := suite.createEvent("Conf", "2024-06-10")
	suite.createDemand(eventID, "overdue", "2024-06-01")
	suite.createDemand(eventID, "upcoming", "2024-06-30")

	w := suite.do("GET", "/api/summary", nil)
	suite.Equal(http.StatusOK, w.Code)
	response := suite.decode(w)
	suite.Equal(float64(1), response["active_events"])
	suite.Equal(float64(2), response["pending_demands"])
	suite.Equal(float64(1), response["overdue_demands"])
	suite.Equal(float64(0), response["completed_demands"])
}

func (suite *HandlerTestSuite) TestStatus_ReportsPersistFailures() {
	w := suite.do("GET", "/api/status", nil)
	suite.Equal(http.StatusOK, w.Code)
	response := suite.decode(w)
	suite.Equal(true, response["persisted"])
	suite.Equal("2024-06-05", response["today"])

	// A closed store makes every write fail while memory keeps the change.
	suite.Require().NoError(suite.store.Close())
	w = suite.do("POST", "/api/events", gin.H{"name": "Offline", "date": "2024-06-10"})
	suite.Equal(http.StatusCreated, w.Code)

	w = suite.do("GET", "/api/status", nil)
	response = suite.decode(w)
	suite.Equal(false, response["persisted"])
	events := response["services"].(map[string]interface{})["events"].(map[string]interface{})
	suite.Equal(false, events["persisted"])
	suite.Contains(events["error"], "closed")
}

func (suite *HandlerTestSuite) TestCalendarFeed() {
	eventID := suite.createEvent("Conf", "2024-06-10")
	suite.createDemand(eventID, "Book venue", "2024-06-01")

	w := suite.do("GET", "/api/calendar.ics", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.True(strings.HasPrefix(w.Header().Get("Content-Type"), "text/calendar"))
	body := w.Body.String()
	suite.Contains(body, "BEGIN:VCALENDAR")
	suite.Contains(body, "SUMMARY:Conf — Book venue")
	suite.Contains(body, "CATEGORIES:overdue")
}

func (suite *HandlerTestSuite) TestRefreshVisibleThroughAPI() {
	other := services.NewEventService(suite.store, suite.cal, zap.NewNop())
	suite.Require().NoError(other.Load(context.Background()))
	_, err := other.AddEvent(context.Background(), services.CreateEventInput{Name: "Elsewhere", Date: suite.cal.Today()})
	suite.Require().NoError(err)

	suite.Empty(suite.decode(suite.do("GET", "/api/events", nil))["events"])

	_, err = suite.events.Refresh(context.Background())
	suite.Require().NoError(err)
	suite.Equal([]string{"Elsewhere"}, listNames(suite.decode(suite.do("GET", "/api/events", nil))["events"], "name"))
}
