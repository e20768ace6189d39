package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lonsystemskt/evento-card-gestor-92/internal/services"
	"go.uber.org/zap"
)

func (suite *HandlerTestSuite) TestCreateEvent_Success() {
	w := suite.do("POST", "/api/events", gin.H{"name": "Conf", "date": "2024-06-10", "logo": "data:image/png;base64,AAAA"})

	suite.Equal(http.StatusCreated, w.Code)
	response := suite.decode(w)
	suite.Equal("Conf", response["name"])
	suite.Equal("2024-06-10", response["date"])
	suite.Equal(false, response["is_archived"])
	suite.Equal(false, response["is_priority"])
	suite.NotContains(response, "priority_order")
	suite.Equal("data:image/png;base64,AAAA", response["logo"])
}

func (suite *HandlerTestSuite) TestCreateEvent_InvalidRequest() {
	w := suite.do("POST", "/api/events", gin.H{"date": "2024-06-10"})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("INVALID_INPUT", suite.decode(w)["code"])

	w = suite.do("POST", "/api/events", gin.H{"name": "Conf", "date": "10/06/2024"})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("INVALID_FORMAT", suite.decode(w)["code"])

	w = suite.do("POST", "/api/events", gin.H{"name": "   ", "date": "2024-06-10"})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("MISSING_FIELD", suite.decode(w)["code"])
}

func (suite *HandlerTestSuite) TestListEvents_Views() {
	a := suite.createEvent("A", "2024-01-01")
	suite.createEvent("B", "2024-08-01")
	archived := suite.createEvent("Old", "2023-01-01")
	suite.Require().Equal(http.StatusOK, suite.do("POST", "/api/events/"+a+"/priority", nil).Code)
	suite.Require().Equal(http.StatusOK, suite.do("PATCH", "/api/events/"+archived, gin.H{"is_archived": true}).Code)

	w := suite.do("GET", "/api/events", nil)
	suite.Equal(http.StatusOK, w.Code)
	response := suite.decode(w)
	suite.Equal([]string{"A", "B"}, listNames(response["events"], "name"))
	pagination := response["pagination"].(map[string]interface{})
	suite.Equal(float64(2), pagination["total"])

	w = suite.do("GET", "/api/events?view=archived", nil)
	suite.Equal([]string{"Old"}, listNames(suite.decode(w)["events"], "name"))

	w = suite.do("GET", "/api/events?view=all&limit=2&page=2", nil)
	response = suite.decode(w)
	suite.Len(response["events"], 1)
	suite.Equal(float64(3), response["pagination"].(map[string]interface{})["total"])

	w = suite.do("GET", "/api/events?view=deleted", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestGetEvent() {
	id := suite.createEvent("Conf", "2024-06-10")

	w := suite.do("GET", "/api/events/"+id, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(id, suite.decode(w)["id"])

	w = suite.do("GET", "/api/events/missing", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestGetEvent_NotFoundInContext() {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/events/x", nil)

	NewEventHandler(suite.events, suite.cal).GetEvent(c)

	suite.Equal(http.StatusInternalServerError, w.Code)
}

func (suite *HandlerTestSuite) TestUpdateEvent() {
	id := suite.createEvent("Conf", "2024-06-10")

	w := suite.do("PATCH", "/api/events/"+id, gin.H{"name": "Conf 2024", "date": "2024-07-01", "is_priority": true})
	suite.Equal(http.StatusOK, w.Code)
	response := suite.decode(w)
	suite.Equal("Conf 2024", response["name"])
	suite.Equal("2024-07-01", response["date"])
	suite.Equal(float64(1), response["priority_order"])

	w = suite.do("PATCH", "/api/events/"+id, gin.H{"date": "tomorrow"})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do("PATCH", "/api/events/missing", gin.H{"name": "x"})
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestTogglePriority() {
	id := suite.createEvent("Conf", "2024-06-10")

	w := suite.do("POST", "/api/events/"+id+"/priority", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(true, suite.decode(w)["is_priority"])

	w = suite.do("POST", "/api/events/"+id+"/priority", nil)
	suite.Equal(http.StatusOK, w.Code)
	response := suite.decode(w)
	suite.Equal(false, response["is_priority"])
	suite.NotContains(response, "priority_order")

	suite.Equal(http.StatusNotFound, suite.do("POST", "/api/events/missing/priority", nil).Code)
}

func (suite *HandlerTestSuite) TestDeleteEvent_Cascades() {
	id := suite.createEvent("Conf", "2024-06-10")
	demandID := suite.createDemand(id, "Book venue", "2024-06-01")

	w := suite.do("DELETE", "/api/events/"+id, nil)
	suite.Equal(http.StatusOK, w.Code)

	suite.Equal(http.StatusNotFound, suite.do("GET", "/api/demands/"+demandID, nil).Code)
	suite.Equal(http.StatusNotFound, suite.do("DELETE", "/api/events/"+id, nil).Code)
}

func (suite *HandlerTestSuite) TestEventDemands() {
	id := suite.createEvent("Conf", "2024-06-10")

	w := suite.do("POST", "/api/events/"+id+"/demands", gin.H{"title": "Later", "date": "2024-06-20"})
	suite.Require().Equal(http.StatusCreated, w.Code)
	w = suite.do("POST", "/api/events/"+id+"/demands", gin.H{"title": "Book venue", "date": "2024-06-01"})
	suite.Require().Equal(http.StatusCreated, w.Code)
	suite.Equal("overdue", suite.decode(w)["urgency"])

	w = suite.do("GET", "/api/events/"+id+"/demands", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal([]string{"Book venue", "Later"}, listNames(suite.decode(w)["demands"], "title"))

	w = suite.do("GET", "/api/events/"+id+"/demands?status=completed", nil)
	suite.Empty(suite.decode(w)["demands"])

	suite.Equal(http.StatusBadRequest, suite.do("GET", "/api/events/"+id+"/demands?status=late", nil).Code)
	suite.Equal(http.StatusNotFound, suite.do("GET", "/api/events/missing/demands", nil).Code)
	suite.Equal(http.StatusNotFound,
		suite.do("POST", "/api/events/missing/demands", gin.H{"title": "x", "date": "2024-06-01"}).Code)
}

func (suite *HandlerTestSuite) TestDraftDemands_NotConfigured() {
	id := suite.createEvent("Conf", "2024-06-10")

	w := suite.do("POST", "/api/events/"+id+"/demands/draft", gin.H{"text": "reservar o local amanhã"})
	suite.Equal(http.StatusServiceUnavailable, w.Code)
	suite.Equal("SERVICE_UNAVAILABLE", suite.decode(w)["code"])
}

type stubDrafter struct {
	drafted []services.DraftedDemand
	err     error
	got     services.DraftRequest
}

func (s *stubDrafter) Draft(_ context.Context, req services.DraftRequest) ([]services.DraftedDemand, error) {
	s.got = req
	return s.drafted, s.err
}

func (suite *HandlerTestSuite) TestDraftDemands_Success() {
	date := suite.cal.Today().AddDate(0, 0, 2)
	stub := &stubDrafter{drafted: []services.DraftedDemand{
		{Title: " Reservar local ", Subject: "hotel", Date: &date},
		{Title: "  "},
	}}
	suite.events.WithDrafter(stub)
	id := suite.createEvent("Conf", "2024-06-10")

	w := suite.do("POST", "/api/events/"+id+"/demands/draft", gin.H{"text": "reservar o local até sexta"})
	suite.Equal(http.StatusOK, w.Code)
	demands := suite.decode(w)["demands"].([]interface{})
	suite.Require().Len(demands, 1)
	first := demands[0].(map[string]interface{})
	suite.Equal("Reservar local", first["title"])
	suite.Equal("2024-06-07", first["date"])
	suite.Equal("Conf", stub.got.EventName)
	suite.Equal("2024-06-05", stub.got.Today)

	suite.Empty(suite.events.GetAllDemands(), "drafted demands are not saved")

	stub.err = errors.New("upstream timeout")
	w = suite.do("POST", "/api/events/"+id+"/demands/draft", gin.H{"text": "x"})
	suite.Equal(http.StatusInternalServerError, w.Code)

	suite.Equal(http.StatusBadRequest, suite.do("POST", "/api/events/"+id+"/demands/draft", gin.H{}).Code)
}

func (suite *HandlerTestSuite) TestMutationsBeforeLoad() {
	unloaded := services.NewEventService(suite.store, suite.cal, zap.NewNop())
	suite.router = suite.newRouter(unloaded)

	w := suite.do("POST", "/api/events", gin.H{"name": "Conf", "date": "2024-06-10"})
	suite.Equal(http.StatusServiceUnavailable, w.Code)
	suite.True(strings.Contains(w.Body.String(), "NOT_READY"))
}
