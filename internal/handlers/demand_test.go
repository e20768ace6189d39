package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (suite *HandlerTestSuite) TestCreateDemand() {
	eventID := suite.createEvent("Conf", "2024-06-10")

	w := suite.do("POST", "/api/demands", gin.H{"event_id": eventID, "title": "Book venue", "subject": "hotel", "date": "2024-06-08"})
	suite.Equal(http.StatusCreated, w.Code)
	response := suite.decode(w)
	suite.Equal(eventID, response["event_id"])
	suite.Equal("current", response["urgency"])
	suite.Equal(false, response["is_completed"])

	w = suite.do("POST", "/api/demands", gin.H{"event_id": "missing", "title": "x", "date": "2024-06-08"})
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.do("POST", "/api/demands", gin.H{"event_id": eventID, "date": "2024-06-08"})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestListDemands_StatusAndFilter() {
	a := suite.createEvent("A", "2024-06-10")
	b := suite.createEvent("B", "2024-06-10")
	suite.createDemand(a, "upcoming", "2024-06-30")
	suite.createDemand(b, "overdue", "2024-06-01")
	done := suite.createDemand(a, "done", "2024-06-02")
	suite.Require().Equal(http.StatusOK, suite.do("PATCH", "/api/demands/"+done, gin.H{"is_completed": true}).Code)

	w := suite.do("GET", "/api/demands", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal([]string{"overdue", "upcoming"}, listNames(suite.decode(w)["demands"], "title"))

	w = suite.do("GET", "/api/demands?event_id="+a, nil)
	suite.Equal([]string{"upcoming"}, listNames(suite.decode(w)["demands"], "title"))

	w = suite.do("GET", "/api/demands?status=completed", nil)
	suite.Equal([]string{"done"}, listNames(suite.decode(w)["demands"], "title"))

	w = suite.do("GET", "/api/demands?status=all&event_id="+a, nil)
	suite.Len(suite.decode(w)["demands"], 2)

	suite.Equal(http.StatusBadRequest, suite.do("GET", "/api/demands?status=late", nil).Code)
}

func (suite *HandlerTestSuite) TestUpdateDemand() {
	a := suite.createEvent("A", "2024-06-10")
	b := suite.createEvent("B", "2024-06-10")
	id := suite.createDemand(a, "Book venue", "2024-06-20")

	w := suite.do("PATCH", "/api/demands/"+id, gin.H{"event_id": b, "date": "2024-06-01T12:00:00Z"})
	suite.Equal(http.StatusOK, w.Code)
	response := suite.decode(w)
	suite.Equal(b, response["event_id"])
	suite.Equal("overdue", response["urgency"])
	suite.Equal("Book venue", response["title"])

	suite.Equal(http.StatusNotFound, suite.do("PATCH", "/api/demands/"+id, gin.H{"event_id": "missing"}).Code)
	suite.Equal(http.StatusNotFound, suite.do("PATCH", "/api/demands/missing", gin.H{"title": "x"}).Code)
	suite.Equal(http.StatusBadRequest, suite.do("PATCH", "/api/demands/"+id, gin.H{"title": ""}).Code)
}

func (suite *HandlerTestSuite) TestDeleteDemand() {
	eventID := suite.createEvent("Conf", "2024-06-10")
	id := suite.createDemand(eventID, "Book venue", "2024-06-20")

	suite.Equal(http.StatusOK, suite.do("DELETE", "/api/demands/"+id, nil).Code)
	suite.Equal(http.StatusNotFound, suite.do("GET", "/api/demands/"+id, nil).Code)
	suite.Equal(http.StatusNotFound, suite.do("DELETE", "/api/demands/"+id, nil).Code)
	suite.Equal(http.StatusOK, suite.do("GET", "/api/events/"+eventID, nil).Code)
}
