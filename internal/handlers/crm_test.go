package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func (suite *HandlerTestSuite) TestContacts_CRUD() {
	w := suite.do("POST", "/api/contacts", gin.H{
		"name":          "Ana Souza",
		"email":         "ana@example.com",
		"phone":         "(11) 98765-4321",
		"subject":       "Patrocínio",
		"priority_date": "2024-06-20",
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	created := suite.decode(w)
	id := created["id"].(string)
	suite.True(strings.HasPrefix(created["phone"].(string), "+55"))

	suite.do("POST", "/api/contacts", gin.H{"name": "Bruno", "priority_date": "2024-06-06"})

	w = suite.do("GET", "/api/contacts", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal([]string{"Bruno", "Ana Souza"}, listNames(suite.decode(w)["contacts"], "name"))

	w = suite.do("PATCH", "/api/contacts/"+id, gin.H{"subject": "Renovação"})
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("Renovação", suite.decode(w)["subject"])

	suite.Equal(http.StatusOK, suite.do("GET", "/api/contacts/"+id, nil).Code)
	suite.Equal(http.StatusOK, suite.do("DELETE", "/api/contacts/"+id, nil).Code)
	suite.Equal(http.StatusNotFound, suite.do("GET", "/api/contacts/"+id, nil).Code)
}

func (suite *HandlerTestSuite) TestContacts_Validation() {
	w := suite.do("POST", "/api/contacts", gin.H{"name": "Ana", "email": "not-an-email", "priority_date": "2024-06-20"})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do("POST", "/api/contacts", gin.H{"name": "Ana", "priority_date": "someday"})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("INVALID_FORMAT", suite.decode(w)["code"])
}

func (suite *HandlerTestSuite) TestNotes_OwnerFilter() {
	w := suite.do("POST", "/api/notes", gin.H{"subject": "Ligar fornecedor", "priority_date": "2024-06-09"})
	suite.Require().Equal(http.StatusCreated, w.Code)
	suite.Equal("Thiago", suite.decode(w)["owner"])

	w = suite.do("POST", "/api/notes", gin.H{"subject": "Revisar contrato", "priority_date": "2024-06-06", "owner": "Kalil"})
	suite.Require().Equal(http.StatusCreated, w.Code)
	kalilNote := suite.decode(w)["id"].(string)

	w = suite.do("POST", "/api/notes", gin.H{"subject": "x", "priority_date": "2024-06-06", "owner": "Someone"})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do("GET", "/api/notes", nil)
	suite.Equal([]string{"Revisar contrato", "Ligar fornecedor"}, listNames(suite.decode(w)["notes"], "subject"))

	w = suite.do("GET", "/api/notes?owner=Kalil", nil)
	suite.Equal([]string{"Revisar contrato"}, listNames(suite.decode(w)["notes"], "subject"))

	suite.Equal(http.StatusBadRequest, suite.do("GET", "/api/notes?owner=Someone", nil).Code)

	w = suite.do("PATCH", "/api/notes/"+kalilNote, gin.H{"owner": "Thiago"})
	suite.Equal(http.StatusOK, w.Code)
	w = suite.do("GET", "/api/notes?owner=Kalil", nil)
	suite.Empty(suite.decode(w)["notes"])

	suite.Equal(http.StatusOK, suite.do("DELETE", "/api/notes/"+kalilNote, nil).Code)
	suite.Equal(http.StatusNotFound, suite.do("GET", "/api/notes/"+kalilNote, nil).Code)
}
