package integration_tests

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shivxnshxrma/mysterymessages/controllers"
	"github.com/shivxnshxrma/mysterymessages/db/models"
	"github.com/shivxnshxrma/mysterymessages/lib/service"
	"github.com/shivxnshxrma/mysterymessages/lib/tokens"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type EventsTestSuite struct {
	suite.Suite
	echo      *echo.Echo
	service   *service.MessagesService
	user      *models.User
	userToken string
}

func (suite *EventsTestSuite) SetupSuite() {
	svc, err := MessagesTestServiceInit()
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	suite.service = svc
	suite.echo = newTestEcho()

	eventsCtrl := controllers.NewEventsController(svc)
	secured := suite.echo.Group("", tokens.Middleware(svc.Config.JWTSecret))
	secured.POST("/events", eventsCtrl.CreateEvent)
	secured.GET("/events", eventsCtrl.ListEvents)
	secured.DELETE("/events/:eventId", eventsCtrl.DeleteEvent)
	suite.echo.GET("/event-details", controllers.NewEventDetailsController(svc).GetEventDetails)
}

func (suite *EventsTestSuite) SetupTest() {
	assert.NoError(suite.T(), clearTable(suite.service, "messages"))
	assert.NoError(suite.T(), clearTable(suite.service, "events"))
	assert.NoError(suite.T(), clearTable(suite.service, "users"))

	user, token, err := createTestUser(suite.service, "alice")
	assert.NoError(suite.T(), err)
	suite.user = user
	suite.userToken = token
}

func (suite *EventsTestSuite) createEvent(name, token string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(map[string]string{"name": name})
	req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderAuthorization, fmt.Sprintf("Bearer %s", token))
	rec := httptest.NewRecorder()
	suite.echo.ServeHTTP(rec, req)
	return rec
}

func (suite *EventsTestSuite) deleteEvent(eventId int64, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/events/%d", eventId), nil)
	req.Header.Set(echo.HeaderAuthorization, fmt.Sprintf("Bearer %s", token))
	rec := httptest.NewRecorder()
	suite.echo.ServeHTTP(rec, req)
	return rec
}

func (suite *EventsTestSuite) TestCreateAndListEvents() {
	rec := suite.createEvent("my party", suite.userToken)
	assert.Equal(suite.T(), http.StatusCreated, rec.Code)

	rec = suite.createEvent("another party", suite.userToken)
	assert.Equal(suite.T(), http.StatusCreated, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	req.Header.Set(echo.HeaderAuthorization, fmt.Sprintf("Bearer %s", suite.userToken))
	listRec := httptest.NewRecorder()
	suite.echo.ServeHTTP(listRec, req)
	assert.Equal(suite.T(), http.StatusOK, listRec.Code)

	response := &controllers.ListEventsResponseBody{}
	assert.NoError(suite.T(), json.NewDecoder(listRec.Body).Decode(response))
	assert.Len(suite.T(), response.Events, 2)
}

func (suite *EventsTestSuite) TestDuplicateNameRejected() {
	rec := suite.createEvent("my party", suite.userToken)
	assert.Equal(suite.T(), http.StatusCreated, rec.Code)

	rec = suite.createEvent("my party", suite.userToken)
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)

	// a different owner can reuse the name
	_, bobToken, err := createTestUser(suite.service, "bob")
	assert.NoError(suite.T(), err)
	rec = suite.createEvent("my party", bobToken)
	assert.Equal(suite.T(), http.StatusCreated, rec.Code)
}

func (suite *EventsTestSuite) TestDeleteCascades() {
	ctx := context.Background()
	event, err := suite.service.CreateEvent(ctx, suite.user.ID, "my party")
	assert.NoError(suite.T(), err)
	keep, err := suite.service.CreateEvent(ctx, suite.user.ID, "keep this one")
	assert.NoError(suite.T(), err)

	for i := 0; i < 3; i++ {
		_, err := suite.service.IngestMessage(ctx, "alice", fmt.Sprintf("cascade test message %d", i), event.ID, "10.0.0.1")
		assert.NoError(suite.T(), err)
	}
	_, err = suite.service.IngestMessage(ctx, "alice", "message for the kept event", keep.ID, "10.0.0.1")
	assert.NoError(suite.T(), err)

	rec := suite.deleteEvent(event.ID, suite.userToken)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)

	// the event no longer resolves and its messages are gone
	_, err = suite.service.FindEvent(ctx, event.ID)
	assert.Equal(suite.T(), service.ErrEventNotFound, err)

	messages, hasNextPage, err := suite.service.MessagesFor(ctx, suite.user.ID, event.ID, 1, 9)
	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), messages)
	assert.False(suite.T(), hasNextPage)

	// the other event is untouched
	messages, _, err = suite.service.MessagesFor(ctx, suite.user.ID, keep.ID, 1, 9)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), messages, 1)
}

func (suite *EventsTestSuite) TestDeleteSomeoneElsesEvent() {
	ctx := context.Background()
	event, err := suite.service.CreateEvent(ctx, suite.user.ID, "my party")
	assert.NoError(suite.T(), err)

	_, bobToken, err := createTestUser(suite.service, "bob")
	assert.NoError(suite.T(), err)

	// not the owner: same answer as a missing event
	rec := suite.deleteEvent(event.ID, bobToken)
	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)

	rec = suite.deleteEvent(99999999, suite.userToken)
	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)

	// alice's event survived
	_, err = suite.service.FindEvent(ctx, event.ID)
	assert.NoError(suite.T(), err)
}

func (suite *EventsTestSuite) TestPublicEventDetails() {
	event, err := suite.service.CreateEvent(context.Background(), suite.user.ID, "my party")
	assert.NoError(suite.T(), err)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/event-details?eventId=%d", event.ID), nil)
	rec := httptest.NewRecorder()
	suite.echo.ServeHTTP(rec, req)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)

	response := &controllers.EventDetailsResponseBody{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(response))
	assert.Equal(suite.T(), "my party", response.Event.Name)
	assert.Equal(suite.T(), "alice", response.Event.Username)

	req = httptest.NewRequest(http.MethodGet, "/event-details?eventId=99999999", nil)
	rec = httptest.NewRecorder()
	suite.echo.ServeHTTP(rec, req)
	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
}

func TestEventsSuite(t *testing.T) {
	suite.Run(t, new(EventsTestSuite))
}
