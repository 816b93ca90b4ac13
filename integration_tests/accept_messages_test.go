package integration_tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shivxnshxrma/mysterymessages/controllers"
	"github.com/shivxnshxrma/mysterymessages/lib/service"
	"github.com/shivxnshxrma/mysterymessages/lib/tokens"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type AcceptMessagesTestSuite struct {
	suite.Suite
	echo      *echo.Echo
	service   *service.MessagesService
	userToken string
}

func (suite *AcceptMessagesTestSuite) SetupSuite() {
	svc, err := MessagesTestServiceInit()
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	suite.service = svc
	suite.echo = newTestEcho()
	suite.echo.Use(tokens.Middleware(svc.Config.JWTSecret))

	acceptCtrl := controllers.NewAcceptMessagesController(svc)
	suite.echo.GET("/accept-messages", acceptCtrl.GetAcceptMessages)
	suite.echo.POST("/accept-messages", acceptCtrl.SetAcceptMessages)
}

func (suite *AcceptMessagesTestSuite) SetupTest() {
	assert.NoError(suite.T(), clearTable(suite.service, "messages"))
	assert.NoError(suite.T(), clearTable(suite.service, "events"))
	assert.NoError(suite.T(), clearTable(suite.service, "users"))

	_, token, err := createTestUser(suite.service, "alice")
	assert.NoError(suite.T(), err)
	suite.userToken = token
}

func (suite *AcceptMessagesTestSuite) getGate() *controllers.AcceptMessagesResponseBody {
	req := httptest.NewRequest(http.MethodGet, "/accept-messages", nil)
	req.Header.Set(echo.HeaderAuthorization, fmt.Sprintf("Bearer %s", suite.userToken))
	rec := httptest.NewRecorder()
	suite.echo.ServeHTTP(rec, req)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)

	response := &controllers.AcceptMessagesResponseBody{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(response))
	return response
}

func (suite *AcceptMessagesTestSuite) setGate(accepting bool) *httptest.ResponseRecorder {
	body, _ := json.Marshal(map[string]bool{"acceptMessages": accepting})
	req := httptest.NewRequest(http.MethodPost, "/accept-messages", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderAuthorization, fmt.Sprintf("Bearer %s", suite.userToken))
	rec := httptest.NewRecorder()
	suite.echo.ServeHTTP(rec, req)
	return rec
}

func (suite *AcceptMessagesTestSuite) TestToggleGate() {
	assert.True(suite.T(), suite.getGate().IsAcceptingMessages)

	rec := suite.setGate(false)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.False(suite.T(), suite.getGate().IsAcceptingMessages)

	rec = suite.setGate(true)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.True(suite.T(), suite.getGate().IsAcceptingMessages)
}

func TestAcceptMessagesSuite(t *testing.T) {
	suite.Run(t, new(AcceptMessagesTestSuite))
}
