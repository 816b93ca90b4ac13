package integration_tests

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shivxnshxrma/mysterymessages/controllers"
	"github.com/shivxnshxrma/mysterymessages/db/models"
	"github.com/shivxnshxrma/mysterymessages/lib/limiter"
	"github.com/shivxnshxrma/mysterymessages/lib/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type SendMessageTestSuite struct {
	suite.Suite
	echo    *echo.Echo
	service *service.MessagesService
	user    *models.User
	event   *models.Event
}

func (suite *SendMessageTestSuite) SetupSuite() {
	svc, err := MessagesTestServiceInit()
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	suite.service = svc
	suite.echo = newTestEcho()
	suite.echo.POST("/send-message", controllers.NewSendMessageController(svc).SendMessage)
}

func (suite *SendMessageTestSuite) SetupTest() {
	assert.NoError(suite.T(), clearTable(suite.service, "messages"))
	assert.NoError(suite.T(), clearTable(suite.service, "events"))
	assert.NoError(suite.T(), clearTable(suite.service, "users"))

	user, _, err := createTestUser(suite.service, "alice")
	assert.NoError(suite.T(), err)
	suite.user = user

	event, err := suite.service.CreateEvent(context.Background(), user.ID, "my party")
	assert.NoError(suite.T(), err)
	suite.event = event

	suite.service.Limiter = limiter.NewSlidingWindow(10000, 10*time.Second)
}

func (suite *SendMessageTestSuite) sendMessage(username, content string, eventId int64, origin string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(map[string]interface{}{
		"username": username,
		"content":  content,
		"eventId":  eventId,
	})
	req := httptest.NewRequest(http.MethodPost, "/send-message", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if origin != "" {
		req.Header.Set("X-Forwarded-For", origin)
	}
	rec := httptest.NewRecorder()
	suite.echo.ServeHTTP(rec, req)
	return rec
}

func (suite *SendMessageTestSuite) messageCount() int {
	count, err := suite.service.DB.NewSelect().Model((*models.Message)(nil)).
		Where("user_id = ?", suite.user.ID).Count(context.Background())
	assert.NoError(suite.T(), err)
	return count
}

func (suite *SendMessageTestSuite) TestSendMessage() {
	rec := suite.sendMessage("alice", "hello from a secret admirer", suite.event.ID, "")
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Equal(suite.T(), 1, suite.messageCount())
}

func (suite *SendMessageTestSuite) TestUnknownUser() {
	rec := suite.sendMessage("nobody", "hello from a secret admirer", suite.event.ID, "")
	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
	assert.Equal(suite.T(), 0, suite.messageCount())
}

func (suite *SendMessageTestSuite) TestNotAcceptingMessages() {
	_, err := suite.service.UpdateAcceptingMessages(context.Background(), suite.user.ID, false)
	assert.NoError(suite.T(), err)

	rec := suite.sendMessage("alice", "hello from a secret admirer", suite.event.ID, "")
	assert.Equal(suite.T(), http.StatusForbidden, rec.Code)
	assert.Equal(suite.T(), 0, suite.messageCount())
}

func (suite *SendMessageTestSuite) TestForeignEventRejected() {
	bob, _, err := createTestUser(suite.service, "bob")
	assert.NoError(suite.T(), err)
	bobEvent, err := suite.service.CreateEvent(context.Background(), bob.ID, "bobs event")
	assert.NoError(suite.T(), err)

	// alice's inbox must not accept messages tagged with bob's event
	rec := suite.sendMessage("alice", "hello from a secret admirer", bobEvent.ID, "")
	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
	assert.Equal(suite.T(), 0, suite.messageCount())
}

func (suite *SendMessageTestSuite) TestRateLimit() {
	suite.service.Limiter = limiter.NewSlidingWindow(5, 10*time.Second)

	for i := 0; i < 5; i++ {
		rec := suite.sendMessage("alice", "hello from a secret admirer", suite.event.ID, "203.0.113.7")
		assert.Equal(suite.T(), http.StatusOK, rec.Code)
	}
	rec := suite.sendMessage("alice", "hello from a secret admirer", suite.event.ID, "203.0.113.7")
	assert.Equal(suite.T(), http.StatusTooManyRequests, rec.Code)

	// another origin still goes through
	rec = suite.sendMessage("alice", "hello from a secret admirer", suite.event.ID, "198.51.100.1")
	assert.Equal(suite.T(), http.StatusOK, rec.Code)

	assert.Equal(suite.T(), 6, suite.messageCount())
}

func (suite *SendMessageTestSuite) TestLimiterFailureFailsOpen() {
	suite.service.Limiter = errLimiter{}

	rec := suite.sendMessage("alice", "hello from a secret admirer", suite.event.ID, "")
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Equal(suite.T(), 1, suite.messageCount())
}

func (suite *SendMessageTestSuite) TestConcurrentSendersLoseNothing() {
	const senders = 20

	var wg sync.WaitGroup
	for i := 0; i < senders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := suite.service.IngestMessage(
				context.Background(),
				"alice",
				fmt.Sprintf("concurrent message number %d", i),
				suite.event.ID,
				fmt.Sprintf("10.0.0.%d", i),
			)
			assert.NoError(suite.T(), err)
		}(i)
	}
	wg.Wait()

	assert.Equal(suite.T(), senders, suite.messageCount())
}

func TestSendMessageSuite(t *testing.T) {
	suite.Run(t, new(SendMessageTestSuite))
}
