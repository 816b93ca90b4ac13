package controllers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shivxnshxrma/mysterymessages/lib/responses"
	"github.com/shivxnshxrma/mysterymessages/lib/service"
)

// SendMessageController : Anonymous message ingestion controller struct
type SendMessageController struct {
	svc *service.MessagesService
}

func NewSendMessageController(svc *service.MessagesService) *SendMessageController {
	return &SendMessageController{svc: svc}
}

type SendMessageRequestBody struct {
	Username string `json:"username" validate:"required"`
	Content  string `json:"content" validate:"required,min=10,max=300"`
	EventID  int64  `json:"eventId" validate:"required"`
}

// SendMessage godoc
// @Summary      Send an anonymous message
// @Description  Appends a message to the target user's inbox for the given event
// @Accept       json
// @Produce      json
// @Tags         Message
// @Param        message  body      SendMessageRequestBody  True  "Message"
// @Success      200      {object}  SuccessResponseBody
// @Failure      403      {object}  responses.ErrorResponse
// @Failure      404      {object}  responses.ErrorResponse
// @Failure      429      {object}  responses.ErrorResponse
// @Router       /send-message [post]
func (controller *SendMessageController) SendMessage(c echo.Context) error {
	var body SendMessageRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load send message request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	_, err := controller.svc.IngestMessage(c.Request().Context(), body.Username, body.Content, body.EventID, senderKey(c))
	if err != nil {
		switch err {
		case service.ErrRateLimited:
			return c.JSON(http.StatusTooManyRequests, responses.RateLimitedError)
		case service.ErrUserNotFound:
			return c.JSON(http.StatusNotFound, responses.UserNotFoundError)
		case service.ErrEventNotFound:
			return c.JSON(http.StatusNotFound, responses.EventNotFoundError)
		case service.ErrNotAcceptingMessages:
			return c.JSON(http.StatusForbidden, responses.NotAcceptingMessagesError)
		default:
			c.Logger().Errorf("Failed to ingest message: %v", err)
			return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
		}
	}

	return c.JSON(http.StatusOK, &SuccessResponseBody{
		Success: true,
		Message: "Message sent successfully",
	})
}

// senderKey derives the rate limit key from the sender's network origin.
func senderKey(c echo.Context) string {
	if xff := c.Request().Header.Get("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.Split(xff, ",")[0])
	}
	return "127.0.0.1"
}
