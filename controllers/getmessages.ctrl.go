package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shivxnshxrma/mysterymessages/lib/responses"
	"github.com/shivxnshxrma/mysterymessages/lib/service"
)

// GetMessagesController : Paginated message retrieval controller struct
type GetMessagesController struct {
	svc *service.MessagesService
}

func NewGetMessagesController(svc *service.MessagesService) *GetMessagesController {
	return &GetMessagesController{svc: svc}
}

type Message struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	EventID   int64     `json:"eventId"`
	CreatedAt time.Time `json:"createdAt"`
}

type GetMessagesResponseBody struct {
	Success     bool      `json:"success"`
	Messages    []Message `json:"messages"`
	HasNextPage bool      `json:"hasNextPage"`
}

// GetMessages godoc
// @Summary      Retrieve messages
// @Description  Returns one page of the authenticated user's messages for an event, newest first
// @Produce      json
// @Tags         Message
// @Param        eventId  query     int  True   "Event id"
// @Param        page     query     int  False  "Page, starting at 1"
// @Param        limit    query     int  False  "Page size, default 9"
// @Success      200      {object}  GetMessagesResponseBody
// @Failure      400      {object}  responses.ErrorResponse
// @Failure      401      {object}  responses.ErrorResponse
// @Router       /messages [get]
// @Security     OAuth2Password
func (controller *GetMessagesController) GetMessages(c echo.Context) error {
	userId := c.Get("UserID").(int64)

	eventIdParam := c.QueryParam("eventId")
	if eventIdParam == "" {
		return c.JSON(http.StatusBadRequest, responses.EventIdRequiredError)
	}
	eventId, err := strconv.ParseInt(eventIdParam, 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	messages, hasNextPage, err := controller.svc.MessagesFor(c.Request().Context(), userId, eventId, page, limit)
	if err != nil {
		c.Logger().Errorf("Failed to fetch messages: %v", err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}

	response := make([]Message, len(messages))
	for i, message := range messages {
		response[i] = Message{
			ID:        message.ID,
			Content:   message.Content,
			EventID:   message.EventID,
			CreatedAt: message.CreatedAt,
		}
	}
	return c.JSON(http.StatusOK, &GetMessagesResponseBody{
		Success:     true,
		Messages:    response,
		HasNextPage: hasNextPage,
	})
}
