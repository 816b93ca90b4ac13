package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shivxnshxrma/mysterymessages/lib/responses"
	"github.com/shivxnshxrma/mysterymessages/lib/service"
)

// EventDetailsController : Public event lookup controller struct
//
// Backs the anonymous send page, which only needs the event name and the
// owner's username to render the form.
type EventDetailsController struct {
	svc *service.MessagesService
}

func NewEventDetailsController(svc *service.MessagesService) *EventDetailsController {
	return &EventDetailsController{svc: svc}
}

type EventDetails struct {
	Name     string `json:"name"`
	Username string `json:"username"`
}

type EventDetailsResponseBody struct {
	Success bool         `json:"success"`
	Event   EventDetails `json:"event"`
}

// GetEventDetails godoc
// @Summary      Public event details
// @Produce      json
// @Tags         Event
// @Param        eventId  query     int  True  "Event id"
// @Success      200      {object}  EventDetailsResponseBody
// @Failure      400      {object}  responses.ErrorResponse
// @Failure      404      {object}  responses.ErrorResponse
// @Router       /event-details [get]
func (controller *EventDetailsController) GetEventDetails(c echo.Context) error {
	eventIdParam := c.QueryParam("eventId")
	if eventIdParam == "" {
		return c.JSON(http.StatusBadRequest, responses.EventIdRequiredError)
	}
	eventId, err := strconv.ParseInt(eventIdParam, 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	event, err := controller.svc.FindEvent(c.Request().Context(), eventId)
	if err != nil {
		switch err {
		case service.ErrEventNotFound:
			return c.JSON(http.StatusNotFound, responses.EventNotFoundError)
		default:
			c.Logger().Errorf("Failed to fetch event details: %v", err)
			return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
		}
	}
	if event.User == nil {
		return c.JSON(http.StatusNotFound, responses.EventNotFoundError)
	}

	return c.JSON(http.StatusOK, &EventDetailsResponseBody{
		Success: true,
		Event: EventDetails{
			Name:     event.Name,
			Username: event.User.Username,
		},
	})
}
