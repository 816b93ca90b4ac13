package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shivxnshxrma/mysterymessages/lib/responses"
	"github.com/shivxnshxrma/mysterymessages/lib/service"
)

// EventsController : Event lifecycle controller struct
type EventsController struct {
	svc *service.MessagesService
}

func NewEventsController(svc *service.MessagesService) *EventsController {
	return &EventsController{svc: svc}
}

type CreateEventRequestBody struct {
	Name string `json:"name" validate:"required,min=3,max=50"`
}

type Event struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateEventResponseBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Event   Event  `json:"event"`
}

type ListEventsResponseBody struct {
	Success bool    `json:"success"`
	Events  []Event `json:"events"`
}

// CreateEvent godoc
// @Summary      Create an event
// @Description  Creates a named inbox scope; names are unique per owner
// @Accept       json
// @Produce      json
// @Tags         Event
// @Param        event  body      CreateEventRequestBody  True  "Event"
// @Success      201    {object}  CreateEventResponseBody
// @Failure      400    {object}  responses.ErrorResponse
// @Failure      401    {object}  responses.ErrorResponse
// @Router       /events [post]
// @Security     OAuth2Password
func (controller *EventsController) CreateEvent(c echo.Context) error {
	userId := c.Get("UserID").(int64)

	var body CreateEventRequestBody
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load create event request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	event, err := controller.svc.CreateEvent(c.Request().Context(), userId, body.Name)
	if err != nil {
		switch err {
		case service.ErrEventNameTaken:
			return c.JSON(http.StatusBadRequest, responses.EventNameTakenError)
		default:
			c.Logger().Errorf("Failed to create event: %v", err)
			return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
		}
	}

	return c.JSON(http.StatusCreated, &CreateEventResponseBody{
		Success: true,
		Message: "Event created successfully",
		Event: Event{
			ID:        event.ID,
			Name:      event.Name,
			CreatedAt: event.CreatedAt,
		},
	})
}

// ListEvents godoc
// @Summary      List events
// @Description  Returns the authenticated user's events, newest first
// @Produce      json
// @Tags         Event
// @Success      200  {object}  ListEventsResponseBody
// @Failure      401  {object}  responses.ErrorResponse
// @Router       /events [get]
// @Security     OAuth2Password
func (controller *EventsController) ListEvents(c echo.Context) error {
	userId := c.Get("UserID").(int64)

	events, err := controller.svc.EventsFor(c.Request().Context(), userId)
	if err != nil {
		c.Logger().Errorf("Failed to fetch events: %v", err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}

	response := make([]Event, len(events))
	for i, event := range events {
		response[i] = Event{
			ID:        event.ID,
			Name:      event.Name,
			CreatedAt: event.CreatedAt,
		}
	}
	return c.JSON(http.StatusOK, &ListEventsResponseBody{
		Success: true,
		Events:  response,
	})
}

// DeleteEvent godoc
// @Summary      Delete an event
// @Description  Removes the event and every message tagged with it
// @Produce      json
// @Tags         Event
// @Param        eventId  path      int  True  "Event id"
// @Success      200      {object}  SuccessResponseBody
// @Failure      401      {object}  responses.ErrorResponse
// @Failure      404      {object}  responses.ErrorResponse
// @Router       /events/{eventId} [delete]
// @Security     OAuth2Password
func (controller *EventsController) DeleteEvent(c echo.Context) error {
	userId := c.Get("UserID").(int64)

	eventId, err := strconv.ParseInt(c.Param("eventId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, responses.EventNotFoundError)
	}

	err = controller.svc.DeleteEvent(c.Request().Context(), userId, eventId)
	if err != nil {
		switch err {
		case service.ErrEventNotFound:
			return c.JSON(http.StatusNotFound, responses.EventNotFoundError)
		default:
			c.Logger().Errorf("Failed to delete event: %v", err)
			return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
		}
	}

	return c.JSON(http.StatusOK, &SuccessResponseBody{
		Success: true,
		Message: "Event and associated messages deleted successfully",
	})
}
