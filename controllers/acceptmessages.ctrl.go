package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shivxnshxrma/mysterymessages/lib/responses"
	"github.com/shivxnshxrma/mysterymessages/lib/service"
)

// AcceptMessagesController : Message acceptance gate controller struct
type AcceptMessagesController struct {
	svc *service.MessagesService
}

func NewAcceptMessagesController(svc *service.MessagesService) *AcceptMessagesController {
	return &AcceptMessagesController{svc: svc}
}

type AcceptMessagesRequestBody struct {
	AcceptMessages *bool `json:"acceptMessages" validate:"required"`
}

type AcceptMessagesResponseBody struct {
	Success             bool   `json:"success"`
	Message             string `json:"message,omitempty"`
	IsAcceptingMessages bool   `json:"isAcceptingMessages"`
}

// GetAcceptMessages godoc
// @Summary      Read the acceptance gate
// @Produce      json
// @Tags         Account
// @Success      200  {object}  AcceptMessagesResponseBody
// @Failure      401  {object}  responses.ErrorResponse
// @Router       /accept-messages [get]
// @Security     OAuth2Password
func (controller *AcceptMessagesController) GetAcceptMessages(c echo.Context) error {
	userId := c.Get("UserID").(int64)

	user, err := controller.svc.FindUser(c.Request().Context(), userId)
	if err != nil {
		if err == service.ErrUserNotFound {
			return c.JSON(http.StatusNotFound, responses.UserNotFoundError)
		}
		c.Logger().Errorf("Failed to fetch user: %v", err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}

	return c.JSON(http.StatusOK, &AcceptMessagesResponseBody{
		Success:             true,
		IsAcceptingMessages: user.AcceptingMessages,
	})
}

// SetAcceptMessages godoc
// @Summary      Flip the acceptance gate
// @Description  Controls whether new anonymous messages are accepted for this user
// @Accept       json
// @Produce      json
// @Tags         Account
// @Param        gate  body      AcceptMessagesRequestBody  True  "Gate"
// @Success      200   {object}  AcceptMessagesResponseBody
// @Failure      401   {object}  responses.ErrorResponse
// @Router       /accept-messages [post]
// @Security     OAuth2Password
func (controller *AcceptMessagesController) SetAcceptMessages(c echo.Context) error {
	userId := c.Get("UserID").(int64)

	var body AcceptMessagesRequestBody
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load accept messages request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	user, err := controller.svc.UpdateAcceptingMessages(c.Request().Context(), userId, *body.AcceptMessages)
	if err != nil {
		c.Logger().Errorf("Failed to update message acceptance: %v", err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}

	return c.JSON(http.StatusOK, &AcceptMessagesResponseBody{
		Success:             true,
		Message:             "Message acceptance status updated successfully",
		IsAcceptingMessages: user.AcceptingMessages,
	})
}
