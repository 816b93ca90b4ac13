package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shivxnshxrma/mysterymessages/lib/responses"
	"github.com/shivxnshxrma/mysterymessages/lib/service"
)

// VerifyController : Account verification controller struct
type VerifyController struct {
	svc *service.MessagesService
}

func NewVerifyController(svc *service.MessagesService) *VerifyController {
	return &VerifyController{svc: svc}
}

type VerifyRequestBody struct {
	Username string `json:"username" validate:"required"`
	Code     string `json:"code" validate:"required,len=6"`
}

// Verify godoc
// @Summary      Verify an account
// @Description  Confirms the 6 digit verification code issued at sign up
// @Accept       json
// @Produce      json
// @Tags         Account
// @Param        verification  body      VerifyRequestBody  True  "Verification"
// @Success      200           {object}  SuccessResponseBody
// @Failure      400           {object}  responses.ErrorResponse
// @Failure      404           {object}  responses.ErrorResponse
// @Router       /verify [post]
func (controller *VerifyController) Verify(c echo.Context) error {
	var body VerifyRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load verify request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	err := controller.svc.VerifyUser(c.Request().Context(), body.Username, body.Code)
	if err != nil {
		switch err {
		case service.ErrUserNotFound:
			return c.JSON(http.StatusNotFound, responses.UserNotFoundError)
		case service.ErrIncorrectCode:
			return c.JSON(http.StatusBadRequest, responses.IncorrectVerificationCodeError)
		case service.ErrExpiredCode:
			return c.JSON(http.StatusBadRequest, responses.ExpiredVerificationCodeError)
		default:
			c.Logger().Errorf("Failed to verify user: %v", err)
			return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
		}
	}

	return c.JSON(http.StatusOK, &SuccessResponseBody{
		Success: true,
		Message: "Account verified successfully",
	})
}
