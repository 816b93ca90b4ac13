package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shivxnshxrma/mysterymessages/lib/responses"
	"github.com/shivxnshxrma/mysterymessages/lib/service"
)

// AuthController : AuthController struct
type AuthController struct {
	svc *service.MessagesService
}

func NewAuthController(svc *service.MessagesService) *AuthController {
	return &AuthController{
		svc: svc,
	}
}

type AuthRequestBody struct {
	Login        string `json:"login"`
	Password     string `json:"password"`
	RefreshToken string `json:"refresh_token"`
}
type AuthResponseBody struct {
	RefreshToken string `json:"refresh_token"`
	AccessToken  string `json:"access_token"`
}

// SuccessResponseBody is the stable acknowledgment shape shared by the
// write-style endpoints.
type SuccessResponseBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Auth godoc
// @Summary      Authenticate
// @Description  Exchanges credentials (username or email) or a refresh token for JWTs
// @Accept       json
// @Produce      json
// @Tags         Account
// @Param        credentials  body      AuthRequestBody  True  "Credentials"
// @Success      200          {object}  AuthResponseBody
// @Failure      400          {object}  responses.ErrorResponse
// @Failure      401          {object}  responses.ErrorResponse
// @Router       /auth [post]
func (controller *AuthController) Auth(c echo.Context) error {
	var body AuthRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load auth request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	accessToken, refreshToken, err := controller.svc.GenerateToken(c.Request().Context(), body.Login, body.Password, body.RefreshToken)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, responses.BadAuthError)
	}

	return c.JSON(http.StatusOK, &AuthResponseBody{
		RefreshToken: refreshToken,
		AccessToken:  accessToken,
	})
}
