package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shivxnshxrma/mysterymessages/lib/responses"
	"github.com/shivxnshxrma/mysterymessages/lib/service"
)

// CreateUserController : Create user controller struct
type CreateUserController struct {
	svc *service.MessagesService
}

func NewCreateUserController(svc *service.MessagesService) *CreateUserController {
	return &CreateUserController{svc: svc}
}

type CreateUserRequestBody struct {
	Username string `json:"username" validate:"required,min=2,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type CreateUserResponseBody struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Username string `json:"username"`
}

// CreateUser godoc
// @Summary      Register a new user
// @Description  Creates an unverified account and issues a verification code
// @Accept       json
// @Produce      json
// @Tags         Account
// @Param        account  body      CreateUserRequestBody  True  "Create User"
// @Success      200      {object}  CreateUserResponseBody
// @Failure      400      {object}  responses.ErrorResponse
// @Failure      500      {object}  responses.ErrorResponse
// @Router       /signup [post]
func (controller *CreateUserController) CreateUser(c echo.Context) error {
	var body CreateUserRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load create user request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	user, err := controller.svc.CreateUser(c.Request().Context(), body.Username, body.Email, body.Password)
	if err != nil {
		switch err {
		case service.ErrAccountTaken:
			return c.JSON(http.StatusBadRequest, responses.AccountTakenError)
		case service.ErrWeakPassword:
			return c.JSON(http.StatusBadRequest, responses.WeakPasswordError)
		default:
			c.Logger().Errorf("Failed to create user: %v", err)
			return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
		}
	}

	return c.JSON(http.StatusOK, &CreateUserResponseBody{
		Success:  true,
		Message:  "User registered successfully. Please verify your account.",
		Username: user.Username,
	})
}
