package controllers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shivxnshxrma/mysterymessages/db/models"
	"github.com/shivxnshxrma/mysterymessages/lib/responses"
	"github.com/shivxnshxrma/mysterymessages/lib/service"
)

// AdminController : Admin controller struct
type AdminController struct {
	svc *service.MessagesService
}

func NewAdminController(svc *service.MessagesService) *AdminController {
	return &AdminController{svc: svc}
}

type AdminUser struct {
	ID                int64     `json:"id"`
	Username          string    `json:"username"`
	Email             string    `json:"email"`
	Verified          bool      `json:"verified"`
	AcceptingMessages bool      `json:"accepting_messages"`
	CreatedAt         time.Time `json:"created_at"`
}

type AdminListUsersResponseBody struct {
	Success bool        `json:"success"`
	Users   []AdminUser `json:"users"`
}

// ListUsers godoc
// @Summary      List all users
// @Description  Operator endpoint, guarded by the admin token
// @Produce      json
// @Tags         Admin
// @Success      200  {object}  AdminListUsersResponseBody
// @Failure      401  {object}  responses.ErrorResponse
// @Router       /admin/users [get]
func (controller *AdminController) ListUsers(c echo.Context) error {
	users := []models.User{}
	err := controller.svc.DB.NewSelect().Model(&users).
		OrderExpr("id ASC").
		Scan(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("Failed to list users: %v", err)
		return c.JSON(http.StatusInternalServerError, responses.GeneralServerError)
	}

	response := make([]AdminUser, len(users))
	for i, user := range users {
		response[i] = AdminUser{
			ID:                user.ID,
			Username:          user.Username,
			Email:             user.Email,
			Verified:          user.Verified,
			AcceptingMessages: user.AcceptingMessages,
			CreatedAt:         user.CreatedAt,
		}
	}
	return c.JSON(http.StatusOK, &AdminListUsersResponseBody{
		Success: true,
		Users:   response,
	})
}
