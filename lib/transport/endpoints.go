package transport

import (
	"github.com/labstack/echo/v4"
	"github.com/shivxnshxrma/mysterymessages/controllers"
	"github.com/shivxnshxrma/mysterymessages/lib/service"
)

func RegisterEndpoints(svc *service.MessagesService, e *echo.Echo, secured *echo.Group, strictRateLimitMiddleware echo.MiddlewareFunc, adminMw echo.MiddlewareFunc, logMw echo.MiddlewareFunc) {
	if svc.Config.AllowAccountCreation {
		e.POST("/signup", controllers.NewCreateUserController(svc).CreateUser, strictRateLimitMiddleware, logMw)
	}
	//require admin token for the operator user listing
	if svc.Config.AdminToken != "" {
		e.GET("/admin/users", controllers.NewAdminController(svc).ListUsers, adminMw, logMw)
	}
	e.POST("/verify", controllers.NewVerifyController(svc).Verify, strictRateLimitMiddleware, logMw)
	e.POST("/auth", controllers.NewAuthController(svc).Auth, logMw)

	// anonymous ingestion, the sliding window check happens in the service
	e.POST("/send-message", controllers.NewSendMessageController(svc).SendMessage, logMw)

	// public event lookup for the send page, served from cache
	cacheClient := CreateCacheClient()
	e.GET("/event-details", controllers.NewEventDetailsController(svc).GetEventDetails, cacheClient.Middleware(), logMw)

	eventsCtrl := controllers.NewEventsController(svc)
	acceptCtrl := controllers.NewAcceptMessagesController(svc)

	secured.GET("/messages", controllers.NewGetMessagesController(svc).GetMessages)
	secured.GET("/accept-messages", acceptCtrl.GetAcceptMessages)
	secured.POST("/accept-messages", acceptCtrl.SetAcceptMessages)
	secured.POST("/events", eventsCtrl.CreateEvent)
	secured.GET("/events", eventsCtrl.ListEvents)
	secured.DELETE("/events/:eventId", eventsCtrl.DeleteEvent)
}
