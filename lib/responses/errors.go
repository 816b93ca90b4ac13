package responses

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
)

// Every error leaves the API as this stable shape. HttpStatusCode is only
// used to pick the response status and is never serialized.
type ErrorResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	HttpStatusCode int    `json:"-"`
}

var GeneralServerError = ErrorResponse{
	Success:        false,
	Message:        "Something went wrong. Please try again later",
	HttpStatusCode: 500,
}

var BadArgumentsError = ErrorResponse{
	Success:        false,
	Message:        "Bad arguments",
	HttpStatusCode: 400,
}

var NotAuthenticatedError = ErrorResponse{
	Success:        false,
	Message:        "Not authenticated",
	HttpStatusCode: 401,
}

var UserNotFoundError = ErrorResponse{
	Success:        false,
	Message:        "User not found",
	HttpStatusCode: 404,
}

var EventNotFoundError = ErrorResponse{
	Success:        false,
	Message:        "Event not found or you are not the owner",
	HttpStatusCode: 404,
}

var NotAcceptingMessagesError = ErrorResponse{
	Success:        false,
	Message:        "User is currently not accepting the messages",
	HttpStatusCode: 403,
}

var RateLimitedError = ErrorResponse{
	Success:        false,
	Message:        "You are being rate limited.",
	HttpStatusCode: 429,
}

var EventIdRequiredError = ErrorResponse{
	Success:        false,
	Message:        "Event ID is required",
	HttpStatusCode: 400,
}

var EventNameTakenError = ErrorResponse{
	Success:        false,
	Message:        "An event with this name already exists. Please use a different name.",
	HttpStatusCode: 400,
}

var WeakPasswordError = ErrorResponse{
	Success:        false,
	Message:        "Password is too weak, please use a stronger password",
	HttpStatusCode: 400,
}

var AccountTakenError = ErrorResponse{
	Success:        false,
	Message:        "Username or email is already taken",
	HttpStatusCode: 400,
}

var IncorrectVerificationCodeError = ErrorResponse{
	Success:        false,
	Message:        "Incorrect verification code",
	HttpStatusCode: 400,
}

var ExpiredVerificationCodeError = ErrorResponse{
	Success:        false,
	Message:        "Verification code has expired, please sign up again to get a new code",
	HttpStatusCode: 400,
}

var BadAuthError = ErrorResponse{
	Success:        false,
	Message:        "bad auth",
	HttpStatusCode: 401,
}

func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	c.Logger().Error(err)
	if hub := sentryecho.GetHubFromContext(c); hub != nil && isErrAllowedForSentry(err) {
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetExtra("UserID", c.Get("UserID"))
			hub.CaptureException(err)
		})
	}
	if he, ok := err.(*echo.HTTPError); ok {
		c.JSON(he.Code, ErrorResponse{
			Success: false,
			Message: http.StatusText(he.Code),
		})
		return
	}
	c.JSON(http.StatusInternalServerError, GeneralServerError)
}

// auth failures are expected noise, everything else goes to Sentry
func isErrAllowedForSentry(err error) bool {
	he, ok := err.(*echo.HTTPError)
	if !ok {
		return true
	}
	return he.Code != http.StatusUnauthorized
}
