package handler

import (
	"github.com/jefftrojan/afritrade-rev/internal/auth"
	"github.com/jefftrojan/afritrade-rev/internal/middleware"
	"github.com/labstack/echo/v4"
)

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the JSON error envelope. Detail duplicates the message
// under the key the auth screens read from response bodies.
type ErrorResponse struct {
	Error  errorPayload `json:"error"`
	Detail string       `json:"detail"`
}

func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: errorPayload{
			Code:    code,
			Message: message,
		},
		Detail: message,
	}
}

func sessionFrom(c echo.Context) *auth.Session {
	sess, _ := c.Get(middleware.SessionKey).(*auth.Session)
	return sess
}
