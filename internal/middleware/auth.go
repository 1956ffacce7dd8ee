package middleware

import (
	"net/http"
	"strings"

	"github.com/jefftrojan/afritrade-rev/internal/auth"
	"github.com/jefftrojan/afritrade-rev/internal/model"
	"github.com/labstack/echo/v4"
)

// SessionKey is the echo context key carrying the parsed *auth.Session.
const SessionKey = "session"

type AuthMiddleware struct {
	tokens *auth.Manager
}

func NewAuthMiddleware(tokens *auth.Manager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authz := c.Request().Header.Get("Authorization")
		if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		}
		sess, err := m.tokens.Parse(strings.TrimPrefix(authz, "Bearer "))
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid_token"})
		}
		c.Set(SessionKey, sess)
		return next(c)
	}
}

// RequireRole wraps RequireAuth and additionally checks the session role.
func (m *AuthMiddleware) RequireRole(role model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return m.RequireAuth(func(c echo.Context) error {
			sess, _ := c.Get(SessionKey).(*auth.Session)
			if sess == nil || sess.Role != role {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		})
	}
}
