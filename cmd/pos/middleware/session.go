package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/storeline/pos/cmd/pos/models"
	"github.com/storeline/pos/cmd/pos/service"
)

// SessionKey is the echo context key holding the caller's Session
const SessionKey = "session"

// UserIDKey is the echo context key holding the caller's user id as a
// string, read by the rate-limit middleware
const UserIDKey = "user_id"

// RequireSession authenticates the X-User-ID header against the user
// store and attaches a Session to the request. Requests without a valid,
// active account are rejected; roles and permissions are the service
// layer's concern.
func RequireSession(users *service.UserService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("X-User-ID")
			if header == "" {
				return c.JSON(http.StatusUnauthorized, map[string]any{
					"error": "X-User-ID header is required",
				})
			}

			userID, err := uuid.Parse(header)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]any{
					"error": "X-User-ID must be a valid user id",
				})
			}

			user, err := users.GetUser(c.Request().Context(), userID)
			if err != nil || !user.IsActive {
				return c.JSON(http.StatusUnauthorized, map[string]any{
					"error": "unknown or inactive user",
				})
			}

			session := models.Session{
				UserID:      user.ID.String(),
				DisplayName: user.DisplayName,
				Role:        user.Role,
			}

			c.Set(SessionKey, session)
			c.Set(UserIDKey, session.UserID)

			return next(c)
		}
	}
}

// GetSession retrieves the Session attached by RequireSession. The zero
// Session (viewer with no id) comes back if the middleware did not run.
func GetSession(c echo.Context) models.Session {
	if session, ok := c.Get(SessionKey).(models.Session); ok {
		return session
	}
	return models.Session{}
}
