package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	usecaseErrors "github.com/johnquangdev/interview-assistant/internal/usecase/errors"
	"github.com/johnquangdev/interview-assistant/internal/usecase/interview"
)

// SessionDetailKey is the echo context key holding the owner-checked *interview.SessionDetail
const SessionDetailKey = "session_detail"

// SessionFinder loads a session scoped to its owner
type SessionFinder interface {
	GetSession(ctx context.Context, ownerID, sessionID uuid.UUID) (*interview.SessionDetail, error)
}

// RequireSessionOwner middleware: only allow the session's creator.
// Other users get the same 404 as for a missing session.
func RequireSessionOwner(sessions SessionFinder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sessionID, err := uuid.Parse(c.Param("id"))
			if err != nil {
				return c.JSON(http.StatusBadRequest, map[string]interface{}{
					"error":   "invalid_session_id",
					"message": "session ID must be a valid UUID",
				})
			}
			userID, ok := c.Get("user_id").(uuid.UUID)
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"error":   "unauthorized",
					"message": "user not authenticated",
				})
			}
			detail, err := sessions.GetSession(c.Request().Context(), userID, sessionID)
			if err != nil {
				if errors.Is(err, usecaseErrors.ErrNotFound) {
					return c.JSON(http.StatusNotFound, map[string]interface{}{
						"error":   "session_not_found",
						"message": "session not found",
					})
				}
				return err
			}
			c.Set(SessionDetailKey, detail)
			return next(c)
		}
	}
}
