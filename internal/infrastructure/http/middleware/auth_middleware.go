package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/interview-assistant/pkg/jwt"
)

// TokenValidator validates bearer tokens
type TokenValidator interface {
	ValidateAccessToken(token string) (*jwt.Claims, error)
}

// EchoAuth returns an Echo middleware that validates JWT and sets
// "user_id" (uuid.UUID) and "claims" (*jwt.Claims) into Echo context
func EchoAuth(validator TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization token")
			}

			claims, err := validator.ValidateAccessToken(token)
			if err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					return echo.NewHTTPError(http.StatusUnauthorized, "Token expired")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}

			c.Set("claims", claims)
			c.Set("user_id", claims.UserID)

			return next(c)
		}
	}
}

// OptionalEchoAuth sets "user_id" when a valid token is present but doesn't require it
func OptionalEchoAuth(validator TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token := extractToken(c); token != "" {
				if claims, err := validator.ValidateAccessToken(token); err == nil {
					c.Set("claims", claims)
					c.Set("user_id", claims.UserID)
				}
			}
			return next(c)
		}
	}
}

func extractToken(c echo.Context) string {
	// Try Authorization header first
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		// Expected format: "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return parts[1]
		}
	}

	// Try cookie as fallback
	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie.Value
	}

	return ""
}
