package auth

import (
	"strings"

	"mbaymi-backend/internal/config"

	"github.com/gofiber/fiber/v2"
)

const (
	CtxUserIDKey   = "user_id"
	CtxUserRoleKey = "user_role"
)

// JWTMiddleware requires a valid bearer access token and stores the caller in
// the request locals.
func JWTMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing Authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization must be 'Bearer <token>'")
		}

		claims, err := ParseToken(cfg.JWTSecret, parts[1], AccessToken)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
		}

		c.Locals(CtxUserIDKey, claims.UserID)
		c.Locals(CtxUserRoleKey, claims.Role)

		return c.Next()
	}
}

// CurrentUserID returns the authenticated user, if any.
func CurrentUserID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals(CtxUserIDKey).(uint)
	return id, ok && id > 0
}

// OptionalJWT records the caller when a valid access token is present and lets
// anonymous requests through untouched.
func OptionalJWT(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		parts := strings.SplitN(c.Get("Authorization"), " ", 2)
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			if claims, err := ParseToken(cfg.JWTSecret, parts[1], AccessToken); err == nil {
				c.Locals(CtxUserIDKey, claims.UserID)
				c.Locals(CtxUserRoleKey, claims.Role)
			}
		}
		return c.Next()
	}
}
