package middleware

import (
	"fmt"
	"strings"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v2"
)

// Locals keys populated by TokenRequired.
const (
	LocalToken  = "token"
	LocalUserID = "user_id"
	LocalRole   = "role"
)

// TokenRequired is a Fiber middleware that extracts the bearer token the
// browser holds in storage and sends on every authenticated call. The token
// is not verified here: it was issued by the backend and every forwarded
// request is re-checked there. Claims are only decoded so role and user id
// are available for routing decisions.
func TokenRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header is required",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		tokenString := parts[1]
		c.Locals(LocalToken, tokenString)

		role, userID, err := readClaims(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid token",
				"error":   err.Error(),
			})
		}
		c.Locals(LocalRole, role)
		c.Locals(LocalUserID, userID)

		return c.Next()
	}
}

// RequireRole gates a route group to the given roles. It must run after
// TokenRequired.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(LocalRole).(string)
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": fmt.Sprintf("Role '%s' is not allowed to access this resource", role),
		})
	}
}

// Token returns the bearer token stashed by TokenRequired.
func Token(c *fiber.Ctx) string {
	token, _ := c.Locals(LocalToken).(string)
	return token
}

// readClaims decodes the token payload without verifying the signature and
// pulls out the role and user id claims.
func readClaims(tokenString string) (role string, userID string, err error) {
	parser := &jwt.Parser{}
	token, _, err := parser.ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return "", "", fmt.Errorf("failed to decode token claims: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", fmt.Errorf("unexpected token claims type")
	}

	if v, ok := claims["role"].(string); ok {
		role = v
	}
	switch v := claims["user_id"].(type) {
	case string:
		userID = v
	case float64:
		userID = fmt.Sprintf("%.0f", v)
	}
	return role, userID, nil
}
