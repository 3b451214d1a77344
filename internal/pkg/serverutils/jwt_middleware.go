package serverutils

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// JwtMiddleware rejects requests without a valid bearer token. The token
// subject is the authenticated identity.
func JwtMiddleware(ctx *fiber.Ctx) error {
	userID, ok := parseBearer(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Missing or invalid token"})
	}
	ctx.Locals("user_id", userID)
	return ctx.Next()
}

// OptionalJwtMiddleware resolves the identity when a valid bearer token is
// present and lets the request through either way. Routes that serve both
// guests and authenticated users sit behind this.
func OptionalJwtMiddleware(ctx *fiber.Ctx) error {
	if userID, ok := parseBearer(ctx); ok {
		ctx.Locals("user_id", userID)
	}
	return ctx.Next()
}

func parseBearer(ctx *fiber.Ctx) (string, bool) {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return "", false
	}
	tokenStr := authHeader[7:]

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return "", false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", false
	}
	return sub, true
}
