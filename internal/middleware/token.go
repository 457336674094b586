package middleware

import (
	"BlogGolang/internal/entity"
	contextPkg "BlogGolang/pkg/context"
	jwtPkg "BlogGolang/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

func (m *middleware) unauthorized(ctx *fiber.Ctx, reason string) error {
	m.log.WithFields(logrus.Fields{
		"path":   ctx.Path(),
		"method": ctx.Method(),
		"reason": reason,
	}).Warn("Rejected request token")

	return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "Unauthorized, access token invalid or expired",
	})
}

// NewTokenMiddleware verifies the bearer token, rejects revoked tokens, and
// places the caller identity in Locals for downstream handlers. Fails
// closed on any verification error.
func (m *middleware) NewTokenMiddleware(ctx *fiber.Ctx) error {
	userToken, err := jwtPkg.VerifyTokenHeader(ctx)
	if err != nil {
		return m.unauthorized(ctx, err.Error())
	}

	claims, ok := userToken.Claims.(jwt.MapClaims)
	if !ok {
		return m.unauthorized(ctx, "invalid token claims")
	}

	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	if sub == "" || email == "" || role == "" {
		return m.unauthorized(ctx, "token claims are missing required fields")
	}

	if jti, _ := claims["jti"].(string); jti != "" && m.redisServer != nil {
		revoked, err := m.redisServer.IsTokenRevoked(contextPkg.FromFiberCtx(ctx), jti)
		if err != nil {
			// Degraded Redis only disables the denylist, signature and
			// expiry checks above still hold.
			m.log.WithFields(logrus.Fields{
				"error": err.Error(),
			}).Warn("Revocation lookup failed, continuing without denylist")
		} else if revoked {
			return m.unauthorized(ctx, "token has been revoked")
		}
	}

	ctx.Locals("user", entity.UserLoginData{
		ID:    sub,
		Email: email,
		Role:  role,
	})

	return ctx.Next()
}
