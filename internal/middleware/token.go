package middleware

import (
	"errors"

	jwtPkg "AdvisoryAssistant/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

const (
	AccessTokenSecret = "JWT_ACCESS_TOKEN_SECRET"
)

func (m *middleware) unauthorized(ctx *fiber.Ctx, reason string, err error) error {
	fields := logrus.Fields{
		"request_id": m.GetRequestID(ctx),
		"path":       ctx.Path(),
		"method":     ctx.Method(),
		"client_ip":  ctx.IP(),
		"reason":     reason,
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	m.log.WithFields(fields).Warn("Rejected admin request")

	return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "Unauthorized, access token invalid or expired",
	})
}

// NewTokenMiddleware admits only bearer tokens signed with the access token
// secret whose claims describe an admin.
func (m *middleware) NewTokenMiddleware(ctx *fiber.Ctx) error {
	token, err := jwtPkg.VerifyTokenHeader(ctx, AccessTokenSecret)
	if err != nil {
		return m.unauthorized(ctx, "token verification failed", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return m.unauthorized(ctx, "unexpected claims type", nil)
	}

	admin, err := jwtPkg.AdminFromClaims(claims)
	if err != nil {
		if errors.Is(err, jwtPkg.ErrInsufficientScope) {
			m.log.WithFields(logrus.Fields{
				"request_id": m.GetRequestID(ctx),
				"path":       ctx.Path(),
			}).Warn("Token lacks admin role")
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Forbidden",
			})
		}
		return m.unauthorized(ctx, "missing claims", err)
	}

	ctx.Locals(jwtPkg.AdminLocalsKey, admin)

	m.log.WithFields(logrus.Fields{
		"request_id": m.GetRequestID(ctx),
		"admin_id":   admin.ID,
	}).Debug("Admin authenticated")

	return ctx.Next()
}
