package jwtPkg

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"AdvisoryAssistant/internal/entity"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

const AdminLocalsKey = "admin"

var (
	ErrEmptyHeader       = errors.New("empty Authorization header")
	ErrInvalidFormat     = errors.New("invalid Authorization format")
	ErrSecretNotSet      = errors.New("JWT secret not configured")
	ErrMissingClaims     = errors.New("token claims are missing required fields")
	ErrInsufficientScope = errors.New("token does not grant admin access")
)

func Sign(data map[string]interface{}, expiresIn time.Duration) (string, int64, error) {
	expiredAt := time.Now().Add(expiresIn).Unix()

	secret := os.Getenv("JWT_ACCESS_TOKEN_SECRET")
	if secret == "" {
		return "", 0, fmt.Errorf("JWT_ACCESS_TOKEN_SECRET not set")
	}

	claims := jwt.MapClaims{}
	claims["exp"] = expiredAt
	claims["iat"] = time.Now().Unix()

	for k, v := range data {
		claims[k] = v
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	accessToken, err := token.SignedString([]byte(secret))
	if err != nil {
		logrus.WithError(err).Error("Failed to sign token")
		return "", 0, err
	}

	return accessToken, expiredAt, nil
}

func VerifyTokenHeader(c *fiber.Ctx, secretEnvKey string) (*jwt.Token, error) {
	header := c.Get("Authorization")
	if header == "" {
		return nil, ErrEmptyHeader
	}

	accessToken, ok := strings.CutPrefix(header, "Bearer ")
	accessToken = strings.TrimSpace(accessToken)
	if !ok || accessToken == "" {
		return nil, ErrInvalidFormat
	}

	secret := os.Getenv(secretEnvKey)
	if secret == "" {
		return nil, ErrSecretNotSet
	}

	return jwt.Parse(accessToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired())
}

// AdminFromClaims accepts only tokens carrying string id and email claims
// and the admin role.
func AdminFromClaims(claims jwt.MapClaims) (entity.AdminLoginData, error) {
	id, okID := claims["id"].(string)
	email, okEmail := claims["email"].(string)
	role, okRole := claims["role"].(string)
	if !okID || !okEmail || !okRole || id == "" || email == "" {
		return entity.AdminLoginData{}, ErrMissingClaims
	}
	if role != entity.RoleAdmin {
		return entity.AdminLoginData{}, ErrInsufficientScope
	}

	return entity.AdminLoginData{
		ID:    id,
		Email: email,
		Role:  role,
	}, nil
}

func GetAdminLoginData(c *fiber.Ctx) (entity.AdminLoginData, error) {
	admin, ok := c.Locals(AdminLocalsKey).(entity.AdminLoginData)
	if !ok {
		return entity.AdminLoginData{}, fiber.ErrUnauthorized
	}

	return admin, nil
}
