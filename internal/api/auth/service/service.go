package authService

import (
	"context"
	"os"
	"strings"
	"time"

	"AdvisoryAssistant/internal/api/auth"
	"AdvisoryAssistant/pkg/bcrypt"

	"github.com/sirupsen/logrus"
)

const defaultTokenTTL = 24 * time.Hour

type AuthService interface {
	Login(c context.Context, req auth.LoginRequest) (auth.LoginResponse, error)
}

// AdminAccount is the single operator allowed into the admin routes.
type AdminAccount struct {
	ID           string
	Email        string
	PasswordHash string
}

// AdminAccountFromEnv reads ADMIN_EMAIL and ADMIN_PASSWORD_HASH (a bcrypt
// hash). ADMIN_ID defaults to "admin".
func AdminAccountFromEnv() AdminAccount {
	id := os.Getenv("ADMIN_ID")
	if id == "" {
		id = "admin"
	}

	return AdminAccount{
		ID:           id,
		Email:        strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL"))),
		PasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
	}
}

func (a AdminAccount) configured() bool {
	return a.Email != "" && a.PasswordHash != ""
}

type authService struct {
	log         *logrus.Logger
	bcryptUtils bcrypt.IBcrypt
	admin       AdminAccount
	tokenTTL    time.Duration
}

func NewAuthService(log *logrus.Logger, bcryptUtils bcrypt.IBcrypt, admin AdminAccount) AuthService {
	return &authService{
		log:         log,
		bcryptUtils: bcryptUtils,
		admin:       admin,
		tokenTTL:    defaultTokenTTL,
	}
}
