package authService

import (
	"context"
	"errors"
	"strings"

	"AdvisoryAssistant/internal/api/auth"
	"AdvisoryAssistant/internal/entity"
	"AdvisoryAssistant/pkg/bcrypt"
	contextPkg "AdvisoryAssistant/pkg/context"
	jwtPkg "AdvisoryAssistant/pkg/jwt"

	"github.com/sirupsen/logrus"
)

func (s *authService) Login(c context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	requestID := contextPkg.GetRequestID(c)

	if !s.admin.configured() {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
		}).Warn("Admin login attempted without ADMIN_EMAIL and ADMIN_PASSWORD_HASH")
		return auth.LoginResponse{}, auth.ErrAdminNotConfigured
	}

	emailMatches := strings.EqualFold(strings.TrimSpace(req.Email), s.admin.Email)

	// The hash is compared even for an unknown email so both failures take
	// the same time.
	err := s.bcryptUtils.ComparePassword(s.admin.PasswordHash, req.Password)
	if err != nil && !errors.Is(err, bcrypt.ErrMismatch) {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Stored admin password hash is invalid")
		return auth.LoginResponse{}, err
	}

	if !emailMatches || err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"email":      req.Email,
		}).Warn("Admin login failed")
		return auth.LoginResponse{}, auth.ErrInvalidEmailOrPassword
	}

	token, expiresAt, err := jwtPkg.Sign(map[string]interface{}{
		"id":    s.admin.ID,
		"email": s.admin.Email,
		"role":  entity.RoleAdmin,
	}, s.tokenTTL)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to sign token")
		return auth.LoginResponse{}, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"admin_id":   s.admin.ID,
	}).Info("Admin logged in")

	return auth.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	}, nil
}
