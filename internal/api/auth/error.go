package auth

import (
	"net/http"

	"AdvisoryAssistant/pkg/response"
)

var (
	ErrInvalidEmailOrPassword = response.NewError(http.StatusUnauthorized, "email or password is wrong")
	ErrAdminNotConfigured     = response.NewError(http.StatusServiceUnavailable, "admin login is not configured")
)
