package assistant

import (
	"net/http"

	"AdvisoryAssistant/pkg/response"
)

var (
	ErrServiceNotFound     = response.NewError(http.StatusNotFound, "service not found")
	ErrGeneralInfoNotFound = response.NewError(http.StatusNotFound, "general information not found")
	ErrInvalidSessionID    = response.NewError(http.StatusBadRequest, "invalid session id")
	ErrEmptyMessage        = response.NewError(http.StatusBadRequest, "message must not be blank")
)
