package consultation

import (
	"net/http"

	"AdvisoryAssistant/pkg/response"
)

var (
	ErrConsultationNotFound  = response.NewError(http.StatusNotFound, "consultation not found")
	ErrDuplicateConsultation = response.NewError(http.StatusConflict, "a consultation for this email is already booked at that time")
	ErrPreferredTimeInPast   = response.NewError(http.StatusBadRequest, "preferred time must be in the future")
	ErrUnknownInterest       = response.NewError(http.StatusBadRequest, "interests must be known service keys")
	ErrStatusFinal           = response.NewError(http.StatusConflict, "consultation status can no longer be changed")
	ErrInvalidConsultationID = response.NewError(http.StatusBadRequest, "invalid consultation id")
)
