package consultation

import (
	"time"

	"AdvisoryAssistant/internal/entity"
)

const (
	DefaultDurationMinutes = 30
	DefaultPageSize        = 20
	DefaultTimezone        = "UTC"
)

type CreateConsultationRequest struct {
	Name            string    `json:"name" validate:"required,min=2,max=120"`
	Email           string    `json:"email" validate:"required,email,max=254"`
	Company         string    `json:"company" validate:"required,max=200"`
	FirmType        string    `json:"firm_type" validate:"required,oneof=hedge_fund private_equity venture_capital family_office other"`
	Phone           string    `json:"phone" validate:"omitempty,e164"`
	Interests       []string  `json:"interests" validate:"required,min=1,max=5,dive,required"`
	PreferredTime   time.Time `json:"preferred_time" validate:"required"`
	DurationMinutes int       `json:"duration_minutes" validate:"omitempty,min=15,max=120"`
	Timezone        string    `json:"timezone" validate:"omitempty,timezone"`
	Message         string    `json:"message" validate:"max=2000"`
}

type CreateConsultationResponse struct {
	ID            string                    `json:"id"`
	Status        entity.ConsultationStatus `json:"status"`
	Channel       entity.InviteChannel      `json:"channel,omitempty"`
	InviteURL     string                    `json:"invite_url,omitempty"`
	DeliveryError string                    `json:"delivery_error,omitempty"`
}

type ListConsultationsRequest struct {
	Page   int    `query:"page" validate:"min=0"`
	Limit  int    `query:"limit" validate:"min=0,max=100"`
	Status string `query:"status" validate:"omitempty,oneof=pending scheduled emailed completed cancelled"`
}

type ListConsultationsResponse struct {
	Items []ConsultationResponse `json:"items"`
	Page  int                    `json:"page"`
	Limit int                    `json:"limit"`
	Total int64                  `json:"total"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending scheduled completed cancelled"`
}

type ConsultationResponse struct {
	ID              string                    `json:"id"`
	Name            string                    `json:"name"`
	Email           string                    `json:"email"`
	Company         string                    `json:"company"`
	FirmType        string                    `json:"firm_type"`
	Phone           string                    `json:"phone,omitempty"`
	Interests       []string                  `json:"interests"`
	Message         string                    `json:"message,omitempty"`
	Timezone        string                    `json:"timezone"`
	PreferredTime   time.Time                 `json:"preferred_time"`
	DurationMinutes int                       `json:"duration_minutes"`
	Status          entity.ConsultationStatus `json:"status"`
	Channel         entity.InviteChannel      `json:"channel,omitempty"`
	EventID         string                    `json:"event_id,omitempty"`
	CreatedAt       time.Time                 `json:"created_at"`
	UpdatedAt       time.Time                 `json:"updated_at"`
}

func ToResponse(c entity.Consultation) ConsultationResponse {
	return ConsultationResponse{
		ID:              c.ID,
		Name:            c.Name,
		Email:           c.Email,
		Company:         c.Company,
		FirmType:        c.FirmType,
		Phone:           c.Phone,
		Interests:       c.Interests,
		Message:         c.Message,
		Timezone:        c.Timezone,
		PreferredTime:   c.PreferredAt,
		DurationMinutes: int(c.Duration / time.Minute),
		Status:          c.Status,
		Channel:         c.Channel,
		EventID:         c.EventID,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

type InviteFile struct {
	Filename    string
	ContentType string
	Body        []byte
}
