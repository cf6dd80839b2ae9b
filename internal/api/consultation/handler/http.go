package consultationHandler

import (
	consultationService "AdvisoryAssistant/internal/api/consultation/service"
	"AdvisoryAssistant/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ConsultationHandler struct {
	log                 *logrus.Logger
	validator           *validator.Validate
	middleware          middleware.Middleware
	consultationService consultationService.IConsultationService
}

func New(
	log *logrus.Logger,
	validator *validator.Validate,
	middleware middleware.Middleware,
	cs consultationService.IConsultationService,
) *ConsultationHandler {
	return &ConsultationHandler{
		log:                 log,
		validator:           validator,
		middleware:          middleware,
		consultationService: cs,
	}
}

func (h *ConsultationHandler) Start(srv fiber.Router) {
	consultations := srv.Group("/consultations")
	consultations.Post("/", h.middleware.NewRateLimiter, h.HandleCreateConsultation)
	consultations.Get("/:id/invite", h.HandleDownloadInvite)
	consultations.Get("/", h.middleware.NewTokenMiddleware, h.HandleListConsultations)
	consultations.Patch("/:id/status", h.middleware.NewTokenMiddleware, h.HandleUpdateStatus)
}
