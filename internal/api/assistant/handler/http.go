package assistantHandler

import (
	assistantService "AdvisoryAssistant/internal/api/assistant/service"
	"AdvisoryAssistant/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

type AssistantHandler struct {
	log              *logrus.Logger
	validator        *validator.Validate
	middleware       middleware.Middleware
	assistantService assistantService.IAssistantService
}

func New(
	log *logrus.Logger,
	validator *validator.Validate,
	middleware middleware.Middleware,
	as assistantService.IAssistantService,
) *AssistantHandler {
	return &AssistantHandler{
		log:              log,
		validator:        validator,
		middleware:       middleware,
		assistantService: as,
	}
}

func (h *AssistantHandler) Start(srv fiber.Router) {
	wsMiddleware := func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}

	assistant := srv.Group("/assistant")
	assistant.Post("/chat", h.middleware.NewRateLimiter, h.HandleChat)
	assistant.Delete("/sessions/:id", h.HandleResetSession)
	assistant.Use("/ws", wsMiddleware)
	assistant.Get("/ws", h.middleware.NewRateLimiter, websocket.New(h.handleChatWebSocket))
	assistant.Get("/analytics", h.middleware.NewTokenMiddleware, h.HandleAnalytics)

	knowledge := srv.Group("/knowledge")
	knowledge.Get("/services", h.HandleListServices)
	knowledge.Get("/services/:key", h.HandleGetService)
	knowledge.Get("/general/:key", h.HandleGetGeneralInfo)
	knowledge.Get("/search", h.HandleSearch)
}
