package assistantHandler

import (
	"time"

	"AdvisoryAssistant/internal/api/assistant"
	contextPkg "AdvisoryAssistant/pkg/context"
	"AdvisoryAssistant/pkg/handlerUtil"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

const defaultAnalyticsDays = 7

func (h *AssistantHandler) HandleAnalytics(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req assistant.AnalyticsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, fiber.ErrBadRequest, ctx.Path(), "parse_query")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if req.Days == 0 {
		req.Days = defaultAnalyticsDays
	}

	since := time.Now().AddDate(0, 0, -req.Days)
	res, err := h.assistantService.Analytics(c, since)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "analytics")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
	}
}
