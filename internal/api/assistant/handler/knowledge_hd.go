package assistantHandler

import (
	"AdvisoryAssistant/internal/api/assistant"
	contextPkg "AdvisoryAssistant/pkg/context"
	"AdvisoryAssistant/pkg/handlerUtil"

	"github.com/gofiber/fiber/v2"
)

func (h *AssistantHandler) HandleListServices(ctx *fiber.Ctx) error {
	errHandler := handlerUtil.New(h.log)
	res := h.assistantService.ListServices(contextPkg.FromFiberCtx(ctx))
	return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
}

func (h *AssistantHandler) HandleGetService(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	errHandler := handlerUtil.New(h.log)

	res, err := h.assistantService.GetService(contextPkg.FromFiberCtx(ctx), ctx.Params("key"))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_service")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
}

func (h *AssistantHandler) HandleGetGeneralInfo(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	errHandler := handlerUtil.New(h.log)

	res, err := h.assistantService.GetGeneralInfo(contextPkg.FromFiberCtx(ctx), ctx.Params("key"))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_general_info")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
}

func (h *AssistantHandler) HandleSearch(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	errHandler := handlerUtil.New(h.log)

	var req assistant.SearchRequest
	if err := ctx.QueryParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, fiber.ErrBadRequest, ctx.Path(), "parse_query")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	res := h.assistantService.Search(contextPkg.FromFiberCtx(ctx), req)
	return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
}
