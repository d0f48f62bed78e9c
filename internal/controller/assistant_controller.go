package controller

import (
	"pos-intelligence-be/internal/dto"
	"pos-intelligence-be/internal/pkg/serverutils"
	"pos-intelligence-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAssistantController interface {
	RegisterRoutes(r fiber.Router)
	Ask(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	ClearSession(ctx *fiber.Ctx) error
}

type assistantController struct {
	assistantService service.IAssistantService
	historyWindow    int
}

func NewAssistantController(assistantService service.IAssistantService, historyWindow int) IAssistantController {
	return &assistantController{
		assistantService: assistantService,
		historyWindow:    historyWindow,
	}
}

func (c *assistantController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/assistant/v1")
	h.Post("ask", c.Ask)
	h.Get("session/:id/history", c.History)
	h.Delete("session/:id", c.ClearSession)
}

func (c *assistantController) Ask(ctx *fiber.Ctx) error {
	var req dto.AskRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.assistantService.Ask(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success process question", res))
}

func (c *assistantController) History(ctx *fiber.Ctx) error {
	sessionId := ctx.Params("id")
	window := ctx.QueryInt("window", c.historyWindow)

	res, err := c.assistantService.GetHistory(ctx.Context(), sessionId, window)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get history", res))
}

func (c *assistantController) ClearSession(ctx *fiber.Ctx) error {
	sessionId := ctx.Params("id")

	if err := c.assistantService.ClearSession(ctx.Context(), sessionId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success clear session", nil))
}
