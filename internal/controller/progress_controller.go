package controller

import (
	"errors"
	"strconv"

	"driven-coach-be/internal/dto"
	"driven-coach-be/internal/pkg/serverutils"
	"driven-coach-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IProgressController interface {
	RegisterRoutes(r fiber.Router)
	GetStatus(ctx *fiber.Ctx) error
	GetWeek(ctx *fiber.Ctx) error
	CheckUnlock(ctx *fiber.Ctx) error
}

type progressController struct {
	progressService service.IProgressService
}

func NewProgressController(progressService service.IProgressService) IProgressController {
	return &progressController{
		progressService: progressService,
	}
}

func (c *progressController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/progress/v1")
	h.Get("status", c.GetStatus)
	h.Get("week/:week_number", c.GetWeek)
	h.Post("check-unlock", c.CheckUnlock)
}

func (c *progressController) GetStatus(ctx *fiber.Ctx) error {
	sessionId := ctx.Query("session_id", "")
	if sessionId == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "session_id is required"))
	}

	res, err := c.progressService.GetProgress(ctx.Context(), sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Session progress", res))
}

func (c *progressController) GetWeek(ctx *fiber.Ctx) error {
	sessionId := ctx.Query("session_id", "")
	if sessionId == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "session_id is required"))
	}
	weekNumber, err := strconv.Atoi(ctx.Params("week_number"))
	if err != nil || weekNumber < 1 {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "week_number must be a positive integer"))
	}

	res, err := c.progressService.GetWeekProgress(ctx.Context(), sessionId, weekNumber)
	if err != nil {
		if errors.Is(err, service.ErrWeekNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Week not found"))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Week progress", res))
}

func (c *progressController) CheckUnlock(ctx *fiber.Ctx) error {
	var req dto.CheckUnlockRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.progressService.CheckUnlock(ctx.Context(), req.SessionId, req.WeekNumber)
	if err != nil {
		if errors.Is(err, service.ErrWeekNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Week not found"))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Unlock status", res))
}
