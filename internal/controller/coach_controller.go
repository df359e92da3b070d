package controller

import (
	"errors"
	"strconv"

	"driven-coach-be/internal/constant"
	"driven-coach-be/internal/dto"
	"driven-coach-be/internal/pkg/logger"
	"driven-coach-be/internal/pkg/serverutils"
	"driven-coach-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICoachController interface {
	RegisterRoutes(r fiber.Router)
	StartWeek(ctx *fiber.Ctx) error
	SubmitAnswer(ctx *fiber.Ctx) error
	GetNextQuestion(ctx *fiber.Ctx) error
}

type coachController struct {
	coachService service.ICoachService
	log          logger.ILogger
}

func NewCoachController(coachService service.ICoachService, log logger.ILogger) ICoachController {
	return &coachController{
		coachService: coachService,
		log:          log,
	}
}

func (c *coachController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/coach/v1")
	h.Post("week/start", c.StartWeek)
	h.Post("answer", c.SubmitAnswer)
	h.Get("next", c.GetNextQuestion)
}

func (c *coachController) StartWeek(ctx *fiber.Ctx) error {
	var req dto.StartWeekRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.coachService.StartWeek(ctx.Context(), &req)
	if err != nil {
		return c.coachError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Week started", res))
}

func (c *coachController) SubmitAnswer(ctx *fiber.Ctx) error {
	var req dto.SubmitAnswerRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.coachService.SubmitAnswer(ctx.Context(), &req)
	if err != nil {
		return c.coachError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Answer processed", res))
}

func (c *coachController) GetNextQuestion(ctx *fiber.Ctx) error {
	sessionId := ctx.Query("session_id", "")
	if sessionId == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "session_id is required"))
	}
	weekNumber, err := strconv.Atoi(ctx.Query("week_number", ""))
	if err != nil || weekNumber < 1 {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "week_number must be a positive integer"))
	}

	res, err := c.coachService.GetNextQuestion(ctx.Context(), sessionId, weekNumber)
	if err != nil {
		return c.coachError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Next question", res))
}

// coachError maps domain errors onto HTTP statuses. Anything unmapped is a
// fatal turn failure: the detail goes to the log, the user gets the generic
// apology.
func (c *coachController) coachError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrTurnInProgress):
		return ctx.Status(fiber.StatusConflict).JSON(serverutils.ErrorResponse(409, "A turn is already in progress for this session"))
	case errors.Is(err, service.ErrQuestionNotCurrent):
		return ctx.Status(fiber.StatusConflict).JSON(serverutils.ErrorResponse(409, "Question is not the session's current question"))
	case errors.Is(err, service.ErrWeekLocked):
		return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(403, "Week is locked until the previous week is complete"))
	case errors.Is(err, service.ErrWeekNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Week not found"))
	case errors.Is(err, service.ErrUnknownQuestion):
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Question not found"))
	case errors.Is(err, service.ErrCompletionUnavailable):
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(serverutils.ErrorResponse(503, "Language model unavailable, please try again"))
	default:
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return err
		}
		c.log.Error("coach", "unhandled turn error", map[string]interface{}{
			"path":  ctx.Path(),
			"error": err.Error(),
		})
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, constant.ApologyMessage))
	}
}
