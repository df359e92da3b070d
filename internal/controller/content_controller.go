package controller

import (
	"driven-coach-be/internal/pkg/serverutils"
	"driven-coach-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IContentController interface {
	RegisterRoutes(r fiber.Router)
	Reload(ctx *fiber.Ctx) error
}

type contentController struct {
	contentService service.IContentService
}

func NewContentController(contentService service.IContentService) IContentController {
	return &contentController{
		contentService: contentService,
	}
}

func (c *contentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/content/v1")
	h.Post("reload", c.Reload)
}

func (c *contentController) Reload(ctx *fiber.Ctx) error {
	res, err := c.contentService.Reload(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Content reloaded", res))
}
