package controller

import (
	"ai-workspace-be/internal/dto"
	"ai-workspace-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	Check(ctx *fiber.Ctx) error
}

type healthController struct {
	healthService service.IHealthService
}

func NewHealthController(healthService service.IHealthService) IHealthController {
	return &healthController{
		healthService: healthService,
	}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	r.Get("/health", c.Check)
}

func (c *healthController) Check(ctx *fiber.Ctx) error {
	res := c.healthService.Check(ctx.UserContext())

	status := fiber.StatusOK
	if res.Checks.Database.Status != dto.CheckOK {
		status = fiber.StatusServiceUnavailable
	}
	return ctx.Status(status).JSON(res)
}

func parseUUID(raw string) (uuid.UUID, error) {
	return uuid.Parse(raw)
}
