package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sylvanlabs/sylvan-server/internal/services"
)

type ExcursionHandler struct {
	service *services.ExcursionService
}

func NewExcursionHandler(service *services.ExcursionService) *ExcursionHandler {
	return &ExcursionHandler{service: service}
}

func SetupExcursionRoutes(router fiber.Router, service *services.ExcursionService) {
	h := NewExcursionHandler(service)

	router.Post("/", h.Create)
	router.Get("/", h.List)
	router.Get("/:id", h.Get)
	router.Patch("/:id", h.Update)
}

func (h *ExcursionHandler) Create(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
	}

	var req services.CreateExcursionRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
	}

	excursion, err := h.service.Create(userID, &req)
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "EXCURSION_CREATE_FAILED", err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(excursion)
}

func (h *ExcursionHandler) List(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
	}

	excursions, err := h.service.List(userID)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, "EXCURSION_LIST_FAILED", err.Error())
	}

	return c.JSON(fiber.Map{"excursions": excursions})
}

func (h *ExcursionHandler) Get(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "INVALID_REQUEST", "invalid excursion id")
	}

	excursion, err := h.service.Get(userID, uint(id))
	if err != nil {
		return respondError(c, fiber.StatusNotFound, "EXCURSION_NOT_FOUND", err.Error())
	}

	return c.JSON(excursion)
}

func (h *ExcursionHandler) Update(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "INVALID_REQUEST", "invalid excursion id")
	}

	var req services.UpdateExcursionRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
	}

	excursion, err := h.service.Update(userID, uint(id), &req)
	if err != nil {
		if errors.Is(err, services.ErrExcursionNotFound) {
			return respondError(c, fiber.StatusNotFound, "EXCURSION_NOT_FOUND", err.Error())
		}
		return respondError(c, fiber.StatusBadRequest, "EXCURSION_UPDATE_FAILED", err.Error())
	}

	return c.JSON(excursion)
}
