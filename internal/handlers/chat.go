package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sylvanlabs/sylvan-server/internal/services"
)

type ChatHandler struct {
	service *services.ChatService
}

func NewChatHandler(service *services.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

func SetupChatRoutes(router fiber.Router, service *services.ChatService) {
	h := NewChatHandler(service)

	router.Post("/sessions", h.CreateSession)
	router.Get("/sessions", h.ListSessions)
	router.Get("/sessions/:id", h.GetSession)
	router.Delete("/sessions/:id", h.DeleteSession)
	router.Get("/sessions/:id/messages", h.GetMessages)
}

func (h *ChatHandler) CreateSession(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
	}

	var req services.CreateSessionRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return respondError(c, fiber.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
	}

	session, err := h.service.CreateSession(userID, &req)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, "SESSION_CREATE_FAILED", err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(session)
}

func (h *ChatHandler) ListSessions(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
	}

	sessions, err := h.service.ListSessions(userID)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, "SESSION_LIST_FAILED", err.Error())
	}

	return c.JSON(fiber.Map{"sessions": sessions})
}

func (h *ChatHandler) GetSession(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
	}

	session, err := h.service.GetSession(userID, c.Params("id"))
	if err != nil {
		return respondError(c, fiber.StatusNotFound, "SESSION_NOT_FOUND", err.Error())
	}

	return c.JSON(session)
}

func (h *ChatHandler) DeleteSession(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
	}

	if err := h.service.DeleteSession(userID, c.Params("id")); err != nil {
		if errors.Is(err, services.ErrSessionNotFound) {
			return respondError(c, fiber.StatusNotFound, "SESSION_NOT_FOUND", err.Error())
		}
		return respondError(c, fiber.StatusInternalServerError, "SESSION_DELETE_FAILED", err.Error())
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ChatHandler) GetMessages(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
	}

	messages, err := h.service.GetMessages(userID, c.Params("id"))
	if err != nil {
		return respondError(c, fiber.StatusNotFound, "SESSION_NOT_FOUND", err.Error())
	}

	return c.JSON(fiber.Map{"messages": messages})
}
