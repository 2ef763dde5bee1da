package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sylvanlabs/sylvan-server/internal/config"
	"github.com/sylvanlabs/sylvan-server/internal/database"
	"github.com/sylvanlabs/sylvan-server/internal/services"
)

type AuthHandler struct {
	service *services.AuthService
}

func NewAuthHandler(db *database.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		service: services.NewAuthService(db, cfg),
	}
}

func SetupAuthRoutes(router fiber.Router, db *database.DB, cfg *config.Config) {
	h := NewAuthHandler(db, cfg)

	router.Post("/signup", h.Signup)
	router.Post("/login", h.Login)
	router.Post("/refresh", h.Refresh)
}

// Signup registers a new user
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req services.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
	}

	resp, err := h.service.Signup(&req)
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "SIGNUP_FAILED", err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Login authenticates with email and password
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req services.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
	}

	resp, err := h.service.Login(&req)
	if err != nil {
		return respondError(c, fiber.StatusUnauthorized, "LOGIN_FAILED", err.Error())
	}

	return c.JSON(resp)
}

// Refresh exchanges a refresh token for a new pair
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req services.RefreshTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
	}

	resp, err := h.service.Refresh(&req)
	if err != nil {
		return respondError(c, fiber.StatusUnauthorized, "REFRESH_FAILED", err.Error())
	}

	return c.JSON(resp)
}

// SetupUserRoutes registers the authenticated user endpoints
func SetupUserRoutes(router fiber.Router, db *database.DB, cfg *config.Config) {
	h := NewAuthHandler(db, cfg)

	router.Get("/me", h.Me)
}

// Me returns the authenticated user's profile
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
	}

	user, err := h.service.GetUser(userID)
	if err != nil {
		return respondError(c, fiber.StatusNotFound, "USER_NOT_FOUND", err.Error())
	}

	return c.JSON(user)
}
