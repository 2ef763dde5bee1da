package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sylvanlabs/sylvan-server/internal/services"
)

type PlacesHandler struct {
	service *services.PlacesService
}

func NewPlacesHandler(service *services.PlacesService) *PlacesHandler {
	return &PlacesHandler{service: service}
}

func SetupPlaceRoutes(router fiber.Router, service *services.PlacesService) {
	h := NewPlacesHandler(service)

	router.Post("/nearby-places", h.Nearby)
}

type nearbyPlacesRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// Nearby returns up to 3 nature spots around a coordinate. The endpoint
// always answers 200: a total upstream failure degrades to synthetic
// fallback data rather than an error.
func (h *PlacesHandler) Nearby(c *fiber.Ctx) error {
	var req nearbyPlacesRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
	}

	if req.Latitude == nil || req.Longitude == nil {
		return respondError(c, fiber.StatusBadRequest, "MISSING_COORDINATES", "latitude and longitude are required")
	}

	result := h.service.Nearby(c.UserContext(), *req.Latitude, *req.Longitude)

	return c.JSON(fiber.Map{
		"places": result.Places,
		"debug": fiber.Map{
			"source":      result.Source,
			"raw_results": result.RawResults,
			"queries":     result.Queries,
		},
	})
}
