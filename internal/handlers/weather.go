package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sylvanlabs/sylvan-server/internal/clients"
	"github.com/sylvanlabs/sylvan-server/internal/services"
)

type WeatherHandler struct {
	service *services.WeatherService
}

func NewWeatherHandler(service *services.WeatherService) *WeatherHandler {
	return &WeatherHandler{service: service}
}

func SetupWeatherRoutes(router fiber.Router, service *services.WeatherService) {
	h := NewWeatherHandler(service)

	router.Post("/weather", h.GetWeather)
}

type weatherRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// GetWeather returns current conditions for a coordinate, cached on a
// ~1.1km grid.
func (h *WeatherHandler) GetWeather(c *fiber.Ctx) error {
	var req weatherRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
	}

	if req.Latitude == nil || req.Longitude == nil {
		return respondError(c, fiber.StatusBadRequest, "MISSING_COORDINATES", "latitude and longitude are required")
	}

	report, cached, err := h.service.Get(c.UserContext(), *req.Latitude, *req.Longitude)
	if err != nil {
		if status, ok := clients.UpstreamStatus(err); ok {
			return respondError(c, fiber.StatusInternalServerError, "UPSTREAM_ERROR",
				"weather provider returned status "+strconv.Itoa(status))
		}
		return respondError(c, fiber.StatusInternalServerError, "WEATHER_FAILED", err.Error())
	}

	c.Set("X-Cache", cacheHeader(cached))
	return c.JSON(report)
}

func cacheHeader(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}
