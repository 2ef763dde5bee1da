package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sylvanlabs/sylvan-server/internal/clients"
)

type TrailsHandler struct {
	searcher clients.TrailSearcher
}

func NewTrailsHandler(searcher clients.TrailSearcher) *TrailsHandler {
	return &TrailsHandler{searcher: searcher}
}

func SetupTrailRoutes(router fiber.Router, searcher clients.TrailSearcher) {
	h := NewTrailsHandler(searcher)

	router.Post("/trails/search", h.Search)
}

type trailSearchRequest struct {
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	RadiusMiles float64  `json:"radiusMiles,omitempty"`
	Activities  []string `json:"activities,omitempty"`
	NumTrails   int      `json:"numTrails,omitempty"`
}

// Search finds trails near a coordinate
func (h *TrailsHandler) Search(c *fiber.Ctx) error {
	var req trailSearchRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
	}

	if req.Latitude == nil || req.Longitude == nil {
		return respondError(c, fiber.StatusBadRequest, "MISSING_COORDINATES", "latitude and longitude are required")
	}

	result, err := h.searcher.Search(c.UserContext(), clients.TrailSearchParams{
		Latitude:    *req.Latitude,
		Longitude:   *req.Longitude,
		RadiusMiles: req.RadiusMiles,
		Activities:  req.Activities,
		NumTrails:   req.NumTrails,
	})
	if err != nil {
		if errors.Is(err, clients.ErrMissingAPIKey) {
			return respondError(c, fiber.StatusInternalServerError, "CONFIG_ERROR", err.Error())
		}
		if status, ok := clients.UpstreamStatus(err); ok {
			return respondError(c, fiber.StatusInternalServerError, "UPSTREAM_ERROR",
				"trail provider returned status "+strconv.Itoa(status))
		}
		return respondError(c, fiber.StatusInternalServerError, "TRAIL_SEARCH_FAILED", err.Error())
	}

	return c.JSON(result)
}
