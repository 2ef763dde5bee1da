package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sylvanlabs/sylvan-server/internal/clients"
)

type RouteHandler struct {
	provider clients.RouteProvider
}

func NewRouteHandler(provider clients.RouteProvider) *RouteHandler {
	return &RouteHandler{provider: provider}
}

func SetupRouteRoutes(router fiber.Router, provider clients.RouteProvider) {
	h := NewRouteHandler(provider)

	router.Post("/calculate-route", h.CalculateRoute)
}

type routeRequest struct {
	Waypoints []clients.LatLng `json:"waypoints"`
	Mode      string           `json:"mode,omitempty"`
}

// CalculateRoute computes a route through two or more waypoints
func (h *RouteHandler) CalculateRoute(c *fiber.Ctx) error {
	var req routeRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
	}

	if len(req.Waypoints) < 2 {
		return respondError(c, fiber.StatusBadRequest, "INSUFFICIENT_WAYPOINTS", "at least 2 waypoints are required")
	}

	route, err := h.provider.Route(c.UserContext(), req.Waypoints, req.Mode)
	if err != nil {
		if errors.Is(err, clients.ErrNoRoute) {
			return respondError(c, fiber.StatusNotFound, "NO_ROUTE", "no route found between the given waypoints")
		}
		if status, ok := clients.UpstreamStatus(err); ok {
			return respondError(c, fiber.StatusInternalServerError, "UPSTREAM_ERROR",
				"routing engine returned status "+strconv.Itoa(status))
		}
		return respondError(c, fiber.StatusInternalServerError, "ROUTE_FAILED", err.Error())
	}

	return c.JSON(route)
}
