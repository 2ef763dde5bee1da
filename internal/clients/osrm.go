package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/sylvanlabs/sylvan-server/internal/logger"
)

// Route is a computed route with geometry in (lat, lng) order.
type Route struct {
	Coordinates []LatLng `json:"coordinates"`
	Distance    float64  `json:"distance"` // meters
	Duration    float64  `json:"duration"` // seconds
}

// OSRMClient computes routes via an OSRM routing server.
type OSRMClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewOSRMClient(baseURL string) *OSRMClient {
	return &OSRMClient{
		baseURL:    baseURL,
		httpClient: newHTTPClient(),
	}
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Geometry struct {
			// GeoJSON pairs in (lng, lat) order
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
	} `json:"routes"`
}

var osrmProfiles = map[string]string{
	"walking": "foot",
	"cycling": "bike",
	"driving": "car",
}

// Route requests a route through the given waypoints. mode defaults to
// walking.
func (c *OSRMClient) Route(ctx context.Context, waypoints []LatLng, mode string) (*Route, error) {
	log := logger.GetLogger("osrm")

	profile, ok := osrmProfiles[mode]
	if !ok {
		profile = "foot"
	}

	// OSRM takes semicolon-separated lng,lat pairs in the path
	coords := make([]string, len(waypoints))
	for i, wp := range waypoints {
		coords[i] = fmt.Sprintf("%f,%f", wp.Longitude, wp.Latitude)
	}

	reqURL := fmt.Sprintf("%s/route/v1/%s/%s?overview=full&geometries=geojson",
		c.baseURL, profile, strings.Join(coords, ";"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		countUpstream("osrm", "error")
		return nil, fmt.Errorf("route request failed: %w", err)
	}
	defer resp.Body.Close()

	// OSRM reports "NoRoute" with a 400; decode the body before judging the
	// status so that case maps to ErrNoRoute rather than a generic failure.
	var body osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		countUpstream("osrm", strconv.Itoa(resp.StatusCode))
		if resp.StatusCode != http.StatusOK {
			return nil, &UpstreamError{Service: "osrm", Status: resp.StatusCode}
		}
		return nil, fmt.Errorf("failed to decode route response: %w", err)
	}
	countUpstream("osrm", strconv.Itoa(resp.StatusCode))

	if body.Code == "NoRoute" || (body.Code == "Ok" && len(body.Routes) == 0) {
		return nil, ErrNoRoute
	}
	if resp.StatusCode != http.StatusOK || body.Code != "Ok" {
		log.Warnf("routing failed (status=%d, code=%s)", resp.StatusCode, body.Code)
		return nil, &UpstreamError{Service: "osrm", Status: resp.StatusCode}
	}

	r := body.Routes[0]

	// Reorder GeoJSON (lng, lat) pairs into (lat, lng)
	coordinates := make([]LatLng, 0, len(r.Geometry.Coordinates))
	for _, pair := range r.Geometry.Coordinates {
		if len(pair) < 2 {
			continue
		}
		coordinates = append(coordinates, LatLng{Latitude: pair[1], Longitude: pair[0]})
	}

	return &Route{
		Coordinates: coordinates,
		Distance:    r.Distance,
		Duration:    r.Duration,
	}, nil
}
