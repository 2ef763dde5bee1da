package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sylvanlabs/sylvan-server/internal/logger"
)

// ErrMissingAPIKey indicates the trail search adapter was constructed
// without a RapidAPI key.
var ErrMissingAPIKey = errors.New("trail search API key not configured")

// TrailSearchParams filters a trail search around a coordinate.
type TrailSearchParams struct {
	Latitude    float64
	Longitude   float64
	RadiusMiles float64
	Activities  []string
	NumTrails   int
}

// Trail is one trail result.
type Trail struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	City        string  `json:"city"`
	Region      string  `json:"region"`
	LengthMiles float64 `json:"length_miles"`
	Description string  `json:"description"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// TrailSearchResult is the mapped trail search response.
type TrailSearchResult struct {
	Trails          []Trail `json:"trails"`
	AssumedLocation string  `json:"assumed_location"`
	Count           int     `json:"count"`
}

// AllTrailsClient searches trails through the RapidAPI trail catalog.
type AllTrailsClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewAllTrailsClient(baseURL, apiKey string) *AllTrailsClient {
	return &AllTrailsClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: newHTTPClient(),
	}
}

type trailAPIResponse struct {
	Places []struct {
		ID          int64   `json:"id"`
		Name        string  `json:"name"`
		City        string  `json:"city"`
		State       string  `json:"state"`
		Length      string  `json:"length"`
		Description string  `json:"description"`
		Lat         float64 `json:"lat,string"`
		Lon         float64 `json:"lon,string"`
	} `json:"places"`
}

// Search finds trails near the given coordinate.
func (c *AllTrailsClient) Search(ctx context.Context, params TrailSearchParams) (*TrailSearchResult, error) {
	log := logger.GetLogger("alltrails")

	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	radius := params.RadiusMiles
	if radius <= 0 {
		radius = 25
	}
	limit := params.NumTrails
	if limit <= 0 {
		limit = 10
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/activity/", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(params.Latitude, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(params.Longitude, 'f', -1, 64))
	q.Set("radius", strconv.FormatFloat(radius, 'f', -1, 64))
	q.Set("limit", strconv.Itoa(limit))
	for _, activity := range params.Activities {
		q.Add("q-activities_activity_type_name_eq", activity)
	}
	req.URL.RawQuery = q.Encode()

	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", req.URL.Host)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		countUpstream("alltrails", "error")
		return nil, fmt.Errorf("trail search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		countUpstream("alltrails", strconv.Itoa(resp.StatusCode))
		log.Warnf("trail search failed (status=%d)", resp.StatusCode)
		return nil, &UpstreamError{Service: "alltrails", Status: resp.StatusCode}
	}
	countUpstream("alltrails", "200")

	var body trailAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode trail response: %w", err)
	}

	trails := make([]Trail, 0, len(body.Places))
	for _, p := range body.Places {
		length, _ := strconv.ParseFloat(p.Length, 64)
		trails = append(trails, Trail{
			ID:          p.ID,
			Name:        p.Name,
			City:        p.City,
			Region:      p.State,
			LengthMiles: length,
			Description: p.Description,
			Latitude:    p.Lat,
			Longitude:   p.Lon,
		})
	}

	assumed := fmt.Sprintf("%.4f, %.4f", params.Latitude, params.Longitude)

	return &TrailSearchResult{
		Trails:          trails,
		AssumedLocation: assumed,
		Count:           len(trails),
	}, nil
}
