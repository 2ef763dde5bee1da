package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// RawPlace is one element returned by the Overpass API.
type RawPlace struct {
	ID   int64   `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// OverpassClient queries OpenStreetMap data through an Overpass endpoint.
type OverpassClient struct {
	endpoint   string
	httpClient *http.Client
}

func NewOverpassClient(endpoint string) *OverpassClient {
	return &OverpassClient{
		endpoint:   endpoint,
		httpClient: newHTTPClient(),
	}
}

type overpassResponse struct {
	Elements []struct {
		ID   int64             `json:"id"`
		Lat  float64           `json:"lat"`
		Lon  float64           `json:"lon"`
		Tags map[string]string `json:"tags"`
	} `json:"elements"`
}

// Search runs one tagged node query around the origin and returns up to
// limit named results.
func (c *OverpassClient) Search(ctx context.Context, tag, value string, lat, lng float64, radiusM, limit int) ([]RawPlace, error) {
	query := fmt.Sprintf(
		`[out:json][timeout:10];node["%s"="%s"](around:%d,%f,%f);out body %d;`,
		tag, value, radiusM, lat, lng, limit,
	)

	form := url.Values{}
	form.Set("data", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		countUpstream("overpass", "error")
		return nil, fmt.Errorf("overpass request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		countUpstream("overpass", strconv.Itoa(resp.StatusCode))
		return nil, &UpstreamError{Service: "overpass", Status: resp.StatusCode}
	}
	countUpstream("overpass", "200")

	var body overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode overpass response: %w", err)
	}

	places := make([]RawPlace, 0, len(body.Elements))
	for _, el := range body.Elements {
		name := el.Tags["name"]
		if name == "" {
			continue
		}
		places = append(places, RawPlace{
			ID:   el.ID,
			Name: name,
			Lat:  el.Lat,
			Lng:  el.Lon,
		})
	}

	return places, nil
}
