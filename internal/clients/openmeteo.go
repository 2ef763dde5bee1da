package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sylvanlabs/sylvan-server/internal/logger"
)

// WeatherReport is the internal weather shape returned to the app.
type WeatherReport struct {
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feelsLike"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"windSpeed"`
	Location    string  `json:"location"`
}

// OpenMeteoClient fetches current conditions from the Open-Meteo API.
type OpenMeteoClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewOpenMeteoClient(baseURL string) *OpenMeteoClient {
	return &OpenMeteoClient{
		baseURL:    baseURL,
		httpClient: newHTTPClient(),
	}
}

type openMeteoResponse struct {
	Current struct {
		Temperature2m       float64 `json:"temperature_2m"`
		ApparentTemperature float64 `json:"apparent_temperature"`
		RelativeHumidity2m  int     `json:"relative_humidity_2m"`
		WindSpeed10m        float64 `json:"wind_speed_10m"`
		WeatherCode         int     `json:"weather_code"`
	} `json:"current"`
}

// CurrentWeather fetches current conditions at the given coordinate.
func (c *OpenMeteoClient) CurrentWeather(ctx context.Context, lat, lng float64) (*WeatherReport, error) {
	log := logger.GetLogger("open-meteo")

	reqURL := fmt.Sprintf("%s/v1/forecast", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(lng, 'f', -1, 64))
	q.Set("current", "temperature_2m,apparent_temperature,relative_humidity_2m,wind_speed_10m,weather_code")
	req.URL.RawQuery = q.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		countUpstream("open-meteo", "error")
		return nil, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		countUpstream("open-meteo", strconv.Itoa(resp.StatusCode))
		log.Warnf("weather API failed (status=%d)", resp.StatusCode)
		return nil, &UpstreamError{Service: "open-meteo", Status: resp.StatusCode}
	}
	countUpstream("open-meteo", "200")

	var body openMeteoResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode weather response: %w", err)
	}

	desc, icon := DescribeWeatherCode(body.Current.WeatherCode)

	return &WeatherReport{
		Temperature: body.Current.Temperature2m,
		FeelsLike:   body.Current.ApparentTemperature,
		Description: desc,
		Icon:        icon,
		Humidity:    body.Current.RelativeHumidity2m,
		WindSpeed:   body.Current.WindSpeed10m,
		Location:    fmt.Sprintf("%.4f, %.4f", lat, lng),
	}, nil
}
