package clients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOpenMeteoCurrentWeather(t *testing.T) {
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{
			"current": {
				"temperature_2m": 18.5,
				"apparent_temperature": 17.2,
				"relative_humidity_2m": 62,
				"wind_speed_10m": 9.3,
				"weather_code": 2
			}
		}`))
	}))
	defer server.Close()

	client := NewOpenMeteoClient(server.URL)
	report, err := client.CurrentWeather(context.Background(), 40.7128, -74.0060)
	if err != nil {
		t.Fatalf("CurrentWeather returned error: %v", err)
	}

	if got := gotQuery["latitude"]; len(got) != 1 || got[0] != "40.7128" {
		t.Errorf("latitude param = %v", got)
	}
	if got := gotQuery["current"]; len(got) != 1 ||
		got[0] != "temperature_2m,apparent_temperature,relative_humidity_2m,wind_speed_10m,weather_code" {
		t.Errorf("current param = %v", got)
	}

	if report.Temperature != 18.5 || report.FeelsLike != 17.2 {
		t.Errorf("temperatures = %v/%v", report.Temperature, report.FeelsLike)
	}
	if report.Humidity != 62 || report.WindSpeed != 9.3 {
		t.Errorf("humidity/wind = %v/%v", report.Humidity, report.WindSpeed)
	}
	// Code 2 maps through the WMO table
	if report.Description != "Partly cloudy" || report.Icon != "⛅" {
		t.Errorf("description/icon = %q/%q", report.Description, report.Icon)
	}
	if report.Location != "40.7128, -74.0060" {
		t.Errorf("location = %q", report.Location)
	}
}

func TestOpenMeteoCurrentWeatherUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewOpenMeteoClient(server.URL)
	_, err := client.CurrentWeather(context.Background(), 40.7128, -74.0060)

	status, ok := UpstreamStatus(err)
	if !ok || status != http.StatusServiceUnavailable {
		t.Fatalf("err = %v, want UpstreamError with status 503", err)
	}
}
