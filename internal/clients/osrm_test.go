package clients

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOSRMRoute(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"code": "Ok",
			"routes": [{
				"geometry": {"coordinates": [[-74.0060, 40.7128], [-74.0050, 40.7140]]},
				"distance": 182.4,
				"duration": 131.0
			}]
		}`))
	}))
	defer server.Close()

	client := NewOSRMClient(server.URL)
	route, err := client.Route(context.Background(), []LatLng{
		{Latitude: 40.7128, Longitude: -74.0060},
		{Latitude: 40.7140, Longitude: -74.0050},
	}, "walking")
	if err != nil {
		t.Fatalf("Route returned error: %v", err)
	}

	if !strings.HasPrefix(gotPath, "/route/v1/foot/") {
		t.Errorf("request path = %q, want the foot profile", gotPath)
	}
	// Waypoints go out as lng,lat in the path
	if !strings.Contains(gotPath, "-74.006000,40.712800") {
		t.Errorf("request path %q missing lng,lat waypoint", gotPath)
	}

	if len(route.Coordinates) != 2 {
		t.Fatalf("got %d coordinates, want 2", len(route.Coordinates))
	}
	// GeoJSON pairs come back reordered to (lat, lng)
	first := route.Coordinates[0]
	if first.Latitude != 40.7128 || first.Longitude != -74.0060 {
		t.Errorf("first coordinate = %+v, want lat 40.7128 lng -74.0060", first)
	}
	if route.Distance != 182.4 || route.Duration != 131.0 {
		t.Errorf("distance/duration = %v/%v", route.Distance, route.Duration)
	}
}

func TestOSRMRouteUnknownModeDefaultsToFoot(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"code":"Ok","routes":[{"geometry":{"coordinates":[]},"distance":0,"duration":0}]}`))
	}))
	defer server.Close()

	client := NewOSRMClient(server.URL)
	if _, err := client.Route(context.Background(), []LatLng{{}, {}}, "teleport"); err != nil {
		t.Fatalf("Route returned error: %v", err)
	}
	if !strings.HasPrefix(gotPath, "/route/v1/foot/") {
		t.Errorf("request path = %q, want the foot profile", gotPath)
	}
}

func TestOSRMRouteNoRoute(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// OSRM answers NoRoute with a 400 and a JSON body
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":"NoRoute","routes":[]}`))
	}))
	defer server.Close()

	client := NewOSRMClient(server.URL)
	_, err := client.Route(context.Background(), []LatLng{
		{Latitude: 40.7128, Longitude: -74.0060},
		{Latitude: -33.8688, Longitude: 151.2093},
	}, "walking")

	if !errors.Is(err, ErrNoRoute) {
		t.Fatalf("err = %v, want ErrNoRoute", err)
	}
}

func TestOSRMRouteUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("bad gateway"))
	}))
	defer server.Close()

	client := NewOSRMClient(server.URL)
	_, err := client.Route(context.Background(), []LatLng{{}, {}}, "walking")

	status, ok := UpstreamStatus(err)
	if !ok || status != http.StatusBadGateway {
		t.Fatalf("err = %v, want UpstreamError with status 502", err)
	}
}
