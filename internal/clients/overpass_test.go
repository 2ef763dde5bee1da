package clients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOverpassSearch(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("failed to parse form: %v", err)
		}
		gotQuery = r.FormValue("data")
		w.Write([]byte(`{
			"elements": [
				{"id": 101, "lat": 40.72, "lon": -74.00, "tags": {"name": "Central Green"}},
				{"id": 102, "lat": 40.73, "lon": -74.01, "tags": {}},
				{"id": 103, "lat": 40.74, "lon": -74.02, "tags": {"name": "Hilltop Park"}}
			]
		}`))
	}))
	defer server.Close()

	client := NewOverpassClient(server.URL)
	places, err := client.Search(context.Background(), "leisure", "park", 40.7128, -74.0060, 5000, 5)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}

	if !strings.Contains(gotQuery, `node["leisure"="park"]`) {
		t.Errorf("query %q missing tag filter", gotQuery)
	}
	if !strings.Contains(gotQuery, "around:5000") {
		t.Errorf("query %q missing radius", gotQuery)
	}
	if !strings.Contains(gotQuery, "out body 5") {
		t.Errorf("query %q missing limit", gotQuery)
	}

	// Unnamed element 102 is dropped
	if len(places) != 2 {
		t.Fatalf("got %d places, want 2", len(places))
	}
	if places[0].ID != 101 || places[0].Name != "Central Green" {
		t.Errorf("places[0] = %+v", places[0])
	}
	if places[1].Lng != -74.02 {
		t.Errorf("places[1].Lng = %v, want -74.02 (lon mapped to Lng)", places[1].Lng)
	}
}

func TestOverpassSearchUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewOverpassClient(server.URL)
	_, err := client.Search(context.Background(), "leisure", "park", 40.7128, -74.0060, 5000, 5)

	status, ok := UpstreamStatus(err)
	if !ok || status != http.StatusTooManyRequests {
		t.Fatalf("err = %v, want UpstreamError with status 429", err)
	}
}
