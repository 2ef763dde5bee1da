package clients

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Every adapter opens a fresh outbound connection per call and shares one
// immutable client handle per process; none of them retry.
const defaultTimeout = 10 * time.Second

var upstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "sylvan_upstream_requests_total",
		Help: "Total number of upstream API requests",
	},
	[]string{"service", "status"},
)

func countUpstream(service, status string) {
	upstreamRequestsTotal.WithLabelValues(service, status).Inc()
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: defaultTimeout}
}

// LatLng is a coordinate pair in (latitude, longitude) order.
type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Message is one turn of assistant conversation context.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// WeatherProvider reports current conditions at a coordinate.
type WeatherProvider interface {
	CurrentWeather(ctx context.Context, lat, lng float64) (*WeatherReport, error)
}

// RouteProvider computes a route through an ordered list of waypoints.
type RouteProvider interface {
	Route(ctx context.Context, waypoints []LatLng, mode string) (*Route, error)
}

// PlaceSearcher runs a single tagged query around an origin.
type PlaceSearcher interface {
	Search(ctx context.Context, tag, value string, lat, lng float64, radiusM, limit int) ([]RawPlace, error)
}

// TrailSearcher finds trails near a coordinate.
type TrailSearcher interface {
	Search(ctx context.Context, params TrailSearchParams) (*TrailSearchResult, error)
}

// Transcriber converts audio to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

// Completer produces an assistant reply for a conversation.
type Completer interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// Synthesizer converts text to audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voice string) ([]byte, error)
}
