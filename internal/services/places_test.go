package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"

	"github.com/sylvanlabs/sylvan-server/internal/clients"
)

type fakePlaceSearcher struct {
	results map[string][]clients.RawPlace
	err     error
	calls   int
}

func (f *fakePlaceSearcher) Search(ctx context.Context, tag, value string, lat, lng float64, radiusM, limit int) ([]clients.RawPlace, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.results[tag+"="+value], nil
}

func TestNearbyReturnsTopThreeSortedByDistance(t *testing.T) {
	searcher := &fakePlaceSearcher{
		results: map[string][]clients.RawPlace{
			"leisure=park": {
				{ID: 1, Name: "Far Park", Lat: 40.80, Lng: -74.00},
				{ID: 2, Name: "Near Park", Lat: 40.71, Lng: -74.00},
			},
			"leisure=nature_reserve": {
				{ID: 3, Name: "Mid Reserve", Lat: 40.73, Lng: -74.00},
			},
			"landuse=forest": {
				{ID: 4, Name: "Close Forest", Lat: 40.712, Lng: -74.005},
			},
		},
	}

	svc := NewPlacesService(searcher)
	result := svc.Nearby(context.Background(), 40.7128, -74.0060)

	if result.Source != SourceLive {
		t.Fatalf("source = %q, want %q", result.Source, SourceLive)
	}
	if len(result.Places) > 3 {
		t.Fatalf("got %d places, want at most 3", len(result.Places))
	}
	if !sort.SliceIsSorted(result.Places, func(i, j int) bool {
		return result.Places[i].Distance < result.Places[j].Distance
	}) {
		t.Errorf("places not sorted by ascending distance: %+v", result.Places)
	}

	seen := make(map[string]bool)
	for _, p := range result.Places {
		if seen[p.ID] {
			t.Errorf("duplicate place id %q", p.ID)
		}
		seen[p.ID] = true
	}
}

func TestNearbyFallbackOnTotalFailure(t *testing.T) {
	searcher := &fakePlaceSearcher{err: errors.New("upstream down")}

	svc := NewPlacesService(searcher)
	result := svc.Nearby(context.Background(), 40.7128, -74.0060)

	if result.Source != SourceFallback {
		t.Fatalf("source = %q, want %q", result.Source, SourceFallback)
	}
	if len(result.Places) != 3 {
		t.Fatalf("got %d fallback places, want 3", len(result.Places))
	}
	if result.RawResults != 0 {
		t.Errorf("raw results = %d, want 0", result.RawResults)
	}
	if result.Queries != len(placeQuerySpecs) {
		t.Errorf("queries = %d, want %d", result.Queries, len(placeQuerySpecs))
	}
	for i, p := range result.Places {
		want := fmt.Sprintf("fallback-%d", i+1)
		if p.ID != want {
			t.Errorf("place[%d].ID = %q, want %q", i, p.ID, want)
		}
		if p.Distance <= 0 {
			t.Errorf("place[%d] has non-positive distance %v", i, p.Distance)
		}
	}
}

func TestNearbyPartialFailureStaysLive(t *testing.T) {
	// One query succeeding is enough to keep the live source
	calls := 0
	searcher := searcherFunc(func(tag, value string) ([]clients.RawPlace, error) {
		calls++
		if tag == "leisure" && value == "park" {
			return []clients.RawPlace{{ID: 10, Name: "Only Park", Lat: 40.72, Lng: -74.00}}, nil
		}
		return nil, errors.New("timeout")
	})

	svc := NewPlacesService(searcher)
	result := svc.Nearby(context.Background(), 40.7128, -74.0060)

	if result.Source != SourceLive {
		t.Fatalf("source = %q, want %q", result.Source, SourceLive)
	}
	if len(result.Places) != 1 || result.Places[0].Name != "Only Park" {
		t.Errorf("unexpected places: %+v", result.Places)
	}
}

func TestNearbyStopsQueryingOnceCapReached(t *testing.T) {
	full := make([]clients.RawPlace, placesPerQueryLimit)
	for i := range full {
		full[i] = clients.RawPlace{
			ID:   int64(i + 1),
			Name: fmt.Sprintf("Spot %d", i+1),
			Lat:  40.71 + float64(i)*0.001,
			Lng:  -74.00,
		}
	}

	calls := 0
	searcher := searcherFunc(func(tag, value string) ([]clients.RawPlace, error) {
		calls++
		// Distinct ids per query so dedupe does not collapse them
		shifted := make([]clients.RawPlace, len(full))
		for i, p := range full {
			p.ID += int64(calls * 100)
			shifted[i] = p
		}
		return shifted, nil
	})

	svc := NewPlacesService(searcher)
	result := svc.Nearby(context.Background(), 40.7128, -74.0060)

	wantQueries := placesRawResultCap / placesPerQueryLimit
	if calls != wantQueries {
		t.Errorf("issued %d queries, want %d", calls, wantQueries)
	}
	if result.RawResults != placesRawResultCap {
		t.Errorf("raw results = %d, want %d", result.RawResults, placesRawResultCap)
	}
	if len(result.Places) != placesMaxResults {
		t.Errorf("got %d places, want %d", len(result.Places), placesMaxResults)
	}
}

func TestDedupeByID(t *testing.T) {
	places := []Place{
		{ID: "a", Name: "first a", Distance: 1},
		{ID: "b", Name: "only b", Distance: 2},
		{ID: "a", Name: "second a", Distance: 3},
	}

	deduped := dedupeByID(places)

	if len(deduped) != 2 {
		t.Fatalf("got %d places, want 2", len(deduped))
	}
	// First occurrence keeps its position, last occurrence keeps its value
	if deduped[0].ID != "a" || deduped[0].Name != "second a" {
		t.Errorf("deduped[0] = %+v, want id a with the later value", deduped[0])
	}
	if deduped[1].ID != "b" {
		t.Errorf("deduped[1].ID = %q, want b", deduped[1].ID)
	}
}

// searcherFunc adapts a function to clients.PlaceSearcher.
type searcherFunc func(tag, value string) ([]clients.RawPlace, error)

func (f searcherFunc) Search(ctx context.Context, tag, value string, lat, lng float64, radiusM, limit int) ([]clients.RawPlace, error) {
	return f(tag, value)
}
