package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/sylvanlabs/sylvan-server/internal/clients"
	"github.com/sylvanlabs/sylvan-server/internal/logger"
	"github.com/sylvanlabs/sylvan-server/pkg/geo"
)

// Place sources
const (
	SourceLive     = "live"
	SourceFallback = "fallback"
)

const (
	placesSearchRadiusM = 5000
	placesPerQueryLimit = 5
	placesRawResultCap  = 15
	placesMaxResults    = 3
)

// Place is one nearby nature spot, produced transiently per request.
type Place struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Type      string  `json:"type"`
	Distance  float64 `json:"distance"` // km from origin
}

// PlacesResult carries the aggregated places plus the degraded-mode flag.
// Source is "fallback" when the upstream search failed entirely and
// synthetic data was substituted; that is a policy branch, not an error.
type PlacesResult struct {
	Places     []Place `json:"places"`
	Source     string  `json:"source"`
	RawResults int     `json:"raw_results"`
	Queries    int     `json:"queries"`
}

// placeQuerySpec is one fan-out query against the place search endpoint.
type placeQuerySpec struct {
	tag      string
	value    string
	category string
}

// Fixed ordered fan-out list; queries are issued one at a time in this
// order until enough raw results have accumulated.
var placeQuerySpecs = []placeQuerySpec{
	{"leisure", "park", "park"},
	{"leisure", "nature_reserve", "nature_reserve"},
	{"landuse", "forest", "forest"},
	{"natural", "wood", "forest"},
	{"leisure", "garden", "garden"},
	{"tourism", "picnic_site", "picnic_site"},
}

// PlacesService aggregates nearby nature spots from a place search
// endpoint, degrading to synthetic data on total failure.
type PlacesService struct {
	searcher clients.PlaceSearcher
}

func NewPlacesService(searcher clients.PlaceSearcher) *PlacesService {
	return &PlacesService{searcher: searcher}
}

// Nearby returns the closest places around the origin: bounded sequential
// fan-out, distance sort, dedupe by id, top 3. Never returns an error; a
// total upstream failure yields the fallback set instead.
func (s *PlacesService) Nearby(ctx context.Context, lat, lng float64) *PlacesResult {
	log := logger.GetLogger("places")

	var accumulated []Place
	queries := 0
	failures := 0

	for _, spec := range placeQuerySpecs {
		if len(accumulated) >= placesRawResultCap {
			break
		}

		queries++
		raw, err := s.searcher.Search(ctx, spec.tag, spec.value, lat, lng, placesSearchRadiusM, placesPerQueryLimit)
		if err != nil {
			log.Warnf("place query %s=%s failed: %v", spec.tag, spec.value, err)
			failures++
			continue
		}

		for _, r := range raw {
			accumulated = append(accumulated, Place{
				ID:        fmt.Sprintf("osm-%d", r.ID),
				Name:      r.Name,
				Latitude:  r.Lat,
				Longitude: r.Lng,
				Type:      spec.category,
				Distance:  geo.Haversine(lat, lng, r.Lat, r.Lng),
			})
		}
	}

	// Total failure: every issued query errored and nothing accumulated.
	// Substitute deterministic synthetic data rather than failing.
	if len(accumulated) == 0 && failures == queries {
		log.Warnf("all place queries failed, returning fallback data")
		return &PlacesResult{
			Places:     fallbackPlaces(lat, lng),
			Source:     SourceFallback,
			RawResults: 0,
			Queries:    queries,
		}
	}

	sort.Slice(accumulated, func(i, j int) bool {
		return accumulated[i].Distance < accumulated[j].Distance
	})

	places := dedupeByID(accumulated)
	if len(places) > placesMaxResults {
		places = places[:placesMaxResults]
	}

	return &PlacesResult{
		Places:     places,
		Source:     SourceLive,
		RawResults: len(accumulated),
		Queries:    queries,
	}
}

// dedupeByID collapses duplicate ids, keeping the position of the first
// occurrence but the value of the last one (overwrite-by-key).
func dedupeByID(places []Place) []Place {
	index := make(map[string]int, len(places))
	deduped := make([]Place, 0, len(places))

	for _, p := range places {
		if i, seen := index[p.ID]; seen {
			deduped[i] = p
			continue
		}
		index[p.ID] = len(deduped)
		deduped = append(deduped, p)
	}

	return deduped
}

// fallbackPlaces returns three synthetic places at fixed offsets from the
// origin, flagged for the caller by the result's Source.
func fallbackPlaces(lat, lng float64) []Place {
	specs := []struct {
		id   string
		name string
		typ  string
		dLat float64
		dLng float64
	}{
		{"fallback-1", "Riverside Park", "park", 0.010, 0.010},
		{"fallback-2", "Cedar Nature Reserve", "nature_reserve", -0.008, 0.012},
		{"fallback-3", "Old Grove Forest Trail", "forest", 0.015, -0.009},
	}

	places := make([]Place, 0, len(specs))
	for _, s := range specs {
		pLat := lat + s.dLat
		pLng := lng + s.dLng
		places = append(places, Place{
			ID:        s.id,
			Name:      s.name,
			Latitude:  pLat,
			Longitude: pLng,
			Type:      s.typ,
			Distance:  geo.Haversine(lat, lng, pLat, pLng),
		})
	}

	return places
}
