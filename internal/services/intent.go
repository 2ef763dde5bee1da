package services

import (
	"regexp"
	"strconv"
	"strings"
)

// Intent detectors classify a single free-text user input. Each detector is
// pure and independent of the others.

var excursionKeywords = []string{
	"walk", "hike", "excursion", "outing", "go outside", "get outside",
	"stroll", "fresh air", "nature", "trail", "park",
}

// DetectExcursionIntent reports whether the input expresses a wish to go on
// an excursion.
func DetectExcursionIntent(input string) bool {
	lowered := strings.ToLower(input)
	for _, kw := range excursionKeywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

var (
	hourPattern   = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:hours?|hrs?|h)\b`)
	minutePattern = regexp.MustCompile(`(\d+)\s*(?:minutes?|mins?|m)\b`)
)

// durationBuckets are checked in order when no numeric pattern matches.
var durationBuckets = []struct {
	keyword string
	minutes int
}{
	{"quick", 15},
	{"short", 20},
	{"long", 90},
}

// DetectDurationIntent extracts a desired duration in minutes. The hour
// pattern is tried before the minute pattern; keyword buckets are the
// fallback. Returns nil when no duration signal is present.
func DetectDurationIntent(input string) *int {
	lowered := strings.ToLower(input)

	if m := hourPattern.FindStringSubmatch(lowered); m != nil {
		hours, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			minutes := int(hours * 60)
			return &minutes
		}
	}

	if m := minutePattern.FindStringSubmatch(lowered); m != nil {
		minutes, err := strconv.Atoi(m[1])
		if err == nil {
			return &minutes
		}
	}

	for _, bucket := range durationBuckets {
		if strings.Contains(lowered, bucket.keyword) {
			minutes := bucket.minutes
			return &minutes
		}
	}

	return nil
}

// LocationIntent is the outcome of location preference detection. At most
// one of the two signals is set.
type LocationIntent struct {
	WantsSuggestions bool
	SpecificLocation string
}

var suggestionPhrases = []string{
	"suggest", "recommend", "any ideas", "somewhere nice",
	"where should", "don't know where", "not sure where",
}

var specificPlaceIndicators = []string{
	"at the", "to the", "near the", "by the", "in the",
}

// DetectLocationIntent classifies where the user wants to go. Suggestion
// phrases win over specific-place indicators; a specific place keeps the
// full input text.
func DetectLocationIntent(input string) LocationIntent {
	lowered := strings.ToLower(input)

	for _, phrase := range suggestionPhrases {
		if strings.Contains(lowered, phrase) {
			return LocationIntent{WantsSuggestions: true}
		}
	}

	for _, indicator := range specificPlaceIndicators {
		if strings.Contains(lowered, indicator) {
			return LocationIntent{SpecificLocation: input}
		}
	}

	return LocationIntent{}
}

var affirmativeTokens = []string{
	"yes", "yeah", "yep", "sure", "ok", "okay", "definitely", "absolutely", "let's go",
}

// DetectConfirmation reports whether the input is an affirmative answer.
// The trimmed, lowercased input must equal a token exactly or start with a
// token followed by a space; "yessir" does not count.
func DetectConfirmation(input string) bool {
	trimmed := strings.TrimSpace(strings.ToLower(input))
	for _, token := range affirmativeTokens {
		if trimmed == token || strings.HasPrefix(trimmed, token+" ") {
			return true
		}
	}
	return false
}
