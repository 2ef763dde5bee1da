package services

import (
	"testing"
)

func TestDetectExcursionIntent(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"I'd love to go for a walk", true},
		{"can we hike somewhere today", true},
		{"I need some fresh air", true},
		{"what's the capital of France", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := DetectExcursionIntent(tt.input); got != tt.want {
			t.Errorf("DetectExcursionIntent(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestDetectDurationIntent(t *testing.T) {
	intPtr := func(n int) *int { return &n }

	tests := []struct {
		input string
		want  *int
	}{
		{"2 hours", intPtr(120)},
		{"1.5 hours would be nice", intPtr(90)},
		{"45 min", intPtr(45)},
		{"maybe 30 minutes", intPtr(30)},
		{"just a quick walk", intPtr(15)},
		{"something short", intPtr(20)},
		{"a long wander", intPtr(90)},
		{"let's go", nil},
		{"", nil},
	}

	for _, tt := range tests {
		got := DetectDurationIntent(tt.input)
		switch {
		case got == nil && tt.want != nil:
			t.Errorf("DetectDurationIntent(%q) = nil, want %d", tt.input, *tt.want)
		case got != nil && tt.want == nil:
			t.Errorf("DetectDurationIntent(%q) = %d, want nil", tt.input, *got)
		case got != nil && tt.want != nil && *got != *tt.want:
			t.Errorf("DetectDurationIntent(%q) = %d, want %d", tt.input, *got, *tt.want)
		}
	}
}

func TestDetectDurationIntentHoursWinOverMinutes(t *testing.T) {
	// Both patterns present; the hour pattern is tried first
	got := DetectDurationIntent("1 hour or 20 minutes")
	if got == nil || *got != 60 {
		t.Errorf("expected 60, got %v", got)
	}
}

func TestDetectLocationIntent(t *testing.T) {
	tests := []struct {
		input            string
		wantsSuggestions bool
		specificLocation string
	}{
		{"can you suggest somewhere", true, ""},
		{"recommend a good spot", true, ""},
		{"let's meet at the botanical garden", false, "let's meet at the botanical garden"},
		{"take me to the river", false, "take me to the river"},
		{"hello there", false, ""},
	}

	for _, tt := range tests {
		got := DetectLocationIntent(tt.input)
		if got.WantsSuggestions != tt.wantsSuggestions {
			t.Errorf("DetectLocationIntent(%q).WantsSuggestions = %v, want %v",
				tt.input, got.WantsSuggestions, tt.wantsSuggestions)
		}
		if got.SpecificLocation != tt.specificLocation {
			t.Errorf("DetectLocationIntent(%q).SpecificLocation = %q, want %q",
				tt.input, got.SpecificLocation, tt.specificLocation)
		}
	}
}

func TestDetectConfirmation(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"yes", true},
		{"Yes", true},
		{"  yes  ", true},
		{"yes please", true},
		{"Yeah sure", true},
		{"yessir", false},
		{"okay let's do it", true},
		{"no thanks", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := DetectConfirmation(tt.input); got != tt.want {
			t.Errorf("DetectConfirmation(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
