package clients

import "testing"

func TestDescribeWeatherCode(t *testing.T) {
	tests := []struct {
		code     int
		wantDesc string
		wantIcon string
	}{
		{0, "Clear sky", "☀️"},
		{3, "Overcast", "☁️"},
		{61, "Slight rain", "🌧️"},
		{75, "Heavy snowfall", "❄️"},
		{95, "Thunderstorm", "⛈️"},
	}

	for _, tt := range tests {
		desc, icon := DescribeWeatherCode(tt.code)
		if desc != tt.wantDesc || icon != tt.wantIcon {
			t.Errorf("DescribeWeatherCode(%d) = (%q, %q), want (%q, %q)",
				tt.code, desc, icon, tt.wantDesc, tt.wantIcon)
		}
	}
}

func TestDescribeWeatherCodeUnknown(t *testing.T) {
	for _, code := range []int{-1, 4, 42, 100, 9999} {
		desc, icon := DescribeWeatherCode(code)
		if desc != "Unknown" || icon != "🌡️" {
			t.Errorf("DescribeWeatherCode(%d) = (%q, %q), want Unknown fallback", code, desc, icon)
		}
	}
}
