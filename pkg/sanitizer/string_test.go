package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"trims edges", "  Nordic Freight AS  ", "Nordic Freight AS"},
		{"collapses runs", "Nordic \t Freight\n AS", "Nordic Freight AS"},
		{"drops control chars", "Nordic\x00Freight", "NordicFreight"},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimAndNormalize(tt.input); got != tt.expected {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"+47 912 34 567", "+4791234567"},
		{"912-34-567", "91234567"},
		{" 912 34 567 ", "91234567"},
	}

	for _, tt := range tests {
		if got := NormalizePhone(tt.input); got != tt.expected {
			t.Errorf("NormalizePhone(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Ops@Example.COM "); got != "ops@example.com" {
		t.Errorf("NormalizeEmail = %q", got)
	}
}
