package dumpsys

import "testing"

func TestParseClockDuration(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int64
	}{
		{"hours minutes seconds", "1:02:03", 3723000},
		{"minutes seconds", "12:34", 754000},
		{"zero", "0:00", 0},
		{"seconds only field pair", "0:59", 59000},
		{"large hours", "99:59:59", 359999000},
		{"single field", "42", 0},
		{"four fields", "1:2:3:4", 0},
		{"non-numeric field", "1:xx", 0},
		{"negative field", "-1:30", 0},
		{"empty string", "", 0},
		{"trailing colon", "12:", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseClockDuration(tt.input); got != tt.want {
				t.Errorf("ParseClockDuration(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}
