package entity

import (
	"testing"
	"time"
)

func TestValidateYear(t *testing.T) {
	current := time.Now().Year()

	cases := []struct {
		name    string
		year    int
		wantErr bool
	}{
		{"negative", -1, true},
		{"zero", 0, false},
		{"classic", 1957, false},
		{"current year", current, false},
		{"next year", current + 1, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateYear(tc.year)
			if tc.wantErr && err == nil {
				t.Fatalf("ValidateYear(%d) = nil, want error", tc.year)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("ValidateYear(%d) = %v, want nil", tc.year, err)
			}
		})
	}
}
