package usecase

import (
	"testing"
)

func TestComputeRating(t *testing.T) {
	tests := []struct {
		name   string
		scores []int
		want   *float64
	}{
		{"no reviews means no rating", nil, nil},
		{"empty slice means no rating", []int{}, nil},
		{"two scores", []int{4, 6}, ptr(5.0)},
		{"three scores", []int{7, 8, 9}, ptr(8.0)},
		{"single score", []int{10}, ptr(10.0)},
		{"rounded to two decimals", []int{1, 1, 2}, ptr(1.33)},
		{"rounded up", []int{1, 2, 2}, ptr(1.67)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := computeRating(tt.scores)
			switch {
			case got == nil && tt.want == nil:
			case got == nil || tt.want == nil:
				t.Errorf("computeRating(%v) = %v, want %v", tt.scores, got, tt.want)
			case *got != *tt.want:
				t.Errorf("computeRating(%v) = %v, want %v", tt.scores, *got, *tt.want)
			}
		})
	}
}

func ptr(f float64) *float64 {
	return &f
}
