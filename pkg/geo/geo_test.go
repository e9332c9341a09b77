package geo

import (
	"math"
	"testing"
)

func TestHaversine(t *testing.T) {
	tests := []struct {
		name             string
		lat1, lon1       float64
		lat2, lon2       float64
		wantMeters       float64
		tolerancePercent float64
	}{
		{
			name: "Singapore CBD to Changi Airport",
			lat1: 1.2830, lon1: 103.8513, // Raffles Place
			lat2: 1.3644, lon2: 103.9915, // Changi Airport
			wantMeters:       18_023,
			tolerancePercent: 1,
		},
		{
			name: "Same point",
			lat1: 1.3521, lon1: 103.8198,
			lat2: 1.3521, lon2: 103.8198,
			wantMeters:       0,
			tolerancePercent: 0,
		},
		{
			name: "London to Paris",
			lat1: 51.5074, lon1: -0.1278,
			lat2: 48.8566, lon2: 2.3522,
			wantMeters:       343_500,
			tolerancePercent: 1,
		},
		{
			name: "Short distance (~100m)",
			lat1: 1.3521, lon1: 103.8198,
			lat2: 1.3530, lon2: 103.8198,
			wantMeters:       100,
			tolerancePercent: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Haversine(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if tt.wantMeters == 0 {
				if got != 0 {
					t.Errorf("expected 0, got %f", got)
				}
				return
			}
			diff := math.Abs(got-tt.wantMeters) / tt.wantMeters * 100
			if diff > tt.tolerancePercent {
				t.Errorf("Haversine = %f m, want ~%f m (diff %.1f%%)", got, tt.wantMeters, diff)
			}
		})
	}
}

func TestEuclidean(t *testing.T) {
	tests := []struct {
		name           string
		x1, y1, x2, y2 int64
		want           float64
	}{
		{"3-4-5 triangle", 0, 0, 3, 4, 5},
		{"same point", 7, -2, 7, -2, 0},
		{"negative coordinates", -3, -4, 0, 0, 5},
		{"horizontal", 0, 4, 3, 4, 3},
		{"wide span", math.MinInt32, 0, math.MaxInt32, 0, float64(math.MaxInt32) - float64(math.MinInt32)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Euclidean(tt.x1, tt.y1, tt.x2, tt.y2); got != tt.want {
				t.Errorf("Euclidean = %v, want %v", got, tt.want)
			}
			if got := Euclidean(tt.x2, tt.y2, tt.x1, tt.y1); got != tt.want {
				t.Errorf("Euclidean reversed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFixedRoundTrip(t *testing.T) {
	for _, deg := range []float64{0, 1.3521, -0.1278, 103.8198, -89.9999999} {
		if got := FromFixed(ToFixed(deg)); math.Abs(got-deg) > 1e-7 {
			t.Errorf("FromFixed(ToFixed(%v)) = %v", deg, got)
		}
	}
	if ToFixed(1.3521) != 13_521_000 {
		t.Errorf("ToFixed(1.3521) = %d, want 13521000", ToFixed(1.3521))
	}
}

func BenchmarkHaversine(b *testing.B) {
	for b.Loop() {
		Haversine(1.3521, 103.8198, 1.2905, 103.8520)
	}
}

func BenchmarkEuclidean(b *testing.B) {
	for b.Loop() {
		Euclidean(-1_000_000, 250_000, 3_000_000, -40_000)
	}
}
