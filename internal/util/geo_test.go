package util

import (
	"math"
	"testing"
)

func TestHaversineMiles(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64 // 英里
		tol                    float64
	}{
		{"same point", 37.0, -122.0, 37.0, -122.0, 0, 0.0001},
		{"one degree of latitude", 37.0, -122.0, 38.0, -122.0, 69.09, 0.05},
		{"short hop", 37.0, -122.0, 37.01, -122.01, 0.88, 0.05},
		{"sf to la", 37.7749, -122.4194, 34.0522, -118.2437, 347.4, 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineMiles(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if math.Abs(got-tt.want) > tt.tol {
				t.Errorf("HaversineMiles = %f, want %f±%f", got, tt.want, tt.tol)
			}
		})
	}
}

func TestHaversineSymmetric(t *testing.T) {
	a := HaversineMiles(37.0, -122.0, 38.5, -121.0)
	b := HaversineMiles(38.5, -121.0, 37.0, -122.0)
	if math.Abs(a-b) > 1e-9 {
		t.Errorf("distance not symmetric: %f vs %f", a, b)
	}
}

func TestClampRadius(t *testing.T) {
	tests := []struct {
		radius, max, want float64
	}{
		{10, 50, 10},
		{-3, 50, 0},
		{120, 50, 50},
		{0, 50, 0},
		{50, 50, 50},
	}
	for _, tt := range tests {
		if got := ClampRadius(tt.radius, tt.max); got != tt.want {
			t.Errorf("ClampRadius(%f, %f) = %f, want %f", tt.radius, tt.max, got, tt.want)
		}
	}
}
