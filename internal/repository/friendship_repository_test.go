package repository

import (
	"reflect"
	"testing"
)

func TestParseCachedIDs(t *testing.T) {
	tests := []struct {
		name    string
		members []string
		want    []uint
	}{
		{"valid ids", []string{"7", "12", "3"}, []uint{7, 12, 3}},
		{"zero placeholder skipped", []string{"0"}, []uint{}},
		{"junk skipped", []string{"abc", "12x", "", "-5"}, []uint{}},
		{"mixed", []string{"0", "junk", "42"}, []uint{42}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseCachedIDs(tt.members); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseCachedIDs(%v) = %v, want %v", tt.members, got, tt.want)
			}
		})
	}
}
