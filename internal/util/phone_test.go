package util

import (
	"errors"
	"reflect"
	"testing"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"ten digits with dashes", "301-555-0100", "+13015550100"},
		{"ten digits with punctuation", "(301) 555-0101", "+13015550101"},
		{"already canonical", "+13015550102", "+13015550102"},
		{"eleven digits with country code", "13015550100", "+13015550100"},
		{"international number", "+44 20 7946 0958", "+442079460958"},
		{"short number kept verbatim", "555-0100", "+5550100"},
		{"letters stripped", "3O1-555-O1OO ext. 2", "+3155512"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePhone(tt.raw)
			if err != nil {
				t.Fatalf("NormalizePhone(%q) error: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizePhoneIdempotent(t *testing.T) {
	inputs := []string{"301-555-0100", "+13015550102", "13015550100", "+442079460958"}
	for _, raw := range inputs {
		once, err := NormalizePhone(raw)
		if err != nil {
			t.Fatalf("NormalizePhone(%q) error: %v", raw, err)
		}
		twice, err := NormalizePhone(once)
		if err != nil {
			t.Fatalf("NormalizePhone(%q) error: %v", once, err)
		}
		if once != twice {
			t.Errorf("not idempotent: %q -> %q -> %q", raw, once, twice)
		}
	}
}

func TestNormalizePhoneInvalid(t *testing.T) {
	for _, raw := range []string{"", "not a number", "+-()"} {
		if _, err := NormalizePhone(raw); !errors.Is(err, ErrInvalidPhone) {
			t.Errorf("NormalizePhone(%q) error = %v, want ErrInvalidPhone", raw, err)
		}
	}
}

func TestNormalizePhones(t *testing.T) {
	raws := []string{
		"301-555-0100",
		"(301) 555-0100", // 与第一条规范化后相同，应去重
		"+13015550102",
		"garbage",
		"301-555-0101",
	}
	want := []string{"+13015550100", "+13015550102", "+13015550101"}
	got := NormalizePhones(raws)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizePhones = %v, want %v", got, want)
	}
}
