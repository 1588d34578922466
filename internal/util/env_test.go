package util

import (
	"testing"
	"time"
)

func TestParseBoolEnv(t *testing.T) {
	tests := []struct {
		value        string
		defaultValue bool
		want         bool
	}{
		{"", true, true},
		{"", false, false},
		{"true", false, true},
		{"1", false, true},
		{"YES", false, true},
		{"on", false, true},
		{"false", true, false},
		{"0", true, false},
		{"No", true, false},
		{"off", true, false},
		{"banana", true, true},
		{"banana", false, false},
		{"  true  ", false, true},
	}
	for _, tt := range tests {
		t.Setenv("TEST_BOOL_ENV", tt.value)
		if got := ParseBoolEnv("TEST_BOOL_ENV", tt.defaultValue); got != tt.want {
			t.Errorf("ParseBoolEnv(%q, %v) = %v, want %v", tt.value, tt.defaultValue, got, tt.want)
		}
	}
}

func TestParseIntEnv(t *testing.T) {
	tests := []struct {
		value        string
		defaultValue int
		want         int
	}{
		{"", 42, 42},
		{"7", 42, 7},
		{" 1024 ", 42, 1024},
		{"-3", 42, -3},
		{"seven", 42, 42},
	}
	for _, tt := range tests {
		t.Setenv("TEST_INT_ENV", tt.value)
		if got := ParseIntEnv("TEST_INT_ENV", tt.defaultValue); got != tt.want {
			t.Errorf("ParseIntEnv(%q, %d) = %d, want %d", tt.value, tt.defaultValue, got, tt.want)
		}
	}
}

func TestParseDurationEnv(t *testing.T) {
	tests := []struct {
		value        string
		defaultValue time.Duration
		want         time.Duration
	}{
		{"", time.Minute, time.Minute},
		{"30s", time.Minute, 30 * time.Second},
		{"1h30m", time.Minute, 90 * time.Minute},
		{"soon", time.Minute, time.Minute},
	}
	for _, tt := range tests {
		t.Setenv("TEST_DURATION_ENV", tt.value)
		if got := ParseDurationEnv("TEST_DURATION_ENV", tt.defaultValue); got != tt.want {
			t.Errorf("ParseDurationEnv(%q, %v) = %v, want %v", tt.value, tt.defaultValue, got, tt.want)
		}
	}
}
