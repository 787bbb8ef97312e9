package utils

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Brass Lamp":          "brass-lamp",
		"  Kitchen & Dining ": "kitchen-dining",
		"Café Crème":          "café-crème",
		"--Already-slugged--": "already-slugged",
		"100% Cotton T-Shirt": "100-cotton-t-shirt",
		"!!!":                 "",
	}
	for input, want := range tests {
		assert.Equal(t, want, Slugify(input), input)
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input any
		want  float64
		ok    bool
	}{
		{12.5, 12.5, true},
		{7, 7, true},
		{int64(3), 3, true},
		{json.Number("4.25"), 4.25, true},
		{" 19.99 ", 19.99, true},
		{"-2", -2, true},
		{"", 0, false},
		{"abc", 0, false},
		{nil, 0, false},
		{true, 0, false},
		{math.NaN(), 0, false},
		{"Inf", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseNumber(tt.input)
		assert.Equal(t, tt.ok, ok, "%v", tt.input)
		assert.Equal(t, tt.want, got, "%v", tt.input)
	}
}

func TestParseBool(t *testing.T) {
	for _, value := range []any{true, "true", "1", "yes", "on", 1.0} {
		assert.True(t, ParseBool(value), "%v", value)
	}
	for _, value := range []any{false, "false", "0", "", " OFF ", "no", 0.0, nil} {
		assert.False(t, ParseBool(value), "%v", value)
	}
}

func TestTrimToEmpty(t *testing.T) {
	assert.Equal(t, "lamp", TrimToEmpty("  lamp "))
	assert.Equal(t, "12.5", TrimToEmpty(12.5))
	assert.Equal(t, "3", TrimToEmpty(3))
	assert.Equal(t, "true", TrimToEmpty(true))
	assert.Equal(t, "", TrimToEmpty(map[string]any{"a": 1}))
	assert.Equal(t, "", TrimToEmpty([]any{"a"}))
	assert.Equal(t, "", TrimToEmpty(nil))
}

func TestIsValidRatingAndRole(t *testing.T) {
	assert.True(t, IsValidRating(1))
	assert.True(t, IsValidRating(5))
	assert.False(t, IsValidRating(0.5))
	assert.False(t, IsValidRating(5.01))

	assert.True(t, IsValidRole("user"))
	assert.True(t, IsValidRole("admin"))
	assert.False(t, IsValidRole("guest"))
	assert.False(t, IsValidRole("Admin"))
}
