package services

import (
	"testing"

	"github.com/sednex/community-backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestToList(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  []any
	}{
		{"nil", nil, nil},
		{"blank", "   ", nil},
		{"comma separated", "a, b,,c ", []any{"a", "b", "c"}},
		{"json array", `["x","y"]`, []any{"x", "y"}},
		{"json object", `{"key":"k"}`, []any{map[string]any{"key": "k"}}},
		{"broken json falls back to commas", `[oops, ok`, []any{"[oops", "ok"}},
		{"slice passes through", []any{"a", 1.0}, []any{"a", 1.0}},
		{"number is ignored", 42.0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, toList(tt.input))
		})
	}
}

func TestCollectIndexed(t *testing.T) {
	fields := Fields{
		"specifications[10][key]":   "weight",
		"specifications[2][key]":    "color",
		"specifications[2][value]":  "red",
		"specifications[10][value]": "2kg",
		"specifications[x][key]":    "ignored",
		"other[0][key]":             "ignored",
	}

	got := collectIndexed(fields, "specifications")

	assert.Equal(t, []map[string]any{
		{"key": "color", "value": "red"},
		{"key": "weight", "value": "2kg"},
	}, got)
}

func TestNormalizeSpecifications(t *testing.T) {
	t.Run("last value wins for a repeated key", func(t *testing.T) {
		fields := Fields{"specifications": []any{"color:red", "color:blue"}}
		assert.Equal(t, []models.Specification{{Key: "color", Value: "blue"}}, normalizeSpecifications(fields))
	})

	t.Run("keys compare case-insensitively", func(t *testing.T) {
		fields := Fields{"specifications": `[{"key":"Size","value":"M"},{"name":"size","desc":"L"}]`}
		assert.Equal(t, []models.Specification{{Key: "size", Value: "L"}}, normalizeSpecifications(fields))
	})

	t.Run("value keeps text after the first colon", func(t *testing.T) {
		fields := Fields{"specifications": "time:12:30"}
		assert.Equal(t, []models.Specification{{Key: "time", Value: "12:30"}}, normalizeSpecifications(fields))
	})

	t.Run("indexed entries come before list entries", func(t *testing.T) {
		fields := Fields{
			"specifications[0][key]":         "material",
			"specifications[0][description]": "steel",
			"specifications":                 "material:wood,finish:matte,nocolon",
		}
		assert.Equal(t, []models.Specification{
			{Key: "material", Value: "wood"},
			{Key: "finish", Value: "matte"},
		}, normalizeSpecifications(fields))
	})

	t.Run("incomplete entries are dropped", func(t *testing.T) {
		fields := Fields{"specifications": []any{map[string]any{"key": "only-key"}, ":no-key"}}
		assert.Empty(t, normalizeSpecifications(fields))
	})
}

func TestNormalizeColorVariants(t *testing.T) {
	t.Run("aliases and stock", func(t *testing.T) {
		fields := Fields{"colorVariants": `[{"label":"Red","hex":"#f00","stock":"4"},{"title":"Blue","stock":-1}]`}
		got := normalizeColorVariants(fields)

		if assert.Len(t, got, 2) {
			assert.Equal(t, "Red", got[0].Name)
			assert.Equal(t, "#f00", got[0].Code)
			if assert.NotNil(t, got[0].Stock) {
				assert.Equal(t, 4.0, *got[0].Stock)
			}
			assert.Equal(t, "Blue", got[1].Name)
			assert.Nil(t, got[1].Stock)
		}
	})

	t.Run("bare name does not replace a full variant", func(t *testing.T) {
		fields := Fields{
			"colorVariants[0][name]": "Green",
			"colorVariants[0][code]": "#0f0",
			"colorVariants":          "green, Black",
		}
		got := normalizeColorVariants(fields)

		assert.Equal(t, []models.ColorVariant{
			{Name: "Green", Code: "#0f0"},
			{Name: "Black"},
		}, got)
	})

	t.Run("object replaces by name", func(t *testing.T) {
		fields := Fields{"colorVariants": []any{
			map[string]any{"name": "White", "code": "#fff"},
			map[string]any{"name": "white", "colorCode": "#fefefe"},
		}}
		assert.Equal(t, []models.ColorVariant{{Name: "white", Code: "#fefefe"}}, normalizeColorVariants(fields))
	})
}

func TestNormalizeBadges(t *testing.T) {
	fields := Fields{
		"badges":    "Sale, unknown, NEW, sale",
		"badges[0]": "featured",
		"badges[1]": "new",
	}
	assert.Equal(t, []string{"sale", "new", "featured"}, normalizeBadges(fields))
}

func TestNormalizeBadgesEmpty(t *testing.T) {
	assert.Equal(t, []string{}, normalizeBadges(Fields{}))
}

func TestCollectBodyImages(t *testing.T) {
	fields := Fields{
		"images":         []any{"https://a/1.png", " https://a/2.png "},
		"existingImages": "https://a/2.png,https://a/3.png",
		"keepImages":     `["https://a/4.png"]`,
		"images[0]":      "https://a/1.png",
		"images[1]":      "https://a/5.png",
	}

	assert.Equal(t, []string{
		"https://a/1.png",
		"https://a/2.png",
		"https://a/3.png",
		"https://a/4.png",
		"https://a/5.png",
	}, collectBodyImages(fields))
}
