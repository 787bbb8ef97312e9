package services

import (
	"encoding/json"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/sednex/community-backend/internal/models"
	"github.com/sednex/community-backend/internal/utils"
)

var allowedBadges = func() map[string]bool {
	set := make(map[string]bool, len(models.AllowedBadges))
	for _, badge := range models.AllowedBadges {
		set[badge] = true
	}
	return set
}()

// toList turns a form or JSON value into a list. Strings that look like JSON
// are decoded, any other string is split on commas.
func toList(input any) []any {
	switch v := input.(type) {
	case nil:
		return nil
	case []any:
		return v
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out
	case map[string]any:
		return []any{v}
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return nil
		}
		if strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "{") {
			var parsed any
			if err := json.Unmarshal([]byte(trimmed), &parsed); err == nil {
				switch p := parsed.(type) {
				case []any:
					return p
				case map[string]any:
					return []any{p}
				}
			}
		}
		var out []any
		for _, part := range strings.Split(trimmed, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	default:
		return nil
	}
}

// collectIndexed rebuilds objects sent as flat form keys such as
// specifications[0][key]=color, ordered by index.
func collectIndexed(fields Fields, name string) []map[string]any {
	pattern := regexp.MustCompile(`^` + regexp.QuoteMeta(name) + `\[(\d+)\]\[(\w+)\]$`)
	bucket := map[int]map[string]any{}
	for key, value := range fields {
		match := pattern.FindStringSubmatch(key)
		if match == nil {
			continue
		}
		index, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		if bucket[index] == nil {
			bucket[index] = map[string]any{}
		}
		bucket[index][match[2]] = value
	}

	indexes := make([]int, 0, len(bucket))
	for index := range bucket {
		indexes = append(indexes, index)
	}
	sort.Ints(indexes)

	out := make([]map[string]any, 0, len(indexes))
	for _, index := range indexes {
		out = append(out, bucket[index])
	}
	return out
}

// prefixedValues returns the values of keys like badges[0], badges[1] in
// index order.
func prefixedValues(fields Fields, prefix string) []any {
	keys := make([]string, 0)
	for key := range fields {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		a, aErr := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(keys[i], prefix), "]"))
		b, bErr := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(keys[j], prefix), "]"))
		if aErr == nil && bErr == nil {
			return a < b
		}
		return keys[i] < keys[j]
	})

	var values []any
	for _, key := range keys {
		if list, ok := fields[key].([]any); ok {
			values = append(values, list...)
			continue
		}
		values = append(values, fields[key])
	}
	return values
}

func firstPresent(entry map[string]any, keys ...string) any {
	for _, key := range keys {
		if value, ok := entry[key]; ok && value != nil {
			return value
		}
	}
	return nil
}

// normalizeSpecifications merges indexed and list input into specifications
// unique by case-insensitive key. A later entry replaces an earlier one.
func normalizeSpecifications(fields Fields) []models.Specification {
	var records []models.Specification
	upsert := func(key, value string) {
		if key == "" || value == "" {
			return
		}
		spec := models.Specification{Key: key, Value: value}
		for i := range records {
			if strings.EqualFold(records[i].Key, key) {
				records[i] = spec
				return
			}
		}
		records = append(records, spec)
	}
	upsertEntry := func(entry map[string]any) {
		upsert(
			utils.TrimToEmpty(firstPresent(entry, "key", "name")),
			utils.TrimToEmpty(firstPresent(entry, "value", "desc", "description")),
		)
	}

	for _, entry := range collectIndexed(fields, "specifications") {
		upsertEntry(entry)
	}
	for _, item := range toList(fields["specifications"]) {
		switch v := item.(type) {
		case string:
			key, value, found := strings.Cut(v, ":")
			if !found {
				continue
			}
			upsert(strings.TrimSpace(key), strings.TrimSpace(value))
		case map[string]any:
			upsertEntry(v)
		}
	}
	return records
}

// normalizeColorVariants merges indexed and list input into variants unique
// by case-insensitive name. A bare name never replaces a full variant.
func normalizeColorVariants(fields Fields) []models.ColorVariant {
	var variants []models.ColorVariant
	indexOf := func(name string) int {
		for i := range variants {
			if strings.EqualFold(variants[i].Name, name) {
				return i
			}
		}
		return -1
	}
	upsert := func(item any) {
		switch v := item.(type) {
		case string:
			label := strings.TrimSpace(v)
			if label != "" && indexOf(label) < 0 {
				variants = append(variants, models.ColorVariant{Name: label})
			}
		case map[string]any:
			name := utils.TrimToEmpty(firstPresent(v, "name", "label", "title"))
			if name == "" {
				return
			}
			variant := models.ColorVariant{
				Name: name,
				Code: utils.TrimToEmpty(firstPresent(v, "code", "hex", "colorCode", "color")),
			}
			if stock, ok := utils.ParseNumber(v["stock"]); ok && stock >= 0 {
				variant.Stock = &stock
			}
			if i := indexOf(name); i >= 0 {
				variants[i] = variant
				return
			}
			variants = append(variants, variant)
		}
	}

	for _, entry := range collectIndexed(fields, "colorVariants") {
		upsert(entry)
	}
	for _, item := range toList(fields["colorVariants"]) {
		upsert(item)
	}
	return variants
}

// normalizeBadges keeps allowed badges only, lowercased, in first-seen order.
func normalizeBadges(fields Fields) []string {
	badges := make([]string, 0)
	seen := map[string]bool{}
	register := func(value any) {
		badge := strings.ToLower(utils.TrimToEmpty(value))
		if !allowedBadges[badge] || seen[badge] {
			return
		}
		seen[badge] = true
		badges = append(badges, badge)
	}

	for _, item := range toList(fields["badges"]) {
		register(item)
	}
	for _, item := range prefixedValues(fields, "badges[") {
		register(item)
	}
	return badges
}

// collectBodyImages gathers image URLs the caller wants to keep.
func collectBodyImages(fields Fields) []string {
	var images []string
	for _, key := range []string{"images", "existingImages", "keepImages"} {
		for _, item := range toList(fields[key]) {
			images = append(images, utils.TrimToEmpty(item))
		}
	}
	for _, item := range prefixedValues(fields, "images[") {
		images = append(images, utils.TrimToEmpty(item))
	}
	return uniqueStrings(images)
}

func uniqueStrings(values []string) []string {
	out := make([]string, 0, len(values))
	seen := map[string]bool{}
	for _, value := range values {
		if value == "" || seen[value] {
			continue
		}
		seen[value] = true
		out = append(out, value)
	}
	return out
}
