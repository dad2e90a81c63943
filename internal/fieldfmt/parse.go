// Package fieldfmt turns optional, loosely typed HAR values into display
// strings. Every parser fails closed: a value that cannot be parsed is
// reported as absent instead of being rendered as NaN or an empty string.
package fieldfmt

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ParseAndFormat applies parse to raw and, when it succeeds, format to the
// parsed value. A nil format renders the parsed value with fmt.
func ParseAndFormat[T any](raw any, parse func(any) (T, bool), format func(T) string) (string, bool) {
	v, ok := parse(raw)
	if !ok {
		return "", false
	}
	if format == nil {
		return display(v), true
	}
	return format(v), true
}

func display(v any) string {
	if f, ok := v.(float64); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}

// ParsePositive succeeds for numbers strictly greater than zero.
func ParsePositive(raw any) (float64, bool) {
	n, ok := Number(raw)
	if !ok || n <= 0 {
		return 0, false
	}
	return n, true
}

// ParseNonNegative succeeds for numbers greater than or equal to zero.
func ParseNonNegative(raw any) (float64, bool) {
	n, ok := Number(raw)
	if !ok || n < 0 {
		return 0, false
	}
	return n, true
}

// ParseNonEmpty succeeds for strings that contain more than whitespace.
func ParseNonEmpty(raw any) (string, bool) {
	s, ok := raw.(string)
	if !ok {
		if p, isPtr := raw.(*string); isPtr && p != nil {
			s, ok = *p, true
		}
	}
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// ParseDate accepts time.Time values, ISO-8601 timestamps and the three
// HTTP date formats.
func ParseDate(raw any) (time.Time, bool) {
	switch v := raw.(type) {
	case time.Time:
		return v, !v.IsZero()
	case *time.Time:
		if v == nil || v.IsZero() {
			return time.Time{}, false
		}
		return *v, true
	}
	s, ok := ParseNonEmpty(raw)
	if !ok {
		return time.Time{}, false
	}
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	if t, err := http.ParseTime(s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// Number converts the numeric shapes found in decoded HAR documents.
func Number(raw any) (float64, bool) {
	var n float64
	switch v := raw.(type) {
	case nil:
		return 0, false
	case float64:
		n = v
	case float32:
		n = float64(v)
	case int:
		n = float64(v)
	case int64:
		n = float64(v)
	case int32:
		n = float64(v)
	case uint64:
		n = float64(v)
	case *float64:
		if v == nil {
			return 0, false
		}
		n = *v
	case *int:
		if v == nil {
			return 0, false
		}
		n = float64(*v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		n = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		n = f
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// Text stringifies pass-through values. Strings are returned as-is,
// numbers without trailing zeros; anything else is absent.
func Text(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	}
	if n, ok := Number(raw); ok {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return ""
}
