// FILE: benchconf/helper.go
package benchconf

import (
	"reflect"
	"strconv"
	"strings"
	"time"
)

// flattenMap converts a nested map[string]any to a flat map with dot-notation
// paths, the shape file loading binds against descriptor full ids.
func flattenMap(nested map[string]any, prefix string) map[string]any {
	flat := make(map[string]any)

	for key, value := range nested {
		newPath := key
		if prefix != "" {
			newPath = prefix + "." + key
		}

		if nestedMap, isMap := value.(map[string]any); isMap {
			for subPath, subValue := range flattenMap(nestedMap, newPath) {
				flat[subPath] = subValue
			}
		} else {
			flat[newPath] = value
		}
	}

	return flat
}

// setNestedValue sets a value in a nested map using a dot-notation path,
// creating intermediate maps as needed. A non-map segment in the way is
// overwritten by a new map.
func setNestedValue(nested map[string]any, path string, value any) {
	segments := strings.Split(path, ".")
	current := nested

	for i := 0; i < len(segments)-1; i++ {
		segment := segments[i]

		next, exists := current[segment]
		if !exists {
			newMap := make(map[string]any)
			current[segment] = newMap
			current = newMap
			continue
		}
		if nextMap, isMap := next.(map[string]any); isMap {
			current = nextMap
		} else {
			newMap := make(map[string]any)
			current[segment] = newMap
			current = newMap
		}
	}

	current[segments[len(segments)-1]] = value
}

// isValidKeySegment checks if an owner or id is a valid bare key: ASCII
// letters, digits, underscores, and dashes, starting with a letter or
// underscore, no dots.
func isValidKeySegment(s string) bool {
	if len(s) == 0 {
		return false
	}
	first := rune(s[0])
	if !isAlpha(first) && first != '_' {
		return false
	}
	for _, r := range s[1:] {
		if !isAlpha(r) && !isNumeric(r) && r != '-' && r != '_' {
			return false
		}
	}
	return true
}

func isAlpha(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNumeric(c rune) bool {
	return c >= '0' && c <= '9'
}

// parseValue interprets an environment variable string as bool, int64, or
// float64 where possible, otherwise keeps it as a string.
func parseValue(s string) any {
	if v, err := strconv.ParseBool(s); err == nil {
		return v
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	return s
}

// coerceValue bends a loosely-typed source value (file or env parse output)
// toward the descriptor's declared value type. Values that cannot be coerced
// are returned unchanged, leaving the type check in Set to reject them.
func coerceValue(v any, t reflect.Type) any {
	if v == nil || t == nil {
		return v
	}
	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(t) {
		return v
	}
	if s, ok := v.(string); ok && t == reflect.TypeOf(time.Duration(0)) {
		if d, err := time.ParseDuration(s); err == nil {
			return d
		}
		return v
	}
	if rv.Type().ConvertibleTo(t) {
		// Restrict conversions to numeric kinds; converting e.g. int64 to
		// string via reflect yields a code point, not digits.
		if isNumericKind(rv.Kind()) && isNumericKind(t.Kind()) {
			return rv.Convert(t).Interface()
		}
	}
	return v
}

func isNumericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
