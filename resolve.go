// FILE: benchconf/resolve.go
package benchconf

import (
	"fmt"
	"reflect"
	"strconv"
	"time"
)

// Resolve returns the effective value of d on this container: the explicit
// value if one is set, otherwise the descriptor's resolver applied to the
// fallback, otherwise the fallback itself. Resolve never fails; absence of an
// explicit value is the normal case, not an error.
//
// For group descriptors Resolve returns the materialized child container, or
// nil if none exists and no resolver is attached.
func (c *Container) Resolve(d *Descriptor) any {
	if d.Nested() {
		if e, ok := c.children[d.key()]; ok {
			return e.child
		}
		if r := d.resolver; r != nil {
			return r(c, d.fallback)
		}
		return d.fallback
	}
	if e, ok := c.values[d.key()]; ok {
		return e.value
	}
	if r := d.resolver; r != nil {
		return r(c, d.fallback)
	}
	return d.fallback
}

// String resolves d and returns the value as a string, converting from common
// types where the stored value isn't one already. A nil resolved value is
// returned as the empty string.
func (c *Container) String(d *Descriptor) (string, error) {
	val := c.Resolve(d)
	if val == nil {
		return "", nil
	}

	if strVal, ok := val.(string); ok {
		return strVal, nil
	}

	switch v := val.(type) {
	case fmt.Stringer:
		return v.String(), nil
	case []byte:
		return string(v), nil
	case int, int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(val).Int(), 10), nil
	case uint, uint8, uint16, uint32, uint64:
		return strconv.FormatUint(reflect.ValueOf(val).Uint(), 10), nil
	case float32, float64:
		return strconv.FormatFloat(reflect.ValueOf(val).Float(), 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	case error:
		return v.Error(), nil
	default:
		return "", fmt.Errorf("cannot convert type %T to string for %s", val, d.FullID())
	}
}

// Int64 resolves d and returns the value as an int64, converting from numeric
// types, parsable strings, and booleans.
func (c *Container) Int64(d *Descriptor) (int64, error) {
	val := c.Resolve(d)
	if val == nil {
		return 0, fmt.Errorf("value for %s is nil, cannot convert to int64", d.FullID())
	}

	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := v.Uint()
		maxInt64 := int64(^uint64(0) >> 1)
		if u > uint64(maxInt64) {
			return 0, fmt.Errorf("cannot convert unsigned integer %d (type %T) to int64 for %s: overflow", u, val, d.FullID())
		}
		return int64(u), nil
	case reflect.Float32, reflect.Float64:
		// Truncate float to int
		return int64(v.Float()), nil
	case reflect.String:
		s := v.String()
		if i, err := strconv.ParseInt(s, 0, 64); err == nil { // Base 0 for auto-detection (e.g., "0xFF")
			return i, nil
		} else {
			if f, ferr := strconv.ParseFloat(s, 64); ferr == nil {
				return int64(f), nil // Truncate
			}
			return 0, fmt.Errorf("cannot convert string %q to int64 for %s: %w", s, d.FullID(), err)
		}
	case reflect.Bool:
		if v.Bool() {
			return 1, nil
		}
		return 0, nil
	}

	return 0, fmt.Errorf("cannot convert type %T to int64 for %s", val, d.FullID())
}

// Bool resolves d and returns the value as a bool, converting from numeric
// types (0=false, non-zero=true) and parsable strings.
func (c *Container) Bool(d *Descriptor) (bool, error) {
	val := c.Resolve(d)
	if val == nil {
		return false, fmt.Errorf("value for %s is nil, cannot convert to bool", d.FullID())
	}

	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Bool:
		return v.Bool(), nil
	case reflect.String:
		s := v.String()
		if b, err := strconv.ParseBool(s); err == nil {
			return b, nil
		} else {
			return false, fmt.Errorf("cannot convert string %q to bool for %s: %w", s, d.FullID(), err)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() != 0, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() != 0, nil
	case reflect.Float32, reflect.Float64:
		return v.Float() != 0, nil
	}

	return false, fmt.Errorf("cannot convert type %T to bool for %s", val, d.FullID())
}

// Float64 resolves d and returns the value as a float64, converting from
// numeric types, parsable strings, and booleans.
func (c *Container) Float64(d *Descriptor) (float64, error) {
	val := c.Resolve(d)
	if val == nil {
		return 0.0, fmt.Errorf("value for %s is nil, cannot convert to float64", d.FullID())
	}

	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return v.Float(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), nil
	case reflect.String:
		s := v.String()
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f, nil
		} else {
			return 0.0, fmt.Errorf("cannot convert string %q to float64 for %s: %w", s, d.FullID(), err)
		}
	case reflect.Bool:
		if v.Bool() {
			return 1.0, nil
		}
		return 0.0, nil
	}

	return 0.0, fmt.Errorf("cannot convert type %T to float64 for %s", val, d.FullID())
}

// Duration resolves d and returns the value as a time.Duration. Strings parse
// with time.ParseDuration; integer values are taken as nanoseconds.
func (c *Container) Duration(d *Descriptor) (time.Duration, error) {
	val := c.Resolve(d)
	if val == nil {
		return 0, fmt.Errorf("value for %s is nil, cannot convert to duration", d.FullID())
	}

	switch v := val.(type) {
	case time.Duration:
		return v, nil
	case string:
		dur, err := time.ParseDuration(v)
		if err != nil {
			return 0, fmt.Errorf("cannot convert string %q to duration for %s: %w", v, d.FullID(), err)
		}
		return dur, nil
	}

	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return time.Duration(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return time.Duration(rv.Uint()), nil
	}

	return 0, fmt.Errorf("cannot convert type %T to duration for %s", val, d.FullID())
}
