package envconfig

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Redblueflame/env-config/pkg/schema"
)

// Canonical value types held by drafts and records:
// string, int64, uint64, float64, bool and time.Duration.

var errOutOfRange = errors.New("value out of range")

// number is satisfied by json.Number.
type number interface {
	Int64() (int64, error)
	Float64() (float64, error)
	String() string
}

// fromFile converts a decoded file value to the canonical value of f.
// Only lossless conversions are accepted; anything else means the document
// does not match the schema.
func fromFile(f schema.Field, raw any) (any, error) {
	switch f.Kind {
	case schema.String:
		s, ok := raw.(string)
		if !ok {
			return nil, mismatch(f, raw)
		}
		return s, nil

	case schema.Bool:
		b, ok := raw.(bool)
		if !ok {
			return nil, mismatch(f, raw)
		}
		return b, nil

	case schema.Int:
		n, ok := fileInt(raw)
		if !ok {
			return nil, mismatch(f, raw)
		}
		if !intFits(n, f.BitSize()) {
			return nil, fmt.Errorf("%w: %d does not fit in int%d", errOutOfRange, n, f.BitSize())
		}
		return n, nil

	case schema.Uint:
		n, ok := fileInt(raw)
		if ok && n < 0 {
			return nil, fmt.Errorf("%w: %d is negative", errOutOfRange, n)
		}
		var u uint64
		if ok {
			u = uint64(n)
		} else if u, ok = fileUint(raw); !ok {
			return nil, mismatch(f, raw)
		}
		if !uintFits(u, f.BitSize()) {
			return nil, fmt.Errorf("%w: %d does not fit in uint%d", errOutOfRange, u, f.BitSize())
		}
		return u, nil

	case schema.Float:
		x, ok := fileFloat(raw)
		if !ok {
			return nil, mismatch(f, raw)
		}
		if !floatFits(x, f.BitSize()) {
			return nil, fmt.Errorf("%w: %g does not fit in float%d", errOutOfRange, x, f.BitSize())
		}
		return x, nil

	case schema.Duration:
		if s, ok := raw.(string); ok {
			d, err := time.ParseDuration(strings.TrimSpace(s))
			if err != nil {
				return nil, err
			}
			return d, nil
		}
		n, ok := fileInt(raw)
		if !ok {
			return nil, mismatch(f, raw)
		}
		return time.Duration(n), nil
	}

	return nil, fmt.Errorf("unsupported kind %s", f.Kind)
}

// fromEnv parses an environment string into the canonical value of f.
func fromEnv(f schema.Field, raw string) (any, error) {
	switch f.Kind {
	case schema.String:
		return raw, nil
	case schema.Bool:
		return strconv.ParseBool(strings.TrimSpace(raw))
	case schema.Int:
		return strconv.ParseInt(strings.TrimSpace(raw), 10, f.BitSize())
	case schema.Uint:
		return strconv.ParseUint(strings.TrimSpace(raw), 10, f.BitSize())
	case schema.Float:
		return strconv.ParseFloat(strings.TrimSpace(raw), f.BitSize())
	case schema.Duration:
		s := strings.TrimSpace(raw)
		d, err := time.ParseDuration(s)
		if err == nil {
			return d, nil
		}
		// Bare integers are nanoseconds, as in files.
		if n, nerr := strconv.ParseInt(s, 10, 64); nerr == nil {
			return time.Duration(n), nil
		}
		return nil, err
	}
	return nil, fmt.Errorf("unsupported kind %s", f.Kind)
}

func mismatch(f schema.Field, raw any) error {
	return fmt.Errorf("expected %s, got %T", f.Kind, raw)
}

// fileInt accepts every integer type, integral floats and json numbers.
func fileInt(raw any) (int64, bool) {
	switch v := raw.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return int64(v), uint64(v) <= math.MaxInt64
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return int64(v), v <= math.MaxInt64
	case float32:
		return floatToInt(float64(v))
	case float64:
		return floatToInt(v)
	case number:
		if n, err := v.Int64(); err == nil {
			return n, true
		}
		if x, err := v.Float64(); err == nil {
			return floatToInt(x)
		}
	}
	return 0, false
}

// fileUint accepts unsigned values above MaxInt64, including json numbers
// that do not fit in an int64.
func fileUint(raw any) (uint64, bool) {
	switch v := raw.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case number:
		u, err := strconv.ParseUint(v.String(), 10, 64)
		return u, err == nil
	}
	return 0, false
}

func floatToInt(x float64) (int64, bool) {
	if math.Trunc(x) != x || x < math.MinInt64 || x >= math.MaxInt64 {
		return 0, false
	}
	return int64(x), true
}

// fileFloat accepts every numeric type.
func fileFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case number:
		x, err := v.Float64()
		return x, err == nil
	}
	if n, ok := fileInt(raw); ok {
		return float64(n), true
	}
	if u, ok := raw.(uint64); ok {
		return float64(u), true
	}
	return 0, false
}

func intFits(n int64, bits int) bool {
	if bits >= 64 {
		return true
	}
	limit := int64(1) << (bits - 1)
	return n >= -limit && n < limit
}

func uintFits(u uint64, bits int) bool {
	if bits >= 64 {
		return true
	}
	return u < uint64(1)<<bits
}

func floatFits(x float64, bits int) bool {
	if bits >= 64 || math.IsInf(x, 0) || math.IsNaN(x) {
		return true
	}
	return math.Abs(x) <= math.MaxFloat32
}
