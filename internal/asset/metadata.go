package asset

import (
	"fmt"
	"maps"
	"math"
	"strconv"
)

// Metadata keys understood by Asset.
const (
	KeyWidth         = "width"
	KeyHeight        = "height"
	KeyQualityWidth  = "quality_width"
	KeyQualityHeight = "quality_height"
	KeyStartFrame    = "start_frame"
	KeyEndFrame      = "end_frame"
	KeyFPS           = "fps"
	KeyDurationSec   = "duration_sec"
	KeyStartSec      = "start_sec"
	KeyEndSec        = "end_sec"
	KeyYUVType       = "yuv_type"
)

// Metadata holds optional per-asset overrides. Values are ints, floats or
// strings; TOML and JSON decoders produce compatible types.
type Metadata map[string]any

// Clone returns a shallow copy of the mapping.
func (m Metadata) Clone() Metadata {
	if m == nil {
		return Metadata{}
	}
	return maps.Clone(m)
}

// Has reports whether key is present.
func (m Metadata) Has(key string) bool {
	_, ok := m[key]
	return ok
}

// Int returns the integer stored under key. Floats are accepted when they carry
// no fractional part.
func (m Metadata) Int(key string) (int, bool, error) {
	raw, ok := m[key]
	if !ok {
		return 0, false, nil
	}
	switch v := raw.(type) {
	case int:
		return v, true, nil
	case int8:
		return int(v), true, nil
	case int16:
		return int(v), true, nil
	case int32:
		return int(v), true, nil
	case int64:
		return int(v), true, nil
	case uint:
		return int(v), true, nil
	case uint8:
		return int(v), true, nil
	case uint16:
		return int(v), true, nil
	case uint32:
		return int(v), true, nil
	case uint64:
		return int(v), true, nil
	case float32:
		return integralFloat(key, float64(v))
	case float64:
		return integralFloat(key, v)
	default:
		return 0, false, fmt.Errorf("%s must be an integer, got %T %v", key, raw, raw)
	}
}

// Float returns the number stored under key as a float64.
func (m Metadata) Float(key string) (float64, bool, error) {
	raw, ok := m[key]
	if !ok {
		return 0, false, nil
	}
	switch v := raw.(type) {
	case float64:
		return v, true, nil
	case float32:
		return float64(v), true, nil
	case int:
		return float64(v), true, nil
	case int8:
		return float64(v), true, nil
	case int16:
		return float64(v), true, nil
	case int32:
		return float64(v), true, nil
	case int64:
		return float64(v), true, nil
	case uint:
		return float64(v), true, nil
	case uint8:
		return float64(v), true, nil
	case uint16:
		return float64(v), true, nil
	case uint32:
		return float64(v), true, nil
	case uint64:
		return float64(v), true, nil
	default:
		return 0, false, fmt.Errorf("%s must be a number, got %T %v", key, raw, raw)
	}
}

// Text returns the string stored under key.
func (m Metadata) Text(key string) (string, bool, error) {
	raw, ok := m[key]
	if !ok {
		return "", false, nil
	}
	s, isString := raw.(string)
	if !isString {
		return "", false, fmt.Errorf("%s must be a string, got %T %v", key, raw, raw)
	}
	return s, true, nil
}

func integralFloat(key string, v float64) (int, bool, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
		return 0, false, fmt.Errorf("%s must be an integer, got %s", key, strconv.FormatFloat(v, 'g', -1, 64))
	}
	return int(v), true, nil
}

// intPair looks up two keys that are only meaningful together. A pair with a
// single member present is an error.
func (m Metadata) intPair(first, second string) (int, int, bool, error) {
	a, okA, err := m.Int(first)
	if err != nil {
		return 0, 0, false, err
	}
	b, okB, err := m.Int(second)
	if err != nil {
		return 0, 0, false, err
	}
	switch {
	case okA && okB:
		return a, b, true, nil
	case okA:
		return 0, 0, false, fmt.Errorf("%s is set without %s", first, second)
	case okB:
		return 0, 0, false, fmt.Errorf("%s is set without %s", second, first)
	default:
		return 0, 0, false, nil
	}
}

// fps returns the frame rate, rejecting non-positive values.
func (m Metadata) fps() (float64, bool, error) {
	fps, ok, err := m.Float(KeyFPS)
	if err != nil || !ok {
		return 0, ok, err
	}
	if fps <= 0 || math.IsNaN(fps) || math.IsInf(fps, 0) {
		return 0, false, fmt.Errorf("%s must be a positive number, got %v", KeyFPS, fps)
	}
	return fps, true, nil
}
