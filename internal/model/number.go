package model

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Number is a monetary or percentage value that decodes leniently.
// JSON numbers, numeric strings, null and "" are accepted; anything that is
// not numeric decodes to 0 instead of failing the whole payload.
type Number float64

// Float64 returns n as a float64, mapping NaN and infinities to 0.
func (n Number) Float64() float64 {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// MarshalJSON encodes n as a plain JSON number.
func (n Number) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(n.Float64(), 'f', -1, 64)), nil
}

// UnmarshalJSON decodes n from any JSON scalar.
func (n *Number) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		*n = 0
		return nil //nolint:nilerr // lenient by contract
	}
	*n = Number(ToNumber(raw))
	return nil
}

// ToNumber coerces v to a finite float64, returning 0 when v is not numeric.
func ToNumber(v any) float64 {
	if s, ok := v.(string); ok {
		v = strings.TrimSpace(s)
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0
	}
	return Number(f).Float64()
}
