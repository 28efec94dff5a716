package erp

import (
	"bytes"
	"math"
	"strconv"
)

// Number is a float64 that tolerates the loose numeric encodings the
// billing backend emits: JSON null, the literal string "null", empty
// strings, quoted numbers, and NaN all decode to zero.
type Number float64

// Float returns the value as a plain float64.
func (n Number) Float() float64 {
	return float64(n)
}

// UnmarshalJSON decodes a backend numeric field, coercing anything
// unparseable to zero rather than failing the whole payload.
func (n *Number) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(bytes.TrimSpace(data), `"`))
	if s == "" || s == "null" || s == "NaN" {
		*n = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		*n = 0
		return nil
	}
	*n = Number(f)
	return nil
}

// MarshalJSON encodes the value as a plain JSON number. NaN and Inf
// are written as 0 so payloads stay valid JSON.
func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		f = 0
	}
	return []byte(strconv.FormatFloat(f, 'f', -1, 64)), nil
}
