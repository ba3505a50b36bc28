package chart

import (
	"encoding/json"
	"math"
)

// Float returns a pointer to v, or nil when v is NaN or ±Inf.
func Float(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// Sanitize maps a float slice to nullable values so it marshals as strict JSON.
func Sanitize(values []float64) []*float64 {
	out := make([]*float64, len(values))
	for i, v := range values {
		out[i] = Float(v)
	}
	return out
}

// Marshal encodes payload as strict JSON. encoding/json already rejects NaN,
// so any non-finite value that slipped past Sanitize surfaces as an error here.
func Marshal(payload any) ([]byte, error) {
	return json.Marshal(payload)
}
