// Package model contains domain models passed between layers.
package model

import (
	"math"
	"strconv"
	"strings"
)

// Patient is a raw record as returned by the assessment API. The source
// guarantees no schema: every field may be absent, null, or wrong-typed,
// so fields stay loosely typed until normalization.
type Patient struct {
	ID            interface{} `json:"patient_id"`
	Name          interface{} `json:"name"`
	Age           interface{} `json:"age"`
	Temperature   interface{} `json:"temperature"`
	BloodPressure interface{} `json:"blood_pressure"`
}

// Identifier derives the patient identifier as a non-empty string.
// Strings are trimmed; JSON numbers are coerced to their canonical
// decimal form. Returns ("", false) when no identifier is derivable.
func (p Patient) Identifier() (string, bool) {
	switch v := p.ID.(type) {
	case string:
		id := strings.TrimSpace(v)
		return id, id != ""
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return "", false
		}
		if v == math.Trunc(v) {
			return strconv.FormatFloat(v, 'f', 0, 64), true
		}
		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		return "", false
	}
}

// AlertPayload is the assessment result submitted back to the API.
// Each list is deduplicated and sorted ascending.
type AlertPayload struct {
	HighRisk    []string `json:"high_risk_patients"`
	Fever       []string `json:"fever_patients"`
	DataQuality []string `json:"data_quality_issues"`
}
