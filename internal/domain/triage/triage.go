// Package triage folds per-patient risk scores into the alert buckets
// submitted back to the assessment API.
package triage

import (
	"sort"

	"github.com/medwatch/triage/internal/domain/model"
	"github.com/medwatch/triage/internal/domain/scoring"
	"github.com/medwatch/triage/pkg/metrics"
)

// highRiskThreshold is the minimum total score that marks a patient
// high-risk.
const highRiskThreshold = 4

// Membership captures a single patient's derived alert flags. The three
// flags are independent; a patient can carry any subset.
type Membership struct {
	ID          string
	Total       int
	DataQuality bool
	Fever       bool
	HighRisk    bool
}

// Assess scores one record and derives its alert membership. The second
// return is false when the record has no derivable identifier, in which
// case the record contributes nothing to the assessment.
func Assess(p model.Patient) (Membership, bool) {
	id, ok := p.Identifier()
	if !ok {
		return Membership{}, false
	}

	bp := scoring.BloodPressure(p.BloodPressure)
	temp := scoring.Temperature(p.Temperature)
	age := scoring.Age(p.Age)

	if !bp.Valid {
		metrics.RecordInvalidField("blood_pressure")
	}
	if !temp.Valid {
		metrics.RecordInvalidField("temperature")
	}
	if !age.Valid {
		metrics.RecordInvalidField("age")
	}

	// Invalid components contribute zero points, not a penalty.
	total := bp.Score + temp.Score + age.Score

	return Membership{
		ID:          id,
		Total:       total,
		DataQuality: !bp.Valid || !temp.Valid || !age.Valid,
		Fever:       temp.Valid && temp.Fever,
		HighRisk:    total >= highRiskThreshold,
	}, true
}

// Aggregate assesses every record and returns the alert payload. Each
// bucket is deduplicated (a duplicated record contributes one entry)
// and sorted ascending by identifier.
func Aggregate(patients []model.Patient) model.AlertPayload {
	highRisk := make(map[string]struct{})
	fever := make(map[string]struct{})
	dataQuality := make(map[string]struct{})

	for _, p := range patients {
		m, ok := Assess(p)
		if !ok {
			continue
		}
		if m.HighRisk {
			highRisk[m.ID] = struct{}{}
		}
		if m.Fever {
			fever[m.ID] = struct{}{}
		}
		if m.DataQuality {
			dataQuality[m.ID] = struct{}{}
		}
	}

	payload := model.AlertPayload{
		HighRisk:    sortedKeys(highRisk),
		Fever:       sortedKeys(fever),
		DataQuality: sortedKeys(dataQuality),
	}

	metrics.UpdateAlertBucketSize("high_risk", len(payload.HighRisk))
	metrics.UpdateAlertBucketSize("fever", len(payload.Fever))
	metrics.UpdateAlertBucketSize("data_quality", len(payload.DataQuality))

	return payload
}

// sortedKeys flattens a set into an ascending-sorted slice. The result
// is never nil so the payload marshals as [] rather than null.
func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
