package mockapi

import (
	"fmt"
	"math/rand"
)

// Corruption case indexes for malformed records.
const (
	caseAgeText = iota
	caseAgeNull
	caseTempText
	caseTempNull
	caseBPTruncated
	caseBPText
	caseBPNull
	caseIDMissing
	corruptionCases
)

var firstNames = []string{
	"Alex", "Bianca", "Chen", "Dara", "Elif", "Farid", "Grace", "Hugo",
	"Ines", "Jonas", "Kira", "Luca", "Mona", "Noor", "Omar", "Priya",
}

var lastNames = []string{
	"Adams", "Berg", "Castillo", "Dunn", "Egan", "Fischer", "Gupta",
	"Haddad", "Ito", "Jensen", "Kim", "Larsen", "Mendez", "Novak",
}

// patientRecord mirrors the wire shape of the real API. Fields stay
// loosely typed so corrupted variants serialize naturally.
type patientRecord struct {
	PatientID     interface{} `json:"patient_id,omitempty"`
	Name          string      `json:"name"`
	Age           interface{} `json:"age"`
	Temperature   interface{} `json:"temperature"`
	BloodPressure interface{} `json:"blood_pressure"`
}

// generateRoster builds the synthetic patient set. A fixed seed yields
// the same roster on every run, which keeps local pipelines comparable.
func generateRoster(cfg Config) []patientRecord {
	rng := rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // synthetic test data
	roster := make([]patientRecord, 0, cfg.NumPatients)

	for i := 0; i < cfg.NumPatients; i++ {
		rec := patientRecord{
			PatientID:     fmt.Sprintf("P%04d-%06x", i+1, rng.Intn(0xffffff)),
			Name:          firstNames[rng.Intn(len(firstNames))] + " " + lastNames[rng.Intn(len(lastNames))],
			Age:           float64(18 + rng.Intn(78)),
			Temperature:   roundTenth(97.0 + rng.Float64()*6.0),
			BloodPressure: fmt.Sprintf("%d/%d", 95+rng.Intn(70), 55+rng.Intn(50)),
		}

		if rng.Float64() < cfg.MalformedRate {
			corrupt(&rec, rng)
		}

		roster = append(roster, rec)
	}

	return roster
}

// corrupt damages one field of the record the way the real feed does:
// wrong types, sentinel strings, truncated readings, missing ids.
func corrupt(rec *patientRecord, rng *rand.Rand) {
	switch rng.Intn(corruptionCases) {
	case caseAgeText:
		rec.Age = "unknown"
	case caseAgeNull:
		rec.Age = nil
	case caseTempText:
		rec.Temperature = "TEMP_ERROR"
	case caseTempNull:
		rec.Temperature = nil
	case caseBPTruncated:
		rec.BloodPressure = fmt.Sprintf("%d/", 95+rng.Intn(70))
	case caseBPText:
		rec.BloodPressure = "INVALID"
	case caseBPNull:
		rec.BloodPressure = nil
	case caseIDMissing:
		rec.PatientID = nil
	}
}

// roundTenth rounds to one decimal place, matching the feed's precision.
func roundTenth(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
