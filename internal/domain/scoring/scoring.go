// Package scoring implements the clinical risk rubric. All functions are
// pure and total: any raw input produces a score plus a validity flag,
// and an invalid reading always scores zero.
package scoring

import (
	"github.com/medwatch/triage/internal/domain/vitals"
)

// Point values per rubric band.
const (
	bpStage2Score   = 3
	bpStage1Score   = 2
	bpElevatedScore = 1

	tempHighFeverScore = 2
	tempLowFeverScore  = 1

	ageElderlyScore = 2
	ageMiddleScore  = 1
)

// Threshold constants, all in the units the API reports.
const (
	bpStage2Systolic     = 140
	bpStage2Diastolic    = 90
	bpStage1SystolicLo   = 130
	bpStage1SystolicHi   = 139
	bpStage1DiastolicLo  = 80
	bpStage1DiastolicHi  = 89
	bpElevatedSystolicLo = 120
	bpElevatedSystolicHi = 129

	tempHighFever = 101.0
	tempLowFever  = 99.6

	ageElderly  = 65
	ageMiddleLo = 40
)

// Result carries a component score and whether the reading parsed.
// Valid == false implies Score == 0.
type Result struct {
	Score int
	Valid bool
}

// TempResult additionally reports whether the reading is febrile.
type TempResult struct {
	Score int
	Valid bool
	Fever bool
}

// BloodPressure scores a raw blood-pressure field.
//
// Bands, checked in order:
//
//	systolic >= 140 or diastolic >= 90          -> 3 (Stage 2)
//	systolic 130-139 and diastolic 80-89        -> 2 (Stage 1)
//	systolic 120-129 and diastolic < 80         -> 1 (Elevated)
//	anything else                               -> 0
//
// Note the Stage 1 band requires both readings in range: a pair like
// 125/85 matches no band and scores 0 while remaining valid. That gap
// is kept intact; downstream consumers expect it.
func BloodPressure(raw interface{}) Result {
	sys, dia, ok := vitals.BloodPressure(raw)
	if !ok {
		return Result{Score: 0, Valid: false}
	}

	switch {
	case sys >= bpStage2Systolic || dia >= bpStage2Diastolic:
		return Result{Score: bpStage2Score, Valid: true}
	case sys >= bpStage1SystolicLo && sys <= bpStage1SystolicHi &&
		dia >= bpStage1DiastolicLo && dia <= bpStage1DiastolicHi:
		return Result{Score: bpStage1Score, Valid: true}
	case sys >= bpElevatedSystolicLo && sys <= bpElevatedSystolicHi &&
		dia < bpStage1DiastolicLo:
		return Result{Score: bpElevatedScore, Valid: true}
	default:
		return Result{Score: 0, Valid: true}
	}
}

// Temperature scores a raw temperature field (degrees Fahrenheit).
// 101.0 and above is a high fever, 99.6 through the high-fever cutoff
// a low-grade fever; anything at or below 99.5 is afebrile.
func Temperature(raw interface{}) TempResult {
	val, ok := vitals.Number(raw)
	if !ok {
		return TempResult{Score: 0, Valid: false, Fever: false}
	}

	switch {
	case val >= tempHighFever:
		return TempResult{Score: tempHighFeverScore, Valid: true, Fever: true}
	case val >= tempLowFever:
		return TempResult{Score: tempLowFeverScore, Valid: true, Fever: true}
	default:
		return TempResult{Score: 0, Valid: true, Fever: false}
	}
}

// Age scores a raw age field. Over 65 scores 2, 40 through 65 scores 1,
// under 40 scores 0.
func Age(raw interface{}) Result {
	val, ok := vitals.Number(raw)
	if !ok {
		return Result{Score: 0, Valid: false}
	}

	switch {
	case val > ageElderly:
		return Result{Score: ageElderlyScore, Valid: true}
	case val >= ageMiddleLo:
		return Result{Score: ageMiddleScore, Valid: true}
	default:
		return Result{Score: 0, Valid: true}
	}
}
