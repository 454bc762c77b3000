package mockapi

// Config holds configuration for the mock assessment API.
type Config struct {
	NumPatients   int     // total synthetic patients served
	Seed          int64   // rng seed; fixed seed gives a reproducible roster
	MalformedRate float64 // fraction of records with a corrupted field
	FaultRate     float64 // fraction of requests answered with 429/500/503
	RotateShapes  bool    // cycle response envelope shapes per page
}

// DefaultConfig returns a config resembling the real assessment API:
// a small roster with a noticeable share of bad data and transient faults.
func DefaultConfig() Config {
	return Config{
		NumPatients:   47,
		Seed:          1,
		MalformedRate: 0.2,
		FaultRate:     0.15,
		RotateShapes:  false,
	}
}
