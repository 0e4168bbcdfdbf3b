package scoring

// Config holds the thresholds of the scoring engine. Point values of the individual
// tiers live next to the rule that uses them.
type Config struct {
	MinPrice float64
	MaxPrice float64

	PumpChangePercent float64
	PumpVolumeRatio   float64

	LargeCapThreshold float64
	MidCapThreshold   float64

	AccumulationMinRatio  float64
	AccumulationMaxRatio  float64
	AccumulationMaxChange float64
	AccumulationBonus     int
	AccumulationBoost     int
	EarlyEntryDiscount    float64

	PatternWeight       float64
	StopLossPercent     float64
	EarningsHorizonDays int
}

// DefaultConfig returns the thresholds used by the screener.
func DefaultConfig() Config {
	return Config{
		MinPrice: 50,
		MaxPrice: 50000,

		PumpChangePercent: 25,
		PumpVolumeRatio:   5,

		LargeCapThreshold: 10_000_000_000_000,
		MidCapThreshold:   1_000_000_000_000,

		AccumulationMinRatio:  1.3,
		AccumulationMaxRatio:  3.0,
		AccumulationMaxChange: 2.5,
		AccumulationBonus:     25,
		AccumulationBoost:     30,
		EarlyEntryDiscount:    0.01,

		PatternWeight:       20,
		StopLossPercent:     0.06,
		EarningsHorizonDays: 45,
	}
}
