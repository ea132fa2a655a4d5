package domain

// Settings carries the soft-rule weights and solver configuration. All
// weights are integers so the objective stays in exact integer arithmetic.
type Settings struct {
	WMaxHours    int64
	WMinHours    int64
	WTargetHours int64
	WWeekly48h   int64
	WBalance     int64

	// TargetToleranceHours is carried on the record; neither the core
	// objective nor the reporting package reads it.
	TargetToleranceHours float64

	// MaxSolveSeconds bounds the solver wall clock when positive. Expiry
	// without a solution counts as infeasible.
	MaxSolveSeconds float64
}

// DefaultSettings returns the standard weight set.
func DefaultSettings() Settings {
	return Settings{
		WMaxHours:            1000,
		WMinHours:            500,
		WTargetHours:         100,
		WWeekly48h:           500,
		WBalance:             50,
		TargetToleranceHours: 8.0,
	}
}
