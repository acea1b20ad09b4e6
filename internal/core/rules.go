package core

// Rules bundles the business constants shared by the validators and the
// premium calculator. The values mirror the RPG copybook on the host; they are
// injected so the services stay pure and testable in isolation.
type Rules struct {
	MinClaimThreshold  float64 // minimum intervention amount (EUR)
	CoverageLimitMax   float64 // standard coverage ceiling (EUR)
	VehicleAddonRate   float64 // per-vehicle premium addon (EUR)
	MonthlySurcharge   float64 // pay frequency M multiplier
	QuarterlySurcharge float64 // pay frequency Q multiplier

	ContractDurationYears  int
	CancellationNoticeDays int

	AmicableResolutionTarget float64 // share of claims expected to settle amicably
}

// DefaultRules returns the production rule set.
func DefaultRules() Rules {
	return Rules{
		MinClaimThreshold:        350,
		CoverageLimitMax:         200000,
		VehicleAddonRate:         25,
		MonthlySurcharge:         1.05,
		QuarterlySurcharge:       1.02,
		ContractDurationYears:    1,
		CancellationNoticeDays:   60,
		AmicableResolutionTarget: 0.79,
	}
}
