package core

import "context"

// PremiumBreakdown itemizes a premium calculation so the UI can render every
// step: base rate, vehicle addon, and the payment-frequency surcharge.
type PremiumBreakdown struct {
	ProductCode   string  `json:"product_code"`
	ProductName   string  `json:"product_name"`
	BasePremium   float64 `json:"base_premium"`
	VehiclesCount int     `json:"vehicles_count"`
	VehicleAddon  float64 `json:"vehicle_addon"`

	PayFrequency        PayFrequency `json:"pay_frequency"`
	FrequencyLabel      string       `json:"frequency_label"`
	FrequencyMultiplier float64      `json:"frequency_multiplier"`

	// TotalPremium is the pre-surcharge subtotal; FinalPremium is rounded
	// half-up to cents after the multiplier is applied.
	TotalPremium float64 `json:"total_premium"`
	FinalPremium float64 `json:"final_premium"`
}

// PremiumService is the authoritative numeric engine for contract premiums.
type PremiumService interface {
	Calculate(ctx context.Context, productCode string, vehiclesCount int, frequency PayFrequency) (PremiumBreakdown, error)
}
