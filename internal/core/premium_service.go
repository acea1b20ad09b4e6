package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

type premiumService struct {
	products ProductRepo
	rules    Rules
}

func NewPremiumService(products ProductRepo, rules Rules) PremiumService {
	return &premiumService{products: products, rules: rules}
}

func (s *premiumService) Calculate(ctx context.Context, productCode string, vehiclesCount int, frequency PayFrequency) (PremiumBreakdown, error) {
	// The boundary layer validates too, but this is the authoritative engine.
	if vehiclesCount < 0 || vehiclesCount > 99 {
		return PremiumBreakdown{}, fmt.Errorf("%w: vehicles count must be between 0 and 99", ErrValidation)
	}

	code := strings.ToUpper(strings.TrimSpace(productCode))
	product, err := s.products.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return PremiumBreakdown{}, fmt.Errorf("%w: %q", ErrProductNotFound, code)
		}
		return PremiumBreakdown{}, err
	}
	if product.Status != StatusActive {
		return PremiumBreakdown{}, fmt.Errorf("%w: %q", ErrProductNotFound, code)
	}

	vehicleAddon := float64(vehiclesCount) * s.rules.VehicleAddonRate
	subtotal := product.BasePremium + vehicleAddon

	multiplier, label := s.frequencyMultiplier(frequency)
	if frequency == "" {
		frequency = PayAnnual
	}

	return PremiumBreakdown{
		ProductCode:         product.Code,
		ProductName:         product.Name,
		BasePremium:         product.BasePremium,
		VehiclesCount:       vehiclesCount,
		VehicleAddon:        vehicleAddon,
		PayFrequency:        frequency,
		FrequencyLabel:      label,
		FrequencyMultiplier: multiplier,
		TotalPremium:        subtotal,
		FinalPremium:        round2(subtotal * multiplier),
	}, nil
}

// frequencyMultiplier maps the payment frequency to its surcharge. Unknown or
// omitted frequencies fall back to annual.
func (s *premiumService) frequencyMultiplier(f PayFrequency) (float64, string) {
	switch f {
	case PayMonthly:
		return s.rules.MonthlySurcharge, "Monthly"
	case PayQuarterly:
		return s.rules.QuarterlySurcharge, "Quarterly"
	default:
		return 1.00, "Annual"
	}
}
