package scoring

import "fmt"

// MarketReference is the injected market baseline the pricing scorer
// compares against. The engine never embeds example data; callers load
// these values from configuration.
type MarketReference struct {
	// AveragePerLot is the reference market average amount for one lot.
	AveragePerLot float64 `json:"average_per_lot" yaml:"averagePerLot"`
	// LowPriceThreshold is the absolute per-lot amount below which a
	// price is implausibly low rather than a bargain.
	LowPriceThreshold float64 `json:"low_price_threshold" yaml:"lowPriceThreshold"`
}

// DefaultMarketReference returns the reference values shipped in the
// default configuration.
func DefaultMarketReference() MarketReference {
	return MarketReference{
		AveragePerLot:     8000,
		LowPriceThreshold: 2500,
	}
}

// PricingAnomalyScore maps the deviation of the average per-lot amount
// from the market reference to a banded score. Below-market prices score
// high until they cross the absolute low-price threshold, at which point
// the price stops being a bargain and becomes a warning sign: the score
// collapses and, if any critical lot is present, the critical-lot
// anomaly is raised for the capping stage.
func PricingAnomalyScore(p PricingBreakdown, lots []LotDescriptor, market MarketReference) PricingScore {
	avgPerLot := p.TotalAmount / float64(len(lots))
	deviation := (avgPerLot - market.AveragePerLot) / market.AveragePerLot * 100

	var risks, benefits []string
	var anomalies []string
	var score float64

	switch {
	case avgPerLot < market.LowPriceThreshold:
		score = 20
		anomalies = append(anomalies, AnomalyImplausiblyLowPrice)
		risks = append(risks, fmt.Sprintf("average per lot %.0f below plausibility threshold %.0f",
			avgPerLot, market.LowPriceThreshold))
		for _, l := range lots {
			if l.Critical() {
				anomalies = append(anomalies, AnomalyCriticalLotUnderpriced)
				risks = append(risks, fmt.Sprintf("critical lot %q underpriced", l.Category))
				break
			}
		}
	case deviation <= -20:
		score = 100
		benefits = append(benefits, fmt.Sprintf("%.0f%% below market average", -deviation))
	case deviation < -10:
		score = 90
		benefits = append(benefits, fmt.Sprintf("%.0f%% below market average", -deviation))
	case deviation < 0:
		score = 80
	case deviation < 10:
		score = 70
	default:
		// Above +10% the score tapers linearly toward 0.
		score = 70 - 2*(deviation-10)
		if score < 0 {
			score = 0
		}
		risks = append(risks, fmt.Sprintf("%.0f%% above market average", deviation))
	}

	return PricingScore{
		SubScore: SubScore{
			Value:    clampScore("pricing", score),
			Risks:    risks,
			Benefits: benefits,
		},
		MarketDeviationPct: deviation,
		Anomalies:          anomalies,
	}
}
