package scoring

import "math"

// Pillar projection: each 0-100 sub-score maps linearly onto a 250-point
// band of the canonical 0-1000 scale.
const pillarWeight = 2.5

// ComposeGlobalScore projects the four sub-scores onto their pillars and
// sums them into the canonical 0-1000 score. The raw grade is mapped
// here; capping runs as a separate stage.
func ComposeGlobalScore(enterprise SubScore, pricing PricingScore, quality QualityScore, compliance ComplianceSummary) CompositeScore {
	pillars := PillarBreakdown{
		Robustness:   enterprise.Value * pillarWeight,
		Price:        pricing.Value * pillarWeight,
		Offer:        quality.Value * pillarWeight,
		Transparency: compliance.Value * pillarWeight,
	}

	total := pillars.Robustness + pillars.Price + pillars.Offer + pillars.Transparency
	score := int(math.Round(total))
	grade := MapGrade(score)

	return CompositeScore{
		Score:      score,
		Score100:   total / 10,
		Pillars:    pillars,
		RawGrade:   grade,
		FinalGrade: grade,
	}
}

// MapGrade maps a 0-1000 composite score to its letter grade.
func MapGrade(score int) Grade {
	switch {
	case score >= 900:
		return GradeAPlus
	case score >= 800:
		return GradeA
	case score >= 700:
		return GradeB
	case score >= 600:
		return GradeC
	case score >= 500:
		return GradeD
	default:
		return GradeF
	}
}
