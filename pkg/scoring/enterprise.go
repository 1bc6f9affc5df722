package scoring

import "fmt"

// EnterpriseReliabilityScore rates the contractor behind the quote on an
// additive point budget, clamped to [0,100]. A single missing decennial
// cover is weighted hard enough (-20) to dominate an otherwise healthy
// profile.
func EnterpriseReliabilityScore(e EnterpriseProfile) SubScore {
	var score float64
	var risks, benefits []string

	// Financial health
	if e.AnnualRevenue > 0 {
		score += 10
	} else {
		risks = append(risks, "declining revenue")
	}

	// Age and experience
	switch {
	case e.YearsInBusiness >= 10:
		score += 20
		benefits = append(benefits, "experienced, 10+ years")
	case e.YearsInBusiness >= 5:
		score += 15
	case e.YearsInBusiness >= 2:
		score += 10
	default:
		score += 5
		risks = append(risks, "young company (<2 years)")
	}

	// Insurance
	if e.HasDecennialInsurance {
		score += 15
		benefits = append(benefits, "valid decennial cover")
	} else {
		score -= 20
		risks = append(risks, "no valid decennial cover")
	}
	if e.HasLiabilityInsurance {
		score += 10
	}

	// Certifications
	if e.HasCertification(CertEnergyRenovation) {
		score += 10
		benefits = append(benefits, "eligible for state aid")
	}
	if e.HasCertification(CertQualityLabel) {
		score += 5
		benefits = append(benefits, "quality-label certified")
	}

	// Reputation, capped at 10 points
	rep := e.Reputation * 2
	if rep > 10 {
		rep = 10
	}
	score += rep

	if e.DisputeCount > 0 {
		score -= float64(e.DisputeCount) * 5
		risks = append(risks, fmt.Sprintf("%d ongoing disputes", e.DisputeCount))
	}

	return SubScore{
		Value:    clampScore("enterprise", score),
		Risks:    risks,
		Benefits: benefits,
	}
}
