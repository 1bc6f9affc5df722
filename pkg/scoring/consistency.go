package scoring

// ValidateConsistency detects implausible combinations across the four
// dimensions and the final (capped) grade. Each flag is evaluated
// independently; all can fire at once. The report is a pure function of
// its inputs.
func ValidateConsistency(enterprise SubScore, pricing PricingScore, quality QualityScore, compliance ComplianceSummary, finalGrade Grade, hasCriticalLot bool) ConsistencyReport {
	var flags []string

	if compliance.Value >= 75 && quality.Value < 40 {
		flags = append(flags, FlagComplianceQualityMismatch)
	}

	if enterprise.Value < 30 && finalGrade >= GradeB {
		flags = append(flags, FlagEnterpriseRiskMismatch)
	}

	if pricing.Value < 40 && quality.Value >= 70 {
		flags = append(flags, FlagPricingQualityMismatch)
	}

	if hasCriticalLot && enterprise.Value < 40 {
		flags = append(flags, FlagCriticalLotEnterpriseWeak)
	}

	score := 100 - 20*len(flags)
	if score < 0 {
		score = 0
	}

	return ConsistencyReport{
		Score:     score,
		Imbalance: score < 80,
		Flags:     flags,
	}
}
