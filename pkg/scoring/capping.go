package scoring

import "fmt"

// ApplyTrustCapping lowers the raw grade when blocking conditions are
// present. Rules apply in fixed order and only ever lower the grade:
//
//  1. Clamp to the most restrictive obligation cap.
//  2. Downgrade one band when a critical lot is underpriced.
//
// Every applied rule records a reason; a capped grade without a reason
// is an engine defect, so reasons are produced in the same step as the
// grade change.
func ApplyTrustCapping(composite CompositeScore, compliance ComplianceSummary, pricing PricingScore) CompositeScore {
	grade := composite.RawGrade
	var reasons []string

	if maxGrade := compliance.MaxGrade(); maxGrade < grade {
		for _, restriction := range compliance.Caps {
			if restriction.MaxGrade == maxGrade {
				reasons = append(reasons, fmt.Sprintf(
					"unresolved obligation %s caps grade at %s", restriction.Code, maxGrade))
				break
			}
		}
		grade = maxGrade
	}

	if pricing.HasAnomaly(AnomalyCriticalLotUnderpriced) {
		downgraded := grade.Downgrade()
		if downgraded < grade {
			reasons = append(reasons, fmt.Sprintf(
				"critical lot underpriced: grade lowered from %s to %s", grade, downgraded))
			grade = downgraded
		}
	}

	capped := composite
	capped.FinalGrade = grade
	capped.CappingReasons = reasons
	return capped
}
