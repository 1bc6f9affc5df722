package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func compositeWithGrade(g Grade) CompositeScore {
	return CompositeScore{RawGrade: g, FinalGrade: g}
}

func capsOf(caps ...ObligationCap) ComplianceSummary {
	return ComplianceSummary{Caps: caps}
}

func TestApplyTrustCapping_ObligationCap(t *testing.T) {
	c := ApplyTrustCapping(
		compositeWithGrade(GradeA),
		capsOf(ObligationCap{Code: ObligationElecDeclaration, MaxGrade: GradeB}),
		PricingScore{},
	)

	assert.Equal(t, GradeA, c.RawGrade)
	assert.Equal(t, GradeB, c.FinalGrade)
	assert.Len(t, c.CappingReasons, 1)
	assert.Contains(t, c.CappingReasons[0], ObligationElecDeclaration)
}

func TestApplyTrustCapping_MostRestrictiveCapWins(t *testing.T) {
	c := ApplyTrustCapping(
		compositeWithGrade(GradeAPlus),
		capsOf(
			ObligationCap{Code: ObligationElecNFC15100, MaxGrade: GradeA},
			ObligationCap{Code: ObligationElecDeclaration, MaxGrade: GradeB},
		),
		PricingScore{},
	)

	assert.Equal(t, GradeB, c.FinalGrade)
}

func TestApplyTrustCapping_CapAboveGradeIsNoop(t *testing.T) {
	c := ApplyTrustCapping(
		compositeWithGrade(GradeC),
		capsOf(ObligationCap{Code: ObligationStructuralStudy, MaxGrade: GradeB}),
		PricingScore{},
	)

	assert.Equal(t, GradeC, c.FinalGrade)
	assert.Empty(t, c.CappingReasons)
}

func TestApplyTrustCapping_CriticalLotDowngradesOneBand(t *testing.T) {
	pricing := PricingScore{Anomalies: []string{AnomalyImplausiblyLowPrice, AnomalyCriticalLotUnderpriced}}

	c := ApplyTrustCapping(compositeWithGrade(GradeC), ComplianceSummary{}, pricing)
	assert.Equal(t, GradeD, c.FinalGrade)
	assert.Len(t, c.CappingReasons, 1)
}

func TestApplyTrustCapping_BothRulesInOrder(t *testing.T) {
	pricing := PricingScore{Anomalies: []string{AnomalyCriticalLotUnderpriced}}

	c := ApplyTrustCapping(
		compositeWithGrade(GradeA),
		capsOf(ObligationCap{Code: ObligationRoofingCode, MaxGrade: GradeB}),
		pricing,
	)

	// cap to B first, then one band down
	assert.Equal(t, GradeC, c.FinalGrade)
	assert.Len(t, c.CappingReasons, 2)
}

func TestApplyTrustCapping_FloorsAtF(t *testing.T) {
	pricing := PricingScore{Anomalies: []string{AnomalyCriticalLotUnderpriced}}

	c := ApplyTrustCapping(compositeWithGrade(GradeF), ComplianceSummary{}, pricing)
	assert.Equal(t, GradeF, c.FinalGrade)
	assert.Empty(t, c.CappingReasons)
}

func TestApplyTrustCapping_NeverRaisesGrade(t *testing.T) {
	for raw := GradeF; raw <= GradeAPlus; raw++ {
		c := ApplyTrustCapping(
			compositeWithGrade(raw),
			capsOf(ObligationCap{Code: ObligationElecNFC15100, MaxGrade: GradeA}),
			PricingScore{Anomalies: []string{AnomalyCriticalLotUnderpriced}},
		)
		assert.False(t, c.FinalGrade.Better(c.RawGrade), "raw=%s final=%s", raw, c.FinalGrade)
	}
}
