package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func obligationsOf(codes ...string) []ObligationRecord {
	recs := make([]ObligationRecord, 0, len(codes))
	for _, c := range codes {
		recs = append(recs, ObligationRecord{Code: c})
	}
	return recs
}

func TestAggregateObligations_CategoriesAndCaps(t *testing.T) {
	c := AggregateObligations(obligationsOf(
		ObligationElecNFC15100,
		ObligationElecDeclaration,
		ObligationQuoteMentions,
	))

	assert.ElementsMatch(t, []string{ObligationElecNFC15100, ObligationElecDeclaration},
		c.Categories[CategoryElectrical])
	assert.ElementsMatch(t, []string{ObligationQuoteMentions},
		c.Categories[CategoryAdministrative])

	// GENERIC_DEVIS is recognized but never caps
	assert.Len(t, c.Caps, 2)
	assert.Equal(t, GradeB, c.MaxGrade())
}

func TestAggregateObligations_NoCaps(t *testing.T) {
	c := AggregateObligations(obligationsOf(ObligationQuoteMentions, ObligationWarranties))
	assert.Empty(t, c.Caps)
	assert.Equal(t, GradeAPlus, c.MaxGrade())
}

func TestAggregateObligations_TransparencyScore(t *testing.T) {
	// one recognized category
	c := AggregateObligations(obligationsOf(ObligationQuoteMentions))
	assert.Equal(t, 60.0, c.Value)

	// two recognized categories
	c = AggregateObligations(obligationsOf(ObligationElecNFC15100, ObligationQuoteMentions))
	assert.Equal(t, 80.0, c.Value)

	// all four categories cap at 100
	c = AggregateObligations(obligationsOf(
		ObligationElecNFC15100,
		ObligationStructuralStudy,
		ObligationRoofingCode,
		ObligationQuoteMentions,
	))
	assert.Equal(t, 100.0, c.Value)
}

func TestAggregateObligations_Empty(t *testing.T) {
	c := AggregateObligations(nil)
	assert.Equal(t, 0.0, c.Value)
	assert.Contains(t, c.Risks, "no regulatory obligations declared")
	assert.Empty(t, c.Caps)
	assert.Equal(t, GradeAPlus, c.MaxGrade())
}

func TestAggregateObligations_UnrecognizedIsWarningNotCap(t *testing.T) {
	c := AggregateObligations(obligationsOf("PLOMB_UNKNOWN_42", ObligationQuoteMentions))

	assert.Len(t, c.Warnings, 1)
	assert.Contains(t, c.Warnings[0], "PLOMB_UNKNOWN_42")
	assert.Equal(t, GradeAPlus, c.MaxGrade())
	// unrecognized codes do not count toward declaration coverage
	assert.Equal(t, 60.0, c.Value)
}
