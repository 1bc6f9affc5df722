package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/torplabs/torp/pkg/scoring"
)

func testAnalysis(t *testing.T, legalID string) *scoring.AnalysisResult {
	t.Helper()
	e := scoring.NewEngine(scoring.DefaultMarketReference())
	res, err := e.Analyze(scoring.ScoringInput{
		QuoteRef: "devis-9001",
		Enterprise: scoring.EnterpriseProfile{
			LegalID:               legalID,
			YearsInBusiness:       12,
			AnnualRevenue:         450000,
			HasDecennialInsurance: true,
			HasLiabilityInsurance: true,
			Certifications:        []string{scoring.CertEnergyRenovation},
			Reputation:            4.5,
		},
		Pricing: scoring.PricingBreakdown{
			TotalAmount: 16000,
			ByCategory:  map[string]float64{"electricite": 9000, "plomberie": 7000},
		},
		Lots: []scoring.LotDescriptor{
			{Category: "electricite"},
			{Category: "plomberie"},
		},
		Quality: scoring.QualityProfile{
			DescriptionLength: 1600,
			HasLegalMentions:  true,
			MaterialQuality:   scoring.TierExcellent,
		},
		Obligations: []scoring.ObligationRecord{
			{Code: scoring.ObligationElecNFC15100},
			{Code: scoring.ObligationQuoteMentions},
		},
	})
	require.NoError(t, err)
	return res
}

func TestSaveAndGetAnalysis(t *testing.T) {
	db := setupTestDB(t)
	r := testAnalysis(t, "552 100 554")

	err := SaveAnalysis(db, r)
	require.NoError(t, err)

	got, err := GetAnalysis(db, r.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, r.ID, got.ID)
	assert.Equal(t, r.Input.QuoteRef, got.Input.QuoteRef)
	assert.Equal(t, r.Composite.Score, got.Composite.Score)
	assert.Equal(t, r.Composite.FinalGrade, got.Composite.FinalGrade)
	assert.Equal(t, r.Consistency.Score, got.Consistency.Score)
}

func TestSaveAnalysis_NilArgs(t *testing.T) {
	db := setupTestDB(t)

	assert.Error(t, SaveAnalysis(nil, testAnalysis(t, "x")))
	assert.Error(t, SaveAnalysis(db, nil))
}

func TestSaveAnalysis_DuplicateID(t *testing.T) {
	db := setupTestDB(t)
	r := testAnalysis(t, "552 100 554")

	require.NoError(t, SaveAnalysis(db, r))
	assert.Error(t, SaveAnalysis(db, r))
}

func TestGetAnalysis_NotFound(t *testing.T) {
	db := setupTestDB(t)

	got, err := GetAnalysis(db, "no-such-id")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetAnalysis_EmptyID(t *testing.T) {
	db := setupTestDB(t)

	_, err := GetAnalysis(db, "")
	assert.Error(t, err)
}

func TestListAnalyses(t *testing.T) {
	db := setupTestDB(t)

	a := testAnalysis(t, "alpha-batiment")
	b := testAnalysis(t, "beta-renovation")
	require.NoError(t, SaveAnalysis(db, a))
	require.NoError(t, SaveAnalysis(db, b))

	list, err := ListAnalyses(db, AnalysisQuery{})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = ListAnalyses(db, AnalysisQuery{Contractor: "alpha"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, a.ID, list[0].ID)
	assert.Equal(t, a.Composite.FinalGrade, list[0].FinalGrade)

	list, err = ListAnalyses(db, AnalysisQuery{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestListAnalyses_GradeFilter(t *testing.T) {
	db := setupTestDB(t)
	r := testAnalysis(t, "gamma-travaux")
	require.NoError(t, SaveAnalysis(db, r))

	list, err := ListAnalyses(db, AnalysisQuery{Grade: r.Composite.FinalGrade.String()})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	list, err = ListAnalyses(db, AnalysisQuery{Grade: "F"})
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = ListAnalyses(db, AnalysisQuery{Grade: "Z"})
	assert.Error(t, err)
}
