package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQualityCompletenessScore_Full(t *testing.T) {
	q := QualityCompletenessScore(QualityProfile{
		DescriptionLength: 1500,
		HasLegalMentions:  true,
		MaterialQuality:   TierExcellent,
	})

	assert.Equal(t, 100.0, q.Value)
	assert.Equal(t, TierExcellent, q.Tier)
	assert.Empty(t, q.Risks)
}

func TestQualityCompletenessScore_DescriptionBands(t *testing.T) {
	base := QualityProfile{HasLegalMentions: true, MaterialQuality: TierAverage}

	cases := []struct {
		length int
		want   float64
	}{
		{1500, 75},
		{1499, 65},
		{1000, 65},
		{999, 55},
		{500, 55},
		{499, 45},
		{0, 45},
	}
	for _, c := range cases {
		q := base
		q.DescriptionLength = c.length
		s := QualityCompletenessScore(q)
		assert.Equal(t, c.want, s.Value, "length=%d", c.length)
	}
}

func TestQualityCompletenessScore_Sparse(t *testing.T) {
	q := QualityCompletenessScore(QualityProfile{
		DescriptionLength: 150,
		HasLegalMentions:  false,
		MaterialQuality:   TierPoor,
	})

	assert.Equal(t, 0.0, q.Value)
	assert.Equal(t, TierPoor, q.Tier)
	assert.Contains(t, q.Risks, "minimal work description")
	assert.Contains(t, q.Risks, "mandatory legal mentions missing")
	assert.Contains(t, q.Risks, "poor material quality")
}

func TestQualityCompletenessScore_TierDerivation(t *testing.T) {
	cases := []struct {
		profile QualityProfile
		tier    MaterialTier
	}{
		// 30 + 30 + 40 = 100
		{QualityProfile{DescriptionLength: 2000, HasLegalMentions: true, MaterialQuality: TierExcellent}, TierExcellent},
		// 20 + 30 + 15 = 65
		{QualityProfile{DescriptionLength: 1000, HasLegalMentions: true, MaterialQuality: TierAverage}, TierGood},
		// 10 + 30 + 0 = 40
		{QualityProfile{DescriptionLength: 500, HasLegalMentions: true, MaterialQuality: TierPoor}, TierAverage},
		// 10 + 0 + 15 = 25
		{QualityProfile{DescriptionLength: 500, HasLegalMentions: false, MaterialQuality: TierAverage}, TierPoor},
	}
	for _, c := range cases {
		s := QualityCompletenessScore(c.profile)
		assert.Equal(t, c.tier, s.Tier, "value=%v", s.Value)
	}
}
