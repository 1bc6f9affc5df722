package scoring

// QualityCompletenessScore rates the documentation quality of the quote:
// description depth, mandatory legal mentions, and declared material
// tier. The qualitative tier is derived from the clamped value and feeds
// both display and the consistency rules.
func QualityCompletenessScore(q QualityProfile) QualityScore {
	var score float64
	var risks, benefits []string

	switch {
	case q.DescriptionLength >= 1500:
		score += 30
		benefits = append(benefits, "detailed work description")
	case q.DescriptionLength >= 1000:
		score += 20
	case q.DescriptionLength >= 500:
		score += 10
	default:
		risks = append(risks, "minimal work description")
	}

	if q.HasLegalMentions {
		score += 30
	} else {
		risks = append(risks, "mandatory legal mentions missing")
	}

	switch q.MaterialQuality {
	case TierExcellent:
		score += 40
		benefits = append(benefits, "excellent material quality")
	case TierGood:
		score += 25
	case TierAverage:
		score += 15
	case TierPoor:
		risks = append(risks, "poor material quality")
	}

	value := clampScore("quality", score)

	return QualityScore{
		SubScore: SubScore{Value: value, Risks: risks, Benefits: benefits},
		Tier:     qualityTier(value),
	}
}

func qualityTier(value float64) MaterialTier {
	switch {
	case value >= 80:
		return TierExcellent
	case value >= 60:
		return TierGood
	case value >= 40:
		return TierAverage
	default:
		return TierPoor
	}
}
