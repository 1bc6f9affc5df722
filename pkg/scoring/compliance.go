package scoring

import (
	"fmt"
	"sort"
	"strings"
)

// Obligation codes recognized by the static cap table.
const (
	ObligationElecNFC15100    = "ELEC_NFC15100"
	ObligationElecDeclaration = "ELEC_DECLARATION"
	ObligationStructuralStudy = "GROS_STRUCTURE"
	ObligationRoofingCode     = "TOIT_CODE"
	ObligationQuoteMentions   = "GENERIC_DEVIS"
	ObligationWarranties      = "GENERIC_GARANTIES"
)

// obligationGradeCaps maps each recognized obligation code to the best
// grade achievable while that requirement remains unresolved. A+ entries
// are recognized but never restrict the grade. Codes absent from this
// table are recorded as warnings, not caps.
var obligationGradeCaps = map[string]Grade{
	ObligationElecNFC15100:    GradeA,
	ObligationElecDeclaration: GradeB,
	ObligationStructuralStudy: GradeB,
	ObligationRoofingCode:     GradeB,
	ObligationQuoteMentions:   GradeAPlus,
	ObligationWarranties:      GradeAPlus,
}

// Obligation categories, derived from the code prefix.
const (
	CategoryElectrical     = "electrical"
	CategoryStructural     = "structural"
	CategoryRoofing        = "roofing"
	CategoryAdministrative = "administrative"
)

func obligationCategory(code string) string {
	switch {
	case strings.HasPrefix(code, "ELEC_"):
		return CategoryElectrical
	case strings.HasPrefix(code, "GROS_"):
		return CategoryStructural
	case strings.HasPrefix(code, "TOIT_"):
		return CategoryRoofing
	default:
		return CategoryAdministrative
	}
}

// AggregateObligations groups the declared obligation codes by category,
// collects every grade cap from the static table, and scores the
// Transparency pillar from declaration coverage: a quote that spells out
// its applicable regulatory obligations is a transparent quote.
func AggregateObligations(obligations []ObligationRecord) ComplianceSummary {
	categories := make(map[string][]string)
	var caps []ObligationCap
	var warnings []string
	var risks, benefits []string
	recognized := map[string]bool{}

	for _, o := range obligations {
		maxGrade, ok := obligationGradeCaps[o.Code]
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unrecognized obligation code %q", o.Code))
			continue
		}
		cat := obligationCategory(o.Code)
		categories[cat] = append(categories[cat], o.Code)
		recognized[cat] = true
		if maxGrade < GradeAPlus {
			caps = append(caps, ObligationCap{Code: o.Code, MaxGrade: maxGrade})
		}
	}

	var score float64
	if len(obligations) > 0 {
		score = 40 + 20*float64(len(recognized))
		if score > 100 {
			score = 100
		}
		cats := make([]string, 0, len(recognized))
		for cat := range recognized {
			cats = append(cats, cat)
		}
		sort.Strings(cats)
		if len(cats) > 0 {
			benefits = append(benefits, fmt.Sprintf("obligations declared: %s", strings.Join(cats, ", ")))
		}
	} else {
		risks = append(risks, "no regulatory obligations declared")
	}

	return ComplianceSummary{
		SubScore:   SubScore{Value: clampScore("transparency", score), Risks: risks, Benefits: benefits},
		Categories: categories,
		Caps:       caps,
		Warnings:   warnings,
	}
}
