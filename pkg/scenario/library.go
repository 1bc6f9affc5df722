// Package scenario holds the named fixture library used to validate the
// scoring engine end to end, and a runner that feeds each fixture
// through the real pipeline and checks the expected outcome.
package scenario

import (
	"sort"

	"github.com/torplabs/torp/pkg/scoring"
)

// Expectation is the acceptance contract for one scenario.
type Expectation struct {
	// BestGrade and WorstGrade bound the acceptable final grade.
	BestGrade  scoring.Grade `json:"best_grade" yaml:"bestGrade"`
	WorstGrade scoring.Grade `json:"worst_grade" yaml:"worstGrade"`
	// Flags is the exact set of consistency flags expected.
	Flags []string `json:"flags,omitempty" yaml:"flags,omitempty"`
	// Imbalance is the expected imbalance state.
	Imbalance bool `json:"imbalance" yaml:"imbalance"`
	// CappingApplied is true when the final grade must differ from the
	// raw grade, with reasons recorded.
	CappingApplied bool `json:"capping_applied" yaml:"cappingApplied"`
}

// Scenario is one named input fixture with its expected outcome.
type Scenario struct {
	Name        string               `json:"name" yaml:"name"`
	Description string               `json:"description" yaml:"description"`
	Input       scoring.ScoringInput `json:"input" yaml:"input"`
	Expect      Expectation          `json:"expect" yaml:"expect"`
}

var library = map[string]Scenario{
	"perfect-enterprise": {
		Name:        "Perfect Enterprise",
		Description: "Strong enterprise, near-market pricing, excellent documentation, no blocking obligations",
		Input: scoring.ScoringInput{
			QuoteRef: "perfect-enterprise",
			Enterprise: scoring.EnterpriseProfile{
				LegalID:               "421 837 264 00015",
				YearsInBusiness:       15,
				AnnualRevenue:         850000,
				EmployeeCount:         12,
				HasDecennialInsurance: true,
				HasLiabilityInsurance: true,
				Certifications:        []string{scoring.CertEnergyRenovation, scoring.CertQualityLabel},
				Reputation:            4.8,
			},
			Pricing: scoring.PricingBreakdown{
				TotalAmount: 15000,
				ByCategory:  map[string]float64{"electricite": 6000, "plomberie": 5000, "autres": 4000},
			},
			Lots: []scoring.LotDescriptor{
				{Category: "electricite", Description: "Complete electrical installation"},
				{Category: "plomberie", Description: "Full plumbing system"},
			},
			Quality: scoring.QualityProfile{
				DescriptionLength: 1600,
				HasLegalMentions:  true,
				MaterialQuality:   scoring.TierExcellent,
			},
			Obligations: []scoring.ObligationRecord{
				{Code: scoring.ObligationElecNFC15100},
				{Code: scoring.ObligationQuoteMentions},
				{Code: scoring.ObligationWarranties},
			},
		},
		Expect: Expectation{
			BestGrade:  scoring.GradeA,
			WorstGrade: scoring.GradeA,
		},
	},

	"compliance-without-enterprise": {
		Name:        "Strong Compliance but Weak Enterprise",
		Description: "Excellent documentation from a one-year uninsured sole trader",
		Input: scoring.ScoringInput{
			QuoteRef: "compliance-without-enterprise",
			Enterprise: scoring.EnterpriseProfile{
				LegalID:         "912 445 018 00027",
				YearsInBusiness: 1,
				AnnualRevenue:   30000,
				EmployeeCount:   1,
			},
			Pricing: scoring.PricingBreakdown{
				TotalAmount: 12000,
				ByCategory:  map[string]float64{"electricite": 5000, "plomberie": 4000, "autres": 3000},
			},
			Lots: []scoring.LotDescriptor{
				{Category: "electricite", Description: "Excellent electrical design"},
				{Category: "plomberie", Description: "Professional plumbing"},
			},
			Quality: scoring.QualityProfile{
				DescriptionLength: 2000,
				HasLegalMentions:  true,
				MaterialQuality:   scoring.TierExcellent,
			},
			Obligations: []scoring.ObligationRecord{
				{Code: scoring.ObligationElecNFC15100},
				{Code: scoring.ObligationElecDeclaration},
				{Code: scoring.ObligationQuoteMentions},
			},
		},
		Expect: Expectation{
			BestGrade:  scoring.GradeB,
			WorstGrade: scoring.GradeC,
			Flags:      []string{scoring.FlagEnterpriseRiskMismatch},
		},
	},

	"suspicious-pricing": {
		Name:        "Suspicious Pricing",
		Description: "Structural scope priced at a fraction of its plausible cost",
		Input: scoring.ScoringInput{
			QuoteRef: "suspicious-pricing",
			Enterprise: scoring.EnterpriseProfile{
				LegalID:               "388 204 771 00033",
				YearsInBusiness:       8,
				AnnualRevenue:         420000,
				EmployeeCount:         6,
				HasDecennialInsurance: true,
				HasLiabilityInsurance: true,
				Reputation:            3,
			},
			Pricing: scoring.PricingBreakdown{
				TotalAmount: 3000,
				ByCategory:  map[string]float64{"gros_oeuvre": 500, "electricite": 1000, "plomberie": 800, "autres": 700},
			},
			Lots: []scoring.LotDescriptor{
				{Category: "gros_oeuvre", Description: "Foundation and structural work"},
				{Category: "electricite", Description: "Electrical system"},
				{Category: "plomberie", Description: "Plumbing system"},
			},
			Quality: scoring.QualityProfile{
				DescriptionLength: 800,
				HasLegalMentions:  true,
				MaterialQuality:   scoring.TierAverage,
			},
			Obligations: []scoring.ObligationRecord{
				{Code: scoring.ObligationStructuralStudy},
				{Code: scoring.ObligationQuoteMentions},
			},
		},
		Expect: Expectation{
			BestGrade:      scoring.GradeD,
			WorstGrade:     scoring.GradeF,
			CappingApplied: true,
		},
	},

	"critical-lot-weak-enterprise": {
		Name:        "Critical Lot with Weak Enterprise",
		Description: "Structural and roofing work assigned to a young firm without decennial cover",
		Input: scoring.ScoringInput{
			QuoteRef: "critical-lot-weak-enterprise",
			Enterprise: scoring.EnterpriseProfile{
				LegalID:               "852 990 143 00011",
				YearsInBusiness:       2,
				AnnualRevenue:         150000,
				EmployeeCount:         2,
				HasLiabilityInsurance: true,
				Reputation:            3,
			},
			Pricing: scoring.PricingBreakdown{
				TotalAmount: 15000,
				ByCategory:  map[string]float64{"gros_oeuvre": 9000, "toiture": 5000, "autres": 1000},
			},
			Lots: []scoring.LotDescriptor{
				{Category: "gros_oeuvre", Description: "Complete structural renovation"},
				{Category: "toiture", Description: "Roof system replacement"},
			},
			Quality: scoring.QualityProfile{
				DescriptionLength: 1200,
				HasLegalMentions:  true,
				MaterialQuality:   scoring.TierAverage,
			},
			Obligations: []scoring.ObligationRecord{
				{Code: scoring.ObligationStructuralStudy},
				{Code: scoring.ObligationRoofingCode},
				{Code: scoring.ObligationQuoteMentions},
			},
		},
		Expect: Expectation{
			BestGrade:  scoring.GradeC,
			WorstGrade: scoring.GradeF,
			Flags:      []string{scoring.FlagCriticalLotEnterpriseWeak},
		},
	},

	"quality-without-pricing": {
		Name:        "High Quality but Low Pricing",
		Description: "Polished documentation over an implausibly cheap offer",
		Input: scoring.ScoringInput{
			QuoteRef: "quality-without-pricing",
			Enterprise: scoring.EnterpriseProfile{
				LegalID:               "301 654 889 00042",
				YearsInBusiness:       20,
				AnnualRevenue:         1200000,
				EmployeeCount:         15,
				HasDecennialInsurance: true,
				HasLiabilityInsurance: true,
				Certifications:        []string{scoring.CertEnergyRenovation, scoring.CertQualityLabel},
				Reputation:            5,
			},
			Pricing: scoring.PricingBreakdown{
				TotalAmount: 4000,
				ByCategory:  map[string]float64{"electricite": 1500, "plomberie": 1200, "autres": 1300},
			},
			Lots: []scoring.LotDescriptor{
				{Category: "electricite", Description: "Premium electrical installation with smart controls"},
				{Category: "plomberie", Description: "High-end plumbing with thermal regulation"},
			},
			Quality: scoring.QualityProfile{
				DescriptionLength: 2500,
				HasLegalMentions:  true,
				MaterialQuality:   scoring.TierExcellent,
			},
			Obligations: []scoring.ObligationRecord{
				{Code: scoring.ObligationElecNFC15100},
				{Code: scoring.ObligationElecDeclaration},
				{Code: scoring.ObligationQuoteMentions},
			},
		},
		Expect: Expectation{
			BestGrade:  scoring.GradeB,
			WorstGrade: scoring.GradeD,
			Flags:      []string{scoring.FlagPricingQualityMismatch},
		},
	},

	"blocked-by-obligation": {
		Name:        "Blocked by Obligation",
		Description: "A-level inputs held at B by unresolved blocking obligations",
		Input: scoring.ScoringInput{
			QuoteRef: "blocked-by-obligation",
			Enterprise: scoring.EnterpriseProfile{
				LegalID:               "778 123 560 00019",
				YearsInBusiness:       12,
				AnnualRevenue:         680000,
				EmployeeCount:         10,
				HasDecennialInsurance: true,
				HasLiabilityInsurance: true,
				Certifications:        []string{scoring.CertEnergyRenovation},
				Reputation:            4.5,
			},
			Pricing: scoring.PricingBreakdown{
				TotalAmount: 14000,
				ByCategory:  map[string]float64{"electricite": 6000, "plomberie": 5000, "autres": 3000},
			},
			Lots: []scoring.LotDescriptor{
				{Category: "electricite", Description: "Complete electrical system upgrade"},
				{Category: "plomberie", Description: "Full plumbing renovation"},
			},
			Quality: scoring.QualityProfile{
				DescriptionLength: 1800,
				HasLegalMentions:  true,
				MaterialQuality:   scoring.TierExcellent,
			},
			Obligations: []scoring.ObligationRecord{
				{Code: scoring.ObligationElecNFC15100},
				{Code: scoring.ObligationElecDeclaration},
				{Code: scoring.ObligationQuoteMentions},
				{Code: scoring.ObligationWarranties},
			},
		},
		Expect: Expectation{
			BestGrade:      scoring.GradeB,
			WorstGrade:     scoring.GradeB,
			CappingApplied: true,
		},
	},

	"compliance-without-quality": {
		Name:        "Compliance Without Quality",
		Description: "Well-declared obligations over a 150-character description without legal mentions",
		Input: scoring.ScoringInput{
			QuoteRef: "compliance-without-quality",
			Enterprise: scoring.EnterpriseProfile{
				LegalID:               "415 700 236 00024",
				YearsInBusiness:       10,
				AnnualRevenue:         300000,
				EmployeeCount:         8,
				HasDecennialInsurance: true,
				HasLiabilityInsurance: true,
				Reputation:            4,
			},
			Pricing: scoring.PricingBreakdown{
				TotalAmount: 10000,
				ByCategory:  map[string]float64{"electricite": 4000, "plomberie": 3500, "autres": 2500},
			},
			Lots: []scoring.LotDescriptor{
				{Category: "electricite", Description: "Works"},
				{Category: "plomberie", Description: "Plumbing"},
			},
			Quality: scoring.QualityProfile{
				DescriptionLength: 150,
				MaterialQuality:   scoring.TierPoor,
			},
			Obligations: []scoring.ObligationRecord{
				{Code: scoring.ObligationElecNFC15100},
				{Code: scoring.ObligationQuoteMentions},
			},
		},
		Expect: Expectation{
			BestGrade:  scoring.GradeC,
			WorstGrade: scoring.GradeD,
			Flags:      []string{scoring.FlagComplianceQualityMismatch},
		},
	},
}

// List returns the scenario keys in stable order.
func List() []string {
	names := make([]string, 0, len(library))
	for name := range library {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns the scenario registered under the given key.
func Get(name string) (Scenario, bool) {
	s, ok := library[name]
	return s, ok
}
