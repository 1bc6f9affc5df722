package scoring

import (
	"fmt"
	"time"
)

// MaterialTier qualifies the material quality declared on a quote.
type MaterialTier string

const (
	TierPoor      MaterialTier = "poor"
	TierAverage   MaterialTier = "average"
	TierGood      MaterialTier = "good"
	TierExcellent MaterialTier = "excellent"
)

// MaterialTiers lists the valid tiers in ascending order.
var MaterialTiers = []MaterialTier{TierPoor, TierAverage, TierGood, TierExcellent}

// Certification codes recognized by the enterprise scorer.
const (
	CertEnergyRenovation = "rge"
	CertQualityLabel     = "qualibat"
)

// Work categories considered critical: defects there are expensive and
// hard to remediate, so underpricing them is treated as high severity.
var criticalCategories = map[string]bool{
	"gros_oeuvre": true,
	"toiture":     true,
	"charpente":   true,
	"facade":      true,
}

// EnterpriseProfile is an immutable snapshot of the contractor behind a
// quote, supplied per analysis.
type EnterpriseProfile struct {
	LegalID               string   `json:"legal_id,omitempty" yaml:"legalID,omitempty"`
	YearsInBusiness       int      `json:"years_in_business" yaml:"yearsInBusiness"`
	AnnualRevenue         float64  `json:"annual_revenue" yaml:"annualRevenue"`
	EmployeeCount         int      `json:"employee_count,omitempty" yaml:"employeeCount,omitempty"`
	HasDecennialInsurance bool     `json:"has_decennial_insurance" yaml:"hasDecennialInsurance"`
	HasLiabilityInsurance bool     `json:"has_liability_insurance" yaml:"hasLiabilityInsurance"`
	Certifications        []string `json:"certifications,omitempty" yaml:"certifications,omitempty"`
	Reputation            float64  `json:"reputation" yaml:"reputation"`
	DisputeCount          int      `json:"dispute_count" yaml:"disputeCount"`
}

// HasCertification checks for a certification code, case-sensitive.
func (e EnterpriseProfile) HasCertification(code string) bool {
	for _, c := range e.Certifications {
		if c == code {
			return true
		}
	}
	return false
}

// PricingBreakdown is the quoted amount and its per-category split.
type PricingBreakdown struct {
	TotalAmount float64            `json:"total_amount" yaml:"totalAmount"`
	ByCategory  map[string]float64 `json:"by_category,omitempty" yaml:"byCategory,omitempty"`
}

// LotDescriptor is one work lot on the quote.
type LotDescriptor struct {
	Category    string `json:"category" yaml:"category"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Critical reports whether the lot belongs to a critical work category.
func (l LotDescriptor) Critical() bool {
	return criticalCategories[l.Category]
}

// QualityProfile captures the documentation quality of the quote itself.
type QualityProfile struct {
	DescriptionLength int          `json:"description_length" yaml:"descriptionLength"`
	HasLegalMentions  bool         `json:"has_legal_mentions" yaml:"hasLegalMentions"`
	MaterialQuality   MaterialTier `json:"material_quality" yaml:"materialQuality"`
}

// ObligationRecord is a regulatory or technical requirement declared on
// the quote. Presence means the requirement exists and is not yet proven
// satisfied, not that it was violated.
type ObligationRecord struct {
	Code string `json:"code" yaml:"code"`
}

// ScoringInput aggregates everything the engine needs for one analysis.
// Treated as an immutable value.
type ScoringInput struct {
	QuoteRef    string             `json:"quote_ref,omitempty" yaml:"quoteRef,omitempty"`
	Enterprise  EnterpriseProfile  `json:"enterprise" yaml:"enterprise"`
	Pricing     PricingBreakdown   `json:"pricing" yaml:"pricing"`
	Lots        []LotDescriptor    `json:"lots" yaml:"lots"`
	Quality     QualityProfile     `json:"quality" yaml:"quality"`
	Obligations []ObligationRecord `json:"obligations,omitempty" yaml:"obligations,omitempty"`
}

// HasCriticalLot reports whether any lot is in a critical category.
func (in ScoringInput) HasCriticalLot() bool {
	for _, l := range in.Lots {
		if l.Critical() {
			return true
		}
	}
	return false
}

// SubScore is one scored dimension, clamped to [0,100], with the
// human-readable factors that produced it.
type SubScore struct {
	Value    float64  `json:"value" yaml:"value"`
	Risks    []string `json:"risks,omitempty" yaml:"risks,omitempty"`
	Benefits []string `json:"benefits,omitempty" yaml:"benefits,omitempty"`
}

// Pricing anomaly codes.
const (
	AnomalyCriticalLotUnderpriced = "critical_lot_underpriced"
	AnomalyImplausiblyLowPrice    = "implausibly_low_price"
)

// PricingScore extends SubScore with the measured market deviation and
// the anomalies detected along the way.
type PricingScore struct {
	SubScore           `yaml:",inline"`
	MarketDeviationPct float64  `json:"market_deviation_pct" yaml:"marketDeviationPct"`
	Anomalies          []string `json:"anomalies,omitempty" yaml:"anomalies,omitempty"`
}

// HasAnomaly checks for a specific anomaly code.
func (p PricingScore) HasAnomaly(code string) bool {
	for _, a := range p.Anomalies {
		if a == code {
			return true
		}
	}
	return false
}

// QualityScore extends SubScore with the qualitative tier derived from
// the clamped value.
type QualityScore struct {
	SubScore `yaml:",inline"`
	Tier     MaterialTier `json:"tier" yaml:"tier"`
}

// ObligationCap is one grade restriction implied by a present obligation.
type ObligationCap struct {
	Code     string `json:"code" yaml:"code"`
	MaxGrade Grade  `json:"max_grade" yaml:"maxGrade"`
}

// ComplianceSummary is the obligation aggregator output: the Transparency
// pillar sub-score, the declared codes grouped by category, every grade
// cap found in the static table, and warnings for unrecognized codes.
type ComplianceSummary struct {
	SubScore   `yaml:",inline"`
	Categories map[string][]string `json:"categories,omitempty" yaml:"categories,omitempty"`
	Caps       []ObligationCap     `json:"caps,omitempty" yaml:"caps,omitempty"`
	Warnings   []string            `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// MaxGrade returns the most restrictive cap present, or A+ when nothing
// restricts the grade.
func (c ComplianceSummary) MaxGrade() Grade {
	m := GradeAPlus
	for _, restriction := range c.Caps {
		m = MinGrade(m, restriction.MaxGrade)
	}
	return m
}

// PillarBreakdown is the four 250-point pillars of the canonical scale.
type PillarBreakdown struct {
	Robustness   float64 `json:"robustness" yaml:"robustness"`
	Price        float64 `json:"price" yaml:"price"`
	Offer        float64 `json:"offer" yaml:"offer"`
	Transparency float64 `json:"transparency" yaml:"transparency"`
}

// CompositeScore is the composed result on the canonical 0-1000 scale.
// Score100 is a derived display projection (Score/10), never an
// independently authoritative value.
type CompositeScore struct {
	Score          int             `json:"score" yaml:"score"`
	Score100       float64         `json:"score_100" yaml:"score100"`
	Pillars        PillarBreakdown `json:"pillars" yaml:"pillars"`
	RawGrade       Grade           `json:"raw_grade" yaml:"rawGrade"`
	FinalGrade     Grade           `json:"final_grade" yaml:"finalGrade"`
	CappingReasons []string        `json:"capping_reasons,omitempty" yaml:"cappingReasons,omitempty"`
}

// Consistency flag names. These are wire values consumed by dashboards;
// do not rename.
const (
	FlagComplianceQualityMismatch = "complianceQualityMismatch"
	FlagEnterpriseRiskMismatch    = "enterpriseRiskMismatch"
	FlagPricingQualityMismatch    = "pricingQualityMismatch"
	FlagCriticalLotEnterpriseWeak = "criticalLotEnterpriseWeakness"
)

// ConsistencyReport is the cross-dimensional plausibility check result.
type ConsistencyReport struct {
	Score     int      `json:"score" yaml:"score"`
	Imbalance bool     `json:"imbalance" yaml:"imbalance"`
	Flags     []string `json:"flags,omitempty" yaml:"flags,omitempty"`
}

// HasFlag checks for a named consistency flag.
func (c ConsistencyReport) HasFlag(name string) bool {
	for _, f := range c.Flags {
		if f == name {
			return true
		}
	}
	return false
}

// AnalysisResult is the complete outcome of one analysis. Created once,
// never mutated; a new analysis is a new result.
type AnalysisResult struct {
	ID          string            `json:"id" yaml:"id"`
	CreatedAt   time.Time         `json:"created_at" yaml:"createdAt"`
	Input       ScoringInput      `json:"input" yaml:"input"`
	Enterprise  SubScore          `json:"enterprise" yaml:"enterprise"`
	Pricing     PricingScore      `json:"pricing" yaml:"pricing"`
	Quality     QualityScore      `json:"quality" yaml:"quality"`
	Compliance  ComplianceSummary `json:"compliance" yaml:"compliance"`
	Composite   CompositeScore    `json:"composite" yaml:"composite"`
	Consistency ConsistencyReport `json:"consistency" yaml:"consistency"`
}

// ValidationError is returned when a required field is missing or out of
// domain. The engine never partially scores malformed input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

func validationErr(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Validate checks the input domain before any scoring runs.
func (in ScoringInput) Validate() error {
	e := in.Enterprise
	if e.YearsInBusiness < 0 {
		return validationErr("enterprise.years_in_business", "must be >= 0, got %d", e.YearsInBusiness)
	}
	if e.AnnualRevenue < 0 {
		return validationErr("enterprise.annual_revenue", "must be >= 0, got %v", e.AnnualRevenue)
	}
	if e.Reputation < 0 || e.Reputation > 5 {
		return validationErr("enterprise.reputation", "must be in [0,5], got %v", e.Reputation)
	}
	if e.DisputeCount < 0 {
		return validationErr("enterprise.dispute_count", "must be >= 0, got %d", e.DisputeCount)
	}

	if in.Pricing.TotalAmount < 0 {
		return validationErr("pricing.total_amount", "must be >= 0, got %v", in.Pricing.TotalAmount)
	}
	for cat, amount := range in.Pricing.ByCategory {
		if amount < 0 {
			return validationErr("pricing.by_category", "amount for %q must be >= 0, got %v", cat, amount)
		}
	}

	if len(in.Lots) == 0 {
		return validationErr("lots", "at least one lot is required")
	}
	for i, l := range in.Lots {
		if l.Category == "" {
			return validationErr("lots", "lot %d has no category", i)
		}
	}

	if in.Quality.DescriptionLength < 0 {
		return validationErr("quality.description_length", "must be >= 0, got %d", in.Quality.DescriptionLength)
	}
	switch in.Quality.MaterialQuality {
	case TierPoor, TierAverage, TierGood, TierExcellent:
	default:
		return validationErr("quality.material_quality", "unknown tier %q", in.Quality.MaterialQuality)
	}

	for i, o := range in.Obligations {
		if o.Code == "" {
			return validationErr("obligations", "obligation %d has no code", i)
		}
	}

	return nil
}
