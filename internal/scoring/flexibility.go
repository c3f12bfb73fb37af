package scoring

import (
	"strings"

	"github.com/valeriaulyamaeva/resilience-tracker/models"
)

const (
	RiskHigh     = "HIGH"
	RiskMedium   = "MEDIUM"
	RiskLow      = "LOW"
	RiskHighEFS  = "HIGH RISK"
	RiskModerate = "MODERATE"
	RiskStrong   = "STRONG"
)

// FlexibilityResult is the economic flexibility report for one household.
type FlexibilityResult struct {
	Score                 float64 `json:"economicFlexibilityScore"`
	RiskLevel             string  `json:"riskLevel"`
	EmergencyBufferRatio  float64 `json:"emergencyBufferRatio"`
	IncomeDiversityScore  float64 `json:"incomeDiversityScore"`
	DependencyRatio       float64 `json:"dependencyRatio"`
	IncomeStabilityFactor float64 `json:"incomeStabilityFactor"`
	SkillScore            float64 `json:"skillScore"`
	TotalIncome           float64 `json:"totalIncome"`
	TotalExpenses         float64 `json:"totalExpenses"`
	TotalSavings          float64 `json:"totalSavings"`
	TotalDebt             float64 `json:"totalDebt"`
	SurvivalMonths        float64 `json:"survivalMonths"`
	EarnerCount           int     `json:"earnerCount"`
	DependentCount        int     `json:"dependentCount"`
}

// StabilityValue maps an income stability label to its factor.
func (c Config) StabilityValue(stability string) float64 {
	switch strings.ToUpper(strings.TrimSpace(stability)) {
	case "STABLE":
		return c.Stability.Stable
	case "SEMI_STABLE":
		return c.Stability.SemiStable
	default:
		return c.Stability.Other
	}
}

// DistinctSkills counts distinct skill tokens across the given members,
// ignoring case and surrounding whitespace.
func DistinctSkills(members []models.FamilyMember) int {
	seen := make(map[string]struct{})
	for i := range members {
		for _, s := range members[i].SkillList() {
			seen[strings.ToLower(s)] = struct{}{}
		}
	}
	return len(seen)
}

// EconomicFlexibility computes the flexibility score of a household.
func (c Config) EconomicFlexibility(fp models.FinancialProfile, members []models.FamilyMember) FlexibilityResult {
	f := c.Flexibility
	earners := models.Earners(members)
	earnerCount := len(earners)
	dependents := len(members) - earnerCount

	savings := fp.TotalSavings
	expenses := fp.MonthlyExpenses

	ebr := savings / ratioBase(expenses)
	ids := clamp(float64(earnerCount)/f.MaxIncomeSources, 0, 1)

	dr := float64(dependents)
	if earnerCount > 0 {
		dr = float64(dependents) / float64(earnerCount)
	}

	isf := c.Stability.Other
	if earnerCount > 0 {
		var sum float64
		for _, e := range earners {
			sum += c.StabilityValue(e.IncomeStability)
		}
		isf = sum / float64(earnerCount)
	}

	skillScore := clamp(float64(DistinctSkills(earners))/f.MaxSkills, 0, 1)

	raw := f.BufferWeight*minf(ebr, f.BufferCap) +
		f.DiversityWeight*ids -
		f.DependencyWeight*minf(dr, f.DependencyCap) +
		f.StabilityWeight*isf
	efs := clamp(raw, 0, f.MaxScore)

	return FlexibilityResult{
		Score:                 round2(efs),
		RiskLevel:             c.flexibilityLabel(efs),
		EmergencyBufferRatio:  round2(ebr),
		IncomeDiversityScore:  round2(ids),
		DependencyRatio:       round2(dr),
		IncomeStabilityFactor: round2(isf),
		SkillScore:            round2(skillScore),
		TotalIncome:           round2(models.TotalIncome(members)),
		TotalExpenses:         expenses,
		TotalSavings:          savings,
		TotalDebt:             fp.TotalDebt,
		SurvivalMonths:        round1(ratio(savings, expenses, 0)),
		EarnerCount:           earnerCount,
		DependentCount:        dependents,
	}
}

func (c Config) flexibilityLabel(efs float64) string {
	switch {
	case efs < c.Flexibility.HighRiskBelow:
		return RiskHighEFS
	case efs < c.Flexibility.ModerateBelow:
		return RiskModerate
	default:
		return RiskStrong
	}
}

// ratioBase substitutes 1 for an unset or non-positive denominator.
func ratioBase(expenses float64) float64 {
	if expenses <= 0 {
		return 1
	}
	return expenses
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
