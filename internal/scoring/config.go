// Package scoring holds the resilience formulas. Every function here is pure:
// callers load records, scoring turns them into numbers and labels.
package scoring

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds every weight, cap and threshold used by the formulas.
type Config struct {
	Stability   StabilityConfig   `toml:"stability"`
	Flexibility FlexibilityConfig `toml:"flexibility"`
	Shock       ShockConfig       `toml:"shock"`
	Opportunity OpportunityConfig `toml:"opportunity"`
	Resilience  ResilienceConfig  `toml:"resilience"`
}

// StabilityConfig maps income stability labels to numeric factors.
type StabilityConfig struct {
	Stable     float64 `toml:"stable"`
	SemiStable float64 `toml:"semi_stable"`
	Other      float64 `toml:"other"`
}

type FlexibilityConfig struct {
	MaxIncomeSources  float64 `toml:"max_income_sources"`
	MaxSkills         float64 `toml:"max_skills"`
	BufferCap         float64 `toml:"buffer_cap"`
	DependencyCap     float64 `toml:"dependency_cap"`
	BufferWeight      float64 `toml:"buffer_weight"`
	DiversityWeight   float64 `toml:"diversity_weight"`
	DependencyWeight  float64 `toml:"dependency_weight"`
	StabilityWeight   float64 `toml:"stability_weight"`
	MaxScore          float64 `toml:"max_score"`
	HighRiskBelow     float64 `toml:"high_risk_below"`
	ModerateBelow     float64 `toml:"moderate_below"`
}

type ShockConfig struct {
	Drop20Factor      float64 `toml:"drop_20_factor"`
	Drop30Factor      float64 `toml:"drop_30_factor"`
	NoDeficitMonths   float64 `toml:"no_deficit_months"`
	StableAboveMonths float64 `toml:"stable_above_months"`
	HighRiskBelow     float64 `toml:"high_risk_below"`
	MediumRiskBelow   float64 `toml:"medium_risk_below"`
	ExpenseCutFactor  float64 `toml:"expense_cut_factor"`
	ExpenseCutLowRisk float64 `toml:"expense_cut_low_risk_above"`
	PartTimeIncome    float64 `toml:"part_time_income"`
	SchemeMonths      string  `toml:"scheme_months"`
	// PartTimeUsesSupplementedDeficit switches the part-time strategy runway
	// from the pre-supplement deficit to the deficit left after the extra income.
	PartTimeUsesSupplementedDeficit bool `toml:"part_time_uses_supplemented_deficit"`
	// ExpenseCutUsesRemainingDeficit makes the reduce-expenses strategy report
	// the no-deficit runway when the cut turns the deficit into a surplus,
	// instead of dividing savings by the size of that surplus.
	ExpenseCutUsesRemainingDeficit bool `toml:"expense_cut_uses_remaining_deficit"`
}

type OpportunityConfig struct {
	NoBreakEvenMonths     float64 `toml:"no_break_even_months"`
	NotAdvisableAbove     float64 `toml:"not_advisable_above"`
	LowRiskBelow          float64 `toml:"low_risk_below"`
	MediumRiskBelow       float64 `toml:"medium_risk_below"`
	WorthItBreakEvenBelow float64 `toml:"worth_it_break_even_below"`
}

type ResilienceConfig struct {
	BufferWeight     float64 `toml:"buffer_weight"`
	DiversityWeight  float64 `toml:"diversity_weight"`
	SkillWeight      float64 `toml:"skill_weight"`
	SavingsDelta     float64 `toml:"savings_delta_weight"`
	DebtDelta        float64 `toml:"debt_delta_weight"`
	DeltaUnit        float64 `toml:"delta_unit"`
	MaxIncomeSources float64 `toml:"max_income_sources"`
	MaxSkills        float64 `toml:"max_skills"`
	MaxScore         float64 `toml:"max_score"`
}

// DefaultConfig returns the production weights.
func DefaultConfig() Config {
	return Config{
		Stability: StabilityConfig{
			Stable:     0.9,
			SemiStable: 0.7,
			Other:      0.4,
		},
		Flexibility: FlexibilityConfig{
			MaxIncomeSources: 3,
			MaxSkills:        5,
			BufferCap:        2,
			DependencyCap:    2,
			BufferWeight:     0.4,
			DiversityWeight:  0.2,
			DependencyWeight: 0.2,
			StabilityWeight:  0.2,
			MaxScore:         2,
			HighRiskBelow:    0.5,
			ModerateBelow:    1.0,
		},
		Shock: ShockConfig{
			Drop20Factor:      0.80,
			Drop30Factor:      0.70,
			NoDeficitMonths:   99,
			StableAboveMonths: 50,
			HighRiskBelow:     2,
			MediumRiskBelow:   4,
			ExpenseCutFactor:  0.80,
			ExpenseCutLowRisk: 4,
			PartTimeIncome:    5000,
			SchemeMonths:      "6+",
		},
		Opportunity: OpportunityConfig{
			NoBreakEvenMonths:     999,
			NotAdvisableAbove:     50,
			LowRiskBelow:          3,
			MediumRiskBelow:       6,
			WorthItBreakEvenBelow: 12,
		},
		Resilience: ResilienceConfig{
			BufferWeight:     25,
			DiversityWeight:  25,
			SkillWeight:      20,
			SavingsDelta:     15,
			DebtDelta:        15,
			DeltaUnit:        1000,
			MaxIncomeSources: 3,
			MaxSkills:        5,
			MaxScore:         100,
		},
	}
}

// LoadConfig decodes a TOML file over the defaults. An empty path or a
// missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading scoring config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing scoring config: %w", err)
	}
	return cfg, nil
}
