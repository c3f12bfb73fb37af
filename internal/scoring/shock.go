package scoring

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	ShockJobLoss           = "JOB_LOSS"
	ShockIncomeDrop20      = "INCOME_DROP_20"
	ShockIncomeDrop30      = "INCOME_DROP_30"
	ShockMedicalEmergency  = "MEDICAL_EMERGENCY"
	ShockMigrationCost     = "MIGRATION_COST"
	ShockSchoolFeeIncrease = "SCHOOL_FEE_INCREASE"
)

const stableLabel = "Stable"

// Household is the aggregate a simulation starts from.
type Household struct {
	Income   float64
	Expenses float64
	Savings  float64
	Debt     float64
}

type Strategy struct {
	Strategy       string  `json:"strategy"`
	SurvivalMonths Display `json:"survivalMonths"`
	RiskLevel      string  `json:"riskLevel"`
}

type ShockResult struct {
	ShockType        string     `json:"shockType"`
	OriginalIncome   float64    `json:"originalIncome"`
	NewIncome        float64    `json:"newIncome"`
	OriginalExpenses float64    `json:"originalExpenses"`
	NewExpenses      float64    `json:"newExpenses"`
	NewSavings       float64    `json:"newSavings"`
	MonthlyDeficit   float64    `json:"monthlyDeficit"`
	SurvivalMonths   Display    `json:"survivalMonths"`
	DebtRisk         float64    `json:"debtRisk"`
	RiskLevel        string     `json:"riskLevel"`
	Strategies       []Strategy `json:"strategies"`
}

// SimulateShock applies a named shock to the household and evaluates the
// fixed set of mitigation strategies against the result.
func (c Config) SimulateShock(h Household, shockType string, magnitude float64) ShockResult {
	s := c.Shock
	income, expenses, savings := h.Income, h.Expenses, h.Savings
	amount := formatAmount(magnitude)

	var description string
	switch strings.ToUpper(strings.TrimSpace(shockType)) {
	case ShockJobLoss:
		income = 0
		description = "Complete Job Loss"
	case ShockIncomeDrop20:
		income = h.Income * s.Drop20Factor
		description = "20% Income Drop"
	case ShockIncomeDrop30:
		income = h.Income * s.Drop30Factor
		description = "30% Income Drop"
	case ShockMedicalEmergency:
		savings = h.Savings - magnitude
		description = "Medical Emergency " + amount
	case ShockMigrationCost:
		savings = h.Savings - magnitude
		description = "Migration Cost " + amount
	case ShockSchoolFeeIncrease:
		expenses = h.Expenses + magnitude
		description = "School Fee Increase " + amount + "/month"
	default:
		description = "Custom Shock"
	}

	deficit := math.Max(0, expenses-income)
	survival := c.runway(savings, deficit)
	risk := c.shockRisk(survival)

	debtRisk := s.NoDeficitMonths
	if income > 0 {
		debtRisk = h.Debt / income
	}

	return ShockResult{
		ShockType:        description,
		OriginalIncome:   h.Income,
		NewIncome:        round2(income),
		OriginalExpenses: h.Expenses,
		NewExpenses:      expenses,
		NewSavings:       math.Max(savings, 0),
		MonthlyDeficit:   deficit,
		SurvivalMonths:   capped(survival, s.StableAboveMonths, stableLabel),
		DebtRisk:         round2(debtRisk),
		RiskLevel:        risk,
		Strategies: []Strategy{
			{Strategy: "Use Only Savings", SurvivalMonths: capped(survival, s.StableAboveMonths, stableLabel), RiskLevel: risk},
			c.reduceExpenses(income, expenses, savings),
			c.partTime(income, expenses, savings),
			{Strategy: "Enroll in Government Scheme", SurvivalMonths: Display{Label: s.SchemeMonths}, RiskLevel: RiskMedium},
		},
	}
}

// runway is how many months savings cover a monthly deficit.
func (c Config) runway(savings, deficit float64) float64 {
	if deficit <= 0 {
		return c.Shock.NoDeficitMonths
	}
	return savings / deficit
}

func (c Config) shockRisk(months float64) string {
	switch {
	case months < c.Shock.HighRiskBelow:
		return RiskHigh
	case months < c.Shock.MediumRiskBelow:
		return RiskMedium
	default:
		return RiskLow
	}
}

// reduceExpenses divides savings by the gap between income and the cut
// expenses whenever the shock left a deficit, even if the cut closes it.
func (c Config) reduceExpenses(income, expenses, savings float64) Strategy {
	s := c.Shock
	reduced := expenses * s.ExpenseCutFactor

	var survival float64
	switch {
	case expenses-income <= 0:
		survival = s.NoDeficitMonths
	case s.ExpenseCutUsesRemainingDeficit:
		survival = c.runway(savings, reduced-income)
	default:
		survival = c.runway(savings, math.Abs(income-reduced))
	}

	risk := RiskMedium
	if survival > s.ExpenseCutLowRisk {
		risk = RiskLow
	}
	return Strategy{
		Strategy:       "Reduce Expenses by 20%",
		SurvivalMonths: capped(survival, s.StableAboveMonths, stableLabel),
		RiskLevel:      risk,
	}
}

func (c Config) partTime(income, expenses, savings float64) Strategy {
	s := c.Shock
	name := fmt.Sprintf("Add Part-Time Job (%s/month)", formatAmount(s.PartTimeIncome))
	supplemented := income + s.PartTimeIncome
	if supplemented >= expenses {
		return Strategy{Strategy: name, SurvivalMonths: Display{Label: stableLabel}, RiskLevel: RiskLow}
	}

	deficit := expenses - income
	if s.PartTimeUsesSupplementedDeficit {
		deficit = expenses - supplemented
	}
	return Strategy{
		Strategy:       name,
		SurvivalMonths: Display{Value: round1(c.runway(savings, deficit))},
		RiskLevel:      RiskMedium,
	}
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(round2(v), 'f', -1, 64)
}
