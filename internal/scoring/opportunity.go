package scoring

import (
	"fmt"
	"math"
)

const notAdvisableLabel = "Not advisable"

type OpportunityResult struct {
	CurrentIncome            float64 `json:"currentIncome"`
	NewExpectedIncome        float64 `json:"newExpectedIncome"`
	InvestmentCost           float64 `json:"investmentCost"`
	BreakEvenMonths          Display `json:"breakEvenMonths"`
	SurvivalBeforeInvestment float64 `json:"survivalBeforeInvestment"`
	SurvivalAfterInvestment  float64 `json:"survivalAfterInvestment"`
	MonthlySavingsBefore     float64 `json:"monthlySavingsBefore"`
	MonthlySavingsAfter      float64 `json:"monthlySavingsAfter"`
	RiskLevel                string  `json:"riskLevel"`
	WorthIt                  bool    `json:"worthIt"`
	Recommendation           string  `json:"recommendation"`
}

// EvaluateOpportunity projects a one-time investment whose income uplift
// arrives with the given probability. The uplift is taken as its expectation.
func (c Config) EvaluateOpportunity(h Household, investmentCost, expectedIncomeIncrease, successProbability float64) OpportunityResult {
	o := c.Opportunity

	expectedIncrease := successProbability * expectedIncomeIncrease
	newIncome := h.Income + expectedIncrease

	breakEven := o.NoBreakEvenMonths
	if expectedIncrease > 0 {
		breakEven = investmentCost / expectedIncrease
	}

	remaining := h.Savings - investmentCost
	survivalBefore := ratio(h.Savings, h.Expenses, 0)
	survivalAfter := ratio(math.Max(remaining, 0), h.Expenses, 0)

	savingsBefore := h.Income - h.Expenses
	savingsAfter := newIncome - h.Expenses

	var risk string
	switch {
	case breakEven < o.LowRiskBelow && remaining > 0:
		risk = RiskLow
	case breakEven < o.MediumRiskBelow:
		risk = RiskMedium
	default:
		risk = RiskHigh
	}

	worthIt := breakEven < o.WorthItBreakEvenBelow && savingsAfter > savingsBefore
	recommendation := "High risk. Ensure you have enough savings buffer before investing."
	if worthIt {
		recommendation = fmt.Sprintf("This opportunity looks financially sound. Break-even in %d months.", int64(round(breakEven, 0)))
	}

	return OpportunityResult{
		CurrentIncome:            h.Income,
		NewExpectedIncome:        round2(newIncome),
		InvestmentCost:           investmentCost,
		BreakEvenMonths:          capped(breakEven, o.NotAdvisableAbove, notAdvisableLabel),
		SurvivalBeforeInvestment: round1(survivalBefore),
		SurvivalAfterInvestment:  round1(survivalAfter),
		MonthlySavingsBefore:     round2(savingsBefore),
		MonthlySavingsAfter:      round2(savingsAfter),
		RiskLevel:                risk,
		WorthIt:                  worthIt,
		Recommendation:           recommendation,
	}
}
