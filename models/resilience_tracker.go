package models

import "time"

// ResilienceTracker is one monthly snapshot; Month is always the first day of
// the calendar month in UTC.
type ResilienceTracker struct {
	ID                   int       `json:"id" db:"id"`
	UserID               int       `json:"user_id" db:"user_id"`
	Month                time.Time `json:"month" db:"month"`
	TotalIncome          float64   `json:"totalIncome" db:"total_income"`
	TotalExpenses        float64   `json:"totalExpenses" db:"total_expenses"`
	TotalSavings         float64   `json:"totalSavings" db:"total_savings"`
	TotalDebt            float64   `json:"totalDebt" db:"total_debt"`
	IncomeSourceCount    int       `json:"incomeSourceCount" db:"income_source_count"`
	SkillCount           int       `json:"skillCount" db:"skill_count"`
	DependentCount       int       `json:"dependentCount" db:"dependent_count"`
	EarnerCount          int       `json:"earnerCount" db:"earner_count"`
	EmergencyFundRatio   float64   `json:"emergencyFundRatio" db:"emergency_fund_ratio"`
	DebtBurdenRatio      float64   `json:"debtBurdenRatio" db:"debt_burden_ratio"`
	IncomeDiversityScore float64   `json:"incomeDiversityScore" db:"income_diversity_score"`
	SkillScore           float64   `json:"skillScore" db:"skill_score"`
	ResilienceScore      float64   `json:"resilienceScore" db:"resilience_score"`
	CreatedAt            time.Time `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time `json:"updated_at" db:"updated_at"`
}

// MonthStart truncates t to the first day of its month in UTC.
func MonthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
