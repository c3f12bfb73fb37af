package models

import "strings"

type FamilyMember struct {
	ID              int     `json:"id" db:"id"`
	UserID          int     `json:"user_id" db:"user_id"`
	FullName        string  `json:"fullName" db:"full_name"`
	Age             int     `json:"age" db:"age"`
	Gender          string  `json:"gender" db:"gender"`
	EducationLevel  string  `json:"educationLevel" db:"education_level"`
	IsEarner        bool    `json:"isEarner" db:"is_earner"`
	IncomeType      string  `json:"incomeType" db:"income_type"`
	MonthlyIncome   float64 `json:"monthlyIncome" db:"monthly_income"`
	IncomeStability string  `json:"incomeStability" db:"income_stability"`
	Skills          string  `json:"skills" db:"skills"`
}

// SkillList splits the comma-separated skills column, dropping blank tokens.
func (m *FamilyMember) SkillList() []string {
	var skills []string
	for _, s := range strings.Split(m.Skills, ",") {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}

// Earners returns the members flagged as earners, keeping their order.
func Earners(members []FamilyMember) []FamilyMember {
	var earners []FamilyMember
	for _, m := range members {
		if m.IsEarner {
			earners = append(earners, m)
		}
	}
	return earners
}

// TotalIncome sums the monthly income of earners only.
func TotalIncome(members []FamilyMember) float64 {
	var total float64
	for _, m := range members {
		if m.IsEarner {
			total += m.MonthlyIncome
		}
	}
	return total
}
