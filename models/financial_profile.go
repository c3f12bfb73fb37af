package models

import "time"

type FinancialProfile struct {
	ID              int       `json:"id" db:"id"`
	UserID          int       `json:"user_id" db:"user_id"`
	FamilyName      string    `json:"familyName" db:"family_name"`
	Address         string    `json:"address" db:"address"`
	City            string    `json:"city" db:"city"`
	State           string    `json:"state" db:"state"`
	Pincode         string    `json:"pincode" db:"pincode"`
	TotalSavings    float64   `json:"totalSavings" db:"total_savings"`
	TotalDebt       float64   `json:"totalDebt" db:"total_debt"`
	MonthlyExpenses float64   `json:"monthlyExpenses" db:"monthly_expenses"`
	RentAmount      *float64  `json:"rentAmount,omitempty" db:"rent_amount"`
	SchoolFees      *float64  `json:"schoolFees,omitempty" db:"school_fees"`
	EMIAmount       *float64  `json:"emiAmount,omitempty" db:"emi_amount"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}
