package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/valeriaulyamaeva/resilience-tracker/models"
)

// GetFinancialProfile returns ErrNotFound when the user has not saved one.
func (s *Store) GetFinancialProfile(ctx context.Context, userID int) (*models.FinancialProfile, error) {
	query := `
		SELECT id, user_id, family_name, address, city, state, pincode,
		       total_savings, total_debt, monthly_expenses,
		       rent_amount, school_fees, emi_amount, updated_at
		FROM financial_profiles
		WHERE user_id = $1`

	var fp models.FinancialProfile
	err := s.pool.QueryRow(ctx, query, userID).Scan(
		&fp.ID, &fp.UserID, &fp.FamilyName, &fp.Address, &fp.City, &fp.State, &fp.Pincode,
		&fp.TotalSavings, &fp.TotalDebt, &fp.MonthlyExpenses,
		&fp.RentAmount, &fp.SchoolFees, &fp.EMIAmount, &fp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching financial profile for user %d: %w", userID, err)
	}
	return &fp, nil
}

// UpsertFinancialProfile creates the user's profile or overwrites every field
// of the existing one in a single statement.
func (s *Store) UpsertFinancialProfile(ctx context.Context, fp *models.FinancialProfile) error {
	query := `
		INSERT INTO financial_profiles (
			user_id, family_name, address, city, state, pincode,
			total_savings, total_debt, monthly_expenses,
			rent_amount, school_fees, emi_amount, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, now())
		ON CONFLICT (user_id) DO UPDATE SET
			family_name      = EXCLUDED.family_name,
			address          = EXCLUDED.address,
			city             = EXCLUDED.city,
			state            = EXCLUDED.state,
			pincode          = EXCLUDED.pincode,
			total_savings    = EXCLUDED.total_savings,
			total_debt       = EXCLUDED.total_debt,
			monthly_expenses = EXCLUDED.monthly_expenses,
			rent_amount      = EXCLUDED.rent_amount,
			school_fees      = EXCLUDED.school_fees,
			emi_amount       = EXCLUDED.emi_amount,
			updated_at       = now()
		RETURNING id, updated_at`

	err := s.pool.QueryRow(ctx, query,
		fp.UserID, fp.FamilyName, fp.Address, fp.City, fp.State, fp.Pincode,
		fp.TotalSavings, fp.TotalDebt, fp.MonthlyExpenses,
		fp.RentAmount, fp.SchoolFees, fp.EMIAmount,
	).Scan(&fp.ID, &fp.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error saving financial profile for user %d: %w", fp.UserID, err)
	}
	return nil
}
