package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/valeriaulyamaeva/resilience-tracker/models"
)

const trackerColumns = `id, user_id, month, total_income, total_expenses, total_savings, total_debt,
	income_source_count, skill_count, dependent_count, earner_count,
	emergency_fund_ratio, debt_burden_ratio, income_diversity_score, skill_score,
	resilience_score, created_at, updated_at`

func scanTracker(row pgx.Row) (*models.ResilienceTracker, error) {
	var t models.ResilienceTracker
	err := row.Scan(&t.ID, &t.UserID, &t.Month, &t.TotalIncome, &t.TotalExpenses, &t.TotalSavings, &t.TotalDebt,
		&t.IncomeSourceCount, &t.SkillCount, &t.DependentCount, &t.EarnerCount,
		&t.EmergencyFundRatio, &t.DebtBurdenRatio, &t.IncomeDiversityScore, &t.SkillScore,
		&t.ResilienceScore, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	t.Month = models.MonthStart(t.Month)
	return &t, nil
}

// GetMonthlyEntry returns ErrNotFound when the user has no row for month.
func (s *Store) GetMonthlyEntry(ctx context.Context, userID int, month time.Time) (*models.ResilienceTracker, error) {
	t, err := scanTracker(s.pool.QueryRow(ctx,
		`SELECT `+trackerColumns+` FROM resilience_tracker WHERE user_id = $1 AND month = $2`,
		userID, models.MonthStart(month)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching tracker entry for user %d: %w", userID, err)
	}
	return t, nil
}

const trackerValues = `($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

const trackerInsert = `
	INSERT INTO resilience_tracker (
		user_id, month, total_income, total_expenses, total_savings, total_debt,
		income_source_count, skill_count, dependent_count, earner_count,
		emergency_fund_ratio, debt_burden_ratio, income_diversity_score, skill_score,
		resilience_score)
	VALUES ` + trackerValues

func trackerArgs(t *models.ResilienceTracker) []any {
	return []any{
		t.UserID, models.MonthStart(t.Month), t.TotalIncome, t.TotalExpenses, t.TotalSavings, t.TotalDebt,
		t.IncomeSourceCount, t.SkillCount, t.DependentCount, t.EarnerCount,
		t.EmergencyFundRatio, t.DebtBurdenRatio, t.IncomeDiversityScore, t.SkillScore,
		t.ResilienceScore,
	}
}

// UpsertMonthlyEntry stores the entry for (user, month), overwriting an
// existing row. The unique key makes concurrent submissions collapse into one row.
func (s *Store) UpsertMonthlyEntry(ctx context.Context, t *models.ResilienceTracker) error {
	query := trackerInsert + `
	ON CONFLICT (user_id, month) DO UPDATE SET
		total_income           = EXCLUDED.total_income,
		total_expenses         = EXCLUDED.total_expenses,
		total_savings          = EXCLUDED.total_savings,
		total_debt             = EXCLUDED.total_debt,
		income_source_count    = EXCLUDED.income_source_count,
		skill_count            = EXCLUDED.skill_count,
		dependent_count        = EXCLUDED.dependent_count,
		earner_count           = EXCLUDED.earner_count,
		emergency_fund_ratio   = EXCLUDED.emergency_fund_ratio,
		debt_burden_ratio      = EXCLUDED.debt_burden_ratio,
		income_diversity_score = EXCLUDED.income_diversity_score,
		skill_score            = EXCLUDED.skill_score,
		resilience_score       = EXCLUDED.resilience_score,
		updated_at             = now()
	RETURNING id, created_at, updated_at`

	t.Month = models.MonthStart(t.Month)
	if err := s.pool.QueryRow(ctx, query, trackerArgs(t)...).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return fmt.Errorf("error saving tracker entry for user %d: %w", t.UserID, err)
	}
	return nil
}

// InsertMonthlyEntryIfAbsent stores t only when the user has no row for the
// month yet. It reports whether a row was written.
func (s *Store) InsertMonthlyEntryIfAbsent(ctx context.Context, t *models.ResilienceTracker) (bool, error) {
	query := trackerInsert + `
	ON CONFLICT (user_id, month) DO NOTHING
	RETURNING id, created_at, updated_at`

	t.Month = models.MonthStart(t.Month)
	err := s.pool.QueryRow(ctx, query, trackerArgs(t)...).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error inserting tracker entry for user %d: %w", t.UserID, err)
	}
	return true, nil
}

// GetTrackerHistory returns all entries of a user, oldest month first.
func (s *Store) GetTrackerHistory(ctx context.Context, userID int) ([]models.ResilienceTracker, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+trackerColumns+` FROM resilience_tracker WHERE user_id = $1 ORDER BY month ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("error fetching tracker history for user %d: %w", userID, err)
	}
	defer rows.Close()

	history := []models.ResilienceTracker{}
	for rows.Next() {
		t, err := scanTracker(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning tracker entry: %w", err)
		}
		history = append(history, *t)
	}
	return history, rows.Err()
}
