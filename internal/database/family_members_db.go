package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/valeriaulyamaeva/resilience-tracker/models"
)

const memberColumns = `id, user_id, full_name, age, gender, education_level, is_earner,
	income_type, monthly_income, income_stability, skills`

func (s *Store) queryMembers(ctx context.Context, query string, userID int) ([]models.FamilyMember, error) {
	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error fetching family members for user %d: %w", userID, err)
	}
	defer rows.Close()

	members := []models.FamilyMember{}
	for rows.Next() {
		var m models.FamilyMember
		if err := rows.Scan(&m.ID, &m.UserID, &m.FullName, &m.Age, &m.Gender, &m.EducationLevel, &m.IsEarner,
			&m.IncomeType, &m.MonthlyIncome, &m.IncomeStability, &m.Skills); err != nil {
			return nil, fmt.Errorf("error scanning family member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// GetFamilyMembers returns all members of a user's household in insertion order.
func (s *Store) GetFamilyMembers(ctx context.Context, userID int) ([]models.FamilyMember, error) {
	return s.queryMembers(ctx, `SELECT `+memberColumns+` FROM family_members WHERE user_id = $1 ORDER BY id`, userID)
}

// GetEarners returns only the members flagged as earners.
func (s *Store) GetEarners(ctx context.Context, userID int) ([]models.FamilyMember, error) {
	return s.queryMembers(ctx, `SELECT `+memberColumns+` FROM family_members WHERE user_id = $1 AND is_earner ORDER BY id`, userID)
}

// ReplaceFamilyMembers deletes every member of the user and inserts the given
// list in one transaction. The user row is locked so concurrent replacements
// for the same household run one after the other.
func (s *Store) ReplaceFamilyMembers(ctx context.Context, userID int, members []models.FamilyMember) ([]models.FamilyMember, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("error starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var locked int
	if err := tx.QueryRow(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&locked); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error locking user %d: %w", userID, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM family_members WHERE user_id = $1`, userID); err != nil {
		return nil, fmt.Errorf("error deleting family members for user %d: %w", userID, err)
	}

	query := `
		INSERT INTO family_members (user_id, full_name, age, gender, education_level, is_earner,
			income_type, monthly_income, income_stability, skills)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`

	saved := make([]models.FamilyMember, 0, len(members))
	for _, m := range members {
		m.UserID = userID
		err := tx.QueryRow(ctx, query, m.UserID, m.FullName, m.Age, m.Gender, m.EducationLevel, m.IsEarner,
			m.IncomeType, m.MonthlyIncome, m.IncomeStability, m.Skills).Scan(&m.ID)
		if err != nil {
			return nil, fmt.Errorf("error inserting family member %q: %w", m.FullName, err)
		}
		saved = append(saved, m)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("error committing family members: %w", err)
	}
	return saved, nil
}
