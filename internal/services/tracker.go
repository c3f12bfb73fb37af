package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/valeriaulyamaeva/resilience-tracker/internal/database"
	"github.com/valeriaulyamaeva/resilience-tracker/internal/scoring"
	"github.com/valeriaulyamaeva/resilience-tracker/models"
	"go.uber.org/zap"
)

// MonthlyEntry is the body of a tracker submission. Pointers distinguish
// missing values from zeros.
type MonthlyEntry struct {
	Month             string   `json:"month"`
	TotalIncome       *float64 `json:"totalIncome"`
	TotalExpenses     *float64 `json:"totalExpenses"`
	TotalSavings      *float64 `json:"totalSavings"`
	TotalDebt         *float64 `json:"totalDebt"`
	IncomeSourceCount *int     `json:"incomeSourceCount"`
	SkillCount        *int     `json:"skillCount"`
	DependentCount    *int     `json:"dependentCount"`
	EarnerCount       *int     `json:"earnerCount"`
}

var monthLayouts = []string{"2006-01-02", "2006-01", time.RFC3339}

// ParseMonth accepts a date, a year-month or an RFC 3339 timestamp and
// returns the first day of that month in UTC. An empty string means the UTC
// month of now.
func ParseMonth(value string, now time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return models.MonthStart(now), nil
	}
	for _, layout := range monthLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			// the calendar month is read in the offset the client sent
			return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, invalid("month %q is not a valid date", value)
}

func intOr(p *int, fallback int) int {
	if p == nil {
		return fallback
	}
	return *p
}

func floatOr(p *float64, fallback float64) float64 {
	if p == nil {
		return fallback
	}
	return *p
}

func (e MonthlyEntry) validate() error {
	if e.TotalSavings == nil || e.TotalExpenses == nil {
		return invalid("totalSavings and totalExpenses are required")
	}
	for _, c := range []*int{e.IncomeSourceCount, e.SkillCount, e.DependentCount, e.EarnerCount} {
		if c != nil && *c < 0 {
			return invalid("counts must not be negative")
		}
	}
	for _, v := range []*float64{e.TotalIncome, e.TotalExpenses, e.TotalSavings, e.TotalDebt} {
		if v != nil && *v < 0 {
			return invalid("amounts must not be negative")
		}
	}
	return nil
}

// SaveMonthlyEntry scores the submission against the previous calendar month
// and stores it, replacing any earlier submission for the same month.
func (s *Service) SaveMonthlyEntry(ctx context.Context, userID int, e MonthlyEntry) (*models.ResilienceTracker, error) {
	if err := e.validate(); err != nil {
		return nil, err
	}
	month, err := ParseMonth(e.Month, s.now())
	if err != nil {
		return nil, err
	}

	t := &models.ResilienceTracker{
		UserID:            userID,
		Month:             month,
		TotalIncome:       floatOr(e.TotalIncome, 0),
		TotalExpenses:     *e.TotalExpenses,
		TotalSavings:      *e.TotalSavings,
		TotalDebt:         floatOr(e.TotalDebt, 0),
		IncomeSourceCount: intOr(e.IncomeSourceCount, 1),
		SkillCount:        intOr(e.SkillCount, 0),
		DependentCount:    intOr(e.DependentCount, 0),
		EarnerCount:       intOr(e.EarnerCount, 0),
	}
	if err := s.score(ctx, t); err != nil {
		return nil, err
	}
	if err := s.store.UpsertMonthlyEntry(ctx, t); err != nil {
		return nil, err
	}

	s.log.Info("monthly entry saved",
		zap.Int("user_id", userID),
		zap.String("month", month.Format("2006-01")),
		zap.Float64("score", t.ResilienceScore))
	return t, nil
}

// score fills the ratio and score fields of t from the entry of the month before.
func (s *Service) score(ctx context.Context, t *models.ResilienceTracker) error {
	prev, err := s.store.GetMonthlyEntry(ctx, t.UserID, t.Month.AddDate(0, -1, 0))
	if errors.Is(err, database.ErrNotFound) {
		prev, err = nil, nil
	}
	if err != nil {
		return err
	}

	snap := scoring.Snapshot{
		Income:        t.TotalIncome,
		Expenses:      t.TotalExpenses,
		Savings:       t.TotalSavings,
		Debt:          t.TotalDebt,
		IncomeSources: t.IncomeSourceCount,
		Skills:        t.SkillCount,
	}
	b := s.scoring.ResilienceScore(snap, scoring.DeltasFrom(snap, prev))

	t.EmergencyFundRatio = b.EmergencyFundRatio
	t.DebtBurdenRatio = b.DebtBurdenRatio
	t.IncomeDiversityScore = b.IncomeDiversityScore
	t.SkillScore = b.SkillScore
	// stored at response precision; the source persisted the unrounded score
	t.ResilienceScore = scoring.Round1(b.Score)
	return nil
}

func (s *Service) History(ctx context.Context, userID int) ([]models.ResilienceTracker, error) {
	return s.store.GetTrackerHistory(ctx, userID)
}

// SnapshotFromProfile records the month for a user from the stored profile and
// members. It never overwrites an existing entry and reports whether it wrote one.
func (s *Service) SnapshotFromProfile(ctx context.Context, userID int, month time.Time) (bool, error) {
	fp, err := s.financialProfile(ctx, userID)
	if err != nil {
		return false, err
	}
	members, err := s.store.GetFamilyMembers(ctx, userID)
	if err != nil {
		return false, err
	}
	earners := models.Earners(members)

	t := &models.ResilienceTracker{
		UserID:            userID,
		Month:             models.MonthStart(month),
		TotalIncome:       models.TotalIncome(members),
		TotalExpenses:     fp.MonthlyExpenses,
		TotalSavings:      fp.TotalSavings,
		TotalDebt:         fp.TotalDebt,
		IncomeSourceCount: len(earners),
		SkillCount:        scoring.DistinctSkills(earners),
		DependentCount:    len(members) - len(earners),
		EarnerCount:       len(earners),
	}
	if err := s.score(ctx, t); err != nil {
		return false, err
	}
	return s.store.InsertMonthlyEntryIfAbsent(ctx, t)
}

// SnapshotAll runs SnapshotFromProfile for every user with a financial
// profile. Failures for one user are logged and do not stop the others.
func (s *Service) SnapshotAll(ctx context.Context, month time.Time) (written int, err error) {
	ids, err := s.store.ListUsersWithProfile(ctx)
	if err != nil {
		return 0, err
	}
	for _, id := range ids {
		if ctx.Err() != nil {
			return written, ctx.Err()
		}
		ok, err := s.SnapshotFromProfile(ctx, id, month)
		if err != nil {
			s.log.Error("snapshot failed", zap.Int("user_id", id), zap.Error(err))
			continue
		}
		if ok {
			written++
		}
	}
	return written, nil
}
