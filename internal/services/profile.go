package services

import (
	"context"
	"errors"

	"github.com/valeriaulyamaeva/resilience-tracker/internal/database"
	"github.com/valeriaulyamaeva/resilience-tracker/models"
	"go.uber.org/zap"
)

// ProfileView is the full onboarding state of a user. FinancialProfile is an
// empty object until one is saved.
type ProfileView struct {
	User             *models.User          `json:"user"`
	FinancialProfile any                   `json:"financialProfile"`
	Members          []models.FamilyMember `json:"members"`
	ProfileComplete  bool                  `json:"profileComplete"`
}

func (s *Service) Profile(ctx context.Context, userID int) (*ProfileView, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	members, err := s.store.GetFamilyMembers(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := &ProfileView{User: user, FinancialProfile: map[string]any{}, Members: members}
	fp, err := s.financialProfile(ctx, userID)
	switch {
	case err == nil:
		view.FinancialProfile = fp
		view.ProfileComplete = len(members) > 0
	case !errors.Is(err, ErrProfileNotFound):
		return nil, err
	}
	return view, nil
}

// SaveFinancialProfile creates or overwrites the user's profile.
func (s *Service) SaveFinancialProfile(ctx context.Context, userID int, fp models.FinancialProfile) (*models.FinancialProfile, error) {
	if fp.TotalSavings < 0 || fp.TotalDebt < 0 || fp.MonthlyExpenses < 0 {
		return nil, invalid("savings, debt and expenses must not be negative")
	}
	for _, v := range []*float64{fp.RentAmount, fp.SchoolFees, fp.EMIAmount} {
		if v != nil && *v < 0 {
			return nil, invalid("itemized costs must not be negative")
		}
	}

	fp.ID = 0
	fp.UserID = userID
	if err := s.store.UpsertFinancialProfile(ctx, &fp); err != nil {
		return nil, err
	}
	s.log.Info("financial profile saved", zap.Int("user_id", userID))
	return &fp, nil
}

func (s *Service) Members(ctx context.Context, userID int) ([]models.FamilyMember, error) {
	return s.store.GetFamilyMembers(ctx, userID)
}

// ReplaceMembers swaps the whole member list of the household for members.
func (s *Service) ReplaceMembers(ctx context.Context, userID int, members []models.FamilyMember) ([]models.FamilyMember, error) {
	for i := range members {
		m := &members[i]
		if m.Age < 0 || m.MonthlyIncome < 0 {
			return nil, invalid("member %d: age and income must not be negative", i)
		}
		m.ID = 0
		m.UserID = userID
	}

	saved, err := s.store.ReplaceFamilyMembers(ctx, userID, members)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	s.log.Info("family members replaced", zap.Int("user_id", userID), zap.Int("count", len(saved)))
	return saved, nil
}
