// Package services implements the API operations on top of a Store.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/valeriaulyamaeva/resilience-tracker/internal/auth"
	"github.com/valeriaulyamaeva/resilience-tracker/internal/database"
	"github.com/valeriaulyamaeva/resilience-tracker/internal/scoring"
	"github.com/valeriaulyamaeva/resilience-tracker/models"
	"go.uber.org/zap"
)

var (
	ErrProfileNotFound    = errors.New("financial profile not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidInput       = errors.New("invalid input")
)

// Store is the persistence the service needs. Both database.Store and
// memdb.Store implement it.
type Store interface {
	Ping(ctx context.Context) error

	CreateUser(ctx context.Context, user *models.User) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id int) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	ListUsersWithProfile(ctx context.Context) ([]int, error)

	GetFinancialProfile(ctx context.Context, userID int) (*models.FinancialProfile, error)
	UpsertFinancialProfile(ctx context.Context, fp *models.FinancialProfile) error

	GetFamilyMembers(ctx context.Context, userID int) ([]models.FamilyMember, error)
	GetEarners(ctx context.Context, userID int) ([]models.FamilyMember, error)
	ReplaceFamilyMembers(ctx context.Context, userID int, members []models.FamilyMember) ([]models.FamilyMember, error)

	GetMonthlyEntry(ctx context.Context, userID int, month time.Time) (*models.ResilienceTracker, error)
	UpsertMonthlyEntry(ctx context.Context, t *models.ResilienceTracker) error
	InsertMonthlyEntryIfAbsent(ctx context.Context, t *models.ResilienceTracker) (bool, error)
	GetTrackerHistory(ctx context.Context, userID int) ([]models.ResilienceTracker, error)
}

type Service struct {
	store   Store
	scoring scoring.Config
	tokens  *auth.Issuer
	log     *zap.Logger
	now     func() time.Time
}

func New(store Store, cfg scoring.Config, tokens *auth.Issuer, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, scoring: cfg, tokens: tokens, log: log, now: time.Now}
}

// Tokens exposes the issuer so the auth middleware verifies what Login signs.
func (s *Service) Tokens() *auth.Issuer { return s.tokens }

func (s *Service) Ping(ctx context.Context) error { return s.store.Ping(ctx) }

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// financialProfile maps a missing row to ErrProfileNotFound.
func (s *Service) financialProfile(ctx context.Context, userID int) (*models.FinancialProfile, error) {
	fp, err := s.store.GetFinancialProfile(ctx, userID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrProfileNotFound
	}
	return fp, err
}

// household aggregates the profile and the earners' income of a user.
func (s *Service) household(ctx context.Context, userID int) (scoring.Household, error) {
	fp, err := s.financialProfile(ctx, userID)
	if err != nil {
		return scoring.Household{}, err
	}
	earners, err := s.store.GetEarners(ctx, userID)
	if err != nil {
		return scoring.Household{}, err
	}
	return scoring.Household{
		Income:   models.TotalIncome(earners),
		Expenses: fp.MonthlyExpenses,
		Savings:  fp.TotalSavings,
		Debt:     fp.TotalDebt,
	}, nil
}
