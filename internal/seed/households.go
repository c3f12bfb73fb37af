// Package seed fills a store with demo households through the service layer,
// so seeded data passes the same validation as API traffic.
package seed

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/valeriaulyamaeva/resilience-tracker/internal/scoring"
	"github.com/valeriaulyamaeva/resilience-tracker/internal/services"
	"github.com/valeriaulyamaeva/resilience-tracker/models"
	"go.uber.org/zap"
)

const DefaultPassword = "demo-password"

var (
	stabilities = []string{"STABLE", "SEMI_STABLE", "SEASONAL", "IRREGULAR"}
	incomeTypes = []string{"SALARY", "DAILY_WAGE", "SELF_EMPLOYED", "FARMING"}
	educations  = []string{"NONE", "PRIMARY", "SECONDARY", "GRADUATE"}
	skills      = []string{"driving", "tailoring", "carpentry", "cooking", "farming", "plumbing", "teaching", "welding"}
)

type Seeder struct {
	svc    *services.Service
	faker  *gofakeit.Faker
	log    *zap.Logger
	months int
	now    func() time.Time
}

// New returns a Seeder whose output is fixed by seed. Each household gets
// months entries of tracker history ending with the current month.
func New(svc *services.Service, seed int64, months int, log *zap.Logger) *Seeder {
	return &Seeder{svc: svc, faker: gofakeit.New(seed), log: log, months: months, now: time.Now}
}

// Households creates n users with profile, members and history and returns
// their usernames.
func (s *Seeder) Households(ctx context.Context, n int) ([]string, error) {
	usernames := make([]string, 0, n)
	for i := 0; i < n; i++ {
		username, err := s.household(ctx, i)
		if err != nil {
			return usernames, fmt.Errorf("error seeding household %d: %w", i, err)
		}
		usernames = append(usernames, username)
	}
	s.log.Info("seeded households", zap.Int("count", len(usernames)))
	return usernames, nil
}

func (s *Seeder) household(ctx context.Context, i int) (string, error) {
	f := s.faker
	lastName := f.LastName()
	username := fmt.Sprintf("%s%d", strings.ToLower(f.Username()), i)

	user, err := s.svc.Register(ctx, services.RegisterRequest{
		Username: username,
		Password: DefaultPassword,
		Email:    fmt.Sprintf("%s@%s", username, f.DomainName()),
		Phone:    f.Phone(),
		Role:     models.RoleFamily,
		Name:     f.FirstName() + " " + lastName,
		City:     f.City(),
	})
	if err != nil {
		return "", err
	}

	members := s.members(lastName)
	if _, err := s.svc.ReplaceMembers(ctx, user.ID, members); err != nil {
		return "", err
	}

	income := models.TotalIncome(members)
	expenses := money(income * f.Float64Range(0.6, 1.2))
	savings := money(expenses * f.Float64Range(0, 8))
	debt := money(income * f.Float64Range(0, 6))

	if _, err := s.svc.SaveFinancialProfile(ctx, user.ID, models.FinancialProfile{
		FamilyName:      lastName,
		Address:         f.Street(),
		City:            user.City,
		State:           f.State(),
		Pincode:         f.Zip(),
		TotalSavings:    savings,
		TotalDebt:       debt,
		MonthlyExpenses: expenses,
	}); err != nil {
		return "", err
	}

	return username, s.history(ctx, user.ID, members, income, expenses, savings, debt)
}

func (s *Seeder) members(lastName string) []models.FamilyMember {
	f := s.faker
	size := f.IntRange(1, 6)
	members := make([]models.FamilyMember, 0, size)
	for j := 0; j < size; j++ {
		m := models.FamilyMember{
			FullName:       f.FirstName() + " " + lastName,
			Age:            f.IntRange(1, 80),
			Gender:         f.RandomString([]string{"MALE", "FEMALE"}),
			EducationLevel: f.RandomString(educations),
		}
		// the first member always earns so every household has income
		if j == 0 || (m.Age >= 18 && m.Age < 65 && f.Bool()) {
			if m.Age < 18 {
				m.Age = f.IntRange(18, 64)
			}
			m.IsEarner = true
			m.IncomeType = f.RandomString(incomeTypes)
			m.MonthlyIncome = money(f.Float64Range(5000, 60000))
			m.IncomeStability = f.RandomString(stabilities)
			m.Skills = s.skills()
		}
		members = append(members, m)
	}
	return members
}

func (s *Seeder) skills() string {
	n := s.faker.IntRange(0, 3)
	picked := make([]string, 0, n)
	for k := 0; k < n; k++ {
		picked = append(picked, s.faker.RandomString(skills))
	}
	return strings.Join(picked, ", ")
}

// history walks back from the current month with small random drifts.
func (s *Seeder) history(ctx context.Context, userID int, members []models.FamilyMember, income, expenses, savings, debt float64) error {
	f := s.faker
	current := models.MonthStart(s.now())
	earners := len(models.Earners(members))
	dependents := len(members) - earners
	skillCount := scoring.DistinctSkills(models.Earners(members))

	for k := s.months - 1; k >= 0; k-- {
		month := current.AddDate(0, -k, 0)
		drift := f.Float64Range(0.9, 1.1)
		entry := services.MonthlyEntry{
			Month:             month.Format("2006-01-02"),
			TotalIncome:       ptr(money(income * drift)),
			TotalExpenses:     ptr(money(expenses * drift)),
			TotalSavings:      ptr(money(savings * f.Float64Range(0.8, 1.2))),
			TotalDebt:         ptr(money(debt * f.Float64Range(0.8, 1.1))),
			IncomeSourceCount: ptr(earners),
			SkillCount:        ptr(skillCount),
			DependentCount:    ptr(dependents),
			EarnerCount:       ptr(earners),
		}
		if _, err := s.svc.SaveMonthlyEntry(ctx, userID, entry); err != nil {
			return err
		}
	}
	return nil
}

func money(v float64) float64 { return math.Round(v) }

func ptr[T any](v T) *T { return &v }
