package scoring

import (
	"math/rand"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valeriaulyamaeva/resilience-tracker/models"
)

func TestEconomicFlexibility_SingleStableEarner(t *testing.T) {
	cfg := DefaultConfig()
	fp := models.FinancialProfile{TotalSavings: 10000, MonthlyExpenses: 5000}
	members := []models.FamilyMember{
		{FullName: "Asha", IsEarner: true, MonthlyIncome: 20000, IncomeStability: "STABLE"},
	}

	res := cfg.EconomicFlexibility(fp, members)

	assert.Equal(t, 1.05, res.Score)
	assert.Equal(t, RiskStrong, res.RiskLevel)
	assert.Equal(t, 2.0, res.EmergencyBufferRatio)
	assert.Equal(t, 0.33, res.IncomeDiversityScore)
	assert.Equal(t, 0.0, res.DependencyRatio)
	assert.Equal(t, 0.9, res.IncomeStabilityFactor)
	assert.Equal(t, 2.0, res.SurvivalMonths)
	assert.Equal(t, 20000.0, res.TotalIncome)
	assert.Equal(t, 1, res.EarnerCount)
	assert.Equal(t, 0, res.DependentCount)
}

func TestEconomicFlexibility_NoEarners(t *testing.T) {
	cfg := DefaultConfig()
	fp := models.FinancialProfile{TotalSavings: 0, MonthlyExpenses: 5000}
	members := []models.FamilyMember{{FullName: "a"}, {FullName: "b"}}

	res := cfg.EconomicFlexibility(fp, members)

	assert.Equal(t, 0.0, res.Score)
	assert.Equal(t, RiskHighEFS, res.RiskLevel)
	assert.Equal(t, 2.0, res.DependencyRatio, "dependents count as the ratio when nobody earns")
	assert.Equal(t, 0.4, res.IncomeStabilityFactor)
	assert.Equal(t, 2, res.DependentCount)
}

func TestEconomicFlexibility_ZeroExpenses(t *testing.T) {
	cfg := DefaultConfig()
	fp := models.FinancialProfile{TotalSavings: 3}

	res := cfg.EconomicFlexibility(fp, nil)

	assert.Equal(t, 3.0, res.EmergencyBufferRatio)
	assert.Equal(t, 0.0, res.SurvivalMonths)
	assert.Equal(t, 0.0, res.TotalExpenses)
}

func TestEconomicFlexibility_Moderate(t *testing.T) {
	cfg := DefaultConfig()
	fp := models.FinancialProfile{TotalSavings: 10000, MonthlyExpenses: 10000}
	members := []models.FamilyMember{
		{IsEarner: true, MonthlyIncome: 12000, IncomeStability: "semi_stable"},
		{IsEarner: true, MonthlyIncome: 4000, IncomeStability: "SEASONAL"},
		{IsEarner: false},
	}

	res := cfg.EconomicFlexibility(fp, members)

	// 0.4*1 + 0.2*(2/3) - 0.2*0.5 + 0.2*0.55 = 0.5433
	assert.Equal(t, 0.54, res.Score)
	assert.Equal(t, RiskModerate, res.RiskLevel)
	assert.Equal(t, 0.55, res.IncomeStabilityFactor)
	assert.Equal(t, 0.5, res.DependencyRatio)
}

func TestDistinctSkills(t *testing.T) {
	members := []models.FamilyMember{
		{IsEarner: true, Skills: "Tailoring, tailoring, ,Driving"},
		{IsEarner: true, Skills: "driving,Cooking"},
		{IsEarner: true, Skills: ""},
	}
	assert.Equal(t, 3, DistinctSkills(members))
}

func TestEconomicFlexibility_SkillsFromEarnersOnly(t *testing.T) {
	cfg := DefaultConfig()
	fp := models.FinancialProfile{TotalSavings: 1000, MonthlyExpenses: 1000}
	members := []models.FamilyMember{
		{IsEarner: true, Skills: "a,b"},
		{IsEarner: false, Skills: "c,d,e,f"},
	}

	res := cfg.EconomicFlexibility(fp, members)
	assert.Equal(t, 0.4, res.SkillScore)
}

func randomHousehold(f *gofakeit.Faker) (models.FinancialProfile, []models.FamilyMember) {
	fp := models.FinancialProfile{
		TotalSavings:    f.Float64Range(0, 500000),
		TotalDebt:       f.Float64Range(0, 200000),
		MonthlyExpenses: f.Float64Range(0, 80000),
	}
	stabilities := []string{"STABLE", "SEMI_STABLE", "SEASONAL", ""}
	skills := []string{"carpentry", "tailoring", "driving", "cooking", "farming", "accounting", "coding"}

	n := f.IntRange(0, 8)
	members := make([]models.FamilyMember, 0, n)
	for i := 0; i < n; i++ {
		m := models.FamilyMember{
			FullName: f.Name(),
			Age:      f.IntRange(1, 90),
			IsEarner: f.Bool(),
		}
		if m.IsEarner {
			m.MonthlyIncome = f.Float64Range(0, 60000)
			m.IncomeStability = f.RandomString(stabilities)
			m.Skills = f.RandomString(skills) + "," + f.RandomString(skills)
		}
		members = append(members, m)
	}
	return fp, members
}

func TestEconomicFlexibility_OrderInvariantAndBounded(t *testing.T) {
	cfg := DefaultConfig()
	f := gofakeit.New(42)
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 200; i++ {
		fp, members := randomHousehold(f)
		want := cfg.EconomicFlexibility(fp, members)

		shuffled := append([]models.FamilyMember(nil), members...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		got := cfg.EconomicFlexibility(fp, shuffled)

		require.InDelta(t, want.TotalIncome, got.TotalIncome, 0.01)
		want.TotalIncome, got.TotalIncome = 0, 0
		require.Equal(t, want, got)
		require.GreaterOrEqual(t, got.Score, 0.0)
		require.LessOrEqual(t, got.Score, 2.0)
	}
}

func TestStabilityValue(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 0.9, cfg.StabilityValue("stable"))
	assert.Equal(t, 0.7, cfg.StabilityValue("SEMI_STABLE"))
	assert.Equal(t, 0.4, cfg.StabilityValue("DAILY_WAGE"))
	assert.Equal(t, 0.4, cfg.StabilityValue(""))
}
