package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valeriaulyamaeva/resilience-tracker/models"
)

func TestResilienceScore_Components(t *testing.T) {
	cfg := DefaultConfig()
	s := Snapshot{Income: 20000, Expenses: 5000, Savings: 5000, Debt: 10000, IncomeSources: 3, Skills: 5}

	b := cfg.ResilienceScore(s, Deltas{})
	assert.Equal(t, 70.0, b.Score)
	assert.Equal(t, 1.0, b.EmergencyFundRatio)
	assert.Equal(t, 0.5, b.DebtBurdenRatio)
	assert.Equal(t, 1.0, b.IncomeDiversityScore)
	assert.Equal(t, 1.0, b.SkillScore)

	assert.Equal(t, 85.0, cfg.ResilienceScore(s, Deltas{Savings: 1000}).Score)
	assert.Equal(t, 100.0, cfg.ResilienceScore(s, Deltas{Savings: 1000, Debt: 1000}).Score)
	assert.Equal(t, 100.0, cfg.ResilienceScore(s, Deltas{Savings: 50000}).Score)
	assert.Equal(t, 0.0, cfg.ResilienceScore(s, Deltas{Savings: -50000}).Score)
}

func TestResilienceScore_ZeroExpenses(t *testing.T) {
	cfg := DefaultConfig()
	b := cfg.ResilienceScore(Snapshot{Savings: 1000, IncomeSources: 1}, Deltas{})

	assert.Equal(t, 0.0, b.EmergencyFundRatio)
	assert.Equal(t, 0.0, b.DebtBurdenRatio)
	assert.InDelta(t, 25.0/3, b.Score, 1e-9)
}

func TestResilienceScore_BoundedAndMonotonic(t *testing.T) {
	cfg := DefaultConfig()
	deltas := []Deltas{{}, {Savings: 800, Debt: -300}, {Savings: -2500, Debt: 4000}}

	for _, d := range deltas {
		prev := -1.0
		for savings := 0.0; savings <= 12000; savings += 500 {
			got := cfg.ResilienceScore(Snapshot{Savings: savings, Expenses: 6000, IncomeSources: 1, Skills: 2}, d).Score
			assert.GreaterOrEqual(t, got, prev)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 100.0)
			prev = got
		}

		prev = -1.0
		for sources := 0; sources <= 6; sources++ {
			got := cfg.ResilienceScore(Snapshot{Savings: 1000, Expenses: 6000, IncomeSources: sources, Skills: 2}, d).Score
			assert.GreaterOrEqual(t, got, prev)
			prev = got
		}

		prev = -1.0
		for skills := 0; skills <= 9; skills++ {
			got := cfg.ResilienceScore(Snapshot{Savings: 1000, Expenses: 6000, IncomeSources: 2, Skills: skills}, d).Score
			assert.GreaterOrEqual(t, got, prev)
			prev = got
		}
	}
}

func TestDeltasFrom(t *testing.T) {
	cur := Snapshot{Savings: 5000, Debt: 2000}

	assert.Equal(t, Deltas{}, DeltasFrom(cur, nil))

	prev := &models.ResilienceTracker{TotalSavings: 4000, TotalDebt: 3000}
	assert.Equal(t, Deltas{Savings: 1000, Debt: 1000}, DeltasFrom(cur, prev))
}
