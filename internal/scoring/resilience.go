package scoring

import "github.com/valeriaulyamaeva/resilience-tracker/models"

// Snapshot is the monthly input of the resilience score.
type Snapshot struct {
	Income        float64
	Expenses      float64
	Savings       float64
	Debt          float64
	IncomeSources int
	Skills        int
}

// Deltas compare a snapshot with the previous month. Debt is measured as a
// reduction, so paying debt down is positive.
type Deltas struct {
	Savings float64
	Debt    float64
}

// DeltasFrom returns zero deltas when prev is nil.
func DeltasFrom(cur Snapshot, prev *models.ResilienceTracker) Deltas {
	if prev == nil {
		return Deltas{}
	}
	return Deltas{
		Savings: cur.Savings - prev.TotalSavings,
		Debt:    prev.TotalDebt - cur.Debt,
	}
}

// ResilienceBreakdown carries the score and the ratios stored next to it.
type ResilienceBreakdown struct {
	Score                float64
	EmergencyFundRatio   float64
	DebtBurdenRatio      float64
	IncomeDiversityScore float64
	SkillScore           float64
}

// ResilienceScore computes the 0-100 monthly score. Delta terms are unbounded
// before the final clamp.
func (c Config) ResilienceScore(s Snapshot, d Deltas) ResilienceBreakdown {
	r := c.Resilience
	efr := ratio(s.Savings, s.Expenses, 0)
	ids := minf(float64(s.IncomeSources)/r.MaxIncomeSources, 1)
	ss := minf(float64(s.Skills)/r.MaxSkills, 1)

	score := r.BufferWeight*minf(efr, 1) +
		r.DiversityWeight*ids +
		r.SkillWeight*ss +
		r.SavingsDelta*(d.Savings/r.DeltaUnit) +
		r.DebtDelta*(d.Debt/r.DeltaUnit)

	return ResilienceBreakdown{
		Score:                clamp(score, 0, r.MaxScore),
		EmergencyFundRatio:   efr,
		DebtBurdenRatio:      ratio(s.Debt, s.Income, 0),
		IncomeDiversityScore: ids,
		SkillScore:           ss,
	}
}

// Round1 is the display precision of the monthly score.
func Round1(x float64) float64 { return round1(x) }
