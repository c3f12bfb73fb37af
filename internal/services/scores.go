package services

import (
	"context"
	"strings"

	"github.com/valeriaulyamaeva/resilience-tracker/internal/scoring"
	"go.uber.org/zap"
)

// EconomicScore computes the flexibility score from the stored profile and members.
func (s *Service) EconomicScore(ctx context.Context, userID int) (*scoring.FlexibilityResult, error) {
	fp, err := s.financialProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	members, err := s.store.GetFamilyMembers(ctx, userID)
	if err != nil {
		return nil, err
	}

	res := s.scoring.EconomicFlexibility(*fp, members)
	s.log.Debug("economic score computed",
		zap.Int("user_id", userID), zap.Float64("score", res.Score), zap.String("risk", res.RiskLevel))
	return &res, nil
}

type ShockRequest struct {
	ShockType  string   `json:"shockType"`
	ShockValue *float64 `json:"shockValue"`
}

func (s *Service) SimulateShock(ctx context.Context, userID int, req ShockRequest) (*scoring.ShockResult, error) {
	if strings.TrimSpace(req.ShockType) == "" {
		return nil, invalid("shockType is required")
	}
	var magnitude float64
	if req.ShockValue != nil {
		magnitude = *req.ShockValue
	}
	if magnitude < 0 {
		return nil, invalid("shockValue must not be negative")
	}

	h, err := s.household(ctx, userID)
	if err != nil {
		return nil, err
	}
	res := s.scoring.SimulateShock(h, req.ShockType, magnitude)
	return &res, nil
}

type OpportunityRequest struct {
	InvestmentCost         *float64 `json:"investmentCost"`
	ExpectedIncomeIncrease *float64 `json:"expectedIncomeIncrease"`
	SuccessProbability     *float64 `json:"successProbability"`
}

func (s *Service) SimulateOpportunity(ctx context.Context, userID int, req OpportunityRequest) (*scoring.OpportunityResult, error) {
	if req.InvestmentCost == nil || req.ExpectedIncomeIncrease == nil || req.SuccessProbability == nil {
		return nil, invalid("investmentCost, expectedIncomeIncrease and successProbability are required")
	}
	cost, increase, p := *req.InvestmentCost, *req.ExpectedIncomeIncrease, *req.SuccessProbability
	if cost < 0 || increase < 0 {
		return nil, invalid("investmentCost and expectedIncomeIncrease must not be negative")
	}
	if p < 0 || p > 1 {
		return nil, invalid("successProbability must be between 0 and 1")
	}

	h, err := s.household(ctx, userID)
	if err != nil {
		return nil, err
	}
	res := s.scoring.EvaluateOpportunity(h, cost, increase, p)
	return &res, nil
}
