package sim

import (
	"fmt"
	"math"

	"github.com/creditkeeper/creditkeeper/internal/models"
)

// legacyDefaultCreditLimit stands in when the external account reports no
// limit. Named here rather than buried in the arithmetic.
const legacyDefaultCreditLimit = 5000.0

// LegacySimulator is the pre-weighted heuristic simulator. It works from the
// flat credit data of an external account and applies fixed deltas instead of
// rescoring a mutated profile. Kept as its own strategy for backward output
// compatibility with the external-account flow.
type LegacySimulator struct {
	baseScore          int
	currentUtilization float64
	creditLimit        float64
	currentBalance     float64
}

// NewLegacySimulator builds a simulator from flat credit data and its account
func NewLegacySimulator(creditData models.CreditData, account models.Account) *LegacySimulator {
	limit := account.CreditLimit
	if limit <= 0 {
		limit = legacyDefaultCreditLimit
	}
	return &LegacySimulator{
		baseScore:          creditData.Score,
		currentUtilization: creditData.Factors.Utilization.Value,
		creditLimit:        limit,
		currentBalance:     account.Balance,
	}
}

// Simulate projects the scenario with the legacy heuristics. Loan scenarios
// postdate this model and are not supported here.
func (s *LegacySimulator) Simulate(scenario models.Scenario) (*models.Projection, error) {
	switch scenario.Type {
	case models.ScenarioPurchase:
		return s.simulatePurchase(scenario.Amount), nil
	case models.ScenarioMissedPayment:
		return s.simulateMissedPayment(), nil
	case models.ScenarioPayDown:
		return s.simulatePayDown(scenario.PaymentAmount), nil
	case models.ScenarioReplayTransaction:
		return s.simulatePurchase(scenario.Amount), nil
	default:
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownScenario, scenario.Type)
	}
}

func (s *LegacySimulator) simulatePurchase(amount float64) *models.Projection {
	newBalance := s.currentBalance + amount
	newUtilization := newBalance / s.creditLimit * 100
	utilizationChange := newUtilization - s.currentUtilization

	var scoreDelta int
	var explanation, correctiveAction string
	var recovery *models.RecoveryTimeline

	isLargePurchase := amount > s.creditLimit*0.2

	switch {
	case isLargePurchase && newUtilization > 30:
		scoreDelta = -25
		explanation = fmt.Sprintf("Large purchase of $%.2f increases utilization from %.1f%% to %.1f%%. This is above the recommended 30%% threshold.",
			amount, s.currentUtilization, newUtilization)
		correctiveAction = fmt.Sprintf("Pay down $%.2f to bring utilization back below 30%%.", newBalance-s.creditLimit*0.3)
		recovery = &models.RecoveryTimeline{
			Days30:  capScore(s.baseScore + scoreDelta + 5),
			Days90:  capScore(s.baseScore + scoreDelta + 15),
			Days180: capScore(s.baseScore),
		}
	case newUtilization > 50:
		scoreDelta = -35
		explanation = fmt.Sprintf("This purchase pushes utilization to %.1f%%, which is very high. High utilization significantly impacts credit scores.", newUtilization)
		correctiveAction = fmt.Sprintf("Pay down at least $%.2f to improve your score.", newBalance-s.creditLimit*0.3)
		recovery = &models.RecoveryTimeline{
			Days30:  capScore(s.baseScore + scoreDelta + 8),
			Days90:  capScore(s.baseScore + scoreDelta + 20),
			Days180: capScore(s.baseScore + scoreDelta + 28),
		}
	case newUtilization > 30:
		scoreDelta = int(math.Floor(-utilizationChange * 0.8))
		explanation = fmt.Sprintf("Utilization increases from %.1f%% to %.1f%%. Keep it below 30%% for optimal credit health.",
			s.currentUtilization, newUtilization)
		correctiveAction = "Consider paying down your balance before making large purchases."
	case utilizationChange < 10:
		scoreDelta = int(math.Floor(-utilizationChange * 0.3))
		explanation = fmt.Sprintf("Small increase in utilization from %.1f%% to %.1f%%. Still within healthy range.",
			s.currentUtilization, newUtilization)
		correctiveAction = "Continue making on-time payments and keep utilization low."
	default:
		scoreDelta = int(math.Floor(-utilizationChange * 0.5))
		explanation = fmt.Sprintf("Utilization increases from %.1f%% to %.1f%%. Still manageable.",
			s.currentUtilization, newUtilization)
		correctiveAction = "Pay down balance to maintain low utilization."
	}

	return &models.Projection{
		CurrentScore:     s.baseScore,
		ProjectedScore:   s.baseScore + scoreDelta,
		ScoreDelta:       scoreDelta,
		FactorAffected:   "Credit Utilization",
		Explanation:      explanation,
		CorrectiveAction: correctiveAction,
		RecoveryTimeline: recovery,
	}
}

func (s *LegacySimulator) simulateMissedPayment() *models.Projection {
	const scoreDelta = -110

	return &models.Projection{
		CurrentScore:     s.baseScore,
		ProjectedScore:   s.baseScore + scoreDelta,
		ScoreDelta:       scoreDelta,
		FactorAffected:   "Payment History",
		Explanation:      "Missing a payment severely impacts your credit score. Payment history is the most important factor.",
		CorrectiveAction: "Make payment immediately to minimize damage. Set up autopay to prevent future missed payments.",
		RecoveryTimeline: &models.RecoveryTimeline{
			Days30:  capScore(s.baseScore + scoreDelta + 15),
			Days90:  capScore(s.baseScore + scoreDelta + 40),
			Days180: capScore(s.baseScore + scoreDelta + 70),
		},
	}
}

func (s *LegacySimulator) simulatePayDown(paymentAmount float64) *models.Projection {
	newBalance := math.Max(0, s.currentBalance-paymentAmount)
	newUtilization := newBalance / s.creditLimit * 100
	utilizationChange := s.currentUtilization - newUtilization

	var scoreDelta int
	var explanation string

	isSignificant := paymentAmount > s.currentBalance*0.15

	switch {
	case isSignificant && s.currentUtilization > 30 && newUtilization < 30:
		scoreDelta = int(math.Floor(utilizationChange * 1.2))
		explanation = fmt.Sprintf("Paying down $%.2f brings utilization from %.1f%% to %.1f%%, below the 30%% threshold. Excellent move!",
			paymentAmount, s.currentUtilization, newUtilization)
	case isSignificant:
		scoreDelta = int(math.Floor(utilizationChange * 1.0))
		explanation = fmt.Sprintf("Significant payment of $%.2f reduces utilization from %.1f%% to %.1f%%. This will help your score.",
			paymentAmount, s.currentUtilization, newUtilization)
	default:
		scoreDelta = int(math.Floor(utilizationChange * 0.6))
		explanation = fmt.Sprintf("Paying down $%.2f reduces utilization from %.1f%% to %.1f%%.",
			paymentAmount, s.currentUtilization, newUtilization)
	}

	return &models.Projection{
		CurrentScore:     s.baseScore,
		ProjectedScore:   s.baseScore + scoreDelta,
		ScoreDelta:       scoreDelta,
		FactorAffected:   "Credit Utilization",
		Explanation:      explanation,
		CorrectiveAction: "Keep making payments on time and maintain low utilization.",
	}
}
