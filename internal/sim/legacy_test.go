package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creditkeeper/creditkeeper/internal/models"
	"github.com/creditkeeper/creditkeeper/internal/score"
)

func legacySim(balance, limit float64) *LegacySimulator {
	account := models.Account{ID: "acct", Balance: balance, CreditLimit: limit}
	creditData := score.LegacyCreditData(account, fixedNow())
	return NewLegacySimulator(creditData, account)
}

func TestLegacyMissedPayment(t *testing.T) {
	s := legacySim(1200, 5000)
	result, err := s.Simulate(models.Scenario{Type: models.ScenarioMissedPayment})
	require.NoError(t, err)

	assert.Equal(t, 720, result.CurrentScore)
	assert.Equal(t, -110, result.ScoreDelta)
	assert.Equal(t, 610, result.ProjectedScore)
	assert.Equal(t, "Payment History", result.FactorAffected)

	require.NotNil(t, result.RecoveryTimeline)
	assert.Equal(t, 625, result.RecoveryTimeline.Days30)
	assert.Equal(t, 650, result.RecoveryTimeline.Days90)
	assert.Equal(t, 680, result.RecoveryTimeline.Days180)
}

func TestLegacyLargePurchase(t *testing.T) {
	// $1500 is over 20% of the limit and pushes utilization past 30%.
	s := legacySim(1200, 5000)
	result, err := s.Simulate(models.Scenario{Type: models.ScenarioPurchase, Amount: 1500})
	require.NoError(t, err)

	assert.Equal(t, -25, result.ScoreDelta)
	assert.Contains(t, result.Explanation, "Large purchase")
	require.NotNil(t, result.RecoveryTimeline)
	// Full recovery to the base score at 180 days.
	assert.Equal(t, 720, result.RecoveryTimeline.Days180)
}

func TestLegacyPurchaseIntoVeryHighUtilization(t *testing.T) {
	// Small purchase, but it lands above 50% utilization.
	s := legacySim(2400, 5000)
	result, err := s.Simulate(models.Scenario{Type: models.ScenarioPurchase, Amount: 300})
	require.NoError(t, err)

	assert.Equal(t, -35, result.ScoreDelta)
	assert.Contains(t, result.Explanation, "very high")
}

func TestLegacySmallPurchase(t *testing.T) {
	s := legacySim(1000, 5000)
	result, err := s.Simulate(models.Scenario{Type: models.ScenarioPurchase, Amount: 100})
	require.NoError(t, err)

	// 2% utilization bump at 0.3 weight, floored.
	assert.Equal(t, -1, result.ScoreDelta)
	assert.Contains(t, result.Explanation, "healthy range")
}

func TestLegacyPayDownCrossingThreshold(t *testing.T) {
	// 40% -> 20% with a significant payment: 1.2x multiplier on the change.
	s := legacySim(2000, 5000)
	result, err := s.Simulate(models.Scenario{Type: models.ScenarioPayDown, PaymentAmount: 1000})
	require.NoError(t, err)

	assert.Equal(t, 680, result.CurrentScore)
	assert.Equal(t, 24, result.ScoreDelta)
	assert.Contains(t, result.Explanation, "Excellent move!")
}

func TestLegacyPayDownSmall(t *testing.T) {
	s := legacySim(2000, 5000)
	result, err := s.Simulate(models.Scenario{Type: models.ScenarioPayDown, PaymentAmount: 200})
	require.NoError(t, err)

	// 4-point utilization drop at 0.6 weight.
	assert.Equal(t, 2, result.ScoreDelta)
}

func TestLegacyZeroLimitFallsBackToDefault(t *testing.T) {
	s := legacySim(1000, 0)
	result, err := s.Simulate(models.Scenario{Type: models.ScenarioPurchase, Amount: 100})
	require.NoError(t, err)

	// The $5000 default limit keeps the math finite.
	assert.NotNil(t, result)
	assert.GreaterOrEqual(t, result.ScoreDelta, -35)
}

func TestLegacyRejectsLoanScenarios(t *testing.T) {
	s := legacySim(1200, 5000)
	result, err := s.Simulate(models.Scenario{
		Type: models.ScenarioNewLoan,
		Loan: &models.LoanScenario{LoanType: models.LoanAuto, Amount: 10000, TermMonths: 48, APR: 6},
	})

	assert.ErrorIs(t, err, models.ErrUnknownScenario)
	assert.Nil(t, result)
}
