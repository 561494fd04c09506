package sim

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creditkeeper/creditkeeper/internal/models"
	"github.com/creditkeeper/creditkeeper/internal/synthetic"
)

func fixedNow() time.Time {
	return time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
}

// simProfile builds a profile with on-time statement history at the given
// balances and a checking account earning $4000/month.
func simProfile(balance, limit float64, statementBalance float64, numCycles int) *models.Profile {
	now := fixedNow()

	cycles := make([]models.BillingCycle, 0, numCycles)
	for i := 0; i < numCycles; i++ {
		start := now.AddDate(0, -(numCycles - i), 0)
		end := start.AddDate(0, 1, 0)
		cycles = append(cycles, models.BillingCycle{
			ID:               fmt.Sprintf("cycle-%d", i),
			StatementStart:   start,
			StatementEnd:     end,
			DueDate:          end.AddDate(0, 0, -9),
			StatementBalance: statementBalance,
			MinimumDue:       float64(int(statementBalance * 0.03)),
			PaidAmount:       statementBalance,
			PaidOnTime:       true,
			IsPaid:           true,
		})
	}

	return &models.Profile{
		ID:   "profile-sim",
		Name: "Sim Profile",
		Type: "healthy",
		CreditCard: models.CreditCardAccount{
			ID:          "account-sim",
			Type:        "Credit Card",
			Balance:     balance,
			CreditLimit: limit,
			APR:         18.99,
			OpenDate:    now.AddDate(0, -18, 0),
			Status:      "active",
		},
		Checking: &models.CheckingAccount{
			ID:      "checking-sim",
			Balance: 4000,
			Deposits: []models.Deposit{
				{ID: "d1", Amount: 2000, Date: now.AddDate(0, 0, -7), Type: models.DepositPaycheck},
				{ID: "d2", Amount: 2000, Date: now.AddDate(0, 0, -21), Type: models.DepositPaycheck},
			},
		},
		Transactions:  []models.Transaction{{ID: "txn-1", Amount: 50, Date: now.AddDate(0, 0, -3)}},
		BillingCycles: cycles,
		CreatedAt:     now,
	}
}

func TestSimulateDoesNotMutateProfile(t *testing.T) {
	profile := simProfile(1200, 5000, 1200, 12)
	snapshot := profile.Clone()

	p := NewProjectorAt(profile, fixedNow())
	scenarios := []models.Scenario{
		{Type: models.ScenarioPurchase, Amount: 2000},
		{Type: models.ScenarioMissedPayment},
		{Type: models.ScenarioPayDown, PaymentAmount: 500},
		{Type: models.ScenarioNewLoan, Loan: &models.LoanScenario{LoanType: models.LoanLineOfCredit, Amount: 5000, TermMonths: 24, APR: 20}},
	}

	for _, scenario := range scenarios {
		_, err := p.Simulate(scenario)
		require.NoError(t, err, "scenario %s", scenario.Type)
		assert.Equal(t, snapshot, profile, "scenario %s mutated the profile", scenario.Type)
	}
}

func TestSimulateMissedPayment(t *testing.T) {
	profile := simProfile(1200, 5000, 1200, 12)
	result, err := NewProjectorAt(profile, fixedNow()).Simulate(models.Scenario{Type: models.ScenarioMissedPayment})
	require.NoError(t, err)

	assert.Negative(t, result.ScoreDelta)
	assert.Equal(t, "Payment History", result.FactorAffected)
	assert.Contains(t, result.Explanation, "Missing a payment")
	assert.Contains(t, result.CorrectiveAction, "autopay")

	require.NotNil(t, result.RecoveryTimeline)
	assert.Greater(t, result.RecoveryTimeline.Days30, result.ProjectedScore)
	assert.GreaterOrEqual(t, result.RecoveryTimeline.Days90, result.RecoveryTimeline.Days30)
	assert.GreaterOrEqual(t, result.RecoveryTimeline.Days180, result.RecoveryTimeline.Days90)
	assert.LessOrEqual(t, result.RecoveryTimeline.Days180, 850)
}

func TestSimulateLargePurchase(t *testing.T) {
	profile := simProfile(1200, 5000, 1200, 12)
	result, err := NewProjectorAt(profile, fixedNow()).Simulate(models.Scenario{Type: models.ScenarioPurchase, Amount: 2500})
	require.NoError(t, err)

	// 24% -> 74% live utilization.
	assert.Negative(t, result.ScoreDelta)
	assert.Contains(t, result.Explanation, "increases utilization from 24.0% to 74.0%")
	assert.Contains(t, result.CorrectiveAction, "below 30%")
	require.NotNil(t, result.FactorBreakdown)
	assert.Less(t, result.FactorBreakdown.Projected.Factors.Utilization.Score,
		result.FactorBreakdown.Current.Factors.Utilization.Score)

	// A drop past 20 points comes with a recovery path: partial at 30 and 90
	// days, back to the pre-purchase score at 180.
	assert.Less(t, result.ScoreDelta, -20)
	require.NotNil(t, result.RecoveryTimeline)
	assert.Greater(t, result.RecoveryTimeline.Days30, result.ProjectedScore)
	assert.Greater(t, result.RecoveryTimeline.Days90, result.RecoveryTimeline.Days30)
	assert.Equal(t, result.CurrentScore, result.RecoveryTimeline.Days180)
}

func TestSimulateMissedPaymentOnPendingStatement(t *testing.T) {
	// The latest cycle has not come due yet. The miss must still register:
	// an unpaid cycle with a future due date is invisible to the engine.
	profile := simProfile(1200, 5000, 1200, 12)
	last := profile.LastBillingCycle()
	last.DueDate = fixedNow().AddDate(0, 0, 21)
	last.IsPaid = false
	last.PaidOnTime = false
	last.PaidAmount = 0

	result, err := NewProjectorAt(profile, fixedNow()).Simulate(models.Scenario{Type: models.ScenarioMissedPayment})
	require.NoError(t, err)

	assert.Negative(t, result.ScoreDelta)
	assert.Equal(t, "Payment History", result.FactorAffected)
}

func TestSimulateMissedPaymentOnGeneratedProfiles(t *testing.T) {
	// Every generated archetype leaves its latest cycle pending, so the miss
	// must land there for the delta to show up.
	for _, profileType := range []string{synthetic.TypeExcellent, synthetic.TypeHealthy, synthetic.TypeRisky, synthetic.TypePoor} {
		t.Run(profileType, func(t *testing.T) {
			profile, ok := synthetic.Generate(profileType)
			require.True(t, ok)

			result, err := NewProjector(profile).Simulate(models.Scenario{Type: models.ScenarioMissedPayment})
			require.NoError(t, err)
			assert.Negative(t, result.ScoreDelta)
			assert.Equal(t, "Payment History", result.FactorAffected)
		})
	}
}

func TestSimulateReplayTransaction(t *testing.T) {
	profile := simProfile(1200, 5000, 1200, 12)
	result, err := NewProjectorAt(profile, fixedNow()).Simulate(models.Scenario{Type: models.ScenarioReplayTransaction, Amount: 100})
	require.NoError(t, err)

	assert.Contains(t, result.Explanation, "Replaying a $100.00")
}

func TestSimulatePayDown(t *testing.T) {
	profile := simProfile(1950, 3000, 1950, 8)
	result, err := NewProjectorAt(profile, fixedNow()).Simulate(models.Scenario{Type: models.ScenarioPayDown, PaymentAmount: 1000})
	require.NoError(t, err)

	assert.Positive(t, result.ScoreDelta)
	assert.Contains(t, result.Explanation, "reduces utilization from 65.0% to 31.7%")
}

func TestSimulateNewLoanLineOfCredit(t *testing.T) {
	profile := simProfile(1200, 5000, 1200, 12)
	loanTerms := &models.LoanScenario{LoanType: models.LoanLineOfCredit, Amount: 5000, TermMonths: 24, APR: 20}

	result, err := NewProjectorAt(profile, fixedNow()).Simulate(models.Scenario{Type: models.ScenarioNewLoan, Loan: loanTerms})
	require.NoError(t, err)

	require.NotNil(t, result.LoanRating)
	assert.NotEmpty(t, result.LoanRating.Rating)
	assert.Len(t, result.LoanRating.Reasons, 3)
	assert.False(t, result.LoanRating.IncomeAssumed, "profile income should be derived from deposits")
	assert.Contains(t, result.Explanation, "line of credit loan of $5000.00")

	// Drawing the line onto the balance moves utilization in the projection.
	projectedUtil := result.FactorBreakdown.Projected.Factors.Utilization
	require.NotNil(t, projectedUtil.Value)
	assert.Greater(t, *projectedUtil.Value, 24.0)
}

func TestSimulateNewLoanAssumesIncomeWithoutDeposits(t *testing.T) {
	profile := simProfile(1200, 5000, 1200, 12)
	profile.Checking = nil
	loanTerms := &models.LoanScenario{LoanType: models.LoanPersonal, Amount: 10000, TermMonths: 36, APR: 15}

	result, err := NewProjectorAt(profile, fixedNow()).Simulate(models.Scenario{Type: models.ScenarioNewLoan, Loan: loanTerms})
	require.NoError(t, err)

	require.NotNil(t, result.LoanRating)
	assert.True(t, result.LoanRating.IncomeAssumed)
}

func TestSimulateInstallmentLoanLeavesBalanceAlone(t *testing.T) {
	profile := simProfile(1200, 5000, 1200, 12)
	loanTerms := &models.LoanScenario{LoanType: models.LoanAuto, Amount: 15000, TermMonths: 60, APR: 7}

	result, err := NewProjectorAt(profile, fixedNow()).Simulate(models.Scenario{Type: models.ScenarioNewLoan, Loan: loanTerms})
	require.NoError(t, err)

	projectedUtil := result.FactorBreakdown.Projected.Factors.Utilization
	require.NotNil(t, projectedUtil.Value)
	assert.InDelta(t, 24.0, *projectedUtil.Value, 0.01)
}

func TestSimulateRejectsInvalidScenarios(t *testing.T) {
	profile := simProfile(1200, 5000, 1200, 12)
	p := NewProjectorAt(profile, fixedNow())

	tests := []struct {
		name     string
		scenario models.Scenario
	}{
		{"unknown type", models.Scenario{Type: "windfall"}},
		{"negative purchase", models.Scenario{Type: models.ScenarioPurchase, Amount: -50}},
		{"loan without terms", models.Scenario{Type: models.ScenarioNewLoan}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := p.Simulate(tt.scenario)
			assert.Error(t, err)
			assert.Nil(t, result)
		})
	}
}

func TestSimulateIndependentCalls(t *testing.T) {
	profile := simProfile(1200, 5000, 1200, 12)
	p := NewProjectorAt(profile, fixedNow())

	first, err := p.Simulate(models.Scenario{Type: models.ScenarioPurchase, Amount: 1000})
	require.NoError(t, err)
	second, err := p.Simulate(models.Scenario{Type: models.ScenarioPurchase, Amount: 1000})
	require.NoError(t, err)

	// No state carries across calls.
	assert.Equal(t, first.CurrentScore, second.CurrentScore)
	assert.Equal(t, first.ProjectedScore, second.ProjectedScore)
}
