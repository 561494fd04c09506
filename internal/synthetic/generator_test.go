package synthetic

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creditkeeper/creditkeeper/internal/models"
	"github.com/creditkeeper/creditkeeper/internal/score"
)

func TestGenerateUnknownType(t *testing.T) {
	profile, ok := Generate("immaculate")
	assert.False(t, ok)
	assert.Nil(t, profile)
}

func TestGenerateArchetypes(t *testing.T) {
	tests := []struct {
		profileType string
		numCycles   int
		balance     float64
		limit       float64
	}{
		{TypeExcellent, 12, 300, 15000},
		{TypeHealthy, 12, 1350, 5000},
		{TypeRisky, 8, 1950, 3000},
		{TypePoor, 5, 1485, 1500},
	}

	for _, tt := range tests {
		t.Run(tt.profileType, func(t *testing.T) {
			profile, ok := Generate(tt.profileType)
			require.True(t, ok)
			require.NotNil(t, profile)

			assert.NotEmpty(t, profile.ID)
			assert.NotEmpty(t, profile.Name)
			assert.Equal(t, tt.balance, profile.CreditCard.Balance)
			assert.Equal(t, tt.limit, profile.CreditCard.CreditLimit)
			assert.Len(t, profile.BillingCycles, tt.numCycles)
			assert.NotEmpty(t, profile.Transactions)

			require.NotNil(t, profile.Checking)
			assert.NotEmpty(t, profile.Checking.Deposits)
			for _, d := range profile.Checking.Deposits {
				assert.Equal(t, models.DepositPaycheck, d.Type)
				assert.Equal(t, 2000.0, d.Amount)
			}
		})
	}
}

func TestGenerateCycleInvariants(t *testing.T) {
	for _, profileType := range []string{TypeExcellent, TypeHealthy, TypeRisky, TypePoor} {
		t.Run(profileType, func(t *testing.T) {
			profile, ok := Generate(profileType)
			require.True(t, ok)

			var prev time.Time
			for i, cycle := range profile.BillingCycles {
				if i > 0 {
					assert.False(t, cycle.StatementStart.Before(prev), "cycles out of order at %d", i)
				}
				prev = cycle.StatementStart

				assert.True(t, cycle.StatementEnd.After(cycle.StatementStart))
				assert.True(t, cycle.DueDate.After(cycle.StatementEnd))
				assert.Equal(t, float64(int(cycle.StatementBalance*0.03)), cycle.MinimumDue)
				if !cycle.IsPaid {
					assert.Zero(t, cycle.PaidAmount)
				}
			}
		})
	}
}

func TestGenerateLastCycleMatchesBalance(t *testing.T) {
	profile, ok := Generate(TypeHealthy)
	require.True(t, ok)

	last := profile.LastBillingCycle()
	require.NotNil(t, last)
	assert.Equal(t, profile.CreditCard.Balance, last.StatementBalance)
}

func TestGeneratedProfilesOrderByQuality(t *testing.T) {
	scoreFor := func(profileType string) int {
		profile, ok := Generate(profileType)
		require.True(t, ok)
		return score.NewEngine(profile).ComputeScore().FinalScore
	}

	excellent := scoreFor(TypeExcellent)
	healthy := scoreFor(TypeHealthy)
	risky := scoreFor(TypeRisky)
	poor := scoreFor(TypePoor)

	assert.GreaterOrEqual(t, excellent, healthy)
	assert.Greater(t, healthy, risky)
	assert.Greater(t, risky, poor)
	assert.GreaterOrEqual(t, poor, 300)
	assert.LessOrEqual(t, excellent, 850)
}
