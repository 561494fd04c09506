package service

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creditkeeper/creditkeeper/internal/config"
	"github.com/creditkeeper/creditkeeper/internal/models"
	"github.com/creditkeeper/creditkeeper/internal/repository"
)

func testService(t *testing.T) *Service {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	cfg := &config.Config{JWTSecret: "test-secret"}
	return NewService(
		repository.NewMemoryUserStore(),
		repository.NewMemoryProfileStore(),
		repository.NewMemoryUserProfileStore(),
		nil, nil, nil,
		log,
		cfg,
	)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := testService(t)

	user, err := svc.Register("alex", "alex@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.NotEqual(t, "hunter2", user.PasswordHash)

	token, err := svc.Login("alex@example.com", "hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, err = svc.Login("alex@example.com", "wrong")
	assert.Error(t, err)

	_, err = svc.Login("nobody@example.com", "hunter2")
	assert.Error(t, err)
}

func TestMissions(t *testing.T) {
	svc := testService(t)

	missions := svc.ListMissions()
	require.Len(t, missions, 7)
	for _, m := range missions {
		assert.False(t, m.Completed)
		assert.NotEmpty(t, m.CorrectAnswer)
		assert.Contains(t, m.Choices, m.CorrectAnswer)
	}

	completed, err := svc.CompleteMission("mission-2")
	require.NoError(t, err)
	assert.True(t, completed.Completed)

	// The change shows up in subsequent listings.
	for _, m := range svc.ListMissions() {
		if m.ID == "mission-2" {
			assert.True(t, m.Completed)
		}
	}

	_, err = svc.CompleteMission("mission-99")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGenerateAndScoreSyntheticProfile(t *testing.T) {
	svc := testService(t)

	profile, err := svc.GenerateSyntheticProfile("healthy")
	require.NoError(t, err)
	require.NotNil(t, profile)

	stored, err := svc.GetSyntheticProfile(profile.ID)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, stored.ID)

	result, err := svc.ComputeToyScore(profile.ID)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, result.FinalScore, 300)
	assert.LessOrEqual(t, result.FinalScore, 850)
	assert.True(t, result.IsToyScore)

	_, err = svc.GenerateSyntheticProfile("immaculate")
	assert.Error(t, err)
}

func TestToyScoreCreditDataMapping(t *testing.T) {
	svc := testService(t)

	profile, err := svc.GenerateSyntheticProfile("healthy")
	require.NoError(t, err)

	toy, err := svc.ComputeToyScore(profile.ID)
	require.NoError(t, err)

	data, err := svc.GetToyScoreCreditData(profile.ID)
	require.NoError(t, err)

	assert.Equal(t, toy.FinalScore, data.Score)
	assert.Equal(t, toy.HealthLevel, data.HealthLevel)
	// The legacy credit-limit slot carries the DTI proxy.
	assert.Equal(t, "Debt-to-Income Proxy", data.Factors.CreditLimit.Name)
	assert.Equal(t, "Account Age", data.Factors.AccountAge.Name)
	require.NotNil(t, toy.Factors.Utilization.Value)
	assert.Equal(t, *toy.Factors.Utilization.Value, data.Factors.Utilization.Value)
}

func TestSimulateToy(t *testing.T) {
	svc := testService(t)

	profile, err := svc.GenerateSyntheticProfile("risky")
	require.NoError(t, err)

	result, err := svc.SimulateToy(profile.ID, models.Scenario{Type: models.ScenarioMissedPayment})
	require.NoError(t, err)
	assert.Negative(t, result.ScoreDelta)

	_, err = svc.SimulateToy("missing", models.Scenario{Type: models.ScenarioMissedPayment})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRateLoan(t *testing.T) {
	svc := testService(t)

	t.Run("assumed income without profile or stated income", func(t *testing.T) {
		l := models.LoanScenario{LoanType: models.LoanAuto, Amount: 12000, TermMonths: 60, APR: 6}
		rating, err := svc.RateLoan(l, "")
		require.NoError(t, err)
		assert.True(t, rating.IncomeAssumed)
		assert.Equal(t, models.RatingReasonable, rating.Rating)
	})

	t.Run("stated income wins", func(t *testing.T) {
		l := models.LoanScenario{LoanType: models.LoanAuto, Amount: 12000, TermMonths: 60, APR: 6, MonthlyIncome: 8000}
		rating, err := svc.RateLoan(l, "")
		require.NoError(t, err)
		assert.False(t, rating.IncomeAssumed)
	})

	t.Run("profile supplies debt and income", func(t *testing.T) {
		profile, err := svc.GenerateSyntheticProfile("healthy")
		require.NoError(t, err)

		l := models.LoanScenario{LoanType: models.LoanAuto, Amount: 12000, TermMonths: 60, APR: 6}
		rating, err := svc.RateLoan(l, profile.ID)
		require.NoError(t, err)
		assert.False(t, rating.IncomeAssumed)

		_, err = svc.RateLoan(l, "missing")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("invalid terms rejected", func(t *testing.T) {
		l := models.LoanScenario{LoanType: "mortgage", Amount: 12000, TermMonths: 60, APR: 6}
		_, err := svc.RateLoan(l, "")
		assert.Error(t, err)
	})
}

func TestUserProfileRoundTrip(t *testing.T) {
	svc := testService(t)

	profile := &models.UserProfile{CustomerID: "cust-1", PandaName: "Bamboo", FinancialXP: 100}
	require.NoError(t, svc.SaveUserProfile(profile))

	got, err := svc.GetUserProfile("cust-1")
	require.NoError(t, err)
	assert.Equal(t, "Bamboo", got.PandaName)

	_, err = svc.GetUserProfile("cust-2")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
