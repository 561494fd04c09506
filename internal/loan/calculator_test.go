package loan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creditkeeper/creditkeeper/internal/models"
)

func TestMonthlyPayment(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		apr       float64
		term      int
		want      float64
	}{
		{"standard auto loan", 12000, 6.0, 60, 231.99},
		{"zero APR splits evenly", 12000, 0, 60, 200.00},
		{"short personal loan", 5000, 10.0, 24, 230.72},
		{"single month", 1000, 12.0, 1, 1010.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MonthlyPayment(tt.principal, tt.apr, tt.term)
			assert.InDelta(t, tt.want, got, 0.01)
		})
	}
}

func TestRateReasonableLoan(t *testing.T) {
	l := models.LoanScenario{LoanType: models.LoanAuto, Amount: 12000, TermMonths: 60, APR: 6.0}
	rating := Rate(l, 0, 5000)

	assert.Equal(t, models.RatingReasonable, rating.Rating)
	assert.InDelta(t, 231.99, rating.MonthlyPayment, 0.01)
	assert.Equal(t, models.DTIHealthy, rating.DTIImpact)
	assert.Equal(t, models.APRHealthy, rating.APRAssessment)
	assert.Equal(t, models.LTINormal, rating.LTIAssessment)
	assert.Len(t, rating.Reasons, 3)
	assert.Equal(t, []string{
		"This loan fits well within your budget",
		"Continue making on-time payments to maintain good credit",
	}, rating.Suggestions)
}

func TestRateUnreasonableAPR(t *testing.T) {
	l := models.LoanScenario{LoanType: models.LoanPersonal, Amount: 40000, TermMonths: 60, APR: 29.0}
	rating := Rate(l, 0, 5000)

	assert.Equal(t, models.RatingUnreasonable, rating.Rating)
	assert.Equal(t, models.APRHighRisk, rating.APRAssessment)
	assert.Len(t, rating.Reasons, 3)
	assert.Contains(t, rating.Suggestions, "Warning: this loan may cause financial hardship - reconsider or delay")
}

func TestRateStretchLoan(t *testing.T) {
	// Payment ~$483 on $4000/mo income with $1000 existing debt: DTI ~37%.
	l := models.LoanScenario{LoanType: models.LoanAuto, Amount: 25000, TermMonths: 60, APR: 6.0}
	rating := Rate(l, 1000, 4000)

	assert.Equal(t, models.RatingStretch, rating.Rating)
	assert.Equal(t, models.DTIModerate, rating.DTIImpact)
	assert.NotEmpty(t, rating.Suggestions)
}

func TestRateDimensionTiers(t *testing.T) {
	tests := []struct {
		name    string
		loan    models.LoanScenario
		debt    float64
		income  float64
		dti     string
		apr     string
		lti     string
		verdict string
	}{
		{
			name:    "all healthy",
			loan:    models.LoanScenario{LoanType: models.LoanAuto, Amount: 10000, TermMonths: 48, APR: 5.0},
			income:  5000,
			dti:     models.DTIHealthy,
			apr:     models.APRHealthy,
			lti:     models.LTINormal,
			verdict: models.RatingReasonable,
		},
		{
			name:    "expensive APR alone makes a stretch",
			loan:    models.LoanScenario{LoanType: models.LoanPersonal, Amount: 5000, TermMonths: 36, APR: 18.0},
			income:  5000,
			dti:     models.DTIHealthy,
			apr:     models.APRExpensive,
			lti:     models.LTINormal,
			verdict: models.RatingStretch,
		},
		{
			name:    "loan larger than annual income",
			loan:    models.LoanScenario{LoanType: models.LoanStudent, Amount: 70000, TermMonths: 120, APR: 5.0},
			income:  5000,
			dti:     models.DTIHealthy,
			apr:     models.APRHealthy,
			lti:     models.LTIHighRisk,
			verdict: models.RatingUnreasonable,
		},
		{
			name:    "existing debt pushes DTI high",
			loan:    models.LoanScenario{LoanType: models.LoanAuto, Amount: 20000, TermMonths: 48, APR: 8.0},
			debt:    2000,
			income:  5000,
			dti:     models.DTIHigh,
			apr:     models.APRHealthy,
			lti:     models.LTINormal,
			verdict: models.RatingUnreasonable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rating := Rate(tt.loan, tt.debt, tt.income)
			assert.Equal(t, tt.dti, rating.DTIImpact)
			assert.Equal(t, tt.apr, rating.APRAssessment)
			assert.Equal(t, tt.lti, rating.LTIAssessment)
			assert.Equal(t, tt.verdict, rating.Rating)
			assert.Len(t, rating.Reasons, 3)
		})
	}
}

func TestVerdictMonotonicInAmount(t *testing.T) {
	rank := map[string]int{
		models.RatingReasonable:   0,
		models.RatingStretch:      1,
		models.RatingUnreasonable: 2,
	}

	prev := 0
	for _, amount := range []float64{5000, 15000, 30000, 60000, 120000} {
		l := models.LoanScenario{LoanType: models.LoanPersonal, Amount: amount, TermMonths: 36, APR: 10.0}
		rating := Rate(l, 0, 5000)

		r, ok := rank[rating.Rating]
		require.True(t, ok, "unexpected rating %q", rating.Rating)
		assert.GreaterOrEqual(t, r, prev, "amount %.0f should not improve the verdict", amount)
		prev = r
	}
}

func TestRatePercentagesRounded(t *testing.T) {
	l := models.LoanScenario{LoanType: models.LoanAuto, Amount: 12000, TermMonths: 60, APR: 6.0}
	rating := Rate(l, 0, 5000)

	// 231.99 / 5000 = 4.63992% -> 4.6; 12000 / 60000 = 20.0%.
	assert.Equal(t, 4.6, rating.NewDTI)
	assert.Equal(t, 20.0, rating.LoanToIncomeRatio)
}
