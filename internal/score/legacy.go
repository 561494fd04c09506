package score

import (
	"fmt"
	"time"

	"github.com/creditkeeper/creditkeeper/internal/models"
)

// Legacy flat model. Predates the weighted engine and intentionally produces
// different numbers for the same input: the base score comes straight from
// the utilization tier and every other factor is a flat assumption. Kept as
// its own strategy for consumers of the external-account flow; its
// thresholds must not be merged with the weighted engine's.

const (
	legacyBaseHigh   = 720
	legacyBaseMedium = 680
	legacyBaseLow    = 620
)

// LegacyCreditData derives flat credit data from an external account snapshot
func LegacyCreditData(account models.Account, now time.Time) models.CreditData {
	var utilization float64
	if account.CreditLimit > 0 {
		utilization = account.Balance / account.CreditLimit * 100
	}

	var healthLevel string
	var baseScore int
	switch {
	case utilization < 30:
		healthLevel = models.HealthHigh
		baseScore = legacyBaseHigh
	case utilization < 50:
		healthLevel = models.HealthMedium
		baseScore = legacyBaseMedium
	default:
		healthLevel = models.HealthLow
		baseScore = legacyBaseLow
	}

	var utilStatus, utilExplanation string
	switch {
	case utilization < 30:
		utilStatus = models.StatusGood
		utilExplanation = "Your credit utilization is healthy. Keep it below 30%."
	case utilization < 50:
		utilStatus = models.StatusWarning
		utilExplanation = "Your utilization is moderate. Try to keep it below 30%."
	default:
		utilStatus = models.StatusBad
		utilExplanation = "High utilization can hurt your score. Pay down your balance."
	}

	return models.CreditData{
		Score:       baseScore,
		HealthLevel: healthLevel,
		Factors: models.CreditFactors{
			Utilization: models.CreditFactor{
				Name:        "Credit Utilization",
				Value:       utilization,
				Status:      utilStatus,
				Explanation: utilExplanation,
			},
			PaymentHistory: models.CreditFactor{
				Name:        "Payment History",
				Value:       100,
				Status:      models.StatusGood,
				Explanation: "All payments made on time. Keep up the great work!",
			},
			CreditLimit: models.CreditFactor{
				Name:        "Credit Limit",
				Value:       account.CreditLimit,
				Status:      models.StatusGood,
				Explanation: fmt.Sprintf("Your credit limit is $%.0f.", account.CreditLimit),
			},
			AccountAge: models.CreditFactor{
				Name:        "Account Age",
				Value:       24,
				Status:      models.StatusGood,
				Explanation: "Your account has been open for 2 years.",
			},
		},
		LastUpdated: now,
	}
}
