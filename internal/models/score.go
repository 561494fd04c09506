package models

import "time"

// Factor status levels.
const (
	StatusGood    = "good"
	StatusWarning = "warning"
	StatusBad     = "bad"
)

// Health levels derived from the numeric score.
const (
	HealthHigh   = "high"
	HealthMedium = "medium"
	HealthLow    = "low"
)

// FactorScore is one weighted sub-score with its diagnostics
type FactorScore struct {
	Name        string   `json:"name"`
	Score       float64  `json:"score"`
	Value       *float64 `json:"value,omitempty"`
	Weight      float64  `json:"weight"`
	Status      string   `json:"status"`
	Explanation string   `json:"explanation"`
	Details     string   `json:"details,omitempty"`
}

// Factors groups the four sub-scores of the weighted model
type Factors struct {
	PaymentHistory FactorScore `json:"paymentHistory"`
	Utilization    FactorScore `json:"utilization"`
	DebtToIncome   FactorScore `json:"debtToIncome"`
	HistoryLength  FactorScore `json:"historyLength"`
}

// TopDrivers names the up-to-two strongest positive and negative factors
type TopDrivers struct {
	Positive []string `json:"positive"`
	Negative []string `json:"negative"`
}

// ScoreResult is the weighted model's full output
type ScoreResult struct {
	FinalScore  int        `json:"finalScore"`
	HealthLevel string     `json:"healthLevel"`
	Factors     Factors    `json:"factors"`
	TopDrivers  TopDrivers `json:"topDrivers"`
	IsToyScore  bool       `json:"isToyScore"`
	LastUpdated time.Time  `json:"lastUpdated"`
}

// CreditFactor is the legacy flat model's factor diagnostic
type CreditFactor struct {
	Name        string  `json:"name"`
	Value       float64 `json:"value"`
	Status      string  `json:"status"`
	Explanation string  `json:"explanation"`
}

// CreditFactors is the legacy factor set. CreditLimit and AccountAge are
// flat assumptions in the legacy model rather than computed sub-scores.
type CreditFactors struct {
	Utilization    CreditFactor `json:"utilization"`
	PaymentHistory CreditFactor `json:"paymentHistory"`
	CreditLimit    CreditFactor `json:"creditLimit"`
	AccountAge     CreditFactor `json:"accountAge"`
}

// CreditData is the legacy flat model's output
type CreditData struct {
	Score       int           `json:"score"`
	HealthLevel string        `json:"healthLevel"`
	Factors     CreditFactors `json:"factors"`
	LastUpdated time.Time     `json:"lastUpdated"`
}
