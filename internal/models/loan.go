package models

import "fmt"

// Loan types accepted by the affordability classifier.
const (
	LoanAuto         = "auto"
	LoanStudent      = "student"
	LoanPersonal     = "personal"
	LoanLineOfCredit = "line_of_credit"
)

// Reasonableness verdicts, ordered from best to worst.
const (
	RatingReasonable   = "reasonable"
	RatingStretch      = "stretch"
	RatingUnreasonable = "unreasonable"
)

// Per-dimension assessment tiers.
const (
	DTIHealthy  = "healthy"
	DTIModerate = "moderate"
	DTIHigh     = "high"

	APRHealthy   = "healthy"
	APRExpensive = "expensive"
	APRHighRisk  = "high-risk"

	LTINormal     = "normal"
	LTIAggressive = "aggressive"
	LTIHighRisk   = "high-risk"
)

// LoanScenario describes the terms of a hypothetical loan
type LoanScenario struct {
	LoanType      string  `json:"loanType"`
	Amount        float64 `json:"loanAmount"`
	TermMonths    int     `json:"termMonths"`
	APR           float64 `json:"apr"`
	MonthlyIncome float64 `json:"monthlyIncome,omitempty"`
}

// Validate rejects structurally invalid loan terms at the boundary
func (l LoanScenario) Validate() error {
	switch l.LoanType {
	case LoanAuto, LoanStudent, LoanPersonal, LoanLineOfCredit:
	default:
		return fmt.Errorf("unknown loan type %q", l.LoanType)
	}
	if l.Amount <= 0 {
		return fmt.Errorf("loan amount must be positive, got %.2f", l.Amount)
	}
	if l.TermMonths <= 0 {
		return fmt.Errorf("loan term must be positive, got %d months", l.TermMonths)
	}
	if l.APR < 0 {
		return fmt.Errorf("APR must not be negative, got %.2f", l.APR)
	}
	if l.MonthlyIncome < 0 {
		return fmt.Errorf("monthly income must not be negative, got %.2f", l.MonthlyIncome)
	}
	return nil
}

// LoanRating is the classifier's verdict with its working figures.
// NewDTI and LoanToIncomeRatio are percentages rounded to one decimal.
type LoanRating struct {
	Rating            string   `json:"rating"`
	MonthlyPayment    float64  `json:"monthlyPayment"`
	NewDTI            float64  `json:"newDTI"`
	Reasons           []string `json:"reasons"`
	Suggestions       []string `json:"suggestions"`
	DTIImpact         string   `json:"dtiImpact"`
	APRAssessment     string   `json:"aprAssessment"`
	LTIAssessment     string   `json:"ltiAssessment"`
	LoanToIncomeRatio float64  `json:"loanToIncomeRatio"`
	IncomeAssumed     bool     `json:"incomeAssumed,omitempty"`
}
