// Package loan rates hypothetical loans with an educational heuristic.
// This is not real underwriting.
package loan

import (
	"fmt"
	"math"

	"github.com/creditkeeper/creditkeeper/internal/models"
)

// DefaultAssumedMonthlyIncome is used when neither the caller nor the
// profile's deposit history can supply an income figure. Ratings built on it
// carry the IncomeAssumed flag.
const DefaultAssumedMonthlyIncome = 5000.0

// Dimension thresholds.
const (
	dtiHealthyMax  = 0.30
	dtiModerateMax = 0.45

	aprHealthyMax   = 12.0
	aprExpensiveMax = 25.0

	ltiNormalMax     = 0.50
	ltiAggressiveMax = 1.00
)

// MonthlyPayment computes the fixed amortized payment, rounded to the cent.
// A zero APR means an even split of the principal.
func MonthlyPayment(principal, annualRate float64, termMonths int) float64 {
	if annualRate == 0 {
		return round2(principal / float64(termMonths))
	}

	monthlyRate := annualRate / 100 / 12
	factor := math.Pow(1+monthlyRate, float64(termMonths))
	payment := principal * (monthlyRate * factor) / (factor - 1)

	return round2(payment)
}

// Rate classifies a loan against the borrower's current obligations and
// income. monthlyIncome must be positive; callers supply an estimate when the
// real figure is unknown.
func Rate(l models.LoanScenario, currentMonthlyDebt, monthlyIncome float64) models.LoanRating {
	monthlyPayment := MonthlyPayment(l.Amount, l.APR, l.TermMonths)
	newDTI := (currentMonthlyDebt + monthlyPayment) / monthlyIncome
	lti := l.Amount / (monthlyIncome * 12)

	dtiImpact := assessDTI(newDTI)
	aprAssessment := assessAPR(l.APR)
	ltiImpact := assessLoanToIncome(lti)

	rating := determineOverallRating(dtiImpact, aprAssessment, ltiImpact)

	return models.LoanRating{
		Rating:            rating,
		MonthlyPayment:    monthlyPayment,
		NewDTI:            math.Round(newDTI*1000) / 10,
		Reasons:           generateReasons(newDTI, l.APR, lti, dtiImpact, aprAssessment),
		Suggestions:       generateSuggestions(rating, l, newDTI, monthlyPayment, monthlyIncome),
		DTIImpact:         dtiImpact,
		APRAssessment:     aprAssessment,
		LTIAssessment:     ltiImpact,
		LoanToIncomeRatio: math.Round(lti*1000) / 10,
	}
}

func assessDTI(dti float64) string {
	if dti <= dtiHealthyMax {
		return models.DTIHealthy
	}
	if dti <= dtiModerateMax {
		return models.DTIModerate
	}
	return models.DTIHigh
}

func assessAPR(apr float64) string {
	if apr <= aprHealthyMax {
		return models.APRHealthy
	}
	if apr <= aprExpensiveMax {
		return models.APRExpensive
	}
	return models.APRHighRisk
}

func assessLoanToIncome(lti float64) string {
	if lti <= ltiNormalMax {
		return models.LTINormal
	}
	if lti <= ltiAggressiveMax {
		return models.LTIAggressive
	}
	return models.LTIHighRisk
}

// determineOverallRating applies the verdict rules in priority order: any
// dimension at its worst tier is unreasonable, any dimension at its middle
// tier is a stretch, otherwise reasonable.
func determineOverallRating(dtiImpact, aprAssessment, ltiImpact string) string {
	if dtiImpact == models.DTIHigh || aprAssessment == models.APRHighRisk || ltiImpact == models.LTIHighRisk {
		return models.RatingUnreasonable
	}

	if dtiImpact == models.DTIModerate || aprAssessment == models.APRExpensive || ltiImpact == models.LTIAggressive {
		return models.RatingStretch
	}

	return models.RatingReasonable
}

// generateReasons emits one sentence per dimension, always three
func generateReasons(newDTI, apr, lti float64, dtiImpact, aprAssessment string) []string {
	reasons := make([]string, 0, 3)

	switch dtiImpact {
	case models.DTIHealthy:
		reasons = append(reasons, fmt.Sprintf("Debt-to-income ratio of %.1f%% is within healthy range (<=30%%)", newDTI*100))
	case models.DTIModerate:
		reasons = append(reasons, fmt.Sprintf("Debt-to-income ratio of %.1f%% is elevated but manageable (30-45%%)", newDTI*100))
	default:
		reasons = append(reasons, fmt.Sprintf("Debt-to-income ratio of %.1f%% is very high (>45%%)", newDTI*100))
	}

	switch aprAssessment {
	case models.APRHealthy:
		reasons = append(reasons, fmt.Sprintf("APR of %.1f%% is competitive and affordable", apr))
	case models.APRExpensive:
		reasons = append(reasons, fmt.Sprintf("APR of %.1f%% is expensive (12-25%%)", apr))
	default:
		reasons = append(reasons, fmt.Sprintf("APR of %.1f%% is extremely high (>25%%)", apr))
	}

	switch {
	case lti <= ltiNormalMax:
		reasons = append(reasons, fmt.Sprintf("Loan amount is %.0f%% of annual income - reasonable size", lti*100))
	case lti <= ltiAggressiveMax:
		reasons = append(reasons, fmt.Sprintf("Loan amount is %.0f%% of annual income - aggressive borrowing", lti*100))
	default:
		reasons = append(reasons, fmt.Sprintf("Loan amount exceeds annual income (%.0f%%) - very high risk", lti*100))
	}

	return reasons
}

func generateSuggestions(rating string, l models.LoanScenario, newDTI, monthlyPayment, monthlyIncome float64) []string {
	var suggestions []string

	if rating == models.RatingReasonable {
		return []string{
			"This loan fits well within your budget",
			"Continue making on-time payments to maintain good credit",
		}
	}

	if newDTI > dtiHealthyMax {
		// Payment that would put total obligations back at 30% of income.
		targetPayment := monthlyIncome*dtiHealthyMax - (monthlyIncome*newDTI - monthlyPayment)
		if targetPayment > 0 {
			suggestions = append(suggestions, fmt.Sprintf("Reduce monthly payment to ~$%.0f to keep DTI below 30%%", targetPayment))
		}

		betterAmount := principalForPayment(l.APR, l.TermMonths, targetPayment)
		if betterAmount > 0 && betterAmount < l.Amount {
			suggestions = append(suggestions, fmt.Sprintf("Consider borrowing ~$%.0f instead to maintain healthy DTI", betterAmount))
		}
	}

	if l.TermMonths < 60 && newDTI > dtiHealthyMax {
		longerTermPayment := MonthlyPayment(l.Amount, l.APR, l.TermMonths+12)
		suggestions = append(suggestions, fmt.Sprintf("Extend term to %d months (payment: $%.2f/mo)", l.TermMonths+12, longerTermPayment))
	}

	if l.APR > aprHealthyMax {
		suggestions = append(suggestions,
			"Shop for better interest rates before committing",
			"Consider improving credit score before borrowing")
	}

	if l.Amount > monthlyIncome*6 {
		suggestions = append(suggestions,
			"Consider making a larger down payment",
			"Evaluate if the full amount is necessary")
	}

	if rating == models.RatingUnreasonable {
		suggestions = append(suggestions, "Warning: this loan may cause financial hardship - reconsider or delay")
	}

	return suggestions
}

// principalForPayment inverts the amortization formula: the principal whose
// fixed payment at the given rate and term equals targetPayment.
func principalForPayment(apr float64, termMonths int, targetPayment float64) float64 {
	if apr == 0 {
		return math.Round(targetPayment * float64(termMonths))
	}

	monthlyRate := apr / 100 / 12
	factor := math.Pow(1+monthlyRate, float64(termMonths))
	principal := targetPayment * (factor - 1) / (monthlyRate * factor)

	return math.Round(principal)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
