package score

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/creditkeeper/creditkeeper/internal/models"
)

// Factor weights. They must sum to 1.0.
const (
	WeightPaymentHistory = 0.40
	WeightUtilization    = 0.30
	WeightDebtToIncome   = 0.20
	WeightHistoryLength  = 0.10
)

// Baseline sub-scores used when optional data is absent.
const (
	baselineNoHistory = 80
	baselineNoIncome  = 60
)

// defaultCreditLimitForUtilization guards the utilization division when the
// account reports no credit limit. The ~0% utilization this produces is the
// documented behavior, not an error.
const defaultCreditLimitForUtilization = 1.0

// Engine computes the weighted four-factor score for one profile.
// It is a pure function of the profile and the reference time.
type Engine struct {
	profile *models.Profile
	now     time.Time
}

// NewEngine returns an engine evaluating the profile as of now
func NewEngine(profile *models.Profile) *Engine {
	return NewEngineAt(profile, time.Now())
}

// NewEngineAt returns an engine evaluating the profile as of a fixed time
func NewEngineAt(profile *models.Profile, now time.Time) *Engine {
	return &Engine{profile: profile, now: now}
}

// ComputeScore runs all four factors and aggregates them onto the 300-850
// scale. It never fails for a structurally valid profile: missing income or
// billing history degrades to baseline sub-scores.
func (e *Engine) ComputeScore() models.ScoreResult {
	paymentHistory := e.computePaymentHistory()
	utilization := e.computeUtilization()
	debtToIncome := e.computeDebtToIncome()
	historyLength := e.computeHistoryLength()

	weightedTotal := paymentHistory.Score*paymentHistory.Weight +
		utilization.Score*utilization.Weight +
		debtToIncome.Score*debtToIncome.Weight +
		historyLength.Score*historyLength.Weight

	finalScore := int(math.Round(300 + (weightedTotal/100)*550))
	if finalScore < 300 {
		finalScore = 300
	}
	if finalScore > 850 {
		finalScore = 850
	}

	factors := models.Factors{
		PaymentHistory: paymentHistory,
		Utilization:    utilization,
		DebtToIncome:   debtToIncome,
		HistoryLength:  historyLength,
	}

	return models.ScoreResult{
		FinalScore:  finalScore,
		HealthLevel: HealthLevel(finalScore),
		Factors:     factors,
		TopDrivers:  identifyTopDrivers(factors),
		IsToyScore:  true,
		LastUpdated: e.now,
	}
}

// HealthLevel buckets a 300-850 score into the coarse display levels
func HealthLevel(score int) string {
	switch {
	case score >= 700:
		return models.HealthHigh
	case score >= 640:
		return models.HealthMedium
	default:
		return models.HealthLow
	}
}

// MonthlyIncome sums paycheck-tagged deposits in the trailing 30 days.
// Returns 0 when there is no checking account or no recent paychecks.
func MonthlyIncome(profile *models.Profile, now time.Time) float64 {
	if profile.Checking == nil {
		return 0
	}
	cutoff := now.AddDate(0, 0, -30)

	var income float64
	for _, d := range profile.Checking.Deposits {
		if d.Type == models.DepositPaycheck && !d.Date.Before(cutoff) {
			income += d.Amount
		}
	}
	return income
}

func (e *Engine) computePaymentHistory() models.FactorScore {
	cycles := e.profile.BillingCycles

	if len(cycles) == 0 {
		return models.FactorScore{
			Name:        "Payment History",
			Score:       baselineNoHistory,
			Weight:      WeightPaymentHistory,
			Status:      models.StatusGood,
			Explanation: "No payment history yet. Starting with baseline score.",
			Details:     "New account with no billing history",
		}
	}

	last12 := cycles
	if len(last12) > 12 {
		last12 = last12[len(last12)-12:]
	}

	var missed, late int
	for _, c := range last12 {
		if !c.IsPaid && c.DueDate.Before(e.now) {
			missed++
		}
		if c.IsPaid && !c.PaidOnTime {
			late++
		}
	}

	score := 100.0
	score -= float64(missed) * 25
	score -= float64(late) * 10

	// On-time bonus: the most recent 6 cycles are either paid on time or not
	// yet due. Cycles that simply have not come due yet count toward it.
	if len(last12) >= 6 {
		recentOnTime := true
		for _, c := range last12[len(last12)-6:] {
			if !c.PaidOnTime && !c.DueDate.After(e.now) {
				recentOnTime = false
				break
			}
		}
		if recentOnTime {
			score += 5
		}
	}

	score = clamp(score, 0, 100)

	var status, explanation string
	switch {
	case missed > 0:
		status = models.StatusBad
		explanation = fmt.Sprintf("%d missed payment%s in last 12 months. This severely impacts your score.", missed, plural(missed))
	case late > 0:
		status = models.StatusWarning
		explanation = fmt.Sprintf("%d late payment%s in last 12 months. Try to pay on time to improve.", late, plural(late))
	default:
		status = models.StatusGood
		explanation = fmt.Sprintf("All %d payment%s made on time. Excellent!", len(last12), plural(len(last12)))
	}

	return models.FactorScore{
		Name:        "Payment History",
		Score:       score,
		Weight:      WeightPaymentHistory,
		Status:      status,
		Explanation: explanation,
		Details:     fmt.Sprintf("Tracking %d billing cycles. Missed: %d, Late: %d", len(last12), missed, late),
	}
}

func (e *Engine) computeUtilization() models.FactorScore {
	account := e.profile.CreditCard

	limit := account.CreditLimit
	if limit <= 0 {
		limit = defaultCreditLimitForUtilization
	}
	currentUtil := account.Balance / limit * 100

	cycles := e.profile.BillingCycles
	last3 := cycles
	if len(last3) > 3 {
		last3 = last3[len(last3)-3:]
	}

	avg3Util := currentUtil
	if len(last3) > 0 {
		var sum float64
		for _, c := range last3 {
			sum += c.StatementBalance / limit * 100
		}
		avg3Util = sum / float64(len(last3))
	}

	// Blend the live balance with the trailing statement average so a single
	// statement spike does not dominate.
	combinedUtil := currentUtil*0.6 + avg3Util*0.4

	var score float64
	var status, explanation string
	switch {
	case combinedUtil <= 10:
		score = 100
		status = models.StatusGood
		explanation = fmt.Sprintf("Excellent! Current utilization at %.1f%%. Well below the 30%% threshold.", currentUtil)
	case combinedUtil <= 30:
		score = 90
		status = models.StatusGood
		explanation = fmt.Sprintf("Good! Current utilization at %.1f%%. Stay below 30%% for optimal score.", currentUtil)
	case combinedUtil <= 50:
		score = 70
		status = models.StatusWarning
		explanation = fmt.Sprintf("Current utilization at %.1f%% is moderate. Reduce below 30%% to improve score.", currentUtil)
	case combinedUtil <= 75:
		score = 40
		status = models.StatusBad
		explanation = fmt.Sprintf("High utilization at %.1f%%! Pay down balance to improve score significantly.", currentUtil)
	default:
		score = 10
		status = models.StatusBad
		explanation = fmt.Sprintf("Critical: %.1f%% utilization is extremely high! This is severely impacting your score.", currentUtil)
	}

	details := fmt.Sprintf("Current: %.1f%%, Avg (3 months): %.1f%%", currentUtil, avg3Util)
	if account.CreditLimit <= 0 {
		details += " (credit limit unreported)"
	}

	value := currentUtil
	return models.FactorScore{
		Name:        "Credit Utilization",
		Score:       score,
		Value:       &value,
		Weight:      WeightUtilization,
		Status:      status,
		Explanation: explanation,
		Details:     details,
	}
}

func (e *Engine) computeDebtToIncome() models.FactorScore {
	if e.profile.Checking == nil || len(e.profile.Checking.Deposits) == 0 {
		return models.FactorScore{
			Name:        "Debt-to-Income Proxy",
			Score:       baselineNoIncome,
			Weight:      WeightDebtToIncome,
			Status:      models.StatusWarning,
			Explanation: "Income data unavailable. Using baseline score.",
			Details:     "No checking account or deposit history",
		}
	}

	monthlyIncome := MonthlyIncome(e.profile, e.now)
	if monthlyIncome == 0 {
		return models.FactorScore{
			Name:        "Debt-to-Income Proxy",
			Score:       baselineNoIncome,
			Weight:      WeightDebtToIncome,
			Status:      models.StatusWarning,
			Explanation: "No recent income detected. Using baseline score.",
			Details:     "No paycheck deposits in last 30 days",
		}
	}

	var monthlyDebt float64
	if last := e.profile.LastBillingCycle(); last != nil {
		monthlyDebt = last.MinimumDue
	}

	ratio := monthlyDebt / monthlyIncome

	var score float64
	var status, explanation string
	switch {
	case ratio <= 0.10:
		score = 100
		status = models.StatusGood
		explanation = fmt.Sprintf("Excellent debt-to-income ratio at %.1f%%. Very manageable debt.", ratio*100)
	case ratio <= 0.20:
		score = 85
		status = models.StatusGood
		explanation = fmt.Sprintf("Good debt-to-income ratio at %.1f%%. Debt is well-managed.", ratio*100)
	case ratio <= 0.35:
		score = 65
		status = models.StatusWarning
		explanation = fmt.Sprintf("Moderate debt-to-income ratio at %.1f%%. Consider reducing debt.", ratio*100)
	case ratio <= 0.50:
		score = 40
		status = models.StatusBad
		explanation = fmt.Sprintf("High debt-to-income ratio at %.1f%%. Debt is becoming burdensome.", ratio*100)
	default:
		score = 15
		status = models.StatusBad
		explanation = fmt.Sprintf("Very high debt-to-income ratio at %.1f%%. Urgent debt reduction needed.", ratio*100)
	}

	return models.FactorScore{
		Name:        "Debt-to-Income Proxy",
		Score:       score,
		Weight:      WeightDebtToIncome,
		Status:      status,
		Explanation: explanation,
		Details:     fmt.Sprintf("Monthly Income: $%.0f, Monthly Debt: $%.0f", monthlyIncome, monthlyDebt),
	}
}

func (e *Engine) computeHistoryLength() models.FactorScore {
	// Whole months on a 30-day convention, matching the statement cadence.
	ageInMonths := int(e.now.Sub(e.profile.CreditCard.OpenDate).Hours() / 24 / 30)
	if ageInMonths < 0 {
		ageInMonths = 0
	}
	years := ageInMonths / 12

	var score float64
	var status, explanation string
	switch {
	case ageInMonths < 3:
		score = 30
		status = models.StatusBad
		explanation = fmt.Sprintf("Very new account (%d months). Score will improve with time.", ageInMonths)
	case ageInMonths < 6:
		score = 45
		status = models.StatusWarning
		explanation = fmt.Sprintf("New account (%d months). Keep building positive history.", ageInMonths)
	case ageInMonths < 12:
		score = 60
		status = models.StatusWarning
		explanation = fmt.Sprintf("Account is %d months old. Approaching 1 year milestone.", ageInMonths)
	case ageInMonths < 24:
		score = 75
		status = models.StatusGood
		explanation = fmt.Sprintf("Account is %d year%s old. Good history length.", years, plural(years))
	case ageInMonths < 60:
		score = 90
		status = models.StatusGood
		explanation = fmt.Sprintf("Account is %d years old. Strong credit history.", years)
	default:
		score = 100
		status = models.StatusGood
		explanation = fmt.Sprintf("Account is %d years old. Excellent established history.", years)
	}

	return models.FactorScore{
		Name:        "Account Age",
		Score:       score,
		Weight:      WeightHistoryLength,
		Status:      status,
		Explanation: explanation,
		Details:     fmt.Sprintf("Account opened %d years, %d months ago", years, ageInMonths%12),
	}
}

func identifyTopDrivers(factors models.Factors) models.TopDrivers {
	ordered := []models.FactorScore{
		factors.PaymentHistory,
		factors.Utilization,
		factors.DebtToIncome,
		factors.HistoryLength,
	}

	var positive, negative []models.FactorScore
	for _, f := range ordered {
		if f.Status == models.StatusGood && f.Score >= 80 {
			positive = append(positive, f)
		}
		if f.Status != models.StatusGood {
			negative = append(negative, f)
		}
	}

	sort.SliceStable(positive, func(i, j int) bool {
		return positive[i].Score*positive[i].Weight > positive[j].Score*positive[j].Weight
	})
	sort.SliceStable(negative, func(i, j int) bool {
		return negative[i].Score*negative[i].Weight < negative[j].Score*negative[j].Weight
	})

	drivers := models.TopDrivers{Positive: []string{}, Negative: []string{}}
	for _, f := range positive {
		if len(drivers.Positive) == 2 {
			break
		}
		drivers.Positive = append(drivers.Positive, f.Name)
	}
	for _, f := range negative {
		if len(drivers.Negative) == 2 {
			break
		}
		drivers.Negative = append(drivers.Negative, f.Name)
	}
	return drivers
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
