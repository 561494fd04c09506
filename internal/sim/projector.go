// Package sim projects how hypothetical events would move a profile's score.
// A projection clones the profile, applies the event to the clone, rescores
// both and diffs the results; the caller's profile is never mutated.
package sim

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/creditkeeper/creditkeeper/internal/loan"
	"github.com/creditkeeper/creditkeeper/internal/models"
	"github.com/creditkeeper/creditkeeper/internal/score"
)

// minimumDueRate is the statement convention: minimum due = 3% of balance.
const minimumDueRate = 0.03

// utilizationTarget is the threshold corrective actions aim for.
const utilizationTarget = 0.30

// Projector simulates scenarios against one profile
type Projector struct {
	profile *models.Profile
	now     time.Time
}

// NewProjector returns a projector evaluating the profile as of now
func NewProjector(profile *models.Profile) *Projector {
	return NewProjectorAt(profile, time.Now())
}

// NewProjectorAt returns a projector evaluating the profile as of a fixed time
func NewProjectorAt(profile *models.Profile, now time.Time) *Projector {
	return &Projector{profile: profile, now: now}
}

// Simulate applies the scenario to a clone of the profile and reports the
// score movement. Each call is independent; no state is carried across calls.
func (p *Projector) Simulate(scenario models.Scenario) (*models.Projection, error) {
	if err := scenario.Validate(); err != nil {
		return nil, err
	}

	current := score.NewEngineAt(p.profile, p.now).ComputeScore()

	mutated := p.profile.Clone()
	if err := p.applyScenario(mutated, scenario); err != nil {
		return nil, err
	}

	projected := score.NewEngineAt(mutated, p.now).ComputeScore()
	scoreDelta := projected.FinalScore - current.FinalScore

	primary := identifyPrimaryFactorChange(current, projected)

	result := &models.Projection{
		CurrentScore:        current.FinalScore,
		ProjectedScore:      projected.FinalScore,
		ScoreDelta:          scoreDelta,
		FactorAffected:      primary.FactorName,
		FactorBreakdown:     &models.FactorBreakdown{Current: current, Projected: projected},
		PrimaryFactorChange: &primary,
	}

	p.explain(result, scenario, current, projected)

	if scenario.Type == models.ScenarioNewLoan {
		rating := p.rateLoan(*scenario.Loan)
		result.LoanRating = &rating
		p.explainNewLoan(result, *scenario.Loan, rating)
	}

	return result, nil
}

// rateLoan classifies the scenario's loan terms against the profile's current
// obligations. Income preference: stated on the scenario, then derived from
// trailing paycheck deposits, then the documented assumed default.
func (p *Projector) rateLoan(l models.LoanScenario) models.LoanRating {
	var currentDebt float64
	if last := p.profile.LastBillingCycle(); last != nil {
		currentDebt = last.MinimumDue
	}

	income := l.MonthlyIncome
	assumed := false
	if income <= 0 {
		income = score.MonthlyIncome(p.profile, p.now)
	}
	if income <= 0 {
		income = loan.DefaultAssumedMonthlyIncome
		assumed = true
	}

	rating := loan.Rate(l, currentDebt, income)
	rating.IncomeAssumed = assumed
	return rating
}

func (p *Projector) applyScenario(profile *models.Profile, scenario models.Scenario) error {
	switch scenario.Type {
	case models.ScenarioPurchase, models.ScenarioReplayTransaction:
		p.applyPurchase(profile, scenario.Amount)
	case models.ScenarioMissedPayment:
		p.applyMissedPayment(profile)
	case models.ScenarioPayDown:
		p.applyPayDown(profile, scenario.PaymentAmount)
	case models.ScenarioNewLoan:
		applyNewLoan(profile, *scenario.Loan)
	default:
		return fmt.Errorf("%w: %q", models.ErrUnknownScenario, scenario.Type)
	}
	return nil
}

func (p *Projector) applyPurchase(profile *models.Profile, amount float64) {
	profile.CreditCard.Balance += amount

	// Only an open statement absorbs the charge; a closed one already reported.
	if last := profile.LastBillingCycle(); last != nil && last.StatementEnd.After(p.now) {
		last.StatementBalance += amount
		last.MinimumDue = math.Floor(last.StatementBalance * minimumDueRate)
	}

	profile.Transactions = append([]models.Transaction{{
		ID:          "txn-projected-" + uuid.NewString(),
		Description: "Projected Purchase",
		Amount:      amount,
		Date:        p.now,
		Merchant:    "Projected Merchant",
		Category:    "Shopping",
	}}, profile.Transactions...)
}

// applyMissedPayment registers one additional miss against the most recent
// cycle that does not already count as one. A still-pending due date is
// pulled into the past; the engine only sees a miss once the cycle is
// unpaid and overdue.
func (p *Projector) applyMissedPayment(profile *models.Profile) {
	for i := len(profile.BillingCycles) - 1; i >= 0; i-- {
		c := &profile.BillingCycles[i]
		if !c.IsPaid && c.DueDate.Before(p.now) {
			continue // already a registered miss
		}
		if !c.DueDate.Before(p.now) {
			c.DueDate = p.now.AddDate(0, 0, -1)
		}
		c.IsPaid = false
		c.PaidOnTime = false
		c.PaidAmount = 0
		return
	}
}

func (p *Projector) applyPayDown(profile *models.Profile, amount float64) {
	profile.CreditCard.Balance = math.Max(0, profile.CreditCard.Balance-amount)

	var cycleID string
	if last := profile.LastBillingCycle(); last != nil {
		cycleID = last.ID
		last.PaidAmount += amount
		if last.PaidAmount >= last.MinimumDue {
			last.IsPaid = true
			last.PaidOnTime = true
		}
	}

	profile.Payments = append(profile.Payments, models.Payment{
		ID:             "payment-projected-" + uuid.NewString(),
		Amount:         amount,
		Date:           p.now,
		Source:         "checking",
		BillingCycleID: cycleID,
	})
}

// applyNewLoan models the increased obligation by adding the amortized
// payment to the current minimum due. A new line of credit additionally
// draws its principal onto the balance and opens fresh limit at 1.2x the
// principal; installment loans never touch the revolving balance.
func applyNewLoan(profile *models.Profile, l models.LoanScenario) {
	payment := loan.MonthlyPayment(l.Amount, l.APR, l.TermMonths)

	if last := profile.LastBillingCycle(); last != nil {
		last.MinimumDue += payment
	}

	if l.LoanType == models.LoanLineOfCredit {
		profile.CreditCard.Balance += l.Amount
		profile.CreditCard.CreditLimit += 1.2 * l.Amount
	}
}

// identifyPrimaryFactorChange picks the factor with the largest weighted
// sub-score movement, using the original snapshot's weights. The projected
// state's explanation is surfaced.
func identifyPrimaryFactorChange(current, projected models.ScoreResult) models.FactorChange {
	pairs := []struct {
		current   models.FactorScore
		projected models.FactorScore
	}{
		{current.Factors.PaymentHistory, projected.Factors.PaymentHistory},
		{current.Factors.Utilization, projected.Factors.Utilization},
		{current.Factors.DebtToIncome, projected.Factors.DebtToIncome},
		{current.Factors.HistoryLength, projected.Factors.HistoryLength},
	}

	maxChange := 0.0
	change := models.FactorChange{FactorName: "Credit Utilization"}

	for _, pair := range pairs {
		weighted := math.Abs((pair.projected.Score - pair.current.Score) * pair.current.Weight)
		if weighted > maxChange {
			maxChange = weighted
			change.FactorName = pair.current.Name
			change.Explanation = pair.projected.Explanation
		}
	}

	change.ScoreDelta = int(math.Round(maxChange))
	return change
}

// explain fills in the scenario-specific narrative. Utilization percentages
// are computed from the original balance and limit so the text describes the
// move the user would see, not the cloned state.
func (p *Projector) explain(result *models.Projection, scenario models.Scenario, current, projected models.ScoreResult) {
	limit := p.profile.CreditCard.CreditLimit
	if limit <= 0 {
		limit = 1
	}
	balance := p.profile.CreditCard.Balance

	switch scenario.Type {
	case models.ScenarioPurchase, models.ScenarioReplayTransaction:
		amount := scenario.Amount
		currentUtil := balance / limit * 100
		newUtil := (balance + amount) / limit * 100

		verb := "Purchase of"
		if scenario.Type == models.ScenarioReplayTransaction {
			verb = "Replaying a"
		}
		result.Explanation = fmt.Sprintf("%s $%.2f increases utilization from %.1f%% to %.1f%%.", verb, amount, currentUtil, newUtil)

		if newUtil > utilizationTarget*100 {
			payDown := (balance + amount) - limit*utilizationTarget
			result.CorrectiveAction = fmt.Sprintf("Pay down balance to bring utilization below 30%% (approximately $%.2f).", payDown)
		}

		if result.ScoreDelta < -20 {
			result.RecoveryTimeline = &models.RecoveryTimeline{
				Days30:  capScore(projected.FinalScore + int(math.Abs(math.Floor(float64(result.ScoreDelta)*0.2)))),
				Days90:  capScore(projected.FinalScore + int(math.Abs(math.Floor(float64(result.ScoreDelta)*0.5)))),
				Days180: capScore(current.FinalScore),
			}
		}

	case models.ScenarioMissedPayment:
		result.Explanation = "Missing a payment severely impacts your score. Payment history accounts for 40% of your toy score."
		result.CorrectiveAction = "Make payment immediately and set up autopay to prevent future missed payments."
		result.RecoveryTimeline = &models.RecoveryTimeline{
			Days30:  capScore(projected.FinalScore + 15),
			Days90:  capScore(projected.FinalScore + 40),
			Days180: capScore(projected.FinalScore + 70),
		}

	case models.ScenarioPayDown:
		amount := scenario.PaymentAmount
		currentUtil := balance / limit * 100
		newUtil := math.Max(0, balance-amount) / limit * 100

		result.Explanation = fmt.Sprintf("Paying down $%.2f reduces utilization from %.1f%% to %.1f%%.", amount, currentUtil, newUtil)
		result.CorrectiveAction = "Continue making on-time payments and maintain low utilization for continued score improvement."

	case models.ScenarioNewLoan:
		// Filled in by explainNewLoan once the rating is known.
	}
}

func (p *Projector) explainNewLoan(result *models.Projection, l models.LoanScenario, rating models.LoanRating) {
	result.Explanation = fmt.Sprintf("A %s loan of $%.2f at %.1f%% APR would bring your debt-to-income ratio to %.1f%%.",
		loanTypeLabel(l.LoanType), l.Amount, l.APR, rating.NewDTI)

	switch {
	case rating.Rating == models.RatingUnreasonable:
		result.CorrectiveAction = "This loan is likely unaffordable at your income level - reconsider or delay borrowing."
		if result.ScoreDelta < 0 {
			drop := math.Abs(float64(result.ScoreDelta))
			result.RecoveryTimeline = &models.RecoveryTimeline{
				Days30:  capScore(result.ProjectedScore + int(math.Round(drop*0.15))),
				Days90:  capScore(result.ProjectedScore + int(math.Round(drop*0.40))),
				Days180: capScore(result.ProjectedScore + int(math.Round(drop*0.70))),
			}
		}
	case rating.Rating == models.RatingReasonable || result.ScoreDelta >= 0:
		result.CorrectiveAction = "Make every payment on time and this loan can build your credit history."
	default:
		result.CorrectiveAction = "This loan would stretch your budget - borrow carefully and keep other balances low."
	}
}

func loanTypeLabel(loanType string) string {
	switch loanType {
	case models.LoanAuto:
		return "auto"
	case models.LoanStudent:
		return "student"
	case models.LoanPersonal:
		return "personal"
	case models.LoanLineOfCredit:
		return "line of credit"
	default:
		return loanType
	}
}

func capScore(s int) int {
	if s > 850 {
		return 850
	}
	return s
}
