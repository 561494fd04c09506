// Package synthetic builds demo financial profiles with known score shapes.
package synthetic

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/creditkeeper/creditkeeper/internal/models"
)

// Profile archetypes offered to the UI.
const (
	TypeExcellent = "excellent"
	TypeHealthy   = "healthy"
	TypeRisky     = "risky"
	TypePoor      = "poor"
)

const (
	paycheckAmount   = 2000
	paycheckInterval = 14 // days
	dueDateGraceDays = 21
	minimumDueRate   = 0.03
)

func newID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// Generate builds a profile for the named archetype, or false when the
// archetype is unknown
func Generate(profileType string) (*models.Profile, bool) {
	switch profileType {
	case TypeExcellent:
		return GenerateExcellentProfile(), true
	case TypeHealthy:
		return GenerateHealthyProfile(), true
	case TypeRisky:
		return GenerateRiskyProfile(), true
	case TypePoor:
		return GeneratePoorProfile(), true
	default:
		return nil, false
	}
}

// GenerateHealthyProfile builds an 18-month-old account at 27% utilization
// with one late payment, landing in the 720-750 range.
func GenerateHealthyProfile() *models.Profile {
	now := time.Now()
	accountID := newID("account")

	const creditLimit = 5000
	const currentBalance = 1350

	cycles, payments := healthyBillingHistory(currentBalance)
	checking := checkingAccount(4500, 18, now)

	return &models.Profile{
		ID:   newID("profile"),
		Name: "Healthy Alex",
		Type: "healthy",
		CreditCard: models.CreditCardAccount{
			ID:          accountID,
			Type:        "Credit Card",
			Balance:     currentBalance,
			CreditLimit: creditLimit,
			Nickname:    "Capital One Quicksilver",
			APR:         18.99,
			OpenDate:    now.AddDate(0, -18, 0),
			Status:      "active",
		},
		Checking:      checking,
		Transactions:  transactionsForCycles(cycles),
		BillingCycles: cycles,
		Payments:      payments,
		CreatedAt:     now,
	}
}

// GenerateRiskyProfile builds an 8-month-old account at 65% utilization with
// one missed and one late payment.
func GenerateRiskyProfile() *models.Profile {
	now := time.Now()
	accountID := newID("account")

	const creditLimit = 3000
	const currentBalance = 1950

	cycles, payments := riskyBillingHistory(currentBalance)
	checking := checkingAccount(1200, 8, now)

	return &models.Profile{
		ID:   newID("profile"),
		Name: "Risky Jordan",
		Type: "risky",
		CreditCard: models.CreditCardAccount{
			ID:          accountID,
			Type:        "Credit Card",
			Balance:     currentBalance,
			CreditLimit: creditLimit,
			Nickname:    "Capital One Platinum",
			APR:         24.99,
			OpenDate:    now.AddDate(0, -8, 0),
			Status:      "active",
		},
		Checking:      checking,
		Transactions:  transactionsForCycles(cycles),
		BillingCycles: cycles,
		Payments:      payments,
		CreatedAt:     now,
	}
}

// GenerateExcellentProfile builds a 5-year-old account at 2% utilization
// with a spotless, paid-in-full history.
func GenerateExcellentProfile() *models.Profile {
	now := time.Now()
	accountID := newID("account")

	const creditLimit = 15000
	const currentBalance = 300

	cycles, payments := excellentBillingHistory(currentBalance)
	checking := checkingAccount(12000, 60, now)

	return &models.Profile{
		ID:   newID("profile"),
		Name: "Smart Bernard",
		Type: "healthy",
		CreditCard: models.CreditCardAccount{
			ID:          accountID,
			Type:        "Credit Card",
			Balance:     currentBalance,
			CreditLimit: creditLimit,
			Nickname:    "Capital One Venture X",
			APR:         14.99,
			OpenDate:    now.AddDate(0, -60, 0),
			Status:      "active",
		},
		Checking:      checking,
		Transactions:  transactionsForCycles(cycles),
		BillingCycles: cycles,
		Payments:      payments,
		CreatedAt:     now,
	}
}

// GeneratePoorProfile builds a 5-month-old account at 99% utilization with
// two missed payments and partial minimums.
func GeneratePoorProfile() *models.Profile {
	now := time.Now()
	accountID := newID("account")

	const creditLimit = 1500
	const currentBalance = 1485

	cycles, payments := poorBillingHistory(currentBalance)
	checking := checkingAccount(150, 5, now)

	return &models.Profile{
		ID:   newID("profile"),
		Name: "Dangerous David",
		Type: "risky",
		CreditCard: models.CreditCardAccount{
			ID:          accountID,
			Type:        "Credit Card",
			Balance:     currentBalance,
			CreditLimit: creditLimit,
			Nickname:    "Capital One Secured",
			APR:         29.99,
			OpenDate:    now.AddDate(0, -5, 0),
			Status:      "active",
		},
		Checking:      checking,
		Transactions:  transactionsForCycles(cycles),
		BillingCycles: cycles,
		Payments:      payments,
		CreatedAt:     now,
	}
}

// checkingAccount produces biweekly paycheck deposits across the history
func checkingAccount(balance float64, monthsHistory int, now time.Time) *models.CheckingAccount {
	var deposits []models.Deposit

	for d := now.AddDate(0, -monthsHistory, 0); !d.After(now); d = d.AddDate(0, 0, paycheckInterval) {
		deposits = append(deposits, models.Deposit{
			ID:          newID("deposit"),
			Amount:      paycheckAmount,
			Date:        d,
			Description: "Paycheck Direct Deposit",
			Type:        models.DepositPaycheck,
		})
	}

	return &models.CheckingAccount{
		ID:       newID("checking"),
		Balance:  balance,
		Deposits: deposits,
	}
}

func healthyBillingHistory(currentBalance float64) ([]models.BillingCycle, []models.Payment) {
	return billingHistory(12, func(i, numCycles int) cycleShape {
		balance := float64(rand.Intn(1000) + 500)
		if i == numCycles-1 {
			balance = currentBalance
		}
		// One late payment mid-history keeps the score out of the excellent band.
		late := i == 6
		paymentDays := -5
		if late {
			paymentDays = 5
		}
		return cycleShape{
			balance:     balance,
			paid:        i < numCycles-1,
			paidOnTime:  !late,
			paidAmount:  balance,
			paymentDays: paymentDays,
		}
	})
}

func riskyBillingHistory(currentBalance float64) ([]models.BillingCycle, []models.Payment) {
	return billingHistory(8, func(i, numCycles int) cycleShape {
		balance := float64(rand.Intn(2000) + 1200)
		if i == numCycles-1 {
			balance = currentBalance
		}
		minimumDue := floorMinimum(balance)

		switch {
		case i == 4: // missed
			return cycleShape{balance: balance, paid: false, paidOnTime: false}
		case i == 2: // late
			return cycleShape{balance: balance, paid: true, paidOnTime: false, paidAmount: minimumDue, paymentDays: 8}
		default:
			return cycleShape{balance: balance, paid: i < numCycles-1, paidOnTime: true, paidAmount: minimumDue, paymentDays: -3}
		}
	})
}

func excellentBillingHistory(currentBalance float64) ([]models.BillingCycle, []models.Payment) {
	return billingHistory(12, func(i, numCycles int) cycleShape {
		balance := float64(rand.Intn(500) + 200)
		if i == numCycles-1 {
			balance = currentBalance
		}
		// Always paid in full, always early.
		return cycleShape{
			balance:     balance,
			paid:        i < numCycles-1,
			paidOnTime:  true,
			paidAmount:  balance,
			paymentDays: -10,
		}
	})
}

func poorBillingHistory(currentBalance float64) ([]models.BillingCycle, []models.Payment) {
	return billingHistory(5, func(i, numCycles int) cycleShape {
		balance := float64(rand.Intn(200) + 1300)
		if i == numCycles-1 {
			balance = currentBalance
		}
		minimumDue := floorMinimum(balance)

		switch {
		case i == 1 || i == 3: // missed
			return cycleShape{balance: balance, paid: false, paidOnTime: false}
		case i == 2: // late, partial
			return cycleShape{balance: balance, paid: true, paidOnTime: false, paidAmount: minimumDue * 0.7, paymentDays: 15}
		default: // barely on time, bare minimum
			return cycleShape{balance: balance, paid: i < numCycles-1, paidOnTime: true, paidAmount: minimumDue, paymentDays: -1}
		}
	})
}

type cycleShape struct {
	balance     float64
	paid        bool
	paidOnTime  bool
	paidAmount  float64
	paymentDays int // offset from due date, negative = early
}

func billingHistory(numCycles int, shape func(i, numCycles int) cycleShape) ([]models.BillingCycle, []models.Payment) {
	cycles := make([]models.BillingCycle, 0, numCycles)
	var payments []models.Payment

	cycleStart := time.Now().AddDate(0, -numCycles, 0)
	for i := 0; i < numCycles; i++ {
		cycleEnd := cycleStart.AddDate(0, 1, 0)
		dueDate := cycleEnd.AddDate(0, 0, dueDateGraceDays)

		s := shape(i, numCycles)
		cycleID := newID("cycle")

		paidAmount := s.paidAmount
		if !s.paid {
			paidAmount = 0
		}

		cycles = append(cycles, models.BillingCycle{
			ID:               cycleID,
			StatementStart:   cycleStart,
			StatementEnd:     cycleEnd,
			DueDate:          dueDate,
			StatementBalance: s.balance,
			MinimumDue:       floorMinimum(s.balance),
			PaidAmount:       paidAmount,
			PaidOnTime:       s.paidOnTime,
			IsPaid:           s.paid,
		})

		if s.paid && i < numCycles-1 {
			payments = append(payments, models.Payment{
				ID:             newID("payment"),
				Amount:         s.paidAmount,
				Date:           dueDate.AddDate(0, 0, s.paymentDays),
				Source:         "checking",
				BillingCycleID: cycleID,
			})
		}

		cycleStart = cycleEnd
	}

	return cycles, payments
}

func transactionsForCycles(cycles []models.BillingCycle) []models.Transaction {
	categories := []string{"Groceries", "Dining", "Transportation", "Shopping", "Entertainment", "Utilities"}
	merchants := map[string][]string{
		"Groceries":      {"Whole Foods", "Trader Joes", "Safeway", "Local Market"},
		"Dining":         {"Italian Bistro", "Sushi Restaurant", "Coffee Shop", "Pizza Place"},
		"Transportation": {"Shell", "Chevron", "Uber", "Metro Transit"},
		"Shopping":       {"Amazon", "Target", "Best Buy", "Local Store"},
		"Entertainment":  {"Netflix", "Movie Theater", "Concert Venue", "Gym"},
		"Utilities":      {"Electric Company", "Water Utility", "Internet Provider"},
	}

	var transactions []models.Transaction
	for _, cycle := range cycles {
		numTransactions := rand.Intn(8) + 5
		var total float64

		dayRange := int(cycle.StatementEnd.Sub(cycle.StatementStart).Hours() / 24)
		if dayRange < 1 {
			dayRange = 1
		}

		for i := 0; i < numTransactions && total < cycle.StatementBalance; i++ {
			category := categories[rand.Intn(len(categories))]
			merchantList := merchants[category]
			merchant := merchantList[rand.Intn(len(merchantList))]

			maxAmount := cycle.StatementBalance - total
			if maxAmount > 300 {
				maxAmount = 300
			}
			amount := float64(rand.Intn(int(maxAmount)+1) + 10)

			transactions = append(transactions, models.Transaction{
				ID:          newID("txn"),
				Description: merchant + " Purchase",
				Amount:      amount,
				Date:        cycle.StatementStart.AddDate(0, 0, rand.Intn(dayRange)),
				Merchant:    merchant,
				Category:    category,
			})

			total += amount
		}
	}

	return transactions
}

func floorMinimum(balance float64) float64 {
	return float64(int(balance * minimumDueRate))
}
