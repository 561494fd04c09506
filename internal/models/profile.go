package models

import "time"

// Deposit types recognized when deriving monthly income.
const (
	DepositPaycheck = "paycheck"
	DepositOther    = "other"
)

// CreditCardAccount represents the revolving credit account being scored
type CreditCardAccount struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Balance     float64   `json:"balance"`
	CreditLimit float64   `json:"creditLimit,omitempty"`
	Nickname    string    `json:"nickname,omitempty"`
	APR         float64   `json:"apr"`
	OpenDate    time.Time `json:"openDate"`
	Status      string    `json:"status"`
}

// Deposit is a dated inflow on the checking account
type Deposit struct {
	ID          string    `json:"id"`
	Amount      float64   `json:"amount"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
}

// CheckingAccount supplies the income signal for the DTI proxy
type CheckingAccount struct {
	ID       string    `json:"id"`
	Balance  float64   `json:"balance"`
	Deposits []Deposit `json:"deposits"`
}

// BillingCycle is one statement period with its payment outcome.
// Cycles are ordered chronologically, most recent last.
type BillingCycle struct {
	ID               string    `json:"id"`
	StatementStart   time.Time `json:"statementStart"`
	StatementEnd     time.Time `json:"statementEnd"`
	DueDate          time.Time `json:"dueDate"`
	StatementBalance float64   `json:"statementBalance"`
	MinimumDue       float64   `json:"minimumDue"`
	PaidAmount       float64   `json:"paidAmount"`
	PaidOnTime       bool      `json:"paidOnTime"`
	IsPaid           bool      `json:"isPaid"`
}

// Payment links an amount and date to a billing cycle
type Payment struct {
	ID             string    `json:"id"`
	Amount         float64   `json:"amount"`
	Date           time.Time `json:"date"`
	Source         string    `json:"source"`
	BillingCycleID string    `json:"billingCycleId"`
}

// Profile is the financial snapshot the scoring engine operates on
type Profile struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Type          string            `json:"type"`
	OwnerEmail    string            `json:"ownerEmail,omitempty"`
	CreditCard    CreditCardAccount `json:"creditCardAccount"`
	Checking      *CheckingAccount  `json:"checkingAccount,omitempty"`
	Transactions  []Transaction     `json:"transactions"`
	BillingCycles []BillingCycle    `json:"billingCycles"`
	Payments      []Payment         `json:"payments"`
	CreatedAt     time.Time         `json:"createdAt"`
}

// Clone returns a structural deep copy of the profile. The simulator mutates
// the copy and rescores it, so the original must never share slices with it.
func (p *Profile) Clone() *Profile {
	c := *p

	if p.Checking != nil {
		checking := *p.Checking
		checking.Deposits = append([]Deposit(nil), p.Checking.Deposits...)
		c.Checking = &checking
	}
	c.Transactions = append([]Transaction(nil), p.Transactions...)
	c.BillingCycles = append([]BillingCycle(nil), p.BillingCycles...)
	c.Payments = append([]Payment(nil), p.Payments...)

	return &c
}

// LastBillingCycle returns a pointer to the most recent cycle, or nil
func (p *Profile) LastBillingCycle() *BillingCycle {
	if len(p.BillingCycles) == 0 {
		return nil
	}
	return &p.BillingCycles[len(p.BillingCycles)-1]
}
