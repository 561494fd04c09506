package models

import (
	"errors"
	"fmt"
)

// ScenarioType discriminates the hypothetical events the simulator can apply
type ScenarioType string

const (
	ScenarioPurchase          ScenarioType = "purchase"
	ScenarioMissedPayment     ScenarioType = "missed_payment"
	ScenarioPayDown           ScenarioType = "pay_down"
	ScenarioReplayTransaction ScenarioType = "replay_transaction"
	ScenarioNewLoan           ScenarioType = "new_loan"
)

// ErrUnknownScenario is returned when a scenario tag is not recognized.
// Dispatch over scenarios is exhaustive; there is no silent default branch.
var ErrUnknownScenario = errors.New("unknown scenario type")

// Scenario is the tagged union describing one hypothetical event.
// Only the fields relevant to Type are read.
type Scenario struct {
	Type          ScenarioType  `json:"type"`
	Amount        float64       `json:"amount,omitempty"`
	PaymentAmount float64       `json:"paymentAmount,omitempty"`
	TransactionID string        `json:"transactionId,omitempty"`
	Merchant      string        `json:"merchant,omitempty"`
	Category      string        `json:"category,omitempty"`
	Loan          *LoanScenario `json:"loan,omitempty"`
}

// Validate rejects structurally invalid scenarios before they reach the
// scoring math. A validation failure is a caller contract violation, not a
// computation failure.
func (s Scenario) Validate() error {
	switch s.Type {
	case ScenarioPurchase, ScenarioReplayTransaction:
		if s.Amount < 0 {
			return fmt.Errorf("scenario %s: amount must not be negative", s.Type)
		}
	case ScenarioMissedPayment:
		// No payload.
	case ScenarioPayDown:
		if s.PaymentAmount < 0 {
			return fmt.Errorf("scenario %s: payment amount must not be negative", s.Type)
		}
	case ScenarioNewLoan:
		if s.Loan == nil {
			return fmt.Errorf("scenario %s: loan terms are required", s.Type)
		}
		if err := s.Loan.Validate(); err != nil {
			return fmt.Errorf("scenario %s: %w", s.Type, err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownScenario, s.Type)
	}
	return nil
}
