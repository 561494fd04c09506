package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScenarioValidate(t *testing.T) {
	tests := []struct {
		name     string
		scenario Scenario
		wantErr  bool
	}{
		{"purchase", Scenario{Type: ScenarioPurchase, Amount: 100}, false},
		{"zero purchase", Scenario{Type: ScenarioPurchase}, false},
		{"negative purchase", Scenario{Type: ScenarioPurchase, Amount: -1}, true},
		{"replay", Scenario{Type: ScenarioReplayTransaction, Amount: 50, TransactionID: "t1"}, false},
		{"missed payment", Scenario{Type: ScenarioMissedPayment}, false},
		{"pay down", Scenario{Type: ScenarioPayDown, PaymentAmount: 500}, false},
		{"negative pay down", Scenario{Type: ScenarioPayDown, PaymentAmount: -500}, true},
		{"new loan", Scenario{Type: ScenarioNewLoan, Loan: &LoanScenario{LoanType: LoanAuto, Amount: 10000, TermMonths: 48, APR: 6}}, false},
		{"new loan without terms", Scenario{Type: ScenarioNewLoan}, true},
		{"empty type", Scenario{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.scenario.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestScenarioValidateUnknownType(t *testing.T) {
	err := Scenario{Type: "windfall"}.Validate()
	assert.ErrorIs(t, err, ErrUnknownScenario)
}

func TestLoanScenarioValidate(t *testing.T) {
	valid := LoanScenario{LoanType: LoanPersonal, Amount: 5000, TermMonths: 36, APR: 10}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name string
		loan LoanScenario
	}{
		{"unknown type", LoanScenario{LoanType: "mortgage", Amount: 5000, TermMonths: 36, APR: 10}},
		{"zero amount", LoanScenario{LoanType: LoanAuto, TermMonths: 36, APR: 10}},
		{"negative amount", LoanScenario{LoanType: LoanAuto, Amount: -5, TermMonths: 36, APR: 10}},
		{"zero term", LoanScenario{LoanType: LoanAuto, Amount: 5000, APR: 10}},
		{"negative APR", LoanScenario{LoanType: LoanAuto, Amount: 5000, TermMonths: 36, APR: -1}},
		{"negative income", LoanScenario{LoanType: LoanAuto, Amount: 5000, TermMonths: 36, APR: 10, MonthlyIncome: -100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.loan.Validate())
		})
	}
}
