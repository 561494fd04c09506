package nessie

import (
	"time"

	"github.com/creditkeeper/creditkeeper/internal/models"
)

// Mock data served when no API key is configured or the provider is down.

// MockCustomer returns the demo customer
func MockCustomer() models.Customer {
	return models.Customer{
		ID:        "mock-customer-1",
		FirstName: "Alex",
		LastName:  "Chen",
		Address: models.Address{
			StreetNumber: "123",
			StreetName:   "Main St",
			City:         "San Francisco",
			State:        "CA",
			Zip:          "94102",
		},
	}
}

// MockAccount returns the demo credit card account at 24% utilization
func MockAccount() models.Account {
	return models.Account{
		ID:          "mock-account-1",
		Type:        "Credit Card",
		Balance:     1200,
		CreditLimit: 5000,
		Nickname:    "Capital One Quicksilver",
	}
}

// MockTransactions returns a handful of recent demo purchases
func MockTransactions() []models.Transaction {
	now := time.Now()
	return []models.Transaction{
		{
			ID:          "txn-1",
			Description: "Grocery Store Purchase",
			Amount:      87.43,
			Date:        now.AddDate(0, 0, -2),
			Merchant:    "Whole Foods",
			Category:    "Groceries",
		},
		{
			ID:          "txn-2",
			Description: "Gas Station",
			Amount:      45.20,
			Date:        now.AddDate(0, 0, -5),
			Merchant:    "Shell",
			Category:    "Transportation",
		},
		{
			ID:          "txn-3",
			Description: "Restaurant",
			Amount:      62.50,
			Date:        now.AddDate(0, 0, -7),
			Merchant:    "Italian Bistro",
			Category:    "Dining",
		},
		{
			ID:          "txn-4",
			Description: "Online Shopping",
			Amount:      156.78,
			Date:        now.AddDate(0, 0, -10),
			Merchant:    "Amazon",
			Category:    "Shopping",
		},
		{
			ID:          "txn-5",
			Description: "Coffee Shop",
			Amount:      5.75,
			Date:        now.AddDate(0, 0, -1),
			Merchant:    "Local Cafe",
			Category:    "Dining",
		},
	}
}
