package models

import "time"

// User represents a registered user in the system
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Not serialized
	CreatedAt    time.Time `json:"created_at"`
}

// UserProfile is the learner's app-level profile
type UserProfile struct {
	PandaName         string   `json:"pandaName"`
	CustomerID        string   `json:"customerId"`
	AccountID         string   `json:"accountId"`
	FinancialXP       int      `json:"financialXP"`
	Streak            int      `json:"streak"`
	CompletedMissions []string `json:"completedMissions"`
}
