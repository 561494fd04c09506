package models

// Mission is one educational quiz item
type Mission struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	XPReward      int      `json:"xpReward"`
	Completed     bool     `json:"completed"`
	Scenario      string   `json:"scenario,omitempty"`
	CorrectAnswer string   `json:"correctAnswer,omitempty"`
	Choices       []string `json:"choices,omitempty"`
}
