package models

// RecoveryTimeline estimates the score at fixed future offsets assuming
// continued good behavior
type RecoveryTimeline struct {
	Days30  int `json:"days30"`
	Days90  int `json:"days90"`
	Days180 int `json:"days180"`
}

// FactorChange identifies the factor a scenario moved the most
type FactorChange struct {
	FactorName  string `json:"factorName"`
	ScoreDelta  int    `json:"scoreDelta"`
	Explanation string `json:"explanation"`
}

// FactorBreakdown carries the full before/after factor detail
type FactorBreakdown struct {
	Current   ScoreResult `json:"current"`
	Projected ScoreResult `json:"projected"`
}

// Projection is the simulator's output: the score before and after a
// hypothetical event, with an explanation of the move
type Projection struct {
	CurrentScore        int               `json:"currentScore"`
	ProjectedScore      int               `json:"projectedScore"`
	ScoreDelta          int               `json:"scoreDelta"`
	FactorAffected      string            `json:"factorAffected"`
	Explanation         string            `json:"explanation"`
	CorrectiveAction    string            `json:"correctiveAction,omitempty"`
	RecoveryTimeline    *RecoveryTimeline `json:"recoveryTimeline,omitempty"`
	LoanRating          *LoanRating       `json:"loanRating,omitempty"`
	FactorBreakdown     *FactorBreakdown  `json:"factorBreakdown,omitempty"`
	PrimaryFactorChange *FactorChange     `json:"primaryFactorChange,omitempty"`
}
