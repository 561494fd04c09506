package service

import (
	"github.com/creditkeeper/creditkeeper/internal/models"
	"github.com/creditkeeper/creditkeeper/internal/repository"
)

// ListMissions returns all educational missions
func (s *Service) ListMissions() []models.Mission {
	s.missionsMu.Lock()
	defer s.missionsMu.Unlock()

	out := make([]models.Mission, len(s.missions))
	copy(out, s.missions)
	return out
}

// CompleteMission marks a mission as completed and returns it
func (s *Service) CompleteMission(missionID string) (*models.Mission, error) {
	s.missionsMu.Lock()
	defer s.missionsMu.Unlock()

	for i := range s.missions {
		if s.missions[i].ID == missionID {
			s.missions[i].Completed = true
			mission := s.missions[i]
			return &mission, nil
		}
	}
	return nil, repository.ErrNotFound
}

func defaultMissions() []models.Mission {
	return []models.Mission{
		{
			ID:            "mission-1",
			Title:         "Understanding Credit Utilization",
			Description:   "Calculate your credit utilization percentage",
			XPReward:      100,
			Scenario:      "Your credit card has a $5,000 limit and you have a $1,200 balance. What is your utilization?",
			CorrectAnswer: "24%",
			Choices:       []string{"15%", "20%", "24%", "30%"},
		},
		{
			ID:            "mission-2",
			Title:         "Payment History Basics",
			Description:   "Which factor has the biggest impact on your credit score?",
			XPReward:      100,
			Scenario:      "Different factors contribute to your credit score. Which one matters most?",
			CorrectAnswer: "Payment History",
			Choices:       []string{"Credit Utilization", "Payment History", "Account Age", "Credit Mix"},
		},
		{
			ID:            "mission-3",
			Title:         "Credit Limit Increase",
			Description:   "How does a credit limit increase affect your utilization?",
			XPReward:      150,
			Scenario:      "If your limit increases from $5,000 to $10,000 and your balance stays at $1,500, what happens to your utilization?",
			CorrectAnswer: "It decreases from 30% to 15%",
			Choices: []string{
				"It stays the same at 30%",
				"It decreases from 30% to 15%",
				"It increases to 50%",
				"It has no effect on credit score",
			},
		},
		{
			ID:            "mission-4",
			Title:         "The Cost of Missing Payments",
			Description:   "Learn why on-time payments are critical",
			XPReward:      200,
			Scenario:      "A single missed payment can have serious consequences. How much can it drop your score?",
			CorrectAnswer: "60-110 points",
			Choices:       []string{"10-20 points", "30-40 points", "60-110 points", "150-200 points"},
		},
		{
			ID:            "mission-5",
			Title:         "Smart Spending Strategy",
			Description:   "Learn when to make purchases",
			XPReward:      150,
			Scenario:      "When is the best time to make a large purchase to minimize immediate impact on your reported utilization?",
			CorrectAnswer: "Right after your statement closes",
			Choices: []string{
				"Right before your statement closes",
				"Right after your statement closes",
				"On the due date",
				"It doesn't matter when",
			},
		},
		{
			ID:            "mission-6",
			Title:         "Recovery Timeline",
			Description:   "Understand credit recovery",
			XPReward:      150,
			Scenario:      "After a negative event, how long does it typically take to see score improvement with responsible behavior?",
			CorrectAnswer: "3-6 months",
			Choices:       []string{"1-2 weeks", "1 month", "3-6 months", "2-3 years"},
		},
		{
			ID:            "mission-7",
			Title:         "Multiple Cards Strategy",
			Description:   "Learn about spreading utilization",
			XPReward:      200,
			Scenario:      "You need to carry a $3,000 balance. Which strategy is better for your credit score?",
			CorrectAnswer: "Spread $1,000 across three cards",
			Choices: []string{
				"Put all $3,000 on one card",
				"Spread $1,000 across three cards",
				"Split $1,500 between two cards",
				"It makes no difference",
			},
		},
	}
}
