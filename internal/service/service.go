package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/creditkeeper/creditkeeper/internal/config"
	"github.com/creditkeeper/creditkeeper/internal/integrations/nessie"
	"github.com/creditkeeper/creditkeeper/internal/integrations/rates"
	"github.com/creditkeeper/creditkeeper/internal/loan"
	"github.com/creditkeeper/creditkeeper/internal/models"
	"github.com/creditkeeper/creditkeeper/internal/repository"
	"github.com/creditkeeper/creditkeeper/internal/score"
	"github.com/creditkeeper/creditkeeper/internal/sim"
	"github.com/creditkeeper/creditkeeper/internal/synthetic"
	"github.com/creditkeeper/creditkeeper/internal/utils/email"
)

// reminderWindow is how far ahead of a due date payment reminders go out.
const reminderWindow = 3 * 24 * time.Hour

// Service handles business logic
type Service struct {
	users        repository.UserStore
	profiles     repository.ProfileStore
	userProfiles repository.UserProfileStore
	nessie       *nessie.Client
	rates        *rates.Client
	email        *email.Sender
	log          *logrus.Logger
	config       *config.Config

	missionsMu sync.Mutex
	missions   []models.Mission
}

// NewService initializes a new service
func NewService(
	users repository.UserStore,
	profiles repository.ProfileStore,
	userProfiles repository.UserProfileStore,
	nessieClient *nessie.Client,
	ratesClient *rates.Client,
	sender *email.Sender,
	log *logrus.Logger,
	cfg *config.Config,
) *Service {
	return &Service{
		users:        users,
		profiles:     profiles,
		userProfiles: userProfiles,
		nessie:       nessieClient,
		rates:        ratesClient,
		email:        sender,
		log:          log,
		config:       cfg,
		missions:     defaultMissions(),
	}
}

// IsUsingMockData reports whether external data is mocked
func (s *Service) IsUsingMockData() bool {
	return s.nessie.IsUsingMockData()
}

// GetCustomers lists customers from the external provider
func (s *Service) GetCustomers() ([]models.Customer, error) {
	return s.nessie.GetCustomers()
}

// GetCustomer fetches one customer from the external provider
func (s *Service) GetCustomer(customerID string) (models.Customer, error) {
	return s.nessie.GetCustomer(customerID)
}

// GetAccounts lists a customer's accounts from the external provider
func (s *Service) GetAccounts(customerID string) ([]models.Account, error) {
	return s.nessie.GetAccounts(customerID)
}

// GetAccount fetches one account from the external provider
func (s *Service) GetAccount(accountID string) (models.Account, error) {
	return s.nessie.GetAccount(accountID)
}

// GetTransactions lists an account's purchases from the external provider
func (s *Service) GetTransactions(accountID string) ([]models.Transaction, error) {
	return s.nessie.GetPurchases(accountID)
}

// GetCreditData derives legacy flat credit data for an external account
func (s *Service) GetCreditData(accountID string) (models.CreditData, error) {
	account, err := s.nessie.GetAccount(accountID)
	if err != nil {
		return models.CreditData{}, err
	}
	return score.LegacyCreditData(account, time.Now()), nil
}

// SimulateLegacy runs the legacy heuristic simulator against an external account
func (s *Service) SimulateLegacy(accountID string, scenario models.Scenario) (*models.Projection, error) {
	if err := scenario.Validate(); err != nil {
		return nil, err
	}

	account, err := s.nessie.GetAccount(accountID)
	if err != nil {
		return nil, err
	}
	creditData := score.LegacyCreditData(account, time.Now())

	return sim.NewLegacySimulator(creditData, account).Simulate(scenario)
}

// GenerateSyntheticProfile creates and stores a demo profile of the given type
func (s *Service) GenerateSyntheticProfile(profileType string) (*models.Profile, error) {
	profile, ok := synthetic.Generate(profileType)
	if !ok {
		return nil, fmt.Errorf("invalid profile type %q", profileType)
	}

	if err := s.profiles.Put(profile); err != nil {
		return nil, err
	}

	s.log.Infof("Generated synthetic profile %s (%s)", profile.ID, profileType)
	return profile, nil
}

// GetSyntheticProfile fetches a stored profile by id
func (s *Service) GetSyntheticProfile(profileID string) (*models.Profile, error) {
	return s.profiles.Get(profileID)
}

// ComputeToyScore runs the weighted engine for a stored profile
func (s *Service) ComputeToyScore(profileID string) (models.ScoreResult, error) {
	profile, err := s.profiles.Get(profileID)
	if err != nil {
		return models.ScoreResult{}, err
	}
	return score.NewEngine(profile).ComputeScore(), nil
}

// GetToyScoreCreditData converts the weighted result into the legacy credit
// data shape consumed by older screens
func (s *Service) GetToyScoreCreditData(profileID string) (models.CreditData, error) {
	toy, err := s.ComputeToyScore(profileID)
	if err != nil {
		return models.CreditData{}, err
	}
	return toyScoreToCreditData(toy), nil
}

// SimulateToy projects a scenario against a stored profile with the weighted
// engine
func (s *Service) SimulateToy(profileID string, scenario models.Scenario) (*models.Projection, error) {
	profile, err := s.profiles.Get(profileID)
	if err != nil {
		return nil, err
	}
	return sim.NewProjector(profile).Simulate(scenario)
}

// RateLoan classifies a loan's affordability. When a profile id is supplied,
// current debt and income come from the stored profile; a stated income on
// the scenario wins, and the documented assumed income is the last resort.
func (s *Service) RateLoan(l models.LoanScenario, profileID string) (models.LoanRating, error) {
	if err := l.Validate(); err != nil {
		return models.LoanRating{}, err
	}

	var currentDebt float64
	income := l.MonthlyIncome
	assumed := false

	if profileID != "" {
		profile, err := s.profiles.Get(profileID)
		if err != nil {
			return models.LoanRating{}, err
		}
		if last := profile.LastBillingCycle(); last != nil {
			currentDebt = last.MinimumDue
		}
		if income <= 0 {
			income = score.MonthlyIncome(profile, time.Now())
		}
	}
	if income <= 0 {
		income = loan.DefaultAssumedMonthlyIncome
		assumed = true
	}

	rating := loan.Rate(l, currentDebt, income)
	rating.IncomeAssumed = assumed

	s.annotateWithBenchmark(&rating, l.APR)
	return rating, nil
}

// annotateWithBenchmark adds a rate-shopping hint when the requested APR is
// above the current reference rate. Best effort: a fixed benchmark stands in
// when the rate service is unreachable.
func (s *Service) annotateWithBenchmark(rating *models.LoanRating, apr float64) {
	if s.rates == nil {
		return
	}

	benchmark, err := s.rates.BenchmarkRate()
	if err != nil {
		s.log.Debugf("Benchmark rate unavailable, using fallback: %v", err)
		benchmark = rates.FallbackBenchmarkRate
	}

	if apr > benchmark {
		rating.Suggestions = append(rating.Suggestions,
			fmt.Sprintf("Benchmark consumer rate is around %.1f%% - your %.1f%% APR leaves room to shop", benchmark, apr))
	}
}

// BenchmarkRate returns the current reference consumer rate
func (s *Service) BenchmarkRate() (float64, error) {
	if s.rates == nil {
		return rates.FallbackBenchmarkRate, nil
	}
	rate, err := s.rates.BenchmarkRate()
	if err != nil {
		s.log.Debugf("Benchmark rate unavailable, using fallback: %v", err)
		return rates.FallbackBenchmarkRate, nil
	}
	return rate, nil
}

// GetUserProfile fetches a learner profile
func (s *Service) GetUserProfile(customerID string) (*models.UserProfile, error) {
	return s.userProfiles.Get(customerID)
}

// SaveUserProfile stores a learner profile
func (s *Service) SaveUserProfile(profile *models.UserProfile) error {
	return s.userProfiles.Put(profile)
}

// SendDueReminders emails owners of stored profiles whose latest statement is
// unpaid and due within the reminder window, or already overdue
func (s *Service) SendDueReminders() {
	if s.email == nil || !s.email.Enabled() {
		return
	}

	profiles, err := s.profiles.List()
	if err != nil {
		s.log.Errorf("Failed to list profiles for reminders: %v", err)
		return
	}

	now := time.Now()
	for _, profile := range profiles {
		if profile.OwnerEmail == "" {
			continue
		}
		last := profile.LastBillingCycle()
		if last == nil || last.IsPaid {
			continue
		}

		overdue := last.DueDate.Before(now)
		dueSoon := !overdue && last.DueDate.Sub(now) <= reminderWindow
		if !overdue && !dueSoon {
			continue
		}

		if err := s.email.SendPaymentReminder(profile.OwnerEmail, profile.Name, last.DueDate, last.MinimumDue, overdue); err != nil {
			s.log.Errorf("Failed to send reminder for profile %s: %v", profile.ID, err)
		}
	}
}

// toyScoreToCreditData maps the weighted result onto the legacy credit data
// shape. The legacy credit-limit slot carries the DTI proxy, matching what
// older consumers expect.
func toyScoreToCreditData(toy models.ScoreResult) models.CreditData {
	utilizationValue := toy.Factors.Utilization.Score
	if toy.Factors.Utilization.Value != nil {
		utilizationValue = *toy.Factors.Utilization.Value
	}

	return models.CreditData{
		Score:       toy.FinalScore,
		HealthLevel: toy.HealthLevel,
		Factors: models.CreditFactors{
			PaymentHistory: models.CreditFactor{
				Name:        toy.Factors.PaymentHistory.Name,
				Value:       toy.Factors.PaymentHistory.Score,
				Status:      toy.Factors.PaymentHistory.Status,
				Explanation: toy.Factors.PaymentHistory.Explanation,
			},
			Utilization: models.CreditFactor{
				Name:        toy.Factors.Utilization.Name,
				Value:       utilizationValue,
				Status:      toy.Factors.Utilization.Status,
				Explanation: toy.Factors.Utilization.Explanation,
			},
			CreditLimit: models.CreditFactor{
				Name:        toy.Factors.DebtToIncome.Name,
				Value:       toy.Factors.DebtToIncome.Score,
				Status:      toy.Factors.DebtToIncome.Status,
				Explanation: toy.Factors.DebtToIncome.Explanation,
			},
			AccountAge: models.CreditFactor{
				Name:        toy.Factors.HistoryLength.Name,
				Value:       toy.Factors.HistoryLength.Score,
				Status:      toy.Factors.HistoryLength.Status,
				Explanation: toy.Factors.HistoryLength.Explanation,
			},
		},
		LastUpdated: toy.LastUpdated,
	}
}
