package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/creditkeeper/creditkeeper/internal/models"
	"github.com/creditkeeper/creditkeeper/internal/repository"
	"github.com/creditkeeper/creditkeeper/internal/service"
)

// Handler exposes the HTTP API
type Handler struct {
	svc *service.Service
	log *logrus.Logger
}

// NewHandler initializes a new handler
func NewHandler(svc *service.Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.log.Errorf("Failed to encode response: %v", err)
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// Register handles user registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		h.respondError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := h.svc.Register(req.Username, req.Email, req.Password)
	if err != nil {
		h.log.Errorf("Error in /register: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}
	h.respondJSON(w, http.StatusCreated, user)
}

// Login handles user authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, err := h.svc.Login(req.Email, req.Password)
	if err != nil {
		h.respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"token": token})
}

// Health reports service status and whether external data is mocked
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":       "ok",
		"mockDataMode": h.svc.IsUsingMockData(),
	})
}

// GetCustomers lists customers
func (h *Handler) GetCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.svc.GetCustomers()
	if err != nil {
		h.log.Errorf("Error in /api/customers: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to fetch customers")
		return
	}
	h.respondJSON(w, http.StatusOK, customers)
}

// GetCustomer fetches one customer
func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customer, err := h.svc.GetCustomer(mux.Vars(r)["customerId"])
	if err != nil {
		h.log.Errorf("Error in /api/customers/{customerId}: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to fetch customer")
		return
	}
	h.respondJSON(w, http.StatusOK, customer)
}

// GetAccounts lists a customer's accounts
func (h *Handler) GetAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.svc.GetAccounts(mux.Vars(r)["customerId"])
	if err != nil {
		h.log.Errorf("Error in /api/customers/{customerId}/accounts: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to fetch accounts")
		return
	}
	h.respondJSON(w, http.StatusOK, accounts)
}

// GetAccount fetches one account
func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	account, err := h.svc.GetAccount(mux.Vars(r)["accountId"])
	if err != nil {
		h.log.Errorf("Error in /api/accounts/{accountId}: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to fetch account")
		return
	}
	h.respondJSON(w, http.StatusOK, account)
}

// GetTransactions lists an account's purchases
func (h *Handler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.svc.GetTransactions(mux.Vars(r)["accountId"])
	if err != nil {
		h.log.Errorf("Error in /api/accounts/{accountId}/transactions: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to fetch transactions")
		return
	}
	h.respondJSON(w, http.StatusOK, transactions)
}

// GetCreditData returns legacy flat credit data for an account
func (h *Handler) GetCreditData(w http.ResponseWriter, r *http.Request) {
	creditData, err := h.svc.GetCreditData(mux.Vars(r)["accountId"])
	if err != nil {
		h.log.Errorf("Error in /api/accounts/{accountId}/credit: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to fetch credit data")
		return
	}
	h.respondJSON(w, http.StatusOK, creditData)
}

// SimulateLegacy runs the legacy heuristic simulator
func (h *Handler) SimulateLegacy(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AccountID string          `json:"accountId"`
		Scenario  models.Scenario `json:"scenario"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.AccountID == "" || req.Scenario.Type == "" {
		h.respondError(w, http.StatusBadRequest, "accountId and scenario are required")
		return
	}
	if err := req.Scenario.Validate(); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.svc.SimulateLegacy(req.AccountID, req.Scenario)
	if err != nil {
		if errors.Is(err, models.ErrUnknownScenario) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.log.Errorf("Error in /api/simulate: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to simulate scenario")
		return
	}
	h.respondJSON(w, http.StatusOK, result)
}

// ListMissions returns all educational missions
func (h *Handler) ListMissions(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.svc.ListMissions())
}

// CompleteMission marks one mission completed
func (h *Handler) CompleteMission(w http.ResponseWriter, r *http.Request) {
	mission, err := h.svc.CompleteMission(mux.Vars(r)["missionId"])
	if err != nil {
		h.respondError(w, http.StatusNotFound, "Mission not found")
		return
	}
	h.respondJSON(w, http.StatusOK, mission)
}

// GetUserProfile fetches a learner profile
func (h *Handler) GetUserProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.svc.GetUserProfile(mux.Vars(r)["customerId"])
	if err != nil {
		h.respondError(w, http.StatusNotFound, "Profile not found")
		return
	}
	h.respondJSON(w, http.StatusOK, profile)
}

// SaveUserProfile stores a learner profile
func (h *Handler) SaveUserProfile(w http.ResponseWriter, r *http.Request) {
	var profile models.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if profile.CustomerID == "" {
		h.respondError(w, http.StatusBadRequest, "customerId is required")
		return
	}

	if err := h.svc.SaveUserProfile(&profile); err != nil {
		h.log.Errorf("Error in POST /api/profile: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to save profile")
		return
	}
	h.respondJSON(w, http.StatusOK, profile)
}

// UpdateUserProfile merges partial updates into an existing learner profile.
// Decoding the body over the stored value only touches supplied fields.
func (h *Handler) UpdateUserProfile(w http.ResponseWriter, r *http.Request) {
	customerID := mux.Vars(r)["customerId"]

	existing, err := h.svc.GetUserProfile(customerID)
	if err != nil {
		h.respondError(w, http.StatusNotFound, "Profile not found")
		return
	}

	if err := json.NewDecoder(r.Body).Decode(existing); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	existing.CustomerID = customerID

	if err := h.svc.SaveUserProfile(existing); err != nil {
		h.log.Errorf("Error in PUT /api/profile/{customerId}: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}
	h.respondJSON(w, http.StatusOK, existing)
}

// GenerateSynthetic creates a demo profile of the requested type
func (h *Handler) GenerateSynthetic(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type string `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	profile, err := h.svc.GenerateSyntheticProfile(req.Type)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, `Invalid type. Must be "excellent", "healthy", "risky", or "poor"`)
		return
	}
	h.respondJSON(w, http.StatusOK, profile)
}

// GetSynthetic fetches a stored demo profile
func (h *Handler) GetSynthetic(w http.ResponseWriter, r *http.Request) {
	profile, err := h.svc.GetSyntheticProfile(mux.Vars(r)["profileId"])
	if err != nil {
		h.respondError(w, http.StatusNotFound, "Synthetic profile not found")
		return
	}
	h.respondJSON(w, http.StatusOK, profile)
}

// GetToyScore computes the weighted score for a stored profile
func (h *Handler) GetToyScore(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ComputeToyScore(mux.Vars(r)["profileId"])
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.respondError(w, http.StatusNotFound, "Synthetic profile not found")
			return
		}
		h.log.Errorf("Error in /api/toyscore/{profileId}: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to compute toy score")
		return
	}
	h.respondJSON(w, http.StatusOK, result)
}

// GetToyScoreCreditData returns the weighted score in the legacy credit shape
func (h *Handler) GetToyScoreCreditData(w http.ResponseWriter, r *http.Request) {
	creditData, err := h.svc.GetToyScoreCreditData(mux.Vars(r)["profileId"])
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.respondError(w, http.StatusNotFound, "Synthetic profile not found")
			return
		}
		h.log.Errorf("Error in /api/toyscore/{profileId}/credit: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to get credit data")
		return
	}
	h.respondJSON(w, http.StatusOK, creditData)
}

// SimulateToy projects a scenario against a stored profile
func (h *Handler) SimulateToy(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProfileID string          `json:"profileId"`
		Scenario  models.Scenario `json:"scenario"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ProfileID == "" || req.Scenario.Type == "" {
		h.respondError(w, http.StatusBadRequest, "profileId and scenario are required")
		return
	}
	if err := req.Scenario.Validate(); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.svc.SimulateToy(req.ProfileID, req.Scenario)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.respondError(w, http.StatusNotFound, "Synthetic profile not found")
			return
		}
		h.log.Errorf("Error in /api/toyscore/simulate: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to simulate scenario")
		return
	}
	h.respondJSON(w, http.StatusOK, result)
}

// RateLoan classifies a loan's affordability
func (h *Handler) RateLoan(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProfileID string              `json:"profileId"`
		Loan      models.LoanScenario `json:"loan"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Loan.Validate(); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	rating, err := h.svc.RateLoan(req.Loan, req.ProfileID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.respondError(w, http.StatusNotFound, "Synthetic profile not found")
			return
		}
		h.log.Errorf("Error in /api/loans/rate: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to rate loan")
		return
	}
	h.respondJSON(w, http.StatusOK, rating)
}

// GetBenchmarkRate returns the current reference consumer rate
func (h *Handler) GetBenchmarkRate(w http.ResponseWriter, r *http.Request) {
	rate, err := h.svc.BenchmarkRate()
	if err != nil {
		h.log.Errorf("Error in /api/rates/benchmark: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to fetch benchmark rate")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]float64{"benchmarkRate": rate})
}
