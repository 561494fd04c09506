package main

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/creditkeeper/creditkeeper/internal/config"
	"github.com/creditkeeper/creditkeeper/internal/handler"
	"github.com/creditkeeper/creditkeeper/internal/integrations/nessie"
	"github.com/creditkeeper/creditkeeper/internal/integrations/rates"
	"github.com/creditkeeper/creditkeeper/internal/middleware"
	"github.com/creditkeeper/creditkeeper/internal/repository"
	"github.com/creditkeeper/creditkeeper/internal/service"
	"github.com/creditkeeper/creditkeeper/internal/utils/email"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Initialize stores. DB_CONN is optional; without it everything lives in
	// memory, matching demo usage.
	var (
		users        repository.UserStore
		profiles     repository.ProfileStore
		userProfiles repository.UserProfileStore
	)
	if cfg.DBConn != "" {
		db, err := sql.Open("postgres", cfg.DBConn)
		if err != nil {
			logger.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			logger.Fatalf("Failed to ping database: %v", err)
		}
		if err := repository.Migrate(db); err != nil {
			logger.Fatalf("Failed to run migrations: %v", err)
		}
		users = repository.NewPostgresUserStore(db)
		profiles = repository.NewPostgresProfileStore(db)
		userProfiles = repository.NewPostgresUserProfileStore(db)
		logger.Info("Using Postgres stores")
	} else {
		users = repository.NewMemoryUserStore()
		profiles = repository.NewMemoryProfileStore()
		userProfiles = repository.NewMemoryUserProfileStore()
		logger.Info("Using in-memory stores")
	}

	// Initialize layers
	nessieClient := nessie.NewClient(cfg, logger)
	ratesClient := rates.NewClient(cfg, logger)
	sender := email.NewSender(cfg, logger)
	svc := service.NewService(users, profiles, userProfiles, nessieClient, ratesClient, sender, logger, cfg)
	h := handler.NewHandler(svc, logger)

	if nessieClient.IsUsingMockData() {
		logger.Warn("Using demo data - set NESSIE_API_KEY for real data")
	}

	// Payment reminder job
	c := cron.New()
	if _, err := c.AddFunc(cfg.ReminderCron, svc.SendDueReminders); err != nil {
		logger.Fatalf("Failed to schedule reminder job: %v", err)
	}
	c.Start()
	defer c.Stop()

	// Setup router
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	r.HandleFunc("/api/health", h.Health).Methods("GET")
	r.HandleFunc("/api/customers", h.GetCustomers).Methods("GET")
	r.HandleFunc("/api/customers/{customerId}", h.GetCustomer).Methods("GET")
	r.HandleFunc("/api/customers/{customerId}/accounts", h.GetAccounts).Methods("GET")
	r.HandleFunc("/api/accounts/{accountId}", h.GetAccount).Methods("GET")
	r.HandleFunc("/api/accounts/{accountId}/transactions", h.GetTransactions).Methods("GET")
	r.HandleFunc("/api/accounts/{accountId}/credit", h.GetCreditData).Methods("GET")
	r.HandleFunc("/api/missions", h.ListMissions).Methods("GET")
	r.HandleFunc("/api/rates/benchmark", h.GetBenchmarkRate).Methods("GET")
	// Protected routes
	authRouter := r.PathPrefix("/api").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/simulate", h.SimulateLegacy).Methods("POST")
	authRouter.HandleFunc("/missions/{missionId}/complete", h.CompleteMission).Methods("POST")
	authRouter.HandleFunc("/profile", h.SaveUserProfile).Methods("POST")
	authRouter.HandleFunc("/profile/{customerId}", h.GetUserProfile).Methods("GET")
	authRouter.HandleFunc("/profile/{customerId}", h.UpdateUserProfile).Methods("PUT")
	authRouter.HandleFunc("/synthetic/generate", h.GenerateSynthetic).Methods("POST")
	authRouter.HandleFunc("/synthetic/{profileId}", h.GetSynthetic).Methods("GET")
	authRouter.HandleFunc("/toyscore/simulate", h.SimulateToy).Methods("POST")
	authRouter.HandleFunc("/toyscore/{profileId}", h.GetToyScore).Methods("GET")
	authRouter.HandleFunc("/toyscore/{profileId}/credit", h.GetToyScoreCreditData).Methods("GET")
	authRouter.HandleFunc("/loans/rate", h.RateLoan).Methods("POST")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
