package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/mkral/budget-planner/internal/config"
	"github.com/mkral/budget-planner/internal/handler"
	"github.com/mkral/budget-planner/internal/integrations/rates"
	"github.com/mkral/budget-planner/internal/middleware"
	"github.com/mkral/budget-planner/internal/scheduler"
	"github.com/mkral/budget-planner/internal/service"
	"github.com/mkral/budget-planner/internal/storage"
	"github.com/mkral/budget-planner/internal/storage/memory"
	"github.com/mkral/budget-planner/internal/storage/postgres"
	"github.com/mkral/budget-planner/internal/utils/email"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize storage
	var store storage.Store
	switch cfg.Storage {
	case "postgres":
		db, err := sql.Open("postgres", cfg.DBConn)
		if err != nil {
			logger.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			logger.Fatalf("Failed to ping database: %v", err)
		}
		store, err = postgres.New(db)
		if err != nil {
			logger.Fatalf("Failed to initialize database schema: %v", err)
		}
	case "memory":
		store = memory.New()
		logger.Warn("Using in-memory storage, data is lost on restart")
	default:
		logger.Fatalf("Unknown storage backend: %s", cfg.Storage)
	}

	// Initialize layers
	svc, err := service.NewService(store, logger, cfg)
	if err != nil {
		logger.Fatalf("Failed to initialize service: %v", err)
	}
	h := handler.NewHandler(svc, logger)
	ratesClient := rates.NewClient(cfg, logger)

	// Background jobs
	var sender *email.Sender
	if cfg.AlertsEnabled() {
		sender = email.NewSender(cfg, logger)
	}
	sched := scheduler.New(svc, sender, cfg, logger)
	if err := sched.Start(); err != nil {
		logger.Fatalf("Failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Setup router
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	// Central bank key rate endpoint
	r.HandleFunc("/key-rate", func(w http.ResponseWriter, req *http.Request) {
		rate, err := ratesClient.EstimateMortgageRate()
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to get key rate: %v", err), http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]float64{"mortgage_rate": rate})
	}).Methods("GET")

	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))

	authRouter.HandleFunc("/members", h.CreateMember).Methods("POST")
	authRouter.HandleFunc("/members", h.ListMembers).Methods("GET")
	authRouter.HandleFunc("/members/{id}", h.UpdateMember).Methods("PUT")
	authRouter.HandleFunc("/members/{id}", h.DeleteMember).Methods("DELETE")

	authRouter.HandleFunc("/incomes", h.CreateIncome).Methods("POST")
	authRouter.HandleFunc("/incomes", h.ListIncomes).Methods("GET")
	authRouter.HandleFunc("/incomes/{id}", h.UpdateIncome).Methods("PUT")
	authRouter.HandleFunc("/incomes/{id}", h.DeleteIncome).Methods("DELETE")

	authRouter.HandleFunc("/banks", h.CreateBank).Methods("POST")
	authRouter.HandleFunc("/banks", h.ListBanks).Methods("GET")
	authRouter.HandleFunc("/banks/{id}", h.UpdateBank).Methods("PUT")
	authRouter.HandleFunc("/banks/{id}", h.DeleteBank).Methods("DELETE")

	authRouter.HandleFunc("/accounts", h.CreateAccount).Methods("POST")
	authRouter.HandleFunc("/accounts", h.ListAccounts).Methods("GET")
	authRouter.HandleFunc("/accounts/{id}", h.UpdateAccount).Methods("PUT")
	authRouter.HandleFunc("/accounts/{id}", h.DeleteAccount).Methods("DELETE")

	authRouter.HandleFunc("/transfers", h.CreateTransfer).Methods("POST")
	authRouter.HandleFunc("/transfers", h.ListTransfers).Methods("GET")
	authRouter.HandleFunc("/transfers/{id}", h.UpdateTransfer).Methods("PUT")
	authRouter.HandleFunc("/transfers/{id}", h.DeleteTransfer).Methods("DELETE")

	authRouter.HandleFunc("/expenses", h.CreateExpense).Methods("POST")
	authRouter.HandleFunc("/expenses", h.ListExpenses).Methods("GET")
	authRouter.HandleFunc("/expenses/{id}", h.UpdateExpense).Methods("PUT")
	authRouter.HandleFunc("/expenses/{id}", h.DeleteExpense).Methods("DELETE")

	authRouter.HandleFunc("/budgets", h.CreateBudget).Methods("POST")
	authRouter.HandleFunc("/budgets", h.ListBudgets).Methods("GET")
	authRouter.HandleFunc("/budgets/{id}", h.UpdateBudget).Methods("PUT")
	authRouter.HandleFunc("/budgets/{id}", h.DeleteBudget).Methods("DELETE")

	authRouter.HandleFunc("/goals", h.CreateGoal).Methods("POST")
	authRouter.HandleFunc("/goals", h.ListGoals).Methods("GET")
	authRouter.HandleFunc("/goals/{id}", h.GetGoal).Methods("GET")
	authRouter.HandleFunc("/goals/{id}", h.UpdateGoal).Methods("PUT")
	authRouter.HandleFunc("/goals/{id}", h.DeleteGoal).Methods("DELETE")
	authRouter.HandleFunc("/goals/{id}/contribute", h.ContributeFund).Methods("POST")
	authRouter.HandleFunc("/goals/{id}/withdraw", h.WithdrawFund).Methods("POST")
	authRouter.HandleFunc("/goals/{id}/plan", h.GetPlan).Methods("GET")
	authRouter.HandleFunc("/goals/{id}/plan", h.SavePlan).Methods("PUT")
	authRouter.HandleFunc("/plans", h.ListPlans).Methods("GET")

	authRouter.HandleFunc("/reports/summary", h.Summary).Methods("GET")
	authRouter.HandleFunc("/reports/timeline", h.Timeline).Methods("GET")
	authRouter.HandleFunc("/reports/cash-flow", h.CashFlow).Methods("GET")
	authRouter.HandleFunc("/reports/goals", h.GoalRecommendations).Methods("GET")

	authRouter.HandleFunc("/backup/export", h.ExportBackup).Methods("GET")
	authRouter.HandleFunc("/backup/import", h.ImportBackup).Methods("POST")

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
