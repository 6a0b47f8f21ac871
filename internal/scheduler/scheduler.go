// Package scheduler runs the periodic background jobs: projection alert
// mail and monthly plan rollover.
package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/mkral/budget-planner/internal/config"
	"github.com/mkral/budget-planner/internal/service"
	"github.com/mkral/budget-planner/internal/utils/email"
)

// Scheduler owns the cron runner and its jobs
type Scheduler struct {
	cron   *cron.Cron
	svc    *service.Service
	sender *email.Sender
	cfg    *config.Config
	log    *logrus.Logger
}

// New creates a scheduler; sender may be nil when SMTP is not configured
func New(svc *service.Service, sender *email.Sender, cfg *config.Config, log *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		svc:    svc,
		sender: sender,
		cfg:    cfg,
		log:    log,
	}
}

// Start registers the jobs and starts the cron runner
func (s *Scheduler) Start() error {
	if s.sender != nil {
		if _, err := s.cron.AddFunc(s.cfg.AlertCron, s.runAlerts); err != nil {
			return fmt.Errorf("failed to schedule alert job: %w", err)
		}
	}
	if _, err := s.cron.AddFunc(s.cfg.RolloverCron, s.runRollover); err != nil {
		return fmt.Errorf("failed to schedule rollover job: %w", err)
	}
	s.cron.Start()
	s.log.Info("Scheduler started")
	return nil
}

// Stop stops the cron runner and waits for running jobs
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("Scheduler stopped")
}

// runAlerts projects the current month for every household and mails a
// warning for negative balances and missed premium requirements.
func (s *Scheduler) runAlerts() {
	now := time.Now()
	year, month := now.Year(), int(now.Month())

	users, err := s.svc.ListUsers()
	if err != nil {
		s.log.Errorf("Alert job failed to list users: %v", err)
		return
	}

	for _, user := range users {
		flows, err := s.svc.CashFlowForUser(user.ID, year, month)
		if err != nil {
			s.log.Errorf("Alert job failed to project user %d: %v", user.ID, err)
			continue
		}
		for _, flow := range flows {
			if flow.HasNegativeBalance {
				if err := s.sender.SendNegativeBalanceAlert(user.Email, user.Username, flow.AccountName, year, month, flow.MinBalance); err != nil {
					s.log.Errorf("Failed to alert user %d about account %d: %v", user.ID, flow.AccountID, err)
				}
			}
			if flow.Premium != nil && !flow.Premium.IsOk {
				if err := s.sender.SendPremiumShortfallAlert(user.Email, user.Username, flow.AccountName, year, month, flow.Premium.RequiredFlow, flow.Premium.ActualFlow); err != nil {
					s.log.Errorf("Failed to alert user %d about account %d: %v", user.ID, flow.AccountID, err)
				}
			}
		}
	}
}

// runRollover seeds the new month's plans for every household's
// weekly-variable goals.
func (s *Scheduler) runRollover() {
	now := time.Now()
	year, month := now.Year(), int(now.Month())

	users, err := s.svc.ListUsers()
	if err != nil {
		s.log.Errorf("Rollover job failed to list users: %v", err)
		return
	}

	for _, user := range users {
		if err := s.svc.RolloverPlans(user.ID, year, month); err != nil {
			s.log.Errorf("Rollover job failed for user %d: %v", user.ID, err)
		}
	}
}
