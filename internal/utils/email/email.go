package email

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/jordan-wright/email"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/mkral/budget-planner/internal/config"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendNegativeBalanceAlert warns that an account's projected balance dips
// below zero during the given month.
func (s *Sender) SendNegativeBalanceAlert(to, username, accountName string, year, month int, minBalance decimal.Decimal) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = fmt.Sprintf("Projected negative balance on %s", accountName)

	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"The cash-flow projection for %04d-%02d shows account %q dropping to %s.\n"+
			"Consider moving a scheduled transfer earlier or reducing planned spending.\n"+
			"\nBest regards,\nBudget Planner",
		username, year, month, accountName, minBalance.StringFixed(2),
	)
	e.Text = []byte(body)

	return s.send(e, to)
}

// SendPremiumShortfallAlert warns that a premium account's projected
// monthly inflow misses its required minimum.
func (s *Sender) SendPremiumShortfallAlert(to, username, accountName string, year, month int, required, actual decimal.Decimal) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = fmt.Sprintf("Premium requirement at risk on %s", accountName)

	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Account %q needs an inflow of %s in %04d-%02d to keep its premium status,\n"+
			"but the projection only shows %s.\n"+
			"Scheduled transfers into the account count toward the requirement.\n"+
			"\nBest regards,\nBudget Planner",
		username, accountName, required.StringFixed(2), year, month, actual.StringFixed(2),
	)
	e.Text = []byte(body)

	return s.send(e, to)
}

func (s *Sender) send(e *email.Email, to string) error {
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	s.logger.Infof("Email sent to %s at %s: %s", to, time.Now().Format("2006-01-02 15:04:05"), e.Subject)
	return nil
}
