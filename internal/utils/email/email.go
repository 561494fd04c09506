package email

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"github.com/creditkeeper/creditkeeper/internal/config"
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

// Enabled reports whether SMTP is configured
func (s *Sender) Enabled() bool {
	return s.cfg.SMTPHost != ""
}

// SendPaymentReminder notifies a profile owner that a statement payment is
// due soon or overdue
func (s *Sender) SendPaymentReminder(to, name string, dueDate time.Time, amount float64, isOverdue bool) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	if isOverdue {
		e.Subject = "Overdue Statement Payment"
	} else {
		e.Subject = "Upcoming Statement Payment Reminder"
	}

	body := fmt.Sprintf("Dear %s,\n\n", name)
	if isOverdue {
		body += fmt.Sprintf(
			"Your minimum payment of $%.2f was due on %s and is now overdue.\n"+
				"Missed payments are the heaviest factor in your credit score - pay as soon as possible.\n",
			amount, dueDate.Format("2006-01-02"),
		)
	} else {
		body += fmt.Sprintf(
			"This is a reminder that your minimum payment of $%.2f is due on %s.\n"+
				"Paying on time keeps your payment history spotless.\n",
			amount, dueDate.Format("2006-01-02"),
		)
	}
	body += "\nBest regards,\nCreditKeeper"
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
