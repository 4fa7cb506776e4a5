package service

import (
	"context"
	"fmt"
	"log"

	"roamio/config"
	"roamio/internal/worker"

	"github.com/hibiken/asynq"
)

// Mailer enqueues outbound email onto the job queue and, on the worker side,
// delivers it. Delivery is a log transport for now; swap in a real email API
// without touching the enqueue path.
type Mailer struct {
	cfg    *config.Config
	client *asynq.Client
}

func NewMailer(cfg *config.Config, client *asynq.Client) *Mailer {
	return &Mailer{cfg: cfg, client: client}
}

func (m *Mailer) enqueue(p worker.EmailPayload) {
	if m == nil || m.client == nil {
		return
	}
	task, err := worker.NewEmailTask(p)
	if err != nil {
		log.Printf("[mail] build task: %v", err)
		return
	}
	if _, err := m.client.Enqueue(task, asynq.Queue("default")); err != nil {
		log.Printf("[mail] enqueue to=%s: %v", p.To, err)
	}
}

func (m *Mailer) SendVerificationEmail(to, token string) {
	link := fmt.Sprintf("%s/verify-email?token=%s", m.cfg.App.BaseURL, token)
	m.enqueue(worker.EmailPayload{
		To:      to,
		Subject: "Verify your Roamio account",
		Body:    fmt.Sprintf("Welcome to Roamio!\n\nConfirm your email address:\n%s\n\nThe link expires in 24 hours.", link),
	})
}

func (m *Mailer) SendPasswordResetEmail(to, token string) {
	link := fmt.Sprintf("%s/reset-password?token=%s", m.cfg.App.BaseURL, token)
	m.enqueue(worker.EmailPayload{
		To:      to,
		Subject: "Reset your Roamio password",
		Body:    fmt.Sprintf("A password reset was requested for your account.\n\nReset it here:\n%s\n\nIf this wasn't you, ignore this email.", link),
	})
}

func (m *Mailer) SendPayoutCompletedEmail(to string, amountCents int64, currency, transactionID string) {
	m.enqueue(worker.EmailPayload{
		To:      to,
		Subject: "Your affiliate payout is on its way",
		Body: fmt.Sprintf("Your payout of %d.%02d %s has been completed.\nTransaction reference: %s",
			amountCents/100, amountCents%100, currency, transactionID),
	})
}

func (m *Mailer) SendPriceAlertEmail(to, destination string, quoteCents, targetCents int64) {
	m.enqueue(worker.EmailPayload{
		To:      to,
		Subject: fmt.Sprintf("Price drop: %s", destination),
		Body: fmt.Sprintf("Good news! %s is now %d.%02d, below your target of %d.%02d.",
			destination, quoteCents/100, quoteCents%100, targetCents/100, targetCents%100),
	})
}

// DeliverEmail is the worker-side transport. Placeholder: logs the message
// instead of calling an email API.
func (m *Mailer) DeliverEmail(ctx context.Context, p worker.EmailPayload) error {
	log.Printf("[mail] from=%s <%s> to=%s subject=%q", m.cfg.Mail.FromName, m.cfg.Mail.FromAddress, p.To, p.Subject)
	log.Printf("[mail] body:\n%s", p.Body)
	return nil
}
