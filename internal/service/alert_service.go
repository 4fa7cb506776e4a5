package service

import (
	"context"
	"hash/fnv"
	"log"
	"time"

	"roamio/internal/models"
	"roamio/internal/repository"
	"roamio/internal/worker"

	"github.com/hibiken/asynq"
	"github.com/robfig/cron/v3"
)

// QuoteProvider returns the current best price for a destination in cents.
type QuoteProvider interface {
	Quote(kind, destination string) (int64, error)
}

// StubQuotes fabricates slowly drifting prices so the alert pipeline can be
// exercised without a fares feed.
type StubQuotes struct{}

func (StubQuotes) Quote(kind, destination string) (int64, error) {
	h := fnv.New32a()
	h.Write([]byte(kind + ":" + destination))
	base := int64(h.Sum32()%40000) + 5000
	// Drift by the hour so repeated scans see movement.
	drift := int64(time.Now().Hour()) * 150
	return base + drift, nil
}

type AlertService struct {
	alertRepo *repository.AlertRepository
	quotes    QuoteProvider
	mailer    *Mailer
}

func NewAlertService(alertRepo *repository.AlertRepository, quotes QuoteProvider, mailer *Mailer) *AlertService {
	return &AlertService{alertRepo: alertRepo, quotes: quotes, mailer: mailer}
}

// Scan evaluates every active alert against a fresh quote and notifies owners
// whose target has been hit, at most once per day per alert.
func (s *AlertService) Scan(ctx context.Context) error {
	alerts, err := s.alertRepo.ListActive()
	if err != nil {
		return err
	}
	now := time.Now()
	for _, a := range alerts {
		quote, err := s.quotes.Quote(a.Kind, a.Destination)
		if err != nil {
			log.Printf("[alerts] quote %s %s: %v", a.Kind, a.Destination, err)
			continue
		}
		if !ShouldNotify(&a, quote, now) {
			continue
		}
		s.mailer.SendPriceAlertEmail(a.User.Email, a.Destination, quote, a.TargetPriceCents)
		if err := s.alertRepo.MarkNotified(a.ID, now); err != nil {
			log.Printf("[alerts] mark notified %d: %v", a.ID, err)
		}
	}
	return nil
}

// ShouldNotify reports whether the alert fires for the given quote: target
// hit, and not already notified within the last day.
func ShouldNotify(a *models.PriceAlert, quoteCents int64, now time.Time) bool {
	if quoteCents > a.TargetPriceCents {
		return false
	}
	if a.LastNotifiedAt != nil && now.Sub(*a.LastNotifiedAt) < 24*time.Hour {
		return false
	}
	return true
}

// StartScheduler enqueues the periodic alert scan on the given cron spec.
func StartScheduler(spec string, client *asynq.Client) *cron.Cron {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		if _, err := client.Enqueue(worker.NewAlertScanTask(), asynq.Queue("low")); err != nil {
			log.Printf("[alerts] enqueue scan: %v", err)
		}
	})
	if err != nil {
		log.Printf("[alerts] bad cron spec %q: %v", spec, err)
		return c
	}
	c.Start()
	return c
}
