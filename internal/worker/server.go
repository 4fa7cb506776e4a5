package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/hibiken/asynq"
)

// Deliverer sends one email. Implemented by service.Mailer.
type Deliverer interface {
	DeliverEmail(ctx context.Context, p EmailPayload) error
}

// AlertScanner evaluates active price alerts. Implemented by service.AlertService.
type AlertScanner interface {
	Scan(ctx context.Context) error
}

type Worker struct {
	Mailer Deliverer
	Alerts AlertScanner
}

func NewWorker(mailer Deliverer, alerts AlertScanner) *Worker {
	return &Worker{Mailer: mailer, Alerts: alerts}
}

func (w *Worker) HandleEmailDeliver(ctx context.Context, t *asynq.Task) error {
	var p EmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("json.Unmarshal failed: %v: %w", err, asynq.SkipRetry)
	}
	return w.Mailer.DeliverEmail(ctx, p)
}

func (w *Worker) HandleAlertScan(ctx context.Context, t *asynq.Task) error {
	return w.Alerts.Scan(ctx)
}

// StartWorker runs the asynq server until it fails. Blocking.
func StartWorker(redisOpt asynq.RedisClientOpt, w *Worker) {
	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeEmailDeliver, w.HandleEmailDeliver)
	mux.HandleFunc(TypeAlertScan, w.HandleAlertScan)
	if err := srv.Run(mux); err != nil {
		log.Fatalf("asynq server: %v", err)
	}
}
