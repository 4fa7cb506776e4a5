package main

import (
	"log"

	"roamio/config"
	"roamio/internal/database"
	"roamio/internal/repository"
	"roamio/internal/service"
	"roamio/internal/worker"

	"github.com/hibiken/asynq"
)

// The worker binary consumes the job queue: email delivery and the periodic
// price-alert scan. It shares the database and Redis with the API server.
func main() {
	cfg := config.Load()

	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("[worker] database: %v", err)
	}

	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Addr}

	// The alert scan sends notification emails, so the worker also holds an
	// enqueue-side client.
	asynqClient := asynq.NewClient(redisOpt)
	defer asynqClient.Close()

	mailer := service.NewMailer(cfg, asynqClient)
	alertRepo := repository.NewAlertRepository(db)
	alerts := service.NewAlertService(alertRepo, service.StubQuotes{}, mailer)

	log.Printf("[worker] starting, redis=%s", cfg.Redis.Addr)
	worker.StartWorker(redisOpt, worker.NewWorker(mailer, alerts))
}
