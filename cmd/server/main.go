package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roamio/config"
	"roamio/internal/database"
	"roamio/internal/repository"
	"roamio/internal/router"
	"roamio/internal/service"
	"roamio/internal/ws"

	"github.com/hibiken/asynq"
)

func main() {
	cfg := config.Load()

	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("[server] database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("[server] migrate: %v", err)
	}
	database.SeedAdmin(db)
	if err := repository.NewSettingRepository(db).SeedDefaults(database.DefaultSettings()); err != nil {
		log.Fatalf("[server] seed settings: %v", err)
	}

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.Redis.Addr})
	defer asynqClient.Close()

	hub := ws.NewHub()

	scheduler := service.StartScheduler(cfg.App.AlertScanSpec, asynqClient)
	defer scheduler.Stop()

	engine := router.Setup(cfg, db, asynqClient, hub)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Printf("[server] listening on :%s (%s)", cfg.Server.Port, cfg.Server.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[server] listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[server] shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("[server] forced shutdown: %v", err)
	}
	log.Println("[server] stopped")
}
