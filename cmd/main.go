package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"safedrop/config"
	"safedrop/pkg/api"
	"safedrop/pkg/jwt"
	"safedrop/pkg/logger"
	"safedrop/pkg/notifier"
	"safedrop/pkg/payment"
	"safedrop/service"
	"safedrop/storage/postgres"
)

func main() {
	cfg := config.Load()

	log := logger.New(cfg.ServiceName, cfg.LoggerLevel)

	pgStore, err := postgres.New(context.Background(), cfg, log)
	if err != nil {
		log.Error("Failed to connect to postgres", logger.Error(err))
		os.Exit(1)
	}
	defer pgStore.Close()

	notify, err := notifier.New(cfg, log)
	if err != nil {
		log.Error("Failed to initialize notifier", logger.Error(err))
		os.Exit(1)
	}

	tokens := jwt.NewManager(cfg.JWTSecret, cfg.JWTTTL)
	pay := payment.NewClient(cfg.PaymentBaseURL, cfg.PaymentAPIKey)

	svc := service.New(cfg, pgStore, tokens, pay, notify, log)
	server := api.NewServer(cfg, svc, tokens, log)

	go func() {
		if err := server.Run(cfg.AppPort); err != nil {
			log.Error("HTTP server stopped", logger.Error(err))
			os.Exit(1)
		}
	}()

	log.Info("SafeDrop backend is running", logger.Int("port", cfg.AppPort))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	log.Info("Shutting down...")
}
