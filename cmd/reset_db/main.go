package main

import (
	"context"
	"fmt"

	"safedrop/config"
	"safedrop/pkg/logger"
	"safedrop/storage/postgres"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.ServiceName, cfg.LoggerLevel)
	pg, err := postgres.New(context.Background(), cfg, log)

	if err != nil {
		panic(err)
	}
	defer pg.Close()

	// Truncate mutable data; system_settings stays since it is seeded
	// reference data.
	_, err = pg.GetPool().Exec(context.Background(),
		"TRUNCATE TABLE profiles, user_roles, drivers, orders, complaints, financial_transactions, driver_payments, driver_locations CASCADE")
	if err != nil {
		log.Error(fmt.Sprintf("Failed to truncate tables: %v", err))
	} else {
		log.Info("Successfully truncated profile, order and finance tables.")
	}
}
