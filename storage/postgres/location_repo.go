package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"safedrop/pkg/logger"
	"safedrop/pkg/models"
	"safedrop/storage"
)

type locationRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewLocationRepo(db *pgxpool.Pool, log logger.ILogger) storage.ILocationStorage {
	return &locationRepo{db: db, log: log}
}

func (r *locationRepo) Record(ctx context.Context, loc *models.DriverLocation) error {
	query := `
		INSERT INTO driver_locations (driver_id, lat, lng)
		VALUES ($1, $2, $3)
		RETURNING recorded_at
	`
	err := r.db.QueryRow(ctx, query, loc.DriverID, loc.Lat, loc.Lng).Scan(&loc.RecordedAt)
	if err != nil {
		r.log.Error("failed to record location", logger.String("driver_id", loc.DriverID), logger.Error(err))
	}
	return err
}

func (r *locationRepo) Latest(ctx context.Context, driverID string) (*models.DriverLocation, error) {
	var loc models.DriverLocation
	query := `
		SELECT driver_id, lat, lng, recorded_at
		FROM driver_locations
		WHERE driver_id = $1
		ORDER BY recorded_at DESC
		LIMIT 1
	`
	err := r.db.QueryRow(ctx, query, driverID).Scan(&loc.DriverID, &loc.Lat, &loc.Lng, &loc.RecordedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.log.Error("failed to get latest location", logger.String("driver_id", driverID), logger.Error(err))
		return nil, err
	}
	return &loc, nil
}
