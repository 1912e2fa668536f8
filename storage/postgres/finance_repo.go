package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"safedrop/pkg/logger"
	"safedrop/pkg/models"
	"safedrop/storage"
)

type financeRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewFinanceRepo(db *pgxpool.Pool, log logger.ILogger) storage.IFinanceStorage {
	return &financeRepo{db: db, log: log}
}

func (r *financeRepo) RecordTransaction(ctx context.Context, tx *models.FinancialTransaction) error {
	query := `
		INSERT INTO financial_transactions (order_id, amount, kind)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, tx.OrderID, tx.Amount, tx.Kind).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		r.log.Error("failed to record transaction", logger.String("kind", tx.Kind), logger.Error(err))
	}
	return err
}

func (r *financeRepo) PlatformSummary(ctx context.Context) (*models.PlatformSummary, error) {
	var s models.PlatformSummary
	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE kind = 'order_payment'), 0),
			COALESCE(SUM(amount) FILTER (WHERE kind = 'driver_payout'), 0),
			COALESCE(SUM(amount) FILTER (WHERE kind = 'subscription_fee'), 0)
		FROM financial_transactions
	`
	err := r.db.QueryRow(ctx, query).Scan(&s.TotalRevenue, &s.TotalPayouts, &s.SubscriptionFees)
	if err != nil {
		r.log.Error("failed to build platform summary", logger.Error(err))
		return nil, err
	}

	query = `
		SELECT
			COUNT(*) FILTER (WHERE status = 'completed'),
			COUNT(*) FILTER (WHERE status = 'cancelled')
		FROM orders
	`
	if err := r.db.QueryRow(ctx, query).Scan(&s.CompletedOrders, &s.CancelledOrders); err != nil {
		r.log.Error("failed to count orders for summary", logger.Error(err))
		return nil, err
	}

	return &s, nil
}

func (r *financeRepo) DriverEarnings(ctx context.Context, driverID string, limit int) (*models.DriverEarnings, error) {
	if limit <= 0 {
		limit = 20
	}

	e := &models.DriverEarnings{DriverID: driverID}

	query := `SELECT COALESCE(SUM(amount), 0) FROM driver_payments WHERE driver_id = $1`
	if err := r.db.QueryRow(ctx, query, driverID).Scan(&e.Total); err != nil {
		r.log.Error("failed to sum driver earnings", logger.String("driver_id", driverID), logger.Error(err))
		return nil, err
	}

	query = `
		SELECT id, driver_id, order_id, amount, created_at
		FROM driver_payments
		WHERE driver_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, driverID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var p models.DriverPayment
		if err := rows.Scan(&p.ID, &p.DriverID, &p.OrderID, &p.Amount, &p.CreatedAt); err != nil {
			return nil, err
		}
		e.Recent = append(e.Recent, p)
	}
	return e, rows.Err()
}
