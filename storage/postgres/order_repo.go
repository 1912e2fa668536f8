package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"safedrop/pkg/logger"
	"safedrop/pkg/models"
	"safedrop/storage"
)

type orderRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewOrderRepo(db *pgxpool.Pool, log logger.ILogger) storage.IOrderStorage {
	return &orderRepo{db: db, log: log}
}

const orderColumns = `id, customer_id, driver_id, status, pickup_address, dropoff_address,
	description, price, created_at, claimed_at, completed_at, cancelled_at`

func scanOrder(row pgx.Row) (*models.Order, error) {
	var o models.Order
	err := row.Scan(
		&o.ID, &o.CustomerID, &o.DriverID, &o.Status, &o.Pickup, &o.Dropoff,
		&o.Description, &o.Price, &o.CreatedAt, &o.ClaimedAt, &o.CompletedAt, &o.CancelledAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) Create(ctx context.Context, o *models.Order) (*models.Order, error) {
	query := `
		INSERT INTO orders (id, customer_id, status, pickup_address, dropoff_address, description, price)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`
	err := r.db.QueryRow(ctx, query,
		o.ID,
		o.CustomerID,
		o.Status,
		o.Pickup,
		o.Dropoff,
		o.Description,
		o.Price,
	).Scan(&o.CreatedAt)

	if err != nil {
		r.log.Error("failed to create order", logger.Error(err))
		return nil, err
	}

	return o, nil
}

func (r *orderRepo) GetByID(ctx context.Context, id string) (*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	o, err := scanOrder(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.log.Error("failed to get order by id", logger.String("id", id), logger.Error(err))
		return nil, err
	}
	return o, nil
}

func (r *orderRepo) scanOrders(ctx context.Context, query string, args ...interface{}) ([]*models.Order, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		var o models.Order
		err := rows.Scan(
			&o.ID, &o.CustomerID, &o.DriverID, &o.Status, &o.Pickup, &o.Dropoff,
			&o.Description, &o.Price, &o.CreatedAt, &o.ClaimedAt, &o.CompletedAt, &o.CancelledAt,
		)
		if err != nil {
			return nil, err
		}
		orders = append(orders, &o)
	}
	return orders, rows.Err()
}

func (r *orderRepo) GetAvailable(ctx context.Context) ([]*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE status = 'available' AND driver_id IS NULL ORDER BY created_at`
	return r.scanOrders(ctx, query)
}

func (r *orderRepo) GetCustomerOrders(ctx context.Context, customerID, status string) ([]*models.Order, error) {
	if status != "" {
		query := `SELECT ` + orderColumns + ` FROM orders WHERE customer_id = $1 AND status = $2 ORDER BY created_at DESC`
		return r.scanOrders(ctx, query, customerID, status)
	}
	query := `SELECT ` + orderColumns + ` FROM orders WHERE customer_id = $1 ORDER BY created_at DESC`
	return r.scanOrders(ctx, query, customerID)
}

func (r *orderRepo) GetDriverOrders(ctx context.Context, driverID, status string) ([]*models.Order, error) {
	if status != "" {
		query := `SELECT ` + orderColumns + ` FROM orders WHERE driver_id = $1 AND status = $2 ORDER BY created_at DESC`
		return r.scanOrders(ctx, query, driverID, status)
	}
	query := `SELECT ` + orderColumns + ` FROM orders WHERE driver_id = $1 ORDER BY created_at DESC`
	return r.scanOrders(ctx, query, driverID)
}

// Claim is the whole race fix: one conditional update, no prior read. The
// predicate repeats the unclaimed invariant so concurrent claims resolve to
// exactly one affected row.
func (r *orderRepo) Claim(ctx context.Context, orderID, driverID string) (bool, error) {
	res, err := r.db.Exec(ctx, `
		UPDATE orders
		SET driver_id = $1, status = 'picked_up', claimed_at = NOW()
		WHERE id = $2 AND status = 'available' AND driver_id IS NULL
	`, driverID, orderID)
	if err != nil {
		r.log.Error("failed to claim order", logger.String("order_id", orderID), logger.Error(err))
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

func (r *orderRepo) Advance(ctx context.Context, orderID, driverID, from, to string) (bool, error) {
	res, err := r.db.Exec(ctx,
		"UPDATE orders SET status=$1 WHERE id=$2 AND driver_id=$3 AND status=$4",
		to, orderID, driverID, from,
	)
	if err != nil {
		r.log.Error("failed to advance order", logger.String("order_id", orderID), logger.Error(err))
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

// Complete closes the order and records the money movement in one
// transaction: the customer payment, the platform commission split and the
// driver payout row the earnings screen reads.
func (r *orderRepo) Complete(ctx context.Context, orderID, driverID string, commissionRate float64) (*models.Order, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE orders
		SET status = 'completed', completed_at = NOW()
		WHERE id = $1 AND driver_id = $2 AND status IN ('in_transit', 'approaching')
		RETURNING ` + orderColumns
	o, err := scanOrder(tx.QueryRow(ctx, query, orderID, driverID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.log.Error("failed to complete order", logger.String("order_id", orderID), logger.Error(err))
		return nil, err
	}

	payout := o.Price * (1 - commissionRate)

	_, err = tx.Exec(ctx,
		"INSERT INTO financial_transactions (order_id, amount, kind) VALUES ($1, $2, 'order_payment')",
		o.ID, o.Price,
	)
	if err != nil {
		r.log.Error("failed to record order payment", logger.String("order_id", orderID), logger.Error(err))
		return nil, err
	}

	_, err = tx.Exec(ctx,
		"INSERT INTO financial_transactions (order_id, amount, kind) VALUES ($1, $2, 'driver_payout')",
		o.ID, payout,
	)
	if err != nil {
		r.log.Error("failed to record driver payout", logger.String("order_id", orderID), logger.Error(err))
		return nil, err
	}

	_, err = tx.Exec(ctx,
		"INSERT INTO driver_payments (driver_id, order_id, amount) VALUES ($1, $2, $3)",
		driverID, o.ID, payout,
	)
	if err != nil {
		r.log.Error("failed to record driver payment", logger.String("order_id", orderID), logger.Error(err))
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *orderRepo) CancelByCustomer(ctx context.Context, orderID, customerID string) (bool, error) {
	res, err := r.db.Exec(ctx, `
		UPDATE orders
		SET status = 'cancelled', cancelled_at = NOW()
		WHERE id = $1 AND customer_id = $2 AND driver_id IS NULL AND status IN ('pending', 'available')
	`, orderID, customerID)
	if err != nil {
		r.log.Error("failed to cancel order", logger.String("order_id", orderID), logger.Error(err))
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

func (r *orderRepo) ConfirmFare(ctx context.Context, orderID, customerID string, price float64) (bool, error) {
	res, err := r.db.Exec(ctx,
		"UPDATE orders SET status='available', price=$3 WHERE id=$1 AND customer_id=$2 AND status='pending'",
		orderID, customerID, price,
	)
	if err != nil {
		r.log.Error("failed to confirm fare", logger.String("order_id", orderID), logger.Error(err))
		return false, err
	}
	return res.RowsAffected() > 0, nil
}
