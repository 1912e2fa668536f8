package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"safedrop/pkg/logger"
	"safedrop/pkg/models"
	"safedrop/storage"
)

type complaintRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewComplaintRepo(db *pgxpool.Pool, log logger.ILogger) storage.IComplaintStorage {
	return &complaintRepo{db: db, log: log}
}

const complaintColumns = "id, profile_id, order_id, subject, body, status, resolution, created_at, resolved_at"

func (r *complaintRepo) Create(ctx context.Context, c *models.Complaint) (*models.Complaint, error) {
	query := `
		INSERT INTO complaints (id, profile_id, order_id, subject, body, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	err := r.db.QueryRow(ctx, query,
		c.ID,
		c.ProfileID,
		c.OrderID,
		c.Subject,
		c.Body,
		c.Status,
	).Scan(&c.CreatedAt)

	if err != nil {
		r.log.Error("failed to create complaint", logger.Error(err))
		return nil, err
	}

	return c, nil
}

func (r *complaintRepo) scanComplaints(ctx context.Context, query string, args ...interface{}) ([]*models.Complaint, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var complaints []*models.Complaint
	for rows.Next() {
		var c models.Complaint
		err := rows.Scan(
			&c.ID, &c.ProfileID, &c.OrderID, &c.Subject, &c.Body, &c.Status, &c.Resolution, &c.CreatedAt, &c.ResolvedAt,
		)
		if err != nil {
			return nil, err
		}
		complaints = append(complaints, &c)
	}
	return complaints, rows.Err()
}

func (r *complaintRepo) GetAll(ctx context.Context, status string) ([]*models.Complaint, error) {
	if status != "" {
		query := `SELECT ` + complaintColumns + ` FROM complaints WHERE status = $1 ORDER BY created_at DESC`
		return r.scanComplaints(ctx, query, status)
	}
	query := `SELECT ` + complaintColumns + ` FROM complaints ORDER BY created_at DESC`
	return r.scanComplaints(ctx, query)
}

func (r *complaintRepo) GetByProfile(ctx context.Context, profileID string) ([]*models.Complaint, error) {
	query := `SELECT ` + complaintColumns + ` FROM complaints WHERE profile_id = $1 ORDER BY created_at DESC`
	return r.scanComplaints(ctx, query, profileID)
}

func (r *complaintRepo) Resolve(ctx context.Context, id, resolution string) (bool, error) {
	res, err := r.db.Exec(ctx,
		"UPDATE complaints SET status='resolved', resolution=$2, resolved_at=NOW() WHERE id=$1 AND status='pending'",
		id, resolution,
	)
	if err != nil {
		r.log.Error("failed to resolve complaint", logger.String("id", id), logger.Error(err))
		return false, err
	}
	return res.RowsAffected() > 0, nil
}
