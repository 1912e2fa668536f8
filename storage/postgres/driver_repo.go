package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"safedrop/pkg/logger"
	"safedrop/pkg/models"
	"safedrop/storage"
)

type driverRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewDriverRepo(db *pgxpool.Pool, log logger.ILogger) storage.IDriverStorage {
	return &driverRepo{db: db, log: log}
}

const driverColumns = `profile_id, status, rejection_reason, rejection_count,
	vehicle_make, vehicle_model, vehicle_plate, license_number,
	is_available, subscription_status, plan, subscription_expires_at,
	created_at, updated_at`

func scanDriver(row pgx.Row) (*models.Driver, error) {
	var d models.Driver
	err := row.Scan(
		&d.ProfileID, &d.Status, &d.RejectionReason, &d.RejectionCount,
		&d.VehicleMake, &d.VehicleModel, &d.VehiclePlate, &d.LicenseNumber,
		&d.IsAvailable, &d.SubscriptionStatus, &d.Plan, &d.SubscriptionExpiresAt,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *driverRepo) Create(ctx context.Context, d *models.Driver) error {
	query := `
		INSERT INTO drivers (profile_id, status, vehicle_make, vehicle_model, vehicle_plate, license_number, subscription_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query,
		d.ProfileID,
		d.Status,
		d.VehicleMake,
		d.VehicleModel,
		d.VehiclePlate,
		d.LicenseNumber,
		d.SubscriptionStatus,
	)
	if err != nil {
		r.log.Error("failed to create driver", logger.Error(err))
	}
	return err
}

func (r *driverRepo) Get(ctx context.Context, profileID string) (*models.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE profile_id = $1`
	d, err := scanDriver(r.db.QueryRow(ctx, query, profileID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.log.Error("failed to get driver", logger.String("profile_id", profileID), logger.Error(err))
		return nil, err
	}
	return d, nil
}

func (r *driverRepo) UpdateVehicle(ctx context.Context, d *models.Driver) error {
	query := `
		UPDATE drivers
		SET vehicle_make=$1, vehicle_model=$2, vehicle_plate=$3, license_number=$4, updated_at=NOW()
		WHERE profile_id=$5
	`
	_, err := r.db.Exec(ctx, query, d.VehicleMake, d.VehicleModel, d.VehiclePlate, d.LicenseNumber, d.ProfileID)
	if err != nil {
		r.log.Error("failed to update driver vehicle", logger.Error(err))
	}
	return err
}

func (r *driverRepo) Approve(ctx context.Context, profileID string) (bool, error) {
	res, err := r.db.Exec(ctx,
		"UPDATE drivers SET status='approved', rejection_reason='', updated_at=NOW() WHERE profile_id=$1 AND status='pending'",
		profileID,
	)
	if err != nil {
		r.log.Error("failed to approve driver", logger.String("profile_id", profileID), logger.Error(err))
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

// Reject bumps the rejection count and freezes the application once the
// count reaches the limit, in a single statement so two admins cannot
// double-count a rejection.
func (r *driverRepo) Reject(ctx context.Context, profileID, reason string) (*models.Driver, error) {
	query := `
		UPDATE drivers
		SET status = CASE WHEN rejection_count + 1 >= $3 THEN 'frozen' ELSE 'rejected' END,
		    rejection_count = rejection_count + 1,
		    rejection_reason = $2,
		    is_available = FALSE,
		    updated_at = NOW()
		WHERE profile_id = $1 AND status = 'pending'
		RETURNING ` + driverColumns
	d, err := scanDriver(r.db.QueryRow(ctx, query, profileID, reason, models.MaxRejections))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.log.Error("failed to reject driver", logger.String("profile_id", profileID), logger.Error(err))
		return nil, err
	}
	return d, nil
}

func (r *driverRepo) Reapply(ctx context.Context, profileID string) (bool, error) {
	res, err := r.db.Exec(ctx,
		"UPDATE drivers SET status='pending', updated_at=NOW() WHERE profile_id=$1 AND status='rejected' AND rejection_count < $2",
		profileID, models.MaxRejections,
	)
	if err != nil {
		r.log.Error("failed to reapply driver", logger.String("profile_id", profileID), logger.Error(err))
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

func (r *driverRepo) SetAvailability(ctx context.Context, profileID string, available bool) (bool, error) {
	res, err := r.db.Exec(ctx,
		"UPDATE drivers SET is_available=$2, updated_at=NOW() WHERE profile_id=$1 AND status='approved'",
		profileID, available,
	)
	if err != nil {
		r.log.Error("failed to set availability", logger.String("profile_id", profileID), logger.Error(err))
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

func (r *driverRepo) ExpireSubscription(ctx context.Context, profileID string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE drivers
		SET subscription_status='expired', is_available=FALSE, updated_at=NOW()
		WHERE profile_id=$1 AND subscription_status='active' AND subscription_expires_at <= NOW()
	`, profileID)
	if err != nil {
		r.log.Error("failed to expire subscription", logger.String("profile_id", profileID), logger.Error(err))
	}
	return err
}

func (r *driverRepo) MarkSubscriptionPending(ctx context.Context, profileID, plan string) error {
	_, err := r.db.Exec(ctx,
		"UPDATE drivers SET subscription_status='pending', plan=$2, updated_at=NOW() WHERE profile_id=$1",
		profileID, plan,
	)
	if err != nil {
		r.log.Error("failed to mark subscription pending", logger.String("profile_id", profileID), logger.Error(err))
	}
	return err
}

func (r *driverRepo) ActivateSubscription(ctx context.Context, profileID, plan string, expiresAt time.Time) error {
	_, err := r.db.Exec(ctx,
		"UPDATE drivers SET subscription_status='active', plan=$2, subscription_expires_at=$3, updated_at=NOW() WHERE profile_id=$1",
		profileID, plan, expiresAt,
	)
	if err != nil {
		r.log.Error("failed to activate subscription", logger.String("profile_id", profileID), logger.Error(err))
	}
	return err
}

const driverApplicationQuery = `
	SELECT d.profile_id, d.status, d.rejection_reason, d.rejection_count,
	       d.vehicle_make, d.vehicle_model, d.vehicle_plate, d.license_number,
	       d.is_available, d.subscription_status, d.plan, d.subscription_expires_at,
	       d.created_at, d.updated_at,
	       p.full_name, p.email, p.phone
	FROM drivers d
	JOIN profiles p ON p.id = d.profile_id
`

func (r *driverRepo) scanApplications(ctx context.Context, query string, args ...interface{}) ([]*models.DriverApplication, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []*models.DriverApplication
	for rows.Next() {
		var a models.DriverApplication
		err := rows.Scan(
			&a.ProfileID, &a.Status, &a.RejectionReason, &a.RejectionCount,
			&a.VehicleMake, &a.VehicleModel, &a.VehiclePlate, &a.LicenseNumber,
			&a.IsAvailable, &a.SubscriptionStatus, &a.Plan, &a.SubscriptionExpiresAt,
			&a.CreatedAt, &a.UpdatedAt,
			&a.FullName, &a.Email, &a.Phone,
		)
		if err != nil {
			return nil, err
		}
		apps = append(apps, &a)
	}
	return apps, rows.Err()
}

func (r *driverRepo) GetPending(ctx context.Context) ([]*models.DriverApplication, error) {
	return r.scanApplications(ctx, driverApplicationQuery+" WHERE d.status = 'pending' ORDER BY d.created_at")
}

func (r *driverRepo) GetAll(ctx context.Context) ([]*models.DriverApplication, error) {
	return r.scanApplications(ctx, driverApplicationQuery+" ORDER BY d.created_at DESC")
}

// DeleteRejected removes rejected applications only; frozen rows are kept
// for audit.
func (r *driverRepo) DeleteRejected(ctx context.Context) (int64, error) {
	res, err := r.db.Exec(ctx, "DELETE FROM drivers WHERE status='rejected'")
	if err != nil {
		r.log.Error("failed to delete rejected applications", logger.Error(err))
		return 0, err
	}
	return res.RowsAffected(), nil
}
