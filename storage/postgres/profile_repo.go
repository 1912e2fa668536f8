package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"safedrop/pkg/logger"
	"safedrop/pkg/models"
	"safedrop/storage"
)

type profileRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewProfileRepo(db *pgxpool.Pool, log logger.ILogger) storage.IProfileStorage {
	return &profileRepo{db: db, log: log}
}

const profileColumns = "id, email, password_hash, full_name, phone, user_type, status, created_at, updated_at"

func (r *profileRepo) scanProfile(row pgx.Row) (*models.Profile, error) {
	var p models.Profile
	err := row.Scan(
		&p.ID, &p.Email, &p.PasswordHash, &p.FullName, &p.Phone, &p.UserType, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepo) Create(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	query := `
		INSERT INTO profiles (id, email, password_hash, full_name, phone, user_type, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		p.ID,
		p.Email,
		p.PasswordHash,
		p.FullName,
		p.Phone,
		p.UserType,
		p.Status,
	).Scan(&p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		r.log.Error("failed to create profile", logger.Error(err))
		return nil, err
	}

	return p, nil
}

func (r *profileRepo) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	p, err := r.scanProfile(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.log.Error("failed to get profile by id", logger.String("id", id), logger.Error(err))
		return nil, err
	}
	return p, nil
}

func (r *profileRepo) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE email = $1`
	p, err := r.scanProfile(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.log.Error("failed to get profile by email", logger.Error(err))
		return nil, err
	}
	return p, nil
}

func (r *profileRepo) GetAll(ctx context.Context) ([]*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*models.Profile
	for rows.Next() {
		var p models.Profile
		err := rows.Scan(
			&p.ID, &p.Email, &p.PasswordHash, &p.FullName, &p.Phone, &p.UserType, &p.Status, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, &p)
	}
	return profiles, rows.Err()
}

func (r *profileRepo) UpdateStatus(ctx context.Context, id, status string) error {
	_, err := r.db.Exec(ctx, "UPDATE profiles SET status=$1, updated_at=NOW() WHERE id=$2", status, id)
	if err != nil {
		r.log.Error("failed to update profile status", logger.String("id", id), logger.Error(err))
	}
	return err
}

func (r *profileRepo) HasRole(ctx context.Context, profileID, role string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM user_roles WHERE profile_id = $1 AND role = $2)`
	if err := r.db.QueryRow(ctx, query, profileID, role).Scan(&exists); err != nil {
		r.log.Error("failed to check role", logger.String("profile_id", profileID), logger.Error(err))
		return false, err
	}
	return exists, nil
}

func (r *profileRepo) GrantRole(ctx context.Context, profileID, role string) error {
	query := `
		INSERT INTO user_roles (profile_id, role)
		VALUES ($1, $2)
		ON CONFLICT (profile_id, role) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, profileID, role)
	if err != nil {
		r.log.Error("failed to grant role", logger.String("profile_id", profileID), logger.Error(err))
	}
	return err
}
