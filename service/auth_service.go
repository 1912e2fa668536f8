package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"safedrop/config"
	"safedrop/pkg/jwt"
	"safedrop/pkg/logger"
	"safedrop/pkg/models"
	"safedrop/pkg/notifier"
	"safedrop/pkg/password"
	"safedrop/storage"
)

type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Phone    string
}

type DriverRegisterInput struct {
	RegisterInput
	VehicleMake   string
	VehicleModel  string
	VehiclePlate  string
	LicenseNumber string
}

// LoginResult is everything the client needs after authentication: the
// token, the resolved role and the dashboard it should navigate to.
type LoginResult struct {
	Token      string          `json:"access_token"`
	ExpiresAt  time.Time       `json:"expires_at"`
	RedirectTo string          `json:"redirect_to"`
	Role       models.Role     `json:"role"`
	Profile    *models.Profile `json:"profile"`
}

type AuthService interface {
	RegisterCustomer(ctx context.Context, in RegisterInput) (*models.Profile, error)
	RegisterDriver(ctx context.Context, in DriverRegisterInput) (*models.Profile, error)
	Login(ctx context.Context, email, pass string) (*LoginResult, error)
	AdminLogin(ctx context.Context, email, pass string) (*LoginResult, error)
	ResolveRole(ctx context.Context, p *models.Profile) (models.Role, error)
}

type authService struct {
	cfg      config.Config
	profiles storage.IProfileStorage
	drivers  storage.IDriverStorage
	tokens   *jwt.Manager
	notify   notifier.INotifier
	log      logger.ILogger
}

func NewAuthService(cfg config.Config, stg storage.IStorage, tokens *jwt.Manager, notify notifier.INotifier, log logger.ILogger) AuthService {
	return &authService{
		cfg:      cfg,
		profiles: stg.Profile(),
		drivers:  stg.Driver(),
		tokens:   tokens,
		notify:   notify,
		log:      log,
	}
}

func (s *authService) createProfile(ctx context.Context, in RegisterInput, userType string) (*models.Profile, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	existing, err := s.profiles.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	p := &models.Profile{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(in.FullName),
		Phone:        strings.TrimSpace(in.Phone),
		UserType:     userType,
		Status:       models.ProfileActive,
	}
	return s.profiles.Create(ctx, p)
}

func (s *authService) RegisterCustomer(ctx context.Context, in RegisterInput) (*models.Profile, error) {
	return s.createProfile(ctx, in, models.UserTypeCustomer)
}

func (s *authService) RegisterDriver(ctx context.Context, in DriverRegisterInput) (*models.Profile, error) {
	p, err := s.createProfile(ctx, in.RegisterInput, models.UserTypeDriver)
	if err != nil {
		return nil, err
	}

	d := &models.Driver{
		ProfileID:          p.ID,
		Status:             models.DriverPending,
		VehicleMake:        strings.TrimSpace(in.VehicleMake),
		VehicleModel:       strings.TrimSpace(in.VehicleModel),
		VehiclePlate:       strings.TrimSpace(in.VehiclePlate),
		LicenseNumber:      strings.TrimSpace(in.LicenseNumber),
		SubscriptionStatus: models.SubscriptionNone,
	}
	if err := s.drivers.Create(ctx, d); err != nil {
		return nil, err
	}

	s.notify.DriverApplied(p, d)
	s.log.Info("driver application received", logger.String("profile_id", p.ID))
	return p, nil
}

// ResolveRole is the single role-resolution point: an explicit admin grant
// wins, then the profile's user_type. Drivers without a drivers row get one
// created in pending state so a half-finished registration still resolves.
func (s *authService) ResolveRole(ctx context.Context, p *models.Profile) (models.Role, error) {
	isAdmin, err := s.profiles.HasRole(ctx, p.ID, models.UserTypeAdmin)
	if err != nil {
		return models.Role{}, err
	}
	if isAdmin {
		return models.Role{Kind: models.UserTypeAdmin}, nil
	}

	switch p.UserType {
	case models.UserTypeAdmin:
		return models.Role{Kind: models.UserTypeAdmin}, nil
	case models.UserTypeCustomer:
		return models.Role{Kind: models.UserTypeCustomer}, nil
	case models.UserTypeDriver:
		d, err := s.drivers.Get(ctx, p.ID)
		if err != nil {
			return models.Role{}, err
		}
		if d == nil {
			d = &models.Driver{
				ProfileID:          p.ID,
				Status:             models.DriverPending,
				SubscriptionStatus: models.SubscriptionNone,
			}
			if err := s.drivers.Create(ctx, d); err != nil {
				return models.Role{}, err
			}
		}
		return models.Role{Kind: models.UserTypeDriver, Approval: d.Status}, nil
	default:
		return models.Role{}, ErrUnknownUserType
	}
}

func (s *authService) login(ctx context.Context, p *models.Profile) (*LoginResult, error) {
	role, err := s.ResolveRole(ctx, p)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.tokens.Generate(p.ID, role.Kind)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:      token,
		ExpiresAt:  expiresAt,
		RedirectTo: role.DashboardPath(),
		Role:       role,
		Profile:    p,
	}, nil
}

func (s *authService) Login(ctx context.Context, email, pass string) (*LoginResult, error) {
	p, err := s.profiles.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if p == nil || !password.Verify(pass, p.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if p.Blocked() {
		return nil, ErrAccountBlocked
	}
	return s.login(ctx, p)
}

// AdminLogin checks the bootstrap credentials from config. The first
// successful login creates the admin profile and role grant.
func (s *authService) AdminLogin(ctx context.Context, email, pass string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if s.cfg.AdminEmail == "" || s.cfg.AdminPassword == "" {
		return nil, ErrInvalidCredentials
	}
	if email != strings.ToLower(s.cfg.AdminEmail) || pass != s.cfg.AdminPassword {
		return nil, ErrInvalidCredentials
	}

	p, err := s.profiles.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if p == nil {
		hash, err := password.Hash(pass)
		if err != nil {
			return nil, err
		}
		p, err = s.profiles.Create(ctx, &models.Profile{
			ID:           uuid.NewString(),
			Email:        email,
			PasswordHash: hash,
			FullName:     "Administrator",
			UserType:     models.UserTypeAdmin,
			Status:       models.ProfileActive,
		})
		if err != nil {
			return nil, err
		}
	}

	if err := s.profiles.GrantRole(ctx, p.ID, models.UserTypeAdmin); err != nil {
		return nil, err
	}
	return s.login(ctx, p)
}
