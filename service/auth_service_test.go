package service

import (
	"context"
	"errors"
	"testing"

	"safedrop/pkg/models"
)

func TestRegisterAndLoginCustomer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p, err := env.svc.Auth().RegisterCustomer(ctx, RegisterInput{
		Email:    "Jane@Example.com",
		Password: "hunter22",
		FullName: "Jane Doe",
		Phone:    "+998901112233",
	})
	if err != nil {
		t.Fatalf("RegisterCustomer: %v", err)
	}
	if p.Email != "jane@example.com" {
		t.Fatalf("expected lowercased email, got %s", p.Email)
	}

	if _, err := env.svc.Auth().RegisterCustomer(ctx, RegisterInput{
		Email:    "jane@example.com",
		Password: "other",
	}); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	res, err := env.svc.Auth().Login(ctx, "JANE@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.Token == "" {
		t.Fatalf("expected a token")
	}
	if res.Role.Kind != models.UserTypeCustomer || res.RedirectTo != "/customer/dashboard" {
		t.Fatalf("unexpected login result %+v", res)
	}

	if _, err := env.svc.Auth().Login(ctx, "jane@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := env.svc.Auth().Login(ctx, "nobody@example.com", "hunter22"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestDriverLoginRedirectFollowsApproval(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p, err := env.svc.Auth().RegisterDriver(ctx, DriverRegisterInput{
		RegisterInput: RegisterInput{
			Email:    "driver@example.com",
			Password: "hunter22",
			FullName: "Dave Driver",
		},
		VehicleMake:   "Ford",
		VehicleModel:  "Transit",
		VehiclePlate:  "AA 123 BB",
		LicenseNumber: "DL-77",
	})
	if err != nil {
		t.Fatalf("RegisterDriver: %v", err)
	}
	if d := env.store.drivers[p.ID]; d == nil || d.Status != models.DriverPending {
		t.Fatalf("expected pending driver row, got %+v", env.store.drivers[p.ID])
	}

	res, err := env.svc.Auth().Login(ctx, "driver@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.RedirectTo != "/driver/pending-approval" {
		t.Fatalf("expected pending-approval redirect, got %s", res.RedirectTo)
	}

	if err := env.svc.Admin().ApproveDriver(ctx, p.ID); err != nil {
		t.Fatalf("ApproveDriver: %v", err)
	}
	res, err = env.svc.Auth().Login(ctx, "driver@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.RedirectTo != "/driver/dashboard" {
		t.Fatalf("expected driver dashboard after approval, got %s", res.RedirectTo)
	}
}

func TestAdminGrantOverridesUserType(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.seedProfile("u1", "u1@safedrop.test", models.UserTypeCustomer)
	env.store.roles["u1"] = []string{models.UserTypeAdmin}

	res, err := env.svc.Auth().Login(ctx, p.Email, "pass-u1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.Role.Kind != models.UserTypeAdmin || res.RedirectTo != "/admin/dashboard" {
		t.Fatalf("expected admin role from grant, got %+v", res.Role)
	}
}

func TestLoginRejectsBlockedAndUnknownType(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p := env.seedProfile("u1", "u1@safedrop.test", models.UserTypeCustomer)
	p.Status = models.ProfileSuspended
	if _, err := env.svc.Auth().Login(ctx, p.Email, "pass-u1"); !errors.Is(err, ErrAccountBlocked) {
		t.Fatalf("expected ErrAccountBlocked, got %v", err)
	}

	env.seedProfile("u2", "u2@safedrop.test", "ghost")
	if _, err := env.svc.Auth().Login(ctx, "u2@safedrop.test", "pass-u2"); !errors.Is(err, ErrUnknownUserType) {
		t.Fatalf("expected ErrUnknownUserType, got %v", err)
	}
}

func TestResolveRoleBackfillsDriverRow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.seedProfile("u1", "u1@safedrop.test", models.UserTypeDriver)

	role, err := env.svc.Auth().ResolveRole(ctx, p)
	if err != nil {
		t.Fatalf("ResolveRole: %v", err)
	}
	if role.Kind != models.UserTypeDriver || role.Approval != models.DriverPending {
		t.Fatalf("unexpected role %+v", role)
	}
	if d := env.store.drivers["u1"]; d == nil || d.Status != models.DriverPending {
		t.Fatalf("expected backfilled pending driver row")
	}
}

func TestAdminLoginBootstrap(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.svc.Auth().AdminLogin(ctx, env.cfg.AdminEmail, "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	res, err := env.svc.Auth().AdminLogin(ctx, env.cfg.AdminEmail, env.cfg.AdminPassword)
	if err != nil {
		t.Fatalf("AdminLogin: %v", err)
	}
	if res.Role.Kind != models.UserTypeAdmin || res.RedirectTo != "/admin/dashboard" {
		t.Fatalf("unexpected admin login result %+v", res)
	}
	if len(env.store.profiles) != 1 {
		t.Fatalf("expected bootstrap profile created, have %d profiles", len(env.store.profiles))
	}

	// Second login reuses the same profile.
	again, err := env.svc.Auth().AdminLogin(ctx, env.cfg.AdminEmail, env.cfg.AdminPassword)
	if err != nil {
		t.Fatalf("AdminLogin again: %v", err)
	}
	if len(env.store.profiles) != 1 || again.Profile.ID != res.Profile.ID {
		t.Fatalf("expected bootstrap profile reused")
	}
}
