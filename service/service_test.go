package service

import (
	"testing"
	"time"

	"safedrop/config"
	"safedrop/pkg/jwt"
	"safedrop/pkg/logger"
	"safedrop/pkg/models"
	"safedrop/pkg/notifier"
	"safedrop/pkg/password"
	"safedrop/pkg/payment"
)

type testEnv struct {
	store *fakeStore
	svc   IServiceManager
	cfg   config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithPay(t, payment.NewClient("", ""))
}

func newTestEnvWithPay(t *testing.T, pay *payment.Client) *testEnv {
	t.Helper()

	cfg := config.Config{
		AdminEmail:    "admin@safedrop.test",
		AdminPassword: "bootstrap-secret",
	}
	store := newFakeStore()
	log := logger.New("test", "error")
	notify, err := notifier.New(config.Config{}, log)
	if err != nil {
		t.Fatalf("notifier: %v", err)
	}
	tokens := jwt.NewManager("test-secret", time.Hour)

	return &testEnv{
		store: store,
		svc:   New(cfg, store, tokens, pay, notify, log),
		cfg:   cfg,
	}
}

func (e *testEnv) seedProfile(id, email, userType string) *models.Profile {
	hash, _ := password.Hash("pass-" + id)
	p := &models.Profile{
		ID:           id,
		Email:        email,
		PasswordHash: hash,
		FullName:     "Test " + id,
		UserType:     userType,
		Status:       models.ProfileActive,
	}
	e.store.profiles[id] = p
	return p
}

func (e *testEnv) seedDriver(id, status string, mods ...func(*models.Driver)) *models.Driver {
	e.seedProfile(id, id+"@safedrop.test", models.UserTypeDriver)
	d := &models.Driver{
		ProfileID:          id,
		Status:             status,
		VehicleMake:        "Ford",
		VehicleModel:       "Transit",
		VehiclePlate:       "AA 123 BB",
		LicenseNumber:      "DL-" + id,
		SubscriptionStatus: models.SubscriptionNone,
	}
	for _, m := range mods {
		m(d)
	}
	e.store.drivers[id] = d
	return d
}

func withActiveSubscription(expiresAt time.Time) func(*models.Driver) {
	return func(d *models.Driver) {
		d.SubscriptionStatus = models.SubscriptionActive
		d.Plan = models.PlanMonthly
		t := expiresAt
		d.SubscriptionExpiresAt = &t
	}
}

func (e *testEnv) seedOrder(id, customerID, status string, price float64, mods ...func(*models.Order)) *models.Order {
	o := &models.Order{
		ID:         id,
		CustomerID: customerID,
		Status:     status,
		Pickup:     "12 Dock Rd",
		Dropoff:    "9 Harbor St",
		Price:      price,
		CreatedAt:  time.Now(),
	}
	for _, m := range mods {
		m(o)
	}
	e.store.orders[id] = o
	return o
}

func claimedBy(driverID string) func(*models.Order) {
	return func(o *models.Order) {
		id := driverID
		o.DriverID = &id
		o.Status = models.OrderPickedUp
		now := time.Now()
		o.ClaimedAt = &now
	}
}
