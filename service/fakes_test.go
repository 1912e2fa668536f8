package service

import (
	"context"
	"sync"
	"time"

	"safedrop/pkg/models"
	"safedrop/storage"

	"github.com/jackc/pgx/v5/pgxpool"
)

// fakeStore is an in-memory storage.IStorage with the same conditional
// update semantics as the Postgres repos, so service tests can exercise the
// claim and moderation guards without a database.
type fakeStore struct {
	mu sync.Mutex

	profiles     map[string]*models.Profile
	roles        map[string][]string
	drivers      map[string]*models.Driver
	orders       map[string]*models.Order
	complaints   map[string]*models.Complaint
	transactions []models.FinancialTransaction
	payments     []models.DriverPayment
	settings     map[string]string
	locations    map[string][]models.DriverLocation
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		profiles:   make(map[string]*models.Profile),
		roles:      make(map[string][]string),
		drivers:    make(map[string]*models.Driver),
		orders:     make(map[string]*models.Order),
		complaints: make(map[string]*models.Complaint),
		settings: map[string]string{
			models.SettingCommissionRate: "0.2",
			models.SettingMonthlyPrice:   "19.99",
			models.SettingYearlyPrice:    "199.99",
		},
		locations: make(map[string][]models.DriverLocation),
	}
}

func (f *fakeStore) Profile() storage.IProfileStorage     { return &fakeProfiles{f} }
func (f *fakeStore) Driver() storage.IDriverStorage       { return &fakeDrivers{f} }
func (f *fakeStore) Order() storage.IOrderStorage         { return &fakeOrders{f} }
func (f *fakeStore) Complaint() storage.IComplaintStorage { return &fakeComplaints{f} }
func (f *fakeStore) Finance() storage.IFinanceStorage     { return &fakeFinance{f} }
func (f *fakeStore) Settings() storage.ISettingsStorage   { return &fakeSettings{f} }
func (f *fakeStore) Location() storage.ILocationStorage   { return &fakeLocations{f} }
func (f *fakeStore) Close()                               {}
func (f *fakeStore) GetPool() *pgxpool.Pool               { return nil }

type fakeProfiles struct{ s *fakeStore }

func (f *fakeProfiles) Create(_ context.Context, p *models.Profile) (*models.Profile, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	now := time.Now()
	p.CreatedAt, p.UpdatedAt = now, now
	cp := *p
	f.s.profiles[p.ID] = &cp
	return p, nil
}

func (f *fakeProfiles) GetByID(_ context.Context, id string) (*models.Profile, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	p, ok := f.s.profiles[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfiles) GetByEmail(_ context.Context, email string) (*models.Profile, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, p := range f.s.profiles {
		if p.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeProfiles) GetAll(_ context.Context) ([]*models.Profile, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []*models.Profile
	for _, p := range f.s.profiles {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeProfiles) UpdateStatus(_ context.Context, id, status string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if p, ok := f.s.profiles[id]; ok {
		p.Status = status
	}
	return nil
}

func (f *fakeProfiles) HasRole(_ context.Context, profileID, role string) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, r := range f.s.roles[profileID] {
		if r == role {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeProfiles) GrantRole(_ context.Context, profileID, role string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, r := range f.s.roles[profileID] {
		if r == role {
			return nil
		}
	}
	f.s.roles[profileID] = append(f.s.roles[profileID], role)
	return nil
}

type fakeDrivers struct{ s *fakeStore }

func (f *fakeDrivers) Create(_ context.Context, d *models.Driver) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	cp := *d
	f.s.drivers[d.ProfileID] = &cp
	return nil
}

func (f *fakeDrivers) Get(_ context.Context, profileID string) (*models.Driver, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	d, ok := f.s.drivers[profileID]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (f *fakeDrivers) UpdateVehicle(_ context.Context, d *models.Driver) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if row, ok := f.s.drivers[d.ProfileID]; ok {
		row.VehicleMake = d.VehicleMake
		row.VehicleModel = d.VehicleModel
		row.VehiclePlate = d.VehiclePlate
		row.LicenseNumber = d.LicenseNumber
	}
	return nil
}

func (f *fakeDrivers) Approve(_ context.Context, profileID string) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	d, ok := f.s.drivers[profileID]
	if !ok || d.Status != models.DriverPending {
		return false, nil
	}
	d.Status = models.DriverApproved
	d.RejectionReason = ""
	return true, nil
}

func (f *fakeDrivers) Reject(_ context.Context, profileID, reason string) (*models.Driver, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	d, ok := f.s.drivers[profileID]
	if !ok || d.Status != models.DriverPending {
		return nil, nil
	}
	d.RejectionCount++
	d.RejectionReason = reason
	d.IsAvailable = false
	if d.RejectionCount >= models.MaxRejections {
		d.Status = models.DriverFrozen
	} else {
		d.Status = models.DriverRejected
	}
	cp := *d
	return &cp, nil
}

func (f *fakeDrivers) Reapply(_ context.Context, profileID string) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	d, ok := f.s.drivers[profileID]
	if !ok || d.Status != models.DriverRejected || d.RejectionCount >= models.MaxRejections {
		return false, nil
	}
	d.Status = models.DriverPending
	return true, nil
}

func (f *fakeDrivers) SetAvailability(_ context.Context, profileID string, available bool) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	d, ok := f.s.drivers[profileID]
	if !ok || d.Status != models.DriverApproved {
		return false, nil
	}
	d.IsAvailable = available
	return true, nil
}

func (f *fakeDrivers) ExpireSubscription(_ context.Context, profileID string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	d, ok := f.s.drivers[profileID]
	if !ok {
		return nil
	}
	if d.SubscriptionStatus == models.SubscriptionActive &&
		(d.SubscriptionExpiresAt == nil || !d.SubscriptionExpiresAt.After(time.Now())) {
		d.SubscriptionStatus = models.SubscriptionExpired
		d.IsAvailable = false
	}
	return nil
}

func (f *fakeDrivers) MarkSubscriptionPending(_ context.Context, profileID, plan string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if d, ok := f.s.drivers[profileID]; ok {
		d.SubscriptionStatus = models.SubscriptionPending
		d.Plan = plan
	}
	return nil
}

func (f *fakeDrivers) ActivateSubscription(_ context.Context, profileID, plan string, expiresAt time.Time) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if d, ok := f.s.drivers[profileID]; ok {
		d.SubscriptionStatus = models.SubscriptionActive
		d.Plan = plan
		t := expiresAt
		d.SubscriptionExpiresAt = &t
	}
	return nil
}

func (f *fakeDrivers) appsWhere(filter func(*models.Driver) bool) []*models.DriverApplication {
	var out []*models.DriverApplication
	for _, d := range f.s.drivers {
		if !filter(d) {
			continue
		}
		app := &models.DriverApplication{Driver: *d}
		if p, ok := f.s.profiles[d.ProfileID]; ok {
			app.FullName, app.Email, app.Phone = p.FullName, p.Email, p.Phone
		}
		out = append(out, app)
	}
	return out
}

func (f *fakeDrivers) GetPending(_ context.Context) ([]*models.DriverApplication, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return f.appsWhere(func(d *models.Driver) bool { return d.Status == models.DriverPending }), nil
}

func (f *fakeDrivers) GetAll(_ context.Context) ([]*models.DriverApplication, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return f.appsWhere(func(*models.Driver) bool { return true }), nil
}

func (f *fakeDrivers) DeleteRejected(_ context.Context) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var n int64
	for id, d := range f.s.drivers {
		if d.Status == models.DriverRejected {
			delete(f.s.drivers, id)
			n++
		}
	}
	return n, nil
}

type fakeOrders struct{ s *fakeStore }

func (f *fakeOrders) Create(_ context.Context, o *models.Order) (*models.Order, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	o.CreatedAt = time.Now()
	cp := *o
	f.s.orders[o.ID] = &cp
	return o, nil
}

func (f *fakeOrders) GetByID(_ context.Context, id string) (*models.Order, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	o, ok := f.s.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrders) ordersWhere(filter func(*models.Order) bool) []*models.Order {
	var out []*models.Order
	for _, o := range f.s.orders {
		if filter(o) {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out
}

func (f *fakeOrders) GetAvailable(_ context.Context) ([]*models.Order, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return f.ordersWhere(func(o *models.Order) bool {
		return o.Status == models.OrderAvailable && o.DriverID == nil
	}), nil
}

func (f *fakeOrders) GetCustomerOrders(_ context.Context, customerID, status string) ([]*models.Order, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return f.ordersWhere(func(o *models.Order) bool {
		return o.CustomerID == customerID && (status == "" || o.Status == status)
	}), nil
}

func (f *fakeOrders) GetDriverOrders(_ context.Context, driverID, status string) ([]*models.Order, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return f.ordersWhere(func(o *models.Order) bool {
		return o.DriverID != nil && *o.DriverID == driverID && (status == "" || o.Status == status)
	}), nil
}

func (f *fakeOrders) Claim(_ context.Context, orderID, driverID string) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	o, ok := f.s.orders[orderID]
	if !ok || o.Status != models.OrderAvailable || o.DriverID != nil {
		return false, nil
	}
	id := driverID
	o.DriverID = &id
	o.Status = models.OrderPickedUp
	now := time.Now()
	o.ClaimedAt = &now
	return true, nil
}

func (f *fakeOrders) Advance(_ context.Context, orderID, driverID, from, to string) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	o, ok := f.s.orders[orderID]
	if !ok || o.DriverID == nil || *o.DriverID != driverID || o.Status != from {
		return false, nil
	}
	o.Status = to
	return true, nil
}

func (f *fakeOrders) Complete(_ context.Context, orderID, driverID string, commissionRate float64) (*models.Order, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	o, ok := f.s.orders[orderID]
	if !ok || o.DriverID == nil || *o.DriverID != driverID {
		return nil, nil
	}
	if o.Status != models.OrderInTransit && o.Status != models.OrderApproaching {
		return nil, nil
	}
	o.Status = models.OrderCompleted
	now := time.Now()
	o.CompletedAt = &now

	payout := o.Price * (1 - commissionRate)
	f.s.transactions = append(f.s.transactions,
		models.FinancialTransaction{OrderID: &o.ID, Amount: o.Price, Kind: models.TxOrderPayment},
		models.FinancialTransaction{OrderID: &o.ID, Amount: payout, Kind: models.TxDriverPayout},
	)
	f.s.payments = append(f.s.payments,
		models.DriverPayment{DriverID: driverID, OrderID: o.ID, Amount: payout, CreatedAt: now})

	cp := *o
	return &cp, nil
}

func (f *fakeOrders) CancelByCustomer(_ context.Context, orderID, customerID string) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	o, ok := f.s.orders[orderID]
	if !ok || o.CustomerID != customerID || o.DriverID != nil {
		return false, nil
	}
	if o.Status != models.OrderPending && o.Status != models.OrderAvailable {
		return false, nil
	}
	o.Status = models.OrderCancelled
	now := time.Now()
	o.CancelledAt = &now
	return true, nil
}

func (f *fakeOrders) ConfirmFare(_ context.Context, orderID, customerID string, price float64) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	o, ok := f.s.orders[orderID]
	if !ok || o.CustomerID != customerID || o.Status != models.OrderPending {
		return false, nil
	}
	o.Status = models.OrderAvailable
	o.Price = price
	return true, nil
}

type fakeComplaints struct{ s *fakeStore }

func (f *fakeComplaints) Create(_ context.Context, c *models.Complaint) (*models.Complaint, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	c.CreatedAt = time.Now()
	cp := *c
	f.s.complaints[c.ID] = &cp
	return c, nil
}

func (f *fakeComplaints) GetAll(_ context.Context, status string) ([]*models.Complaint, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []*models.Complaint
	for _, c := range f.s.complaints {
		if status == "" || c.Status == status {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeComplaints) GetByProfile(_ context.Context, profileID string) ([]*models.Complaint, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []*models.Complaint
	for _, c := range f.s.complaints {
		if c.ProfileID == profileID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeComplaints) Resolve(_ context.Context, id, resolution string) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	c, ok := f.s.complaints[id]
	if !ok || c.Status != models.ComplaintPending {
		return false, nil
	}
	c.Status = models.ComplaintResolved
	c.Resolution = resolution
	now := time.Now()
	c.ResolvedAt = &now
	return true, nil
}

type fakeFinance struct{ s *fakeStore }

func (f *fakeFinance) RecordTransaction(_ context.Context, tx *models.FinancialTransaction) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	tx.CreatedAt = time.Now()
	f.s.transactions = append(f.s.transactions, *tx)
	return nil
}

func (f *fakeFinance) PlatformSummary(_ context.Context) (*models.PlatformSummary, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var s models.PlatformSummary
	for _, tx := range f.s.transactions {
		switch tx.Kind {
		case models.TxOrderPayment:
			s.TotalRevenue += tx.Amount
		case models.TxDriverPayout:
			s.TotalPayouts += tx.Amount
		case models.TxSubscriptionFee:
			s.SubscriptionFees += tx.Amount
		}
	}
	for _, o := range f.s.orders {
		switch o.Status {
		case models.OrderCompleted:
			s.CompletedOrders++
		case models.OrderCancelled:
			s.CancelledOrders++
		}
	}
	return &s, nil
}

func (f *fakeFinance) DriverEarnings(_ context.Context, driverID string, limit int) (*models.DriverEarnings, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	e := &models.DriverEarnings{DriverID: driverID}
	for _, p := range f.s.payments {
		if p.DriverID == driverID {
			e.Total += p.Amount
			if len(e.Recent) < limit {
				e.Recent = append(e.Recent, p)
			}
		}
	}
	return e, nil
}

type fakeSettings struct{ s *fakeStore }

func (f *fakeSettings) Get(_ context.Context, key string) (*models.SystemSetting, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	v, ok := f.s.settings[key]
	if !ok {
		return nil, nil
	}
	return &models.SystemSetting{Key: key, Value: v}, nil
}

func (f *fakeSettings) GetAll(_ context.Context) ([]*models.SystemSetting, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []*models.SystemSetting
	for k, v := range f.s.settings {
		out = append(out, &models.SystemSetting{Key: k, Value: v})
	}
	return out, nil
}

func (f *fakeSettings) Upsert(_ context.Context, key, value string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.settings[key] = value
	return nil
}

type fakeLocations struct{ s *fakeStore }

func (f *fakeLocations) Record(_ context.Context, loc *models.DriverLocation) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	loc.RecordedAt = time.Now()
	f.s.locations[loc.DriverID] = append(f.s.locations[loc.DriverID], *loc)
	return nil
}

func (f *fakeLocations) Latest(_ context.Context, driverID string) (*models.DriverLocation, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	pings := f.s.locations[driverID]
	if len(pings) == 0 {
		return nil, nil
	}
	cp := pings[len(pings)-1]
	return &cp, nil
}
