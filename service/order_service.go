package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cast"

	"safedrop/pkg/logger"
	"safedrop/pkg/models"
	"safedrop/pkg/notifier"
	"safedrop/storage"
)

type CreateOrderInput struct {
	CustomerID  string
	Pickup      string
	Dropoff     string
	Description string
	Price       float64
}

// Tracking is the customer-facing view of an in-progress delivery.
type Tracking struct {
	Order    *models.Order          `json:"order"`
	Location *models.DriverLocation `json:"driver_location,omitempty"`
}

type OrderService interface {
	Create(ctx context.Context, in CreateOrderInput) (*models.Order, error)
	ConfirmFare(ctx context.Context, orderID, customerID string, price float64) error
	Cancel(ctx context.Context, orderID, customerID string) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	Available(ctx context.Context) ([]*models.Order, error)
	CustomerOrders(ctx context.Context, customerID, status string) ([]*models.Order, error)
	DriverOrders(ctx context.Context, driverID, status string) ([]*models.Order, error)
	Accept(ctx context.Context, orderID, driverID string) (*models.Order, error)
	Advance(ctx context.Context, orderID, driverID, to string) error
	Complete(ctx context.Context, orderID, driverID string) (*models.Order, error)
	Track(ctx context.Context, orderID, customerID string) (*Tracking, error)
}

type orderService struct {
	orders   storage.IOrderStorage
	drivers  storage.IDriverStorage
	settings storage.ISettingsStorage
	location storage.ILocationStorage
	notify   notifier.INotifier
	log      logger.ILogger
}

func NewOrderService(stg storage.IStorage, notify notifier.INotifier, log logger.ILogger) OrderService {
	return &orderService{
		orders:   stg.Order(),
		drivers:  stg.Driver(),
		settings: stg.Settings(),
		location: stg.Location(),
		notify:   notify,
		log:      log,
	}
}

func (s *orderService) Create(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	status := models.OrderAvailable
	if in.Price <= 0 {
		// No fare yet: held out of the claim pool until confirmed.
		status = models.OrderPending
	}

	o := &models.Order{
		ID:          uuid.NewString(),
		CustomerID:  in.CustomerID,
		Status:      status,
		Pickup:      strings.TrimSpace(in.Pickup),
		Dropoff:     strings.TrimSpace(in.Dropoff),
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
	}
	return s.orders.Create(ctx, o)
}

func (s *orderService) ConfirmFare(ctx context.Context, orderID, customerID string, price float64) error {
	ok, err := s.orders.ConfirmFare(ctx, orderID, customerID, price)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidTransition
	}
	return nil
}

func (s *orderService) Cancel(ctx context.Context, orderID, customerID string) error {
	ok, err := s.orders.CancelByCustomer(ctx, orderID, customerID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCancelNotAllowed
	}
	return nil
}

func (s *orderService) GetByID(ctx context.Context, id string) (*models.Order, error) {
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

func (s *orderService) Available(ctx context.Context) ([]*models.Order, error) {
	return s.orders.GetAvailable(ctx)
}

func (s *orderService) CustomerOrders(ctx context.Context, customerID, status string) ([]*models.Order, error) {
	return s.orders.GetCustomerOrders(ctx, customerID, status)
}

func (s *orderService) DriverOrders(ctx context.Context, driverID, status string) ([]*models.Order, error) {
	return s.orders.GetDriverOrders(ctx, driverID, status)
}

// Accept claims an available order for the driver. Approval is re-verified
// against the database, then the claim itself is one conditional update:
// under two concurrent accepts exactly one sees an affected row, the other
// gets ErrOrderTaken.
func (s *orderService) Accept(ctx context.Context, orderID, driverID string) (*models.Order, error) {
	d, err := s.drivers.Get(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, ErrDriverNotFound
	}
	if d.Status != models.DriverApproved {
		return nil, ErrDriverNotApproved
	}

	ok, err := s.orders.Claim(ctx, orderID, driverID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrOrderTaken
	}

	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}

	s.log.Info("order claimed",
		logger.String("order_id", orderID),
		logger.String("driver_id", driverID),
	)
	return o, nil
}

// Advance moves a claimed order one step along the delivery flow. The
// expected prior status goes into the WHERE clause, so a stale client
// cannot skip steps or advance somebody else's order.
func (s *orderService) Advance(ctx context.Context, orderID, driverID, to string) error {
	var from string
	switch to {
	case models.OrderInTransit:
		from = models.OrderPickedUp
	case models.OrderApproaching:
		from = models.OrderInTransit
	default:
		return ErrInvalidTransition
	}

	if !models.CanTransitionOrder(from, to) {
		return ErrInvalidTransition
	}

	ok, err := s.orders.Advance(ctx, orderID, driverID, from, to)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidTransition
	}
	return nil
}

func (s *orderService) commissionRate(ctx context.Context) float64 {
	setting, err := s.settings.Get(ctx, models.SettingCommissionRate)
	if err != nil || setting == nil {
		return 0.15
	}
	return cast.ToFloat64(setting.Value)
}

func (s *orderService) Complete(ctx context.Context, orderID, driverID string) (*models.Order, error) {
	o, err := s.orders.Complete(ctx, orderID, driverID, s.commissionRate(ctx))
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrInvalidTransition
	}

	s.notify.OrderCompleted(o)
	s.log.Info("order completed",
		logger.String("order_id", o.ID),
		logger.Float64("price", o.Price),
	)
	return o, nil
}

func (s *orderService) Track(ctx context.Context, orderID, customerID string) (*Tracking, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	if o.CustomerID != customerID {
		return nil, ErrNotOrderOwner
	}

	t := &Tracking{Order: o}
	if o.DriverID != nil && !models.TerminalOrderStatus(o.Status) {
		loc, err := s.location.Latest(ctx, *o.DriverID)
		if err != nil {
			return nil, err
		}
		t.Location = loc
	}
	return t, nil
}
