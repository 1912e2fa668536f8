package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrAccountBlocked     = errors.New("account is suspended or banned")
	ErrUnknownUserType    = errors.New("unknown user type")

	ErrDriverNotFound     = errors.New("driver not found")
	ErrDriverNotApproved  = errors.New("driver is not approved")
	ErrDriverFrozen       = errors.New("driver application is frozen, contact support")
	ErrReapplyLimit       = errors.New("reapply limit reached")
	ErrSubscriptionNeeded = errors.New("active subscription required")
	ErrInvalidPlan        = errors.New("unknown subscription plan")

	ErrOrderNotFound     = errors.New("order not found")
	ErrOrderTaken        = errors.New("order no longer available")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrCancelNotAllowed  = errors.New("order can no longer be cancelled")
	ErrNotOrderOwner     = errors.New("order belongs to another user")

	ErrComplaintNotPending = errors.New("complaint already resolved")
)
