package order

import "errors"

var (
	ErrInvalidStatus           = errors.New("invalid order status")
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPaid      Status = "PAID"
	StatusFailed    Status = "FAILED"
	StatusCancelled Status = "CANCELLED"
	StatusRefunded  Status = "REFUNDED"
)

var allowedTransitions = map[Status][]Status{
	StatusPending:   {StatusPaid, StatusFailed},
	StatusPaid:      {StatusCancelled, StatusRefunded},
	StatusCancelled: {StatusRefunded},
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusFailed, StatusCancelled, StatusRefunded:
		return true
	default:
		return false
	}
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// HoldsStock reports whether an order in this status still owns its decremented stock.
func (s Status) HoldsStock() bool {
	return s == StatusPaid
}

// ReleasesStock reports whether moving from s to next must give the stock back to the catalog.
func (s Status) ReleasesStock(next Status) bool {
	return s.HoldsStock() && next == StatusCancelled
}
