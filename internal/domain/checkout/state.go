package checkout

import "errors"

var ErrIllegalTransition = errors.New("illegal checkout state transition")

// State is the position of one checkout attempt in the commit state machine.
type State string

const (
	StateInitiated        State = "INITIATED"
	StatePriced           State = "PRICED"
	StatePaymentPending   State = "PAYMENT_PENDING"
	StatePaymentConfirmed State = "PAYMENT_CONFIRMED"
	StateStockReserved    State = "STOCK_RESERVED"
	StateOrderPersisted   State = "ORDER_PERSISTED"

	StatePricingFailed State = "PRICING_FAILED"
	StatePaymentFailed State = "PAYMENT_FAILED"
	StateStockConflict State = "STOCK_CONFLICT"
	StatePersistFailed State = "PERSIST_FAILED"
)

// PAYMENT_CONFIRMED may jump to ORDER_PERSISTED when an order tagged with the same key already exists.
var transitions = map[State][]State{
	StateInitiated:        {StatePriced, StatePricingFailed},
	StatePriced:           {StatePaymentPending, StatePaymentFailed},
	StatePaymentPending:   {StatePaymentConfirmed, StatePaymentFailed},
	StatePaymentConfirmed: {StateStockReserved, StateStockConflict, StatePersistFailed, StateOrderPersisted},
	StateStockReserved:    {StateOrderPersisted, StatePersistFailed},
}

func ParseState(s string) (State, error) {
	st := State(s)
	switch st {
	case StateInitiated, StatePriced, StatePaymentPending, StatePaymentConfirmed, StateStockReserved,
		StateOrderPersisted, StatePricingFailed, StatePaymentFailed, StateStockConflict, StatePersistFailed:
		return st, nil
	}
	return "", errors.New("unknown checkout state: " + s)
}

func (s State) String() string { return string(s) }

func (s State) CanTransitionTo(next State) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s State) IsTerminal() bool {
	return s == StateOrderPersisted || s.IsFailure()
}

func (s State) IsFailure() bool {
	switch s {
	case StatePricingFailed, StatePaymentFailed, StateStockConflict, StatePersistFailed:
		return true
	}
	return false
}

// PaymentCaptured reports whether the gateway has confirmed the charge for an attempt in this state.
func (s State) PaymentCaptured() bool {
	switch s {
	case StatePaymentConfirmed, StateStockReserved, StateOrderPersisted, StateStockConflict, StatePersistFailed:
		return true
	}
	return false
}
