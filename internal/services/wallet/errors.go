package wallet

import "errors"

var (
	ErrInvalidAmount = errors.New("invalid amount")
)

// InsufficientFundsError is returned when a payment exceeds the current
// balance. The balance at the time of the attempt rides along so the
// caller can surface it.
type InsufficientFundsError struct {
	CurrentBalance float64
}

func (e *InsufficientFundsError) Error() string {
	return "insufficient balance"
}
