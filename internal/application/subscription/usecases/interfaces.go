package usecases

import (
	"context"

	"github.com/shopspring/decimal"
)

// PaymentResult describes the outcome of a charge attempt.
type PaymentResult struct {
	Succeeded     bool
	TransactionID string
}

// PaymentGateway charges a user for a subscription period. A declined charge
// is reported through the result, not the error; the error path is reserved
// for infrastructure failures.
type PaymentGateway interface {
	Charge(ctx context.Context, userID uint, reference string, amount decimal.Decimal) (PaymentResult, error)
}
