// Package payment provides the simulated payment gateway.
package payment

import (
	"context"
	"math/rand/v2"

	"github.com/shopspring/decimal"

	"lumina/internal/application/subscription/usecases"
	"lumina/internal/shared/id"
	"lumina/internal/shared/logger"
)

// Simulator approves charges with a fixed probability. It stands in for a
// real payment provider and never fails at the transport level.
type Simulator struct {
	successRate float64
	logger      logger.Interface
}

// NewSimulator creates a gateway that succeeds with the given probability.
// A rate of 1.0 approves everything, 0.0 declines everything.
func NewSimulator(successRate float64, log logger.Interface) *Simulator {
	return &Simulator{
		successRate: successRate,
		logger:      log,
	}
}

// Charge simulates a payment attempt.
func (s *Simulator) Charge(ctx context.Context, userID uint, reference string, amount decimal.Decimal) (usecases.PaymentResult, error) {
	succeeded := rand.Float64() < s.successRate

	txnID, err := id.Generate(id.PrefixTransaction)
	if err != nil {
		return usecases.PaymentResult{}, err
	}

	if succeeded {
		s.logger.Infow("payment approved",
			"user_id", userID,
			"reference", reference,
			"amount", amount.String(),
			"transaction_id", txnID)
	} else {
		s.logger.Warnw("payment declined",
			"user_id", userID,
			"reference", reference,
			"amount", amount.String(),
			"transaction_id", txnID)
	}

	return usecases.PaymentResult{
		Succeeded:     succeeded,
		TransactionID: txnID,
	}, nil
}
