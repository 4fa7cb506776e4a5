package payout

import (
	"context"
	"fmt"
	"time"
)

// StubProvider is a no-op provider for development; replace with PayPal/bank
// rails in production. It fabricates a transaction ID so the completion flow
// can be exercised end to end.
type StubProvider struct{}

func (s *StubProvider) Disburse(ctx context.Context, req DisbursementRequest) (*DisbursementResponse, error) {
	return &DisbursementResponse{
		TransactionID: fmt.Sprintf("stub_%d_%s", time.Now().UnixNano(), req.Reference),
		Status:        "COMPLETED",
	}, nil
}
