package payout

import "context"

// DisbursementRequest describes one transfer to an affiliate's payout account.
type DisbursementRequest struct {
	Reference   string // payout reference, used as idempotency key
	AmountCents int64
	Currency    string
	Account     string // PayPal email, IBAN, or card reference depending on provider
	Description string
}

// DisbursementResponse carries the provider's transaction identifier.
type DisbursementResponse struct {
	TransactionID string
	Status        string
}

// Provider executes completed payouts against an external money-movement API.
type Provider interface {
	Disburse(ctx context.Context, req DisbursementRequest) (*DisbursementResponse, error)
}
