package domain

import "errors"

// ErrInvalidTransition is returned when a lifecycle command is not allowed
// from the entity's current status. Handlers map it to 409.
var ErrInvalidTransition = errors.New("invalid status transition")

// AffiliateStatus is the closed set of affiliate program states.
type AffiliateStatus string

const (
	AffiliatePending   AffiliateStatus = "pending"
	AffiliateActive    AffiliateStatus = "active"
	AffiliateSuspended AffiliateStatus = "suspended"
	AffiliateBanned    AffiliateStatus = "banned"
)

func ParseAffiliateStatus(s string) (AffiliateStatus, bool) {
	switch AffiliateStatus(s) {
	case AffiliatePending, AffiliateActive, AffiliateSuspended, AffiliateBanned:
		return AffiliateStatus(s), true
	}
	return "", false
}

// CanTransition reports whether from -> to is a legal affiliate transition.
// banned is terminal; suspended has no documented forward path.
func (from AffiliateStatus) CanTransition(to AffiliateStatus) bool {
	if from == to {
		return false
	}
	switch to {
	case AffiliateActive:
		return from == AffiliatePending
	case AffiliateSuspended:
		return from == AffiliateActive
	case AffiliateBanned:
		return from != AffiliateBanned
	}
	return false
}

// Terminal reports whether the affiliate can no longer participate in the program.
func (s AffiliateStatus) Terminal() bool { return s == AffiliateBanned }

// Verifiable reports whether the verified flag may be set in this status.
func (s AffiliateStatus) Verifiable() bool {
	return s == AffiliatePending || s == AffiliateActive
}

// CommissionStatus is the closed set of ledger entry states.
type CommissionStatus string

const (
	CommissionPending  CommissionStatus = "pending"
	CommissionApproved CommissionStatus = "approved"
	CommissionRejected CommissionStatus = "rejected"
)

// Terminal reports whether the entry can no longer be resolved.
// Only pending entries accept approve/reject.
func (s CommissionStatus) Terminal() bool { return s != CommissionPending }

func (from CommissionStatus) CanTransition(to CommissionStatus) bool {
	return from == CommissionPending && (to == CommissionApproved || to == CommissionRejected)
}

// PayoutStatus is the closed set of withdrawal request states.
type PayoutStatus string

const (
	PayoutPending    PayoutStatus = "pending"
	PayoutProcessing PayoutStatus = "processing"
	PayoutCompleted  PayoutStatus = "completed"
	PayoutRejected   PayoutStatus = "rejected"
)

// Terminal reports whether the payout accepts no further lifecycle commands.
func (s PayoutStatus) Terminal() bool {
	return s == PayoutCompleted || s == PayoutRejected
}

// CanTransition encodes the strictly forward payout lifecycle:
// pending -> processing -> completed, with rejection reachable from
// pending or processing.
func (from PayoutStatus) CanTransition(to PayoutStatus) bool {
	switch from {
	case PayoutPending:
		return to == PayoutProcessing || to == PayoutRejected
	case PayoutProcessing:
		return to == PayoutCompleted || to == PayoutRejected
	}
	return false
}

// PayoutMethod is the enumerated withdrawal channel.
type PayoutMethod string

const (
	PayoutMethodPaypal PayoutMethod = "paypal"
	PayoutMethodBank   PayoutMethod = "bank_transfer"
	PayoutMethodCard   PayoutMethod = "card"
)

func ParsePayoutMethod(s string) (PayoutMethod, bool) {
	switch PayoutMethod(s) {
	case PayoutMethodPaypal, PayoutMethodBank, PayoutMethodCard:
		return PayoutMethod(s), true
	}
	return "", false
}
