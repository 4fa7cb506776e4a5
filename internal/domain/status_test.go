package domain

import "testing"

func TestAffiliateTransitions(t *testing.T) {
	cases := []struct {
		from, to AffiliateStatus
		want     bool
	}{
		{AffiliatePending, AffiliateActive, true},
		{AffiliatePending, AffiliateBanned, true},
		{AffiliatePending, AffiliateSuspended, false},
		{AffiliateActive, AffiliateSuspended, true},
		{AffiliateActive, AffiliateBanned, true},
		{AffiliateActive, AffiliatePending, false},
		{AffiliateSuspended, AffiliateBanned, true},
		{AffiliateSuspended, AffiliateActive, false},
		{AffiliateBanned, AffiliateActive, false},
		{AffiliateBanned, AffiliateBanned, false},
		{AffiliateActive, AffiliateActive, false},
	}
	for _, c := range cases {
		if got := c.from.CanTransition(c.to); got != c.want {
			t.Errorf("%s -> %s: got %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestAffiliateBannedIsTerminal(t *testing.T) {
	for _, to := range []AffiliateStatus{AffiliatePending, AffiliateActive, AffiliateSuspended, AffiliateBanned} {
		if AffiliateBanned.CanTransition(to) {
			t.Errorf("banned must not transition to %s", to)
		}
	}
	if !AffiliateBanned.Terminal() {
		t.Error("banned must be terminal")
	}
}

func TestAffiliateVerifiable(t *testing.T) {
	if !AffiliatePending.Verifiable() || !AffiliateActive.Verifiable() {
		t.Error("pending and active must be verifiable")
	}
	if AffiliateSuspended.Verifiable() || AffiliateBanned.Verifiable() {
		t.Error("suspended and banned must not be verifiable")
	}
}

func TestCommissionTransitions(t *testing.T) {
	if !CommissionPending.CanTransition(CommissionApproved) {
		t.Error("pending -> approved must be legal")
	}
	if !CommissionPending.CanTransition(CommissionRejected) {
		t.Error("pending -> rejected must be legal")
	}
	for _, from := range []CommissionStatus{CommissionApproved, CommissionRejected} {
		for _, to := range []CommissionStatus{CommissionPending, CommissionApproved, CommissionRejected} {
			if from.CanTransition(to) {
				t.Errorf("%s -> %s must be illegal", from, to)
			}
		}
		if !from.Terminal() {
			t.Errorf("%s must be terminal", from)
		}
	}
	if CommissionPending.Terminal() {
		t.Error("pending must not be terminal")
	}
}

func TestPayoutTransitions(t *testing.T) {
	cases := []struct {
		from, to PayoutStatus
		want     bool
	}{
		{PayoutPending, PayoutProcessing, true},
		{PayoutPending, PayoutRejected, true},
		{PayoutPending, PayoutCompleted, false},
		{PayoutProcessing, PayoutCompleted, true},
		{PayoutProcessing, PayoutRejected, true},
		{PayoutProcessing, PayoutPending, false},
		{PayoutCompleted, PayoutRejected, false},
		{PayoutCompleted, PayoutProcessing, false},
		{PayoutRejected, PayoutPending, false},
		{PayoutRejected, PayoutCompleted, false},
	}
	for _, c := range cases {
		if got := c.from.CanTransition(c.to); got != c.want {
			t.Errorf("%s -> %s: got %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestPayoutTerminal(t *testing.T) {
	if PayoutPending.Terminal() || PayoutProcessing.Terminal() {
		t.Error("pending and processing must not be terminal")
	}
	if !PayoutCompleted.Terminal() || !PayoutRejected.Terminal() {
		t.Error("completed and rejected must be terminal")
	}
}

func TestParsePayoutMethod(t *testing.T) {
	for _, s := range []string{"paypal", "bank_transfer", "card"} {
		if _, ok := ParsePayoutMethod(s); !ok {
			t.Errorf("%q must parse", s)
		}
	}
	for _, s := range []string{"", "venmo", "PAYPAL"} {
		if _, ok := ParsePayoutMethod(s); ok {
			t.Errorf("%q must not parse", s)
		}
	}
}

func TestParseAffiliateStatus(t *testing.T) {
	if _, ok := ParseAffiliateStatus("active"); !ok {
		t.Error("active must parse")
	}
	if _, ok := ParseAffiliateStatus("deleted"); ok {
		t.Error("deleted must not parse")
	}
}
