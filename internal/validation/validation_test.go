package validation

import (
	"testing"
	"time"

	"roamio/internal/domain"

	"github.com/stretchr/testify/assert"
)

func validRegistration() RegistrationInput {
	return RegistrationInput{
		FirstName:       "Ada",
		LastName:        "Lovelace",
		Email:           "ada@example.com",
		Password:        "Str0ngPass",
		ConfirmPassword: "Str0ngPass",
		AcceptTerms:     true,
	}
}

func TestRegistrationValid(t *testing.T) {
	assert.Nil(t, Registration(validRegistration()))
}

func TestRegistrationFieldScoped(t *testing.T) {
	in := validRegistration()
	in.FirstName = "A"
	in.Email = "not-an-email"
	errs := Registration(in)
	assert.Len(t, errs, 2)
	assert.Contains(t, errs, "first_name")
	assert.Contains(t, errs, "email")
	assert.NotContains(t, errs, "password")
}

func TestRegistrationPasswordPolicy(t *testing.T) {
	cases := map[string]string{
		"short":        "Ab1",
		"no upper":     "alllower1",
		"no lower":     "ALLUPPER1",
		"no digit":     "NoDigitsHere",
		"only digits":  "12345678",
		"exactly bad7": "Abc123x",
	}
	for name, pw := range cases {
		in := validRegistration()
		in.Password = pw
		in.ConfirmPassword = pw
		errs := Registration(in)
		assert.Contains(t, errs, "password", name)
	}
}

func TestRegistrationConfirmMismatch(t *testing.T) {
	in := validRegistration()
	in.ConfirmPassword = "Str0ngPass!"
	errs := Registration(in)
	assert.Contains(t, errs, "confirm_password")
}

func TestRegistrationTermsRequired(t *testing.T) {
	in := validRegistration()
	in.AcceptTerms = false
	assert.Contains(t, Registration(in), "accept_terms")
}

func TestCard(t *testing.T) {
	ok := CardInput{Number: "4111111111111111", Holder: "Ada Lovelace", Expiry: "12/27", CVV: "123"}
	assert.Nil(t, Card(ok))

	bad := ok
	bad.Expiry = "13/27"
	assert.Contains(t, Card(bad), "card_expiry")

	bad = ok
	bad.Expiry = "1/27"
	assert.Contains(t, Card(bad), "card_expiry")

	bad = ok
	bad.CVV = "12"
	assert.Contains(t, Card(bad), "card_cvv")

	bad = ok
	bad.CVV = "12345"
	assert.Contains(t, Card(bad), "card_cvv")

	bad = ok
	bad.Number = "  "
	assert.Contains(t, Card(bad), "card_number")

	// Four-digit CVV is fine.
	ok4 := ok
	ok4.CVV = "1234"
	assert.Nil(t, Card(ok4))
}

func TestBookingDates(t *testing.T) {
	in := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	out := in.AddDate(0, 0, 3)

	assert.Nil(t, BookingDates(in, out, 2))

	// Check-out equal to check-in is rejected.
	errs := BookingDates(in, in, 2)
	assert.Contains(t, errs, "check_out")

	// Check-out before check-in is rejected.
	errs = BookingDates(out, in, 2)
	assert.Contains(t, errs, "check_out")

	// Guest bounds.
	assert.Contains(t, BookingDates(in, out, 0), "guests")
	assert.Contains(t, BookingDates(in, out, 6), "guests")
	assert.Nil(t, BookingDates(in, out, 1))
	assert.Nil(t, BookingDates(in, out, 5))
}

func TestPriceAlertKindDependentDates(t *testing.T) {
	d1 := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 5)

	hotel := PriceAlertInput{
		Kind:             domain.BookingKindHotel,
		Destination:      "Lisbon",
		TargetPriceCents: 25000,
		CheckIn:          &d1,
		CheckOut:         &d2,
	}
	assert.Nil(t, PriceAlert(hotel))

	// Hotel alert without its stay window fails on those fields.
	hotel.CheckIn = nil
	hotel.CheckOut = nil
	errs := PriceAlert(hotel)
	assert.Contains(t, errs, "check_in")
	assert.Contains(t, errs, "check_out")

	flight := PriceAlertInput{
		Kind:             domain.BookingKindFlight,
		Destination:      "Tokyo",
		TargetPriceCents: 80000,
		DepartDate:       &d1,
		ReturnDate:       &d2,
	}
	assert.Nil(t, PriceAlert(flight))

	flight.ReturnDate = nil
	assert.Contains(t, PriceAlert(flight), "return_date")

	unknown := PriceAlertInput{Kind: "CRUISE", Destination: "Oslo", TargetPriceCents: 100}
	assert.Contains(t, PriceAlert(unknown), "kind")

	zeroPrice := hotel
	zeroPrice.Kind = domain.BookingKindHotel
	zeroPrice.TargetPriceCents = 0
	assert.Contains(t, PriceAlert(zeroPrice), "target_price")
}

func TestPayoutRequestAmounts(t *testing.T) {
	// Available 120.00, minimum 10.00.
	available := int64(12000)
	min := int64(1000)

	assert.Nil(t, PayoutRequest(10000, available, min, "paypal"))
	assert.Nil(t, PayoutRequest(12000, available, min, "bank_transfer"))

	errs := PayoutRequest(15000, available, min, "paypal")
	assert.Equal(t, "insufficient balance", errs["amount"])

	errs = PayoutRequest(500, available, min, "paypal")
	assert.Contains(t, errs, "amount")

	errs = PayoutRequest(0, available, min, "paypal")
	assert.Contains(t, errs, "amount")

	errs = PayoutRequest(-100, available, min, "paypal")
	assert.Contains(t, errs, "amount")

	errs = PayoutRequest(10000, available, min, "cheque")
	assert.Contains(t, errs, "method")
}
