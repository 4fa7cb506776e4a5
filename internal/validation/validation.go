package validation

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"roamio/internal/domain"
	"roamio/pkg/common"
)

// All checks here are field-scoped: a failure maps the field name to a
// message and leaves the rest of the submission untouched. A nil/empty
// result means the submission may proceed.

var (
	emailRe  = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	expiryRe = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cvvRe    = regexp.MustCompile(`^\d{3,4}$`)
)

// RegistrationInput is the signup form.
type RegistrationInput struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
	AcceptTerms     bool
}

// Registration enforces the signup contract: names at least 2 chars, a valid
// email shape, the password policy, matching confirmation, and accepted terms.
func Registration(in RegistrationInput) common.FieldErrors {
	errs := common.FieldErrors{}
	if len(strings.TrimSpace(in.FirstName)) < 2 {
		errs["first_name"] = "first name must be at least 2 characters"
	}
	if len(strings.TrimSpace(in.LastName)) < 2 {
		errs["last_name"] = "last name must be at least 2 characters"
	}
	if !emailRe.MatchString(in.Email) {
		errs["email"] = "invalid email address"
	}
	if msg := passwordPolicy(in.Password); msg != "" {
		errs["password"] = msg
	}
	if in.Password != in.ConfirmPassword {
		errs["confirm_password"] = "passwords do not match"
	}
	if !in.AcceptTerms {
		errs["accept_terms"] = "you must accept the terms of service"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// passwordPolicy: at least 8 chars with an upper-case letter, a lower-case
// letter, and a digit.
func passwordPolicy(pw string) string {
	if len(pw) < 8 {
		return "password must be at least 8 characters"
	}
	var upper, lower, digit bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper || !lower || !digit {
		return "password must contain an upper-case letter, a lower-case letter, and a digit"
	}
	return ""
}

// CardInput is the checkout payment capture. Format checks only: no Luhn,
// no gateway verification; the disbursement side talks to the real provider.
type CardInput struct {
	Number string
	Holder string
	Expiry string // MM/YY
	CVV    string
}

func Card(in CardInput) common.FieldErrors {
	errs := common.FieldErrors{}
	if strings.TrimSpace(in.Number) == "" {
		errs["card_number"] = "card number is required"
	}
	if strings.TrimSpace(in.Holder) == "" {
		errs["card_holder"] = "card holder name is required"
	}
	if !expiryRe.MatchString(in.Expiry) {
		errs["card_expiry"] = "expiry must be in MM/YY format"
	}
	if !cvvRe.MatchString(in.CVV) {
		errs["card_cvv"] = "CVV must be 3 or 4 digits"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// BookingDates requires check-out to be strictly after check-in, and the
// guest count to stay within the bounded choice.
func BookingDates(checkIn, checkOut time.Time, guests int) common.FieldErrors {
	errs := common.FieldErrors{}
	if checkIn.IsZero() {
		errs["check_in"] = "check-in date is required"
	}
	if checkOut.IsZero() {
		errs["check_out"] = "check-out date is required"
	}
	if !checkIn.IsZero() && !checkOut.IsZero() && !checkOut.After(checkIn) {
		errs["check_out"] = "check-out must be after check-in"
	}
	if guests < domain.MinGuests || guests > domain.MaxGuests {
		errs["guests"] = "guests must be between 1 and 5"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// PriceAlertInput carries the fields whose presence depends on the alert kind.
type PriceAlertInput struct {
	Kind             string
	Destination      string
	TargetPriceCents int64
	CheckIn          *time.Time
	CheckOut         *time.Time
	DepartDate       *time.Time
	ReturnDate       *time.Time
}

// PriceAlert: target price positive, destination present, and the date pair
// required by the alert kind.
func PriceAlert(in PriceAlertInput) common.FieldErrors {
	errs := common.FieldErrors{}
	if strings.TrimSpace(in.Destination) == "" {
		errs["destination"] = "destination is required"
	}
	if in.TargetPriceCents <= 0 {
		errs["target_price"] = "target price must be greater than zero"
	}
	switch in.Kind {
	case domain.BookingKindHotel:
		if in.CheckIn == nil {
			errs["check_in"] = "check-in date is required for hotel alerts"
		}
		if in.CheckOut == nil {
			errs["check_out"] = "check-out date is required for hotel alerts"
		}
	case domain.BookingKindFlight:
		if in.DepartDate == nil {
			errs["depart_date"] = "departure date is required for flight alerts"
		}
		if in.ReturnDate == nil {
			errs["return_date"] = "return date is required for flight alerts"
		}
	default:
		errs["kind"] = "kind must be HOTEL or FLIGHT"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// PayoutRequest guards a withdrawal before anything is persisted or sent to a
// provider: positive amount, within the freshly computed available balance,
// above the configured minimum, with a known method.
func PayoutRequest(amountCents, availableCents, minCents int64, method string) common.FieldErrors {
	errs := common.FieldErrors{}
	if amountCents <= 0 {
		errs["amount"] = "amount must be greater than zero"
	} else if amountCents < minCents {
		errs["amount"] = "amount is below the minimum payout"
	} else if amountCents > availableCents {
		errs["amount"] = "insufficient balance"
	}
	if _, ok := domain.ParsePayoutMethod(method); !ok {
		errs["method"] = "method must be paypal, bank_transfer, or card"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
