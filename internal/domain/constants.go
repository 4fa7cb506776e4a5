package domain

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

const (
	BookingKindHotel  = "HOTEL"
	BookingKindFlight = "FLIGHT"
)

const (
	BookingStatusConfirmed = "CONFIRMED"
	BookingStatusCancelled = "CANCELLED"
)

// Guest counts on a booking are a bounded choice.
const (
	MinGuests = 1
	MaxGuests = 5
)

// Admin-editable settings keys (system_settings table).
const (
	SettingRequireVerification = "affiliate_require_verification" // "true"/"false"
	SettingMaxLevels           = "affiliate_max_levels"
	SettingPayoutMinCents      = "payout_min_cents"
	// Per-level commission rate in basis points, e.g. commission_rate_bps_level_1.
	SettingRateBpsLevelPrefix = "commission_rate_bps_level_"
)
