package service

import (
	"time"

	"roamio/config"
	"roamio/internal/domain"
	"roamio/internal/models"
	"roamio/internal/repository"

	"github.com/google/uuid"
)

type BookingService struct {
	cfg           *config.Config
	bookingRepo   *repository.BookingRepository
	commissionSvc *CommissionService
}

func NewBookingService(cfg *config.Config, bookingRepo *repository.BookingRepository, commissionSvc *CommissionService) *BookingService {
	return &BookingService{cfg: cfg, bookingRepo: bookingRepo, commissionSvc: commissionSvc}
}

// Nights is the whole-night count between check-in and check-out, never
// below one for a date pair that already passed validation.
func Nights(checkIn, checkOut time.Time) int {
	n := int(checkOut.Sub(checkIn).Hours() / 24)
	if n < 1 {
		n = 1
	}
	return n
}

// TotalCents prices a stay: nights x nightly rate x rooms.
func TotalCents(checkIn, checkOut time.Time, nightlyRateCents int64, rooms int) int64 {
	if rooms < 1 {
		rooms = 1
	}
	return int64(Nights(checkIn, checkOut)) * nightlyRateCents * int64(rooms)
}

// CreateInput has passed validation at the handler boundary; payment capture
// is format-checked only, the charge itself is a stand-in pending a real
// gateway collaborator.
type CreateInput struct {
	UserID           uint
	Kind             string
	Destination      string
	CheckIn          time.Time
	CheckOut         time.Time
	Guests           int
	Rooms            int
	NightlyRateCents int64
}

// Create confirms the booking and accrues referral commissions for it.
func (s *BookingService) Create(in CreateInput) (*models.Booking, error) {
	b := &models.Booking{
		UserID:           in.UserID,
		Reference:        "bk-" + uuid.New().String(),
		Kind:             in.Kind,
		Destination:      in.Destination,
		CheckIn:          in.CheckIn,
		CheckOut:         in.CheckOut,
		Guests:           in.Guests,
		Rooms:            in.Rooms,
		NightlyRateCents: in.NightlyRateCents,
		TotalCents:       TotalCents(in.CheckIn, in.CheckOut, in.NightlyRateCents, in.Rooms),
		Currency:         s.cfg.App.DefaultCurrency,
		Status:           domain.BookingStatusConfirmed,
		PaymentRef:       "pay-" + uuid.New().String(),
	}
	if err := s.bookingRepo.Create(b); err != nil {
		return nil, err
	}
	s.commissionSvc.Accrue(b)
	return b, nil
}

// Cancel is guarded in the repository: cancelling twice is a conflict.
func (s *BookingService) Cancel(id uint) (*models.Booking, error) {
	return s.bookingRepo.Cancel(id)
}
