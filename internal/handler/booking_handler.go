package handler

import (
	"errors"
	"net/http"
	"time"

	"roamio/internal/domain"
	"roamio/internal/middleware"
	"roamio/internal/repository"
	"roamio/internal/service"
	"roamio/internal/validation"
	"roamio/pkg/common"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type BookingHandler struct {
	svc         *service.BookingService
	bookingRepo *repository.BookingRepository
}

func NewBookingHandler(svc *service.BookingService, bookingRepo *repository.BookingRepository) *BookingHandler {
	return &BookingHandler{svc: svc, bookingRepo: bookingRepo}
}

type CreateBookingRequest struct {
	Kind             string `json:"kind"`
	Destination      string `json:"destination"`
	CheckIn          string `json:"check_in"`  // YYYY-MM-DD
	CheckOut         string `json:"check_out"` // YYYY-MM-DD
	Guests           int    `json:"guests"`
	Rooms            int    `json:"rooms"`
	NightlyRateCents int64  `json:"nightly_rate_cents"`

	CardNumber string `json:"card_number"`
	CardHolder string `json:"card_holder"`
	CardExpiry string `json:"card_expiry"` // MM/YY
	CardCVV    string `json:"card_cvv"`
}

// Create handles POST /bookings. Dates, guest count, and the payment capture
// are all validated before anything touches the database; failures come back
// field-scoped in a single response.
func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.Fail(err.Error()))
		return
	}
	errs := common.FieldErrors{}
	if req.Kind != domain.BookingKindHotel && req.Kind != domain.BookingKindFlight {
		errs["kind"] = "kind must be HOTEL or FLIGHT"
	}
	if req.Destination == "" {
		errs["destination"] = "destination is required"
	}
	if req.NightlyRateCents <= 0 {
		errs["nightly_rate_cents"] = "nightly rate must be greater than zero"
	}
	checkIn, errIn := time.Parse("2006-01-02", req.CheckIn)
	checkOut, errOut := time.Parse("2006-01-02", req.CheckOut)
	if errIn != nil {
		errs["check_in"] = "check-in must be a YYYY-MM-DD date"
	}
	if errOut != nil {
		errs["check_out"] = "check-out must be a YYYY-MM-DD date"
	}
	if errIn == nil && errOut == nil {
		for k, v := range validation.BookingDates(checkIn, checkOut, req.Guests) {
			errs[k] = v
		}
	} else if req.Guests < domain.MinGuests || req.Guests > domain.MaxGuests {
		errs["guests"] = "guests must be between 1 and 5"
	}
	for k, v := range validation.Card(validation.CardInput{
		Number: req.CardNumber,
		Holder: req.CardHolder,
		Expiry: req.CardExpiry,
		CVV:    req.CardCVV,
	}) {
		errs[k] = v
	}
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, common.Invalid(errs))
		return
	}

	b, err := h.svc.Create(service.CreateInput{
		UserID:           middleware.GetUserID(c),
		Kind:             req.Kind,
		Destination:      req.Destination,
		CheckIn:          checkIn,
		CheckOut:         checkOut,
		Guests:           req.Guests,
		Rooms:            req.Rooms,
		NightlyRateCents: req.NightlyRateCents,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.Fail("booking failed"))
		return
	}
	c.JSON(http.StatusCreated, common.OK(b, "booking confirmed"))
}

func (h *BookingHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)
	list, total, err := h.bookingRepo.ListByUser(middleware.GetUserID(c), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.Fail("could not list bookings"))
		return
	}
	c.JSON(http.StatusOK, common.Paginate(list, total, page, limit))
}

func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, common.Fail("invalid booking id"))
		return
	}
	b, err := h.bookingRepo.GetByID(id)
	if err != nil || b.UserID != middleware.GetUserID(c) {
		c.JSON(http.StatusNotFound, common.Fail("booking not found"))
		return
	}
	c.JSON(http.StatusOK, common.OK(b, ""))
}

// Cancel handles DELETE /bookings/:id. Cancelling twice is a conflict.
func (h *BookingHandler) Cancel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, common.Fail("invalid booking id"))
		return
	}
	b, err := h.bookingRepo.GetByID(id)
	if err != nil || b.UserID != middleware.GetUserID(c) {
		c.JSON(http.StatusNotFound, common.Fail("booking not found"))
		return
	}
	b, err = h.svc.Cancel(id)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrConflict):
			c.JSON(http.StatusConflict, common.Fail("booking is already cancelled"))
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, common.Fail("booking not found"))
		default:
			c.JSON(http.StatusInternalServerError, common.Fail("cancellation failed"))
		}
		return
	}
	c.JSON(http.StatusOK, common.OK(b, "booking cancelled"))
}
