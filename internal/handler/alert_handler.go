package handler

import (
	"errors"
	"net/http"
	"time"

	"roamio/internal/middleware"
	"roamio/internal/models"
	"roamio/internal/repository"
	"roamio/internal/validation"
	"roamio/pkg/common"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AlertHandler struct {
	alertRepo *repository.AlertRepository
}

func NewAlertHandler(alertRepo *repository.AlertRepository) *AlertHandler {
	return &AlertHandler{alertRepo: alertRepo}
}

type CreateAlertRequest struct {
	Kind             string `json:"kind"`
	Destination      string `json:"destination"`
	TargetPriceCents int64  `json:"target_price_cents"`
	CheckIn          string `json:"check_in,omitempty"`
	CheckOut         string `json:"check_out,omitempty"`
	DepartDate       string `json:"depart_date,omitempty"`
	ReturnDate       string `json:"return_date,omitempty"`
}

func parseDate(s string, field string, errs common.FieldErrors) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		errs[field] = "must be a YYYY-MM-DD date"
		return nil
	}
	return &t
}

// Create handles POST /price-alerts. Which dates are required depends on the
// alert kind: hotels need a stay window, flights need depart/return.
func (h *AlertHandler) Create(c *gin.Context) {
	var req CreateAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.Fail(err.Error()))
		return
	}
	errs := common.FieldErrors{}
	in := validation.PriceAlertInput{
		Kind:             req.Kind,
		Destination:      req.Destination,
		TargetPriceCents: req.TargetPriceCents,
		CheckIn:          parseDate(req.CheckIn, "check_in", errs),
		CheckOut:         parseDate(req.CheckOut, "check_out", errs),
		DepartDate:       parseDate(req.DepartDate, "depart_date", errs),
		ReturnDate:       parseDate(req.ReturnDate, "return_date", errs),
	}
	for k, v := range validation.PriceAlert(in) {
		if _, taken := errs[k]; !taken {
			errs[k] = v
		}
	}
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, common.Invalid(errs))
		return
	}
	a := &models.PriceAlert{
		UserID:           middleware.GetUserID(c),
		Kind:             req.Kind,
		Destination:      req.Destination,
		TargetPriceCents: req.TargetPriceCents,
		CheckIn:          in.CheckIn,
		CheckOut:         in.CheckOut,
		DepartDate:       in.DepartDate,
		ReturnDate:       in.ReturnDate,
		Active:           true,
	}
	if err := h.alertRepo.Create(a); err != nil {
		c.JSON(http.StatusInternalServerError, common.Fail("could not create alert"))
		return
	}
	c.JSON(http.StatusCreated, common.OK(a, "price alert created"))
}

func (h *AlertHandler) List(c *gin.Context) {
	list, err := h.alertRepo.ListByUser(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.Fail("could not list alerts"))
		return
	}
	c.JSON(http.StatusOK, common.OK(list, ""))
}

func (h *AlertHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, common.Fail("invalid alert id"))
		return
	}
	if err := h.alertRepo.Delete(id, middleware.GetUserID(c)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, common.Fail("alert not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, common.Fail("could not delete alert"))
		return
	}
	c.JSON(http.StatusOK, common.OK(nil, "price alert deleted"))
}
