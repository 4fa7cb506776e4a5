package handler

import (
	"errors"
	"net/http"

	"roamio/internal/domain"
	"roamio/internal/middleware"
	"roamio/internal/models"
	"roamio/internal/repository"
	"roamio/internal/service"
	"roamio/pkg/common"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AffiliateHandler serves the affiliate's own program surface: enrollment,
// dashboard, links, payout settings, and their commission/payout history.
type AffiliateHandler struct {
	svc            *service.AffiliateService
	payoutSvc      *service.PayoutService
	affiliateRepo  *repository.AffiliateRepository
	commissionRepo *repository.CommissionRepository
	payoutRepo     *repository.PayoutRepository
}

func NewAffiliateHandler(
	svc *service.AffiliateService,
	payoutSvc *service.PayoutService,
	affiliateRepo *repository.AffiliateRepository,
	commissionRepo *repository.CommissionRepository,
	payoutRepo *repository.PayoutRepository,
) *AffiliateHandler {
	return &AffiliateHandler{
		svc:            svc,
		payoutSvc:      payoutSvc,
		affiliateRepo:  affiliateRepo,
		commissionRepo: commissionRepo,
		payoutRepo:     payoutRepo,
	}
}

// Enroll handles POST /affiliate/register.
func (h *AffiliateHandler) Enroll(c *gin.Context) {
	a, err := h.svc.Enroll(middleware.GetUserID(c))
	if err != nil {
		switch err {
		case service.ErrAlreadyEnrolled:
			c.JSON(http.StatusConflict, common.Fail(err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, common.Fail("enrollment failed"))
		}
		return
	}
	c.JSON(http.StatusCreated, common.OK(a, "enrolled in the affiliate program"))
}

func (h *AffiliateHandler) Dashboard(c *gin.Context) {
	d, err := h.svc.Dashboard(middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrNotEnrolled) {
			c.JSON(http.StatusNotFound, common.Fail(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, common.Fail("could not load dashboard"))
		return
	}
	c.JSON(http.StatusOK, common.OK(d, ""))
}

// Links returns the affiliate's referral code and shareable URL.
func (h *AffiliateHandler) Links(c *gin.Context) {
	a, err := h.requireAffiliate(c)
	if err != nil {
		return
	}
	c.JSON(http.StatusOK, common.OK(gin.H{
		"referral_code": a.ReferralCode,
		"referral_link": h.svc.ReferralLink(a.ReferralCode),
		"total_clicks":  a.TotalClicks,
	}, ""))
}

func (h *AffiliateHandler) GetSettings(c *gin.Context) {
	a, err := h.requireAffiliate(c)
	if err != nil {
		return
	}
	c.JSON(http.StatusOK, common.OK(gin.H{
		"payout_method":  a.PayoutMethod,
		"payout_account": a.PayoutAccount,
	}, ""))
}

func (h *AffiliateHandler) UpdateSettings(c *gin.Context) {
	var req struct {
		PayoutMethod  string `json:"payout_method" binding:"required"`
		PayoutAccount string `json:"payout_account" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.Fail(err.Error()))
		return
	}
	method, ok := domain.ParsePayoutMethod(req.PayoutMethod)
	if !ok {
		c.JSON(http.StatusBadRequest, common.Invalid(common.FieldErrors{
			"payout_method": "method must be paypal, bank_transfer, or card",
		}))
		return
	}
	a, err := h.requireAffiliate(c)
	if err != nil {
		return
	}
	if err := h.affiliateRepo.UpdatePayoutSettings(a.ID, method, req.PayoutAccount); err != nil {
		c.JSON(http.StatusInternalServerError, common.Fail("could not update payout settings"))
		return
	}
	c.JSON(http.StatusOK, common.OK(nil, "payout settings updated"))
}

func (h *AffiliateHandler) ListCommissions(c *gin.Context) {
	a, err := h.requireAffiliate(c)
	if err != nil {
		return
	}
	page, limit := parsePagination(c)
	list, total, err := h.commissionRepo.ListByAffiliate(a.ID, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.Fail("could not list commissions"))
		return
	}
	c.JSON(http.StatusOK, common.Paginate(list, total, page, limit))
}

func (h *AffiliateHandler) ListPayouts(c *gin.Context) {
	a, err := h.requireAffiliate(c)
	if err != nil {
		return
	}
	page, limit := parsePagination(c)
	list, total, err := h.payoutRepo.ListByAffiliate(a.ID, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.Fail("could not list payouts"))
		return
	}
	c.JSON(http.StatusOK, common.Paginate(list, total, page, limit))
}

// RequestPayout handles POST /affiliate/payouts/request. Amount problems come
// back field-scoped; a non-active affiliate gets a conflict.
func (h *AffiliateHandler) RequestPayout(c *gin.Context) {
	var req struct {
		AmountCents int64  `json:"amount_cents" binding:"required"`
		Method      string `json:"method" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.Fail(err.Error()))
		return
	}
	p, err := h.payoutSvc.Request(middleware.GetUserID(c), req.AmountCents, req.Method)
	if err != nil {
		var ve *service.PayoutValidationError
		switch {
		case errors.As(err, &ve):
			c.JSON(http.StatusBadRequest, common.Invalid(ve.Fields))
		case errors.Is(err, service.ErrNotEnrolled):
			c.JSON(http.StatusNotFound, common.Fail(err.Error()))
		case errors.Is(err, domain.ErrInvalidTransition):
			c.JSON(http.StatusConflict, common.Fail("payouts require an active affiliate account"))
		default:
			c.JSON(http.StatusInternalServerError, common.Fail("payout request failed"))
		}
		return
	}
	c.JSON(http.StatusCreated, common.OK(p, "payout requested"))
}

// TrackClick handles the public GET /r/:code click-through.
func (h *AffiliateHandler) TrackClick(c *gin.Context) {
	c.Redirect(http.StatusFound, h.svc.TrackClick(c.Param("code")))
}

func (h *AffiliateHandler) requireAffiliate(c *gin.Context) (*models.Affiliate, error) {
	a, err := h.affiliateRepo.GetByUserID(middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, common.Fail("user is not an affiliate"))
		} else {
			c.JSON(http.StatusInternalServerError, common.Fail("could not load affiliate"))
		}
		return nil, err
	}
	return a, nil
}
