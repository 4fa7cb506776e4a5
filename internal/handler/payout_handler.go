package handler

import (
	"errors"
	"net/http"

	"roamio/internal/repository"
	"roamio/internal/service"
	"roamio/pkg/common"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PayoutHandler is the admin side of the payout lifecycle. The affiliate's
// own request/list endpoints live on AffiliateHandler.
type PayoutHandler struct {
	svc        *service.PayoutService
	payoutRepo *repository.PayoutRepository
}

func NewPayoutHandler(svc *service.PayoutService, payoutRepo *repository.PayoutRepository) *PayoutHandler {
	return &PayoutHandler{svc: svc, payoutRepo: payoutRepo}
}

func (h *PayoutHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)
	list, total, err := h.payoutRepo.List(c.Query("status"), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.Fail("could not list payouts"))
		return
	}
	c.JSON(http.StatusOK, common.Paginate(list, total, page, limit))
}

// Process handles POST /admin/payouts/:id/process (pending -> processing).
func (h *PayoutHandler) Process(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, common.Fail("invalid payout id"))
		return
	}
	p, err := h.svc.Process(id)
	if err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, common.OK(p, "payout processing"))
}

// Complete handles POST /admin/payouts/:id/complete. With no transaction_id in
// the body the disbursement provider runs and its reference is recorded.
func (h *PayoutHandler) Complete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, common.Fail("invalid payout id"))
		return
	}
	var req struct {
		TransactionID string `json:"transaction_id"`
	}
	// Body is optional for this command.
	_ = c.ShouldBindJSON(&req)
	p, err := h.svc.Complete(c.Request.Context(), id, req.TransactionID)
	if err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, common.OK(p, "payout completed"))
}

// Reject handles POST /admin/payouts/:id/reject; allowed from pending or
// processing, and the reason is mandatory.
func (h *PayoutHandler) Reject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, common.Fail("invalid payout id"))
		return
	}
	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.Fail(err.Error()))
		return
	}
	p, err := h.svc.Reject(id, req.Reason)
	if err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, common.OK(p, "payout rejected"))
}

func (h *PayoutHandler) respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrReasonRequired):
		c.JSON(http.StatusBadRequest, common.Invalid(common.FieldErrors{"reason": "a reason is required"}))
	case errors.Is(err, repository.ErrConflict):
		c.JSON(http.StatusConflict, common.Fail("payout is not in a state that allows this command"))
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, common.Fail("payout not found"))
	default:
		c.JSON(http.StatusInternalServerError, common.Fail("payout update failed"))
	}
}
