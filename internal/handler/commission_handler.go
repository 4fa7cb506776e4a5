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

// CommissionHandler is admin-only: reviewing and resolving pending entries.
type CommissionHandler struct {
	svc            *service.CommissionService
	commissionRepo *repository.CommissionRepository
}

func NewCommissionHandler(svc *service.CommissionService, commissionRepo *repository.CommissionRepository) *CommissionHandler {
	return &CommissionHandler{svc: svc, commissionRepo: commissionRepo}
}

func (h *CommissionHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)
	list, total, err := h.commissionRepo.List(c.Query("status"), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.Fail("could not list commissions"))
		return
	}
	c.JSON(http.StatusOK, common.Paginate(list, total, page, limit))
}

// Approve handles POST /admin/commissions/:id/approve. An entry that is no
// longer pending yields a conflict, never a second approval.
func (h *CommissionHandler) Approve(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, common.Fail("invalid commission id"))
		return
	}
	entry, err := h.svc.Approve(id)
	if err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, common.OK(entry, "commission approved"))
}

// Reject handles POST /admin/commissions/:id/reject; the reason is mandatory.
func (h *CommissionHandler) Reject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, common.Fail("invalid commission id"))
		return
	}
	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.Fail(err.Error()))
		return
	}
	entry, err := h.svc.Reject(id, req.Reason)
	if err != nil {
		h.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, common.OK(entry, "commission rejected"))
}

func (h *CommissionHandler) respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrReasonRequired):
		c.JSON(http.StatusBadRequest, common.Invalid(common.FieldErrors{"reason": "a reason is required"}))
	case errors.Is(err, repository.ErrConflict):
		c.JSON(http.StatusConflict, common.Fail("commission is no longer pending"))
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, common.Fail("commission not found"))
	default:
		c.JSON(http.StatusInternalServerError, common.Fail("commission update failed"))
	}
}
