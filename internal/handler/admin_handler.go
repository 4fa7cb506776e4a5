package handler

import (
	"errors"
	"net/http"
	"strconv"

	"roamio/internal/domain"
	"roamio/internal/repository"
	"roamio/internal/service"
	"roamio/pkg/common"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AdminHandler is the back-office surface: program analytics, affiliate
// lifecycle commands, and runtime settings.
type AdminHandler struct {
	affiliateSvc  *service.AffiliateService
	affiliateRepo *repository.AffiliateRepository
	analyticsRepo *repository.AnalyticsRepository
	settingRepo   *repository.SettingRepository
}

func NewAdminHandler(
	affiliateSvc *service.AffiliateService,
	affiliateRepo *repository.AffiliateRepository,
	analyticsRepo *repository.AnalyticsRepository,
	settingRepo *repository.SettingRepository,
) *AdminHandler {
	return &AdminHandler{
		affiliateSvc:  affiliateSvc,
		affiliateRepo: affiliateRepo,
		analyticsRepo: analyticsRepo,
		settingRepo:   settingRepo,
	}
}

func (h *AdminHandler) Analytics(c *gin.Context) {
	stats, err := h.analyticsRepo.GetProgramStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.Fail("could not compute analytics"))
		return
	}
	c.JSON(http.StatusOK, common.OK(stats, ""))
}

func (h *AdminHandler) TopPerformers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	rows, err := h.analyticsRepo.TopPerformers(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.Fail("could not rank affiliates"))
		return
	}
	c.JSON(http.StatusOK, common.OK(rows, ""))
}

func (h *AdminHandler) ListAffiliates(c *gin.Context) {
	page, limit := parsePagination(c)
	list, total, err := h.affiliateRepo.List(c.Query("status"), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.Fail("could not list affiliates"))
		return
	}
	c.JSON(http.StatusOK, common.Paginate(list, total, page, limit))
}

func (h *AdminHandler) GetAffiliate(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, common.Fail("invalid affiliate id"))
		return
	}
	a, err := h.affiliateRepo.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, common.Fail("affiliate not found"))
		return
	}
	c.JSON(http.StatusOK, common.OK(a, ""))
}

// VerifyAffiliate handles POST /admin/affiliates/:id/verify.
func (h *AdminHandler) VerifyAffiliate(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, common.Fail("invalid affiliate id"))
		return
	}
	a, err := h.affiliateSvc.Verify(id)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, common.Fail("affiliate not found"))
		case errors.Is(err, domain.ErrInvalidTransition):
			c.JSON(http.StatusConflict, common.Fail("affiliate cannot be verified in its current status"))
		default:
			c.JSON(http.StatusInternalServerError, common.Fail("verification failed"))
		}
		return
	}
	c.JSON(http.StatusOK, common.OK(a, "affiliate verified"))
}

// UpdateAffiliateStatus handles PATCH /admin/affiliates/:id/status and drives
// the activate/suspend/ban lifecycle.
func (h *AdminHandler) UpdateAffiliateStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, common.Fail("invalid affiliate id"))
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.Fail(err.Error()))
		return
	}
	to, ok := domain.ParseAffiliateStatus(req.Status)
	if !ok {
		c.JSON(http.StatusBadRequest, common.Invalid(common.FieldErrors{
			"status": "status must be pending, active, suspended, or banned",
		}))
		return
	}
	a, err := h.affiliateSvc.ChangeStatus(id, to)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, common.Fail("affiliate not found"))
		case errors.Is(err, domain.ErrInvalidTransition), errors.Is(err, repository.ErrConflict):
			c.JSON(http.StatusConflict, common.Fail("status transition not allowed"))
		default:
			c.JSON(http.StatusInternalServerError, common.Fail("status update failed"))
		}
		return
	}
	c.JSON(http.StatusOK, common.OK(a, "status updated"))
}

func (h *AdminHandler) GetSettings(c *gin.Context) {
	list, err := h.settingRepo.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.Fail("could not load settings"))
		return
	}
	c.JSON(http.StatusOK, common.OK(list, ""))
}

// UpdateSettings upserts the submitted key/value pairs. Changes take effect on
// the next read; nothing is cached.
func (h *AdminHandler) UpdateSettings(c *gin.Context) {
	var req map[string]string
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.Fail(err.Error()))
		return
	}
	if len(req) == 0 {
		c.JSON(http.StatusBadRequest, common.Fail("no settings supplied"))
		return
	}
	for k, v := range req {
		if err := h.settingRepo.Set(k, v); err != nil {
			c.JSON(http.StatusInternalServerError, common.Fail("could not save setting "+k))
			return
		}
	}
	list, err := h.settingRepo.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.Fail("could not load settings"))
		return
	}
	c.JSON(http.StatusOK, common.OK(list, "settings updated"))
}
