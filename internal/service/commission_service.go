package service

import (
	"errors"
	"log"
	"strconv"

	"roamio/internal/domain"
	"roamio/internal/models"
	"roamio/internal/repository"
	"roamio/internal/ws"
)

var ErrReasonRequired = errors.New("a reason is required")

type CommissionService struct {
	affiliateRepo  *repository.AffiliateRepository
	commissionRepo *repository.CommissionRepository
	settingRepo    *repository.SettingRepository
	userRepo       *repository.UserRepository
	hub            *ws.Hub
}

func NewCommissionService(
	affiliateRepo *repository.AffiliateRepository,
	commissionRepo *repository.CommissionRepository,
	settingRepo *repository.SettingRepository,
	userRepo *repository.UserRepository,
	hub *ws.Hub,
) *CommissionService {
	return &CommissionService{
		affiliateRepo:  affiliateRepo,
		commissionRepo: commissionRepo,
		settingRepo:    settingRepo,
		userRepo:       userRepo,
		hub:            hub,
	}
}

// Accrue creates pending ledger entries for a completed referred booking,
// walking the attribution chain upward one tier at a time. Level N earns the
// rate configured for that tier; affiliates that are not active earn nothing
// but do not break the chain.
func (s *CommissionService) Accrue(booking *models.Booking) {
	buyer, err := s.userRepo.GetByID(booking.UserID)
	if err != nil || buyer.ReferredByID == nil {
		return
	}
	maxLevels := s.settingRepo.GetInt(domain.SettingMaxLevels, 3)
	affiliateID := *buyer.ReferredByID
	for level := 1; level <= maxLevels; level++ {
		a, err := s.affiliateRepo.GetByID(affiliateID)
		if err != nil {
			return
		}
		if a.Status == domain.AffiliateActive {
			rateBps := s.settingRepo.GetInt(domain.SettingRateBpsLevelPrefix+strconv.Itoa(level), 0)
			amount := booking.TotalCents * int64(rateBps) / 10000
			if amount > 0 {
				entry := &models.Commission{
					AffiliateID: a.ID,
					BookingID:   booking.ID,
					AmountCents: amount,
					Level:       level,
					Status:      domain.CommissionPending,
				}
				if err := s.commissionRepo.Create(entry); err != nil {
					log.Printf("[commission] accrue level %d for affiliate %d: %v", level, a.ID, err)
				} else {
					s.hub.Publish(a.UserID, ws.Event{Type: "commission.accrued", Data: entry})
				}
			}
		}
		// Walk up: the affiliate's own user may itself have been referred.
		owner, err := s.userRepo.GetByID(a.UserID)
		if err != nil || owner.ReferredByID == nil {
			return
		}
		affiliateID = *owner.ReferredByID
	}
}

// Approve resolves a pending entry and folds the amount into the affiliate's
// cumulative earnings. Approving an already-resolved entry returns
// repository.ErrConflict.
func (s *CommissionService) Approve(id uint) (*models.Commission, error) {
	c, err := s.commissionRepo.Approve(id)
	if err != nil {
		return nil, err
	}
	if err := s.affiliateRepo.AddEarnings(c.AffiliateID, c.AmountCents); err != nil {
		log.Printf("[commission] earnings counter for affiliate %d: %v", c.AffiliateID, err)
	}
	s.publish(c, "commission.approved")
	return c, nil
}

// Reject resolves a pending entry with a mandatory reason.
func (s *CommissionService) Reject(id uint, reason string) (*models.Commission, error) {
	if reason == "" {
		return nil, ErrReasonRequired
	}
	c, err := s.commissionRepo.Reject(id, reason)
	if err != nil {
		return nil, err
	}
	s.publish(c, "commission.rejected")
	return c, nil
}

func (s *CommissionService) publish(c *models.Commission, eventType string) {
	a, err := s.affiliateRepo.GetByID(c.AffiliateID)
	if err != nil {
		return
	}
	s.hub.Publish(a.UserID, ws.Event{Type: eventType, Data: c})
}
