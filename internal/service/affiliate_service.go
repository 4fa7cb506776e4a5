package service

import (
	"errors"
	"fmt"
	"log"

	"roamio/config"
	"roamio/internal/domain"
	"roamio/internal/models"
	"roamio/internal/repository"
	"roamio/internal/ws"

	"gorm.io/gorm"
)

var (
	ErrAlreadyEnrolled = errors.New("user is already an affiliate")
	ErrNotEnrolled     = errors.New("user is not an affiliate")
)

type AffiliateService struct {
	cfg            *config.Config
	affiliateRepo  *repository.AffiliateRepository
	commissionRepo *repository.CommissionRepository
	payoutRepo     *repository.PayoutRepository
	settingRepo    *repository.SettingRepository
	hub            *ws.Hub
}

func NewAffiliateService(
	cfg *config.Config,
	affiliateRepo *repository.AffiliateRepository,
	commissionRepo *repository.CommissionRepository,
	payoutRepo *repository.PayoutRepository,
	settingRepo *repository.SettingRepository,
	hub *ws.Hub,
) *AffiliateService {
	return &AffiliateService{
		cfg:            cfg,
		affiliateRepo:  affiliateRepo,
		commissionRepo: commissionRepo,
		payoutRepo:     payoutRepo,
		settingRepo:    settingRepo,
		hub:            hub,
	}
}

// Enroll registers a user into the program. The initial status is pending
// unless admin verification is disabled, in which case enrollment activates
// immediately.
func (s *AffiliateService) Enroll(userID uint) (*models.Affiliate, error) {
	if _, err := s.affiliateRepo.GetByUserID(userID); err == nil {
		return nil, ErrAlreadyEnrolled
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	status := domain.AffiliatePending
	if !s.settingRepo.GetBool(domain.SettingRequireVerification, true) {
		status = domain.AffiliateActive
	}
	return s.affiliateRepo.Create(userID, status)
}

// ChangeStatus applies an admin lifecycle command. The transition table is
// checked against a fresh read, then the repository re-checks it inside the
// guarded UPDATE so concurrent commands cannot both win.
func (s *AffiliateService) ChangeStatus(affiliateID uint, to domain.AffiliateStatus) (*models.Affiliate, error) {
	a, err := s.affiliateRepo.GetByID(affiliateID)
	if err != nil {
		return nil, err
	}
	if !a.Status.CanTransition(to) {
		return nil, domain.ErrInvalidTransition
	}
	if err := s.affiliateRepo.UpdateStatus(affiliateID, a.Status, to); err != nil {
		return nil, err
	}
	a, err = s.affiliateRepo.GetByID(affiliateID)
	if err != nil {
		return nil, err
	}
	s.hub.Publish(a.UserID, ws.Event{Type: "affiliate." + string(to), Data: a})
	return a, nil
}

// Verify sets the orthogonal verified flag; legal from pending or active only,
// and never reset once true.
func (s *AffiliateService) Verify(affiliateID uint) (*models.Affiliate, error) {
	a, err := s.affiliateRepo.GetByID(affiliateID)
	if err != nil {
		return nil, err
	}
	if !a.Status.Verifiable() {
		return nil, domain.ErrInvalidTransition
	}
	if !a.Verified {
		if err := s.affiliateRepo.MarkVerified(affiliateID); err != nil {
			return nil, err
		}
		a.Verified = true
	}
	return a, nil
}

// Dashboard is the server-computed projection for the affiliate's own view.
// It is recomputed on every call; clients must refetch it after any mutating
// command rather than doing local arithmetic.
type Dashboard struct {
	Affiliate         *models.Affiliate   `json:"affiliate"`
	AvailableCents    int64               `json:"available_cents"`
	ApprovedCents     int64               `json:"approved_cents"`
	PendingCents      int64               `json:"pending_cents"`
	RecentCommissions []models.Commission `json:"recent_commissions"`
	ReferralLink      string              `json:"referral_link"`
}

func (s *AffiliateService) Dashboard(userID uint) (*Dashboard, error) {
	a, err := s.affiliateRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotEnrolled
		}
		return nil, err
	}
	approved, err := s.commissionRepo.SumApprovedCents(a.ID)
	if err != nil {
		return nil, err
	}
	available, err := s.payoutRepo.AvailableBalanceCents(a.ID)
	if err != nil {
		return nil, err
	}
	recent, _, err := s.commissionRepo.ListByAffiliate(a.ID, 1, 10)
	if err != nil {
		return nil, err
	}
	var pending int64
	for _, c := range recent {
		if c.Status == domain.CommissionPending {
			pending += c.AmountCents
		}
	}
	return &Dashboard{
		Affiliate:         a,
		AvailableCents:    available,
		ApprovedCents:     approved,
		PendingCents:      pending,
		RecentCommissions: recent,
		ReferralLink:      s.ReferralLink(a.ReferralCode),
	}, nil
}

// ReferralLink is the shareable click-through URL for a code.
func (s *AffiliateService) ReferralLink(code string) string {
	return fmt.Sprintf("%s/r/%s", s.cfg.App.BaseURL, code)
}

// TrackClick records a click-through on a referral code and returns the
// signup URL to redirect to. Unknown or banned codes still redirect, just
// without attribution.
func (s *AffiliateService) TrackClick(code string) string {
	target := fmt.Sprintf("%s/signup?ref=%s", s.cfg.App.BaseURL, code)
	a, err := s.affiliateRepo.GetByCode(code)
	if err != nil || a.Status.Terminal() {
		return fmt.Sprintf("%s/signup", s.cfg.App.BaseURL)
	}
	if err := s.affiliateRepo.IncrementClicks(a.ID); err != nil {
		log.Printf("[affiliate] click counter for %s: %v", code, err)
	}
	return target
}
