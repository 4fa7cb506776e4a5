package service

import (
	"context"
	"errors"
	"log"
	"time"

	"roamio/config"
	"roamio/internal/domain"
	"roamio/internal/models"
	"roamio/internal/repository"
	"roamio/internal/validation"
	"roamio/internal/ws"
	"roamio/pkg/common"
	"roamio/pkg/payout"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PayoutValidationError carries field-scoped failures on a payout request.
type PayoutValidationError struct {
	Fields common.FieldErrors
}

func (e *PayoutValidationError) Error() string { return "payout request validation failed" }

// payoutStore is the subset of repository.PayoutRepository the service uses.
type payoutStore interface {
	GetByID(id uint) (*models.Payout, error)
	AvailableBalanceCents(affiliateID uint) (int64, error)
	CreateWithinBalance(p *models.Payout) error
	MarkProcessing(id uint) (*models.Payout, error)
	MarkCompleted(id uint, transactionID string) (*models.Payout, error)
	MarkRejected(id uint, reason string) (*models.Payout, error)
	SetTransactionID(id uint, transactionID string) error
	RevertCompletion(id uint) error
}

type affiliateStore interface {
	GetByID(id uint) (*models.Affiliate, error)
	GetByUserID(userID uint) (*models.Affiliate, error)
}

type userGetter interface {
	GetByID(id uint) (*models.User, error)
}

type settingReader interface {
	GetInt(key string, fallback int) int
}

type PayoutService struct {
	cfg           *config.Config
	affiliateRepo affiliateStore
	payoutRepo    payoutStore
	userRepo      userGetter
	settingRepo   settingReader
	provider      payout.Provider
	mailer        *Mailer
	hub           *ws.Hub
}

func NewPayoutService(
	cfg *config.Config,
	affiliateRepo *repository.AffiliateRepository,
	payoutRepo *repository.PayoutRepository,
	userRepo *repository.UserRepository,
	settingRepo *repository.SettingRepository,
	provider payout.Provider,
	mailer *Mailer,
	hub *ws.Hub,
) *PayoutService {
	return &PayoutService{
		cfg:           cfg,
		affiliateRepo: affiliateRepo,
		payoutRepo:    payoutRepo,
		userRepo:      userRepo,
		settingRepo:   settingRepo,
		provider:      provider,
		mailer:        mailer,
		hub:           hub,
	}
}

// Request creates a withdrawal for the calling affiliate. Field validation
// runs against a fresh balance read; the insert then re-checks the balance
// inside a transaction holding the affiliate row lock, so two concurrent
// requests cannot together overdraw it.
func (s *PayoutService) Request(userID uint, amountCents int64, method string) (*models.Payout, error) {
	a, err := s.affiliateRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotEnrolled
		}
		return nil, err
	}
	if a.Status != domain.AffiliateActive {
		return nil, domain.ErrInvalidTransition
	}
	available, err := s.payoutRepo.AvailableBalanceCents(a.ID)
	if err != nil {
		return nil, err
	}
	minCents := int64(s.settingRepo.GetInt(domain.SettingPayoutMinCents, 1000))
	if errs := validation.PayoutRequest(amountCents, available, minCents, method); errs != nil {
		return nil, &PayoutValidationError{Fields: errs}
	}
	m, _ := domain.ParsePayoutMethod(method)
	p := &models.Payout{
		AffiliateID: a.ID,
		Reference:   "po-" + uuid.New().String(),
		AmountCents: amountCents,
		Currency:    s.cfg.App.DefaultCurrency,
		Method:      m,
		Status:      domain.PayoutPending,
		RequestedAt: time.Now(),
	}
	if err := s.payoutRepo.CreateWithinBalance(p); err != nil {
		if errors.Is(err, repository.ErrInsufficientBalance) {
			return nil, &PayoutValidationError{Fields: common.FieldErrors{"amount": "insufficient balance"}}
		}
		return nil, err
	}
	s.hub.Publish(userID, ws.Event{Type: "payout.requested", Data: p})
	return p, nil
}

// Process moves pending -> processing. A duplicate command surfaces
// repository.ErrConflict rather than a second transition.
func (s *PayoutService) Process(id uint) (*models.Payout, error) {
	p, err := s.payoutRepo.MarkProcessing(id)
	if err != nil {
		return nil, err
	}
	s.publish(p, "payout.processing")
	return p, nil
}

// Complete moves processing -> completed. The guarded update claims the
// transition before any money moves, so of two concurrent commands only one
// reaches the provider. When no transaction id is supplied the disbursement
// provider executes the transfer and its reference is recorded; a failed
// disbursement compensates the claim back to processing.
func (s *PayoutService) Complete(ctx context.Context, id uint, transactionID string) (*models.Payout, error) {
	p, err := s.payoutRepo.MarkCompleted(id, transactionID)
	if err != nil {
		return nil, err
	}
	if transactionID == "" && s.provider != nil {
		txID, err := s.disburse(ctx, p)
		if err != nil {
			if revertErr := s.payoutRepo.RevertCompletion(id); revertErr != nil {
				log.Printf("[payout] revert %s after failed disbursement: %v", p.Reference, revertErr)
			}
			return nil, err
		}
		if err := s.payoutRepo.SetTransactionID(id, txID); err != nil {
			log.Printf("[payout] record transaction id for %s: %v", p.Reference, err)
		}
		p.TransactionID = txID
	}
	s.publish(p, "payout.completed")
	if a, err := s.affiliateRepo.GetByID(p.AffiliateID); err == nil {
		if u, err := s.userRepo.GetByID(a.UserID); err == nil {
			s.mailer.SendPayoutCompletedEmail(u.Email, p.AmountCents, p.Currency, p.TransactionID)
		}
	}
	return p, nil
}

func (s *PayoutService) disburse(ctx context.Context, p *models.Payout) (string, error) {
	a, err := s.affiliateRepo.GetByID(p.AffiliateID)
	if err != nil {
		return "", err
	}
	resp, err := s.provider.Disburse(ctx, payout.DisbursementRequest{
		Reference:   p.Reference,
		AmountCents: p.AmountCents,
		Currency:    p.Currency,
		Account:     a.PayoutAccount,
		Description: "Roamio affiliate payout",
	})
	if err != nil {
		log.Printf("[payout] disburse %s: %v", p.Reference, err)
		return "", err
	}
	return resp.TransactionID, nil
}

// Reject requires a reason and is allowed from pending or processing.
func (s *PayoutService) Reject(id uint, reason string) (*models.Payout, error) {
	if reason == "" {
		return nil, ErrReasonRequired
	}
	p, err := s.payoutRepo.MarkRejected(id, reason)
	if err != nil {
		return nil, err
	}
	s.publish(p, "payout.rejected")
	return p, nil
}

func (s *PayoutService) publish(p *models.Payout, eventType string) {
	a, err := s.affiliateRepo.GetByID(p.AffiliateID)
	if err != nil {
		return
	}
	s.hub.Publish(a.UserID, ws.Event{Type: eventType, Data: p})
}
