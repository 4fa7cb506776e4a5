package service

import (
	"context"
	"errors"
	"testing"

	"roamio/config"
	"roamio/internal/domain"
	"roamio/internal/models"
	"roamio/internal/repository"
	"roamio/pkg/payout"

	"github.com/stretchr/testify/assert"
)

type fakePayoutStore struct {
	payout           *models.Payout
	available        int64
	completeErr      error
	createErr        error
	createdWithin    *models.Payout
	recordedTxID     string
	reverted         bool
	revertErr        error
	markCompletedArg string
}

func (f *fakePayoutStore) GetByID(id uint) (*models.Payout, error) { return f.payout, nil }
func (f *fakePayoutStore) AvailableBalanceCents(affiliateID uint) (int64, error) {
	return f.available, nil
}
func (f *fakePayoutStore) CreateWithinBalance(p *models.Payout) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.createdWithin = p
	return nil
}
func (f *fakePayoutStore) MarkProcessing(id uint) (*models.Payout, error) { return f.payout, nil }
func (f *fakePayoutStore) MarkCompleted(id uint, transactionID string) (*models.Payout, error) {
	if f.completeErr != nil {
		return nil, f.completeErr
	}
	f.markCompletedArg = transactionID
	p := *f.payout
	p.Status = domain.PayoutCompleted
	p.TransactionID = transactionID
	return &p, nil
}
func (f *fakePayoutStore) MarkRejected(id uint, reason string) (*models.Payout, error) {
	return f.payout, nil
}
func (f *fakePayoutStore) SetTransactionID(id uint, transactionID string) error {
	f.recordedTxID = transactionID
	return nil
}
func (f *fakePayoutStore) RevertCompletion(id uint) error {
	f.reverted = true
	return f.revertErr
}

type fakeAffiliateStore struct {
	affiliate *models.Affiliate
}

func (f *fakeAffiliateStore) GetByID(id uint) (*models.Affiliate, error) {
	return f.affiliate, nil
}
func (f *fakeAffiliateStore) GetByUserID(userID uint) (*models.Affiliate, error) {
	return f.affiliate, nil
}

type fakeUserGetter struct{}

func (fakeUserGetter) GetByID(id uint) (*models.User, error) {
	return &models.User{ID: id, Email: "ada@example.com"}, nil
}

type fakeSettings struct{ min int }

func (f fakeSettings) GetInt(key string, fallback int) int {
	if f.min != 0 {
		return f.min
	}
	return fallback
}

type countingProvider struct {
	calls int
	err   error
	txID  string
}

func (p *countingProvider) Disburse(ctx context.Context, req payout.DisbursementRequest) (*payout.DisbursementResponse, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return &payout.DisbursementResponse{TransactionID: p.txID, Status: "COMPLETED"}, nil
}

func testPayoutService(store *fakePayoutStore, provider payout.Provider) *PayoutService {
	return &PayoutService{
		cfg:           &config.Config{App: config.AppConfig{DefaultCurrency: "USD"}},
		affiliateRepo: &fakeAffiliateStore{affiliate: &models.Affiliate{ID: 1, UserID: 7, Status: domain.AffiliateActive, PayoutAccount: "ada@example.com"}},
		payoutRepo:    store,
		userRepo:      fakeUserGetter{},
		settingRepo:   fakeSettings{},
		provider:      provider,
	}
}

func processingPayout() *models.Payout {
	return &models.Payout{ID: 9, AffiliateID: 1, Reference: "po-x", AmountCents: 5000, Currency: "USD", Status: domain.PayoutProcessing}
}

func TestCompleteClaimsBeforeDisbursing(t *testing.T) {
	store := &fakePayoutStore{payout: processingPayout()}
	provider := &countingProvider{txID: "tx-1"}
	svc := testPayoutService(store, provider)

	p, err := svc.Complete(context.Background(), 9, "")
	assert.NoError(t, err)
	assert.Equal(t, 1, provider.calls)
	assert.Equal(t, "tx-1", p.TransactionID)
	assert.Equal(t, "tx-1", store.recordedTxID)
	assert.False(t, store.reverted)
}

func TestCompleteConflictSkipsDisbursement(t *testing.T) {
	// The guarded update loses the claim: no money may move.
	store := &fakePayoutStore{payout: processingPayout(), completeErr: repository.ErrConflict}
	provider := &countingProvider{txID: "tx-1"}
	svc := testPayoutService(store, provider)

	_, err := svc.Complete(context.Background(), 9, "")
	assert.ErrorIs(t, err, repository.ErrConflict)
	assert.Equal(t, 0, provider.calls)
}

func TestCompleteRevertsOnProviderFailure(t *testing.T) {
	store := &fakePayoutStore{payout: processingPayout()}
	provider := &countingProvider{err: errors.New("paypal down")}
	svc := testPayoutService(store, provider)

	_, err := svc.Complete(context.Background(), 9, "")
	assert.Error(t, err)
	assert.True(t, store.reverted)
	assert.Empty(t, store.recordedTxID)
}

func TestCompleteWithSuppliedTransactionIDSkipsProvider(t *testing.T) {
	store := &fakePayoutStore{payout: processingPayout()}
	provider := &countingProvider{txID: "tx-1"}
	svc := testPayoutService(store, provider)

	p, err := svc.Complete(context.Background(), 9, "manual-42")
	assert.NoError(t, err)
	assert.Equal(t, 0, provider.calls)
	assert.Equal(t, "manual-42", p.TransactionID)
	assert.Equal(t, "manual-42", store.markCompletedArg)
}

func TestRequestInsufficientBalanceAtInsertIsFieldScoped(t *testing.T) {
	// Pre-validation passes against the stale read; the locked re-check inside
	// the insert transaction refuses the overdraw.
	store := &fakePayoutStore{available: 12000, createErr: repository.ErrInsufficientBalance}
	svc := testPayoutService(store, nil)

	_, err := svc.Request(7, 10000, "paypal")
	var ve *PayoutValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, "insufficient balance", ve.Fields["amount"])
}

func TestRequestWithinBalance(t *testing.T) {
	store := &fakePayoutStore{available: 12000}
	svc := testPayoutService(store, nil)

	p, err := svc.Request(7, 10000, "paypal")
	assert.NoError(t, err)
	assert.Equal(t, domain.PayoutPending, p.Status)
	assert.NotNil(t, store.createdWithin)
	assert.Equal(t, int64(10000), store.createdWithin.AmountCents)
}

func TestPayoutRejectRequiresReason(t *testing.T) {
	svc := &PayoutService{}
	_, err := svc.Reject(9, "")
	assert.ErrorIs(t, err, ErrReasonRequired)
}

func TestCommissionRejectRequiresReason(t *testing.T) {
	svc := &CommissionService{}
	_, err := svc.Reject(3, "")
	assert.ErrorIs(t, err, ErrReasonRequired)
}
