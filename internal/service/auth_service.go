package service

import (
	"errors"
	"log"
	"time"

	"roamio/config"
	"roamio/internal/auth"
	"roamio/internal/domain"
	"roamio/internal/models"
	"roamio/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailExists  = errors.New("email already registered")
	ErrInvalidCreds = errors.New("invalid email or password")
	ErrTokenInvalid = errors.New("invalid or expired token")
)

type AuthService struct {
	cfg           *config.Config
	userRepo      *repository.UserRepository
	tokenRepo     *repository.TokenRepository
	affiliateRepo *repository.AffiliateRepository
	mailer        *Mailer
}

func NewAuthService(
	cfg *config.Config,
	userRepo *repository.UserRepository,
	tokenRepo *repository.TokenRepository,
	affiliateRepo *repository.AffiliateRepository,
	mailer *Mailer,
) *AuthService {
	return &AuthService{
		cfg:           cfg,
		userRepo:      userRepo,
		tokenRepo:     tokenRepo,
		affiliateRepo: affiliateRepo,
		mailer:        mailer,
	}
}

// Register creates the account, attributes the signup to a referral code when
// one was supplied, and queues the verification email. Field validation has
// already happened at the handler boundary.
func (s *AuthService) Register(email, password, firstName, lastName, referralCode string) (*models.User, string, string, error) {
	_, err := s.userRepo.GetByEmail(email)
	if err == nil {
		return nil, "", "", ErrEmailExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", err
	}
	u := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    firstName,
		LastName:     lastName,
		Role:         domain.RoleUser,
	}
	if referralCode != "" {
		if ref, err := s.affiliateRepo.GetByCode(referralCode); err == nil && !ref.Status.Terminal() {
			u.ReferredByID = &ref.ID
		}
	}
	if err := s.userRepo.Create(u); err != nil {
		return nil, "", "", err
	}
	if u.ReferredByID != nil {
		if err := s.affiliateRepo.IncrementReferrals(*u.ReferredByID); err != nil {
			log.Printf("[auth] referral counter for affiliate %d: %v", *u.ReferredByID, err)
		}
	}
	s.sendVerification(u)
	access, err := auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Email, u.Role)
	if err != nil {
		return u, "", "", err
	}
	refresh, err := auth.GenerateRefreshToken(&s.cfg.JWT, u.ID)
	if err != nil {
		return u, access, "", err
	}
	return u, access, refresh, nil
}

func (s *AuthService) Login(email, password string) (*models.User, string, string, error) {
	u, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", "", ErrInvalidCreds
		}
		return nil, "", "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", ErrInvalidCreds
	}
	access, _ := auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Email, u.Role)
	refresh, _ := auth.GenerateRefreshToken(&s.cfg.JWT, u.ID)
	return u, access, refresh, nil
}

// Refresh exchanges a valid refresh token for a new access token.
func (s *AuthService) Refresh(refreshToken string) (string, error) {
	userID, err := auth.ParseRefreshToken(&s.cfg.JWT, refreshToken)
	if err != nil {
		return "", ErrTokenInvalid
	}
	u, err := s.userRepo.GetByID(userID)
	if err != nil {
		return "", ErrTokenInvalid
	}
	return auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Email, u.Role)
}

// LoginWithGoogle creates or finds a user by Google ID. Google accounts are
// considered email-verified on first sight.
func (s *AuthService) LoginWithGoogle(googleID, email, firstName, lastName, avatarURL string) (*models.User, string, string, error) {
	u, err := s.userRepo.GetByGoogleID(googleID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Link to an existing email account, or create a fresh one.
		u, err = s.userRepo.GetByEmail(email)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			now := time.Now()
			u = &models.User{
				Email:           email,
				FirstName:       firstName,
				LastName:        lastName,
				Role:            domain.RoleUser,
				GoogleID:        &googleID,
				AvatarURL:       avatarURL,
				EmailVerifiedAt: &now,
			}
			if err := s.userRepo.Create(u); err != nil {
				return nil, "", "", err
			}
		} else if err == nil {
			gid := googleID
			u.GoogleID = &gid
			if u.AvatarURL == "" {
				u.AvatarURL = avatarURL
			}
			if err := s.userRepo.Update(u); err != nil {
				return nil, "", "", err
			}
		} else {
			return nil, "", "", err
		}
	} else if err != nil {
		return nil, "", "", err
	}
	access, _ := auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Email, u.Role)
	refresh, _ := auth.GenerateRefreshToken(&s.cfg.JWT, u.ID)
	return u, access, refresh, nil
}

// ForgotPassword issues a reset token. It succeeds quietly for unknown emails
// so the endpoint cannot be used to probe accounts.
func (s *AuthService) ForgotPassword(email string) error {
	u, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	token, err := s.issueToken(u.ID, models.TokenPurposeResetPassword)
	if err != nil {
		return err
	}
	s.mailer.SendPasswordResetEmail(u.Email, token)
	return nil
}

func (s *AuthService) ResetPassword(token, newPassword string) error {
	t, err := s.tokenRepo.Consume(token, models.TokenPurposeResetPassword)
	if err != nil {
		return ErrTokenInvalid
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.userRepo.UpdateFields(t.UserID, map[string]interface{}{"password_hash": string(hash)})
}

// ResendVerification issues a fresh verification token for an unverified account.
func (s *AuthService) ResendVerification(userID uint) error {
	u, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if u.EmailVerifiedAt != nil {
		return nil
	}
	s.sendVerification(u)
	return nil
}

func (s *AuthService) VerifyEmail(token string) error {
	t, err := s.tokenRepo.Consume(token, models.TokenPurposeVerifyEmail)
	if err != nil {
		return ErrTokenInvalid
	}
	now := time.Now()
	return s.userRepo.UpdateFields(t.UserID, map[string]interface{}{"email_verified_at": &now})
}

func (s *AuthService) sendVerification(u *models.User) {
	token, err := s.issueToken(u.ID, models.TokenPurposeVerifyEmail)
	if err != nil {
		log.Printf("[auth] verification token for user %d: %v", u.ID, err)
		return
	}
	s.mailer.SendVerificationEmail(u.Email, token)
}

func (s *AuthService) issueToken(userID uint, purpose string) (string, error) {
	token := uuid.New().String()
	err := s.tokenRepo.Create(&models.AuthToken{
		UserID:    userID,
		Token:     token,
		Purpose:   purpose,
		ExpiresAt: time.Now().Add(s.cfg.App.TokenExpiry),
	})
	if err != nil {
		return "", err
	}
	return token, nil
}
