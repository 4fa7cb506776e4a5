package handler

import (
	"log"
	"net/http"

	"roamio/internal/middleware"
	"roamio/internal/service"
	"roamio/internal/validation"
	"roamio/pkg/common"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type RegisterRequest struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	AcceptTerms     bool   `json:"accept_terms"`
	ReferralCode    string `json:"referral_code"` // optional: referrer's code
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Register handles POST /auth/register. Validation failures are field-scoped
// and nothing is persisted until the whole form passes.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.Fail(err.Error()))
		return
	}
	errs := validation.Registration(validation.RegistrationInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		AcceptTerms:     req.AcceptTerms,
	})
	if errs != nil {
		c.JSON(http.StatusBadRequest, common.Invalid(errs))
		return
	}
	u, access, refresh, err := h.svc.Register(req.Email, req.Password, req.FirstName, req.LastName, req.ReferralCode)
	if err != nil {
		switch err {
		case service.ErrEmailExists:
			c.JSON(http.StatusConflict, common.Fail(err.Error()))
		default:
			log.Printf("[auth] register failed: email=%s err=%v", req.Email, err)
			c.JSON(http.StatusInternalServerError, common.Fail("registration failed"))
		}
		return
	}
	c.JSON(http.StatusCreated, common.OK(gin.H{
		"user":          u,
		"access_token":  access,
		"refresh_token": refresh,
	}, "registered"))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.Fail(err.Error()))
		return
	}
	u, access, refresh, err := h.svc.Login(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, common.Fail("invalid email or password"))
		return
	}
	c.JSON(http.StatusOK, common.OK(gin.H{
		"user":          u,
		"access_token":  access,
		"refresh_token": refresh,
	}, "logged in"))
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.Fail(err.Error()))
		return
	}
	access, err := h.svc.Refresh(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, common.Fail("invalid or expired refresh token"))
		return
	}
	c.JSON(http.StatusOK, common.OK(gin.H{"access_token": access}, ""))
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.Fail(err.Error()))
		return
	}
	if err := h.svc.ForgotPassword(req.Email); err != nil {
		log.Printf("[auth] forgot password: %v", err)
		c.JSON(http.StatusInternalServerError, common.Fail("could not start password reset"))
		return
	}
	// Same response whether or not the email exists.
	c.JSON(http.StatusOK, common.OK(nil, "if the address is registered, a reset email is on its way"))
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req struct {
		Token    string `json:"token" binding:"required"`
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.Fail(err.Error()))
		return
	}
	if err := h.svc.ResetPassword(req.Token, req.Password); err != nil {
		c.JSON(http.StatusBadRequest, common.Fail("invalid or expired token"))
		return
	}
	c.JSON(http.StatusOK, common.OK(nil, "password updated"))
}

// ResendVerification handles POST /auth/verification-email.
func (h *AuthHandler) ResendVerification(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if err := h.svc.ResendVerification(userID); err != nil {
		c.JSON(http.StatusInternalServerError, common.Fail("could not send verification email"))
		return
	}
	c.JSON(http.StatusOK, common.OK(nil, "verification email sent"))
}

func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.Fail(err.Error()))
		return
	}
	if err := h.svc.VerifyEmail(req.Token); err != nil {
		c.JSON(http.StatusBadRequest, common.Fail("invalid or expired token"))
		return
	}
	c.JSON(http.StatusOK, common.OK(nil, "email verified"))
}
