package handler

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"

	"roamio/config"
	"roamio/internal/service"
	"roamio/pkg/common"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type GoogleOAuthHandler struct {
	cfg    *config.Config
	oauth  *oauth2.Config
	svc    *service.AuthService
	client *http.Client
}

func NewGoogleOAuthHandler(cfg *config.Config, svc *service.AuthService) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{
		cfg: cfg,
		oauth: &oauth2.Config{
			ClientID:     cfg.OAuth.GoogleClientID,
			ClientSecret: cfg.OAuth.GoogleClientSecret,
			RedirectURL:  cfg.OAuth.GoogleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		svc:    svc,
		client: http.DefaultClient,
	}
}

type googleUserInfo struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Picture    string `json:"picture"`
}

// Redirect starts the OAuth dance. The random state lands in a short-lived
// cookie and is checked on callback.
func (h *GoogleOAuthHandler) Redirect(c *gin.Context) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		c.JSON(http.StatusInternalServerError, common.Fail("could not start google login"))
		return
	}
	state := hex.EncodeToString(b)
	c.SetCookie("oauth_state", state, 300, "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, h.oauth.AuthCodeURL(state))
}

func (h *GoogleOAuthHandler) Callback(c *gin.Context) {
	want, err := c.Cookie("oauth_state")
	if err != nil || want == "" || c.Query("state") != want {
		c.JSON(http.StatusBadRequest, common.Fail("invalid oauth state"))
		return
	}
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, common.Fail("missing authorization code"))
		return
	}
	token, err := h.oauth.Exchange(c.Request.Context(), code)
	if err != nil {
		c.JSON(http.StatusUnauthorized, common.Fail("code exchange failed"))
		return
	}
	info, err := h.fetchUserInfo(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusBadGateway, common.Fail("could not fetch google profile"))
		return
	}
	u, access, refresh, err := h.svc.LoginWithGoogle(info.ID, info.Email, info.GivenName, info.FamilyName, info.Picture)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.Fail("google login failed"))
		return
	}
	c.JSON(http.StatusOK, common.OK(gin.H{
		"user":          u,
		"access_token":  access,
		"refresh_token": refresh,
	}, "logged in with google"))
}

func (h *GoogleOAuthHandler) fetchUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleUserInfoURL, nil)
	if err != nil {
		return nil, err
	}
	token.SetAuthHeader(req)
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo endpoint returned %d", resp.StatusCode)
	}
	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	return &info, nil
}
