package handler

import (
	"fmt"
	"log"
	"net/http"

	"roamio/internal/middleware"
	"roamio/internal/repository"
	"roamio/pkg/cloudinary"
	"roamio/pkg/common"

	"github.com/gin-gonic/gin"
)

const maxAvatarBytes = 5 << 20 // 5 MB

type MeHandler struct {
	userRepo *repository.UserRepository
	uploads  cloudinary.Client
}

func NewMeHandler(userRepo *repository.UserRepository, uploads cloudinary.Client) *MeHandler {
	return &MeHandler{userRepo: userRepo, uploads: uploads}
}

func (h *MeHandler) Get(c *gin.Context) {
	u, err := h.userRepo.GetByID(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, common.Fail("user not found"))
		return
	}
	c.JSON(http.StatusOK, common.OK(u, ""))
}

func (h *MeHandler) Update(c *gin.Context) {
	var req struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.Fail(err.Error()))
		return
	}
	userID := middleware.GetUserID(c)
	fields := map[string]interface{}{}
	if req.FirstName != "" {
		fields["first_name"] = req.FirstName
	}
	if req.LastName != "" {
		fields["last_name"] = req.LastName
	}
	if len(fields) > 0 {
		if err := h.userRepo.UpdateFields(userID, fields); err != nil {
			c.JSON(http.StatusInternalServerError, common.Fail("could not update profile"))
			return
		}
	}
	u, err := h.userRepo.GetByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, common.Fail("user not found"))
		return
	}
	c.JSON(http.StatusOK, common.OK(u, "profile updated"))
}

// UploadAvatar accepts a multipart "avatar" file and stores the optimized
// Cloudinary URL on the profile.
func (h *MeHandler) UploadAvatar(c *gin.Context) {
	if h.uploads == nil {
		c.JSON(http.StatusServiceUnavailable, common.Fail("image uploads are not configured"))
		return
	}
	fh, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, common.Fail("avatar file is required"))
		return
	}
	if fh.Size > maxAvatarBytes {
		c.JSON(http.StatusBadRequest, common.Fail("avatar must be 5MB or smaller"))
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, common.Fail("could not read avatar file"))
		return
	}
	defer f.Close()

	userID := middleware.GetUserID(c)
	url, err := h.uploads.UploadImage(c.Request.Context(), f, "avatars", fmt.Sprintf("user-%d", userID))
	if err != nil {
		log.Printf("[me] avatar upload for user %d: %v", userID, err)
		c.JSON(http.StatusBadGateway, common.Fail("avatar upload failed"))
		return
	}
	if err := h.userRepo.UpdateFields(userID, map[string]interface{}{"avatar_url": url}); err != nil {
		c.JSON(http.StatusInternalServerError, common.Fail("could not save avatar"))
		return
	}
	c.JSON(http.StatusOK, common.OK(gin.H{"avatar_url": url}, "avatar updated"))
}
