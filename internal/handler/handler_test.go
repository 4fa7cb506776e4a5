package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"roamio/internal/repository"
	"roamio/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// Acting on an entity that already left the expected state must surface 409,
// a missing entity 404, and a missing reason a field-scoped 400.
func TestPayoutErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewPayoutHandler(nil, nil)
	cases := []struct {
		err  error
		code int
	}{
		{repository.ErrConflict, http.StatusConflict},
		{gorm.ErrRecordNotFound, http.StatusNotFound},
		{service.ErrReasonRequired, http.StatusBadRequest},
	}
	for _, c := range cases {
		w := httptest.NewRecorder()
		ctx, _ := gin.CreateTestContext(w)
		h.respondErr(ctx, c.err)
		assert.Equal(t, c.code, w.Code, "err=%v", c.err)
	}
}

func TestCommissionErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewCommissionHandler(nil, nil)
	cases := []struct {
		err  error
		code int
	}{
		{repository.ErrConflict, http.StatusConflict},
		{gorm.ErrRecordNotFound, http.StatusNotFound},
		{service.ErrReasonRequired, http.StatusBadRequest},
	}
	for _, c := range cases {
		w := httptest.NewRecorder()
		ctx, _ := gin.CreateTestContext(w)
		h.respondErr(ctx, c.err)
		assert.Equal(t, c.code, w.Code, "err=%v", c.err)
	}
}
