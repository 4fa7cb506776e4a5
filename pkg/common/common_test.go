package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginatePages(t *testing.T) {
	cases := []struct {
		total int64
		limit int
		pages int
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{100, 25, 4},
		{101, 25, 5},
		{5, 0, 0}, // zero limit must not divide by zero
	}
	for _, c := range cases {
		resp := Paginate(nil, c.total, 1, c.limit)
		assert.Equal(t, c.pages, resp.Pagination.Pages, "total=%d limit=%d", c.total, c.limit)
		assert.True(t, resp.Success)
	}
}

func TestEnvelopes(t *testing.T) {
	ok := OK(map[string]int{"n": 1}, "done")
	assert.True(t, ok.Success)
	assert.Equal(t, "done", ok.Message)

	fail := Fail("nope")
	assert.False(t, fail.Success)
	assert.Nil(t, fail.Data)

	inv := Invalid(FieldErrors{"email": "invalid email address"})
	assert.False(t, inv.Success)
	assert.Equal(t, "validation failed", inv.Message)
	assert.Equal(t, "invalid email address", inv.Errors["email"])
}
