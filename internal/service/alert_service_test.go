package service

import (
	"testing"
	"time"

	"roamio/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestShouldNotify(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	a := &models.PriceAlert{TargetPriceCents: 20000}

	// Above target: no fire.
	assert.False(t, ShouldNotify(a, 25000, now))
	// At or below target: fire.
	assert.True(t, ShouldNotify(a, 20000, now))
	assert.True(t, ShouldNotify(a, 15000, now))

	// Notified two hours ago: still inside the daily window.
	recent := now.Add(-2 * time.Hour)
	a.LastNotifiedAt = &recent
	assert.False(t, ShouldNotify(a, 15000, now))

	// Notified yesterday: fires again.
	old := now.Add(-25 * time.Hour)
	a.LastNotifiedAt = &old
	assert.True(t, ShouldNotify(a, 15000, now))
}

func TestStubQuotesDeterministicPerDestination(t *testing.T) {
	q := StubQuotes{}
	a1, err := q.Quote("HOTEL", "Lisbon")
	assert.NoError(t, err)
	a2, err := q.Quote("HOTEL", "Lisbon")
	assert.NoError(t, err)
	assert.Equal(t, a1, a2)

	assert.Greater(t, a1, int64(0))
}
