package service

import (
	"testing"
	"time"
)

func day(d int) time.Time {
	return time.Date(2026, 9, d, 0, 0, 0, 0, time.UTC)
}

func TestNights(t *testing.T) {
	cases := []struct {
		in, out time.Time
		want    int
	}{
		{day(1), day(2), 1},
		{day(1), day(4), 3},
		{day(1), day(8), 7},
		// A degenerate pair still prices at least one night.
		{day(1), day(1), 1},
	}
	for _, c := range cases {
		if got := Nights(c.in, c.out); got != c.want {
			t.Errorf("Nights(%s, %s) = %d, want %d", c.in.Format("01-02"), c.out.Format("01-02"), got, c.want)
		}
	}
}

func TestTotalCents(t *testing.T) {
	// 3 nights x $150.00 x 2 rooms = $900.00
	if got := TotalCents(day(1), day(4), 15000, 2); got != 90000 {
		t.Errorf("TotalCents = %d, want 90000", got)
	}
	// Zero rooms prices as one room.
	if got := TotalCents(day(1), day(2), 10000, 0); got != 10000 {
		t.Errorf("TotalCents with 0 rooms = %d, want 10000", got)
	}
}
