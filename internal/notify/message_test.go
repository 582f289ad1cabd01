package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderSummary(t *testing.T) {
	booking, customer := sampleBooking()

	text := RenderSummary(booking, customer)

	assert.Contains(t, text, booking.ID.String())
	assert.Contains(t, text, "Khau Pha Pass (khau_pha)")
	assert.Contains(t, text, "Date: 2025-07-12 (morning)")
	assert.Contains(t, text, "Party size: 4")
	assert.Contains(t, text, "Linh Nguyen, +84912345678, linh@example.com")
	assert.Contains(t, text, "Add-ons: pickup x2")
	assert.Contains(t, text, "Total: 10,560,000 VND (avg 2,640,000/person)")
	assert.Contains(t, text, "Status: pending")
}

func TestRenderSummaryUnknownLocationFallsBackToKey(t *testing.T) {
	booking, customer := sampleBooking()
	booking.LocationKey = "somewhere_else"

	text := RenderSummary(booking, customer)
	assert.Contains(t, text, "Location: somewhere_else")
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{950, "950"},
		{1_000, "1,000"},
		{10_560_000, "10,560,000"},
		{-400_000, "-400,000"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, formatAmount(tc.in), "input %d", tc.in)
	}
}
