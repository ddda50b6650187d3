package sync

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OlegRadinuk/lifestyle-crimea/internal/domain"
)

func TestRenderCalendar(t *testing.T) {
	body, err := RenderCalendar("apt-1", []domain.DateRange{
		{CheckIn: "2026-07-10", CheckOut: "2026-07-15"},
		{CheckIn: "2026-08-01", CheckOut: "2026-08-03"},
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(body, "BEGIN:VCALENDAR"))
	assert.Equal(t, 2, strings.Count(body, "BEGIN:VEVENT"))
	assert.Contains(t, body, "SUMMARY:Занято")
	assert.Contains(t, body, "TRANSP:OPAQUE")
	// No guest PII ever leaves through the feed.
	assert.NotContains(t, body, "ATTENDEE")
}

func TestRenderCalendar_Empty(t *testing.T) {
	body, err := RenderCalendar("apt-1", nil)
	require.NoError(t, err)
	assert.NotContains(t, body, "BEGIN:VEVENT")
	assert.Contains(t, body, "END:VCALENDAR")
}

func TestRenderCalendar_BadDate(t *testing.T) {
	_, err := RenderCalendar("apt-1", []domain.DateRange{
		{CheckIn: "July 10", CheckOut: "2026-07-15"},
	})
	assert.Error(t, err)
}
