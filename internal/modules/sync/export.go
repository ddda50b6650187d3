package sync

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/OlegRadinuk/lifestyle-crimea/internal/domain"
)

// RenderCalendar builds the outbound ICS document consumed by OTAs: one
// all-day VEVENT per confirmed stay, summary "Занято", no guest PII.
func RenderCalendar(apartmentID string, stays []domain.DateRange) (string, error) {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//Stylish Life//RU")
	cal.SetCalscale("GREGORIAN")

	now := time.Now().UTC()
	for i, stay := range stays {
		start, err := time.Parse(domain.DateLayout, stay.CheckIn)
		if err != nil {
			return "", fmt.Errorf("bad check_in %q: %w", stay.CheckIn, err)
		}
		end, err := time.Parse(domain.DateLayout, stay.CheckOut)
		if err != nil {
			return "", fmt.Errorf("bad check_out %q: %w", stay.CheckOut, err)
		}

		uid := fmt.Sprintf("booking-%s-%d@stylelife.ru", apartmentID, i)
		ev := cal.AddEvent(uid)
		ev.SetAllDayStartAt(start)
		ev.SetAllDayEndAt(end)
		ev.SetSummary("Занято")
		ev.SetDtStampTime(now)
		ev.SetProperty(ical.ComponentProperty("TRANSP"), "OPAQUE")
	}

	return cal.Serialize(), nil
}
