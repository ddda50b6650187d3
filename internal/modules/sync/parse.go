package sync

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"

	ical "github.com/arran4/golang-ical"

	"github.com/OlegRadinuk/lifestyle-crimea/internal/domain"
)

// FeedEvent is one normalized stay interval extracted from a feed. Raw keeps
// a compact JSON snapshot of the source event for debugging.
type FeedEvent struct {
	UID   string
	Dates domain.DateRange
	Raw   string
}

// ParseCalendar normalizes an ICS payload into stay intervals:
//
//   - DTSTART/DTEND are reduced to calendar dates; OTA feeds publish all-day
//     events (a booking occupies whole nights).
//   - Events lacking a usable start or end are skipped, not fatal.
//   - Zero-night events (end == start) are dropped.
//   - Duplicate UIDs within one feed keep the last occurrence.
//
// Parsing is deterministic: the same payload always yields the same
// sequence. Past events are NOT filtered here — the orchestrator decides
// what "today" means.
func ParseCalendar(body []byte) ([]FeedEvent, error) {
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrFeedParse)
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedParse, err)
	}

	events := make([]FeedEvent, 0)
	seen := make(map[string]int) // uid -> index in events

	for _, ve := range cal.Events() {
		start, err := ve.GetStartAt()
		if err != nil {
			log.Printf("ics: skipping event without usable DTSTART: %v", err)
			continue
		}
		end, err := ve.GetEndAt()
		if err != nil {
			log.Printf("ics: skipping event without usable DTEND: %v", err)
			continue
		}

		rng := domain.DateRange{
			CheckIn:  start.Format(domain.DateLayout),
			CheckOut: end.Format(domain.DateLayout),
		}
		if rng.CheckOut <= rng.CheckIn {
			// Zero-night (or inverted) events block nothing.
			continue
		}

		var uid, summary string
		if p := ve.GetProperty(ical.ComponentPropertyUniqueId); p != nil {
			uid = p.Value
		}
		if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
			summary = p.Value
		}

		raw, _ := json.Marshal(map[string]string{
			"uid":     uid,
			"summary": summary,
			"start":   rng.CheckIn,
			"end":     rng.CheckOut,
		})

		ev := FeedEvent{UID: uid, Dates: rng, Raw: string(raw)}

		if uid != "" {
			if idx, dup := seen[uid]; dup {
				events[idx] = ev
				continue
			}
			seen[uid] = len(events)
		}
		events = append(events, ev)
	}

	return events, nil
}
