package domain

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the calendar-date wire format used everywhere dates are
// stored or compared. Values are timezone-naive by convention.
const DateLayout = "2006-01-02"

var ErrInvalidRange = errors.New("invalid date range")

// DateRange is a half-open stay interval [CheckIn, CheckOut): the check-in
// day is occupied, the check-out day is free for the next guest.
type DateRange struct {
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
}

// Overlaps reports whether two half-open ranges conflict. Touching
// boundaries (one stay's checkout equals another's check-in) do not overlap.
// ISO dates compare correctly as plain strings.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.CheckIn < other.CheckOut && other.CheckIn < r.CheckOut
}

// Nights returns the number of occupied nights, clamped to a minimum of 1.
// The clamp guards pricing math against degenerate ranges; it is not input
// validation — callers must reject bad ranges via Validate first.
func (r DateRange) Nights() int {
	in, errIn := time.Parse(DateLayout, r.CheckIn)
	out, errOut := time.Parse(DateLayout, r.CheckOut)
	if errIn != nil || errOut != nil {
		return 1
	}
	nights := int(out.Sub(in).Hours() / 24)
	if nights < 1 {
		return 1
	}
	return nights
}

// Validate checks that both dates parse and that CheckOut is strictly after
// CheckIn (a zero-night stay is not bookable).
func (r DateRange) Validate() error {
	if _, err := time.Parse(DateLayout, r.CheckIn); err != nil {
		return fmt.Errorf("%w: bad check_in %q", ErrInvalidRange, r.CheckIn)
	}
	if _, err := time.Parse(DateLayout, r.CheckOut); err != nil {
		return fmt.Errorf("%w: bad check_out %q", ErrInvalidRange, r.CheckOut)
	}
	if r.CheckOut <= r.CheckIn {
		return fmt.Errorf("%w: check_out must be after check_in", ErrInvalidRange)
	}
	return nil
}

// BlockedRange is one occupied interval tagged with where it came from:
// "booking" for local reservations, otherwise the external source name.
type BlockedRange struct {
	DateRange
	Source string `json:"source"`
}
