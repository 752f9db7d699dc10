package filter

import (
	"errors"
	"fmt"
	"time"

	"github.com/blackwell-systems/paclog/internal/paclog"
)

// ErrInvalidDate is returned for date bounds not in YYYY-MM-DD form.
var ErrInvalidDate = errors.New("invalid date")

const dateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (paclog.Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return paclog.Date{}, fmt.Errorf("%w %q (expected YYYY-MM-DD)", ErrInvalidDate, s)
	}
	return paclog.DateOf(t), nil
}

// DateRange holds optional inclusive bounds. A nil bound is unconstrained.
type DateRange struct {
	NotAfter  *paclog.Date
	NotBefore *paclog.Date
}

// NewDateRange parses the --before and --after flag values. Empty strings
// leave the corresponding bound unset.
func NewDateRange(before, after string) (DateRange, error) {
	var r DateRange

	if before != "" {
		d, err := ParseDate(before)
		if err != nil {
			return DateRange{}, fmt.Errorf("--before: %w", err)
		}
		r.NotAfter = &d
	}
	if after != "" {
		d, err := ParseDate(after)
		if err != nil {
			return DateRange{}, fmt.Errorf("--after: %w", err)
		}
		r.NotBefore = &d
	}

	return r, nil
}

// InRange reports whether d lies within the range, bounds included.
func (r DateRange) InRange(d paclog.Date) bool {
	return InRange(d, r.NotAfter, r.NotBefore)
}

// IsZero reports whether neither bound is set.
func (r DateRange) IsZero() bool {
	return r.NotAfter == nil && r.NotBefore == nil
}

// InRange rejects d when it is after notAfter or before notBefore.
func InRange(d paclog.Date, notAfter, notBefore *paclog.Date) bool {
	if notAfter != nil && d.After(*notAfter) {
		return false
	}
	if notBefore != nil && d.Before(*notBefore) {
		return false
	}
	return true
}
