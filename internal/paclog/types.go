// Package paclog models pacman log change records and parses them from raw
// log lines.
//
// A pacman log line describing a package change looks like:
//
//	[2024-03-01T10:00:00+0000] [ALPM] upgraded vim (9.0.1 -> 9.0.2)
//
// Older logs use a local timestamp without zone information:
//
//	[2019-05-12 18:42] [ALPM] installed htop (2.2.0-1)
package paclog

import (
	"fmt"
	"regexp"
	"time"
)

// Action is the kind of package change recorded by pacman.
type Action int

const (
	Installed Action = iota
	Upgraded
	Downgraded
	Removed
)

// actionLayout describes how an action is spelled in the log and which
// version slots an event of that action carries.
type actionLayout struct {
	word        string
	hasPrevious bool
	hasCurrent  bool
}

// actionLayouts is the single table consulted by the parser, NewEvent and
// the renderer. Downgraded maps tokens the same way Upgraded does.
var actionLayouts = map[Action]actionLayout{
	Installed:  {word: "installed", hasCurrent: true},
	Upgraded:   {word: "upgraded", hasPrevious: true, hasCurrent: true},
	Downgraded: {word: "downgraded", hasPrevious: true, hasCurrent: true},
	Removed:    {word: "removed", hasPrevious: true},
}

// ParseAction maps a log action word to an Action. Matching is case-sensitive.
func ParseAction(word string) (Action, error) {
	for action, layout := range actionLayouts {
		if layout.word == word {
			return action, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAction, word)
}

// String returns the lowercase verb pacman uses for the action.
func (a Action) String() string {
	if layout, ok := actionLayouts[a]; ok {
		return layout.word
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// HasPrevious reports whether events of this action carry a previous version.
func (a Action) HasPrevious() bool { return actionLayouts[a].hasPrevious }

// HasCurrent reports whether events of this action carry a current version.
func (a Action) HasCurrent() bool { return actionLayouts[a].hasCurrent }

// Date is a calendar date without time of day.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or
// after other.
func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return cmpInt(d.Year, other.Year)
	case d.Month != other.Month:
		return cmpInt(int(d.Month), int(other.Month))
	default:
		return cmpInt(d.Day, other.Day)
	}
}

// Before reports whether d is strictly before other.
func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }

// After reports whether d is strictly after other.
func (d Date) After(other Date) bool { return d.Compare(other) > 0 }

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Timestamp is the time of a log record. It holds either a zone-aware instant
// (already converted to the display location) or a naive wall-clock
// date-time that was logged without any zone information.
type Timestamp struct {
	t     time.Time
	aware bool
}

// AwareTimestamp returns a zone-aware timestamp displayed in loc.
func AwareTimestamp(t time.Time, loc *time.Location) Timestamp {
	if loc == nil {
		loc = time.Local
	}
	return Timestamp{t: t.In(loc), aware: true}
}

// NaiveTimestamp returns a timestamp for a wall-clock date-time. Only the
// date and clock fields of t are used; its location is ignored.
func NaiveTimestamp(t time.Time) Timestamp {
	y, mo, d := t.Date()
	h, mi, s := t.Clock()
	return Timestamp{t: time.Date(y, mo, d, h, mi, s, 0, time.UTC)}
}

// IsAware reports whether the timestamp was logged with a UTC offset.
func (ts Timestamp) IsAware() bool { return ts.aware }

// Time returns the underlying time. For naive timestamps the location is UTC
// and carries no meaning beyond the wall-clock fields.
func (ts Timestamp) Time() time.Time { return ts.t }

// Date returns the calendar date of the timestamp. Aware timestamps use the
// location they were converted to.
func (ts Timestamp) Date() Date { return DateOf(ts.t) }

// String formats the timestamp as "YYYY-MM-DD HH:MM" for both variants.
func (ts Timestamp) String() string { return ts.t.Format(displayLayout) }

const displayLayout = "2006-01-02 15:04"

var packageNameRe = regexp.MustCompile(`^[a-z0-9@_+][a-z0-9@._+-]*$`)

// Event is a single package change. Events are immutable once built.
type Event struct {
	name            string
	timestamp       Timestamp
	action          Action
	previousVersion string
	currentVersion  string
}

// NewEvent builds an event, checking the package name and that exactly the
// version slots required by the action are set. Unused slots must be empty.
func NewEvent(name string, ts Timestamp, action Action, previous, current string) (*Event, error) {
	layout, ok := actionLayouts[action]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownAction, action)
	}
	if !packageNameRe.MatchString(name) {
		return nil, fmt.Errorf("%w: invalid package name %q", ErrMalformedLine, name)
	}
	if layout.hasPrevious != (previous != "") {
		return nil, fmt.Errorf("%w: %s %s: previous version %q", ErrMissingVersion, action, name, previous)
	}
	if layout.hasCurrent != (current != "") {
		return nil, fmt.Errorf("%w: %s %s: current version %q", ErrMissingVersion, action, name, current)
	}

	return &Event{
		name:            name,
		timestamp:       ts,
		action:          action,
		previousVersion: previous,
		currentVersion:  current,
	}, nil
}

func (e *Event) Name() string         { return e.name }
func (e *Event) Timestamp() Timestamp { return e.timestamp }
func (e *Event) Action() Action       { return e.action }

// Date returns the calendar date of the event's timestamp.
func (e *Event) Date() Date { return e.timestamp.Date() }

// PreviousVersion returns the version before the change, if the action has one.
func (e *Event) PreviousVersion() (string, bool) {
	return e.previousVersion, e.action.HasPrevious()
}

// CurrentVersion returns the version after the change, if the action has one.
func (e *Event) CurrentVersion() (string, bool) {
	return e.currentVersion, e.action.HasCurrent()
}

// VersionString returns the version field as shown in the log:
// "cur", "prev -> cur" or "prev" depending on the action.
func (e *Event) VersionString() string {
	prev, hasPrev := e.PreviousVersion()
	cur, hasCur := e.CurrentVersion()
	switch {
	case hasPrev && hasCur:
		return prev + " -> " + cur
	case hasPrev:
		return prev
	default:
		return cur
	}
}

// String renders the event as a plain log-style line without a trailing newline.
func (e *Event) String() string {
	return fmt.Sprintf("[%s] %s %s (%s)", e.timestamp, e.action, e.name, e.VersionString())
}
