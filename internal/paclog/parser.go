package paclog

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

// Rejection reasons returned (wrapped) by Parser.Parse. A rejected line never
// produces a partial event.
var (
	ErrMalformedLine        = errors.New("malformed log line")
	ErrNameMismatch         = errors.New("package name does not match any pattern")
	ErrUnknownAction        = errors.New("unknown action")
	ErrUnparseableTimestamp = errors.New("unparseable timestamp")
	ErrMissingVersion       = errors.New("missing version")
)

// Timestamp layouts pacman has written over time, tried in order.
const (
	awareLayout = "2006-01-02T15:04:05-0700"
	naiveLayout = "2006-01-02 15:04"
)

const (
	changePattern  = `^\[(?P<datetime>[^\]]*)\] \[ALPM\] (?P<action>[[:alpha:]]+) (?P<package>[a-z0-9@_+][a-z0-9@._+-]*) \((?P<version>.*)\)$`
	versionPattern = `^([a-z0-9.:+-]+)(?: -> ([a-z0-9.:+-]+))?$`
)

// NameMatcher decides whether a package name is wanted. A nil NameMatcher
// accepts every name.
type NameMatcher interface {
	Match(name string) bool
}

// Parser turns pacman log lines into events. The zero value is not usable;
// create one with NewParser. A Parser is safe for concurrent use.
type Parser struct {
	changeRe  *regexp.Regexp
	versionRe *regexp.Regexp
	loc       *time.Location

	datetimeIdx int
	actionIdx   int
	packageIdx  int
	versionIdx  int
}

// NewParser compiles the log line and version field patterns once.
// Zone-aware timestamps are converted to time.Local.
func NewParser() *Parser {
	changeRe := regexp.MustCompile(changePattern)
	return &Parser{
		changeRe:    changeRe,
		versionRe:   regexp.MustCompile(versionPattern),
		loc:         time.Local,
		datetimeIdx: changeRe.SubexpIndex("datetime"),
		actionIdx:   changeRe.SubexpIndex("action"),
		packageIdx:  changeRe.SubexpIndex("package"),
		versionIdx:  changeRe.SubexpIndex("version"),
	}
}

// WithLocation returns a copy of the parser that converts zone-aware
// timestamps to loc instead of time.Local.
func (p *Parser) WithLocation(loc *time.Location) *Parser {
	cp := *p
	if loc == nil {
		loc = time.Local
	}
	cp.loc = loc
	return &cp
}

// Parse converts one log line into an event. The returned error wraps one of
// the Err* rejection reasons.
//
// The package name is checked against names before anything else is
// validated, so lines for unwanted packages are rejected with
// ErrNameMismatch even when the rest of the record is broken.
func (p *Parser) Parse(line string, names NameMatcher) (*Event, error) {
	m := p.changeRe.FindStringSubmatch(line)
	if m == nil {
		return nil, fmt.Errorf("%w: %q", ErrMalformedLine, line)
	}

	name := m[p.packageIdx]
	if names != nil && !names.Match(name) {
		return nil, fmt.Errorf("%w: %s", ErrNameMismatch, name)
	}

	action, err := ParseAction(m[p.actionIdx])
	if err != nil {
		return nil, err
	}

	ts, err := p.parseTimestamp(m[p.datetimeIdx])
	if err != nil {
		return nil, err
	}

	previous, current, err := p.parseVersions(action, m[p.versionIdx])
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", action, name, err)
	}

	return NewEvent(name, ts, action, previous, current)
}

// parseTimestamp tries the zone-aware ISO layout first, then the older local
// layout.
func (p *Parser) parseTimestamp(s string) (Timestamp, error) {
	if t, err := time.Parse(awareLayout, s); err == nil {
		return AwareTimestamp(t, p.loc), nil
	}
	if t, err := time.Parse(naiveLayout, s); err == nil {
		return NaiveTimestamp(t), nil
	}
	return Timestamp{}, fmt.Errorf("%w: %q", ErrUnparseableTimestamp, s)
}

// parseVersions splits "a" or "a -> b" and assigns the tokens to the slots
// the action's layout requires. Tokens the layout has no slot for are dropped.
func (p *Parser) parseVersions(action Action, field string) (previous, current string, err error) {
	m := p.versionRe.FindStringSubmatch(field)
	if m == nil {
		return "", "", fmt.Errorf("%w: unrecognised version field %q", ErrMissingVersion, field)
	}
	first, second := m[1], m[2]

	layout := actionLayouts[action]
	switch {
	case layout.hasPrevious && layout.hasCurrent:
		if second == "" {
			return "", "", fmt.Errorf("%w: no new version in %q", ErrMissingVersion, field)
		}
		return first, second, nil
	case layout.hasPrevious:
		return first, "", nil
	default:
		return "", first, nil
	}
}
