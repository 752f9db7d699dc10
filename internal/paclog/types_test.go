package paclog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAction(t *testing.T) {
	for _, a := range []Action{Installed, Upgraded, Downgraded, Removed} {
		got, err := ParseAction(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}

	_, err := ParseAction("purged")
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestActionVersionSlots(t *testing.T) {
	tests := []struct {
		action  Action
		hasPrev bool
		hasCur  bool
	}{
		{Installed, false, true},
		{Upgraded, true, true},
		{Downgraded, true, true},
		{Removed, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.action.String(), func(t *testing.T) {
			assert.Equal(t, tt.hasPrev, tt.action.HasPrevious())
			assert.Equal(t, tt.hasCur, tt.action.HasCurrent())
		})
	}
}

func TestNewEvent_EnforcesLayout(t *testing.T) {
	ts := NaiveTimestamp(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))

	tests := []struct {
		name     string
		action   Action
		previous string
		current  string
		wantErr  bool
	}{
		{"installed ok", Installed, "", "1.0", false},
		{"installed with previous", Installed, "0.9", "1.0", true},
		{"installed without current", Installed, "", "", true},
		{"upgraded ok", Upgraded, "1.0", "1.1", false},
		{"upgraded missing current", Upgraded, "1.0", "", true},
		{"downgraded missing previous", Downgraded, "", "1.0", true},
		{"removed ok", Removed, "1.0", "", false},
		{"removed with current", Removed, "1.0", "1.1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := NewEvent("pkg", ts, tt.action, tt.previous, tt.current)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMissingVersion)
				assert.Nil(t, ev)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.action, ev.Action())
		})
	}
}

func TestNewEvent_RejectsBadName(t *testing.T) {
	ts := NaiveTimestamp(time.Now())
	for _, name := range []string{"", "Vim", "-dash", ".dot", "has space"} {
		_, err := NewEvent(name, ts, Installed, "", "1.0")
		assert.ErrorIs(t, err, ErrMalformedLine, "name %q", name)
	}
}

func TestEventVersionString(t *testing.T) {
	ts := NaiveTimestamp(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))

	installed, _ := NewEvent("htop", ts, Installed, "", "3.3.0")
	upgraded, _ := NewEvent("vim", ts, Upgraded, "9.0.1", "9.0.2")
	downgraded, _ := NewEvent("mesa", ts, Downgraded, "24.0", "23.3")
	removed, _ := NewEvent("python2", ts, Removed, "2.7.18", "")

	assert.Equal(t, "3.3.0", installed.VersionString())
	assert.Equal(t, "9.0.1 -> 9.0.2", upgraded.VersionString())
	assert.Equal(t, "24.0 -> 23.3", downgraded.VersionString())
	assert.Equal(t, "2.7.18", removed.VersionString())
}

func TestTimestampVariants(t *testing.T) {
	instant := time.Date(2024, 1, 15, 23, 30, 0, 0, time.UTC)

	aware := AwareTimestamp(instant, time.FixedZone("CET", 60*60))
	assert.True(t, aware.IsAware())
	assert.Equal(t, "2024-01-16 00:30", aware.String())
	assert.Equal(t, Date{2024, time.January, 16}, aware.Date())

	// A naive timestamp keeps the wall clock no matter which location it came from.
	naive := NaiveTimestamp(instant.In(time.FixedZone("X", -3*60*60)))
	assert.False(t, naive.IsAware())
	assert.Equal(t, "2024-01-15 20:30", naive.String())
	assert.Equal(t, Date{2024, time.January, 15}, naive.Date())
}

func TestDateCompare(t *testing.T) {
	d := Date{2024, time.January, 15}

	assert.Equal(t, 0, d.Compare(Date{2024, time.January, 15}))
	assert.True(t, d.Before(Date{2024, time.January, 16}))
	assert.True(t, d.Before(Date{2024, time.February, 1}))
	assert.True(t, d.After(Date{2023, time.December, 31}))
	assert.False(t, d.After(d))
	assert.Equal(t, "2024-01-15", d.String())
}
