package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/paclog/internal/paclog"
)

func TestMatchesAny_NoPatterns(t *testing.T) {
	for _, name := range []string{"vim", "linux", "lib32-glibc", ""} {
		assert.True(t, MatchesAny(name, nil), name)
		assert.True(t, Patterns{}.Match(name), name)
	}
}

func TestMatchesAny_Globs(t *testing.T) {
	patterns, err := CompileAll([]string{"foo", "ba*"})
	require.NoError(t, err)

	tests := []struct {
		name string
		want bool
	}{
		{"foo", true},
		{"bar", true},
		{"baz", true},
		{"ba", true},
		{"food", false},
		{"xfoo", false},
		{"abar", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesAny(tt.name, patterns))
			assert.Equal(t, tt.want, patterns.Match(tt.name))
		})
	}
}

func TestCompile_MetacharactersAreLiteral(t *testing.T) {
	tests := []struct {
		glob string
		name string
		want bool
	}{
		{"gtk+", "gtk+", true},
		{"gtk+", "gtkk", false},
		{"qt6.base", "qt6.base", true},
		{"qt6.base", "qt6xbase", false},
		{"lib32-*", "lib32-glibc", true},
		{"*-git", "yay-git", true},
		{"*", "anything", true},
		{"py*-re*s", "python-requests", true},
		{"[ab]", "a", false},
		{"[ab]", "[ab]", true},
	}

	for _, tt := range tests {
		t.Run(tt.glob+"/"+tt.name, func(t *testing.T) {
			p, err := Compile(tt.glob)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Match(tt.name))
			assert.Equal(t, tt.glob, p.String())
		})
	}
}

func TestCompileAll_FailsFast(t *testing.T) {
	patterns, err := CompileAll([]string{"vim", "bad\xff", "linux"})
	assert.ErrorIs(t, err, ErrInvalidPattern)
	assert.Nil(t, patterns)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, paclog.Date{Year: 2024, Month: time.January, Day: 15}, d)

	for _, bad := range []string{"", "2024-1-15", "15/01/2024", "2024-02-30", "2024-01-15T00:00"} {
		_, err := ParseDate(bad)
		assert.ErrorIs(t, err, ErrInvalidDate, bad)
	}
}

func TestDateRange_InclusiveBounds(t *testing.T) {
	event := paclog.Date{Year: 2024, Month: time.January, Day: 15}

	tests := []struct {
		name   string
		before string
		after  string
		want   bool
	}{
		{"no bounds", "", "", true},
		{"same day both bounds", "2024-01-15", "2024-01-15", true},
		{"before previous day", "2024-01-14", "", false},
		{"after next day", "", "2024-01-16", false},
		{"inside range", "2024-02-01", "2024-01-01", true},
		{"empty range", "2024-01-01", "2024-02-01", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewDateRange(tt.before, tt.after)
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.InRange(event))
		})
	}
}

func TestNewDateRange_Errors(t *testing.T) {
	_, err := NewDateRange("yesterday", "")
	assert.ErrorIs(t, err, ErrInvalidDate)
	assert.Contains(t, err.Error(), "--before")

	_, err = NewDateRange("", "2024/01/01")
	assert.ErrorIs(t, err, ErrInvalidDate)
	assert.Contains(t, err.Error(), "--after")

	r, err := NewDateRange("", "")
	require.NoError(t, err)
	assert.True(t, r.IsZero())
}
