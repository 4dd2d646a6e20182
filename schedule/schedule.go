// Package schedule maps calendar dates to daily secret words.
//
// Day d of the game (counted from the base date) plays
// words[d mod len(words)]: the list repeats once exhausted. Archived rankings
// are keyed by date, so every caller that needs "the word of day X" must go
// through this package to stay consistent with the generated archive.
package schedule

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the ISO calendar date format used for game dates.
const DateLayout = "2006-01-02"

var (
	// ErrInvalidDate is returned for dates before the base date.
	ErrInvalidDate = errors.New("schedule: date is before the base date")
	// ErrNoDailyWords is returned when the daily word list is empty.
	ErrNoDailyWords = errors.New("schedule: no daily words")
)

const secondsPerDay = 24 * 60 * 60

// DefaultBase is the first game day.
var DefaultBase = Date(2025, time.June, 2)

// Date returns the civil date y-m-d as a UTC midnight time.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Day truncates t to its civil date in t's own location, returned as UTC
// midnight. Time of day and zone offset never influence day arithmetic.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return Date(y, m, d)
}

// ParseDate parses a YYYY-MM-DD game date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("schedule: invalid date %q, want YYYY-MM-DD: %w", s, err)
	}
	return t, nil
}

// FormatDate formats t as YYYY-MM-DD.
func FormatDate(t time.Time) string { return Day(t).Format(DateLayout) }

// DaysBetween returns the number of civil days from base to date; negative
// when date is earlier.
func DaysBetween(base, date time.Time) int {
	return int((Day(date).Unix() - Day(base).Unix()) / secondsPerDay)
}

// Index returns the position in a list of n daily words played on date.
func Index(date, base time.Time, n int) (int, error) {
	days := DaysBetween(base, date)
	if days < 0 {
		return 0, fmt.Errorf("%w: %s < %s", ErrInvalidDate, FormatDate(date), FormatDate(base))
	}
	if n <= 0 {
		return 0, ErrNoDailyWords
	}
	return days % n, nil
}

// WordForDate returns the secret word played on date.
func WordForDate(date time.Time, words []string, base time.Time) (string, error) {
	idx, err := Index(date, base, len(words))
	if err != nil {
		return "", err
	}
	return words[idx], nil
}

// GameNumber returns the 1-based, never wrapping, game number of today. It is
// a display counter and is unrelated to the word index.
func GameNumber(today, base time.Time) int {
	return DaysBetween(base, today) + 1
}

// Dates returns every date from from to to inclusive. It returns nil when to
// precedes from.
func Dates(from, to time.Time) []time.Time {
	from, to = Day(from), Day(to)
	if to.Before(from) {
		return nil
	}
	out := make([]time.Time, 0, DaysBetween(from, to)+1)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}

// Schedule binds a daily word list to its base date.
type Schedule struct {
	Words []string
	Base  time.Time
}

// New creates a Schedule; a zero base means DefaultBase.
func New(words []string, base time.Time) *Schedule {
	if base.IsZero() {
		base = DefaultBase
	}
	return &Schedule{Words: words, Base: Day(base)}
}

// WordFor returns the secret word played on date.
func (s *Schedule) WordFor(date time.Time) (string, error) {
	return WordForDate(date, s.Words, s.Base)
}

// GameNumber returns the display number of the game played on date.
func (s *Schedule) GameNumber(date time.Time) int { return GameNumber(date, s.Base) }

// Cycle returns the inclusive date range covering one pass over Words,
// starting at the base date. It returns zero times for an empty list.
func (s *Schedule) Cycle() (from, to time.Time) {
	if len(s.Words) == 0 {
		return time.Time{}, time.Time{}
	}
	return s.Base, s.Base.AddDate(0, 0, len(s.Words)-1)
}
