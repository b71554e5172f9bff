package warehouse

import (
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	unknownName     = "Unknown"
	sentinelEmail   = "unknown@email.com"
	defaultBrand    = "Apple"
	defaultCategory = "Other"

	maxDescriptionLen = 500
)

func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// normalizeName trims and title-cases a person or attribute name, substituting
// a sentinel when the source field is absent.
func normalizeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return unknownName
	}
	return titleCase(s)
}

// normalizeEmail trims and lower-cases an email address. Missing or
// unparseable addresses degrade to an unreachable sentinel, never an error.
func normalizeEmail(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || !strings.Contains(s, "@") {
		return sentinelEmail
	}
	return s
}

// truncate bounds s to at most n runes. Cutting on runes rather than bytes
// keeps multibyte text valid UTF-8.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// dateOnly strips the time-of-day component, keeping the calendar date in UTC.
func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
