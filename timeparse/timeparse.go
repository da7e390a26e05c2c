// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package timeparse turns loosely formatted timestamps into UTC instants.
//
// Matchers are tried in a fixed order and the first one that both matches
// and yields a valid calendar date wins:
//
//  1. Unix seconds (10 digits)
//  2. Unix milliseconds (13 digits)
//  3. Slash dates A/B/YYYY [hh:mm:ss]; DD/MM when A > 12, otherwise MM/DD
//  4. YYYY-MM-DD hh:mm:ss
//  5. YYYY-MM-DD
//  6. ISO 8601 with optional fraction and zone (no zone means UTC)
//
// Input nothing matches is an error, never passed through.
package timeparse

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Canonical is the layout Normalize produces
const Canonical = "2006-01-02T15:04:05.000Z"

var ErrUnrecognizedFormat = errors.New("unrecognized timestamp format")

// SupportedFormats is meant for error messages shown to API clients
const SupportedFormats = "ISO 8601 (2025-09-15T10:00:00Z), date only (2025-09-15), " +
	"US format (09/15/2025), EU format (15/09/2025), Unix timestamp, " +
	"or space-separated (2025-09-15 10:00:00)"

type matcher struct {
	name  string
	re    *regexp.Regexp
	build func(m []string) (time.Time, bool)
}

var matchers = []matcher{
	{"unix seconds", regexp.MustCompile(`^\d{10}$`), unixSeconds},
	{"unix milliseconds", regexp.MustCompile(`^\d{13}$`), unixMillis},
	{"slash date", regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})(?:\s+(\d{1,2}):(\d{1,2}):(\d{1,2}))?$`), slashDate},
	{"space separated", regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})\s+(\d{1,2}):(\d{1,2}):(\d{1,2})$`), spaceSeparated},
	{"date only", regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`), dateOnly},
	{"iso 8601", regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})[T ](\d{2}):(\d{2})(?::(\d{2})(?:\.(\d{1,9}))?)?(Z|z|[+-]\d{2}:?\d{2})?$`), iso8601},
}

// Parse returns the instant text denotes, in UTC
func Parse(text string) (time.Time, error) {
	s := strings.TrimSpace(text)
	var near string
	for _, m := range matchers {
		sub := m.re.FindStringSubmatch(s)
		if sub == nil {
			continue
		}
		if t, ok := m.build(sub); ok {
			return t.UTC(), nil
		}
		if near == "" {
			near = m.name
		}
	}
	if near != "" {
		return time.Time{}, fmt.Errorf("%q looks like %s but a field is out of range: %w", text, near, ErrUnrecognizedFormat)
	}
	return time.Time{}, fmt.Errorf("%q: %w", text, ErrUnrecognizedFormat)
}

// Normalize formats text in the Canonical layout, e.g. for storing or
// echoing a bound in one fixed shape.
func Normalize(text string) (string, error) {
	t, err := Parse(text)
	if err != nil {
		return "", err
	}
	return t.Format(Canonical), nil
}

func unixSeconds(m []string) (time.Time, bool) {
	n, err := strconv.ParseInt(m[0], 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.Unix(n, 0), true
}

func unixMillis(m []string) (time.Time, bool) {
	n, err := strconv.ParseInt(m[0], 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(n), true
}

func slashDate(m []string) (time.Time, bool) {
	a, b, year := atoi(m[1]), atoi(m[2]), atoi(m[3])
	month, day := a, b
	if a > 12 {
		day, month = a, b
	}
	return civil(year, month, day, atoi(m[4]), atoi(m[5]), atoi(m[6]), 0, time.UTC)
}

func spaceSeparated(m []string) (time.Time, bool) {
	return civil(atoi(m[1]), atoi(m[2]), atoi(m[3]), atoi(m[4]), atoi(m[5]), atoi(m[6]), 0, time.UTC)
}

func dateOnly(m []string) (time.Time, bool) {
	return civil(atoi(m[1]), atoi(m[2]), atoi(m[3]), 0, 0, 0, 0, time.UTC)
}

func iso8601(m []string) (time.Time, bool) {
	loc, ok := zone(m[8])
	if !ok {
		return time.Time{}, false
	}

	nsec := 0
	if frac := m[7]; frac != "" {
		nsec = atoi(frac + strings.Repeat("0", 9-len(frac)))
	}

	return civil(atoi(m[1]), atoi(m[2]), atoi(m[3]), atoi(m[4]), atoi(m[5]), atoi(m[6]), nsec, loc)
}

// zone parses "Z", "+05:30" or "-0800"; empty means UTC
func zone(s string) (*time.Location, bool) {
	if s == "" || s == "Z" || s == "z" {
		return time.UTC, true
	}

	sign := 1
	if s[0] == '-' {
		sign = -1
	}
	digits := strings.ReplaceAll(s[1:], ":", "")
	hours, mins := atoi(digits[:2]), atoi(digits[2:])
	if hours > 23 || mins > 59 {
		return nil, false
	}
	return time.FixedZone("", sign*(hours*3600+mins*60)), true
}

// civil builds a time and rejects fields time.Date would silently normalize
func civil(year, month, day, hour, min, sec, nsec int, loc *time.Location) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || hour > 23 || min > 59 || sec > 59 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, hour, min, sec, nsec, loc)
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, false
	}
	return t, true
}

// atoi treats an empty match group as zero
func atoi(s string) int {
	if s == "" {
		return 0
	}
	n, _ := strconv.Atoi(s)
	return n
}
