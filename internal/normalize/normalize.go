// Package normalize turns raw date and link strings into display-safe tokens.
// Every function here is total: malformed input degrades, it never errors.
package normalize

import (
	"net/url"
	"strconv"
	"strings"
	"unicode"
)

var monthAbbrev = [...]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// FormatMonthYear renders "YYYY-MM" as "Jan 2024".
// Empty input yields "", input without a month segment is returned unchanged
// and a month outside 1-12 degrades to the year alone.
func FormatMonthYear(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	year, month, ok := strings.Cut(raw, "-")
	if !ok || month == "" {
		return raw
	}
	// "2024-01-15" style input still only uses the month
	month, _, _ = strings.Cut(month, "-")
	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return year
	}
	return monthAbbrev[m-1] + " " + year
}

// DateRange joins a start and end date as "Jan 2022 - Present".
// Either side may be empty, in which case the separator is dropped.
func DateRange(start, end string, current bool) string {
	s := FormatMonthYear(start)
	e := FormatMonthYear(end)
	if current {
		e = "Present"
	}
	switch {
	case s != "" && e != "":
		return s + " - " + e
	case s != "":
		return s
	default:
		return e
	}
}

// NormalizeLink validates a user-entered link and returns it as an https URL.
// It reports false for empty input, non-web schemes, and anything url.Parse
// rejects or that has no usable host.
func NormalizeLink(raw string) (string, bool) {
	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
	if s == "" {
		return "", false
	}

	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(lower, "https://"):
		s = "https://" + s[len("https://"):]
	case strings.HasPrefix(lower, "http://"):
		s = "https://" + s[len("http://"):]
	case strings.Contains(lower, "://"):
		return "", false
	case hasScheme(lower):
		// mailto:, javascript: and friends
		return "", false
	default:
		s = "https://" + s
	}

	u, err := url.Parse(s)
	if err != nil || u.Scheme != "https" || u.Opaque != "" || u.User != nil {
		return "", false
	}
	if !validHost(u.Hostname()) {
		return "", false
	}
	return u.String(), true
}

// Mailto returns the mailto: href for an email address
func Mailto(email string) (string, bool) {
	email = strings.TrimSpace(email)
	if email == "" || strings.ContainsAny(email, " \t\r\n<>\"") {
		return "", false
	}
	return "mailto:" + email, true
}

// hasScheme reports whether s starts with "scheme:" where the part after the
// colon is not a port number (so "localhost:8080" is not treated as a scheme).
func hasScheme(s string) bool {
	scheme, rest, ok := strings.Cut(s, ":")
	if !ok || scheme == "" {
		return false
	}
	for i, r := range scheme {
		isAlpha := r >= 'a' && r <= 'z'
		if i == 0 && !isAlpha {
			return false
		}
		if !isAlpha && !(r >= '0' && r <= '9') && r != '+' && r != '-' && r != '.' {
			return false
		}
	}
	port := rest
	if i := strings.IndexAny(port, "/?#"); i >= 0 {
		port = port[:i]
	}
	if port == "" {
		return true
	}
	_, err := strconv.Atoi(port)
	return err != nil
}

func validHost(host string) bool {
	if host == "" || len(host) > 253 {
		return false
	}
	if strings.HasPrefix(host, ".") || strings.HasSuffix(host, ".") || strings.Contains(host, "..") {
		return false
	}
	for _, r := range host {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-' || r == '.' || r == ':':
		case r > unicode.MaxASCII && unicode.IsLetter(r):
		default:
			return false
		}
	}
	return true
}
