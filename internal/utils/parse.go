package utils

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

var (
	yearRegex    = regexp.MustCompile(`\b(18\d{2}|19\d{2}|20\d{2})\b`)
	runtimeRegex = regexp.MustCompile(`^\s*(\d+)`)
)

// ExtractYear extracts the first 4-digit year from an OMDb year string
// Returns 0 if no year is found
// Matches years like: 1999, 2011–2019, 2020–
func ExtractYear(s string) int {
	matches := yearRegex.FindStringSubmatch(s)
	if len(matches) > 1 {
		year, err := strconv.Atoi(matches[1])
		if err == nil {
			return year
		}
	}
	return 0
}

// ParseRuntime parses the leading minutes of an OMDb runtime ("136 min").
// Returns nil for "N/A", empty or otherwise unparsable values.
func ParseRuntime(s string) *int {
	matches := runtimeRegex.FindStringSubmatch(s)
	if len(matches) < 2 {
		return nil
	}
	minutes, err := strconv.Atoi(matches[1])
	if err != nil {
		return nil
	}
	return &minutes
}

// ParseRating parses an OMDb rating ("8.7"). Returns nil for "N/A".
func ParseRating(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "N/A" {
		return nil
	}
	rating, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &rating
}

// NormalizeOptional maps OMDb's "N/A" placeholder to an empty string
func NormalizeOptional(s string) string {
	s = strings.TrimSpace(s)
	if s == "N/A" {
		return ""
	}
	return s
}

// NormalizeQuery trims and NFC-normalizes a search query
func NormalizeQuery(query string) string {
	return norm.NFC.String(strings.TrimSpace(query))
}

// QueryLength counts the runes of a normalized query
func QueryLength(query string) int {
	return utf8.RuneCountInString(NormalizeQuery(query))
}

// Average returns the arithmetic mean of values, 0 for an empty slice
func Average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
