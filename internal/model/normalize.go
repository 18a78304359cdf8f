package model

import (
	"regexp"
	"strings"
)

var (
	minutesSuffix = regexp.MustCompile(`\d{1,2}:\d{2}$`)
	secondsSuffix = regexp.MustCompile(`\d{1,2}:\d{2}:\d{2}$`)
)

// NormalizeTime appends ":00" to a value ending in H:MM or HH:MM. Values
// that already carry seconds, or that do not end in a time of day, are
// returned unchanged, so normalizing twice equals normalizing once.
func NormalizeTime(v string) string {
	if !minutesSuffix.MatchString(v) || secondsSuffix.MatchString(v) {
		return v
	}
	return v + ":00"
}

// NormalizeDateTime replaces the "T" separator with a space and then pads
// the seconds like NormalizeTime.
func NormalizeDateTime(v string) string {
	if v == "" {
		return v
	}
	return NormalizeTime(strings.ReplaceAll(v, "T", " "))
}
