package services

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/common"
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// dobLayouts are tried in order; browsers send the first, JS Date.toJSON the second.
var dobLayouts = []string{time.DateOnly, time.RFC3339Nano}

// normalizeEmail trims and lower-cases an address so lookups and cache keys
// agree regardless of how the user typed it.
func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// validateEmail normalizes s and checks the local@domain.tld shape.
func validateEmail(s string) (string, error) {
	email := normalizeEmail(s)
	if email == "" {
		return "", fmt.Errorf("%w: email is required", common.ErrInvalidInput)
	}
	if !emailPattern.MatchString(email) {
		return "", fmt.Errorf("%w: please provide a valid email", common.ErrInvalidInput)
	}
	return email, nil
}

// parseDOB accepts YYYY-MM-DD or an RFC 3339 timestamp and keeps only the
// calendar date.
func parseDOB(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: dob is required", common.ErrInvalidInput)
	}
	for _, layout := range dobLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: dob must be a date (YYYY-MM-DD)", common.ErrInvalidInput)
}
