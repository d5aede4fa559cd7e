package validator

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Numeric validation
var numericRegex = regexp.MustCompile(`^[0-9]+$`)

func IsNumeric(s string) bool {
	return numericRegex.MatchString(s)
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}

// ParseFlexibleBool parses spreadsheet-style booleans. Accepted true values
// are yes/y/true/t/1, false values no/n/false/f/0, case-insensitive. Any
// other value returns ok=false so callers can fall back to a default.
func ParseFlexibleBool(s string) (value bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true", "t", "1":
		return true, true
	case "no", "n", "false", "f", "0":
		return false, true
	default:
		return false, false
	}
}

// ParseAmount parses a master-sheet money value. Currency symbols, commas
// and surrounding whitespace are stripped first. Empty or unparseable
// values return ok=false.
func ParseAmount(s string) (decimal.Decimal, bool) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.NewReplacer(",", "", "₹", "", "Rs.", "", "Rs", "", " ", "").Replace(cleaned)
	if cleaned == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// ParseFlexibleDate tries the date layouts that show up in exported
// master sheets.
func ParseFlexibleDate(s string) (time.Time, bool) {
	layouts := []string{
		"2006-01-02",
		"02-01-2006",
		"02/01/2006",
		"2006/01/02",
		"2 Jan 2006",
		"02 Jan 2006",
		time.RFC3339,
	}
	cleaned := strings.TrimSpace(s)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
