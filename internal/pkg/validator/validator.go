package validator

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

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

// Add appends a field error.
func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, ValidationError{Field: field, Message: message})
}

// Err returns v as an error, or nil when no field failed.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// HasScaleAtMost reports whether d is exactly representable with the given number of
// decimal places. Trailing zeros beyond the scale are allowed.
func HasScaleAtMost(d decimal.Decimal, places int32) bool {
	return d.Equal(d.Round(places))
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

// IsValidPhoneNumber accepts 7-15 digits with an optional leading '+'; spaces and dashes are ignored.
func IsValidPhoneNumber(phone string) bool {
	phone = strings.ReplaceAll(phone, " ", "")
	phone = strings.ReplaceAll(phone, "-", "")
	return phoneRegex.MatchString(phone)
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse(DateLayout, dateStr)
	return date, err == nil
}

// ParseDateRange parses an inclusive YYYY-MM-DD range. Both ends are required and
// end must not precede start.
func ParseDateRange(startField, startStr, endField, endStr string) (time.Time, time.Time, error) {
	var errs ValidationErrors

	start, okStart := IsValidDate(startStr)
	if IsEmpty(startStr) {
		errs.Add(startField, "is required")
	} else if !okStart {
		errs.Add(startField, "must be in YYYY-MM-DD format")
	}

	end, okEnd := IsValidDate(endStr)
	if IsEmpty(endStr) {
		errs.Add(endField, "is required")
	} else if !okEnd {
		errs.Add(endField, "must be in YYYY-MM-DD format")
	}

	if okStart && okEnd && end.Before(start) {
		errs.Add(endField, "must not be before "+startField)
	}

	if len(errs) > 0 {
		return time.Time{}, time.Time{}, errs
	}
	return start, end, nil
}
