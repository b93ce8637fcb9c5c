package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/cpghub/cpghub-api/internal/validation"
)

// FlexInt accepts a JSON number or a numeric string ("25") and coerces it to
// a whole number. A non-numeric string is recorded as a type failure that
// surfaces as a field error during validation - it never silently becomes
// zero. Fractional numbers are rejected the same way.
type FlexInt struct {
	value   int
	set     bool
	invalid bool
}

// NewFlexInt builds a set FlexInt, mainly for tests and normalization.
func NewFlexInt(v int) FlexInt {
	return FlexInt{value: v, set: true}
}

// UnmarshalJSON never returns an error for bad numeric content; the failure
// is kept so Validate can attribute it to the right field path.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	f.set = true

	s := strings.TrimSpace(string(data))
	if s == "null" {
		f.set = false
		return nil
	}
	s = strings.Trim(s, `"`)
	s = strings.TrimSpace(s)

	n, err := strconv.Atoi(s)
	if err != nil {
		f.invalid = true
		return nil
	}

	f.value = n
	return nil
}

// MarshalJSON emits the coerced number.
func (f FlexInt) MarshalJSON() ([]byte, error) {
	if !f.set || f.invalid {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}

// Int returns the coerced value; only meaningful when Ok.
func (f FlexInt) Int() int {
	return f.value
}

// Set reports whether the field was present in the payload.
func (f FlexInt) Set() bool {
	return f.set
}

// Ok reports whether the field holds a usable whole number.
func (f FlexInt) Ok() bool {
	return f.set && !f.invalid
}

// CheckRange appends field errors for absence, type failure or bound
// violations.
func (f FlexInt) CheckRange(errs validation.Errors, field string, min, max int) validation.Errors {
	switch {
	case !f.set:
		return errs.Add(field, field+" is required")
	case f.invalid:
		return errs.Add(field, "must be a whole number")
	case f.value < min || f.value > max:
		return errs.Add(field, fmt.Sprintf("must be between %d and %d", min, max))
	}
	return errs
}
