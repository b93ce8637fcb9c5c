package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// FieldError is a single field-level validation failure, addressable by the
// JSON field path so the presenting form can show it next to the right input.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Errors is an additive collection of field errors. Validation never
// short-circuits: a payload can fail on several fields at once and all of
// them are reported together.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Error())
	}
	return strings.Join(msgs, "; ")
}

// Add appends a field error and returns the extended list.
func (e Errors) Add(field, message string) Errors {
	return append(e, FieldError{Field: field, Message: message})
}

var (
	// urlPattern matches scheme + host with at least one dot, optional port,
	// path and query. Validated after NormalizeURL has guaranteed a scheme.
	urlPattern = regexp.MustCompile(`^https?://[A-Za-z0-9-]+(\.[A-Za-z0-9-]+)+(:\d+)?(/[^\s]*)?$`)

	// categoryTextPattern is the allow-list for free-text category additions:
	// letters, digits, spaces and a small set of punctuation.
	categoryTextPattern = regexp.MustCompile(`^[A-Za-z0-9 /\-&+:.()]+$`)

	linkedInHosts = map[string]bool{
		"linkedin.com":     true,
		"www.linkedin.com": true,
	}

	linkedInPathPrefixes = []string{"in/", "company/", "school/"}
)

// IsWebsite reports whether raw is a valid website URL once normalized.
func IsWebsite(raw string) bool {
	return urlPattern.MatchString(NormalizeURL(raw))
}

// IsLinkedIn reports whether raw points at a LinkedIn profile, company or
// school page. Any other LinkedIn path (feed, jobs, ...) is rejected.
func IsLinkedIn(raw string) bool {
	normalized := NormalizeURL(raw)
	if !urlPattern.MatchString(normalized) {
		return false
	}

	rest := strings.TrimPrefix(normalized, "https://")
	rest = strings.TrimPrefix(rest, "http://")

	host := rest
	path := ""
	if idx := strings.Index(rest, "/"); idx >= 0 {
		host = rest[:idx]
		path = rest[idx+1:]
	}

	if !linkedInHosts[strings.ToLower(host)] {
		return false
	}

	for _, prefix := range linkedInPathPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// IsCategoryText reports whether text is acceptable as a custom category
// label: trimmed length of at least 3 and restricted to the allowed
// character set.
func IsCategoryText(text string) bool {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < 3 {
		return false
	}
	return categoryTextPattern.MatchString(trimmed)
}

// CategoryTextError explains why text failed IsCategoryText.
func CategoryTextError(text string) string {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < 3 {
		return "must be at least 3 characters"
	}
	return "may only contain letters, digits, spaces and / - & + : . ( )"
}

// RegisterGinValidators registers the custom validation tags on gin's
// binding engine. Must be called once before the router starts handling
// requests.
func RegisterGinValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("gin binding validator is not *validator.Validate")
	}
	return RegisterOn(v)
}

// RegisterOn registers the custom tags on an arbitrary validator instance.
// Field names in validation errors come from the json tag, so failures are
// addressable by the field path the client actually submitted.
func RegisterOn(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("website", func(fl validator.FieldLevel) bool {
		return IsWebsite(fl.Field().String())
	}); err != nil {
		return err
	}

	if err := v.RegisterValidation("linkedin", func(fl validator.FieldLevel) bool {
		return IsLinkedIn(fl.Field().String())
	}); err != nil {
		return err
	}

	if err := v.RegisterValidation("categorytext", func(fl validator.FieldLevel) bool {
		return IsCategoryText(fl.Field().String())
	}); err != nil {
		return err
	}

	return nil
}
