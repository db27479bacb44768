// Package validate centralizes the per-route input checks. Handlers
// build a Checker, run the declarative rules for their fields, and bail
// out with the itemized violation list before touching any registry.
package validate

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/coreybb/voxvite/webutil"
	"github.com/microcosm-cc/bluemonday"
)

// stripPolicy removes all markup from user-supplied text, leaving the
// escaped plain text. Shared; bluemonday policies are safe for
// concurrent use.
var stripPolicy = bluemonday.StripTagsPolicy()

// Checker accumulates constraint violations for one request.
type Checker struct {
	violations []string
}

func New() *Checker {
	return &Checker{}
}

// Err returns nil when every rule passed, or a ValidationError
// carrying all violated constraints.
func (c *Checker) Err() error {
	if len(c.violations) == 0 {
		return nil
	}
	return webutil.ErrValidation(c.violations)
}

func (c *Checker) add(format string, args ...any) {
	c.violations = append(c.violations, fmt.Sprintf(format, args...))
}

// AddViolation records a constraint the declarative rules don't cover.
func (c *Checker) AddViolation(message string) {
	c.violations = append(c.violations, message)
}

// Required trims the value and records a violation if nothing remains.
// It returns the trimmed value.
func (c *Checker) Required(field, value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		c.add("%s is required", field)
	}
	return trimmed
}

// Email normalizes (trim + lowercase) and checks the address shape.
// The normalized form is returned and is what registries are keyed by.
func (c *Checker) Email(field, value string) string {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		c.add("%s is required", field)
		return normalized
	}
	addr, err := mail.ParseAddress(normalized)
	if err != nil || addr.Address != normalized {
		c.add("%s must be a valid email address", field)
	}
	return normalized
}

// MinLen records a violation when value is shorter than n characters.
func (c *Checker) MinLen(field, value string, n int) {
	if len(value) < n {
		c.add("%s must be at least %d characters", field, n)
	}
}

// TokenLen records a violation unless value is exactly n characters.
// Link ids have a fixed length, so anything else can never match.
func (c *Checker) TokenLen(field, value string, n int) {
	if len(value) != n {
		c.add("%s must be exactly %d characters", field, n)
	}
}

// OneOf records a violation unless value is one of the allowed set.
func (c *Checker) OneOf(field, value string, allowed ...string) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	c.add("%s must be one of: %s", field, strings.Join(allowed, ", "))
}

// Sanitize strips markup and control sequences from user-supplied
// text and trims the result.
func Sanitize(value string) string {
	return strings.TrimSpace(stripPolicy.Sanitize(value))
}
