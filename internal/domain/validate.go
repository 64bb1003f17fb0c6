// Package domain – submission validation.
//
// The validator is a pure function over a candidate signup form. It returns a
// validity flag plus a field→message map; fields absent from the map are
// valid. It performs no I/O and is safe to call from any layer.
package domain

import (
	"regexp"
	"strconv"
	"strings"
)

// Age bounds for the waitlist, inclusive.
const (
	MinAge = 18
	MaxAge = 25
)

// emailRE matches a basic local@domain.tld shape. Intentionally loose: the
// goal is to catch obvious typos, not to implement RFC 5322.
var emailRE = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// SignupForm is the raw, untrusted submission payload. Age arrives as a
// string so that a missing, non-numeric, and out-of-range value all fall into
// the same error class.
type SignupForm struct {
	Name       string
	Email      string
	Occupation string
	Age        string
	University string
	Cities     string
	Linkedin   string
}

// ValidateSignup checks required fields, email shape, and the age range.
// University, cities, and linkedin are optional and never format-checked
// (linkedin in particular accepts any string).
func ValidateSignup(f SignupForm) (bool, map[string]string) {
	errs := map[string]string{}

	if strings.TrimSpace(f.Name) == "" {
		errs["name"] = "Name is required"
	}
	if !emailRE.MatchString(f.Email) {
		errs["email"] = "Valid email is required"
	}
	if strings.TrimSpace(f.Occupation) == "" {
		errs["occupation"] = "Occupation is required"
	}

	if strings.TrimSpace(f.Age) == "" {
		errs["age"] = "Age is required"
	} else if age, err := strconv.Atoi(strings.TrimSpace(f.Age)); err != nil || age < MinAge || age > MaxAge {
		errs["age"] = "Age must be between 18-25"
	}

	return len(errs) == 0, errs
}
