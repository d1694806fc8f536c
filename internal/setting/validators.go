package setting

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	// True is the canonical accepted value for an enabled boolean setting.
	True = "true"
	// False is the canonical accepted value for a disabled boolean setting.
	False = "false"
)

// validate is safe for concurrent use and caches parsed tags.
var validate = validator.New()

// Boolean accepts exactly "true" or "false".
func Boolean() Validator {
	return Options(True, False)
}

// Options accepts only one of the listed values. Matching is case sensitive.
func Options(values ...string) Validator {
	allowed := slices.Clone(values)
	return ValidatorFunc(func(value string) error {
		if slices.Contains(allowed, value) {
			return nil
		}
		return fmt.Errorf("%w: %q is not one of [%s]", ErrInvalidValue, value, strings.Join(allowed, ", "))
	})
}

// Integer accepts base-10 integers within [min, max].
func Integer(min, max int64) Validator {
	tag := fmt.Sprintf("gte=%d,lte=%d", min, max)
	return ValidatorFunc(func(value string) error {
		n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %q is not an integer", ErrInvalidValue, value)
		}
		if err := validate.Var(n, tag); err != nil {
			return fmt.Errorf("%w: %d is outside [%d, %d]", ErrInvalidValue, n, min, max)
		}
		return nil
	})
}

// Duration accepts non-negative values understood by time.ParseDuration.
func Duration() Validator {
	return ValidatorFunc(func(value string) error {
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%w: %q is not a duration", ErrInvalidValue, value)
		}
		if d < 0 {
			return fmt.Errorf("%w: duration %s is negative", ErrInvalidValue, d)
		}
		return nil
	})
}

// Port accepts TCP port numbers.
func Port() Validator {
	return Integer(1, 65535)
}

// HostPort accepts "host:port" addresses.
func HostPort() Validator {
	return Tag("hostname_port")
}

// URL accepts absolute URLs.
func URL() Validator {
	return Tag("url")
}

// NonEmpty accepts any value that is not blank.
func NonEmpty() Validator {
	return ValidatorFunc(func(value string) error {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: value must not be empty", ErrInvalidValue)
		}
		return nil
	})
}

// Tag validates values with a go-playground/validator tag such as "email"
// or "oneof=a b". The tag must be known to the validator package.
func Tag(tag string) Validator {
	return ValidatorFunc(func(value string) error {
		if err := validate.Var(value, tag); err != nil {
			return fmt.Errorf("%w: %q fails %q", ErrInvalidValue, value, tag)
		}
		return nil
	})
}

// Func wraps a predicate. A false result rejects the value.
func Func(accept func(string) bool) Validator {
	return ValidatorFunc(func(value string) error {
		if accept(value) {
			return nil
		}
		return fmt.Errorf("%w: %q", ErrInvalidValue, value)
	})
}
