package setting

import "errors"

var (
	// ErrInvalidSetting is returned when a setting has an empty name or no validator.
	ErrInvalidSetting = errors.New("setting must have a name and a validator")
	// ErrDuplicateSetting is returned when two settings in a registry share a name.
	ErrDuplicateSetting = errors.New("duplicate setting name")
	// ErrInvalidValue is wrapped by every validator when a value is rejected.
	ErrInvalidValue = errors.New("invalid setting value")
)
