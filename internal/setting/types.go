package setting

// Validator decides whether a raw string value is acceptable for a setting.
// A nil error means the value is accepted.
type Validator interface {
	Validate(value string) error
}

// ValidatorFunc adapts an ordinary function to the Validator interface.
type ValidatorFunc func(value string) error

// Validate calls f(value).
func (f ValidatorFunc) Validate(value string) error {
	return f(value)
}

// Setting is a named configuration option with an acceptance rule.
type Setting struct {
	Name        string
	Description string
	Default     string
	Validator   Validator
}

// Validate reports whether value is accepted by the setting's validator.
func (s Setting) Validate(value string) error {
	if s.Validator == nil {
		return ErrInvalidSetting
	}
	return s.Validator.Validate(value)
}
