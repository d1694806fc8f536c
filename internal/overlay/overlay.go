package overlay

import (
	"go.uber.org/zap"

	"github.com/eugenenazirov/settings-overlay/internal/property"
	"github.com/eugenenazirov/settings-overlay/internal/setting"
)

// Evaluation describes how a single setting fared against the property source.
type Evaluation struct {
	Name     string
	Value    string
	Present  bool
	Accepted bool
	Err      error
}

// Option configures an Overlay.
type Option func(*Overlay)

// WithLogger reports rejected property values at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Overlay) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Overlay selects validated values for registered settings from a property
// provider. It holds no mutable state and is safe for concurrent use as long
// as the provider is.
type Overlay struct {
	registry *setting.Registry
	props    property.Provider
	logger   *zap.Logger
}

// New creates an Overlay over the given registry and property provider.
func New(registry *setting.Registry, props property.Provider, opts ...Option) *Overlay {
	o := &Overlay{
		registry: registry,
		props:    props,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Apply returns a new map holding every registered setting whose property is
// present and valid. Invalid values are dropped without error. The result
// does not depend on base, which is never modified; callers decide how to
// combine the two (see Merge).
func (o *Overlay) Apply(base map[string]string) map[string]string {
	_ = base
	out := make(map[string]string)
	for _, ev := range o.Evaluate() {
		if ev.Accepted {
			out[ev.Name] = ev.Value
		}
	}
	return out
}

// Evaluate scans the registry in declaration order and reports, for each
// setting, whether a property was found and whether its value was accepted.
func (o *Overlay) Evaluate() []Evaluation {
	if o.registry == nil || o.props == nil {
		return nil
	}

	settings := o.registry.All()
	out := make([]Evaluation, 0, len(settings))
	for _, s := range settings {
		ev := Evaluation{Name: s.Name}
		value, ok := o.props.Lookup(s.Name)
		if ok {
			ev.Present = true
			ev.Value = value
			if err := s.Validate(value); err != nil {
				ev.Err = err
				o.logger.Debug("property rejected",
					zap.String("setting", s.Name),
					zap.String("value", value),
					zap.Error(err),
				)
			} else {
				ev.Accepted = true
			}
		}
		out = append(out, ev)
	}
	return out
}
