package overlay

import (
	"maps"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/eugenenazirov/settings-overlay/internal/property"
	"github.com/eugenenazirov/settings-overlay/internal/setting"
)

func propertyTestRegistry() *setting.Registry {
	return setting.MustRegistry(
		setting.Setting{Name: "read_only", Validator: setting.Boolean()},
		setting.Setting{Name: "cache_type", Validator: setting.Options("weak", "soft", "strong")},
		setting.Setting{Name: "block_size", Validator: setting.Integer(1, 1024)},
	)
}

func genProperties() gopter.Gen {
	keys := gen.OneConstOf("read_only", "cache_type", "block_size", "foo", "unregistered")
	values := gen.OneConstOf("true", "false", "foo", "weak", "soft", "120", "0", "4096", "")
	return gen.MapOf(keys, values)
}

// For any property store content, the overlay holds exactly the registered
// keys whose values validate, with their values unchanged.
func TestApply_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)
	registry := propertyTestRegistry()

	properties.Property("overlay is the validated subset of registered keys", prop.ForAll(
		func(props map[string]string) bool {
			got := New(registry, property.NewMemoryStore(props)).Apply(map[string]string{})

			for _, s := range registry.All() {
				value, present := props[s.Name]
				overlaid, inOverlay := got[s.Name]
				switch {
				case !present:
					if inOverlay {
						return false
					}
				case s.Validate(value) == nil:
					if !inOverlay || overlaid != value {
						return false
					}
				default:
					if inOverlay {
						return false
					}
				}
			}
			return true
		},
		genProperties(),
	))

	properties.Property("unregistered keys never appear", prop.ForAll(
		func(props map[string]string) bool {
			got := New(registry, property.NewMemoryStore(props)).Apply(map[string]string{})
			for key := range got {
				if _, ok := registry.Lookup(key); !ok {
					return false
				}
			}
			return true
		},
		genProperties(),
	))

	properties.Property("apply is idempotent", prop.ForAll(
		func(props map[string]string) bool {
			o := New(registry, property.NewMemoryStore(props))
			return maps.Equal(o.Apply(nil), o.Apply(nil))
		},
		genProperties(),
	))

	properties.Property("result does not depend on base", prop.ForAll(
		func(props, base map[string]string) bool {
			o := New(registry, property.NewMemoryStore(props))
			before := maps.Clone(base)
			withBase := o.Apply(base)
			return maps.Equal(withBase, o.Apply(map[string]string{})) && maps.Equal(before, base)
		},
		genProperties(),
		genProperties(),
	))

	properties.TestingRun(t)
}
