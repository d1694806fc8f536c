package property

import (
	"os"
	"strings"
)

// EnvProvider resolves properties from process environment variables.
//
// A key is looked up verbatim with the prefix first ("GRAPH_read_only"), then
// in its conventional variable form ("GRAPH_READ_ONLY"), where dots and
// dashes become underscores.
type EnvProvider struct {
	prefix string
	lookup func(string) (string, bool)
}

// NewEnvProvider returns a provider reading os environment variables.
func NewEnvProvider(prefix string) *EnvProvider {
	return &EnvProvider{
		prefix: prefix,
		lookup: os.LookupEnv,
	}
}

// Lookup implements Provider.
func (p *EnvProvider) Lookup(key string) (string, bool) {
	if key == "" {
		return "", false
	}
	if value, ok := p.lookup(p.prefix + key); ok {
		return value, true
	}
	name := EnvVarName(p.prefix, key)
	if name == p.prefix+key {
		return "", false
	}
	return p.lookup(name)
}

// EnvVarName converts a property key to its environment variable name,
// e.g. ("GRAPH_", "online_backup.server") -> "GRAPH_ONLINE_BACKUP_SERVER".
func EnvVarName(prefix, key string) string {
	replacer := strings.NewReplacer(".", "_", "-", "_")
	return prefix + strings.ToUpper(replacer.Replace(key))
}
