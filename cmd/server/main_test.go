package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/settings-overlay/internal/application"
	"github.com/eugenenazirov/settings-overlay/internal/config"
)

func TestResolvePrintsEffectiveSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.yaml")
	if err := os.WriteFile(path, []byte("read_only: true\ncache_type: bogus\nfoo: bar\n"), 0o600); err != nil {
		t.Fatalf("write properties file: %v", err)
	}

	cfg := config.Config{
		Port:                ":0",
		ShutdownGracePeriod: time.Millisecond,
		LogLevel:            "info",
		PropertiesFile:      path,
		Settings: map[string]string{
			"read_only":  "false",
			"cache_type": "weak",
			"custom":     "kept",
		},
	}

	app, err := application.New(cfg, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("application.New returned error: %v", err)
	}

	var out bytes.Buffer
	if err := resolve(app, &out); err != nil {
		t.Fatalf("resolve returned error: %v", err)
	}

	var got map[string]string
	if err := yaml.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not YAML: %v\n%s", err, out.String())
	}

	want := map[string]string{
		"read_only":  "true",
		"cache_type": "weak",
		"custom":     "kept",
	}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("expected %s=%s, got %q", k, v, got[k])
		}
	}
}
