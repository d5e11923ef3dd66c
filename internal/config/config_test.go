package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/toyz/ctorgen/internal/annotations"
	"github.com/toyz/ctorgen/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ctorgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaults(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "4", cfg.Layout.Indent)
	assert.Equal(t, "auto", cfg.Layout.Newline)
	assert.Equal(t, []string{".cs"}, cfg.Scan.Extensions)
	assert.Equal(t, []string{"bin", "obj", ".git", ".vs", "node_modules"}, cfg.Scan.SkipDirs)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, int64(1048576), cfg.Server.MaxDocumentBytes)
	assert.Equal(t, "info", cfg.Log.Level)

	opts := cfg.LayoutOptions()
	assert.Equal(t, "    ", opts.IndentUnit)
	assert.Empty(t, opts.Newline)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
markers:
  injected: [Inject, Autowired]
  designated: [InjectionConstructor]
layout:
  indent: tab
  newline: crlf
scan:
  extensions: [.cs, .csx]
server:
  addr: 127.0.0.1:9000
  readTimeout: 3s
log:
  level: debug
minVersion: 0.1.0
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{".cs", ".csx"}, cfg.Scan.Extensions)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)

	opts := cfg.LayoutOptions()
	assert.Equal(t, "\t", opts.IndentUnit)
	assert.Equal(t, "\r\n", opts.Newline)

	resolver, err := cfg.Resolver()
	require.NoError(t, err)
	attrs := []annotations.Attribute{{Name: "AutowiredAttribute"}}
	assert.True(t, resolver.Markers(attrs, annotations.FieldTarget).Has(annotations.InjectedMarker))
	ctorAttrs := []annotations.Attribute{{Name: "InjectionConstructor"}}
	assert.True(t, resolver.Markers(ctorAttrs, annotations.ConstructorTarget).Has(annotations.DesignatedMarker))
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, "server:\n  addr: :7000\n")
	t.Setenv("CTORGEN_SERVER_ADDR", ":7001")
	t.Setenv("CTORGEN_LAYOUT_INDENT", "2")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7001", cfg.Server.Addr)
	assert.Equal(t, "  ", cfg.LayoutOptions().IndentUnit)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"newline":    "layout:\n  newline: mac\n",
		"indent":     "layout:\n  indent: wide\n",
		"extensions": "scan:\n  extensions: [cs]\n",
		"log level":  "log:\n  level: loud\n",
		"version":    "minVersion: soon\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content))
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, errors.ConfigurationErrorCode), "unexpected error %v", err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.HasCode(err, errors.ConfigurationErrorCode))
}

func TestResolverRejectsConflictingAlias(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)
	cfg.Markers.Excluded = []string{"InjectedDependency"}

	_, err = cfg.Resolver()
	assert.True(t, errors.HasCode(err, errors.ConfigurationErrorCode))
}

func TestCheckVersion(t *testing.T) {
	cfg := &Config{MinVersion: "1.2.0"}

	assert.NoError(t, cfg.CheckVersion("v1.2.0"))
	assert.NoError(t, cfg.CheckVersion("1.3.1"))
	assert.NoError(t, cfg.CheckVersion("dev"))

	err := cfg.CheckVersion("v1.1.9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires ctorgen 1.2.0 or newer")

	assert.NoError(t, (&Config{}).CheckVersion("v0.0.1"))
}

func TestDump(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, cfg.Dump(&buf))

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Contains(t, decoded, "layout")
	assert.Contains(t, buf.String(), "readTimeout: 10s")
	assert.NotContains(t, buf.String(), "minVersion")
}
