package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigLocator_Locate(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "src", "Services")
	require.NoError(t, os.MkdirAll(nested, 0755))

	source := filepath.Join(nested, "Service.cs")
	require.NoError(t, os.WriteFile(source, []byte("class Service {}"), 0644))

	locator := NewConfigLocator()

	t.Run("not found", func(t *testing.T) {
		_, ok := locator.Locate(nested)
		assert.False(t, ok)
	})

	configPath := filepath.Join(root, ".ctorgen.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("layout:\n  indent: tab\n"), 0644))

	tests := []struct {
		name  string
		start string
	}{
		{name: "from a directory", start: nested},
		{name: "from a file", start: source},
		{name: "from a recursive pattern", start: filepath.Join(root, "src") + "/..."},
		{name: "from the root itself", start: root},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, ok := locator.Locate(tt.start)
			require.True(t, ok)
			assert.Equal(t, configPath, found)
		})
	}
}
