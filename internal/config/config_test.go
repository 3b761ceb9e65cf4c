package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/iconshift/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(writeConfig(t, ""), "iconshift.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.Root)
	assert.Equal(t, "lucide-react", cfg.LegacyModule)
	assert.Equal(t, "@aliimam/icons", cfg.ReplacementModule)
	assert.Equal(t, []string{".ts", ".tsx"}, cfg.Extensions)
	assert.Equal(t, []string{"**/*.test.ts", "**/*.test.tsx"}, cfg.Exclude)
	assert.Equal(t, 0, cfg.Workers)
}

func TestLoadFromFile(t *testing.T) {
	content := `
root: ./src
legacy_module: lucide-react
replacement_module: "@acme/icons"
extensions:
  - .tsx
workers: 4
`

	cfg, err := config.Load(filepath.Join(writeConfig(t, content), "iconshift.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "./src", cfg.Root)
	assert.Equal(t, "@acme/icons", cfg.ReplacementModule)
	assert.Equal(t, []string{".tsx"}, cfg.Extensions)
	assert.Equal(t, 4, cfg.Workers)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("ICONSHIFT_REPLACEMENT_MODULE", "@env/icons")

	cfg, err := config.Load(filepath.Join(writeConfig(t, ""), "iconshift.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "@env/icons", cfg.ReplacementModule)
}

func TestValidateSameModule(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		LegacyModule:      "lucide-react",
		ReplacementModule: "lucide-react",
		Extensions:        []string{".tsx"},
	}

	require.ErrorIs(t, cfg.Validate(), config.ErrSameModule)
}

func TestValidateModuleOverlap(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		LegacyModule:      "icons",
		ReplacementModule: "new-icons",
		Extensions:        []string{".tsx"},
	}

	require.ErrorIs(t, cfg.Validate(), config.ErrModuleOverlap)
}

func TestValidateMissingModules(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{ReplacementModule: "x", Extensions: []string{".tsx"}}
	require.ErrorIs(t, cfg.Validate(), config.ErrMissingLegacyModule)

	cfg = &config.Config{LegacyModule: "x", Extensions: []string{".tsx"}}
	require.ErrorIs(t, cfg.Validate(), config.ErrMissingReplacementModule)
}

func TestValidateExtensions(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{LegacyModule: "a", ReplacementModule: "b"}
	require.ErrorIs(t, cfg.Validate(), config.ErrNoExtensions)

	cfg.Extensions = []string{"tsx"}
	require.ErrorIs(t, cfg.Validate(), config.ErrBadExtension)
}

func TestValidateNegativeWorkers(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		LegacyModule:      "a",
		ReplacementModule: "b",
		Extensions:        []string{".tsx"},
		Workers:           -1,
	}

	require.ErrorIs(t, cfg.Validate(), config.ErrNegativeWorkers)
}

// writeConfig writes an iconshift.yaml with content (empty for defaults
// only) into a temp dir and returns the dir.
func writeConfig(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()

	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "iconshift.yaml"),
		[]byte(content),
		0o644,
	))

	return dir
}
