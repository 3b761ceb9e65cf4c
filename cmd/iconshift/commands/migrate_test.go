package commands_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/iconshift/cmd/iconshift/commands"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()

	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	return root
}

func TestMigrateCommandRewritesTree(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"nav.tsx": "import { AlertCircle, Home, BarChart } from \"lucide-react\";\n\n<AlertCircle /><Home /><BarChart />\n",
	})

	cmd := commands.NewMigrateCommand()
	cmd.SetArgs([]string{root})

	require.NoError(t, cmd.Execute())

	after, err := os.ReadFile(filepath.Join(root, "nav.tsx"))
	require.NoError(t, err)

	want := "import { CircleAlert, House } from \"@aliimam/icons\";\n" +
		"import { BarChart } from \"lucide-react\";\n\n" +
		"<CircleAlert /><House /><BarChart />\n"

	assert.Equal(t, want, string(after))
}

func TestMigrateCommandDryRun(t *testing.T) {
	t.Parallel()

	src := "import { Home } from \"lucide-react\";\n\n<Home />\n"
	root := writeTree(t, map[string]string{"a.tsx": src})

	cmd := commands.NewMigrateCommand()
	cmd.SetArgs([]string{"--dry-run", root})

	require.NoError(t, cmd.Execute())

	after, err := os.ReadFile(filepath.Join(root, "a.tsx"))
	require.NoError(t, err)
	assert.Equal(t, src, string(after))
}

func TestMigrateCommandCustomModules(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"a.tsx": "import { Home } from \"old-icons\";\n\n<Home />\n",
	})

	cmd := commands.NewMigrateCommand()
	cmd.SetArgs([]string{"--legacy", "old-icons", "--replacement", "new-icons", root})

	require.NoError(t, cmd.Execute())

	after, err := os.ReadFile(filepath.Join(root, "a.tsx"))
	require.NoError(t, err)
	assert.Equal(t, "import { House } from \"new-icons\";\n\n<House />\n", string(after))
}

func TestMigrateCommandCustomMappingFile(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"a.tsx": "import { Sunrise } from \"lucide-react\";\n\n<Sunrise />\n",
	})

	mappingPath := filepath.Join(t.TempDir(), "table.yaml")
	require.NoError(t, os.WriteFile(mappingPath, []byte("renames:\n  Sunrise: SunUp\n"), 0o644))

	cmd := commands.NewMigrateCommand()
	cmd.SetArgs([]string{"--mapping", mappingPath, root})

	require.NoError(t, cmd.Execute())

	after, err := os.ReadFile(filepath.Join(root, "a.tsx"))
	require.NoError(t, err)
	assert.Equal(t, "import { SunUp } from \"@aliimam/icons\";\n\n<SunUp />\n", string(after))
}

func TestMigrateCommandStrictFailsOnResiduals(t *testing.T) {
	t.Parallel()

	// A default import cannot be rewritten, so verification must fail.
	root := writeTree(t, map[string]string{
		"a.tsx": "import Lucide from \"lucide-react\";\n\n<Lucide.Home />\n",
	})

	cmd := commands.NewMigrateCommand()
	cmd.SetArgs([]string{"--strict", root})

	err := cmd.Execute()
	require.ErrorIs(t, err, commands.ErrVerificationFailed)
}

func TestMigrateCommandNonStrictExitsClean(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"a.tsx": "import Lucide from \"lucide-react\";\n\n<Lucide.Home />\n",
	})

	cmd := commands.NewMigrateCommand()
	cmd.SetArgs([]string{root})

	require.NoError(t, cmd.Execute(), "per-file problems never fail a non-strict run")
}

func TestMigrateCommandInvalidFlags(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{"a.tsx": "export {};\n"})

	cmd := commands.NewMigrateCommand()
	cmd.SetArgs([]string{"--legacy", "same", "--replacement", "same", root})

	require.Error(t, cmd.Execute())
}

func TestMigrateCommandOverlappingModules(t *testing.T) {
	t.Parallel()

	src := "import { Home } from \"icons\";\n\n<Home />\n"
	root := writeTree(t, map[string]string{"a.tsx": src})

	cmd := commands.NewMigrateCommand()
	cmd.SetArgs([]string{"--legacy", "icons", "--replacement", "new-icons", root})

	require.Error(t, cmd.Execute())

	after, err := os.ReadFile(filepath.Join(root, "a.tsx"))
	require.NoError(t, err)
	assert.Equal(t, src, string(after), "rejected configuration must not touch files")
}

func TestVerifyCommandCleanTree(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"a.tsx": "import { CircleAlert } from \"@aliimam/icons\";\n\n<CircleAlert />\n",
	})

	cmd := commands.NewVerifyCommand()
	cmd.SetArgs([]string{root})

	require.NoError(t, cmd.Execute())
}

func TestVerifyCommandFindsResiduals(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"a.tsx": "import { Clock } from \"lucide-react\";\n\n<Clock />\n",
	})

	cmd := commands.NewVerifyCommand()
	cmd.SetArgs([]string{root})

	require.ErrorIs(t, cmd.Execute(), commands.ErrVerificationFailed)
}

func TestVerifyCommandNonStrict(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"a.tsx": "import { Clock } from \"lucide-react\";\n\n<Clock />\n",
	})

	cmd := commands.NewVerifyCommand()
	cmd.SetArgs([]string{"--strict=false", root})

	require.NoError(t, cmd.Execute())
}
