package root_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/sepa-pain/cmd/root"
	"fjacquet/sepa-pain/internal/rules"
)

func init() {
	root.Init()
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "sepa-pain", root.Cmd.Use)
	assert.Contains(t, root.Cmd.Short, "pain.001 and pain.008")
	assert.Contains(t, root.Cmd.Long, "YAML batch files or CSV payment lists")
	assert.NotNil(t, root.Cmd.Run)
	assert.NotNil(t, root.Cmd.PersistentPreRunE)
	assert.NotNil(t, root.Cmd.PersistentPostRun)
}

func TestRootCommand_Flags(t *testing.T) {
	inputFlag := root.Cmd.PersistentFlags().Lookup("input")
	require.NotNil(t, inputFlag)
	assert.Equal(t, "i", inputFlag.Shorthand)

	outputFlag := root.Cmd.PersistentFlags().Lookup("output")
	require.NotNil(t, outputFlag)
	assert.Equal(t, "o", outputFlag.Shorthand)

	noValidateFlag := root.Cmd.PersistentFlags().Lookup("no-validate")
	require.NotNil(t, noValidateFlag)
	assert.Equal(t, "false", noValidateFlag.DefValue)

	assert.NotNil(t, root.Cmd.PersistentFlags().Lookup("config"))
}

func TestRootCommand_Run(t *testing.T) {
	assert.NotPanics(t, func() {
		root.Cmd.Run(&cobra.Command{}, []string{})
	})
}

func TestGetLogrusAdapter(t *testing.T) {
	assert.NotNil(t, root.GetLogrusAdapter())
}

const testConfig = `
log:
  level: "error"
sepa:
  version: "pain.008.001.08"
  initiating_party: "Config Initiator"
`

func TestRootCommand_PersistentPreRunE(t *testing.T) {
	originalFlags := root.SharedFlags
	originalConfig := root.AppConfig
	originalContainer := root.AppContainer
	t.Cleanup(func() {
		root.SharedFlags = originalFlags
		root.AppConfig = originalConfig
		root.AppContainer = originalContainer
	})

	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	path := filepath.Join(dir, "sepa.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0o600))

	root.SharedFlags = root.CommonFlags{
		ConfigFile: path,
		Output:     filepath.Join(dir, "out"),
		NoValidate: true,
	}
	require.NoError(t, root.Cmd.PersistentPreRunE(&cobra.Command{}, nil))

	c := root.GetContainer()
	require.NotNil(t, c)
	assert.Same(t, root.GetConfig(), c.GetConfig())
	assert.Equal(t, rules.DD00800108, c.Version())
	assert.Equal(t, "Config Initiator", c.Defaults().InitgPty)
	assert.False(t, c.GetConfig().SEPA.CheckAndSanitize)
	assert.Equal(t, filepath.Join(dir, "out"), c.GetConfig().Output.Directory)

	assert.NotPanics(t, func() {
		root.Cmd.PersistentPostRun(&cobra.Command{}, nil)
	})
}

func TestRootCommand_PersistentPreRunE_MissingConfig(t *testing.T) {
	originalFlags := root.SharedFlags
	t.Cleanup(func() { root.SharedFlags = originalFlags })

	root.SharedFlags = root.CommonFlags{ConfigFile: filepath.Join(t.TempDir(), "missing.yaml")}
	err := root.Cmd.PersistentPreRunE(&cobra.Command{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")
}
