package cli_test

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gosfc/internal/cli"
	"github.com/yaklabco/gosfc/pkg/runner"
	"github.com/yaklabco/gosfc/pkg/sfc"
)

var testInfo = cli.BuildInfo{
	Version: "1.2.3",
	Commit:  "abc1234",
	Date:    "2026-01-02",
}

// execute runs the root command with colors off and a private config file.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cfgFile := filepath.Join(t.TempDir(), ".gosfc.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("jobs: 2\n"), 0o644))

	cmd := cli.NewRootCommand(testInfo)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--color", "never", "--config", cfgFile}, args...))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	require.NotNil(t, cmd)

	assert.Equal(t, "gosfc", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.True(t, cmd.SilenceUsage)
	assert.True(t, cmd.SilenceErrors)
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)

	for _, name := range []string{"check", "blocks", "set", "config", "init", "version"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}
}

func TestCommandFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		command string
		flags   []string
	}{
		{"check", []string{
			"format", "jobs", "ignore", "ext", "cache", "no-gitignore",
			"no-expressions", "keep-empty", "no-context", "compact", "summary",
		}},
		{"blocks", []string{"format"}},
		{"set", []string{"from", "stdin", "content", "raw", "force", "dry-run", "no-backups"}},
		{"config", []string{"format", "env"}},
		{"init", []string{"force", "full", "format", "output"}},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			t.Parallel()

			cmd := cli.NewRootCommand(testInfo)
			sub, _, err := cmd.Find([]string{tt.command})
			require.NoError(t, err)

			for _, name := range tt.flags {
				assert.NotNil(t, sub.Flags().Lookup(name), "flag --%s", name)
			}
		})
	}
}

func TestPersistentFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	for _, name := range []string{"debug", "config", "color", "log-format"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "flag --%s", name)
	}
}

func TestExitCodeFromError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, cli.ExitSuccess},
		{"issues", cli.ErrIssuesFound, cli.ExitIssues},
		{"usage", errors.Join(cli.ErrUsage, errors.New("bad flag")), cli.ExitInvalidUsage},
		{"config", errors.Join(cli.ErrConfig, errors.New("bad yaml")), cli.ExitConfigError},
		{"unreadable", cli.ErrUnreadableFiles, cli.ExitIOError},
		{"io", fmt.Errorf("wrap: %w", cli.ErrIO), cli.ExitIOError},
		{"other", errors.New("boom"), cli.ExitInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cli.ExitCodeFromError(tt.err))
		})
	}
}

func TestExitCodeFromResult(t *testing.T) {
	t.Parallel()

	issues := &runner.Result{Stats: runner.Stats{
		FilesProcessed:    1,
		FilesWithIssues:   1,
		DiagnosticsTotal:  1,
		DiagnosticsByCode: map[sfc.Code]int{sfc.CodeMissingEndTag: 1},
	}}
	unreadable := &runner.Result{
		Files: []runner.FileOutcome{{Path: "a.vue", Error: errors.New("denied")}},
		Stats: runner.Stats{FilesErrored: 1},
	}

	assert.Equal(t, cli.ExitSuccess, cli.ExitCodeFromResult(nil))
	assert.Equal(t, cli.ExitSuccess, cli.ExitCodeFromResult(&runner.Result{}))
	assert.Equal(t, cli.ExitIssues, cli.ExitCodeFromResult(issues))
	assert.Equal(t, cli.ExitIOError, cli.ExitCodeFromResult(unreadable))
}

func TestIsSilent(t *testing.T) {
	t.Parallel()

	assert.True(t, cli.IsSilent(cli.ErrIssuesFound))
	assert.False(t, cli.IsSilent(cli.ErrUnreadableFiles))
	assert.False(t, cli.IsSilent(nil))
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "", "version")
	require.NoError(t, err)

	assert.Contains(t, stdout, "gosfc")
	assert.Contains(t, stdout, "1.2.3")
	assert.Contains(t, stdout, "abc1234")
}

func TestHelpListsEnvironment(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "", "--help")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Available Commands:")
	assert.Contains(t, stdout, "Environment:")
	assert.Contains(t, stdout, "GOSFC_DISABLE_CACHE")
	assert.NotContains(t, stdout, "Selectors:")
}

func TestHelp_Subcommands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		contains []string
		excludes []string
	}{
		{
			name:     "set lists selectors and examples",
			args:     []string{"set", "--help"},
			contains: []string{"Selectors:", "script-setup", "custom:<type>[:N]", "Examples:", "--from string", "Global Flags:"},
			excludes: []string{"Environment:", "Available Commands:"},
		},
		{
			name:     "blocks lists selectors",
			args:     []string{"blocks", "--help"},
			contains: []string{"Selectors:", "style[:N]", `(default "text")`},
			excludes: []string{"Examples:"},
		},
		{
			name:     "check has no selectors",
			args:     []string{"check", "--help"},
			contains: []string{"Usage:", "Flags:"},
			excludes: []string{"Selectors:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			stdout, _, err := execute(t, "", tt.args...)
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, stdout, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, stdout, s)
			}
		})
	}
}

func TestUnknownFlagIsUsageError(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "", "check", "--bogus")
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCodeFromError(err))
}
