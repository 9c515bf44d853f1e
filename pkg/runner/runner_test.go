package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gosfc/pkg/config"
	"github.com/yaklabco/gosfc/pkg/loader"
	"github.com/yaklabco/gosfc/pkg/parsecache"
	"github.com/yaklabco/gosfc/pkg/runner"
	"github.com/yaklabco/gosfc/pkg/sfc"
)

func TestRunner_Run(t *testing.T) {
	t.Parallel()

	dir := makeTree(t, map[string]string{
		"a/Good.vue":    component,
		"b/Bad.vue":     "<template>{{ msg. }}</template>\n",
		"c/Empty.vue":   "\n",
		"d/Another.vue": "<script setup>const a = 1</script>\n",
	})

	r := runner.New(loader.WithCache(parsecache.New(0, 0)))
	result, err := r.Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 2})
	require.NoError(t, err)

	require.Len(t, result.Files, 4)
	assert.Equal(t, []string{"a/Good.vue", "b/Bad.vue", "c/Empty.vue", "d/Another.vue"},
		rel(t, dir, paths(result)))

	assert.Equal(t, 4, result.Stats.FilesDiscovered)
	assert.Equal(t, 4, result.Stats.FilesProcessed)
	assert.Equal(t, 2, result.Stats.FilesWithIssues)
	assert.Equal(t, 2, result.Stats.DiagnosticsTotal)
	assert.Equal(t, 1, result.Stats.DiagnosticsByCode[sfc.CodeInvalidExpression])
	assert.Equal(t, 1, result.Stats.DiagnosticsByCode[sfc.CodeMissingRequiredBlock])
	assert.True(t, result.HasIssues())
	assert.False(t, result.HasErrors())

	assert.Empty(t, result.Files[0].Diagnostics())
	require.Len(t, result.Files[1].Diagnostics(), 1)
	assert.Equal(t, sfc.CodeInvalidExpression, result.Files[1].Diagnostics()[0].Code)
}

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	result, err := runner.New().Run(context.Background(), runner.Options{WorkingDir: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.False(t, result.HasIssues())
}

func TestRunner_Run_UnreadableFile(t *testing.T) {
	t.Parallel()

	if os.Geteuid() == 0 {
		t.Skip("root can read any file")
	}

	dir := makeTree(t, map[string]string{"A.vue": component, "B.vue": component})
	require.NoError(t, os.Chmod(filepath.Join(dir, "B.vue"), 0o000))

	result, err := runner.New().Run(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)

	require.Len(t, result.Files, 2)
	assert.NoError(t, result.Files[0].Error)

	var ioErr *loader.IOError
	require.ErrorAs(t, result.Files[1].Error, &ioErr)
	assert.Nil(t, result.Files[1].Diagnostics())
	assert.Equal(t, 1, result.Stats.FilesErrored)
	assert.True(t, result.HasErrors())
}

func TestRunner_Run_Cancelled(t *testing.T) {
	t.Parallel()

	dir := makeTree(t, map[string]string{"A.vue": component})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.New().Run(ctx, runner.Options{WorkingDir: dir})
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunner_Run_CachedDuplicates(t *testing.T) {
	t.Parallel()

	dir := makeTree(t, map[string]string{"A.vue": component, "B.vue": component})
	cache := parsecache.New(0, 0)

	r := runner.New(loader.WithCache(cache), loader.WithDisableCache(false))
	opts := runner.Options{WorkingDir: dir, Jobs: 1}

	first, err := r.Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, 0, first.Stats.FilesCached)

	second, err := r.Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Stats.FilesCached)
}

func TestOptionsFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Ignore = []string{"dist"}
	cfg.Gitignore = config.Bool(false)
	cfg.Jobs = 3

	opts := runner.OptionsFromConfig(cfg, []string{"src"}, "/work")

	assert.Equal(t, []string{"src"}, opts.Paths)
	assert.Equal(t, "/work", opts.WorkingDir)
	assert.Equal(t, []string{".vue"}, opts.Extensions)
	assert.Equal(t, []string{"dist"}, opts.Ignore)
	assert.False(t, opts.Gitignore)
	assert.Equal(t, 3, opts.Jobs)
	assert.Len(t, runner.LoaderOptions(cfg), 2)
}

func paths(r *runner.Result) []string {
	out := make([]string, len(r.Files))
	for i, f := range r.Files {
		out[i] = f.Path
	}
	return out
}
