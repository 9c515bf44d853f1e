package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gosfc/pkg/config"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()

	assert.True(t, cfg.CacheDisabled())
	assert.True(t, cfg.IgnoreEmptyBlocks())
	assert.True(t, cfg.ExpressionChecks())
	assert.True(t, cfg.UseGitignore())
	assert.True(t, cfg.BackupsEnabled())
	assert.Equal(t, []string{".vue"}, cfg.ComponentExtensions())
	assert.Equal(t, config.FormatText, cfg.Format)
}

func TestConfig_ZeroValueAccessors(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}

	assert.True(t, cfg.CacheDisabled())
	assert.True(t, cfg.IgnoreEmptyBlocks())
	assert.True(t, cfg.ExpressionChecks())
	assert.True(t, cfg.UseGitignore())
	assert.True(t, cfg.BackupsEnabled())
	assert.Equal(t, []string{config.DefaultExtension}, cfg.ComponentExtensions())
}

func TestConfig_BackupsEnabled(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  config.Config
		want bool
	}{
		{"unset", config.Config{}, true},
		{"disabled", config.Config{Backups: config.BackupsConfig{Enabled: config.Bool(false)}}, false},
		{"mode none", config.Config{Backups: config.BackupsConfig{Mode: "none"}}, false},
		{"no backups flag", config.Config{NoBackups: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.cfg.BackupsEnabled())
		})
	}
}

func TestFromYAML(t *testing.T) {
	t.Parallel()

	t.Run("all keys", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.FromYAML([]byte(`
disable_cache: false
ignore_empty: false
check_expressions: false
gitignore: false
extensions: [".vue", ".nvue"]
ignore: ["dist/**"]
jobs: 4
format: json
backups:
  enabled: false
  mode: none
`))
		require.NoError(t, err)

		assert.False(t, cfg.CacheDisabled())
		assert.False(t, cfg.IgnoreEmptyBlocks())
		assert.False(t, cfg.ExpressionChecks())
		assert.False(t, cfg.UseGitignore())
		assert.Equal(t, []string{".vue", ".nvue"}, cfg.Extensions)
		assert.Equal(t, []string{"dist/**"}, cfg.Ignore)
		assert.Equal(t, 4, cfg.Jobs)
		assert.Equal(t, config.FormatJSON, cfg.Format)
		require.NotNil(t, cfg.Backups.Enabled)
		assert.False(t, *cfg.Backups.Enabled)
		assert.Equal(t, "none", cfg.Backups.Mode)
	})

	t.Run("unset keys stay nil", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.FromYAML([]byte("jobs: 2\n"))
		require.NoError(t, err)
		assert.Nil(t, cfg.DisableCache)
		assert.Nil(t, cfg.Backups.Enabled)
	})

	t.Run("empty document", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.FromYAML([]byte("  \n"))
		require.NoError(t, err)
		assert.Equal(t, &config.Config{}, cfg)
	})

	t.Run("unknown key", func(t *testing.T) {
		t.Parallel()

		_, err := config.FromYAML([]byte("flavor: gfm\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "flavor")
	})
}

func TestConfig_YAMLRoundTrip(t *testing.T) {
	t.Parallel()

	original := config.NewConfig()
	original.Ignore = []string{"dist/**"}
	original.Jobs = 3
	original.DryRun = true

	data, err := original.ToYAML()
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dry")

	parsed, err := config.FromYAML(data)
	require.NoError(t, err)

	original.DryRun = false
	assert.Equal(t, original, parsed)
}

func TestConfig_ToYAMLWithHeader(t *testing.T) {
	t.Parallel()

	data, err := config.NewConfig().ToYAMLWithHeader("# header")
	require.NoError(t, err)
	assert.Regexp(t, `^# header\n\ndisable_cache: true\n`, string(data))

	var nilCfg *config.Config
	data, err = nilCfg.ToYAML()
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestConfigClone(t *testing.T) {
	t.Parallel()

	var nilCfg *config.Config
	assert.Nil(t, nilCfg.Clone())

	original := config.NewConfig()
	original.Ignore = []string{"a/**"}
	original.NoBackups = true

	clone := original.Clone()
	require.NotNil(t, clone)
	assert.Equal(t, original, clone)

	*clone.DisableCache = false
	*clone.Backups.Enabled = false
	clone.Ignore[0] = "b/**"
	clone.Extensions = append(clone.Extensions, ".x")

	assert.True(t, original.CacheDisabled())
	assert.True(t, *original.Backups.Enabled)
	assert.Equal(t, []string{"a/**"}, original.Ignore)
	assert.Equal(t, []string{".vue"}, original.Extensions)
}
