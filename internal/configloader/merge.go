package configloader

import (
	"slices"

	"github.com/yaklabco/gosfc/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Optional booleans: override wins when set (non-nil)
//   - Scalars: override wins when non-zero
//   - Slices: override replaces base entirely when non-nil
//   - CLI-only switches: override wins when true
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override.Clone()
	}
	if override == nil {
		return base.Clone()
	}

	result := base.Clone()

	mergeBool(&result.DisableCache, override.DisableCache)
	mergeBool(&result.IgnoreEmpty, override.IgnoreEmpty)
	mergeBool(&result.CheckExpressions, override.CheckExpressions)
	mergeBool(&result.Gitignore, override.Gitignore)
	mergeBool(&result.Backups.Enabled, override.Backups.Enabled)

	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	if override.Extensions != nil {
		result.Extensions = slices.Clone(override.Extensions)
	}
	if override.Ignore != nil {
		result.Ignore = slices.Clone(override.Ignore)
	}

	if override.DryRun {
		result.DryRun = true
	}
	if override.NoBackups {
		result.NoBackups = true
	}

	return result
}

func mergeBool(dst **bool, src *bool) {
	if src != nil {
		*dst = config.Bool(*src)
	}
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
