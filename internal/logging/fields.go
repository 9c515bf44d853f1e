package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Block fields.
	FieldBlock    = "block"
	FieldBlocks   = "blocks"
	FieldLang     = "lang"
	FieldSelector = "selector"
	FieldChanged  = "changed"
	FieldBackup   = "backup"

	// Options fields.
	FieldDisableCache = "disable_cache"
	FieldDryRun       = "dry_run"
	FieldJobs         = "jobs"
	FieldFormat       = "format"

	// Statistics fields.
	FieldFilesDiscovered  = "files_discovered"
	FieldFilesProcessed   = "files_processed"
	FieldFilesWithIssues  = "files_with_issues"
	FieldDiagnosticsTotal = "diagnostics_total"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
