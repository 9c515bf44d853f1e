package runner

import (
	"github.com/yaklabco/gosfc/pkg/loader"
	"github.com/yaklabco/gosfc/pkg/sfc"
)

// FileOutcome is the result of loading one discovered file.
type FileOutcome struct {
	// Path is the absolute file path.
	Path string

	// Result is nil when Error is set.
	Result *loader.Result

	// Error is set if the file could not be read.
	Error error
}

// Diagnostics returns the file's parse diagnostics, if any.
func (o FileOutcome) Diagnostics() []sfc.Diagnostic {
	if o.Result == nil {
		return nil
	}
	return o.Result.Errors
}

// Stats captures aggregate information about a run.
type Stats struct {
	FilesDiscovered int `json:"filesDiscovered"`
	FilesProcessed  int `json:"filesProcessed"`
	FilesErrored    int `json:"filesErrored"`
	FilesWithIssues int `json:"filesWithIssues"`
	FilesCached     int `json:"filesCached"`

	DiagnosticsTotal  int              `json:"diagnosticsTotal"`
	DiagnosticsByCode map[sfc.Code]int `json:"diagnosticsByCode"`
}

// Result is the overall runner result.
type Result struct {
	// Files are ordered by path.
	Files []FileOutcome

	Stats Stats
}

// HasIssues reports whether any file produced diagnostics.
func (r *Result) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsTotal > 0
}

// HasErrors reports whether any file could not be read.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

func newStats() Stats {
	return Stats{DiagnosticsByCode: make(map[sfc.Code]int)}
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	if outcome.Result == nil {
		return
	}

	r.Stats.FilesProcessed++
	if outcome.Result.Cached {
		r.Stats.FilesCached++
	}

	diags := outcome.Result.Errors
	if len(diags) > 0 {
		r.Stats.FilesWithIssues++
	}
	r.Stats.DiagnosticsTotal += len(diags)
	for _, d := range diags {
		r.Stats.DiagnosticsByCode[d.Code]++
	}
}
