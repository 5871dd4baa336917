package domain

// FileResult is the per-file outcome of one processing pass. Ordinary
// failures never surface as Go errors: they are folded into Err, and a
// rate-limited classifier call sets RateLimited so the orchestrator can
// defer the whole file.
type FileResult struct {
	FileName    string
	Added       int
	Updated     int
	Reviewed    int
	Err         string
	RateLimited bool
}

// OK reports whether the file was processed without a fatal error.
func (r FileResult) OK() bool {
	return r.Err == "" && !r.RateLimited
}

// BatchReport is the aggregate outcome of one ingestion batch, returned to
// the caller. Success is true only when no file ended in a hard error and
// no file remained rate-limited after the retry pass.
type BatchReport struct {
	Success          bool
	Message          string
	Added            int
	Updated          int
	Reviewed         int
	RateLimitSkipped int

	// Errors holds one message per file that ended in a hard error.
	Errors []string
	// RecoveredFiles lists files that succeeded only on the retry pass.
	RecoveredFiles []string
	// SkippedFiles lists files still rate-limited after the retry pass.
	SkippedFiles []string
}
