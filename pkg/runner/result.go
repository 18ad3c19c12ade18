package runner

import "time"

// FileOutcome is the result of processing one document.
type FileOutcome struct {
	Path string

	// Blocks is the block count the task reported.
	Blocks int

	// Output is where the task wrote its result, if anywhere.
	Output string

	// Written is false when the output already held identical content.
	Written bool

	Error error
}

// Stats aggregates a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesWritten    int
	FilesFailed     int
	Blocks          int
	Duration        time.Duration
}

// Result holds every outcome of a run in discovery order.
type Result struct {
	Files []FileOutcome
	Stats Stats
}

// Failed returns the outcomes that ended in an error.
func (r *Result) Failed() []FileOutcome {
	var failed []FileOutcome
	for _, outcome := range r.Files {
		if outcome.Error != nil {
			failed = append(failed, outcome)
		}
	}
	return failed
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)
	r.Stats.FilesProcessed++
	if outcome.Error != nil {
		r.Stats.FilesFailed++
		return
	}
	r.Stats.Blocks += outcome.Blocks
	if outcome.Written {
		r.Stats.FilesWritten++
	}
}
