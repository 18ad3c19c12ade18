// Package runner renders many Markdown documents concurrently.
package runner

// Options controls discovery and concurrency for a run.
type Options struct {
	// Paths are the files or directories to process. Empty means the
	// working directory.
	Paths []string

	// WorkingDir resolves relative Paths and anchors exclude patterns.
	// Empty means the process working directory.
	WorkingDir string

	// Extensions are the lowercase file extensions, with leading dot,
	// treated as Markdown. Empty means DefaultExtensions.
	Extensions []string

	// ExcludeGlobs skip files and directories whose slash-separated path
	// relative to WorkingDir matches. "**" crosses directories.
	ExcludeGlobs []string

	// Jobs caps the number of concurrent workers. 0 or negative means
	// runtime.NumCPU.
	Jobs int
}

// DefaultExtensions returns the default set of Markdown file extensions.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
