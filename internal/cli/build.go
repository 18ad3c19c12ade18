package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/blocksel/internal/logging"
	"github.com/yaklabco/blocksel/internal/ui/pretty"
	"github.com/yaklabco/blocksel/pkg/blocktree/markdown"
	"github.com/yaklabco/blocksel/pkg/config"
	"github.com/yaklabco/blocksel/pkg/fsutil"
	"github.com/yaklabco/blocksel/pkg/runner"
)

// outputDirPermissions is the mode for directories created under --out-dir.
const outputDirPermissions = 0o755

type buildFlags struct {
	documentFlags
	dir     string
	outDir  string
	jobs    int
	exclude []string
}

func newBuildCommand() *cobra.Command {
	flags := &buildFlags{}

	cmd := &cobra.Command{
		Use:   "build [PATH...]",
		Short: "Render every Markdown file under the given paths",
		Long: `Find Markdown files under each PATH (default: the current directory) and
render each one to block-marked HTML in the output directory, keeping the
relative layout. Documents are rendered concurrently; files whose output is
already up to date are left untouched.

Examples:
  blocksel build
  blocksel build docs --out-dir public
  blocksel build --exclude "vendor" --exclude "**/CHANGELOG.md" .`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, args, flags)
		},
	}

	addDocumentFlags(cmd, &flags.documentFlags)
	cmd.Flags().StringVarP(&flags.dir, "dir", "C", "", "run as if started in this directory")
	cmd.Flags().StringVar(&flags.outDir, "out-dir", "site", "directory to write HTML files to")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "number of concurrent workers (0 = number of CPUs)")
	cmd.Flags().StringArrayVar(&flags.exclude, "exclude", nil, "glob of paths to skip, relative to the working directory")

	return cmd
}

func runBuild(cmd *cobra.Command, paths []string, flags *buildFlags) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)
	cfg := configFrom(cmd)

	importer, err := flags.importer(logger)
	if err != nil {
		return err
	}

	workDir, err := resolveDir(flags.dir)
	if err != nil {
		return err
	}
	outDir := flags.outDir
	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(workDir, outDir)
	}

	exclude := flags.exclude
	if rel, err := filepath.Rel(workDir, outDir); err == nil && !strings.HasPrefix(rel, "..") {
		exclude = append(exclude, filepath.ToSlash(rel))
	}

	r := runner.New(func(ctx context.Context, path string) runner.FileOutcome {
		return buildDocument(ctx, importer, cfg, logger, path, outputPath(workDir, outDir, path))
	})

	result, err := r.Run(ctx, runner.Options{
		Paths:        paths,
		WorkingDir:   workDir,
		ExcludeGlobs: exclude,
		Jobs:         flags.jobs,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	styles := pretty.NewStyles(pretty.IsColorEnabled(cfg.Output.Color, out))

	for _, failed := range result.Failed() {
		logger.Error("build failed", logging.FieldInput, failed.Path, logging.FieldError, failed.Error)
	}

	stats := result.Stats
	logger.Debug("build finished",
		logging.FieldFiles, stats.FilesDiscovered,
		logging.FieldBlocks, stats.Blocks,
		logging.FieldDuration, stats.Duration,
	)
	fmt.Fprint(out, styles.FormatBuildSummary(stats.FilesProcessed, stats.FilesWritten, stats.FilesFailed, stats.Blocks))

	if stats.FilesFailed > 0 {
		errs := make([]error, 0, stats.FilesFailed)
		for _, failed := range result.Failed() {
			errs = append(errs, failed.Error)
		}
		return fmt.Errorf("%d of %d documents failed: %w", stats.FilesFailed, stats.FilesProcessed, errors.Join(errs...))
	}
	return nil
}

// buildDocument imports, renders and writes one document.
func buildDocument(
	ctx context.Context,
	importer *markdown.Importer,
	cfg *config.Config,
	logger *log.Logger,
	path, target string,
) runner.FileOutcome {
	outcome := runner.FileOutcome{Output: target}

	content, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		outcome.Error = fmt.Errorf("read input: %w", err)
		return outcome
	}

	doc, err := importer.Import(ctx, content)
	if err != nil {
		outcome.Error = fmt.Errorf("import %s: %w", path, err)
		return outcome
	}

	surf, err := renderSurface(doc, cfg, logger)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Blocks = surf.Len()

	var buf bytes.Buffer
	if err := surf.WriteHTML(&buf); err != nil {
		outcome.Error = fmt.Errorf("write html: %w", err)
		return outcome
	}
	buf.WriteByte('\n')

	if err := os.MkdirAll(filepath.Dir(target), outputDirPermissions); err != nil {
		outcome.Error = fmt.Errorf("create output directory: %w", err)
		return outcome
	}

	outcome.Written, err = fsutil.WriteAtomicIfChanged(ctx, target, buf.Bytes(), outputFilePermissions)
	if err != nil {
		outcome.Error = fmt.Errorf("write output: %w", err)
		return outcome
	}

	logger.Debug("built document",
		logging.FieldInput, path,
		logging.FieldOutput, target,
		logging.FieldBlocks, outcome.Blocks,
	)
	return outcome
}

// resolveDir returns dir as an absolute path, or the working directory
// when dir is empty.
func resolveDir(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve directory: %w", err)
	}
	return abs, nil
}

// outputPath maps a source document to its HTML file under outDir. Sources
// outside workDir keep only their base name.
func outputPath(workDir, outDir, path string) string {
	rel, err := filepath.Rel(workDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = filepath.Base(path)
	}
	return filepath.Join(outDir, strings.TrimSuffix(rel, filepath.Ext(rel))+".html")
}
