// Package output renders the human-facing side of a comparison run:
// progress bars while indexing and the colored console report afterwards.
// Nothing here is authoritative; the report data lives in pkg/models.
package output

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/sdejongh/dupenorris/pkg/index"
	"github.com/sdejongh/dupenorris/pkg/models"
)

// Console prints the comparison report to the terminal.
// Color is controlled globally through color.NoColor, set by the CLI.
type Console struct {
	out   io.Writer
	err   io.Writer
	quiet bool

	red   *color.Color
	green *color.Color
	blue  *color.Color
	cyan  *color.Color
}

// NewConsole creates a console reporter.
// In quiet mode only errors are printed.
func NewConsole(out, err io.Writer, quiet bool) *Console {
	if out == nil {
		out = os.Stdout
	}
	if err == nil {
		err = os.Stderr
	}
	return &Console{
		out:   out,
		err:   err,
		quiet: quiet,
		red:   color.New(color.FgRed),
		green: color.New(color.FgGreen),
		blue:  color.New(color.FgBlue),
		cyan:  color.New(color.FgCyan),
	}
}

// TreeIndexed confirms completion of one indexing pass
func (c *Console) TreeIndexed(root string, files, failed int) {
	if c.quiet {
		return
	}
	c.green.Fprintf(c.out, "%s indexed: %d files\n", root, files)
	if failed > 0 {
		c.red.Fprintf(c.out, "  %d files could not be read and were excluded\n", failed)
	}
}

// SourceOnlyGroup reports a fingerprint present only in the source tree
func (c *Console) SourceOnlyGroup(fp index.Fingerprint, paths []string) {
	if c.quiet {
		return
	}
	c.red.Fprintf(c.out, "only in source (fingerprint %s)\n", fp)
	for _, p := range paths {
		fmt.Fprintf(c.out, "  %s\n", p)
	}
}

// TargetOnlyGroup reports a fingerprint present only in the target tree
func (c *Console) TargetOnlyGroup(fp index.Fingerprint, paths []string) {
	if c.quiet {
		return
	}
	c.blue.Fprintf(c.out, "only in target (fingerprint %s)\n", fp)
	for _, p := range paths {
		fmt.Fprintf(c.out, "  %s\n", p)
	}
}

// Summary prints the duplicate/unique counts
func (c *Console) Summary(duplicates, uniques int) {
	if c.quiet {
		return
	}
	c.cyan.Fprintf(c.out, "%d duplicate files found\n", duplicates)
	c.cyan.Fprintf(c.out, "%d files unique to the target tree\n", uniques)
}

// Deleted reports a successful deletion
func (c *Console) Deleted(path string) {
	if c.quiet {
		return
	}
	c.green.Fprintf(c.out, "deleted %s\n", path)
}

// DeleteFailed reports a failed deletion
func (c *Console) DeleteFailed(path string, err error) {
	c.red.Fprintf(c.err, "failed to delete %s: %v\n", path, err)
}

// DeletionDone reports completion of the deletion loop
func (c *Console) DeletionDone(deleted, failed int) {
	if c.quiet {
		return
	}
	c.green.Fprintf(c.out, "deletion complete: %d deleted, %d failed\n", deleted, failed)
}

// ListWritten confirms a path list was written
func (c *Console) ListWritten(kind, dest string, count int) {
	if c.quiet {
		return
	}
	c.green.Fprintf(c.out, "%s list written to %s (%d paths)\n", kind, dest, count)
}

// Errorf prints an error line to the error stream
func (c *Console) Errorf(format string, args ...interface{}) {
	c.red.Fprintf(c.err, format+"\n", args...)
}

// Report prints the final run summary
func (c *Console) Report(report *models.CompareReport) {
	if c.quiet {
		return
	}
	fmt.Fprintf(c.out, "\nCompleted in %s (%s hashed)\n",
		report.Duration.Round(time.Millisecond),
		formatBytes(report.Stats.BytesHashed))
	if len(report.Errors) > 0 {
		fmt.Fprintf(c.out, "%d isolated failures (see messages above)\n", len(report.Errors))
	}
}

// formatBytes formats bytes in human-readable format
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
