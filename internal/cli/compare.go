package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sdejongh/dupenorris/pkg/actions"
	"github.com/sdejongh/dupenorris/pkg/index"
	"github.com/sdejongh/dupenorris/pkg/logging"
	"github.com/sdejongh/dupenorris/pkg/models"
	"github.com/sdejongh/dupenorris/pkg/output"
	"github.com/sdejongh/dupenorris/pkg/prompt"
	"github.com/sdejongh/dupenorris/pkg/reconcile"
)

// CompareFlags holds compare command flags
type CompareFlags struct {
	Parallel       int
	DuplicatesFile string
	UniquesFile    string
	NoProgress     bool
	NoColor        bool
	// Logging flags
	LogFile   string
	LogFormat string
	LogLevel  string
}

var compareFlags CompareFlags

// NewCompareCommand creates the compare command
func NewCompareCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <source> <target> [actions]",
		Short: "Compare two directory trees by content",
		Long: `Compare two directory trees by file content and classify every file in
the target tree as a duplicate of the source tree or unique to the target.

The optional actions argument combines 'y' (delete duplicates from the
target tree), 'o' (write the duplicate list) and 'u' (write the unique
list) in any order. Without it, the actions are prompted for.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: runCompare,
	}

	cmd.Flags().IntVarP(&compareFlags.Parallel, "parallel", "p", 0, "number of parallel hashing workers (default: one per CPU)")
	cmd.Flags().StringVar(&compareFlags.DuplicatesFile, "duplicates-file", "", "destination for the duplicate path list (default: BSame_files.txt)")
	cmd.Flags().StringVar(&compareFlags.UniquesFile, "uniques-file", "", "destination for the unique path list (default: BUnique_files.txt)")
	cmd.Flags().BoolVar(&compareFlags.NoProgress, "no-progress", false, "disable progress bars")
	cmd.Flags().BoolVar(&compareFlags.NoColor, "no-color", false, "disable colored output")

	// Logging flags
	cmd.Flags().StringVar(&compareFlags.LogFile, "log-file", "", "write logs to file (enables logging)")
	cmd.Flags().StringVar(&compareFlags.LogFormat, "log-format", "text", "log format: text, json")
	cmd.Flags().StringVar(&compareFlags.LogLevel, "log-level", "info", "log level: debug, info, warn, error")

	return cmd
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	source, target := args[0], args[1]
	selector := ""
	promptForActions := true
	if len(args) == 3 {
		selector = args[2]
		promptForActions = false
	}

	// Validate roots before any core work
	if err := validateRoots(source, target); err != nil {
		return err
	}

	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Override config with command-line flags
	applyFlagsToConfig(cfg)

	// Color and progress bars only make sense on a terminal
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	if !isTTY {
		cfg.Output.Progress = false
	}
	if !cfg.Output.Color || !isTTY {
		color.NoColor = true
	}

	// Create compare operation
	operation, err := createCompareOperation(cfg, source, target, selector)
	if err != nil {
		return fmt.Errorf("failed to create compare operation: %w", err)
	}

	// Create logger
	logger, err := createLogger(compareFlags.LogFile, compareFlags.LogFormat, compareFlags.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	logger = logger.WithFields(logging.Fields{"operation_id": operation.ID})

	console := output.NewConsole(os.Stdout, os.Stderr, cfg.Output.Quiet)

	report := &models.CompareReport{
		OperationID: operation.ID,
		SourcePath:  source,
		TargetPath:  target,
		StartTime:   time.Now(),
		Status:      models.StatusSuccess,
	}

	// Build both fingerprint indices
	builder := index.NewBuilder(operation.MaxWorkers, operation.BufferSize, logger)
	if cfg.Output.Progress {
		builder.SetObserver(output.NewBarObserver(os.Stdout))
	}

	sourceIndex, err := builder.Build(ctx, source)
	if err != nil {
		return fmt.Errorf("failed to index source tree: %w", err)
	}
	console.TreeIndexed(source, sourceIndex.Files(), len(sourceIndex.Failures))
	recordIndexStats(report, sourceIndex, true)

	targetIndex, err := builder.Build(ctx, target)
	if err != nil {
		return fmt.Errorf("failed to index target tree: %w", err)
	}
	console.TreeIndexed(target, targetIndex.Files(), len(targetIndex.Failures))
	recordIndexStats(report, targetIndex, false)

	// Reconcile the indices
	result := reconcile.Reconcile(sourceIndex, targetIndex)
	report.Stats.DuplicatesFound = len(result.BDuplicates)
	report.Stats.UniquesFound = len(result.BUnique)

	logger.Info(ctx, "reconciliation complete", logging.Fields{
		"duplicates": len(result.BDuplicates),
		"uniques":    len(result.BUnique),
	})

	// Console report: source-only and target-only fingerprints, then counts
	for _, fp := range sortedFingerprints(result.AOnly) {
		console.SourceOnlyGroup(fp, result.AOnly[fp])
	}
	for _, fp := range sortedFingerprints(result.BOnly) {
		console.TargetOnlyGroup(fp, result.BOnly[fp])
	}
	console.Summary(len(result.BDuplicates), len(result.BUnique))

	// Resolve actions, prompting if none were given on the command line
	if promptForActions {
		input := prompt.NewStdinSource(os.Stdin, os.Stdout)
		answer, err := input.Actions(target)
		if err != nil {
			return err
		}
		operation.Actions = models.ParseActions(answer)
	}

	runActions(ctx, operation, result, report, console, logger)

	// Finalize report
	report.EndTime = time.Now()
	report.Duration = report.EndTime.Sub(report.StartTime)
	console.Report(report)

	logger.Info(ctx, "run finished", logging.Fields{
		"status":   string(report.Status),
		"duration": report.Duration.String(),
		"errors":   len(report.Errors),
	})

	// Exit with appropriate code; os.Exit skips deferred calls, so close
	// the logger first
	logger.Close()
	os.Exit(report.Status.ExitCode())
	return nil
}

// runActions executes the requested post-comparison actions.
// A failed list write aborts that action only; the remaining actions still
// run, and the failure is reflected in the report status.
func runActions(ctx context.Context, operation *models.CompareOperation, result *reconcile.Result, report *models.CompareReport, console *output.Console, logger logging.Logger) {
	if operation.Actions.DeleteDuplicates {
		deleted, failed := actions.DeleteFiles(ctx, result.BDuplicates, logger, func(outcome actions.DeleteOutcome) {
			if outcome.Err != nil {
				console.DeleteFailed(outcome.Path, outcome.Err)
				report.Errors = append(report.Errors, models.CompareError{
					FilePath:  outcome.Path,
					Stage:     "delete",
					Error:     outcome.Err.Error(),
					Timestamp: time.Now(),
				})
			} else {
				console.Deleted(outcome.Path)
			}
		})
		report.Stats.FilesDeleted = deleted
		report.Stats.DeletesFailed = failed
		console.DeletionDone(deleted, failed)
	}

	if operation.Actions.WriteDuplicates {
		if err := actions.WriteList(operation.DuplicatesFile, result.BDuplicates); err != nil {
			console.Errorf("failed to write duplicate list: %v", err)
			report.Errors = append(report.Errors, models.CompareError{
				FilePath:  operation.DuplicatesFile,
				Stage:     "output",
				Error:     err.Error(),
				Timestamp: time.Now(),
			})
			report.Status = models.StatusFailed
		} else {
			console.ListWritten("duplicate", operation.DuplicatesFile, len(result.BDuplicates))
		}
	}

	if operation.Actions.WriteUniques {
		if err := actions.WriteList(operation.UniquesFile, result.BUnique); err != nil {
			console.Errorf("failed to write unique list: %v", err)
			report.Errors = append(report.Errors, models.CompareError{
				FilePath:  operation.UniquesFile,
				Stage:     "output",
				Error:     err.Error(),
				Timestamp: time.Now(),
			})
			report.Status = models.StatusFailed
		} else {
			console.ListWritten("unique", operation.UniquesFile, len(result.BUnique))
		}
	}
}

// recordIndexStats copies one index's counters into the report
func recordIndexStats(report *models.CompareReport, ix *index.Index, isSource bool) {
	if isSource {
		report.Stats.SourceFilesIndexed = ix.Files()
		report.Stats.SourceFilesFailed = len(ix.Failures)
	} else {
		report.Stats.TargetFilesIndexed = ix.Files()
		report.Stats.TargetFilesFailed = len(ix.Failures)
	}
	report.Stats.BytesHashed += ix.Bytes()

	for _, failure := range ix.Failures {
		report.Errors = append(report.Errors, models.CompareError{
			FilePath:  failure.Path,
			Stage:     "index",
			Error:     failure.Err.Error(),
			Timestamp: time.Now(),
		})
	}
}

// sortedFingerprints returns map keys in lexical order for stable display
func sortedFingerprints(groups map[index.Fingerprint][]string) []index.Fingerprint {
	fps := make([]index.Fingerprint, 0, len(groups))
	for fp := range groups {
		fps = append(fps, fp)
	}
	sort.Slice(fps, func(i, j int) bool { return fps[i] < fps[j] })
	return fps
}

// createLogger creates a logger based on configuration
func createLogger(logFile, logFormat, logLevel string) (logging.Logger, error) {
	// If no log file specified, return null logger
	if logFile == "" {
		return logging.NewNullLogger(), nil
	}

	var format logging.Format
	switch logFormat {
	case "json":
		format = logging.FormatJSON
	default:
		format = logging.FormatText
	}

	config := logging.FileLoggerConfig{
		Path:   logFile,
		Format: format,
		Level:  logging.ParseLevel(logLevel),
	}

	return logging.NewFileLogger(config)
}
