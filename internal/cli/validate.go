package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/google/uuid"

	"github.com/sdejongh/dupenorris/pkg/config"
	"github.com/sdejongh/dupenorris/pkg/models"
)

// validateRoots checks the source and target directory arguments
func validateRoots(source, target string) error {
	for _, root := range []string{source, target} {
		info, err := os.Stat(root)
		if os.IsNotExist(err) {
			return fmt.Errorf("directory does not exist: %s", root)
		}
		if err != nil {
			return fmt.Errorf("failed to access directory %s: %w", root, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("path is not a directory: %s", root)
		}
	}

	sourceAbs, err := filepath.Abs(source)
	if err != nil {
		return fmt.Errorf("failed to resolve source path: %w", err)
	}

	targetAbs, err := filepath.Abs(target)
	if err != nil {
		return fmt.Errorf("failed to resolve target path: %w", err)
	}

	if sourceAbs == targetAbs {
		return fmt.Errorf("source and target cannot be the same: %s", sourceAbs)
	}

	return nil
}

// loadConfig loads configuration from file or returns default
func loadConfig() (*config.Config, error) {
	if globalFlags.ConfigFile != "" {
		return config.LoadFromFile(globalFlags.ConfigFile)
	}
	return config.LoadDefault()
}

// applyFlagsToConfig overrides config values with command-line flags
func applyFlagsToConfig(cfg *config.Config) {
	if compareFlags.Parallel > 0 {
		cfg.Performance.MaxWorkers = compareFlags.Parallel
	}

	if compareFlags.DuplicatesFile != "" {
		cfg.Output.DuplicatesFile = compareFlags.DuplicatesFile
	}

	if compareFlags.UniquesFile != "" {
		cfg.Output.UniquesFile = compareFlags.UniquesFile
	}

	if compareFlags.NoProgress {
		cfg.Output.Progress = false
	}

	if compareFlags.NoColor {
		cfg.Output.Color = false
	}

	// Quiet mode suppresses progress bars too
	if globalFlags.Quiet {
		cfg.Output.Progress = false
		cfg.Output.Quiet = true
	}
}

// createCompareOperation creates a compare operation from configuration
// and the positional arguments. The action selector may be empty; the
// caller prompts for one in that case.
func createCompareOperation(cfg *config.Config, source, target, selector string) (*models.CompareOperation, error) {
	workers := cfg.Performance.MaxWorkers
	if workers == 0 {
		workers = runtime.NumCPU()
	}

	operation := &models.CompareOperation{
		ID:             uuid.New().String(),
		SourcePath:     source,
		TargetPath:     target,
		Actions:        models.ParseActions(selector),
		MaxWorkers:     workers,
		BufferSize:     cfg.Performance.BufferSize,
		DuplicatesFile: cfg.Output.DuplicatesFile,
		UniquesFile:    cfg.Output.UniquesFile,
		CreatedAt:      time.Now(),
	}

	if err := operation.Validate(); err != nil {
		return nil, err
	}

	return operation, nil
}
