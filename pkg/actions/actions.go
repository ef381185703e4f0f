// Package actions executes the post-comparison actions: deleting duplicate
// files from the target tree and writing path lists to text files.
package actions

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/sdejongh/dupenorris/pkg/logging"
)

// DeleteOutcome records the result of one deletion attempt
type DeleteOutcome struct {
	Path string
	Err  error
}

// DeleteFiles removes the given files from the filesystem.
// Individual failures never abort the loop: each outcome is passed to
// onResult (if set) and counted. Returns the number of deleted and failed
// files.
func DeleteFiles(ctx context.Context, paths []string, logger logging.Logger, onResult func(DeleteOutcome)) (deleted, failed int) {
	if logger == nil {
		logger = logging.NewNullLogger()
	}

	for _, path := range paths {
		err := os.Remove(path)
		if err != nil {
			failed++
			logger.Warn(ctx, "failed to delete duplicate", logging.Fields{
				"path":  path,
				"error": err.Error(),
			})
		} else {
			deleted++
			logger.Debug(ctx, "duplicate deleted", logging.Fields{"path": path})
		}

		if onResult != nil {
			onResult(DeleteOutcome{Path: path, Err: err})
		}
	}

	return deleted, failed
}

// WriteList writes the given paths to dest, one per line, in the order
// they were collected. Any creation or write failure is returned and
// aborts this list only; other actions are unaffected.
func WriteList(dest string, paths []string) error {
	file, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create list file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	for _, path := range paths {
		if _, err := fmt.Fprintln(w, path); err != nil {
			return fmt.Errorf("failed to write list file: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write list file: %w", err)
	}

	return nil
}
