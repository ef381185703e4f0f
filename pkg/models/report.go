package models

import (
	"time"
)

// CompareReport represents the results of a comparison run
type CompareReport struct {
	// Operation details
	OperationID string
	SourcePath  string
	TargetPath  string

	// Timing
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	// Statistics
	Stats Statistics

	// Errors encountered (isolated per-file failures)
	Errors []CompareError

	// Overall status
	Status Status
}

// Statistics holds comparison metrics
type Statistics struct {
	// Indexing
	SourceFilesIndexed int
	SourceFilesFailed  int
	TargetFilesIndexed int
	TargetFilesFailed  int
	BytesHashed        int64

	// Reconciliation
	DuplicatesFound int // target files whose content exists in source
	UniquesFound    int // target files whose content is absent from source

	// Actions
	FilesDeleted  int
	DeletesFailed int
}

// Status represents the overall result
type Status string

const (
	// StatusSuccess indicates the run completed; isolated per-file
	// failures do not change the status
	StatusSuccess Status = "success"
	// StatusFailed indicates a fatal error aborted the run
	StatusFailed Status = "failed"
)

// CompareError represents an isolated failure during a run
type CompareError struct {
	FilePath  string
	Stage     string // "index", "delete", "output"
	Error     string
	Timestamp time.Time
}

// ExitCode returns the appropriate process exit code for the status
func (s Status) ExitCode() int {
	switch s {
	case StatusSuccess:
		return 0
	case StatusFailed:
		return 2
	default:
		return 2
	}
}
