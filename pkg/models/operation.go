package models

import (
	"strings"
	"time"
)

// Actions represents the set of post-comparison actions requested by the user
type Actions struct {
	// DeleteDuplicates removes every duplicate file from the target tree
	DeleteDuplicates bool

	// WriteDuplicates writes the duplicate path list to a file
	WriteDuplicates bool

	// WriteUniques writes the unique path list to a file
	WriteUniques bool
}

// ParseActions parses an action selector string.
// The selector may combine 'y' (delete duplicates), 'o' (write duplicates
// list) and 'u' (write uniques list) in any order; all matching actions are
// executed. Unknown characters are ignored.
func ParseActions(s string) Actions {
	s = strings.ToLower(strings.TrimSpace(s))
	return Actions{
		DeleteDuplicates: strings.ContainsRune(s, 'y'),
		WriteDuplicates:  strings.ContainsRune(s, 'o'),
		WriteUniques:     strings.ContainsRune(s, 'u'),
	}
}

// None reports whether no action was selected
func (a Actions) None() bool {
	return !a.DeleteDuplicates && !a.WriteDuplicates && !a.WriteUniques
}

// CompareOperation represents a comparison run configuration
type CompareOperation struct {
	ID             string
	SourcePath     string // tree A, the reference tree
	TargetPath     string // tree B, the tree being classified
	Actions        Actions
	MaxWorkers     int
	BufferSize     int
	DuplicatesFile string // destination for the duplicate path list
	UniquesFile    string // destination for the unique path list
	CreatedAt      time.Time
	StartedAt      *time.Time
	CompletedAt    *time.Time
}

// Validate checks if the operation configuration is valid
func (op *CompareOperation) Validate() error {
	if op.SourcePath == "" {
		return &ValidationError{Field: "SourcePath", Message: "source path is required"}
	}
	if op.TargetPath == "" {
		return &ValidationError{Field: "TargetPath", Message: "target path is required"}
	}
	if op.MaxWorkers < 1 {
		return &ValidationError{Field: "MaxWorkers", Message: "max workers must be at least 1"}
	}
	if op.BufferSize < 1024 {
		return &ValidationError{Field: "BufferSize", Message: "buffer size must be at least 1024 bytes"}
	}
	if op.Actions.WriteDuplicates && op.DuplicatesFile == "" {
		return &ValidationError{Field: "DuplicatesFile", Message: "duplicates list file is required for the 'o' action"}
	}
	if op.Actions.WriteUniques && op.UniquesFile == "" {
		return &ValidationError{Field: "UniquesFile", Message: "uniques list file is required for the 'u' action"}
	}
	return nil
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
