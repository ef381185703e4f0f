package index

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/sdejongh/dupenorris/pkg/logging"
)

// PathError indicates a root directory that cannot be indexed at all.
// It is fatal to the indexing pass, unlike per-file read failures.
type PathError struct {
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("path not readable: %s: %v", e.Path, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// Failure records an isolated per-file failure during indexing.
// The file is excluded from the index; the pass continues.
type Failure struct {
	Path string
	Err  error
}

// Index maps each observed fingerprint to the file paths under one root
// that produced it. Read-only after Build returns.
type Index struct {
	// Root is the directory this index was built from
	Root string

	// Failures lists files that could not be read and were excluded
	Failures []Failure

	entries map[Fingerprint][]string
	files   int
	bytes   int64
}

// Contains reports whether the fingerprint exists in the index
func (ix *Index) Contains(fp Fingerprint) bool {
	_, ok := ix.entries[fp]
	return ok
}

// Paths returns all paths sharing the given fingerprint, in insertion order
func (ix *Index) Paths(fp Fingerprint) []string {
	return ix.entries[fp]
}

// Fingerprints returns all fingerprints in the index (unordered)
func (ix *Index) Fingerprints() []Fingerprint {
	fps := make([]Fingerprint, 0, len(ix.entries))
	for fp := range ix.entries {
		fps = append(fps, fp)
	}
	return fps
}

// Files returns the number of files indexed
func (ix *Index) Files() int {
	return ix.files
}

// Bytes returns the total number of bytes hashed
func (ix *Index) Bytes() int64 {
	return ix.bytes
}

// Observer receives progress notifications while an index builds.
// Calls may come from multiple goroutines; FileDone is invoked once per
// discovered file, whether it was indexed or failed.
type Observer interface {
	BuildStarted(root string, totalFiles int)
	FileDone(path string)
	BuildFinished(root string)
}

// Builder builds fingerprint indices with a bounded worker pool
type Builder struct {
	maxWorkers int
	hasher     *hasher
	logger     logging.Logger
	observer   Observer
}

// NewBuilder creates a new index builder.
// maxWorkers bounds concurrent hashing; bufferSize is the per-worker read
// buffer size.
func NewBuilder(maxWorkers, bufferSize int, logger logging.Logger) *Builder {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Builder{
		maxWorkers: maxWorkers,
		hasher:     newHasher(bufferSize),
		logger:     logger,
	}
}

// SetObserver sets the progress observer
func (b *Builder) SetObserver(observer Observer) {
	b.observer = observer
}

// Build indexes every regular file under root.
// Symbolic links, directories and other special entries are skipped
// silently. A file that cannot be read is recorded as a Failure and
// excluded; it never aborts the pass. Only an untraversable root returns
// an error (*PathError).
func (b *Builder) Build(ctx context.Context, root string) (*Index, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, &PathError{Path: root, Err: err}
	}
	if !info.IsDir() {
		return nil, &PathError{Path: root, Err: fmt.Errorf("not a directory")}
	}

	paths, failures, err := b.discover(root)
	if err != nil {
		return nil, err
	}

	ix := &Index{
		Root:     root,
		Failures: failures,
		entries:  make(map[Fingerprint][]string),
	}

	if b.observer != nil {
		b.observer.BuildStarted(root, len(paths))
	}

	b.logger.Info(ctx, "indexing started", logging.Fields{
		"root":    root,
		"files":   len(paths),
		"workers": b.maxWorkers,
	})

	var wg sync.WaitGroup
	var mu sync.Mutex
	semaphore := make(chan struct{}, b.maxWorkers)

	for _, path := range paths {
		semaphore <- struct{}{}
		wg.Add(1)

		go func(path string) {
			defer wg.Done()
			defer func() { <-semaphore }()

			fp, n, err := b.hasher.fingerprint(ctx, path)

			mu.Lock()
			if err != nil {
				ix.Failures = append(ix.Failures, Failure{Path: path, Err: err})
			} else {
				ix.entries[fp] = append(ix.entries[fp], path)
				ix.files++
				ix.bytes += n
			}
			mu.Unlock()

			if err != nil {
				b.logger.Warn(ctx, "file excluded from index", logging.Fields{
					"path":  path,
					"error": err.Error(),
				})
			}

			if b.observer != nil {
				b.observer.FileDone(path)
			}
		}(path)
	}

	wg.Wait()

	if b.observer != nil {
		b.observer.BuildFinished(root)
	}

	b.logger.Info(ctx, "indexing finished", logging.Fields{
		"root":         root,
		"indexed":      ix.files,
		"failed":       len(ix.Failures),
		"fingerprints": len(ix.entries),
		"bytes":        ix.bytes,
	})

	return ix, nil
}

// discover walks root and collects every regular file path.
// Unreadable entries below the root are isolated as failures; an error on
// the root itself is fatal.
func (b *Builder) discover(root string) ([]string, []Failure, error) {
	var paths []string
	var failures []Failure

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == root {
				return &PathError{Path: root, Err: err}
			}
			failures = append(failures, Failure{Path: p, Err: err})
			return nil
		}

		if d.Type().IsRegular() {
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return paths, failures, nil
}
