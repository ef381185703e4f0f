package reconcile

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/sdejongh/dupenorris/pkg/index"
)

// buildTree creates a temp directory with the given name→content files and
// returns its index
func buildTree(t *testing.T, files map[string]string) *index.Index {
	t.Helper()

	root, err := os.MkdirTemp("", "dupenorris-reconcile-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(root) })

	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("failed to create parent dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to create file: %v", err)
		}
	}

	builder := index.NewBuilder(2, 4096, nil)
	ix, err := builder.Build(context.Background(), root)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return ix
}

func baseNames(paths []string) []string {
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}
	sort.Strings(names)
	return names
}

func equalNames(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestReconcileDuplicateAndUnique(t *testing.T) {
	a := buildTree(t, map[string]string{"a.txt": "hello"})
	b := buildTree(t, map[string]string{
		"b.txt": "hello",
		"c.txt": "world",
	})

	result := Reconcile(a, b)

	if got := baseNames(result.BDuplicates); !equalNames(got, []string{"b.txt"}) {
		t.Errorf("BDuplicates = %v, want [b.txt]", got)
	}
	if got := baseNames(result.BUnique); !equalNames(got, []string{"c.txt"}) {
		t.Errorf("BUnique = %v, want [c.txt]", got)
	}
}

func TestReconcileEmptyTrees(t *testing.T) {
	a := buildTree(t, nil)
	b := buildTree(t, nil)

	result := Reconcile(a, b)

	if len(result.BDuplicates) != 0 {
		t.Errorf("BDuplicates = %v, want empty", result.BDuplicates)
	}
	if len(result.BUnique) != 0 {
		t.Errorf("BUnique = %v, want empty", result.BUnique)
	}
	if len(result.AOnly) != 0 || len(result.BOnly) != 0 {
		t.Errorf("expected no informational groups, got AOnly=%d BOnly=%d", len(result.AOnly), len(result.BOnly))
	}
}

func TestReconcileManyToMany(t *testing.T) {
	a := buildTree(t, map[string]string{"x.txt": "dup"})
	b := buildTree(t, map[string]string{
		"y1.txt": "dup",
		"y2.txt": "dup",
	})

	result := Reconcile(a, b)

	// Both target copies are duplicates, regardless of how many paths the
	// source holds under the fingerprint
	if got := baseNames(result.BDuplicates); !equalNames(got, []string{"y1.txt", "y2.txt"}) {
		t.Errorf("BDuplicates = %v, want [y1.txt y2.txt]", got)
	}
	if len(result.BUnique) != 0 {
		t.Errorf("BUnique = %v, want empty", result.BUnique)
	}
}

func TestReconcileSourceOnlyGroups(t *testing.T) {
	a := buildTree(t, map[string]string{
		"only-a.txt":   "source only",
		"also-a.txt":   "source only",
		"shared-a.txt": "shared",
	})
	b := buildTree(t, map[string]string{"shared-b.txt": "shared"})

	result := Reconcile(a, b)

	// One fingerprint is absent from the target, with both source paths
	// under it; multiplicity does not split the group
	if len(result.AOnly) != 1 {
		t.Fatalf("expected 1 source-only fingerprint, got %d", len(result.AOnly))
	}
	for _, paths := range result.AOnly {
		if got := baseNames(paths); !equalNames(got, []string{"also-a.txt", "only-a.txt"}) {
			t.Errorf("AOnly paths = %v", got)
		}
	}
}

func TestReconcilePartitionInvariant(t *testing.T) {
	a := buildTree(t, map[string]string{
		"a1.txt":     "alpha",
		"a2.txt":     "beta",
		"sub/a3.txt": "gamma",
	})
	b := buildTree(t, map[string]string{
		"b1.txt":     "alpha", // duplicate
		"b2.txt":     "gamma", // duplicate
		"b3.txt":     "delta", // unique
		"sub/b4.txt": "delta", // unique, internal duplicate of b3
		"b5.txt":     "epsilon",
	})

	result := Reconcile(a, b)

	seen := make(map[string]int)
	for _, p := range result.BDuplicates {
		seen[p]++
	}
	for _, p := range result.BUnique {
		seen[p]++
	}

	if len(seen) != b.Files() {
		t.Errorf("partition covers %d paths, want %d", len(seen), b.Files())
	}
	for p, n := range seen {
		if n != 1 {
			t.Errorf("path %s classified %d times, want exactly once", p, n)
		}
	}

	if len(result.BDuplicates) != 2 {
		t.Errorf("expected 2 duplicates, got %d", len(result.BDuplicates))
	}
	if len(result.BUnique) != 3 {
		t.Errorf("expected 3 uniques, got %d", len(result.BUnique))
	}
}

func TestReconcileBOnlyMirrorsBUnique(t *testing.T) {
	a := buildTree(t, map[string]string{"a.txt": "kept"})
	b := buildTree(t, map[string]string{
		"u1.txt": "unique one",
		"u2.txt": "unique two",
		"d.txt":  "kept",
	})

	result := Reconcile(a, b)

	var flattened []string
	for _, paths := range result.BOnly {
		flattened = append(flattened, paths...)
	}
	sort.Strings(flattened)

	unique := append([]string(nil), result.BUnique...)
	sort.Strings(unique)

	if !equalNames(flattened, unique) {
		t.Errorf("BOnly flattened = %v, BUnique = %v", flattened, unique)
	}
}
