// Package reconcile partitions a target tree's fingerprint index against a
// source tree's index. It is pure: no I/O, no failure mode.
package reconcile

import (
	"github.com/sdejongh/dupenorris/pkg/index"
)

// Result holds the classification of every path in the target index.
// BDuplicates and BUnique are disjoint and together cover every target
// path exactly once.
type Result struct {
	// BDuplicates are target paths whose fingerprint exists in the source
	// index, in collection order
	BDuplicates []string

	// BUnique are target paths whose fingerprint is absent from the source
	// index, in collection order
	BUnique []string

	// AOnly groups source paths by fingerprints absent from the target
	// index. Informational only.
	AOnly map[index.Fingerprint][]string

	// BOnly groups the unique target paths by fingerprint.
	// Informational only; flattening its values yields BUnique.
	BOnly map[index.Fingerprint][]string
}

// Reconcile classifies every path in the target index b against the source
// index a. A fingerprint present in both trees contributes all of b's paths
// under it to BDuplicates, regardless of how many paths a holds under the
// same fingerprint: only presence matters, not multiplicity.
func Reconcile(a, b *index.Index) *Result {
	result := &Result{
		AOnly: make(map[index.Fingerprint][]string),
		BOnly: make(map[index.Fingerprint][]string),
	}

	for _, fp := range a.Fingerprints() {
		if b.Contains(fp) {
			result.BDuplicates = append(result.BDuplicates, b.Paths(fp)...)
		} else {
			result.AOnly[fp] = a.Paths(fp)
		}
	}

	for _, fp := range b.Fingerprints() {
		if !a.Contains(fp) {
			result.BOnly[fp] = b.Paths(fp)
			result.BUnique = append(result.BUnique, b.Paths(fp)...)
		}
	}

	return result
}
