// SPDX-License-Identifier: MIT

package merge

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/katalvlaran/collabgraph/aggregate"
)

// Default multipliers of the integrated graph.
const (
	DefaultCommentWeight     int64 = 2
	DefaultIssueOpenedWeight int64 = 3
	DefaultReviewWeight      int64 = 4
	DefaultMergeWeight       int64 = 5
)

// RequiredKinds must have a multiplier before an integrated graph can be built.
// Closures are optional: without a multiplier they do not contribute.
var RequiredKinds = []aggregate.Kind{
	aggregate.KindComment,
	aggregate.KindIssueOpened,
	aggregate.KindReview,
	aggregate.KindMerge,
}

// WeightTable maps an interaction kind to its integer multiplier.
type WeightTable map[aggregate.Kind]int64

// DefaultWeights returns comment=2, issue_opened=3, review=4, merge=5.
func DefaultWeights() WeightTable {
	return WeightTable{
		aggregate.KindComment:     DefaultCommentWeight,
		aggregate.KindIssueOpened: DefaultIssueOpenedWeight,
		aggregate.KindReview:      DefaultReviewWeight,
		aggregate.KindMerge:       DefaultMergeWeight,
	}
}

// UnitWeights returns a table giving every listed kind multiplier 1.
// Merging with it sums raw interaction counts across kinds.
func UnitWeights(kinds ...aggregate.Kind) WeightTable {
	t := make(WeightTable, len(kinds))
	for _, k := range kinds {
		t[k] = 1
	}

	return t
}

// Clone returns an independent copy of t.
func (t WeightTable) Clone() WeightTable {
	out := make(WeightTable, len(t))
	for k, v := range t {
		out[k] = v
	}

	return out
}

// ErrConfiguration is the sentinel matched by every *ConfigurationError.
var ErrConfiguration = errors.New("merge: invalid weight configuration")

// ConfigurationError reports an unusable weight table.
type ConfigurationError struct {
	// Missing lists required kinds without a multiplier.
	Missing []aggregate.Kind
	// Invalid lists kinds whose multiplier is not positive.
	Invalid []aggregate.Kind
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing multiplier for "+joinKinds(e.Missing))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "non-positive multiplier for "+joinKinds(e.Invalid))
	}

	return fmt.Sprintf("merge: invalid weight configuration: %s", strings.Join(parts, "; "))
}

// Is matches ErrConfiguration.
func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// Validate checks that every required kind has a multiplier and that every
// multiplier is positive. Kinds are reported in canonical order.
// Errors: *ConfigurationError.
func (t WeightTable) Validate(required ...aggregate.Kind) error {
	cerr := &ConfigurationError{}
	for _, k := range required {
		if _, ok := t[k]; !ok {
			cerr.Missing = append(cerr.Missing, k)
		}
	}
	for k, v := range t {
		if v <= 0 {
			cerr.Invalid = append(cerr.Invalid, k)
		}
	}
	if len(cerr.Missing) == 0 && len(cerr.Invalid) == 0 {
		return nil
	}
	sortKinds(cerr.Missing)
	sortKinds(cerr.Invalid)

	return cerr
}

func sortKinds(kinds []aggregate.Kind) {
	sort.SliceStable(kinds, func(i, j int) bool {
		if kinds[i].Rank() != kinds[j].Rank() {
			return kinds[i].Rank() < kinds[j].Rank()
		}
		return kinds[i] < kinds[j]
	})
}

func joinKinds(kinds []aggregate.Kind) string {
	s := make([]string, len(kinds))
	for i, k := range kinds {
		s[i] = string(k)
	}

	return strings.Join(s, ", ")
}
