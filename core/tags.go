// SPDX-License-Identifier: MIT

package core

import (
	"sort"
	"strings"
)

// TagSeparator joins the members of an edge tag set.
const TagSeparator = "|"

// MergeTags returns the canonical union of two tag sets: unique members,
// sorted ascending, joined by TagSeparator. Either side may be empty.
//
// The union is commutative and associative, so the order in which
// contributions reach an edge never changes its stored tag.
// Complexity: O(k log k) for k members.
func MergeTags(existing, added string) string {
	if added == "" || existing == added {
		return existing
	}
	if existing == "" {
		return canonicalTags(added)
	}

	set := make(map[string]struct{}, 4)
	for _, part := range strings.Split(existing, TagSeparator) {
		if part != "" {
			set[part] = struct{}{}
		}
	}
	for _, part := range strings.Split(added, TagSeparator) {
		if part != "" {
			set[part] = struct{}{}
		}
	}

	return joinTagSet(set)
}

// SplitTags returns the members of a canonical tag set (nil for "").
func SplitTags(tags string) []string {
	if tags == "" {
		return nil
	}

	return strings.Split(tags, TagSeparator)
}

// canonicalTags normalizes a single (possibly composite) tag string.
func canonicalTags(tags string) string {
	if !strings.Contains(tags, TagSeparator) {
		return tags
	}
	set := make(map[string]struct{}, 4)
	for _, part := range strings.Split(tags, TagSeparator) {
		if part != "" {
			set[part] = struct{}{}
		}
	}

	return joinTagSet(set)
}

func joinTagSet(set map[string]struct{}) string {
	out := make([]string, 0, len(set))
	for tag := range set {
		out = append(out, tag)
	}
	sort.Strings(out)

	return strings.Join(out, TagSeparator)
}
