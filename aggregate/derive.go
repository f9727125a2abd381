// SPDX-License-Identifier: MIT

package aggregate

import "sort"

// Partition groups records by Kind, preserving input order within each group.
func Partition(records []Record) map[Kind][]Record {
	out := make(map[Kind][]Record, len(kindOrder))
	for _, r := range records {
		out[r.Kind] = append(out[r.Kind], r)
	}

	return out
}

// DeriveIssueOpened produces the "issue opened, then commented by another user"
// interactions: one record issue author → commenter for every distinct
// (issue, author, commenter) triple among comment records on issues.
//
// A comment record carries commenter → author, so the derived record flips it.
// Only comments by someone other than the author on an identified issue count.
// The result is sorted by (Subject, Source, Target) so it does not depend on input order.
// Complexity: O(n log n).
func DeriveIssueOpened(records []Record) []Record {
	type key struct{ subject, author, commenter string }
	seen := make(map[key]struct{})
	var out []Record
	for _, r := range records {
		if r.Kind != KindComment || r.SubjectKind != SubjectIssue || r.Subject == "" || r.Source == r.Target {
			continue
		}
		k := key{subject: r.Subject, author: r.Target, commenter: r.Source}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, Record{
			Source:      r.Target,
			Target:      r.Source,
			Kind:        KindIssueOpened,
			Subject:     r.Subject,
			SubjectKind: SubjectIssue,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Subject != out[j].Subject {
			return out[i].Subject < out[j].Subject
		}
		if out[i].Source != out[j].Source {
			return out[i].Source < out[j].Source
		}
		return out[i].Target < out[j].Target
	})

	return out
}
