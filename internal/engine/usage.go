package engine

import (
	"bytes"
	"sort"
)

// RewriteUsages replaces every whole-identifier occurrence of a key of
// renames in src with its mapped value and returns the rewritten bytes
// plus the replacement count. Occurrences inside string or comment
// literals and identifiers merely containing a key as a substring are
// left alone. The input slice is never mutated.
func RewriteUsages(src []byte, renames map[string]string) ([]byte, int) {
	if len(renames) == 0 {
		return src, 0
	}

	mask := codeMask(src)

	var out bytes.Buffer

	out.Grow(len(src))

	count := 0

	for i := 0; i < len(src); {
		if !mask[i] || !isIdentByte(src[i]) {
			out.WriteByte(src[i])
			i++

			continue
		}

		// Consume a full identifier-like token. Runs starting with a
		// digit are numeric literals and never substituted.
		start := i
		for i < len(src) && isIdentByte(src[i]) {
			i++
		}

		word := src[start:i]

		if isIdentStart(word[0]) {
			if updated, ok := renames[string(word)]; ok {
				out.WriteString(updated)
				count++

				continue
			}
		}

		out.Write(word)
	}

	return out.Bytes(), count
}

// FindIdentifiers returns which of the given names occur in src as a
// whole identifier outside string and comment literals, sorted. Used for
// collision detection before a rewrite and residual-name scanning after
// one.
func FindIdentifiers(src []byte, names []string) []string {
	if len(names) == 0 {
		return nil
	}

	want := make(map[string]struct{}, len(names))
	for _, name := range names {
		want[name] = struct{}{}
	}

	mask := codeMask(src)
	found := make(map[string]struct{})

	for i := 0; i < len(src); {
		if !mask[i] || !isIdentByte(src[i]) {
			i++

			continue
		}

		start := i
		for i < len(src) && isIdentByte(src[i]) {
			i++
		}

		word := src[start:i]

		if !isIdentStart(word[0]) {
			continue
		}

		if _, ok := want[string(word)]; ok {
			found[string(word)] = struct{}{}
		}
	}

	hits := make([]string, 0, len(found))
	for name := range found {
		hits = append(hits, name)
	}

	sort.Strings(hits)

	return hits
}
