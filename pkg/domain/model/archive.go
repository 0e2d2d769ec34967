package model

import (
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var archiveNameRe = regexp.MustCompile(`(?i)^(.+)_([0-9]+)k$`)

// ArchiveCandidate is one resolution variant of a material archive.
type ArchiveCandidate struct {
	Path string // Path to the zip file
	Rank int    // Numeric resolution suffix (1 for 1k, 2 for 2k, ...)
}

// ParseArchiveName extracts the material slug and resolution rank from a
// zip filename of the form <slug>_<N>k.zip. Returns ok=false for any other
// name.
func ParseArchiveName(path string) (slug string, rank int, ok bool) {
	name := filepath.Base(path)
	if !strings.HasSuffix(strings.ToLower(name), ".zip") {
		return "", 0, false
	}
	stem := name[:len(name)-len(".zip")]

	m := archiveNameRe.FindStringSubmatch(stem)
	if m == nil {
		return "", 0, false
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return "", 0, false
	}
	return m[1], n, true
}

// GroupArchives groups zip paths by material slug. Paths that do not match
// the <slug>_<N>k.zip pattern are ignored.
func GroupArchives(paths []string) map[string][]ArchiveCandidate {
	groups := make(map[string][]ArchiveCandidate)
	for _, p := range paths {
		slug, rank, ok := ParseArchiveName(p)
		if !ok {
			continue
		}
		groups[slug] = append(groups[slug], ArchiveCandidate{Path: p, Rank: rank})
	}
	return groups
}

// BestCandidate returns the lowest-resolution candidate. Ties are broken by
// path so repeated runs pick the same file.
func BestCandidate(candidates []ArchiveCandidate) ArchiveCandidate {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Rank < best.Rank || (c.Rank == best.Rank && c.Path < best.Path) {
			best = c
		}
	}
	return best
}

// SortedSlugs returns the group keys in lexical order, which fixes the
// batch iteration order.
func SortedSlugs(groups map[string][]ArchiveCandidate) []string {
	slugs := make([]string, 0, len(groups))
	for slug := range groups {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs
}
