package usecase

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/k-fujiwara/pbrimport/pkg/domain/model"
)

// Texture filename conventions vary across material providers; each role is
// matched by an ordered pattern list and the first pattern with any hit
// wins. The order encodes format preference (jpg base color, png normal).
var (
	baseColorVariants = []struct{ suffix, ext string }{
		{"diff", "jpg"},
		{"albedo", "jpg"},
		{"basecolor", "jpg"},
		{"color", "jpg"},
		{"diff", "png"},
		{"albedo", "png"},
		{"basecolor", "png"},
		{"color", "png"},
	}
	normalGLVariants = []struct{ suffix, ext string }{
		{"nor_gl", "png"},
		{"nor_gl", "jpg"},
		{"normal_gl", "png"},
		{"normal_gl", "jpg"},
	}
	armVariants = []struct{ suffix, ext string }{
		{"arm", "png"},
		{"arm", "jpg"},
		{"orm", "png"},
		{"orm", "jpg"},
	}
)

func rolePatterns(slug string, variants []struct{ suffix, ext string }) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(variants))
	for _, v := range variants {
		expr := fmt.Sprintf(`(^|/)textures/%s_%s_1k\.%s$`, regexp.QuoteMeta(strings.ToLower(slug)), v.suffix, v.ext)
		patterns = append(patterns, regexp.MustCompile(expr))
	}
	return patterns
}

// pickBest returns the best-matching member name for an ordered pattern
// list. Within one pattern, ties break by shortest name then lexical order.
func pickBest(names []string, patterns []*regexp.Regexp) string {
	for _, re := range patterns {
		var hits []string
		for _, name := range names {
			if re.MatchString(strings.ToLower(name)) {
				hits = append(hits, name)
			}
		}
		if len(hits) > 0 {
			sort.Slice(hits, func(i, j int) bool {
				if len(hits[i]) != len(hits[j]) {
					return len(hits[i]) < len(hits[j])
				}
				return hits[i] < hits[j]
			})
			return hits[0]
		}
	}
	return ""
}

// auxiliaryFiles collects license/attribution/readme-like members that live
// outside the textures folder. Returned sorted and deduplicated; these are
// flattened to their basename on extraction.
func auxiliaryFiles(names []string) []string {
	seen := make(map[string]bool)
	extras := []string{}

	for _, name := range names {
		lower := strings.ToLower(name)

		var keep bool
		switch {
		case strings.Contains(lower, "license"),
			strings.Contains(lower, "licence"),
			strings.Contains(lower, "attribution"):
			keep = true
		case strings.HasSuffix(lower, ".txt") && !strings.Contains(lower, "textures/"):
			keep = true
		case strings.HasSuffix(lower, ".md") && !strings.Contains(lower, "textures/"):
			keep = true
		}

		if keep && !seen[name] {
			seen[name] = true
			extras = append(extras, name)
		}
	}

	sort.Strings(extras)
	return extras
}

// PickTextures classifies the members of a material archive into the
// canonical texture roles and auxiliary files.
func PickTextures(slug, zipPath string, members []string, rules model.SurfaceRules) *model.Selection {
	return &model.Selection{
		Slug:       slug,
		ZipPath:    zipPath,
		IsWall:     rules.IsWall(slug),
		BaseColor:  pickBest(members, rolePatterns(slug, baseColorVariants)),
		NormalGL:   pickBest(members, rolePatterns(slug, normalGLVariants)),
		ARM:        pickBest(members, rolePatterns(slug, armVariants)),
		ExtraFiles: auxiliaryFiles(members),
	}
}
