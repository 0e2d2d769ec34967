package model

import "strings"

// SurfaceRules holds the keyword lists used to decide whether a material
// slug represents a wall surface. The zero value matches nothing; use
// DefaultSurfaceRules for the built-in lists.
type SurfaceRules struct {
	// NeverWall keywords veto the wall classification outright.
	NeverWall []string `toml:"never_wall"`
	// Surface keywords mark ground/terrain-like materials that count as
	// walls only when a StrongWall keyword is also present.
	Surface []string `toml:"surface"`
	// StrongWall keywords promote surface-like materials to walls.
	StrongWall []string `toml:"strong_wall"`
	// Wallish keywords classify all remaining materials.
	Wallish []string `toml:"wallish"`
}

// DefaultSurfaceRules returns the built-in classification keywords.
func DefaultSurfaceRules() SurfaceRules {
	return SurfaceRules{
		NeverWall:  []string{"grass"},
		Surface:    []string{"asphalt", "crosswalk", "paver", "paving", "terrain", "coast", "rocks", "roof", "tiles"},
		StrongWall: []string{"wall", "cladding"},
		Wallish:    []string{"brick", "plaster", "stone", "concrete", "metal", "iron", "shutter", "plate"},
	}
}

// IsWall reports whether the slug names a wall-like material. This is a
// best-effort tag for downstream asset tooling, not a validated property.
func (r SurfaceRules) IsWall(slug string) bool {
	s := strings.ToLower(slug)

	if containsAny(s, r.NeverWall) {
		return false
	}
	if containsAny(s, r.Surface) {
		return containsAny(s, r.StrongWall)
	}
	return containsAny(s, r.Wallish)
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
