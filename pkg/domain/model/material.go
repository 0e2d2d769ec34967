package model

import "time"

// Selection is the per-slug result of texture role classification: which
// archive members will be imported for each canonical role.
type Selection struct {
	Slug       string   // Material slug
	ZipPath    string   // Chosen archive (lowest resolution)
	IsWall     bool     // Wall-surface heuristic result
	BaseColor  string   // Base color member name (required)
	NormalGL   string   // OpenGL-convention normal map member name (required)
	ARM        string   // Packed AO/roughness/metallic member name (optional)
	ExtraFiles []string // Auxiliary members (licenses, readmes), sorted
}

// HasRequiredMaps reports whether both required texture roles resolved.
func (s *Selection) HasRequiredMaps() bool {
	return s.BaseColor != "" && s.NormalGL != ""
}

// ManifestEntry is one imported material in the manifest file.
type ManifestEntry struct {
	Slug       string   `json:"slug"`
	Zip        string   `json:"zip"`
	IsWall     bool     `json:"is_wall"`
	BaseColor  string   `json:"basecolor"`
	NormalGL   string   `json:"normal_gl"`
	ARM        string   `json:"arm,omitempty"`
	ExtraFiles []string `json:"extra_files"`
	Width      int      `json:"width,omitempty"`
	Height     int      `json:"height,omitempty"`
}

// Manifest is the record of a whole import run, written once at the end
// and overwriting any prior manifest.
type Manifest struct {
	Version     int             `json:"version"`
	RunID       string          `json:"run_id"`
	GeneratedAt time.Time       `json:"generated_at"`
	Failures    int             `json:"failures"`
	Materials   []ManifestEntry `json:"materials"`
}

// ImportResult is the outcome of a batch run.
type ImportResult struct {
	RunID     string          // Unique identifier of this run
	DryRun    bool            // Whether the run skipped all writes
	Failures  int             // Number of slugs that failed to import
	Materials []ManifestEntry // Successfully imported materials, in slug order
}
