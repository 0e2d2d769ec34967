package usecase

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/k-fujiwara/pbrimport/pkg/domain/interfaces"
	"github.com/k-fujiwara/pbrimport/pkg/domain/model"
	"github.com/k-fujiwara/pbrimport/pkg/domain/types"
	"github.com/k-fujiwara/pbrimport/pkg/utils/imagemeta"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// ManifestFileName is the manifest written at the root of the output tree.
const ManifestFileName = "_manifest.json"

type importUseCase struct {
	store        interfaces.ArchiveStore
	rules        model.SurfaceRules
	downloadsDir string
	outputDir    string
	dryRun       bool
}

// Option configures the import use case
type Option func(*importUseCase)

// WithDownloadsDir sets the directory scanned for material archives
func WithDownloadsDir(dir string) Option {
	return func(uc *importUseCase) {
		uc.downloadsDir = dir
	}
}

// WithOutputDir sets the root of the imported asset tree
func WithOutputDir(dir string) Option {
	return func(uc *importUseCase) {
		uc.outputDir = dir
	}
}

// WithSurfaceRules overrides the built-in wall classification keywords
func WithSurfaceRules(rules model.SurfaceRules) Option {
	return func(uc *importUseCase) {
		uc.rules = rules
	}
}

// WithDryRun makes the run report selections without writing anything
func WithDryRun(dryRun bool) Option {
	return func(uc *importUseCase) {
		uc.dryRun = dryRun
	}
}

// NewImporter creates a new instance of ImportUseCase
func NewImporter(store interfaces.ArchiveStore, opts ...Option) interfaces.ImportUseCase {
	uc := &importUseCase{
		store:        store,
		rules:        model.DefaultSurfaceRules(),
		downloadsDir: "downloads",
		outputDir:    filepath.Join("assets", "public", "pbr"),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Run imports every discovered material slug. Per-slug errors are logged
// and counted; only the absence of input archives is an error of the run
// itself.
func (uc *importUseCase) Run(ctx context.Context) (*model.ImportResult, error) {
	logger := ctxlog.From(ctx)

	paths, err := filepath.Glob(filepath.Join(uc.downloadsDir, "*.zip"))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to scan downloads directory", goerr.V("dir", uc.downloadsDir))
	}

	groups := model.GroupArchives(paths)
	if len(groups) == 0 {
		return nil, goerr.Wrap(types.ErrNoArchives, "nothing to import", goerr.V("dir", uc.downloadsDir))
	}

	runID := uuid.NewString()
	logger = logger.With("run_id", runID)
	ctx = ctxlog.With(ctx, logger)

	logger.Info("Starting material import",
		"slugs", len(groups),
		"archives", len(paths),
		"dry_run", uc.dryRun,
	)

	result := &model.ImportResult{
		RunID:     runID,
		DryRun:    uc.dryRun,
		Materials: make([]model.ManifestEntry, 0, len(groups)),
	}

	for _, slug := range model.SortedSlugs(groups) {
		best := model.BestCandidate(groups[slug])

		entry, err := uc.importOne(ctx, slug, best.Path)
		if err != nil {
			logger.Error("Failed to import material",
				"slug", slug,
				"zip", best.Path,
				"error", err,
			)
			result.Failures++
			continue
		}

		result.Materials = append(result.Materials, entry)
	}

	if !uc.dryRun {
		uc.writeManifest(ctx, result)
	}

	logger.Info("Material import finished",
		"imported", len(result.Materials),
		"failures", result.Failures,
	)

	return result, nil
}

// importOne selects and extracts the textures of a single slug. The
// returned error is fatal to this slug only.
func (uc *importUseCase) importOne(ctx context.Context, slug, zipPath string) (model.ManifestEntry, error) {
	logger := ctxlog.From(ctx)

	ar, err := uc.store.OpenArchive(zipPath)
	if err != nil {
		return model.ManifestEntry{}, goerr.Wrap(err, "failed to read archive", goerr.V("slug", slug))
	}
	defer func() {
		if err := ar.Close(); err != nil {
			logger.Warn("Failed to close archive", "zip", zipPath, "error", err)
		}
	}()

	sel := PickTextures(slug, zipPath, ar.List(), uc.rules)
	if !sel.HasRequiredMaps() {
		return model.ManifestEntry{}, goerr.Wrap(types.ErrMissingRequiredMap, "cannot import material",
			goerr.V("slug", slug),
			goerr.V("basecolor", sel.BaseColor),
			goerr.V("normal_gl", sel.NormalGL),
		)
	}

	entry := model.ManifestEntry{
		Slug:       sel.Slug,
		Zip:        sel.ZipPath,
		IsWall:     sel.IsWall,
		BaseColor:  sel.BaseColor,
		NormalGL:   sel.NormalGL,
		ARM:        sel.ARM,
		ExtraFiles: sel.ExtraFiles,
	}
	entry.Width, entry.Height = uc.probeBaseColor(ctx, ar, sel.BaseColor)

	logger.Debug("Selected texture members",
		"slug", slug,
		"basecolor", sel.BaseColor,
		"normal_gl", sel.NormalGL,
		"arm", sel.ARM,
		"extra_files", len(sel.ExtraFiles),
	)

	if uc.dryRun {
		return entry, nil
	}

	if err := uc.extract(ctx, ar, sel); err != nil {
		return model.ManifestEntry{}, err
	}

	return entry, nil
}

// probeBaseColor reads the base color image header for the manifest
// dimensions. Best effort: a failed probe leaves them at zero.
func (uc *importUseCase) probeBaseColor(ctx context.Context, ar interfaces.Archive, member string) (int, int) {
	logger := ctxlog.From(ctx)

	rc, err := ar.Open(member)
	if err != nil {
		logger.Debug("Failed to open base color for probing", "member", member, "error", err)
		return 0, 0
	}
	defer rc.Close()

	w, h, err := imagemeta.Probe(rc)
	if err != nil {
		logger.Debug("Failed to probe base color header", "member", member, "error", err)
		return 0, 0
	}
	return w, h
}

// extract writes the selected members into <output>/<slug>. Texture members
// are renamed to fixed basenames keeping their extension; auxiliary files
// are flattened to their basename.
func (uc *importUseCase) extract(ctx context.Context, ar interfaces.Archive, sel *model.Selection) error {
	logger := ctxlog.From(ctx)
	targetDir := filepath.Join(uc.outputDir, sel.Slug)

	if err := uc.writeMember(ar, sel.BaseColor, targetDir, "basecolor"+memberExt(sel.BaseColor)); err != nil {
		return err
	}
	if err := uc.writeMember(ar, sel.NormalGL, targetDir, "normal_gl"+memberExt(sel.NormalGL)); err != nil {
		return err
	}
	if sel.ARM != "" {
		if err := uc.writeMember(ar, sel.ARM, targetDir, "arm"+memberExt(sel.ARM)); err != nil {
			return err
		}
	}

	written := make(map[string]bool)
	for _, extra := range sel.ExtraFiles {
		base := filepath.Base(extra)
		if base == "" || base == "." || base == string(filepath.Separator) {
			continue
		}
		if written[base] {
			logger.Warn("Auxiliary file basename collision, overwriting",
				"slug", sel.Slug,
				"basename", base,
				"member", extra,
			)
		}
		written[base] = true

		if err := uc.writeMember(ar, extra, targetDir, base); err != nil {
			return err
		}
	}

	logger.Info("Imported material",
		"slug", sel.Slug,
		"target", targetDir,
		"is_wall", sel.IsWall,
	)

	return nil
}

// writeMember copies one archive member to destDir/destName.
func (uc *importUseCase) writeMember(ar interfaces.Archive, member, destDir, destName string) error {
	destPath := filepath.Join(destDir, destName)

	// Path traversal guard: the destination must stay inside destDir.
	if !strings.HasPrefix(destPath, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return goerr.New("invalid destination path", goerr.V("member", member), goerr.V("dest", destPath))
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return goerr.Wrap(err, "failed to create target directory", goerr.V("dir", destDir))
	}

	src, err := ar.Open(member)
	if err != nil {
		return goerr.Wrap(err, "failed to open archive member", goerr.V("member", member))
	}
	defer src.Close()

	dst, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return goerr.Wrap(err, "failed to create destination file", goerr.V("dest", destPath))
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return goerr.Wrap(err, "failed to copy member content", goerr.V("member", member), goerr.V("dest", destPath))
	}

	return nil
}

// writeManifest emits the run manifest, overwriting any prior one. A write
// failure is a warning, never fatal to the run.
func (uc *importUseCase) writeManifest(ctx context.Context, result *model.ImportResult) {
	logger := ctxlog.From(ctx)

	manifest := model.Manifest{
		Version:     types.ManifestVersion,
		RunID:       result.RunID,
		GeneratedAt: time.Now().UTC(),
		Failures:    result.Failures,
		Materials:   result.Materials,
	}

	path := filepath.Join(uc.outputDir, ManifestFileName)

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		logger.Warn("Failed to encode manifest", "path", path, "error", err)
		return
	}
	data = append(data, '\n')

	if err := os.MkdirAll(uc.outputDir, 0755); err != nil {
		logger.Warn("Failed to create output directory for manifest", "path", path, "error", err)
		return
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		logger.Warn("Failed to write manifest", "path", path, "error", err)
		return
	}

	logger.Info("Wrote manifest", "path", path, "materials", len(result.Materials))
}

// memberExt returns the lowercased extension of an archive member,
// defaulting to .jpg when the name has none.
func memberExt(member string) string {
	ext := strings.ToLower(filepath.Ext(member))
	if ext == "" {
		ext = ".jpg"
	}
	return ext
}
