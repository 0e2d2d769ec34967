package usecase_test

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/k-fujiwara/pbrimport/pkg/domain/model"
	"github.com/k-fujiwara/pbrimport/pkg/domain/types"
	"github.com/k-fujiwara/pbrimport/pkg/infra/archive"
	"github.com/k-fujiwara/pbrimport/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func makeZip(t *testing.T, path string, members map[string][]byte) {
	t.Helper()

	f, err := os.Create(path)
	gt.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, data := range members {
		w, err := zw.Create(name)
		gt.NoError(t, err)
		_, err = w.Write(data)
		gt.NoError(t, err)
	}
	gt.NoError(t, zw.Close())
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()

	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	gt.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func brickMembers(t *testing.T, slug string) map[string][]byte {
	t.Helper()

	return map[string][]byte{
		"textures/" + slug + "_diff_1k.jpg":   []byte("basecolor-data"),
		"textures/" + slug + "_nor_gl_1k.png": []byte("normal-data"),
		"textures/" + slug + "_arm_1k.png":    []byte("arm-data"),
		"LICENSE.txt":                         []byte("CC0"),
	}
}

func TestImporter_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("imports lowest resolution under fixed names", func(t *testing.T) {
		downloads := t.TempDir()
		output := t.TempDir()

		makeZip(t, filepath.Join(downloads, "red_brick_1k.zip"), brickMembers(t, "red_brick"))
		makeZip(t, filepath.Join(downloads, "red_brick_2k.zip"), brickMembers(t, "red_brick"))
		makeZip(t, filepath.Join(downloads, "red_brick_4k.zip"), brickMembers(t, "red_brick"))

		uc := usecase.NewImporter(archive.NewStore(),
			usecase.WithDownloadsDir(downloads),
			usecase.WithOutputDir(output),
		)

		result, err := uc.Run(ctx)
		gt.NoError(t, err)
		gt.Equal(t, result.Failures, 0)
		gt.Equal(t, len(result.Materials), 1)
		gt.Equal(t, result.Materials[0].Slug, "red_brick")
		gt.Equal(t, result.Materials[0].Zip, filepath.Join(downloads, "red_brick_1k.zip"))
		gt.Equal(t, result.Materials[0].IsWall, true)
		gt.V(t, result.RunID).NotEqual("")

		for _, name := range []string{"basecolor.jpg", "normal_gl.png", "arm.png", "LICENSE.txt"} {
			_, err := os.Stat(filepath.Join(output, "red_brick", name))
			gt.NoError(t, err)
		}

		data, err := os.ReadFile(filepath.Join(output, "red_brick", "basecolor.jpg"))
		gt.NoError(t, err)
		gt.Equal(t, string(data), "basecolor-data")
	})

	t.Run("manifest records the run", func(t *testing.T) {
		downloads := t.TempDir()
		output := t.TempDir()

		makeZip(t, filepath.Join(downloads, "red_brick_1k.zip"), brickMembers(t, "red_brick"))

		uc := usecase.NewImporter(archive.NewStore(),
			usecase.WithDownloadsDir(downloads),
			usecase.WithOutputDir(output),
		)

		result, err := uc.Run(ctx)
		gt.NoError(t, err)

		data, err := os.ReadFile(filepath.Join(output, usecase.ManifestFileName))
		gt.NoError(t, err)

		var manifest model.Manifest
		gt.NoError(t, json.Unmarshal(data, &manifest))
		gt.Equal(t, manifest.Version, types.ManifestVersion)
		gt.Equal(t, manifest.RunID, result.RunID)
		gt.Equal(t, manifest.Failures, 0)
		gt.Equal(t, len(manifest.Materials), 1)
		gt.Equal(t, manifest.Materials[0].BaseColor, "textures/red_brick_diff_1k.jpg")
		gt.Equal(t, manifest.Materials[0].NormalGL, "textures/red_brick_nor_gl_1k.png")
		gt.Equal(t, manifest.Materials[0].ExtraFiles, []string{"LICENSE.txt"})
	})

	t.Run("missing normal map fails only that slug", func(t *testing.T) {
		downloads := t.TempDir()
		output := t.TempDir()

		makeZip(t, filepath.Join(downloads, "good_brick_1k.zip"), brickMembers(t, "good_brick"))
		makeZip(t, filepath.Join(downloads, "bad_brick_1k.zip"), map[string][]byte{
			"textures/bad_brick_diff_1k.jpg": []byte("basecolor-data"),
		})

		uc := usecase.NewImporter(archive.NewStore(),
			usecase.WithDownloadsDir(downloads),
			usecase.WithOutputDir(output),
		)

		result, err := uc.Run(ctx)
		gt.NoError(t, err)
		gt.Equal(t, result.Failures, 1)
		gt.Equal(t, len(result.Materials), 1)
		gt.Equal(t, result.Materials[0].Slug, "good_brick")

		_, err = os.Stat(filepath.Join(output, "good_brick", "basecolor.jpg"))
		gt.NoError(t, err)
		_, err = os.Stat(filepath.Join(output, "bad_brick"))
		gt.V(t, os.IsNotExist(err)).Equal(true)

		data, err := os.ReadFile(filepath.Join(output, usecase.ManifestFileName))
		gt.NoError(t, err)
		var manifest model.Manifest
		gt.NoError(t, json.Unmarshal(data, &manifest))
		gt.Equal(t, manifest.Failures, 1)
	})

	t.Run("corrupt archive fails only that slug", func(t *testing.T) {
		downloads := t.TempDir()
		output := t.TempDir()

		makeZip(t, filepath.Join(downloads, "good_brick_1k.zip"), brickMembers(t, "good_brick"))
		gt.NoError(t, os.WriteFile(filepath.Join(downloads, "broken_brick_1k.zip"), []byte("not a zip"), 0644))

		uc := usecase.NewImporter(archive.NewStore(),
			usecase.WithDownloadsDir(downloads),
			usecase.WithOutputDir(output),
		)

		result, err := uc.Run(ctx)
		gt.NoError(t, err)
		gt.Equal(t, result.Failures, 1)
		gt.Equal(t, len(result.Materials), 1)
	})

	t.Run("dry run writes nothing and reports the same outcome", func(t *testing.T) {
		downloads := t.TempDir()

		makeZip(t, filepath.Join(downloads, "good_brick_1k.zip"), brickMembers(t, "good_brick"))
		makeZip(t, filepath.Join(downloads, "bad_brick_1k.zip"), map[string][]byte{
			"textures/bad_brick_diff_1k.jpg": []byte("basecolor-data"),
		})

		dryOutput := filepath.Join(t.TempDir(), "dry")
		dryUC := usecase.NewImporter(archive.NewStore(),
			usecase.WithDownloadsDir(downloads),
			usecase.WithOutputDir(dryOutput),
			usecase.WithDryRun(true),
		)

		dryResult, err := dryUC.Run(ctx)
		gt.NoError(t, err)
		gt.Equal(t, dryResult.DryRun, true)

		_, err = os.Stat(dryOutput)
		gt.V(t, os.IsNotExist(err)).Equal(true)

		realOutput := filepath.Join(t.TempDir(), "real")
		realUC := usecase.NewImporter(archive.NewStore(),
			usecase.WithDownloadsDir(downloads),
			usecase.WithOutputDir(realOutput),
		)

		realResult, err := realUC.Run(ctx)
		gt.NoError(t, err)

		gt.Equal(t, dryResult.Failures, realResult.Failures)
		gt.Equal(t, len(dryResult.Materials), len(realResult.Materials))
		gt.Equal(t, dryResult.Materials[0].Slug, realResult.Materials[0].Slug)
		gt.Equal(t, dryResult.Materials[0].BaseColor, realResult.Materials[0].BaseColor)
	})

	t.Run("empty downloads directory", func(t *testing.T) {
		uc := usecase.NewImporter(archive.NewStore(),
			usecase.WithDownloadsDir(t.TempDir()),
			usecase.WithOutputDir(t.TempDir()),
		)

		_, err := uc.Run(ctx)
		gt.Error(t, err)
		gt.V(t, errors.Is(err, types.ErrNoArchives)).Equal(true)
	})

	t.Run("base color dimensions recorded in manifest", func(t *testing.T) {
		downloads := t.TempDir()
		output := t.TempDir()

		makeZip(t, filepath.Join(downloads, "mossy_rock_1k.zip"), map[string][]byte{
			"textures/mossy_rock_diff_1k.png":   pngBytes(t, 8, 4),
			"textures/mossy_rock_nor_gl_1k.png": pngBytes(t, 8, 4),
		})

		uc := usecase.NewImporter(archive.NewStore(),
			usecase.WithDownloadsDir(downloads),
			usecase.WithOutputDir(output),
		)

		result, err := uc.Run(ctx)
		gt.NoError(t, err)
		gt.Equal(t, len(result.Materials), 1)
		gt.Equal(t, result.Materials[0].Width, 8)
		gt.Equal(t, result.Materials[0].Height, 4)
	})

	t.Run("manifest is overwritten on each run", func(t *testing.T) {
		downloads := t.TempDir()
		output := t.TempDir()

		makeZip(t, filepath.Join(downloads, "red_brick_1k.zip"), brickMembers(t, "red_brick"))

		uc := usecase.NewImporter(archive.NewStore(),
			usecase.WithDownloadsDir(downloads),
			usecase.WithOutputDir(output),
		)

		first, err := uc.Run(ctx)
		gt.NoError(t, err)
		second, err := uc.Run(ctx)
		gt.NoError(t, err)
		gt.V(t, first.RunID).NotEqual(second.RunID)

		data, err := os.ReadFile(filepath.Join(output, usecase.ManifestFileName))
		gt.NoError(t, err)
		var manifest model.Manifest
		gt.NoError(t, json.Unmarshal(data, &manifest))
		gt.Equal(t, manifest.RunID, second.RunID)
	})

	t.Run("custom surface rules override defaults", func(t *testing.T) {
		downloads := t.TempDir()
		output := t.TempDir()

		makeZip(t, filepath.Join(downloads, "red_brick_1k.zip"), brickMembers(t, "red_brick"))

		uc := usecase.NewImporter(archive.NewStore(),
			usecase.WithDownloadsDir(downloads),
			usecase.WithOutputDir(output),
			usecase.WithSurfaceRules(model.SurfaceRules{NeverWall: []string{"brick"}}),
		)

		result, err := uc.Run(ctx)
		gt.NoError(t, err)
		gt.Equal(t, result.Materials[0].IsWall, false)
	})
}
