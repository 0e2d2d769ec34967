package cli

import (
	"context"
	"log/slog"

	"github.com/fatih/color"
	"github.com/k-fujiwara/pbrimport/pkg/cli/config"
	"github.com/k-fujiwara/pbrimport/pkg/domain/model"
	"github.com/k-fujiwara/pbrimport/pkg/domain/types"
	"github.com/k-fujiwara/pbrimport/pkg/infra/archive"
	"github.com/k-fujiwara/pbrimport/pkg/usecase"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdImport() *cli.Command {
	var importerCfg config.Importer

	return &cli.Command{
		Name:    "import",
		Aliases: []string{"i"},
		Usage:   "Import downloaded material archives into the asset tree",
		Flags:   importerCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting pbrimport",
				slog.String("downloads", importerCfg.DownloadsDir),
				slog.String("output", importerCfg.OutputDir),
				slog.Bool("dry_run", importerCfg.DryRun),
			)

			rules, err := importerCfg.SurfaceRules()
			if err != nil {
				return goerr.Wrap(err, "failed to load surface rules")
			}

			uc := usecase.NewImporter(
				archive.NewStore(),
				usecase.WithDownloadsDir(importerCfg.DownloadsDir),
				usecase.WithOutputDir(importerCfg.OutputDir),
				usecase.WithSurfaceRules(rules),
				usecase.WithDryRun(importerCfg.DryRun),
			)

			result, err := uc.Run(ctx)
			if err != nil {
				return err
			}

			printReport(result)

			if result.Failures > 0 {
				return goerr.Wrap(types.ErrPartialImport, "some materials were not imported",
					goerr.V("failures", result.Failures),
				)
			}
			return nil
		},
	}
}

// printReport writes the human-facing run summary to stdout. Structured
// logs carry the same information for machine consumption.
func printReport(result *model.ImportResult) {
	cyan := color.New(color.FgCyan)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	if result.DryRun {
		for _, m := range result.Materials {
			_, _ = cyan.Printf("[dry-run] %s: base=%s normal=%s arm=%s\n",
				m.Slug, m.BaseColor, m.NormalGL, valueOrDash(m.ARM))
		}
	}

	if result.Failures > 0 {
		_, _ = yellow.Printf("Import completed with %d failure(s).\n", result.Failures)
		return
	}
	_, _ = green.Printf("Import completed. %d material(s).\n", len(result.Materials))
}

func valueOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
