package config

import (
	"path/filepath"

	"github.com/urfave/cli/v3"
)

// Importer holds import command configuration
type Importer struct {
	DownloadsDir string
	OutputDir    string
	RulesPath    string
	DryRun       bool
}

// Flags returns CLI flags for importer configuration
func (c *Importer) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "downloads",
			Usage:       "Directory containing downloaded material zip archives",
			Value:       "downloads",
			Destination: &c.DownloadsDir,
			Sources:     cli.EnvVars("PBRIMPORT_DOWNLOADS_DIR"),
		},
		&cli.StringFlag{
			Name:        "output",
			Usage:       "Root directory of the imported PBR asset tree",
			Value:       filepath.Join("assets", "public", "pbr"),
			Destination: &c.OutputDir,
			Sources:     cli.EnvVars("PBRIMPORT_OUTPUT_DIR"),
		},
		&cli.StringFlag{
			Name:        "rules",
			Usage:       "TOML file overriding the wall classification keywords",
			Destination: &c.RulesPath,
			Sources:     cli.EnvVars("PBRIMPORT_RULES"),
		},
		&cli.BoolFlag{
			Name:        "dry-run",
			Usage:       "Report selections without writing any files",
			Value:       false,
			Destination: &c.DryRun,
			Sources:     cli.EnvVars("PBRIMPORT_DRY_RUN"),
		},
	}
}
