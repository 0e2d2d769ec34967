package config

import (
	"os"

	"github.com/k-fujiwara/pbrimport/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
)

// SurfaceRules loads the wall classification keywords. Without a rules file
// the built-in lists are used; a file only replaces the lists it sets.
func (c *Importer) SurfaceRules() (model.SurfaceRules, error) {
	rules := model.DefaultSurfaceRules()
	if c.RulesPath == "" {
		return rules, nil
	}

	data, err := os.ReadFile(c.RulesPath)
	if err != nil {
		return rules, goerr.Wrap(err, "failed to read rules file", goerr.V("path", c.RulesPath))
	}

	if err := toml.Unmarshal(data, &rules); err != nil {
		return rules, goerr.Wrap(err, "failed to parse rules file", goerr.V("path", c.RulesPath))
	}

	return rules, nil
}
