package config

import (
	"os"
	"time"

	"corona-spread-gif/models"
	"corona-spread-gif/storage"
)

// RunOptions are the validated inputs of a render run.
type RunOptions struct {
	OutputDir string
	InputDir  string
	Confirmed bool
	Deaths    bool
	StartDate string
	Normalize bool
	StylePath string
	Format    string

	// Start is StartDate parsed by Validate.
	Start time.Time
}

// Options returns RunOptions seeded from the environment configuration.
func (c *Config) Options() *RunOptions {
	return &RunOptions{
		OutputDir: c.OutputDir,
		InputDir:  c.InputDir,
		Confirmed: c.Confirmed,
		Deaths:    c.Deaths,
		StartDate: c.StartDate,
		Normalize: c.Normalize,
		StylePath: c.StylePath,
		Format:    c.Format,
	}
}

// Validate checks the options and creates the output directory.
// Nothing is written unless every check passes.
func (o *RunOptions) Validate() error {
	if !o.Confirmed && !o.Deaths {
		return models.Configf("neither confirmed nor deaths have been selected, at least one dataset has to be picked")
	}

	start, err := models.ParseDate(o.StartDate)
	if err != nil {
		return models.Configf("start date %q is not in m/d/yy format", o.StartDate)
	}
	o.Start = start

	info, err := os.Stat(o.InputDir)
	if err != nil || !info.IsDir() {
		return models.Configf("input directory %s does not exist", o.InputDir)
	}
	for _, ds := range []struct {
		name     string
		selected bool
	}{{models.Confirmed, o.Confirmed}, {models.Deaths, o.Deaths}} {
		if !ds.selected {
			continue
		}
		path := storage.DatasetPath(o.InputDir, ds.name)
		if _, err := os.Stat(path); err != nil {
			return models.Configf("dataset file %s does not exist", path)
		}
	}

	if err := os.MkdirAll(o.OutputDir, 0755); err != nil {
		return models.Configf("cannot create output directory %s: %v", o.OutputDir, err)
	}
	return nil
}
