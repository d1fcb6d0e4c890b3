package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"corona-spread-gif/models"
	"corona-spread-gif/storage"
)

func validOptions(t *testing.T) *RunOptions {
	t.Helper()
	in := t.TempDir()
	for _, name := range []string{models.Confirmed, models.Deaths} {
		require.NoError(t, os.WriteFile(storage.DatasetPath(in, name), []byte("Country/Region,Lat,Long\n"), 0o644))
	}
	return &RunOptions{
		OutputDir: filepath.Join(t.TempDir(), "output"),
		InputDir:  in,
		Confirmed: true,
		Deaths:    true,
		StartDate: "2/23/20",
	}
}

func requireConfigError(t *testing.T, err error) {
	t.Helper()
	var cfgErr *models.ConfigurationError
	require.True(t, errors.As(err, &cfgErr), "want ConfigurationError, got %v", err)
}

func TestValidateCreatesOutputDir(t *testing.T) {
	o := validOptions(t)
	require.NoError(t, o.Validate())
	require.DirExists(t, o.OutputDir)
	require.Equal(t, 2020, o.Start.Year())
	require.Equal(t, 23, o.Start.Day())
}

func TestValidateNoDatasetTouchesNothing(t *testing.T) {
	o := validOptions(t)
	o.Confirmed, o.Deaths = false, false

	requireConfigError(t, o.Validate())
	require.NoDirExists(t, o.OutputDir)
}

func TestValidateBadStartDate(t *testing.T) {
	for _, d := range []string{"2020-02-23", "23/2/20", ""} {
		o := validOptions(t)
		o.StartDate = d
		requireConfigError(t, o.Validate())
		require.NoDirExists(t, o.OutputDir)
	}
}

func TestValidateMissingInput(t *testing.T) {
	o := validOptions(t)
	o.InputDir = filepath.Join(o.InputDir, "nope")
	requireConfigError(t, o.Validate())
}

func TestValidateMissingDatasetFile(t *testing.T) {
	o := validOptions(t)
	require.NoError(t, os.Remove(storage.DatasetPath(o.InputDir, models.Deaths)))
	requireConfigError(t, o.Validate())

	o.Deaths = false
	require.NoError(t, o.Validate())
}
