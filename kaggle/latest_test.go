package kaggle

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckLatestDates(t *testing.T) {
	dir := t.TempDir()
	main := "SNo,ObservationDate,Province/State,Country/Region\n" +
		"1,12/31/2020,,US\n" +
		"2,01/05/2021,,US\n" +
		"3,03/01/2020,,Italy\n"
	ts := "Province/State,Country/Region,Lat,Long,1/22/20,1/23/20,3/17/20\n,US,38,-97,1,1,5\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, MainDataset), []byte(main), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, TimeseriesDataset), []byte(ts), 0o644))

	got, err := CheckLatestDates(dir)
	require.NoError(t, err)
	require.Equal(t, LatestDates{Main: "01/05/2021", Timeseries: "3/17/20"}, got)
}

func TestLatestObservationDateMissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), MainDataset)
	require.NoError(t, os.WriteFile(path, []byte("a,b\n1,2\n"), 0o644))

	_, err := LatestObservationDate(path)
	require.ErrorContains(t, err, "ObservationDate")
}

func TestCheckLatestDatesMissingFile(t *testing.T) {
	_, err := CheckLatestDates(t.TempDir())
	require.Error(t, err)
}
