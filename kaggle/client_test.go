package kaggle

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"corona-spread-gif/utils"
)

func zipArchive(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func newTestServer(t *testing.T, archive []byte) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, key, ok := r.BasicAuth()
		if !ok || user != "alice" || key != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.URL.Path != "/api/v1/datasets/download/sudalairajkumar/novel-corona-virus-2019-dataset" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/zip")
		_, _ = w.Write(archive)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testLogger() *utils.Logger { return utils.NewLoggerTo(io.Discard, false) }

func TestDownloadExtractsArchive(t *testing.T) {
	archive := zipArchive(t, map[string]string{
		TimeseriesDataset: "Province/State,Country/Region,Lat,Long,3/1/20\n",
		MainDataset:       "SNo,ObservationDate\n1,03/01/2020\n",
	})
	srv := newTestServer(t, archive)
	dest := filepath.Join(t.TempDir(), "dataset")

	c := NewClient(srv.URL, Credentials{Username: "alice", Key: "secret"}, testLogger())
	name, err := c.Download(context.Background(), DefaultOwner, DefaultDataset, dest)
	require.NoError(t, err)
	require.Equal(t, DefaultDataset, name)
	require.FileExists(t, filepath.Join(dest, TimeseriesDataset))
	require.FileExists(t, filepath.Join(dest, MainDataset))
}

func TestDownloadUnauthorized(t *testing.T) {
	srv := newTestServer(t, nil)

	c := NewClient(srv.URL, Credentials{Username: "alice", Key: "wrong"}, testLogger())
	_, err := c.Download(context.Background(), DefaultOwner, DefaultDataset, t.TempDir())
	require.ErrorContains(t, err, "401")
}

func TestUnzipRejectsTraversal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.zip")
	require.NoError(t, os.WriteFile(path, zipArchive(t, map[string]string{"../evil.txt": "x"}), 0o644))

	_, err := unzip(path, filepath.Join(t.TempDir(), "out"))
	require.ErrorContains(t, err, "escapes destination")
}

func TestReadCredentials(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kaggle.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"username":"alice","key":"secret"}`), 0o600))

	c, err := ReadCredentials(path)
	require.NoError(t, err)
	require.Equal(t, Credentials{Username: "alice", Key: "secret"}, c)

	_, err = ReadCredentials(filepath.Join(dir, "missing.json"))
	require.ErrorIs(t, err, ErrNoCredentials)
}

func TestLoadCredentialsPrefersExplicit(t *testing.T) {
	t.Setenv("KAGGLE_CONFIG_DIR", t.TempDir())

	c, err := LoadCredentials("bob", "k")
	require.NoError(t, err)
	require.Equal(t, "bob", c.Username)

	_, err = LoadCredentials("", "")
	require.ErrorIs(t, err, ErrNoCredentials)
}
