package kaggle

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"corona-spread-gif/utils"
)

const (
	DefaultOwner   = "sudalairajkumar"
	DefaultDataset = "novel-corona-virus-2019-dataset"
)

// Client downloads datasets from the Kaggle public API.
type Client struct {
	http   *resty.Client
	logger *utils.Logger
}

// NewClient creates a Client authenticated with creds against baseURL.
func NewClient(baseURL string, creds Credentials, logger *utils.Logger) *Client {
	client := resty.New()
	client.SetBaseURL(strings.TrimRight(baseURL, "/"))
	client.SetBasicAuth(creds.Username, creds.Key)
	client.SetHeader("user-agent", "corona-spread-gif")
	client.SetTimeout(10 * time.Minute)
	return &Client{http: client, logger: logger}
}

// Download fetches owner/dataset as a zip archive and extracts it into dest.
// It returns the dataset name.
func (c *Client) Download(ctx context.Context, owner, dataset, dest string) (string, error) {
	if err := os.MkdirAll(dest, 0755); err != nil {
		return "", fmt.Errorf("kaggle: create %q: %w", dest, err)
	}

	archive, err := os.CreateTemp("", dataset+"-*.zip")
	if err != nil {
		return "", fmt.Errorf("kaggle: temp file: %w", err)
	}
	archivePath := archive.Name()
	_ = archive.Close()
	defer os.Remove(archivePath)

	res, err := c.http.R().
		SetContext(ctx).
		SetPathParams(map[string]string{"owner": owner, "dataset": dataset}).
		SetOutput(archivePath).
		Get("/api/v1/datasets/download/{owner}/{dataset}")
	if err != nil {
		return "", fmt.Errorf("kaggle: download %s/%s: %w", owner, dataset, err)
	}
	if res.IsError() {
		return "", fmt.Errorf("kaggle: download %s/%s: %s", owner, dataset, res.Status())
	}

	n, err := unzip(archivePath, dest)
	if err != nil {
		return "", err
	}
	c.logger.Info("[kaggle] Dataset %s extracted into %s (%d files)", dataset, dest, n)
	return dataset, nil
}

func unzip(archivePath, dest string) (int, error) {
	r, err := zip.OpenReader(archivePath)
	if errors.Is(err, zip.ErrInsecurePath) {
		_ = r.Close()
		return 0, fmt.Errorf("kaggle: archive entry escapes destination: %w", err)
	}
	if err != nil {
		return 0, fmt.Errorf("kaggle: open archive: %w", err)
	}
	defer r.Close()

	root, err := filepath.Abs(dest)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, f := range r.File {
		target := filepath.Join(root, f.Name)
		if !strings.HasPrefix(target, root+string(os.PathSeparator)) {
			return count, fmt.Errorf("kaggle: archive entry %q escapes destination", f.Name)
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return count, err
			}
			continue
		}
		if err := extract(f, target); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func extract(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("kaggle: create dir: %w", err)
	}
	src, err := f.Open()
	if err != nil {
		return fmt.Errorf("kaggle: open %q: %w", f.Name, err)
	}
	defer src.Close()

	dst, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("kaggle: create %q: %w", target, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return fmt.Errorf("kaggle: extract %q: %w", f.Name, err)
	}
	return dst.Close()
}
