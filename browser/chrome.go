package browser

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/chromedp/chromedp"

	"corona-spread-gif/config"
	"corona-spread-gif/utils"
)

// tilesReady is set by the frame page once the Leaflet tile layer has loaded.
const tilesReady = `window.tilesLoaded === true`

// ChromeRasterizer screenshots rendered frame pages with a headless Chrome.
// Each call starts and tears down its own browser process.
type ChromeRasterizer struct {
	chromeBin   string
	width       int
	height      int
	fixedWait   time.Duration
	tileTimeout time.Duration
	logger      *utils.Logger
}

// NewChromeRasterizer creates a rasterizer from the run configuration.
func NewChromeRasterizer(cfg *config.Config, logger *utils.Logger) *ChromeRasterizer {
	return &ChromeRasterizer{
		chromeBin:   findChromeBinary(cfg.ChromeBin),
		width:       cfg.ViewportWidth,
		height:      cfg.ViewportHeight,
		fixedWait:   time.Duration(cfg.TileWaitMs) * time.Millisecond,
		tileTimeout: time.Duration(cfg.TileTimeoutMs) * time.Millisecond,
		logger:      logger,
	}
}

// FileURL converts a local path into a file:// URL.
func FileURL(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String(), nil
}

// Rasterize loads htmlPath, waits for the map tiles and writes a PNG screenshot to imagePath.
func (r *ChromeRasterizer) Rasterize(ctx context.Context, htmlPath, imagePath string) error {
	pageURL, err := FileURL(htmlPath)
	if err != nil {
		return fmt.Errorf("chrome: resolve %q: %w", htmlPath, err)
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("hide-scrollbars", true),
		chromedp.WindowSize(r.width, r.height),
	)
	if r.chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(r.chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	// Suppress chromedp log noise
	taskCtx, cancelTask := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelTask()

	taskCtx, cancelTimeout := context.WithTimeout(taskCtx, r.tileTimeout+r.fixedWait+30*time.Second)
	defer cancelTimeout()

	var png []byte
	var ready bool
	actions := []chromedp.Action{
		chromedp.EmulateViewport(int64(r.width), int64(r.height)),
		chromedp.Navigate(pageURL),
	}
	if r.fixedWait > 0 {
		actions = append(actions, chromedp.Sleep(r.fixedWait))
	} else {
		actions = append(actions, chromedp.Poll(tilesReady, &ready, chromedp.WithPollingTimeout(r.tileTimeout)))
	}
	actions = append(actions, chromedp.CaptureScreenshot(&png))

	start := time.Now()
	if err := chromedp.Run(taskCtx, actions...); err != nil {
		return fmt.Errorf("chrome: screenshot %s: %w", pageURL, err)
	}
	r.logger.Debug("[chrome] %s captured in %v (%d bytes)", filepath.Base(htmlPath), time.Since(start).Round(time.Millisecond), len(png))

	if err := os.WriteFile(imagePath, png, 0644); err != nil {
		return fmt.Errorf("chrome: write %q: %w", imagePath, err)
	}
	return nil
}

// findChromeBinary locates Chrome/Chromium binary.
func findChromeBinary(configured string) string {
	if configured != "" {
		return configured
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
