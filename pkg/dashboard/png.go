package dashboard

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/chromedp/chromedp"
)

// chromeBinaries are the executable names probed for a usable headless
// Chrome. PNG export is skipped when none is installed.
var chromeBinaries = []string{
	"google-chrome",
	"google-chrome-stable",
	"chromium",
	"chromium-browser",
	"headless-shell",
	"chrome",
}

// ChromeFound reports whether a Chrome binary is on PATH, and which.
func ChromeFound() (string, bool) {
	for _, name := range chromeBinaries {
		if path, err := exec.LookPath(name); err == nil {
			return path, true
		}
	}
	return "", false
}

// WritePNG screenshots a rendered dashboard HTML file into a static
// PNG. The echarts canvas paints asynchronously, so the capture waits a
// beat after navigation.
func WritePNG(ctx context.Context, htmlPath, pngPath string) error {
	abs, err := filepath.Abs(htmlPath)
	if err != nil {
		return fmt.Errorf("resolve dashboard path: %w", err)
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var shot []byte
	err = chromedp.Run(browserCtx,
		chromedp.EmulateViewport(1040, 780, chromedp.EmulateScale(2)),
		chromedp.Navigate("file://"+abs),
		chromedp.Sleep(1500*time.Millisecond),
		chromedp.FullScreenshot(&shot, 100),
	)
	if err != nil {
		return fmt.Errorf("screenshot dashboard: %w", err)
	}

	if err := os.WriteFile(pngPath, shot, 0o644); err != nil {
		return fmt.Errorf("write dashboard png: %w", err)
	}
	return nil
}
