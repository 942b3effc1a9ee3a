// Package testbrowser provisions the browser session shared by the e2e
// suite.
package testbrowser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adroitgames/stratahub-e2e/internal/config"
	"github.com/playwright-community/playwright-go"
)

// Session owns the single browser, context and page used for an entire
// test run. StrataHub journeys authenticate and log out in a fixed order
// against the same page, so at most one page is ever live and all use is
// strictly serial.
type Session struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
}

// Start launches chromium with a single context and page. The returned
// cleanup tears the whole stack down.
func Start(cfg config.Config) (*Session, func(), error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, nil, fmt.Errorf("running playwright: %w", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
		Args:     []string{"--window-position=0,0"},
	})
	if err != nil {
		_ = pw.Stop()
		return nil, nil, fmt.Errorf("launching chromium: %w", err)
	}
	context, err := browser.NewContext(playwright.BrowserNewContextOptions{
		BaseURL: playwright.String(cfg.BaseURL),
	})
	if err != nil {
		_ = browser.Close()
		_ = pw.Stop()
		return nil, nil, fmt.Errorf("creating browser context: %w", err)
	}
	page, err := context.NewPage()
	if err != nil {
		_ = context.Close()
		_ = browser.Close()
		_ = pw.Stop()
		return nil, nil, fmt.Errorf("creating page: %w", err)
	}
	if err := page.SetViewportSize(1700, 1000); err != nil {
		_ = context.Close()
		_ = browser.Close()
		_ = pw.Stop()
		return nil, nil, fmt.Errorf("setting viewport: %w", err)
	}

	// Accept any javascript dialog that pops up, e.g. delete
	// confirmations. The handler must be in place before the triggering
	// click.
	page.OnDialog(func(dialog playwright.Dialog) {
		_ = dialog.Accept()
	})

	s := &Session{pw: pw, browser: browser, context: context, page: page}
	cleanup := func() {
		_ = s.page.Close()
		_ = s.context.Close()
		_ = s.browser.Close()
		_ = s.pw.Stop()
	}
	return s, cleanup, nil
}

// Page returns the shared page. Every journey operates on this same tab.
func (s *Session) Page() playwright.Page {
	return s.page
}

// CaptureFailure saves a screenshot for debugging purposes if the test
// has failed.
func (s *Session) CaptureFailure(t *testing.T) {
	t.Helper()

	if !t.Failed() {
		return
	}

	fname := fmt.Sprintf("%s_failure.png", strings.ReplaceAll(t.Name(), "/", "_"))
	path := filepath.Join("screenshots", fname)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Logf("failed to make screenshots directory: %s", err.Error())
		return
	}
	if _, err := s.page.Screenshot(playwright.PageScreenshotOptions{Path: playwright.String(path)}); err != nil {
		t.Logf("failed to take screenshot: %s", err.Error())
	}
}
