package htmlui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/playwright-community/playwright-go"
)

// searchSelectors is the ordered list of conventions for locating a list
// page's search box.
var searchSelectors = []string{
	`input[type="search"]`,
	`input[name="q"]`,
	`input[placeholder*="earch"]`,
	`input[hx-get]`,
}

// Search types into the list page's search box, waits out the htmx
// debounce and settle, and reports whether target appears in the updated
// page. Pages without a visible search box fall through to a plain
// content check.
func Search(page playwright.Page, target string, settleTimeout time.Duration) (bool, error) {
	for _, sel := range searchSelectors {
		el := page.Locator(sel)
		n, err := el.Count()
		if err != nil {
			return false, fmt.Errorf("locating search box %q: %w", sel, err)
		}
		if n == 0 {
			continue
		}
		if visible, _ := el.First().IsVisible(); !visible {
			continue
		}
		if err := typeSearch(page, el.First(), target, settleTimeout); err != nil {
			return false, err
		}
		break
	}

	content, err := page.Content()
	if err != nil {
		return false, fmt.Errorf("reading page content: %w", err)
	}
	return strings.Contains(content, target), nil
}

// SearchBox fills a specific search input, addressed by selector, and
// waits for the filtered list to settle. Pages are not required to carry
// the input; a missing one is skipped silently so callers can fall back
// to scanning the unfiltered list.
func SearchBox(page playwright.Page, selector, target string, settleTimeout time.Duration) error {
	input := page.Locator(selector)
	n, err := input.Count()
	if err != nil {
		return fmt.Errorf("locating search box %q: %w", selector, err)
	}
	if n == 0 {
		return nil
	}
	return typeSearch(page, input.First(), target, settleTimeout)
}

// typeSearch fills the input then nudges it with a key press: the htmx
// search trigger listens on keyup, which Fill alone does not produce.
func typeSearch(page playwright.Page, input playwright.Locator, target string, settleTimeout time.Duration) error {
	if err := input.Fill(target); err != nil {
		return fmt.Errorf("filling search box: %w", err)
	}
	if err := input.Press("Space"); err != nil {
		return fmt.Errorf("nudging search box: %w", err)
	}
	if err := input.Press("Backspace"); err != nil {
		return fmt.Errorf("nudging search box: %w", err)
	}
	page.WaitForTimeout(millis(searchDebounce))
	Settle(page, settleTimeout)
	return nil
}

var errNotListed = errors.New("item not listed")

// WaitForItemInList navigates to a list view and polls until target is
// rendered somewhere on the page. Newly created records can land beyond
// the first page of a paginated, multi-tenant list, so each attempt also
// tries a "Last" page affordance before backing off and reloading. A
// still-missing item after all attempts is a valid result, not an error.
func WaitForItemInList(page playwright.Page, target, listURL string, attempts int, settleTimeout time.Duration) (bool, error) {
	if attempts < 1 {
		attempts = 1
	}

	check := func() error {
		if _, err := page.Goto(listURL); err != nil {
			return backoff.Permanent(fmt.Errorf("navigating to %s: %w", listURL, err))
		}
		_ = page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
			State:   playwright.LoadStateNetworkidle,
			Timeout: playwright.Float(millis(settleTimeout)),
		})
		Settle(page, settleTimeout)

		content, err := page.Content()
		if err != nil {
			return backoff.Permanent(fmt.Errorf("reading page content: %w", err))
		}
		if strings.Contains(content, target) {
			return nil
		}

		// a fresh record may have landed on the final page
		last := page.Locator(`a:has-text("Last"), button:has-text("Last")`)
		if n, err := last.Count(); err == nil && n > 0 {
			if err := last.First().Click(); err == nil {
				Settle(page, settleTimeout)
				if content, err := page.Content(); err == nil && strings.Contains(content, target) {
					return nil
				}
			}
		}
		return errNotListed
	}

	policy := backoff.WithMaxRetries(backoff.NewConstantBackOff(500*time.Millisecond), uint64(attempts-1))
	err := backoff.Retry(check, policy)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, errNotListed):
		return false, nil
	default:
		return false, err
	}
}
