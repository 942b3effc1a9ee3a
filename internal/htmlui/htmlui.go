// Package htmlui drives StrataHub's server-rendered, htmx-enhanced pages.
//
// The application swaps page fragments in place rather than performing a
// full navigation for most interactions, so helpers that follow an
// interaction wait for the in-flight request marker on <body> to clear
// before touching the DOM. Helpers report the absence of an optional
// element as a value, not an error; callers decide whether absence is
// fatal.
package htmlui

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

const (
	// htmx adds this class to <body> while a request is in flight.
	requestMarker = "htmx-request"

	// settlePad is the grace period applied after the marker clears; the
	// DOM can still be mutating at that point.
	settlePad = 300 * time.Millisecond

	// searchDebounce covers the delay between typing into a search box and
	// htmx issuing the request.
	searchDebounce = 500 * time.Millisecond
)

// Settle blocks until in-flight partial updates have completed, then pads
// with a fixed grace period. A timeout is not an error: actions that
// trigger a full navigation never set the marker, so the poll is allowed
// to expire quietly.
func Settle(page playwright.Page, timeout time.Duration) {
	_, _ = page.WaitForFunction(
		fmt.Sprintf("() => !document.body.classList.contains(%q)", requestMarker),
		nil,
		playwright.PageWaitForFunctionOptions{Timeout: playwright.Float(millis(timeout))},
	)
	page.WaitForTimeout(millis(settlePad))
}

func millis(d time.Duration) float64 {
	return float64(d.Milliseconds())
}
