package htmlui

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"
)

const tableBody = "table tbody"

// RowCount returns the number of rows in the page's first table body.
func RowCount(page playwright.Page) (int, error) {
	return page.Locator(tableBody + " tr").Count()
}

// Row returns the locator for a table row by zero-based index.
func Row(page playwright.Page, index int) playwright.Locator {
	return page.Locator(tableBody + " tr").Nth(index)
}

// RowWithText scans table rows top to bottom and returns the zero-based
// index of the first whose visible text contains target. Absence is a
// valid outcome, e.g. when verifying a deletion, and is reported via ok
// rather than an error.
func RowWithText(page playwright.Page, target string) (int, bool, error) {
	rows := page.Locator(tableBody + " tr")
	n, err := rows.Count()
	if err != nil {
		return 0, false, fmt.Errorf("counting table rows: %w", err)
	}
	for i := 0; i < n; i++ {
		text, err := rows.Nth(i).InnerText()
		if err != nil {
			return 0, false, fmt.Errorf("reading row %d: %w", i, err)
		}
		if strings.Contains(text, target) {
			return i, true, nil
		}
	}
	return 0, false, nil
}

// ActionNotFoundError reports that none of the row-action affordance
// conventions matched within a table row.
type ActionNotFoundError struct {
	Action string
	Row    int
}

func (e *ActionNotFoundError) Error() string {
	return fmt.Sprintf("no %q action found in row %d", e.Action, e.Row)
}

// rowActionStrategies is the ordered list of affordance conventions used
// across StrataHub's tables. Entity types are not consistent about
// whether an action is an anchor, a button, a data attribute or a class.
var rowActionStrategies = []struct {
	name     string
	selector func(action string) string
}{
	{"anchor text", func(a string) string { return fmt.Sprintf(`a:has-text(%q)`, a) }},
	{"button text", func(a string) string { return fmt.Sprintf(`button:has-text(%q)`, a) }},
	{"data attribute", func(a string) string { return fmt.Sprintf(`[data-action=%q]`, a) }},
	{"class convention", func(a string) string { return ".btn-" + a }},
}

// ClickRowAction invokes a named action (edit, delete, view, ...) within
// a table row, trying each affordance convention in order and clicking
// the first match. It returns an *ActionNotFoundError when no convention
// matches; callers decide whether that is fatal.
func ClickRowAction(page playwright.Page, row int, action string) error {
	r := Row(page, row)
	for _, strat := range rowActionStrategies {
		el := r.Locator(strat.selector(action))
		n, err := el.Count()
		if err != nil {
			return fmt.Errorf("%s lookup for %q in row %d: %w", strat.name, action, row, err)
		}
		if n > 0 {
			return el.First().Click()
		}
	}
	return &ActionNotFoundError{Action: action, Row: row}
}

// EmailInRow returns the text of the first cell in the row containing an
// "@", normalized to a bare address where the cell holds other content
// too.
func EmailInRow(row playwright.Locator) (string, bool, error) {
	cells := row.Locator("td")
	n, err := cells.Count()
	if err != nil {
		return "", false, fmt.Errorf("counting cells: %w", err)
	}
	for i := 0; i < n; i++ {
		text, err := cells.Nth(i).InnerText()
		if err != nil {
			return "", false, fmt.Errorf("reading cell %d: %w", i, err)
		}
		text = strings.TrimSpace(text)
		if strings.Contains(text, "@") {
			return EmailIn(text), true, nil
		}
	}
	return "", false, nil
}

// HarvestEmail extracts a representative email from the page's table. With
// an empty rowFilter only the first row is inspected; otherwise every row
// is scanned for one whose full text contains rowFilter
// (case-insensitively), e.g. "analyst" to pick a user by role. Absence is
// a valid outcome.
func HarvestEmail(page playwright.Page, rowFilter string) (string, bool, error) {
	rows := page.Locator(tableBody + " tr")
	n, err := rows.Count()
	if err != nil {
		return "", false, fmt.Errorf("counting table rows: %w", err)
	}
	if n == 0 {
		return "", false, nil
	}

	if rowFilter == "" {
		return EmailInRow(rows.First())
	}

	rowFilter = strings.ToLower(rowFilter)
	for i := 0; i < n; i++ {
		row := rows.Nth(i)
		text, err := row.InnerText()
		if err != nil {
			return "", false, fmt.Errorf("reading row %d: %w", i, err)
		}
		if !strings.Contains(strings.ToLower(text), rowFilter) {
			continue
		}
		if email, ok, err := EmailInRow(row); err != nil || ok {
			return email, ok, err
		}
	}
	return "", false, nil
}
