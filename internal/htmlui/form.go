package htmlui

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

// FillForm sets each named control to the given value. Controls absent
// from the current form are skipped: the same field map is reused across
// form shapes that vary by role. Dispatch follows the control kind: a
// select receives an option selection by value, a checkbox is checked or
// unchecked based on the value's truthiness, anything else is filled as
// text.
func FillForm(page playwright.Page, fields map[string]any) error {
	for name, value := range fields {
		control := page.Locator(fmt.Sprintf(`[name=%q]`, name))
		n, err := control.Count()
		if err != nil {
			return fmt.Errorf("locating field %q: %w", name, err)
		}
		if n == 0 {
			continue
		}

		tag, err := control.Evaluate("el => el.tagName.toLowerCase()", nil)
		if err != nil {
			return fmt.Errorf("inspecting field %q: %w", name, err)
		}

		switch tag {
		case "select":
			v := fmt.Sprint(value)
			if _, err := control.SelectOption(playwright.SelectOptionValues{Values: &[]string{v}}); err != nil {
				return fmt.Errorf("selecting %q on field %q: %w", v, name, err)
			}
		case "input":
			typ, _ := control.GetAttribute("type")
			if typ == "checkbox" {
				if err := control.SetChecked(truthy(value)); err != nil {
					return fmt.Errorf("checking field %q: %w", name, err)
				}
				continue
			}
			if err := control.Fill(fmt.Sprint(value)); err != nil {
				return fmt.Errorf("filling field %q: %w", name, err)
			}
		default:
			if err := control.Fill(fmt.Sprint(value)); err != nil {
				return fmt.Errorf("filling field %q: %w", name, err)
			}
		}
	}
	return nil
}

// Submit triggers the current form's submit affordance and waits for the
// outcome. Markup varies across StrataHub's forms, so discovery falls
// back from an explicit submit control to the last button inside a form
// to the last visible button anywhere. Some submissions swap a fragment
// instead of navigating; a navigation timeout therefore falls back to the
// settle wait rather than failing.
func Submit(page playwright.Page, navTimeout, settleTimeout time.Duration) error {
	btn := page.Locator(`button[type="submit"]`).First()
	n, err := btn.Count()
	if err != nil {
		return fmt.Errorf("locating submit button: %w", err)
	}
	if n == 0 {
		btn = page.Locator("form button").Last()
		if n, err = btn.Count(); err != nil {
			return fmt.Errorf("locating submit button: %w", err)
		}
	}
	if n == 0 {
		btn = page.Locator("button:visible").Last()
	}
	if err := btn.Click(); err != nil {
		return fmt.Errorf("clicking submit button: %w", err)
	}

	err = page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateNetworkidle,
		Timeout: playwright.Float(millis(navTimeout)),
	})
	if err != nil {
		Settle(page, settleTimeout)
	}
	return nil
}

// CloseModal dismisses an open modal via its close affordance, pressing
// Escape when none is visible, then waits for the modal to disappear.
func CloseModal(page playwright.Page) error {
	btn := page.Locator(`[data-modal-close], .modal-close, button:has-text("Close")`).First()
	n, err := btn.Count()
	if err != nil {
		return fmt.Errorf("locating modal close button: %w", err)
	}
	visible := false
	if n > 0 {
		visible, _ = btn.IsVisible()
	}
	if visible {
		if err := btn.Click(); err != nil {
			return fmt.Errorf("clicking modal close button: %w", err)
		}
	} else if err := page.Keyboard().Press("Escape"); err != nil {
		return fmt.Errorf("pressing escape: %w", err)
	}
	page.WaitForTimeout(millis(settlePad))
	return nil
}

// truthy interprets a form value as a checkbox state.
func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != "" && v != "false" && v != "0"
	case int:
		return v != 0
	default:
		return true
	}
}
