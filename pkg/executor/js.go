package executor

import "fmt"

// jsOutcome mirrors the object every fill snippet resolves to.
type jsOutcome struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
}

// jsHelpers is injected ahead of every fill snippet. setNativeValue writes
// through the property setter the element's native prototype defines,
// bypassing any reactive-framework override of that setter; fireEvents then
// dispatches the synthetic events those frameworks observe. This is a
// browser-environment technique and must stay verbatim in the DOM layer.
const jsHelpers = `
function setNativeValue(el, value) {
	const proto = Object.getPrototypeOf(el);
	const desc = Object.getOwnPropertyDescriptor(proto, 'value');
	if (desc && desc.set) { desc.set.call(el, value); } else { el.value = value; }
}
function fireEvents(el, names) {
	for (const n of names) { el.dispatchEvent(new Event(n, { bubbles: true })); }
}
function norm(s) { return (s || '').trim().toLowerCase(); }
`

// fillTextJS writes a value into a text-like input. A value already equal to
// the requested one (case-insensitive, trimmed) reports already_filled and the
// element is left untouched.
func fillTextJS(selector, value string) string {
	return fmt.Sprintf(`(() => {%s
	const el = document.querySelector(%q);
	if (!el) return { code: 'not_found', detail: 'no element for selector' };
	if (norm(el.value) === norm(%q) && norm(el.value) !== '') {
		return { code: 'already_filled', detail: 'value already present' };
	}
	setNativeValue(el, %q);
	fireEvents(el, ['input', 'change', 'blur']);
	return { code: 'filled', detail: '' };
})()`, jsHelpers, selector, value, value)
}

// fillContentEditableJS writes text content into a contenteditable region.
func fillContentEditableJS(selector, value string) string {
	return fmt.Sprintf(`(() => {%s
	const el = document.querySelector(%q);
	if (!el) return { code: 'not_found', detail: 'no element for selector' };
	if (norm(el.textContent) === norm(%q) && norm(el.textContent) !== '') {
		return { code: 'already_filled', detail: 'value already present' };
	}
	el.focus();
	el.textContent = %q;
	fireEvents(el, ['input', 'blur']);
	return { code: 'filled', detail: '' };
})()`, jsHelpers, selector, value, value)
}

// selectOptionJS selects the <option> with the given visible text. Option
// scoring happens Go-side over the scanned option list; this snippet only
// commits the winner.
func selectOptionJS(selector, optionText string) string {
	return fmt.Sprintf(`(() => {%s
	const el = document.querySelector(%q);
	if (!el) return { code: 'not_found', detail: 'no element for selector' };
	const want = norm(%q);
	for (const opt of el.options) {
		if (norm(opt.textContent) === want || norm(opt.value) === want) {
			setNativeValue(el, opt.value);
			fireEvents(el, ['change', 'input']);
			return { code: 'filled', detail: opt.textContent.trim() };
		}
	}
	return { code: 'no_match', detail: 'scored option missing from live DOM' };
})()`, jsHelpers, selector, optionText)
}

// fillRadioJS picks an option inside a radio group. Native groups are gathered
// by shared name; ARIA groups by the subtree under the group element. Each
// option's visible label comes from an associated label element, a parent
// label wrapper, or adjacent sibling text, in that order; matching tries exact
// equality, then prefix, then substring.
func fillRadioJS(selector, groupKey, value string, aria bool) string {
	return fmt.Sprintf(`(() => {%s
	function labelFor(el) {
		if (el.id) {
			const lbl = document.querySelector('label[for="' + CSS.escape(el.id) + '"]');
			if (lbl && lbl.textContent.trim()) return lbl.textContent.trim();
		}
		const parent = el.closest('label');
		if (parent && parent.textContent.trim()) return parent.textContent.trim();
		const sib = el.nextElementSibling || el.previousElementSibling;
		if (sib && sib.textContent.trim()) return sib.textContent.trim();
		return el.getAttribute('aria-label') || '';
	}
	let options = [];
	if (%t) {
		const group = document.querySelector(%q);
		if (!group) return { code: 'not_found', detail: 'no aria radio group' };
		options = Array.from(group.querySelectorAll('[role="radio"]'));
	} else {
		options = Array.from(document.querySelectorAll('input[type="radio"][name="' + CSS.escape(%q) + '"]'));
		if (options.length === 0) {
			const el = document.querySelector(%q);
			if (el) options = [el];
		}
	}
	if (options.length === 0) return { code: 'not_found', detail: 'radio group empty' };
	const want = norm(%q);
	const labeled = options.map(el => ({ el: el, label: norm(labelFor(el)) }));
	let winner = labeled.find(o => o.label === want) ||
		labeled.find(o => o.label.startsWith(want)) ||
		labeled.find(o => o.label.includes(want));
	if (!winner) return { code: 'no_match', detail: 'no radio label matched' };
	winner.el.click();
	fireEvents(winner.el, ['change']);
	return { code: 'filled', detail: winner.label };
})()`, jsHelpers, aria, selector, groupKey, selector, value)
}

// checkCheckboxJS checks a checkbox, idempotently: an already checked box is
// success without a click.
func checkCheckboxJS(selector string) string {
	return fmt.Sprintf(`(() => {%s
	const el = document.querySelector(%q);
	if (!el) return { code: 'not_found', detail: 'no element for selector' };
	if (el.checked) return { code: 'filled', detail: 'already checked' };
	el.click();
	return { code: 'filled', detail: '' };
})()`, jsHelpers, selector)
}

// elementExistsJS guards driver-level interactions (clicks, keystrokes) that
// have no DOM-side outcome reporting of their own.
func elementExistsJS(selector string) string {
	return fmt.Sprintf(`(() => {%s
	const el = document.querySelector(%q);
	if (!el) return { code: 'not_found', detail: 'no element for selector' };
	return { code: 'filled', detail: '' };
})()`, jsHelpers, selector)
}

// typeaheadJS writes the query through the native setter so the widget's
// suggestion list opens, handled separately from the option pick because the
// list renders asynchronously.
func typeaheadFillJS(selector, value string) string {
	return fmt.Sprintf(`(() => {%s
	const el = document.querySelector(%q);
	if (!el) return { code: 'not_found', detail: 'no element for selector' };
	el.focus();
	setNativeValue(el, %q);
	fireEvents(el, ['input']);
	return { code: 'filled', detail: '' };
})()`, jsHelpers, selector, value)
}

// typeaheadPickJS clicks the first open suggestion matching the value,
// preferring exact, then prefix, then substring.
func typeaheadPickJS(value string) string {
	return fmt.Sprintf(`(() => {%s
	const want = norm(%q);
	const options = Array.from(document.querySelectorAll(
		'[role="listbox"] [role="option"], [role="option"], ul[class*="suggest"] li, ul[class*="autocomplete"] li'
	)).filter(el => el.offsetParent !== null);
	if (options.length === 0) return { code: 'no_match', detail: 'no suggestions appeared' };
	const labeled = options.map(el => ({ el: el, label: norm(el.textContent) }));
	let winner = labeled.find(o => o.label === want) ||
		labeled.find(o => o.label.startsWith(want)) ||
		labeled.find(o => o.label.includes(want));
	if (!winner) return { code: 'no_match', detail: 'no suggestion matched' };
	winner.el.click();
	return { code: 'filled', detail: winner.label };
})()`, jsHelpers, value)
}

// dropdownPopupJS inspects the page after a dropdown trigger click: whether a
// popup opened and whether it contains an inline filter input.
func dropdownPopupJS() string {
	return fmt.Sprintf(`(() => {%s
	const popups = Array.from(document.querySelectorAll(
		'[role="listbox"], [role="menu"], ul[class*="dropdown"], div[class*="dropdown"][class*="open"], div[class*="popup"], div[class*="menu"]'
	)).filter(el => el.offsetParent !== null);
	if (popups.length === 0) return { open: false, hasFilter: false };
	const filter = popups[0].querySelector('input[type="text"], input[type="search"], input:not([type])');
	if (filter && filter.offsetParent !== null) {
		filter.focus();
		return { open: true, hasFilter: true };
	}
	return { open: true, hasFilter: false };
})()`, jsHelpers)
}

// dropdownClearFilterJS empties the popup's filter input between search terms.
func dropdownClearFilterJS() string {
	return fmt.Sprintf(`(() => {%s
	const filter = document.activeElement;
	if (filter && filter.tagName === 'INPUT') {
		setNativeValue(filter, '');
		fireEvents(filter, ['input']);
	}
	return { code: 'filled', detail: '' };
})()`, jsHelpers)
}

// dropdownPickJS searches the open popup's option elements for a term using
// exact, prefix, then substring heuristics.
func dropdownPickJS(term string) string {
	return fmt.Sprintf(`(() => {%s
	const want = norm(%q);
	const options = Array.from(document.querySelectorAll(
		'[role="listbox"] [role="option"], [role="option"], [role="menuitem"], ul[class*="dropdown"] li, div[class*="dropdown"] li'
	)).filter(el => el.offsetParent !== null);
	if (options.length === 0) return { code: 'no_match', detail: 'no options visible' };
	const labeled = options.map(el => ({ el: el, label: norm(el.textContent) }));
	let winner = labeled.find(o => o.label === want) ||
		labeled.find(o => o.label.startsWith(want)) ||
		labeled.find(o => o.label.includes(want));
	if (!winner) return { code: 'no_match', detail: 'no option matched term' };
	winner.el.click();
	return { code: 'filled', detail: winner.label };
})()`, jsHelpers, term)
}

// bodyClickJS clicks empty whitespace to dismiss a popup after a successful
// selection. It targets the document body directly instead of coordinates so
// it cannot mis-click unrelated UI.
func bodyClickJS() string {
	return fmt.Sprintf(`(() => {%s
	document.body.click();
	return { code: 'filled', detail: '' };
})()`, jsHelpers)
}
