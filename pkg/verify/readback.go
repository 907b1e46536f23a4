package verify

import "fmt"

// readbackJS mirrors the fill routines: each field type reads its current
// value back out of the DOM the same way the fill wrote it. The snippet
// resolves to { value: string } and never throws for a missing element; an
// absent element reads back as empty, which the comparison rules then fail.
func readbackJS(selector, groupKey, placeholder string, kind readKind) string {
	common := `
	function norm(s) { return (s || '').trim(); }
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
	}`

	switch kind {
	case readSelect:
		return fmt.Sprintf(`(() => {%s
	const el = document.querySelector(%q);
	if (!el || el.selectedIndex < 0) return { value: '' };
	const opt = el.options[el.selectedIndex];
	return { value: norm(opt ? opt.textContent : '') };
})()`, common, selector)
	case readRadio:
		return fmt.Sprintf(`(() => {%s
	let checked = document.querySelector('input[type="radio"][name="' + CSS.escape(%q) + '"]:checked');
	if (!checked) {
		const group = document.querySelector(%q);
		if (group) checked = group.querySelector('[role="radio"][aria-checked="true"]');
	}
	if (!checked) return { value: '' };
	return { value: norm(labelFor(checked)) };
})()`, common, groupKey, selector)
	case readCheckbox:
		return fmt.Sprintf(`(() => {%s
	const el = document.querySelector(%q);
	if (!el) return { value: '' };
	return { value: el.checked ? 'checked' : 'unchecked' };
})()`, common, selector)
	case readDropdownText:
		// Custom dropdowns display the selection as trigger text; placeholder
		// text must not read back as a value.
		return fmt.Sprintf(`(() => {%s
	const el = document.querySelector(%q);
	if (!el) return { value: '' };
	const text = norm(el.textContent) || norm(el.value);
	if (text === norm(%q)) return { value: '' };
	return { value: text };
})()`, common, selector, placeholder)
	case readContentEditable:
		return fmt.Sprintf(`(() => {%s
	const el = document.querySelector(%q);
	if (!el) return { value: '' };
	return { value: norm(el.textContent) };
})()`, common, selector)
	default:
		return fmt.Sprintf(`(() => {%s
	const el = document.querySelector(%q);
	if (!el) return { value: '' };
	return { value: norm(el.value) };
})()`, common, selector)
	}
}

type readKind int

const (
	readValue readKind = iota
	readSelect
	readRadio
	readCheckbox
	readDropdownText
	readContentEditable
)
