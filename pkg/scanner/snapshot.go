package scanner

// snapshotJS walks the document and returns the raw interactive surface:
// every form control and visible button, with enough attributes for the
// matcher and planner to work from. Classification beyond the obvious input
// types happens Go-side so it stays testable.
const snapshotJS = `(() => {
	const cssPath = (el) => {
		if (el.id) return '#' + CSS.escape(el.id);
		const auto = el.getAttribute('data-automation-id');
		if (auto) return '[data-automation-id="' + auto + '"]';
		const parts = [];
		let cur = el;
		while (cur && cur.nodeType === 1 && parts.length < 6) {
			let part = cur.tagName.toLowerCase();
			if (cur.id) { parts.unshift('#' + CSS.escape(cur.id)); break; }
			const parent = cur.parentElement;
			if (parent) {
				const sibs = Array.from(parent.children).filter(c => c.tagName === cur.tagName);
				if (sibs.length > 1) part += ':nth-of-type(' + (sibs.indexOf(cur) + 1) + ')';
			}
			parts.unshift(part);
			cur = parent;
		}
		return parts.join(' > ');
	};

	const labelFor = (el) => {
		if (el.id) {
			const lab = document.querySelector('label[for="' + CSS.escape(el.id) + '"]');
			if (lab) return lab.innerText.trim();
		}
		const wrap = el.closest('label');
		if (wrap) return wrap.innerText.trim();
		const labelled = el.getAttribute('aria-labelledby');
		if (labelled) {
			const parts = labelled.split(/\s+/).map(id => {
				const ref = document.getElementById(id);
				return ref ? ref.innerText.trim() : '';
			}).filter(Boolean);
			if (parts.length) return parts.join(' ');
		}
		let prev = el.previousElementSibling;
		if (prev && prev.tagName === 'LABEL') return prev.innerText.trim();
		return '';
	};

	const visible = (el) => {
		const r = el.getBoundingClientRect();
		if (r.width === 0 || r.height === 0) return false;
		const st = window.getComputedStyle(el);
		return st.visibility !== 'hidden' && st.display !== 'none';
	};

	const fieldSel = 'input, select, textarea, [contenteditable="true"], [role="radio"], [role="combobox"], [role="listbox"]';
	const fields = [];
	document.querySelectorAll(fieldSel).forEach((el, i) => {
		const tag = el.tagName.toLowerCase();
		const r = el.getBoundingClientRect();
		let value = '';
		if (tag === 'select') {
			const opt = el.selectedOptions && el.selectedOptions[0];
			value = opt && opt.value !== '' ? opt.text.trim() : '';
		} else if (el.getAttribute('contenteditable') === 'true') {
			value = (el.innerText || '').trim();
		} else if (el.getAttribute('role') === 'radio') {
			value = el.getAttribute('aria-checked') === 'true' ? 'checked' : '';
		} else if (el.type === 'checkbox' || el.type === 'radio') {
			value = el.checked ? 'checked' : '';
		} else {
			value = (el.value || '').trim();
		}
		let options = null;
		if (tag === 'select') {
			options = Array.from(el.options).map(o => o.text.trim()).filter(Boolean);
		}
		fields.push({
			selector: cssPath(el),
			automationId: el.getAttribute('data-automation-id') || '',
			name: el.getAttribute('name') || '',
			domId: el.id || '',
			tag: tag,
			inputType: (el.getAttribute('type') || '').toLowerCase(),
			role: el.getAttribute('role') || '',
			contentEditable: el.getAttribute('contenteditable') === 'true',
			required: el.required === true || el.getAttribute('aria-required') === 'true',
			visible: visible(el),
			disabled: el.disabled === true || el.getAttribute('aria-disabled') === 'true',
			label: labelFor(el),
			placeholder: el.getAttribute('placeholder') || '',
			ariaLabel: el.getAttribute('aria-label') || '',
			autocomplete: el.getAttribute('autocomplete') || '',
			ariaAutocomplete: el.getAttribute('aria-autocomplete') || '',
			haspopup: el.getAttribute('aria-haspopup') || '',
			value: value,
			options: options,
			radioGroup: (el.type === 'radio' || el.getAttribute('role') === 'radio') ? (el.name || el.getAttribute('data-radio-group') || '') : '',
			box: { x: r.x, y: r.y, width: r.width, height: r.height },
			absoluteY: r.y + window.scrollY,
		});
	});

	const buttons = [];
	document.querySelectorAll('button, input[type="submit"], input[type="button"], [role="button"]').forEach(el => {
		if (!visible(el)) return;
		const r = el.getBoundingClientRect();
		buttons.push({
			selector: cssPath(el),
			text: (el.innerText || el.value || '').trim().slice(0, 120),
			type: el.getAttribute('type') || '',
			visible: true,
			box: { x: r.x, y: r.y, width: r.width, height: r.height },
			absoluteY: r.y + window.scrollY,
		});
	});

	return { url: location.href, title: document.title, fields: fields, buttons: buttons };
})()`
