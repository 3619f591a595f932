package docgen

import "slices"

// RenderField renders one "<label>: <value>" line for spec. A column missing
// from the row renders as an empty value. Bold and blank-after are resolved
// against the label as typed, never the cased display form, so changing the
// case mode cannot change which fields are emphasised.
//
// The second return reports whether a blank line follows.
func RenderField(row Row, spec FieldSpec, cfg RenderConfig, size int) (StyledLine, bool) {
	raw, _ := row.Get(spec.Column)
	value := ApplyCase(Normalize(raw), cfg.Case)
	label := spec.label()

	line := StyledLine{
		Text:   ApplyCase(label, cfg.Case) + ": " + value,
		SizePt: size,
		Bold:   spec.Bold || slices.Contains(cfg.BoldLabels, label),
	}
	return line, spec.BlankAfter || slices.Contains(cfg.BlankAfterLabels, label)
}

// RenderLabel renders a bare heading line such as "TO:".
func RenderLabel(text string, size int, bold bool) StyledLine {
	return StyledLine{Text: text, SizePt: size, Bold: bold}
}
