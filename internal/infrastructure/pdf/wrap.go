package pdf

import "strings"

// Measurer reports the rendered width of a string under the active font, in
// the same unit as the wrap bound. Injecting it keeps the wrapping algorithm
// independent of the canvas and testable with a deterministic stand-in.
type Measurer func(s string) float64

// WrapText splits text into lines whose rendered width stays within maxWidth,
// breaking at spaces only. A single word wider than the bound gets its own
// line untruncated; empty input yields one empty line so the fixed row rhythm
// is preserved.
func WrapText(text string, maxWidth float64, measure Measurer) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		candidate := line + " " + word
		if measure(candidate) > maxWidth {
			lines = append(lines, line)
			line = word
			continue
		}
		line = candidate
	}
	return append(lines, line)
}

// descriptionSplitTarget is the soft character count after which the invoice
// item description spills onto a second line.
const descriptionSplitTarget = 27

// SplitDescription breaks an item description into at most two lines, cutting
// at the first space past the soft target. Short descriptions keep an empty
// second line.
func SplitDescription(desc string) (string, string) {
	if len(desc) <= descriptionSplitTarget {
		return desc, ""
	}
	at := strings.Index(desc[descriptionSplitTarget:], " ")
	if at < 0 {
		return desc, ""
	}
	at += descriptionSplitTarget
	return desc[:at], desc[at+1:]
}
