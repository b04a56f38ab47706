// Package layout wraps cell text to a pixel budget and derives the height of
// every grid row from its wrapped content.
package layout

import "strings"

// Measurer is the part of a font face the layout needs. *fonts.Face
// satisfies it.
type Measurer interface {
	Measure(s string) int
	LineHeight() int
	Ascent() int
}

// Wrap breaks text into display lines no wider than maxWidth.
//
// Words are accumulated greedily. A line that is still too wide can only hold
// a single word; it is split between runes instead. A rune wider than maxWidth
// on its own still gets a line. Blank text yields no lines.
func Wrap(text string, maxWidth int, m Measurer) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if m.Measure(candidate) <= maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	lines = append(lines, current)

	if len(lines) == 1 {
		if m.Measure(lines[0]) > maxWidth {
			return splitRunes(lines[0], maxWidth, m)
		}
		return lines
	}

	out := lines[:0:0]
	for _, line := range lines {
		if m.Measure(line) > maxWidth {
			out = append(out, splitRunes(line, maxWidth, m)...)
			continue
		}
		out = append(out, line)
	}
	return out
}

// splitRunes breaks s between runes so that each line fits maxWidth.
func splitRunes(s string, maxWidth int, m Measurer) []string {
	var (
		lines   []string
		current strings.Builder
	)
	for _, r := range s {
		next := current.String() + string(r)
		if current.Len() == 0 || m.Measure(next) <= maxWidth {
			current.WriteRune(r)
			continue
		}
		lines = append(lines, current.String())
		current.Reset()
		current.WriteRune(r)
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return lines
}
