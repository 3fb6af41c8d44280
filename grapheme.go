package cooked

import (
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// DelimClass classifies a code point for the legacy word-motion
// algorithms (EditBuffer.DeleteWordLeft, MoveWordRight).
type DelimClass int

const (
	DelimSpace DelimClass = iota
	DelimWord
	DelimOther
)

// delimClass classifies the first rune of s the way the console host's
// legacy, non-Unicode-aware word motion does: space, "word" (alphanumeric
// plus underscore, extended here to any Unicode letter/number so the
// classification degrades sensibly on non-ASCII input), or everything else.
func delimClass(s string) DelimClass {
	r := firstRune(s)
	switch {
	case r == ' ' || r == '\t' || r == '\n' || r == '\r':
		return DelimSpace
	case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_':
		return DelimWord
	case unicode.IsLetter(r) || unicode.IsNumber(r):
		return DelimWord
	default:
		return DelimOther
	}
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}

// graphemeNext returns the byte index immediately after the grapheme
// cluster starting at i in text. Returns len(text) if i is already at
// or past the end.
func graphemeNext(text string, i int) int {
	if i < 0 {
		i = 0
	}
	if i >= len(text) {
		return len(text)
	}
	cluster, _, _, _ := uniseg.StepString(text[i:], -1)
	return i + len(cluster)
}

// graphemePrev returns the byte index of the start of the grapheme
// cluster ending at i in text. Returns 0 if i is already at or before
// the start.
func graphemePrev(text string, i int) int {
	if i <= 0 {
		return 0
	}
	if i > len(text) {
		i = len(text)
	}
	// uniseg has no native reverse step; walk forward from the start,
	// tracking the boundary immediately preceding i. Grapheme clusters
	// are rare enough per call that this is cheap relative to a redraw.
	prev := 0
	pos := 0
	state := -1
	rest := text
	for pos < i {
		cluster, next, _, newState := uniseg.StepString(rest, state)
		if pos+len(cluster) > i {
			break
		}
		prev = pos
		pos += len(cluster)
		rest = next
		state = newState
	}
	return prev
}

// graphemeDisplayWidth returns the terminal column width of a single
// grapheme cluster.
func graphemeDisplayWidth(cluster string) int {
	if cluster == "" {
		return 0
	}
	return runewidth.StringWidth(cluster)
}

// stringDisplayWidth returns the total column width of s.
func stringDisplayWidth(s string) int {
	return runewidth.StringWidth(s)
}
