package scene

import (
	"strings"
	"unicode/utf8"
)

var quoteStripper = strings.NewReplacer(
	`"`, "",
	"“", "", // left double quotation mark
	"”", "", // right double quotation mark
	"„", "",
	"«", "",
	"»", "",
)

// removes double quotes anywhere and single quotes wrapping the whole text.
// apostrophes inside words are kept
func StripQuotes(s string) string {
	s = strings.TrimSpace(quoteStripper.Replace(s))
	s = strings.TrimLeft(s, "'‘")
	s = strings.TrimRight(s, "'’")

	return strings.TrimSpace(s)
}

// greedily word-wraps dialogue into at most maxLines lines of maxChars runes.
// a single word longer than maxChars gets a line of its own; words that do
// not fit in maxLines are dropped
func WrapCaption(dialogue string, maxChars, maxLines int) []string {
	if maxChars < 1 || maxLines < 1 {
		return nil
	}

	words := strings.Fields(StripQuotes(dialogue))
	lines := make([]string, 0, maxLines)
	current := ""

	for _, word := range words {
		if current == "" {
			current = word
			continue
		}

		if utf8.RuneCountInString(current)+1+utf8.RuneCountInString(word) <= maxChars {
			current += " " + word
			continue
		}

		lines = append(lines, current)
		if len(lines) == maxLines {
			return lines
		}

		current = word
	}

	if current != "" {
		lines = append(lines, current)
	}

	return lines
}

// wraps with the default caption budget
func CaptionLines(dialogue string) []string {
	return WrapCaption(dialogue, MaxCaptionChars, MaxCaptionLines)
}
