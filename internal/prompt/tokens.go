// ABOUTME: Advisory token estimate shown next to the generated prompt.
// ABOUTME: Counts UTF-16 code units: non-whitespace at ~4 per token, whitespace at ~2 per token.
package prompt

import "unicode/utf16"

// EstimateTokens returns ceil(nonWhitespace/4) + floor(whitespace/2), where
// both counts are UTF-16 code units so characters outside the BMP count twice.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	var ws, nonWS int
	for _, r := range text {
		if isSpace(r) {
			ws++
			continue
		}
		if n := utf16.RuneLen(r); n > 0 {
			nonWS += n
		} else {
			nonWS++
		}
	}
	return (nonWS+3)/4 + ws/2
}

// isSpace reports whether r is ASCII whitespace, a Zs space separator, a line
// or paragraph separator, or U+FEFF. U+0085 is not whitespace here.
func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ',
		'\u00a0', '\u1680', '\u2028', '\u2029', '\u202f', '\u205f', '\u3000', '\ufeff':
		return true
	}
	return r >= '\u2000' && r <= '\u200a'
}
