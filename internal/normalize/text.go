package normalize

import (
	"strings"
	"unicode"
)

// Filler words carry no identity in an ingredient name. They are stripped
// before token overlap is computed so "Pale Ale Malt" and "Pale Ale" compare
// equal on content. Deliberately short: words like "ale" and "pale" stay,
// because for yeasts and malts they are load-bearing ("American Ale" vs
// "English Ale" must not collapse).
var fillerWords = map[string]bool{
	"malt":    true,
	"malts":   true,
	"malted":  true,
	"grain":   true,
	"hop":     true,
	"hops":    true,
	"yeast":   true,
	"the":     true,
	"and":     true,
	"of":      true,
	"de":      true,
	"brewing": true,
	"brewers": true,
}

// Canonical lowercases, trims and collapses internal whitespace. Punctuation
// is preserved; canonical forms are compared whole (equality, containment),
// token-level comparison goes through Tokens.
func Canonical(raw string) string {
	return strings.Join(strings.Fields(strings.ToLower(raw)), " ")
}

// Tokens splits a name into lowercase tokens on whitespace, hyphens and
// slashes, trimming any other punctuation from the token edges. "Safale
// US-05" becomes [safale us 05]; "W-34/70" becomes [w 34 70].
func Tokens(raw string) []string {
	lower := strings.ToLower(raw)
	fields := strings.FieldsFunc(lower, func(r rune) bool {
		return unicode.IsSpace(r) || r == '-' || r == '/'
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// ContentTokens returns the filler-stripped token set of a name.
func ContentTokens(raw string) []string {
	tokens := Tokens(raw)
	content := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if !fillerWords[tok] {
			content = append(content, tok)
		}
	}
	return content
}

// IsFiller reports whether a token is a known filler word.
func IsFiller(token string) bool {
	return fillerWords[strings.ToLower(token)]
}

// SharedContentWords counts distinct non-filler tokens common to both names.
func SharedContentWords(a, b string) int {
	seen := make(map[string]bool)
	for _, tok := range ContentTokens(a) {
		seen[tok] = true
	}

	shared := 0
	counted := make(map[string]bool)
	for _, tok := range ContentTokens(b) {
		if seen[tok] && !counted[tok] {
			shared++
			counted[tok] = true
		}
	}
	return shared
}

// StripTokens removes every occurrence of the given tokens from a token list.
func StripTokens(tokens []string, remove []string) []string {
	drop := make(map[string]bool, len(remove))
	for _, r := range remove {
		drop[strings.ToLower(r)] = true
	}

	kept := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if !drop[tok] {
			kept = append(kept, tok)
		}
	}
	return kept
}
