// Package lexicon provides boundary-aware keyword matching over free-form
// session narration. Every extractor in the engine builds on it.
//
// Keywords are compiled once into word-boundary regexes. Multi-word phrases
// tolerate flexible internal whitespace and hyphens ("full physical" matches
// "full-physical"). A trailing '*' marks a stem that matches any word
// continuation ("scream*" matches "screaming"). Boundary matching is what
// keeps "mand" from firing inside "demand".
package lexicon

import (
	"regexp"
	"strings"
)

// Keyword is a single compiled keyword or phrase.
type Keyword struct {
	Text string
	re   *regexp.Regexp
}

// Compile builds a keyword set from the given words and phrases.
func Compile(words ...string) []Keyword {
	set := make([]Keyword, 0, len(words))
	for _, w := range words {
		set = append(set, Keyword{Text: w, re: compileOne(w)})
	}
	return set
}

func compileOne(word string) *regexp.Regexp {
	tokens := strings.Fields(strings.ToLower(word))
	parts := make([]string, 0, len(tokens))
	open := false
	for i, tok := range tokens {
		if i == len(tokens)-1 && strings.HasSuffix(tok, "*") {
			tok = strings.TrimSuffix(tok, "*")
			open = true
		}
		parts = append(parts, regexp.QuoteMeta(tok))
	}
	pattern := `\b` + strings.Join(parts, `[\s-]+`)
	if !open {
		pattern += `\b`
	}
	return regexp.MustCompile(pattern)
}

// In reports whether the keyword appears in the (already normalized) text.
func (k Keyword) In(text string) bool {
	return k.re.MatchString(text)
}

// Any reports whether any keyword in the set appears in the text.
func Any(text string, set []Keyword) bool {
	for _, k := range set {
		if k.In(text) {
			return true
		}
	}
	return false
}

// First returns the first keyword of the set (in set order, not text order)
// that appears in the text.
func First(text string, set []Keyword) (Keyword, bool) {
	for _, k := range set {
		if k.In(text) {
			return k, true
		}
	}
	return Keyword{}, false
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// Normalize lowercases the input and collapses runs of whitespace, the shared
// preprocessing step for all keyword matching.
func Normalize(text string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(strings.ToLower(text), " "))
}
