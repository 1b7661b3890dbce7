package engine

import (
	"strings"

	"github.com/brightsteps/scribe/internal/lexicon"
)

// Antecedent labels drawn from the closed set.
const (
	AntecedentDeniedIPad = "denied access to iPad"
	AntecedentCleanUp    = "clean-up demand"
	AntecedentTransition = "transition demand"
)

var (
	ipadKw        = lexicon.Compile("ipad")
	ipadDenialKws = lexicon.Compile("done", "denied", "told")
	cleanUpKws    = lexicon.Compile("clean up", "cleanup", "pick up")
	transitionKws = lexicon.Compile("switch", "transition")

	escapeKws = lexicon.Compile("escape*", "avoid*")
)

// antecedentRules is the ordered rule table; the first rule whose predicate
// holds wins, and no rule firing leaves the antecedent unset.
var antecedentRules = []struct {
	label string
	match func(norm string) bool
}{
	{AntecedentDeniedIPad, func(n string) bool {
		return lexicon.Any(n, ipadKw) && lexicon.Any(n, ipadDenialKws)
	}},
	{AntecedentCleanUp, func(n string) bool {
		return lexicon.Any(n, cleanUpKws)
	}},
	{AntecedentTransition, func(n string) bool {
		return lexicon.Any(n, transitionKws)
	}},
}

// InferAntecedent applies the antecedent rule table to the utterance.
// Returns "" when no rule matches.
func InferAntecedent(text string) string {
	norm := lexicon.Normalize(text)
	for _, rule := range antecedentRules {
		if rule.match(norm) {
			return rule.label
		}
	}
	return ""
}

// InferFunction guesses the behavioral function when the narration supports
// it: escape/avoidance vocabulary implies escape, a denied-access antecedent
// implies tangible. No supporting evidence leaves the guess unset.
func InferFunction(text, antecedent string) FunctionGuess {
	norm := lexicon.Normalize(text)
	if lexicon.Any(norm, escapeKws) {
		return FunctionEscape
	}
	if strings.Contains(antecedent, "denied") || strings.Contains(antecedent, "access") {
		return FunctionTangible
	}
	return ""
}
