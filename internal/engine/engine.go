// Package engine is the deterministic extraction engine: a pure function
// from free-form session narration to structured clinical records. It
// performs no I/O, cannot block, and has no failure mode beyond returning
// NeedsClarification when nothing in the utterance is recognizable.
package engine

import (
	"fmt"
	"strings"
)

// ClarificationQuestion is asked when no extractor found actionable structure.
const ClarificationQuestion = "I couldn't tell what happened there. Was that a behavior or a skill trial?"

// Parse converts one utterance into a ParsedInput. Identical input always
// yields structurally identical output.
func Parse(text string) ParsedInput {
	p := ParsedInput{
		Behaviors:     ExtractBehaviors(text),
		Reinforcement: ExtractReinforcement(text),
		Antecedent:    InferAntecedent(text),
	}
	if trial := ExtractTrial(text); trial != nil {
		p.SkillTrials = append(p.SkillTrials, *trial)
	}
	p.FunctionGuess = InferFunction(text, p.Antecedent)

	if !p.HasContent() {
		p.NeedsClarification = true
		p.ClarificationQuestion = ClarificationQuestion
	}
	p.NarrativeFragment = narrative(p)
	return p
}

// narrative renders the behavior events as a clinical summary fragment,
// appending the antecedent clause when one was inferred.
func narrative(p ParsedInput) string {
	if len(p.Behaviors) == 0 {
		return ""
	}
	parts := make([]string, 0, len(p.Behaviors))
	for _, b := range p.Behaviors {
		parts = append(parts, describeBehavior(b))
	}
	s := strings.Join(parts, ", ")
	if p.Antecedent != "" {
		s += " following " + p.Antecedent
	}
	return s
}

func describeBehavior(b BehaviorEvent) string {
	switch {
	case b.DurationSeconds > 0:
		return fmt.Sprintf("%s lasting %ds", b.Type, b.DurationSeconds)
	case b.Count > 1:
		return fmt.Sprintf("%d instances of %s", b.Count, b.Type)
	default:
		return string(b.Type)
	}
}
