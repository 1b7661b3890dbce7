package remote

import (
	"encoding/json"
	"strings"
	"unicode"

	"github.com/brightsteps/scribe/internal/engine"
)

// Sanitize coerces an upstream extraction payload into a ParsedInput,
// field by field. Absent or wrong-typed fields are treated as absent, never
// as errors; list entries that fail shape or enum checks are dropped. The
// result always satisfies the ParsedInput invariants regardless of what the
// upstream sent.
func Sanitize(raw []byte) engine.ParsedInput {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return clarified(engine.ParsedInput{})
	}

	p := engine.ParsedInput{
		Behaviors:             sanitizeBehaviors(fields["behaviors"]),
		SkillTrials:           sanitizeTrials(fields["skillTrials"]),
		Antecedent:            asString(fields["antecedent"]),
		Intervention:          asString(fields["intervention"]),
		ClarificationQuestion: asString(fields["clarificationQuestion"]),
		NarrativeFragment:     asString(fields["narrativeFragment"]),
	}
	p.FunctionGuess = sanitizeFunction(fields["functionGuess"])

	if !p.HasContent() {
		return clarified(p)
	}
	return p
}

func clarified(p engine.ParsedInput) engine.ParsedInput {
	p.NeedsClarification = true
	if p.ClarificationQuestion == "" {
		p.ClarificationQuestion = engine.ClarificationQuestion
	}
	return p
}

var validBehaviorTypes = map[engine.BehaviorType]bool{
	engine.BehaviorElopement:           true,
	engine.BehaviorTantrum:             true,
	engine.BehaviorAggression:          true,
	engine.BehaviorSelfInjury:          true,
	engine.BehaviorPropertyDestruction: true,
	engine.BehaviorRefusal:             true,
	engine.BehaviorStereotypy:          true,
}

func sanitizeBehaviors(raw json.RawMessage) []engine.BehaviorEvent {
	var entries []map[string]json.RawMessage
	if raw == nil || json.Unmarshal(raw, &entries) != nil {
		return nil
	}

	var out []engine.BehaviorEvent
	for _, entry := range entries {
		typ := engine.BehaviorType(asString(entry["type"]))
		if !validBehaviorTypes[typ] {
			continue
		}
		ev := engine.BehaviorEvent{Type: typ}
		if d := asPositiveInt(entry["durationSeconds"]); d > 0 {
			ev.DurationSeconds = d
		} else if c := asPositiveInt(entry["count"]); c > 0 {
			ev.Count = c
		} else {
			ev.Count = 1
		}
		out = append(out, ev)
	}
	return out
}

var validPromptLevels = map[engine.PromptLevel]bool{
	engine.PromptIndependent:     true,
	engine.PromptVerbal:          true,
	engine.PromptGestural:        true,
	engine.PromptModel:           true,
	engine.PromptPartialPhysical: true,
	engine.PromptFullPhysical:    true,
}

func sanitizeTrials(raw json.RawMessage) []engine.SkillTrial {
	var entries []map[string]json.RawMessage
	if raw == nil || json.Unmarshal(raw, &entries) != nil {
		return nil
	}

	var out []engine.SkillTrial
	for _, entry := range entries {
		skill := strings.TrimSpace(asString(entry["skill"]))
		if skill == "" {
			continue
		}
		trial := engine.SkillTrial{
			Skill:  titleCase(skill),
			Target: strings.TrimSpace(asString(entry["target"])),
		}
		if trial.Target == "" {
			trial.Target = engine.DefaultTarget
		}

		switch strings.ToLower(asString(entry["response"])) {
		case "correct":
			trial.Response = engine.ResponseCorrect
		case "incorrect":
			trial.Response = engine.ResponseIncorrect
		default:
			continue
		}

		if lvl := engine.PromptLevel(asString(entry["promptLevel"])); validPromptLevels[lvl] {
			trial.PromptLevel = lvl
		}
		out = append(out, trial)
	}
	return out
}

var validFunctions = map[engine.FunctionGuess]bool{
	engine.FunctionEscape:    true,
	engine.FunctionTangible:  true,
	engine.FunctionAttention: true,
	engine.FunctionAutomatic: true,
}

func sanitizeFunction(raw json.RawMessage) engine.FunctionGuess {
	fn := engine.FunctionGuess(strings.ToLower(asString(raw)))
	if validFunctions[fn] {
		return fn
	}
	return ""
}

func asString(raw json.RawMessage) string {
	var s string
	if raw == nil || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

func asPositiveInt(raw json.RawMessage) int {
	var f float64
	if raw == nil || json.Unmarshal(raw, &f) != nil {
		return 0
	}
	n := int(f)
	if n <= 0 || float64(n) != f {
		return 0
	}
	return n
}

func titleCase(s string) string {
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
