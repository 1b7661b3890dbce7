package engine

import (
	"regexp"
	"strconv"

	"github.com/brightsteps/scribe/internal/lexicon"
)

// behaviorRule maps one behavior category to its keyword family. Rules are
// independent: several categories may fire on the same utterance.
type behaviorRule struct {
	typ      BehaviorType
	keywords []lexicon.Keyword
}

var behaviorRules = []behaviorRule{
	{BehaviorElopement, lexicon.Compile(
		"elopement", "eloped", "elope", "ran away", "ran off", "run away",
		"running away", "bolted", "left the room", "left the area",
	)},
	{BehaviorTantrum, lexicon.Compile(
		"tantrum", "tantrums", "meltdown", "screamed", "screaming",
		"cried", "crying",
	)},
	{BehaviorAggression, lexicon.Compile(
		"aggression", "aggressive", "hit", "hits", "hitting", "kicked",
		"kicking", "bit", "biting", "scratched", "scratching", "pushed",
		"pinched", "slapped",
	)},
	{BehaviorSelfInjury, lexicon.Compile(
		"self-injury", "self-injurious", "sib", "head banging", "head bang",
		"bit himself", "bit herself", "hit himself", "hit herself",
		"self harm",
	)},
	{BehaviorPropertyDestruction, lexicon.Compile(
		"property destruction", "destroyed", "broke", "ripped", "tore",
		"threw materials", "threw items", "threw objects",
		"knocked over", "swiped materials",
	)},
	{BehaviorRefusal, lexicon.Compile(
		"refused", "refusal", "refusing", "noncompliance", "non-compliance",
		"noncompliant", "said no", "would not", "wouldn't", "won't",
	)},
	{BehaviorStereotypy, lexicon.Compile(
		"stereotypy", "stimming", "stimmed", "stim", "self-stimulatory",
		"hand flapping", "flapping", "rocking", "scripting", "vocal stim",
	)},
}

var (
	secondsRe = regexp.MustCompile(`(?i)(\d+)\s*(?:seconds?|secs?|s)\b`)
	minutesRe = regexp.MustCompile(`(?i)(\d+)\s*(?:minutes?|mins?|m)\b`)
	digitRe   = regexp.MustCompile(`\b(\d+)\b`)
)

// countWords maps spelled-out count phrases to occurrence counts.
var countWords = []struct {
	kw    lexicon.Keyword
	count int
}{
	{lexicon.Compile("once")[0], 1},
	{lexicon.Compile("twice")[0], 2},
	{lexicon.Compile("two")[0], 2},
	{lexicon.Compile("three")[0], 3},
	{lexicon.Compile("four")[0], 4},
	{lexicon.Compile("five")[0], 5},
}

// ExtractBehaviors scans the utterance against every behavior keyword family.
// Each matching category yields one event carrying either a total duration
// (preferred) or an occurrence count.
func ExtractBehaviors(text string) []BehaviorEvent {
	norm := lexicon.Normalize(text)

	var events []BehaviorEvent
	for _, rule := range behaviorRules {
		if !lexicon.Any(norm, rule.keywords) {
			continue
		}
		ev := BehaviorEvent{Type: rule.typ}
		if d := durationSeconds(text); d > 0 {
			ev.DurationSeconds = d
		} else {
			ev.Count = occurrenceCount(norm)
		}
		events = append(events, ev)
	}
	return events
}

// durationSeconds sums every duration expression in the original-case input,
// converting minutes to seconds. Returns 0 when none is present.
func durationSeconds(text string) int {
	total := 0
	for _, m := range minutesRe.FindAllStringSubmatch(text, -1) {
		if n, err := strconv.Atoi(m[1]); err == nil {
			total += n * 60
		}
	}
	for _, m := range secondsRe.FindAllStringSubmatch(text, -1) {
		if n, err := strconv.Atoi(m[1]); err == nil {
			total += n
		}
	}
	return total
}

// occurrenceCount finds an explicit count phrase: a standalone digit first,
// then a spelled-out count word. Defaults to 1.
func occurrenceCount(norm string) int {
	if m := digitRe.FindStringSubmatch(norm); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			return n
		}
	}
	for _, cw := range countWords {
		if cw.kw.In(norm) {
			return cw.count
		}
	}
	return 1
}
