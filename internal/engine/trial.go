package engine

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/brightsteps/scribe/internal/lexicon"
)

// Skill-domain vocabulary. The generic set (trial/tr/skill and the action
// verbs) triggers trial detection but never names a skill by itself; the
// specific set does both.
var (
	skillDomainKeywords = lexicon.Compile(
		"trial", "skill", "dtt", "matching", "imitation", "labeling",
		"label", "mand", "tact",
	)
	specificSkillKeywords = lexicon.Compile(
		"matching", "imitation", "label*", "mand", "tact", "dtt",
	)

	trShorthandRe  = regexp.MustCompile(`\btr\s+\w`)
	labelFormRe    = regexp.MustCompile(`\blabel(?:s|ed|led|ing|ling)?\b`)
	actionVerbRe   = regexp.MustCompile(`\b(?:tried|practiced|worked\s+on)\s+(.+)`)
	separatorRe    = regexp.MustCompile(`\b(?:skill|trial|tr|dtt)\s*[-:]\s*([^,.;!?]+)`)
	bareTrialKw    = lexicon.Compile("trial")
	triedKw        = lexicon.Compile("tried")
)

// actionStopWords cut an action-verb skill phrase at the first word that
// starts trailing narration rather than the skill name.
var actionStopWords = map[string]bool{
	"with": true, "using": true, "but": true, "and": true,
	"they": true, "he": true, "she": true, "which": true, "needed": true,
}

// Plausibility filter vocabulary: a candidate skill phrase containing any
// behavior-indicating term is ordinary behavior narration, not a skill.
var behaviorIndicatingTerms = lexicon.Compile(
	"avoid", "escape", "refus*", "non-compliance", "noncompliance",
	"tantrum", "aggression", "scream*", "cry*", "hit*", "kick*", "bite*",
	"scratch*", "elope*", "sib", "stim*",
)

var fillerWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true,
	"with": true, "on": true, "for": true, "of": true,
}

var genericSingleWords = map[string]bool{
	"task": true, "work": true, "instruction": true,
	"behavior": true, "compliance": true,
}

// Response classification vocabulary, in strict priority order: explicit
// negatives, then any prompting vocabulary (a prompted response is never an
// independent correct), then explicit positives, then a conservative
// Incorrect default.
var (
	negativeTerms = lexicon.Compile(
		"incorrect", "incorrectly", "wrong", "error", "errors", "inc",
		"prompted", "assisted", "helped", "physical",
	)
	notIndependentRe = regexp.MustCompile(`\bnot\s+ind(?:ependent(?:ly)?)?\b`)
	promptingTerms   = lexicon.Compile(
		"prompt*", "help", "helping", "assist*", "physical", "gestural",
		"model*", "verbal*",
	)
	positiveTerms = lexicon.Compile(
		"correct", "correctly", "right", "c", "accurate",
		"independent*", "indep*", "ind",
	)
)

// promptLevelRules are ordered left-to-right by specificity; at most one
// level is assigned.
var promptLevelRules = []struct {
	level PromptLevel
	kws   []lexicon.Keyword
}{
	{PromptFullPhysical, lexicon.Compile("full physical", "full phys")},
	{PromptPartialPhysical, lexicon.Compile("partial physical", "partial phys")},
	{PromptGestural, lexicon.Compile("gestural", "gesture", "gestured")},
	{PromptModel, lexicon.Compile("model", "modeled", "modelled", "modeling")},
	{PromptVerbal, lexicon.Compile("verbal", "verbally")},
}

var (
	barePromptKw   = lexicon.Compile("prompt*")
	independentKws = lexicon.Compile("independent*", "ind")
)

// targetRules is the ordered candidate list for target extraction. Each
// captured phrase is cut at the shared delimiter set before use; the first
// candidate surviving the rejection filter wins.
var targetRules = []struct {
	name string
	re   *regexp.Regexp
}{
	{"quoted", regexp.MustCompile(`"([^"]+)"|'([^']+)'`)},
	{"target", regexp.MustCompile(`\btarget\s+(?:was\s+)?([a-z0-9][a-z0-9\s]*)`)},
	{"with-for", regexp.MustCompile(`\b(?:with|for)\s+([a-z0-9][a-z0-9\s]*)`)},
	{"trial-on", regexp.MustCompile(`\b(?:trial|tr)\s+(?:on\s+)?([a-z0-9][a-z0-9\s]*)`)},
	{"skill-target", regexp.MustCompile(`\b(?:matching|imitation|label\w*|mand|tact|dtt|skill)\b.*?\btarget\s+([a-z0-9][a-z0-9\s]*)`)},
	{"labeled", regexp.MustCompile(`\blabel(?:s|ed|led|ing|ling)?\s+([a-z0-9][a-z0-9\s]*)`)},
	{"skill-on", regexp.MustCompile(`\b(?:matching|imitation|mand|tact|dtt)\s+on\s+([a-z0-9][a-z0-9\s]*)`)},
	{"skill-bare", regexp.MustCompile(`\b(?:matching|imitation|mand|tact|dtt)\s+([a-z0-9][a-z0-9\s]*)`)},
	{"separator", regexp.MustCompile(`\b(?:skill|trial|tr|dtt|matching|imitation|mand|tact)\s*[-:]\s*([a-z0-9][a-z0-9\s]*)`)},
}

// targetDelimiters stop a captured target phrase: response and prompt
// vocabulary that follows the target in terse trial shorthand, plus the
// prepositions that open a trailing modifier clause.
var targetDelimiters = map[string]bool{
	"correct": true, "incorrect": true, "wrong": true, "error": true,
	"inc": true, "prompted": true, "prompt": true, "prompts": true,
	"prompting": true, "assisted": true, "helped": true, "help": true,
	"physical": true, "gestural": true, "gesture": true, "model": true,
	"modeled": true, "verbal": true, "verbally": true, "independent": true,
	"independently": true, "ind": true, "full": true, "partial": true,
	"was": true, "right": true, "accurate": true, "correctly": true,
	"incorrectly": true, "with": true, "for": true, "using": true,
}

// rejectedTargets are classification tokens that can never be a target.
var rejectedTargets = map[string]bool{
	"correct": true, "incorrect": true, "prompted": true,
	"independent": true, "error": true, "wrong": true,
}

// ExtractTrial detects at most one skill trial in the utterance. A trial is
// emitted only when a skill-domain trigger is present and one of the skill
// resolution branches yields a plausible skill name; ungrounded mentions
// produce no trial.
func ExtractTrial(text string) *SkillTrial {
	norm := lexicon.Normalize(text)
	if !trialTriggered(norm) {
		return nil
	}

	skill, ok := resolveSkill(norm)
	if !ok {
		return nil
	}

	return &SkillTrial{
		Skill:       skill,
		Target:      extractTarget(norm),
		Response:    classifyResponse(norm, text),
		PromptLevel: classifyPromptLevel(norm),
	}
}

func trialTriggered(norm string) bool {
	return lexicon.Any(norm, skillDomainKeywords) ||
		trShorthandRe.MatchString(norm) ||
		labelFormRe.MatchString(norm) ||
		actionVerbRe.MatchString(norm)
}

// resolveSkill applies the skill name resolution branches in priority order:
// specific keyword, bare trial shorthand, explicit separator, action-verb
// phrase. The two free-text branches must pass the plausibility filter.
func resolveSkill(norm string) (string, bool) {
	if kw, ok := lexicon.First(norm, specificSkillKeywords); ok {
		return canonicalSkill(kw.Text), true
	}

	if (bareTrialKw[0].In(norm) || trShorthandRe.MatchString(norm)) &&
		!triedKw[0].In(norm) {
		return "Generic Trial", true
	}

	if m := separatorRe.FindStringSubmatch(norm); m != nil {
		if phrase, ok := plausibleSkillPhrase(m[1]); ok {
			return titleCase(phrase), true
		}
	}

	if m := actionVerbRe.FindStringSubmatch(norm); m != nil {
		phrase := cutAtStopWords(m[1])
		if phrase, ok := plausibleSkillPhrase(phrase); ok {
			return titleCase(phrase), true
		}
	}

	return "", false
}

// canonicalSkill maps a matched skill keyword to its display name.
func canonicalSkill(keyword string) string {
	switch {
	case keyword == "trial" || keyword == "tr":
		return "Generic Trial"
	case strings.HasPrefix(keyword, "label"):
		return "Labeling"
	default:
		return titleCase(keyword)
	}
}

// plausibleSkillPhrase applies the skill-phrase plausibility filter: strip a
// leading "to ", reject behavior-indicating terms, reject phrases that are
// empty or a single generic word once filler is removed.
func plausibleSkillPhrase(phrase string) (string, bool) {
	phrase = strings.TrimSpace(strings.Trim(phrase, ".,;:!?"))
	phrase = strings.TrimPrefix(phrase, "to ")
	phrase = strings.TrimSpace(phrase)
	if phrase == "" {
		return "", false
	}
	if lexicon.Any(phrase, behaviorIndicatingTerms) {
		return "", false
	}

	var meaningful []string
	for _, tok := range strings.Fields(phrase) {
		if !fillerWords[tok] {
			meaningful = append(meaningful, tok)
		}
	}
	if len(meaningful) == 0 {
		return "", false
	}
	if len(meaningful) == 1 && genericSingleWords[meaningful[0]] {
		return "", false
	}
	return phrase, true
}

func cutAtStopWords(phrase string) string {
	words := strings.Fields(phrase)
	for i, w := range words {
		if actionStopWords[strings.Trim(w, ".,;:!?")] {
			words = words[:i]
			break
		}
	}
	return strings.Join(words, " ")
}

// classifyResponse scores the trial. raw is the original-case input, needed
// only for the literal "+" shorthand.
func classifyResponse(norm, raw string) TrialResponse {
	if lexicon.Any(norm, negativeTerms) || notIndependentRe.MatchString(norm) {
		return ResponseIncorrect
	}
	if lexicon.Any(norm, promptingTerms) {
		return ResponseIncorrect
	}
	if lexicon.Any(norm, positiveTerms) || strings.Contains(raw, "+") {
		return ResponseCorrect
	}
	return ResponseIncorrect
}

func classifyPromptLevel(norm string) PromptLevel {
	for _, rule := range promptLevelRules {
		if lexicon.Any(norm, rule.kws) {
			return rule.level
		}
	}
	if lexicon.Any(norm, barePromptKw) {
		return PromptVerbal
	}
	if lexicon.Any(norm, independentKws) {
		return PromptIndependent
	}
	return ""
}

// extractTarget evaluates the target candidate rules in order and takes the
// first surviving phrase, defaulting to DefaultTarget.
func extractTarget(norm string) string {
	for _, rule := range targetRules {
		m := rule.re.FindStringSubmatch(norm)
		if m == nil {
			continue
		}
		captured := m[1]
		if captured == "" && len(m) > 2 {
			captured = m[2]
		}
		phrase := cutAtDelimiters(captured)
		if phrase == "" || rejectedTargets[phrase] {
			continue
		}
		return phrase
	}
	return DefaultTarget
}

func cutAtDelimiters(phrase string) string {
	words := strings.Fields(phrase)
	for i, w := range words {
		w = strings.Trim(w, ".,;:!?")
		if targetDelimiters[w] {
			words = words[:i]
			break
		}
	}
	return strings.TrimSpace(strings.Join(words, " "))
}

// titleCase capitalizes the first rune of a normalized phrase, the canonical
// presentation for skill names ("tying shoes" becomes "Tying shoes").
func titleCase(phrase string) string {
	phrase = strings.TrimSpace(phrase)
	if phrase == "" {
		return phrase
	}
	r := []rune(phrase)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
