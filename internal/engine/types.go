package engine

// BehaviorType is one of the seven tracked behavior categories.
type BehaviorType string

const (
	BehaviorElopement           BehaviorType = "elopement"
	BehaviorTantrum             BehaviorType = "tantrum"
	BehaviorAggression          BehaviorType = "aggression"
	BehaviorSelfInjury          BehaviorType = "self_injury"
	BehaviorPropertyDestruction BehaviorType = "property_destruction"
	BehaviorRefusal             BehaviorType = "refusal"
	BehaviorStereotypy          BehaviorType = "stereotypy"
)

// BehaviorEvent is a single detected behavior occurrence. Exactly one of
// Count and DurationSeconds is set; duration takes precedence when both a
// duration and a count phrase appear in the narration.
type BehaviorEvent struct {
	Type            BehaviorType `json:"type"`
	Count           int          `json:"count,omitempty"`
	DurationSeconds int          `json:"duration_seconds,omitempty"`
}

// TrialResponse is the scored outcome of a skill trial.
type TrialResponse string

const (
	ResponseCorrect   TrialResponse = "Correct"
	ResponseIncorrect TrialResponse = "Incorrect"
)

// PromptLevel is the degree of assistance given during a skill trial,
// ordered from most to least intrusive.
type PromptLevel string

const (
	PromptFullPhysical    PromptLevel = "full-physical"
	PromptPartialPhysical PromptLevel = "partial-physical"
	PromptGestural        PromptLevel = "gestural"
	PromptModel           PromptLevel = "model"
	PromptVerbal          PromptLevel = "verbal"
	PromptIndependent     PromptLevel = "independent"
)

// DefaultTarget is the sentinel used when no target phrase is recoverable.
const DefaultTarget = "Current Target"

// SkillTrial is one scored attempt at a taught skill. Skill is always
// Title-Case; Target defaults to DefaultTarget.
type SkillTrial struct {
	Skill       string        `json:"skill"`
	Target      string        `json:"target"`
	Response    TrialResponse `json:"response"`
	PromptLevel PromptLevel   `json:"prompt_level,omitempty"`
}

// Reinforcement records a reinforcer delivery. Type is one or more item
// names joined by " + ", or the literal "Reinforcement" when only the
// generic verb+item pair fired.
type Reinforcement struct {
	Type      string `json:"type"`
	Delivered bool   `json:"delivered"`
	Details   string `json:"details"`
}

// FunctionGuess is an inferred behavioral function hypothesis.
type FunctionGuess string

const (
	FunctionEscape    FunctionGuess = "escape"
	FunctionTangible  FunctionGuess = "tangible"
	FunctionAttention FunctionGuess = "attention"
	FunctionAutomatic FunctionGuess = "automatic"
)

// ParsedInput is the structured result of parsing one utterance. It is
// constructed fresh per call and never persisted by the engine itself.
// NeedsClarification is true exactly when behaviors, skill trials, and
// reinforcement are all absent.
type ParsedInput struct {
	Behaviors             []BehaviorEvent `json:"behaviors"`
	SkillTrials           []SkillTrial    `json:"skill_trials"`
	Reinforcement         *Reinforcement  `json:"reinforcement,omitempty"`
	Antecedent            string          `json:"antecedent,omitempty"`
	FunctionGuess         FunctionGuess   `json:"function_guess,omitempty"`
	Intervention          string          `json:"intervention,omitempty"`
	NeedsClarification    bool            `json:"needs_clarification"`
	ClarificationQuestion string          `json:"clarification_question,omitempty"`
	NarrativeFragment     string          `json:"narrative_fragment"`
}

// HasContent reports whether the parse found any actionable structure.
func (p *ParsedInput) HasContent() bool {
	return len(p.Behaviors) > 0 || len(p.SkillTrials) > 0 || p.Reinforcement != nil
}
