// Package confirm turns a parsed utterance back into a human-readable
// confirmation: a summary message, action buttons, and follow-up questions
// for fields the narration left open. Build is a pure function of its input.
package confirm

import (
	"fmt"
	"strings"

	"github.com/brightsteps/scribe/internal/engine"
)

// Button is a single action the client can render.
type Button struct {
	Label  string `json:"label"`
	Action string `json:"action"`
	Value  string `json:"value"`
}

// ConfirmationResponse is the presentation form of a ParsedInput.
type ConfirmationResponse struct {
	Message           string   `json:"message"`
	Buttons           []Button `json:"buttons"`
	FollowUpQuestions []string `json:"follow_up_questions,omitempty"`
}

const (
	followUpFunction     = "What do you think the function of the behavior was?"
	followUpIntervention = "What intervention did you use?"
)

// Build derives the confirmation for a parsed utterance.
func Build(p engine.ParsedInput) ConfirmationResponse {
	if p.NeedsClarification {
		return ConfirmationResponse{
			Message: p.ClarificationQuestion,
			Buttons: []Button{
				{Label: "Log Behavior", Action: "log-behavior", Value: "behavior"},
				{Label: "Log Skill Trial", Action: "log-skill-trial", Value: "skill_trial"},
			},
		}
	}

	var parts []string
	if p.NarrativeFragment != "" {
		parts = append(parts, "Behavior: "+p.NarrativeFragment)
	}
	for _, trial := range p.SkillTrials {
		parts = append(parts, describeTrial(trial))
	}
	if p.Reinforcement != nil {
		parts = append(parts, "Reinforcement delivered: "+p.Reinforcement.Type)
	}

	message := strings.Join(parts, ". ")
	if p.Antecedent != "" && p.NarrativeFragment == "" {
		message += " (antecedent: " + p.Antecedent + ")"
	}
	message += ". Is this correct?"

	resp := ConfirmationResponse{
		Message: message,
		Buttons: []Button{
			{Label: "Yes", Action: "confirm", Value: "yes"},
			{Label: "No", Action: "confirm", Value: "no"},
		},
	}

	if len(p.Behaviors) > 0 {
		if p.FunctionGuess == "" {
			resp.FollowUpQuestions = append(resp.FollowUpQuestions, followUpFunction)
		}
		if p.Intervention == "" {
			resp.FollowUpQuestions = append(resp.FollowUpQuestions, followUpIntervention)
		}
	}
	return resp
}

func describeTrial(t engine.SkillTrial) string {
	s := fmt.Sprintf("Skill trial: %s, target %s (%s", t.Skill, t.Target, t.Response)
	if t.PromptLevel != "" {
		s += ", " + string(t.PromptLevel) + " prompt"
	}
	return s + ")"
}
