// Package pipeline orchestrates the note-processing flow: a narrated note
// arrives on the bus, is parsed through the routing policy, persisted, and
// announced. Thin glue; all extraction logic lives in the engine.
package pipeline

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"

	"github.com/brightsteps/scribe/internal/engine"
	"github.com/brightsteps/scribe/internal/events"
)

// Parser routes a single utterance to an extraction result.
type Parser interface {
	Parse(ctx context.Context, text string) engine.ParsedInput
}

// Recorder persists parsed notes and review verdicts.
type Recorder interface {
	WriteSessionNote(ctx context.Context, clientUUID uuid.UUID, sessionRef, rawText string, p engine.ParsedInput) (uuid.UUID, error)
	UpdateNoteReviewStatus(ctx context.Context, noteID uuid.UUID, status, functionGuess, intervention string) error
}

// Publisher emits events on the clinic bus.
type Publisher interface {
	Publish(subject string, data any) error
}

type Pipeline struct {
	parser Parser
	store  Recorder
	bus    Publisher
	logger *slog.Logger
}

func New(parser Parser, store Recorder, bus Publisher, logger *slog.Logger) *Pipeline {
	return &Pipeline{parser: parser, store: store, bus: bus, logger: logger}
}

// HandleNoteSubmitted is the NATS handler for clinic.note.submitted.
func (p *Pipeline) HandleNoteSubmitted(subject string, data []byte) {
	ctx := context.Background()

	var evt events.NoteSubmitted
	if err := json.Unmarshal(data, &evt); err != nil {
		p.logger.Error("failed to parse note event", "error", err)
		return
	}

	clientUUID, err := uuid.Parse(evt.ClientUUID)
	if err != nil {
		p.logger.Error("invalid client uuid", "client_uuid", evt.ClientUUID, "error", err)
		return
	}

	p.logger.Info("processing note",
		"session_ref", evt.SessionRef,
		"client", evt.ClientUUID,
		"text_len", len(evt.Text),
	)

	parsed := p.parser.Parse(ctx, evt.Text)

	noteID, err := p.store.WriteSessionNote(ctx, clientUUID, evt.SessionRef, evt.Text, parsed)
	if err != nil {
		p.logger.Error("persistence failed", "session_ref", evt.SessionRef, "error", err)
		return
	}

	if err := p.bus.Publish(events.SubjectNoteParsed, events.NoteParsed{
		NoteID:             noteID.String(),
		ClientUUID:         evt.ClientUUID,
		SessionRef:         evt.SessionRef,
		Behaviors:          len(parsed.Behaviors),
		SkillTrials:        len(parsed.SkillTrials),
		Reinforced:         parsed.Reinforcement != nil,
		NeedsClarification: parsed.NeedsClarification,
	}); err != nil {
		p.logger.Error("failed to publish parsed event", "error", err)
	}

	p.logger.Info("note processed",
		"note_id", noteID,
		"behaviors", len(parsed.Behaviors),
		"skill_trials", len(parsed.SkillTrials),
		"needs_clarification", parsed.NeedsClarification,
	)
}

// Confirm records a clinician's verdict on a parsed note and announces it.
func (p *Pipeline) Confirm(ctx context.Context, noteID uuid.UUID, confirmed bool, functionGuess, intervention string) error {
	status := "confirmed"
	if !confirmed {
		status = "rejected"
	}
	if err := p.store.UpdateNoteReviewStatus(ctx, noteID, status, functionGuess, intervention); err != nil {
		return err
	}

	if err := p.bus.Publish(events.SubjectNoteConfirmed, events.NoteConfirmed{
		NoteID:    noteID.String(),
		Confirmed: confirmed,
	}); err != nil {
		p.logger.Error("failed to publish confirmed event", "error", err)
	}
	return nil
}
