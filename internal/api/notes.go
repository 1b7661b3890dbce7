package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/brightsteps/scribe/internal/confirm"
	"github.com/brightsteps/scribe/internal/engine"
)

// Parser routes a single utterance to an extraction result.
type Parser interface {
	Parse(ctx context.Context, text string) engine.ParsedInput
}

// Confirmer records a clinician's verdict on a stored note.
type Confirmer interface {
	Confirm(ctx context.Context, noteID uuid.UUID, confirmed bool, functionGuess, intervention string) error
}

// Recorder persists a parsed note. May be nil when running without a store.
type Recorder interface {
	WriteSessionNote(ctx context.Context, clientUUID uuid.UUID, sessionRef, rawText string, p engine.ParsedInput) (uuid.UUID, error)
}

// NotesHandler serves the note parse and confirm endpoints.
type NotesHandler struct {
	parser    Parser
	store     Recorder
	confirmer Confirmer
	logger    *slog.Logger
}

func NewNotesHandler(parser Parser, store Recorder, confirmer Confirmer, logger *slog.Logger) *NotesHandler {
	return &NotesHandler{parser: parser, store: store, confirmer: confirmer, logger: logger}
}

type parseRequest struct {
	Text       string `json:"text"`
	ClientUUID string `json:"client_uuid"`
	SessionRef string `json:"session_ref"`
}

type parseResponse struct {
	NoteID       string                       `json:"note_id,omitempty"`
	Parsed       engine.ParsedInput           `json:"parsed"`
	Confirmation confirm.ConfirmationResponse `json:"confirmation"`
}

// Parse handles POST /api/v1/notes/parse.
func (h *NotesHandler) Parse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if req.Text == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "text is required"})
		return
	}

	parsed := h.parser.Parse(r.Context(), req.Text)
	resp := parseResponse{
		Parsed:       parsed,
		Confirmation: confirm.Build(parsed),
	}

	if h.store != nil && req.ClientUUID != "" {
		clientUUID, err := uuid.Parse(req.ClientUUID)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid client_uuid"})
			return
		}
		noteID, err := h.store.WriteSessionNote(r.Context(), clientUUID, req.SessionRef, req.Text, parsed)
		if err != nil {
			h.logger.Error("failed to persist note", "session_ref", req.SessionRef, "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to store note"})
			return
		}
		resp.NoteID = noteID.String()
	}

	writeJSON(w, http.StatusOK, resp)
}

type confirmRequest struct {
	Confirmed     bool   `json:"confirmed"`
	FunctionGuess string `json:"function_guess,omitempty"`
	Intervention  string `json:"intervention,omitempty"`
}

// Confirm handles POST /api/v1/notes/{id}/confirm.
func (h *NotesHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	noteID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid note id"})
		return
	}

	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	if err := h.confirmer.Confirm(r.Context(), noteID, req.Confirmed, req.FunctionGuess, req.Intervention); err != nil {
		h.logger.Error("failed to record confirmation", "note_id", noteID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to record confirmation"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "recorded"})
}
