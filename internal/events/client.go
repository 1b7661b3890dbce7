// Package events is the NATS client for the clinic event bus: raw note
// submissions in, structured parse results and confirmation verdicts out.
package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// Subjects on the clinic bus.
const (
	SubjectNoteSubmitted = "clinic.note.submitted"
	SubjectNoteParsed    = "clinic.note.parsed"
	SubjectNoteConfirmed = "clinic.note.confirmed"
)

// NoteSubmitted is the inbound payload for a raw narrated note.
type NoteSubmitted struct {
	ClientUUID string `json:"client_uuid"`
	SessionRef string `json:"session_ref"`
	Text       string `json:"text"`
}

// NoteParsed is emitted after a note has been parsed and persisted.
type NoteParsed struct {
	NoteID             string `json:"note_id"`
	ClientUUID         string `json:"client_uuid"`
	SessionRef         string `json:"session_ref"`
	Behaviors          int    `json:"behaviors"`
	SkillTrials        int    `json:"skill_trials"`
	Reinforced         bool   `json:"reinforced"`
	NeedsClarification bool   `json:"needs_clarification"`
}

// NoteConfirmed is emitted when a clinician confirms or rejects a parse.
type NoteConfirmed struct {
	NoteID    string `json:"note_id"`
	Confirmed bool   `json:"confirmed"`
}

type Client struct {
	conn   *nats.Conn
	subs   []*nats.Subscription
	logger *slog.Logger
}

func NewClient(url, token string, logger *slog.Logger) (*Client, error) {
	opts := []nats.Option{
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(60),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logger.Info("nats reconnected")
		}),
	}
	if token != "" {
		opts = append(opts, nats.Token(token))
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	return &Client{conn: nc, logger: logger}, nil
}

func (c *Client) Publish(subject string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return c.conn.Publish(subject, payload)
}

func (c *Client) Subscribe(subject string, handler func(subject string, data []byte)) error {
	sub, err := c.conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(msg.Subject, msg.Data)
	})
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", subject, err)
	}
	c.subs = append(c.subs, sub)
	c.logger.Info("subscribed", "subject", subject)
	return nil
}

func (c *Client) Close() {
	for _, sub := range c.subs {
		_ = sub.Unsubscribe()
	}
	c.conn.Close()
}
