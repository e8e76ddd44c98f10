package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// SSE event names sent by POST /sessions/stream
const (
	eventProgress = "progress"
	eventResult   = "result"
	eventError    = "error"
	eventComplete = "complete"
)

var errStreamingUnsupported = errors.New("streaming not supported")

// SSEWriter writes numbered Server-Sent Events and flushes after each one
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
	seq     int
}

// NewSSEWriter sets the event-stream headers on w
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, errStreamingUnsupported
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteEvent sends data as JSON under the given event name
func (s *SSEWriter) WriteEvent(event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", event, err)
	}

	s.seq++
	if _, err := fmt.Fprintf(s.w, "id: %d\nevent: %s\ndata: %s\n\n", s.seq, event, payload); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WriteError sends the terminal error event
func (s *SSEWriter) WriteError(message string) error {
	return s.WriteEvent(eventError, ErrorResponse{Error: message})
}

// WriteComplete sends the terminal success event
func (s *SSEWriter) WriteComplete(sessionID string, count int) error {
	return s.WriteEvent(eventComplete, CompleteEvent{SessionID: sessionID, Count: count})
}

// CompleteEvent closes a successful stream
type CompleteEvent struct {
	SessionID string `json:"session_id"`
	Count     int    `json:"count"`
}
