package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/wordsmithery/internal/generation"
	"github.com/jonathan/wordsmithery/internal/rendering"
	"github.com/jonathan/wordsmithery/internal/tones"
	"github.com/jonathan/wordsmithery/internal/types"
)

// OptionsResponse lists everything a client can pick from
type OptionsResponse struct {
	Regions          []string            `json:"regions"`
	Promotions       []string            `json:"promotions"`
	DefaultRegion    string              `json:"default_region"`
	DefaultPromotion string              `json:"default_promotion"`
	Tones            []types.ToneProfile `json:"tones"`
}

// SessionResponse is returned when a batch completes
type SessionResponse struct {
	SessionID string                   `json:"session_id"`
	Results   []types.GenerationResult `json:"results"`
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, OptionsResponse{
		Regions:          types.Regions,
		Promotions:       types.Promotions,
		DefaultRegion:    types.DefaultRegion,
		DefaultPromotion: types.DefaultPromotion(),
		Tones:            s.tones.Load(r.Context()),
	})
}

func (s *Server) handleListTones(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.tones.Load(r.Context()))
}

// handleUpdateTone edits one tone description
func (s *Server) handleUpdateTone(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req types.UpdateToneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.writeError(w, validationError(err))
		return
	}

	profile, err := s.tones.UpdateDescription(r.Context(), id, req.Description)
	if err != nil {
		if errors.Is(err, tones.ErrToneNotFound) {
			err = &ErrToneNotFound{ID: id}
		}
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, profile)
}

func (s *Server) handleResetTones(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.tones.Reset(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, profiles)
}

// decodeSelection reads and validates a selection body
func (s *Server) decodeSelection(r *http.Request) (types.Selection, error) {
	var sel types.Selection
	if err := json.NewDecoder(r.Body).Decode(&sel); err != nil {
		return sel, &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	if err := sel.Validate(); err != nil {
		return sel, validationError(err)
	}
	if err := sel.CheckCatalog(); err != nil {
		return sel, validationError(err)
	}
	return sel, nil
}

// handleCreateSession runs a batch and returns all results at once
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sel, err := s.decodeSelection(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	results, err := s.generator.Run(r.Context(), sel, nil)
	if err != nil {
		log.Printf("[server] generation failed: %v", err)
		s.errorResponse(w, http.StatusBadGateway, generation.UserFacing(err))
		return
	}

	session := s.sessions.Create(sel, results)
	s.jsonResponse(w, http.StatusCreated, SessionResponse{
		SessionID: session.ID,
		Results:   session.Results,
	})
}

// handleCreateSessionStream runs a batch and streams progress as SSE
func (s *Server) handleCreateSessionStream(w http.ResponseWriter, r *http.Request) {
	sel, err := s.decodeSelection(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	results, err := s.generator.Run(r.Context(), sel, func(p types.Progress) {
		if err := sse.WriteEvent(eventProgress, p); err != nil {
			log.Printf("[server] failed to write progress event: %v", err)
		}
	})
	if err != nil {
		log.Printf("[server] generation failed: %v", err)
		if err := sse.WriteError(generation.UserFacing(err)); err != nil {
			log.Printf("[server] failed to write error event: %v", err)
		}
		return
	}

	session := s.sessions.Create(sel, results)
	for _, result := range results {
		if err := sse.WriteEvent(eventResult, result); err != nil {
			log.Printf("[server] failed to write result event: %v", err)
			return
		}
	}
	if err := sse.WriteComplete(session.ID, len(results)); err != nil {
		log.Printf("[server] failed to write complete event: %v", err)
	}
}

// lookupSession parses the path id and fetches the session
func (s *Server) lookupSession(r *http.Request) (*Session, error) {
	id := r.PathValue("id")
	if _, err := uuid.Parse(id); err != nil {
		return nil, &ErrValidation{Field: "id", Message: "invalid session ID format"}
	}
	return s.sessions.Get(id)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.lookupSession(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, session)
}

// handleDeleteSession discards a result set
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.lookupSession(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.sessions.Delete(session.ID); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleExportSession renders a session as Markdown or HTML
func (s *Server) handleExportSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.lookupSession(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	format := r.URL.Query().Get("format")
	var contentType string
	switch format {
	case "", rendering.FormatMarkdown:
		format = rendering.FormatMarkdown
		contentType = "text/markdown; charset=utf-8"
	case rendering.FormatHTML:
		contentType = "text/html; charset=utf-8"
	default:
		s.writeError(w, &ErrValidation{Field: "format", Message: "must be markdown or html"})
		return
	}

	doc, err := rendering.Render(session.Results, format)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(doc)); err != nil {
		log.Printf("[server] failed to write export: %v", err)
	}
}
