package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"toruslife/src/board"
	"toruslife/src/store"
)

var errNotArray = errors.New("liveCells must be an array")

type boardRequest struct {
	Rows        int             `json:"rows"`
	Cols        int             `json:"cols"`
	LiveCells   json.RawMessage `json:"liveCells"`
	Generations int             `json:"generations"`
}

type messageResponse struct {
	Message string           `json:"message"`
	State   *store.GameState `json:"state,omitempty"`
}

//decodeBoard reads the request body and builds the seeded board
//every returned error is a client error
func decodeBoard(r *http.Request) (*board.Board, boardRequest, error) {
	var req boardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, req, fmt.Errorf("invalid request body: %v", err)
	}
	if req.Rows < 1 || req.Cols < 1 {
		return nil, req, store.ErrInvalidSize
	}
	raw := bytes.TrimSpace(req.LiveCells)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, req, errNotArray
	}
	var cells [][]int
	if err := json.Unmarshal(raw, &cells); err != nil {
		return nil, req, store.ErrInvalidCells
	}
	st := store.GameState{Size: store.Size{Rows: req.Rows, Cols: req.Cols}, LiveCells: cells}
	b, err := st.Board()
	return b, req, err
}

func (s *Server) respondBoard(w http.ResponseWriter, b *board.Board) {
	s.writeJSON(w, http.StatusOK, store.FromSnapshot(b.Snapshot()))
}

func (s *Server) handleInitialize(w http.ResponseWriter, r *http.Request) {
	b, _, err := decodeBoard(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.respondBoard(w, b)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	b, req, err := decodeBoard(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if s.cfg.MaxGenerations > 0 && req.Generations > s.cfg.MaxGenerations {
		http.Error(w, fmt.Sprintf("generations must not exceed %v", s.cfg.MaxGenerations), http.StatusBadRequest)
		return
	}
	b.Run(req.Generations)
	s.respondBoard(w, b)
}

func (s *Server) handleEvolve(w http.ResponseWriter, r *http.Request) {
	b, _, err := decodeBoard(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	b.Step()
	s.respondBoard(w, b)
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/game/save/")
	if id == "" {
		http.NotFound(w, r)
		return
	}
	b, _, err := decodeBoard(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	err = s.store.Save(id, store.FromSnapshot(b.Snapshot()))
	switch {
	case errors.Is(err, store.ErrInvalidID):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case err != nil:
		s.logError(r, "Failed to save game state", err)
		s.writeMessage(w, http.StatusInternalServerError, "Failed to save game state")
	default:
		s.writeMessage(w, http.StatusCreated, "Game state saved successfully")
	}
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/game/load/")
	if id == "" {
		http.NotFound(w, r)
		return
	}
	st, err := s.store.Load(id)
	switch {
	case errors.Is(err, store.ErrInvalidID):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, store.ErrNotFound):
		s.writeMessage(w, http.StatusNotFound, "Game state not found")
	case err != nil:
		s.logError(r, "Failed to load game state", err)
		s.writeMessage(w, http.StatusInternalServerError, "Failed to load game state")
	default:
		s.writeJSON(w, http.StatusOK, messageResponse{Message: "Game state loaded successfully", State: &st})
	}
}

func (s *Server) handleAll(w http.ResponseWriter, r *http.Request) {
	entries, err := s.store.List()
	if err != nil {
		s.logError(r, "Failed to get game IDs", err)
		s.writeMessage(w, http.StatusInternalServerError, "Failed to get game IDs")
		return
	}
	s.writeJSON(w, http.StatusOK, entries)
}
