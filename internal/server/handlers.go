package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/handid"
	"github.com/lox/holdem-engine/internal/phh"
	"github.com/lox/holdem-engine/internal/record"
	"github.com/lox/holdem-engine/internal/store"
)

const maxBodySize = 1 << 20

// errHandComplete is returned when an action is posted to a finished hand.
var errHandComplete = errors.New("hand is complete")

type potView struct {
	Name     string   `json:"name"`
	Size     int      `json:"size"`
	Eligible []string `json:"eligible"`
}

// stateView is the JSON form of a replayed hand.
type stateView struct {
	HandID       string          `json:"hand_id"`
	Street       string          `json:"street"`
	Complete     bool            `json:"complete"`
	NextActor    string          `json:"next_actor,omitempty"`
	ValidActions []record.Action `json:"valid_actions,omitempty"`
	Board        string          `json:"board,omitempty"`
	Pots         []potView       `json:"pots"`
	Stacks       map[string]int  `json:"stacks"`
	Winners      []record.Winner `json:"winners,omitempty"`
}

func newStateView(res *game.ResumeResult) stateView {
	h := res.History
	v := stateView{
		HandID:    h.ID,
		Street:    h.Street.String(),
		Complete:  res.Complete,
		NextActor: res.NextActor,
		Pots:      []potView{},
		Stacks:    make(map[string]int, len(h.Seats)),
	}
	if b := h.Board(); b != 0 {
		v.Board = b.String()
	}
	for _, a := range res.ValidActions {
		v.ValidActions = append(v.ValidActions, record.FromAction(a))
	}
	for _, p := range h.Pots {
		pv := potView{Name: p.Name, Size: p.Size, Eligible: make([]string, 0, len(p.Eligible))}
		for _, seat := range p.Eligible {
			pv.Eligible = append(pv.Eligible, h.Seats[seat].Name)
		}
		v.Pots = append(v.Pots, pv)
	}
	for i, s := range h.Seats {
		v.Stacks[s.Name] = h.Stacks[i]
	}
	for _, w := range h.Winners {
		v.Winners = append(v.Winners, record.Winner(w))
	}
	return v
}

// statusFor maps replay and storage errors to HTTP statuses. Records that
// cannot be replayed conflict with the hand's state.
func statusFor(err error) int {
	var mismatch *game.ActorMismatchError
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &mismatch),
		errors.Is(err, game.ErrExtraActions),
		errors.Is(err, game.ErrMissingBlind),
		errors.Is(err, game.ErrPostingMismatch),
		errors.Is(err, game.ErrNoAction),
		errors.Is(err, errHandComplete):
		return http.StatusConflict
	case errors.Is(err, record.ErrInvalid), errors.Is(err, game.ErrInvalidConfig):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("Failed to write response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("Request failed", "error", err)
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func decodeRecord(r *http.Request) (*record.Record, error) {
	rec, err := record.Decode(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		if errors.Is(err, record.ErrInvalid) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", record.ErrInvalid, err)
	}
	return rec, nil
}

// replay must be called with s.mu held.
func (s *Server) replay(rec *record.Record) (*game.ResumeResult, error) {
	return rec.Resume(s.rng, s.opts...)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}

// handleResume replays a record from the request body without storing it.
func (s *Server) handleResume(w http.ResponseWriter, r *http.Request) {
	rec, err := decodeRecord(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.replay(rec)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newStateView(res))
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	hands, err := s.hands.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if hands == nil {
		hands = []store.Summary{}
	}
	s.writeJSON(w, http.StatusOK, hands)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	rec, err := decodeRecord(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if rec.ID == "" {
		rec.ID = handid.New()
	}
	s.storeRecord(w, r, rec, http.StatusCreated)
}

func (s *Server) handlePut(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := decodeRecord(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if rec.ID != "" && rec.ID != id {
		s.writeError(w, fmt.Errorf("%w: record id %q does not match %q", record.ErrInvalid, rec.ID, id))
		return
	}
	rec.ID = id
	s.storeRecord(w, r, rec, http.StatusOK)
}

// storeRecord replays rec and saves it only if the replay succeeds, so the
// store never holds a record that cannot be resumed.
func (s *Server) storeRecord(w http.ResponseWriter, r *http.Request, rec *record.Record, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.replay(rec)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.hands.Save(r.Context(), rec); err != nil {
		s.writeError(w, err)
		return
	}
	if status == http.StatusCreated {
		w.Header().Set("Location", "/hands/"+rec.ID)
	}
	s.writeJSON(w, status, newStateView(res))
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, res, err := s.load(r, chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newStateView(res))
}

// load must be called with s.mu held.
func (s *Server) load(r *http.Request, id string) (*record.Record, *game.ResumeResult, error) {
	rec, err := s.hands.Load(r.Context(), id)
	if err != nil {
		return nil, nil, err
	}
	res, err := s.replay(rec)
	if err != nil {
		return nil, nil, err
	}
	return rec, res, nil
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hands.Delete(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	s.watchers.closeAll(id)
	w.WriteHeader(http.StatusNoContent)
}

// handleAction appends one action to a stored hand. The action is
// attributed to the street the hand is waiting on; a record that no
// longer replays is rejected and the stored hand is left unchanged.
func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	var body record.Action
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodySize)).Decode(&body); err != nil {
		s.writeError(w, fmt.Errorf("%w: %v", record.ErrInvalid, err))
		return
	}
	action, err := body.GameAction()
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec, res, err := s.load(r, chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if res.Complete {
		s.writeError(w, fmt.Errorf("%w: %s", errHandComplete, rec.ID))
		return
	}

	street := res.History.Street
	if len(res.ValidActions) > 0 && res.ValidActions[0].Kind.IsPost() {
		street = game.Predeal
	}
	next := rec.Clone()
	if err := next.Append(street, action); err != nil {
		s.writeError(w, err)
		return
	}
	res, err = s.replay(next)
	if err != nil {
		s.logger.Info("Rejected action", "hand", rec.ID, "player", action.Player, "action", action.Kind, "error", err)
		s.writeError(w, err)
		return
	}
	if err := s.hands.Save(r.Context(), next); err != nil {
		s.writeError(w, err)
		return
	}
	view := newStateView(res)
	s.watchers.publish(rec.ID, view)
	s.writeJSON(w, http.StatusOK, view)
}

func (s *Server) handlePHH(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, res, err := s.load(r, chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	out, err := phh.EncodeToBytes(phh.FromHistory(res.History, ""))
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/toml")
	_, _ = w.Write(out)
}
