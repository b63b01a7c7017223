// Package web serves the reminder sync API: CRUD over the stored collection
// behind a shared-secret gate, plus a websocket change feed. This is the
// remote end the remote.Client adapter talks to.
package web

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"remind-cli/internal/model"
	"remind-cli/internal/store"
	"remind-cli/internal/tags"
)

type ServerConfig struct {
	Addr       string
	InviteCode string
}

type Server struct {
	cfg ServerConfig
	st  store.Store

	// mu serializes read-modify-write cycles on the stored collection.
	mu sync.Mutex
	bc *broadcaster
}

func NewServer(cfg ServerConfig, st store.Store) *Server {
	return &Server{cfg: cfg, st: st, bc: newBroadcaster()}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/list", s.handleList)
	mux.HandleFunc("/api/insert", s.handleInsert)
	mux.HandleFunc("/api/update", s.handleUpdate)
	mux.HandleFunc("/api/delete", s.handleDelete)
	mux.HandleFunc("/api/stream", s.handleStream)
	return mux
}

// ListenAndServe runs the server until the listener fails.
func (s *Server) ListenAndServe() error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}

// wireReminder mirrors the flattened snake_case payload shape of the API.
type wireReminder struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Notes     string `json:"notes,omitempty"`
	Completed bool   `json:"completed"`
	DueDate   string `json:"due_date,omitempty"`
	Tags      string `json:"tags,omitempty"`
	Rank      int    `json:"rank"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// wireUpdate is the partial-update payload: nil means "leave untouched".
type wireUpdate struct {
	ID        string  `json:"id"`
	Title     *string `json:"title"`
	Notes     *string `json:"notes"`
	Completed *bool   `json:"completed"`
	DueDate   *string `json:"due_date"`
	Tags      *string `json:"tags"`
	Rank      *int    `json:"rank"`
}

func toWire(r model.Reminder) wireReminder {
	w := wireReminder{
		ID:        r.ID,
		Title:     r.Title,
		Notes:     r.Notes,
		Completed: r.Completed,
		Tags:      strings.Join(r.Tags, ","),
		Rank:      r.Rank,
		CreatedAt: r.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt: r.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	if r.DueDate != nil {
		w.DueDate = r.DueDate.UTC().Format(time.RFC3339Nano)
	}
	return w
}

func parseTime(s string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

func splitTags(s string) []string {
	var out []string
	for _, tag := range strings.Split(s, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg, details string) {
	writeJSON(w, status, map[string]string{"error": msg, "details": details})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", "use GET")
		return
	}
	if !s.checkInvite(w, r) {
		return
	}
	col, err := s.st.Load(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load reminders", err.Error())
		return
	}
	wires := make([]wireReminder, 0, len(col))
	for _, rem := range col {
		wires = append(wires, toWire(rem))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    wires,
		"count":   len(wires),
	})
}

func (s *Server) handleInsert(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", "use POST")
		return
	}
	if !s.checkInvite(w, r) {
		return
	}
	var in wireReminder
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	now := time.Now().UTC()
	rem := model.Reminder{
		ID:        strings.TrimSpace(in.ID),
		Title:     in.Title,
		Notes:     in.Notes,
		Completed: in.Completed,
		Tags:      splitTags(in.Tags),
		Rank:      in.Rank,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if rem.ID == "" {
		rem.ID = uuid.NewString()
	}
	if len(rem.Tags) == 0 {
		rem.Tags = tags.FromReminder(rem.Title, rem.Notes)
	}
	if t, ok := parseTime(in.DueDate); ok {
		rem.DueDate = &t
	}
	if t, ok := parseTime(in.CreatedAt); ok {
		rem.CreatedAt = t
	}
	if t, ok := parseTime(in.UpdatedAt); ok {
		rem.UpdatedAt = t
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	col, err := s.st.Load(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load reminders", err.Error())
		return
	}
	// Upsert: re-inserting an id replaces the stored row (last writer wins).
	kept := col[:0]
	for _, existing := range col {
		if existing.ID != rem.ID {
			kept = append(kept, existing)
		}
	}
	col = append(kept, rem)
	if err := s.st.Save(r.Context(), col); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save reminder", err.Error())
		return
	}
	s.bc.broadcast(changeMsg{Type: "change", Op: "insert", ID: rem.ID})
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": toWire(rem)})
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", "use PUT")
		return
	}
	if !s.checkInvite(w, r) {
		return
	}
	var in wireUpdate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if strings.TrimSpace(in.ID) == "" {
		writeError(w, http.StatusBadRequest, "missing required field: id", "")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	col, err := s.st.Load(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load reminders", err.Error())
		return
	}
	rem, ok := model.Find(col, strings.TrimSpace(in.ID))
	if !ok {
		writeError(w, http.StatusNotFound, "reminder not found", "")
		return
	}

	if in.Title != nil {
		rem.Title = *in.Title
	}
	if in.Notes != nil {
		rem.Notes = *in.Notes
	}
	if in.Completed != nil {
		rem.Completed = *in.Completed
	}
	if in.DueDate != nil {
		if t, ok := parseTime(*in.DueDate); ok {
			rem.DueDate = &t
		} else {
			rem.DueDate = nil
		}
	}
	if in.Tags != nil {
		rem.Tags = splitTags(*in.Tags)
	} else if in.Title != nil || in.Notes != nil {
		rem.Tags = tags.FromReminder(rem.Title, rem.Notes)
	}
	if in.Rank != nil {
		rem.Rank = *in.Rank
	}
	rem.UpdatedAt = time.Now().UTC()

	if err := s.st.Save(r.Context(), col); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save reminder", err.Error())
		return
	}
	s.bc.broadcast(changeMsg{Type: "change", Op: "update", ID: rem.ID})
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": toWire(*rem)})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", "use DELETE")
		return
	}
	if !s.checkInvite(w, r) {
		return
	}
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing required field: id", "pass it as a query parameter, e.g. ?id=xxx")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	col, err := s.st.Load(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load reminders", err.Error())
		return
	}
	kept := make([]model.Reminder, 0, len(col))
	found := false
	for _, rem := range col {
		if rem.ID == id {
			found = true
			continue
		}
		kept = append(kept, rem)
	}
	if !found {
		writeError(w, http.StatusNotFound, "reminder not found", "")
		return
	}
	if err := s.st.Save(r.Context(), kept); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete reminder", err.Error())
		return
	}
	s.bc.broadcast(changeMsg{Type: "change", Op: "delete", ID: id})
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": map[string]string{"id": id}})
}
