package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/vovakirdan/brickbreaker/internal/account"
	"github.com/vovakirdan/brickbreaker/internal/games/breakout"
	"github.com/vovakirdan/brickbreaker/internal/render"
)

// Leaderboard page sizes.
const (
	defaultLeaderboardLimit = 10
	maxLeaderboardLimit     = 100
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 4 << 10

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

type userResponse struct {
	Username string `json:"username"`
	FullName string `json:"fullname,omitempty"`
}

type leaderboardRow struct {
	Rank      int    `json:"rank"`
	Username  string `json:"username"`
	Score     int    `json:"score"`
	Date      string `json:"date"`       // DD/MM/YYYY
	ReachedAt string `json:"reached_at"` // RFC 3339
}

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req account.Registration
	if !decodeBody(w, r, &req) {
		return
	}

	u, err := s.accounts.Register(req)
	var verr *account.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid registration", Fields: verr.Fields})
		return
	case errors.Is(err, account.ErrUsernameTaken):
		writeError(w, "username already exists", http.StatusConflict)
		return
	case err != nil:
		s.logger.Error("register failed", "user", req.Username, "err", err)
		writeError(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.logger.Info("user registered", "user", u.Username)
	writeJSON(w, http.StatusCreated, userResponse{Username: u.Username, FullName: u.FullName})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	u, err := s.accounts.Login(req.Username, req.Password)
	switch {
	case errors.Is(err, account.ErrMissingCredential):
		writeError(w, "username and password are required", http.StatusBadRequest)
		return
	case errors.Is(err, account.ErrUserNotFound):
		writeError(w, "user not found", http.StatusUnauthorized)
		return
	case errors.Is(err, account.ErrIncorrectPassword):
		writeError(w, "incorrect password", http.StatusUnauthorized)
		return
	case err != nil:
		s.logger.Error("login failed", "user", req.Username, "err", err)
		writeError(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.logger.Info("user logged in", "user", u.Username)
	writeJSON(w, http.StatusOK, loginResponse{Token: s.tokens.Issue(u.Username), Username: u.Username})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if token := bearerToken(r); token != "" {
		s.tokens.Revoke(token)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	name, ok := s.tokens.Lookup(bearerToken(r))
	if !ok {
		rejectedTotal.WithLabelValues("token").Inc()
		writeError(w, "not logged in", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, userResponse{Username: name})
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := defaultLeaderboardLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = min(n, maxLeaderboardLimit)
	}

	entries, err := s.cfg.Store.Leaderboard(limit)
	if err != nil {
		s.logger.Error("leaderboard failed", "err", err)
		writeError(w, "internal error", http.StatusInternalServerError)
		return
	}

	rows := make([]leaderboardRow, len(entries))
	for i, e := range entries {
		rows[i] = leaderboardRow{
			Rank:     e.Rank,
			Username: e.Username,
			Score:    e.Score,
			Date:     e.DisplayDate(),
		}
		if !e.ReachedAt.IsZero() {
			rows[i].ReachedAt = e.ReachedAt.UTC().Format(time.RFC3339)
		}
	}
	writeJSON(w, http.StatusOK, rows)
}

// handlePreview renders the opening frame of a new game.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	engine, err := breakout.New(s.cfg.Game)
	if err != nil {
		writeError(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	png := render.NewPNG(int(s.cfg.Game.Playfield.Width), int(s.cfg.Game.Playfield.Height))
	if err := png.Encode(w, engine.Snapshot()); err != nil {
		s.logger.Warn("preview encode failed", "err", err)
	}
}

// bearerToken reads "Authorization: Bearer <token>" or the token query parameter.
func bearerToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	return r.URL.Query().Get("token")
}

// decodeBody decodes a JSON body into v, writing a 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, errorResponse{Error: message})
}
