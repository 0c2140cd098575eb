package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/brickbreaker/internal/core"
	"github.com/vovakirdan/brickbreaker/internal/games/breakout"
	"github.com/vovakirdan/brickbreaker/internal/session"
)

// Websocket limits.
const (
	writeWait      = 2 * time.Second
	maxMessageSize = 512
)

// clientMessage is a key event from the browser.
type clientMessage struct {
	Type string `json:"type"` // "keydown" or "keyup"
	Key  string `json:"key"`  // KeyboardEvent.key
}

// Frame is sent once per tick.
type Frame struct {
	Snapshot breakout.Snapshot `json:"snapshot"`
	Events   []breakout.Event  `json:"events"`
}

// keyDirection maps a browser key name to a paddle direction.
func keyDirection(key string) core.Direction {
	switch key {
	case "ArrowLeft", "Left", "a", "A":
		return core.DirLeft
	case "ArrowRight", "Right", "d", "D":
		return core.DirRight
	default:
		return core.DirNone
	}
}

// handleWS upgrades to a websocket and plays one game on it. A valid token
// plays as its user; no token plays as Guest.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	player := session.GuestName
	if token := r.URL.Query().Get("token"); token != "" {
		name, ok := s.tokens.Lookup(token)
		if !ok {
			rejectedTotal.WithLabelValues("token").Inc()
			writeError(w, "invalid or expired token", http.StatusUnauthorized)
			return
		}
		player = name
	}

	engine, err := breakout.New(s.cfg.Game)
	if err != nil {
		writeError(w, "internal error", http.StatusInternalServerError)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied
		s.logger.Warn("websocket upgrade failed", "remote", ClientIP(r, s.cfg.TrustProxy), "err", err)
		return
	}

	s.sessions.Add(1)
	defer s.sessions.Done()
	s.playSession(conn, engine, player, ClientIP(r, s.cfg.TrustProxy))
}

// playSession runs the engine at the configured rate until the client
// disconnects or the server shuts down.
func (s *Server) playSession(conn *websocket.Conn, engine *breakout.Engine, player, remote string) {
	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	logger := s.logger.With("user", player, "remote", remote)
	logger.Info("game session started")
	activeSessions.Inc()
	defer func() {
		activeSessions.Dec()
		logger.Info("game session ended", "score", engine.State().Score)
	}()

	latch := core.NewInputLatch()
	recorder := session.NewScoreRecorder(s.cfg.Store, session.StaticPlayer(player), logger)

	driver := session.NewDriver(engine, latch,
		session.WithLogger(logger),
		session.WithTickHook(recordTick),
		session.WithSink(session.SinkFunc(recordEvent)),
		session.WithSink(recorder),
		session.WithFrameHook(func(snap breakout.Snapshot, events []breakout.Event) {
			if err := writeFrame(conn, snap, events); err != nil {
				logger.Debug("frame write failed", "err", err)
				cancel()
			}
		}),
	)

	go readInput(conn, latch, cancel)

	if err := driver.Run(ctx, s.cfg.FPS); err != nil {
		logger.Error("game session failed", "err", err)
	}

	conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
	conn.Close()
}

// readInput feeds key events into latch until the connection fails.
func readInput(conn *websocket.Conn, latch *core.InputLatch, cancel context.CancelFunc) {
	defer cancel()
	conn.SetReadLimit(maxMessageSize)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}

		dir := keyDirection(msg.Key)
		switch msg.Type {
		case "keydown":
			latch.Press(dir)
		case "keyup":
			latch.Release(dir)
		}
	}
}

func writeFrame(conn *websocket.Conn, snap breakout.Snapshot, events []breakout.Event) error {
	if events == nil {
		events = []breakout.Event{}
	}
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(Frame{Snapshot: snap, Events: events})
}
