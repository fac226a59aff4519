// Package server is the web adapter: it serves each maze session over a
// websocket and exposes stored scores and a health check over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/sung0916/my-english-edu-sub001/pkg/engine/logging"
	"github.com/sung0916/my-english-edu-sub001/pkg/game/content"
	"github.com/sung0916/my-english-edu-sub001/pkg/game/session"
)

// PlayerHeader carries the signed-in player's id
const PlayerHeader = "X-Player-Id"

// ScoreLister lists stored scores. Only local stores can.
type ScoreLister interface {
	Scores(ctx context.Context, gameID int) ([]content.ScoreRecord, error)
}

// Options configure a Server
type Options struct {
	Provider     content.Provider
	Scorer       content.Scorer
	Scores       ScoreLister // optional
	TrapSeconds  int
	TickInterval time.Duration
	Logger       logging.Logger
}

// Server hands out one session per websocket connection
type Server struct {
	opts     Options
	logger   logging.Logger
	upgrader websocket.Upgrader

	mu       sync.RWMutex
	sessions map[string]*session.Engine // by connection id
}

// New creates a server
func New(opts Options) *Server {
	return &Server{
		opts:   opts,
		logger: opts.Logger,
		upgrader: websocket.Upgrader{
			// The game is served to browsers on other origins during development
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		sessions: make(map[string]*session.Engine),
	}
}

// Router returns the HTTP routes
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/scores/{gameId:[0-9]+}", s.handleScores).Methods(http.MethodGet)
	r.HandleFunc("/play/{gameId:[0-9]+}/{level}", s.handlePlay).Methods(http.MethodGet)
	return r
}

// ActiveSessions returns how many websocket sessions are open
func (s *Server) ActiveSessions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Server) addSession(connID string, e *session.Engine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[connID] = e
}

func (s *Server) removeSession(connID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, connID)
}

// Shutdown closes every open session
func (s *Server) Shutdown() {
	s.mu.Lock()
	engines := make([]*session.Engine, 0, len(s.sessions))
	for _, e := range s.sessions {
		engines = append(engines, e)
	}
	s.mu.Unlock()

	for _, e := range engines {
		e.Close()
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.ActiveSessions(),
	})
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	if s.opts.Scores == nil {
		writeJSON(w, http.StatusNotFound, ErrorMessage{Code: ErrCodeBadRequest, Message: "scores are not stored locally"})
		return
	}
	gameID, _ := strconv.Atoi(mux.Vars(r)["gameId"])
	records, err := s.opts.Scores.Scores(r.Context(), gameID)
	if err != nil {
		s.logger.Errorf("list scores for game %d: %v", gameID, err)
		writeJSON(w, http.StatusInternalServerError, ErrorMessage{Code: "internal", Message: "could not list scores"})
		return
	}
	if records == nil {
		records = []content.ScoreRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

// playerID reads the player from the header, then the query string.
// Anything missing or malformed means no player.
func playerID(r *http.Request) content.StaticIdentity {
	raw := strings.TrimSpace(r.Header.Get(PlayerHeader))
	if raw == "" {
		raw = strings.TrimSpace(r.URL.Query().Get("player"))
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id < 0 {
		return 0
	}
	return content.StaticIdentity(id)
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	gameID, _ := strconv.Atoi(vars["gameId"])
	level := content.NormalizeLevel(vars["level"])
	identity := playerID(r)

	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warnf("failed to upgrade connection: %v", err)
		return
	}
	conn := NewConnection(ws, s.logger)
	go conn.WritePump()
	defer conn.Close()

	ctx := r.Context()
	e, err := session.Load(ctx, session.Deps{
		Provider: s.opts.Provider,
		Scorer:   s.opts.Scorer,
		Identity: identity,
		Logger:   s.logger,
	}, session.Options{
		GameID:       gameID,
		Level:        level,
		TrapSeconds:  s.opts.TrapSeconds,
		TickInterval: s.opts.TickInterval,
	})
	if err != nil {
		conn.SendMessage(BaseMessage{Type: MessageTypeError, Payload: ErrorMessage{Code: ErrCodeLoadFailed, Message: err.Error()}})
		return
	}
	defer e.Close()

	s.addSession(conn.ID(), e)
	defer s.removeSession(conn.ID())
	s.logger.Infof("connection %s playing game %d level %s", conn.ID(), gameID, level)

	unsubscribe := e.Subscribe(func(snap session.Snapshot) {
		conn.SendMessage(BaseMessage{Type: MessageTypeState, Payload: snap})
	})
	defer unsubscribe()
	conn.SendMessage(BaseMessage{Type: MessageTypeState, Payload: e.State()})

	conn.ReadPump(func(message []byte) {
		s.handleMessage(ctx, conn, e, message)
	})
}

func (s *Server) handleMessage(ctx context.Context, conn *Connection, e *session.Engine, message []byte) {
	var msg inboundMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		conn.SendMessage(BaseMessage{Type: MessageTypeError, Payload: ErrorMessage{Code: ErrCodeBadRequest, Message: "invalid message"}})
		return
	}
	if msg.Type != MessageTypeCommand {
		conn.SendMessage(BaseMessage{Type: MessageTypeError, Payload: ErrorMessage{Code: ErrCodeBadRequest, Message: "unknown message type " + string(msg.Type)}})
		return
	}
	var cmd CommandMessage
	if err := json.Unmarshal(msg.Payload, &cmd); err != nil {
		conn.SendMessage(BaseMessage{Type: MessageTypeError, Payload: ErrorMessage{Code: ErrCodeBadRequest, Message: "invalid command payload"}})
		return
	}

	if err := e.Submit(ctx, cmd.Text); err != nil {
		if errors.Is(err, session.ErrSessionEnded) {
			conn.SendMessage(BaseMessage{Type: MessageTypeError, Payload: ErrorMessage{Code: ErrCodeSessionEnded, Message: err.Error()}})
			return
		}
		s.logger.Errorf("submit: %v", err)
		return
	}

	select {
	case res, ok := <-e.Done():
		if ok {
			fin := FinishedMessage{Score: res.Score, Saved: res.Saved}
			if res.Err != nil {
				fin.Error = res.Err.Error()
			}
			conn.SendMessage(BaseMessage{Type: MessageTypeFinished, Payload: fin})
		}
	default:
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
