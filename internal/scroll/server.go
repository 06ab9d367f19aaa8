package scroll

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Faultbox/divescroll/internal/logger"
)

// ProgressPath is the websocket endpoint served by Server.
const ProgressPath = "/progress"

// Message is the JSON frame an embedding page sends on every scroll event.
type Message struct {
	Progress float32 `json:"progress"`
}

// Server accepts progress reports from a host page over a websocket.
type Server struct {
	hub
	upgrader websocket.Upgrader
	log      *zap.Logger
}

// NewServer creates a progress server. Origins are not checked; the
// endpoint is meant for a local embedding page.
func NewServer(log *zap.Logger) *Server {
	return &Server{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		log: logger.OrNop(log),
	}
}

// Handler returns the HTTP handler serving ProgressPath.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(ProgressPath, s.serveProgress)
	return mux
}

func (s *Server) serveProgress(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("progress upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()
	s.log.Info("progress client connected", zap.String("remote", r.RemoteAddr))

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Warn("progress client read failed", zap.Error(err))
			}
			s.log.Info("progress client disconnected", zap.String("remote", r.RemoteAddr))
			return
		}
		s.publish(msg.Progress)
	}
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.log.Info("progress endpoint listening", zap.String("addr", ln.Addr().String()+ProgressPath))
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve progress: %w", err)
	}
	return nil
}
