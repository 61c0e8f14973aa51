// Package stream serves the ambient field over HTTP: the server renders
// frames and pushes them as PNG over a websocket to every connected viewer.
package stream

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"image/png"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gorilla/websocket"

	"github.com/pthm-cable/aurora/config"
	"github.com/pthm-cable/aurora/loop"
	"github.com/pthm-cable/aurora/renderer"
)

//go:embed index.html
var indexHTML []byte

const (
	writeWait      = 5 * time.Second
	maxMessageSize = 512
	maxDimension   = 4096
)

// controlMessage is sent by viewers.
type controlMessage struct {
	Type   string `json:"type"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Server renders one shared stream. All viewers see the same frames; the
// most recent resize request sets the stream size.
type Server struct {
	cfg      *config.Config
	sched    *loop.ManualScheduler
	win      *loop.Window
	amb      *loop.Ambient
	canvas   *renderer.Canvas
	hub      *Hub
	resizes  chan [2]int
	upgrader websocket.Upgrader
	encoder  png.Encoder
	buf      bytes.Buffer
}

// NewServer creates a stream server. opts are passed to the renderer.
func NewServer(cfg *config.Config, opts ...loop.Option) *Server {
	s := &Server{
		cfg:     cfg,
		sched:   loop.NewManualScheduler(),
		win:     loop.NewWindow(cfg.Screen.Width, cfg.Screen.Height),
		hub:     NewHub(cfg.Stream.MaxClients),
		resizes: make(chan [2]int, 16),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		encoder: png.Encoder{CompressionLevel: png.BestSpeed},
	}
	s.canvas = renderer.NewCanvas(cfg.Screen.Width, cfg.Screen.Height)
	s.amb = loop.New(cfg, s.sched, s.win, opts...)
	return s
}

// Handler returns the HTTP routes: the viewer page at / and the frame socket at /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(indexHTML)
	})
	mux.HandleFunc("/ws", s.serveWS)
	return mux
}

// Hub returns the client hub.
func (s *Server) Hub() *Hub { return s.hub }

// Ambient returns the renderer driving the stream.
func (s *Server) Ambient() *loop.Ambient { return s.amb }

// Mount starts the renderer. Run calls it; tests driving Tick directly call it themselves.
func (s *Server) Mount() { s.amb.Mount(s.canvas) }

// Unmount stops the renderer.
func (s *Server) Unmount() { s.amb.Unmount() }

// Tick applies pending resizes, composes one frame at now (ms) and sends
// it to every viewer. Must be called from a single goroutine.
func (s *Server) Tick(now float64) {
drain:
	for {
		select {
		case sz := <-s.resizes:
			s.win.Resize(sz[0], sz[1])
		default:
			break drain
		}
	}

	s.sched.Fire(now)
	if s.hub.Len() == 0 {
		return
	}

	s.buf.Reset()
	if err := s.encoder.Encode(&s.buf, s.canvas.Image()); err != nil {
		slog.Warn("stream: encoding frame failed", "error", err)
		return
	}
	frame := append([]byte(nil), s.buf.Bytes()...)
	if dropped := s.hub.Broadcast(frame); dropped > 0 {
		slog.Debug("stream: slow viewers skipped a frame", "dropped", dropped)
	}
	s.amb.Perf().RecordPresent()

	if f := s.amb.Frames(); f > 0 && f%uint64(s.cfg.Stream.FPS*10) == 0 {
		slog.Info("stream", "frame", f, "clients", s.hub.Len(), "frame_size", humanize.Bytes(uint64(len(frame))))
	}
}

// Run renders at the configured rate until ctx is done, then disconnects every viewer.
func (s *Server) Run(ctx context.Context) error {
	s.Mount()
	defer s.Unmount()
	defer s.hub.CloseAll()

	ticker := time.NewTicker(time.Second / time.Duration(s.cfg.Stream.FPS))
	defer ticker.Stop()
	clock := loop.NewStopwatch(nil)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.Tick(clock.Millis())
		}
	}
}

// ListenAndServe serves HTTP on the configured address and renders until
// ctx is done, then shuts the listener down.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.Stream.Address,
		Handler: s.Handler(),
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	runDone := make(chan error, 1)
	go func() { runDone <- s.Run(ctx) }()

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("stream server listening", "address", srv.Addr)
		serveErr <- srv.ListenAndServe()
	}()

	var err error
	select {
	case <-ctx.Done():
	case err = <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		} else {
			err = fmt.Errorf("serving http: %w", err)
		}
	}
	cancel()

	shutdownCtx, stop := context.WithTimeout(context.Background(), writeWait)
	defer stop()
	if shutErr := srv.Shutdown(shutdownCtx); shutErr != nil && err == nil {
		err = fmt.Errorf("shutting down http: %w", shutErr)
	}
	if runErr := <-runDone; runErr != nil && err == nil {
		err = runErr
	}
	return err
}

// RequestResize queues a stream resize, clamped to [1, 4096] per side.
// It never blocks; requests arriving faster than frames are dropped.
func (s *Server) RequestResize(w, h int) {
	w = min(max(w, 1), maxDimension)
	h = min(max(h, 1), maxDimension)
	select {
	case s.resizes <- [2]int{w, h}:
	default:
	}
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	if s.hub.Full() {
		http.Error(w, ErrTooManyClients.Error(), http.StatusServiceUnavailable)
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		if _, ok := err.(websocket.HandshakeError); !ok {
			slog.Warn("stream: upgrade failed", "error", err)
		}
		return
	}
	c, err := s.hub.add(conn)
	if err != nil {
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, err.Error()))
		conn.Close()
		return
	}
	slog.Info("stream: viewer connected", "client", c.id, "remote", r.RemoteAddr, "clients", s.hub.Len())

	go s.writePump(c)
	s.readPump(c)
}

// readPump handles control messages until the viewer goes away.
func (s *Server) readPump(c *client) {
	defer func() {
		s.hub.remove(c)
		slog.Info("stream: viewer disconnected", "client", c.id, "clients", s.hub.Len())
	}()

	c.conn.SetReadLimit(maxMessageSize)
	for {
		var msg controlMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Warn("stream: read failed", "client", c.id, "error", err)
			}
			return
		}
		switch msg.Type {
		case "resize":
			s.RequestResize(msg.Width, msg.Height)
		default:
			slog.Debug("stream: unknown message", "client", c.id, "type", msg.Type)
		}
	}
}

// writePump sends queued frames until the hub closes the queue.
func (s *Server) writePump(c *client) {
	defer c.conn.Close()
	for frame := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
			slog.Debug("stream: write failed", "client", c.id, "error", err)
			return
		}
	}
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
