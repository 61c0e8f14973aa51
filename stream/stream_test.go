package stream

import (
	"bytes"
	"context"
	"image/png"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pthm-cable/aurora/config"
	"github.com/pthm-cable/aurora/loop"
)

func init() {
	// Initialize config for tests
	config.MustInit("")
}

func testServer(t *testing.T, maxClients int) (*Server, *httptest.Server) {
	t.Helper()
	cfg := *config.Cfg()
	cfg.Screen.Width = 160
	cfg.Screen.Height = 100
	cfg.Stream.MaxClients = maxClients
	s := NewServer(&cfg, loop.WithRand(rand.New(rand.NewSource(3))))
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		s.hub.CloseAll()
		ts.Close()
		s.Unmount()
	})
	return s, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitClients(t *testing.T, h *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.Len() != want {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d clients, got %d", want, h.Len())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func readFrame(t *testing.T, conn *websocket.Conn) (int, int) {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	mt, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read frame: %v", err)
	}
	if mt != websocket.BinaryMessage {
		t.Fatalf("expected binary message, got type %d", mt)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode frame: %v", err)
	}
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

func TestIndexPage(t *testing.T) {
	_, ts := testServer(t, 0)

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), "/ws") {
		t.Error("expected viewer page to open the frame socket")
	}

	resp, err = http.Get(ts.URL + "/missing")
	if err != nil {
		t.Fatalf("GET /missing: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
}

func TestFramesReachViewer(t *testing.T) {
	s, ts := testServer(t, 0)
	s.Mount()
	conn := dial(t, ts)
	waitClients(t, s.hub, 1)

	s.Tick(16)
	w, h := readFrame(t, conn)
	if w != 160 || h != 100 {
		t.Errorf("expected 160x100 frame, got %dx%d", w, h)
	}
	if s.amb.Frames() != 1 {
		t.Errorf("expected 1 frame rendered, got %d", s.amb.Frames())
	}
}

func TestViewerResize(t *testing.T) {
	s, ts := testServer(t, 0)
	s.Mount()
	conn := dial(t, ts)
	waitClients(t, s.hub, 1)

	if err := conn.WriteJSON(controlMessage{Type: "resize", Width: 80, Height: 40}); err != nil {
		t.Fatalf("write resize: %v", err)
	}

	var w, h int
	for i := 0; i < 100; i++ {
		s.Tick(float64(i) * 16)
		w, h = readFrame(t, conn)
		if w == 80 && h == 40 {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	if w != 80 || h != 40 {
		t.Fatalf("expected stream resized to 80x40, got %dx%d", w, h)
	}
	if got, want := s.amb.Field().Count(), 0; got != want {
		// 80*40/8000 rounds down to zero particles
		t.Errorf("expected %d particles after resize, got %d", want, got)
	}
}

func TestRequestResizeClamps(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		wantW, wantH int
	}{
		{"zero", 0, 0, 1, 1},
		{"negative", -5, 20, 1, 20},
		{"huge", 9000, 300, 4096, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := testServer(t, 0)
			s.Mount()
			s.RequestResize(tt.w, tt.h)
			s.Tick(0)
			w, h := s.win.Size()
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("expected %dx%d, got %dx%d", tt.wantW, tt.wantH, w, h)
			}
		})
	}
}

func TestTooManyClients(t *testing.T) {
	s, ts := testServer(t, 1)
	dial(t, ts)
	waitClients(t, s.hub, 1)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		conn.Close()
		t.Fatal("expected second viewer to be refused")
	}
	if resp == nil || resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %v", resp)
	}
}

func TestViewerDisconnect(t *testing.T) {
	s, ts := testServer(t, 0)
	conn := dial(t, ts)
	waitClients(t, s.hub, 1)

	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	conn.Close()
	waitClients(t, s.hub, 0)
}

func TestHubDropsForSlowClients(t *testing.T) {
	h := NewHub(0)
	c := &client{id: "slow", send: make(chan []byte, sendBuffer)}
	h.clients[c.id] = c

	for i := 0; i < sendBuffer; i++ {
		if dropped := h.Broadcast([]byte{byte(i)}); dropped != 0 {
			t.Fatalf("expected no drops while queue has room, got %d", dropped)
		}
	}
	if dropped := h.Broadcast([]byte{0xff}); dropped != 1 {
		t.Errorf("expected 1 drop on a full queue, got %d", dropped)
	}

	h.CloseAll()
	h.remove(c)
	n := 0
	for range c.send {
		n++
	}
	if n != sendBuffer {
		t.Errorf("expected %d queued frames, got %d", sendBuffer, n)
	}
	if h.Len() != 0 {
		t.Errorf("expected empty hub, got %d", h.Len())
	}
}

func TestHubCapacity(t *testing.T) {
	h := NewHub(2)
	if h.Full() {
		t.Fatal("expected empty hub to have room")
	}
	h.clients["a"] = &client{id: "a", send: make(chan []byte, 1)}
	h.clients["b"] = &client{id: "b", send: make(chan []byte, 1)}
	if !h.Full() {
		t.Error("expected hub at capacity to be full")
	}
	if _, err := h.add(nil); err != ErrTooManyClients {
		t.Errorf("expected ErrTooManyClients, got %v", err)
	}
}

func TestRunStopsAndDisconnects(t *testing.T) {
	s, ts := testServer(t, 0)
	conn := dial(t, ts)
	waitClients(t, s.hub, 1)

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()
	if err := s.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if s.amb.State() != loop.StateIdle {
		t.Errorf("expected idle after Run, got %v", s.amb.State())
	}
	if s.hub.Len() != 0 {
		t.Errorf("expected all viewers disconnected, got %d", s.hub.Len())
	}

	// Drain frames until the server's close arrives.
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				t.Errorf("expected normal close, got %v", err)
			}
			break
		}
	}
}
