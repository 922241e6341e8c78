package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/shoalsync/internal/core/idle"
	"github.com/zeusync/shoalsync/internal/core/models"
	"github.com/zeusync/shoalsync/internal/core/observability/log"
	"github.com/zeusync/shoalsync/internal/core/schooling"
	"github.com/zeusync/shoalsync/internal/core/systems"
	"github.com/zeusync/shoalsync/internal/core/world"
	"github.com/zeusync/shoalsync/internal/render"
)

func newWorld(t *testing.T, agents int) *world.World {
	t.Helper()
	m, err := systems.NewManager(
		schooling.NewSystem(schooling.DefaultParameters()),
		idle.NewSystem(idle.DefaultChances()),
		systems.NewMotion(),
	)
	require.NoError(t, err)
	w, err := world.New(world.Config{Seed: 5, Dt: 0.05, Area: models.NewArea(300, 300), Workers: 2}, m, log.NewNop())
	require.NoError(t, err)
	w.Populate(agents, 0.1)
	return w
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	u := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) FrameMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg FrameMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestNewStreamer_Validates(t *testing.T) {
	_, err := NewStreamer(DefaultConfig(), nil, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	cfg := DefaultConfig()
	cfg.TickRate = 0
	_, err = NewStreamer(cfg, newWorld(t, 1), nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	// past a billion ticks per second the interval truncates to zero
	cfg.TickRate = 2_000_000_000
	_, err = NewStreamer(cfg, newWorld(t, 1), nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	cfg.TickRate = MaxTickRate
	s, err := NewStreamer(cfg, newWorld(t, 1), nil)
	require.NoError(t, err)
	assert.Positive(t, s.interval())
}

func TestStreamer_ClientReceivesFrames(t *testing.T) {
	w := newWorld(t, 20)
	s, err := NewStreamer(DefaultConfig(), w, nil)
	require.NoError(t, err)

	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	conn := dial(t, srv)

	first := readFrame(t, conn)
	assert.Equal(t, w.RunID(), first.RunID)
	assert.Equal(t, uint64(0), first.Tick)
	assert.Equal(t, 20, first.Frame.Len())
	require.Len(t, first.Glyphs, 20)

	require.NoError(t, s.Step(context.Background()))
	next := readFrame(t, conn)
	assert.Equal(t, uint64(1), next.Tick)
	assert.Equal(t, w.Frame().Positions, next.Frame.Positions)
	assert.Equal(t, render.Glyphs(w.Frame())[0].Shape, next.Glyphs[0].Shape)
	assert.Equal(t, 1, s.ClientCount())
}

func TestStreamer_WithoutGlyphs(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Glyphs = false
	s, err := NewStreamer(cfg, newWorld(t, 3), nil)
	require.NoError(t, err)

	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	msg := readFrame(t, dial(t, srv))
	assert.Empty(t, msg.Glyphs)
	assert.Equal(t, 3, msg.Frame.Len())
}

func TestStreamer_MaxClients(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxClients = 1
	s, err := NewStreamer(cfg, newWorld(t, 2), nil)
	require.NoError(t, err)

	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	conn := dial(t, srv)
	readFrame(t, conn)

	u := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	_, resp, err := websocket.DefaultDialer.Dial(u, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestStreamer_Health(t *testing.T) {
	w := newWorld(t, 2)
	s, err := NewStreamer(DefaultConfig(), w, nil)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, w.RunID(), body["run_id"])
}

func TestStreamer_Lifecycle(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ListenAddr = "127.0.0.1:0"
	cfg.TickRate = 200
	w := newWorld(t, 4)
	s, err := NewStreamer(cfg, w, nil)
	require.NoError(t, err)

	assert.ErrorIs(t, s.Stop(context.Background()), ErrServerNotRunning)
	require.NoError(t, s.Start(context.Background()))
	assert.ErrorIs(t, s.Start(context.Background()), ErrServerAlreadyRunning)
	require.NotNil(t, s.Addr())

	conn, _, err := websocket.DefaultDialer.Dial("ws://"+s.Addr().String()+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()

	// the tick loop keeps publishing
	for readFrame(t, conn).Tick < 3 {
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
	assert.Zero(t, s.ClientCount())
	assert.GreaterOrEqual(t, w.TickCount(), uint64(3))
}

func TestStreamer_RejectsUpgradeAfterStop(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ListenAddr = "127.0.0.1:0"
	s, err := NewStreamer(cfg, newWorld(t, 2), nil)
	require.NoError(t, err)

	require.NoError(t, s.Start(context.Background()))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))

	// an upgrade completing after Stop must not register a client
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	conn := dial(t, srv)
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err = conn.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "got %v", err)
	assert.Zero(t, s.ClientCount())
}
