package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/zeusync/shoalsync/internal/core/models"
	"github.com/zeusync/shoalsync/internal/core/observability/log"
	"github.com/zeusync/shoalsync/internal/render"
)

// Simulation is what the streamer drives. World satisfies it.
type Simulation interface {
	Tick(ctx context.Context) error
	Frame() models.Frame
	RunID() string
}

// MaxTickRate bounds TickRate so the tick interval stays a positive duration.
const MaxTickRate = 1000

// Config holds server configuration
type Config struct {
	ListenAddr string
	// TickRate is ticks per second of wall-clock time.
	TickRate   int
	MaxClients int
	// Glyphs adds the render draw list to every frame message.
	Glyphs bool

	WriteTimeout time.Duration
	// SendBuffer is the number of frames queued per client before frames are dropped.
	SendBuffer int
}

// DefaultConfig returns default server configuration
func DefaultConfig() Config {
	return Config{
		ListenAddr:   "127.0.0.1:8080",
		TickRate:     30,
		MaxClients:   64,
		Glyphs:       true,
		WriteTimeout: 5 * time.Second,
		SendBuffer:   8,
	}
}

// FrameMessage is the JSON document sent to viewers after each tick.
type FrameMessage struct {
	RunID  string         `json:"run_id"`
	Tick   uint64         `json:"tick"`
	Frame  models.Frame   `json:"frame"`
	Glyphs []render.Glyph `json:"glyphs,omitempty"`
}

type client struct {
	id      uuid.UUID
	conn    *websocket.Conn
	send    chan []byte
	dropped atomic.Uint64
}

// Streamer ticks a simulation on a wall-clock interval and broadcasts every
// committed frame to connected websocket clients. Viewers only observe.
type Streamer struct {
	config   Config
	sim      Simulation
	logger   log.Log
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[uuid.UUID]*client
	// closed is set by Stop; upgrades that finish afterwards are turned away.
	closed bool

	latest atomic.Pointer[[]byte]
	frames atomic.Uint64

	running    atomic.Bool
	httpServer *http.Server
	listener   net.Listener
	stop       context.CancelFunc
	workers    sync.WaitGroup
}

func NewStreamer(config Config, sim Simulation, logger log.Log) (*Streamer, error) {
	if sim == nil {
		return nil, fmt.Errorf("%w: nil simulation", ErrInvalidConfig)
	}
	if config.TickRate <= 0 || config.TickRate > MaxTickRate {
		return nil, fmt.Errorf("%w: tick rate must be in [1, %d], got %d", ErrInvalidConfig, MaxTickRate, config.TickRate)
	}
	if config.SendBuffer <= 0 {
		config.SendBuffer = 1
	}
	if logger == nil {
		logger = log.NewNop()
	}

	s := &Streamer{
		config:  config,
		sim:     sim,
		logger:  logger.With(log.String("component", "server")),
		clients: make(map[uuid.UUID]*client),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1 << 16,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
	if err := s.publish(sim.Frame()); err != nil {
		return nil, err
	}
	return s, nil
}

// Handler serves /ws and /healthz.
func (s *Streamer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

// Start listens on the configured address and begins ticking.
func (s *Streamer) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrServerAlreadyRunning
	}
	s.mu.Lock()
	s.closed = false
	s.mu.Unlock()

	listener, err := net.Listen("tcp", s.config.ListenAddr)
	if err != nil {
		s.running.Store(false)
		s.logger.Error("Failed to create listener", log.Error(err))
		return fmt.Errorf("%w: %w", ErrListenerFailed, err)
	}
	s.listener = listener
	s.httpServer = &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}

	loopCtx, cancel := context.WithCancel(ctx)
	s.stop = cancel

	s.workers.Add(2)
	go func() {
		defer s.workers.Done()
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server stopped", log.Error(err))
		}
	}()
	go func() {
		defer s.workers.Done()
		s.tickLoop(loopCtx)
	}()

	s.logger.Info("Server listening",
		log.String("addr", listener.Addr().String()),
		log.Int("tick_rate", s.config.TickRate))
	return nil
}

// Addr is the bound address once started.
func (s *Streamer) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Stop halts ticking, closes every client and shuts the HTTP server down.
func (s *Streamer) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return ErrServerNotRunning
	}
	s.logger.Info("Stopping server")

	s.stop()
	err := s.httpServer.Shutdown(ctx)

	s.mu.Lock()
	s.closed = true
	for id, c := range s.clients {
		close(c.send)
		delete(s.clients, id)
	}
	s.mu.Unlock()

	s.workers.Wait()
	s.logger.Info("Server stopped", log.Uint64("frames", s.frames.Load()))
	return err
}

func (s *Streamer) tickLoop(ctx context.Context) {
	ticker := time.NewTicker(s.interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Step(ctx); err != nil {
				if ctx.Err() != nil {
					return
				}
				s.logger.Error("Tick failed", log.Error(err))
			}
		}
	}
}

func (s *Streamer) interval() time.Duration {
	return time.Second / time.Duration(s.config.TickRate)
}

// Step advances the simulation by one tick and broadcasts the result.
// It must not run concurrently with itself or the tick loop.
func (s *Streamer) Step(ctx context.Context) error {
	if err := s.sim.Tick(ctx); err != nil {
		return err
	}
	return s.publish(s.sim.Frame())
}

func (s *Streamer) publish(frame models.Frame) error {
	msg := FrameMessage{RunID: s.sim.RunID(), Tick: frame.Tick, Frame: frame}
	if s.config.Glyphs {
		msg.Glyphs = render.Glyphs(frame)
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode frame %d: %w", frame.Tick, err)
	}
	s.latest.Store(&data)
	s.frames.Add(1)
	s.broadcast(data)
	return nil
}

// broadcast never blocks on a slow client; its frame is dropped instead.
func (s *Streamer) broadcast(data []byte) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.clients {
		select {
		case c.send <- data:
		default:
			if c.dropped.Add(1) == 1 {
				s.logger.Warn("Client is slow, dropping frames", log.String("client_id", c.id.String()))
			}
		}
	}
}

// ClientCount returns the number of connected viewers.
func (s *Streamer) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

func (s *Streamer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":  "ok",
		"run_id":  s.sim.RunID(),
		"frames":  s.frames.Load(),
		"clients": s.ClientCount(),
	})
}

func (s *Streamer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.config.MaxClients > 0 && s.ClientCount() >= s.config.MaxClients {
		s.logger.Warn("Maximum clients reached, rejecting connection", log.String("remote_addr", r.RemoteAddr))
		http.Error(w, ErrMaxClientsReached.Error(), http.StatusServiceUnavailable)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Websocket upgrade failed", log.Error(err))
		return
	}

	c := &client{
		id:   uuid.New(),
		conn: conn,
		send: make(chan []byte, s.config.SendBuffer),
	}
	if latest := s.latest.Load(); latest != nil {
		c.send <- *latest
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server stopping"))
		_ = conn.Close()
		return
	}
	s.clients[c.id] = c
	count := len(s.clients)
	s.mu.Unlock()

	clientLogger := s.logger.With(log.String("client_id", c.id.String()))
	clientLogger.Info("Client connected",
		log.String("remote_addr", r.RemoteAddr),
		log.Int("total_clients", count))

	go s.readPump(c)
	s.writePump(c, clientLogger)
}

// readPump discards client input and removes the client once the
// connection closes.
func (s *Streamer) readPump(c *client) {
	defer s.remove(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *Streamer) writePump(c *client, logger log.Log) {
	defer func() {
		_ = c.conn.Close()
		logger.Info("Client disconnected", log.Uint64("dropped_frames", c.dropped.Load()))
	}()

	for data := range c.send {
		if s.config.WriteTimeout > 0 {
			_ = c.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
		}
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			logger.Debug("Write failed", log.Error(err))
			s.remove(c)
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseGoingAway, "server stopping"))
}

func (s *Streamer) remove(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[c.id]; ok {
		delete(s.clients, c.id)
		close(c.send)
	}
	_ = c.conn.Close()
}
