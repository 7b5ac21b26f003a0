package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"

	"github.com/cynthiacxzhang/range-equity-agent/sdk/analysis"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

// Websocket message types.
const (
	TypeCalcEquity = "calc-equity"
	TypeCancel     = "cancel"
	TypeProgress   = "progress"
	TypeResult     = "result"
	TypeError      = "error"
)

// InboundMessage is a client request on the websocket. ID is optional and
// is echoed on every message the request produces.
type InboundMessage struct {
	Type    string          `json:"type"`
	ID      string          `json:"id,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ProgressMessage is sent after each simulation batch.
type ProgressMessage struct {
	Type      string      `json:"type"`
	ID        string      `json:"id,omitempty"`
	Done      int         `json:"done"`
	Total     int         `json:"total"`
	Partial   Frequencies `json:"partial"`
	ElapsedMS int64       `json:"elapsed_ms"`
}

// ResultMessage is the final message of a calculation.
type ResultMessage struct {
	Type         string        `json:"type"`
	ID           string        `json:"id,omitempty"`
	Eq           Frequencies   `json:"eq"`
	HandName     string        `json:"hand_name"`
	Outs         analysis.Outs `json:"outs"`
	Iterations   int           `json:"iterations"`
	Unrecognized []string      `json:"unrecognized,omitempty"`
	ElapsedMS    int64         `json:"elapsed_ms"`
}

// ErrorMessage reports a rejected or failed request.
type ErrorMessage struct {
	Type  string `json:"type"`
	ID    string `json:"id,omitempty"`
	Error string `json:"error"`
}

var errSendBufferFull = errors.New("send buffer full")

// connection is one websocket client. At most one calculation runs per
// connection; a new calc-equity request cancels the previous one.
type connection struct {
	server *Server
	conn   *websocket.Conn
	send   chan any
	logger *log.Logger
	clock  quartz.Clock
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	mu         sync.Mutex
	cancelCalc context.CancelFunc
	calcs      sync.WaitGroup
	closeOnce  sync.Once
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if !s.track() {
		writeError(w, http.StatusServiceUnavailable, errors.New("server is shutting down"))
		return
	}
	defer s.conns.Done()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	ctx, cancel := context.WithCancel(s.ctx)
	c := &connection{
		server: s,
		conn:   conn,
		send:   make(chan any, 64),
		logger: s.logger.WithPrefix("ws"),
		clock:  s.clock,
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	c.logger.Info("Client connected", "remote", r.RemoteAddr)

	go c.writePump()
	c.readPump()
}

func (c *connection) close() {
	c.closeOnce.Do(func() {
		c.cancel()
		c.calcs.Wait()
		<-c.done
		_ = c.conn.Close()
		c.logger.Info("Client disconnected")
	})
}

// readPump handles incoming messages until the client goes away.
func (c *connection) readPump() {
	defer c.close()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg InboundMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			return
		}
		c.handleMessage(msg)
	}
}

// writePump serialises outgoing messages and pings.
func (c *connection) writePump() {
	ticker := c.clock.NewTicker(pingPeriod, "ws", "ping")
	defer func() {
		ticker.Stop()
		close(c.done)
	}()

	for {
		select {
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(msg); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				c.cancel()
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.cancel()
				return
			}

		case <-c.ctx.Done():
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			// unblocks readPump when the server shuts down
			_ = c.conn.Close()
			return
		}
	}
}

func (c *connection) enqueue(msg any) error {
	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return c.ctx.Err()
	default:
		return errSendBufferFull
	}
}

// enqueueWait blocks until the message is queued or the connection closes.
// Results must not be dropped the way progress snapshots may be.
func (c *connection) enqueueWait(msg any) {
	select {
	case c.send <- msg:
	case <-c.ctx.Done():
	}
}

func (c *connection) sendError(id string, err error) {
	c.enqueueWait(ErrorMessage{Type: TypeError, ID: id, Error: err.Error()})
}

// deliver queues the final message of a calculation unless ctx was cancelled
// first. It holds mu so it is ordered against stopCalc.
func (c *connection) deliver(ctx context.Context, msg any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ctx.Err() != nil {
		return false
	}
	c.enqueueWait(msg)
	return true
}

func (c *connection) handleMessage(msg InboundMessage) {
	c.logger.Debug("Received message", "type", msg.Type)

	switch msg.Type {
	case TypeCalcEquity:
		var in EquityRequest
		if err := json.Unmarshal(msg.Payload, &in); err != nil {
			c.sendError(msg.ID, errors.New("failed to parse calc-equity payload"))
			return
		}
		calc, err := c.server.prepare(in)
		if err != nil {
			c.sendError(msg.ID, err)
			return
		}
		c.start(msg.ID, calc)

	case TypeCancel:
		c.stopCalc()

	default:
		c.sendError(msg.ID, errors.New("unknown message type: "+msg.Type))
	}
}

func (c *connection) stopCalc() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancelCalc != nil {
		c.cancelCalc()
		c.cancelCalc = nil
	}
}

// start runs calc in the background, streaming progress and the result.
func (c *connection) start(id string, calc *calculation) {
	c.stopCalc()

	ctx, cancel := context.WithCancel(c.ctx)
	c.mu.Lock()
	c.cancelCalc = cancel
	c.mu.Unlock()

	c.calcs.Add(1)
	go func() {
		defer c.calcs.Done()
		defer cancel()

		started := c.clock.Now()
		opts := calc.opts
		// progress is only reported by the chunked path
		opts.Workers = 1
		opts.OnProgress = func(p analysis.Progress) {
			if ctx.Err() != nil {
				return
			}
			if err := c.enqueue(ProgressMessage{
				Type:      TypeProgress,
				ID:        id,
				Done:      p.Done,
				Total:     p.Total,
				Partial:   frequencies(p.Partial),
				ElapsedMS: c.clock.Since(started).Milliseconds(),
			}); err != nil {
				c.logger.Debug("Dropped progress message", "error", err)
			}
		}

		rep, err := analysis.Analyze(ctx, calc.req, calc.rng, opts)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				c.logger.Debug("Calculation cancelled", "id", id, "done", rep.Iterations)
				return
			}
			c.deliver(ctx, ErrorMessage{Type: TypeError, ID: id, Error: err.Error()})
			return
		}

		outs := rep.Outs
		if outs == nil {
			outs = analysis.Outs{}
		}
		delivered := c.deliver(ctx, ResultMessage{
			Type:         TypeResult,
			ID:           id,
			Eq:           frequencies(rep.Equity),
			HandName:     rep.HandName,
			Outs:         outs,
			Iterations:   rep.Iterations,
			Unrecognized: calc.unrecognized,
			ElapsedMS:    c.clock.Since(started).Milliseconds(),
		})
		if !delivered {
			c.logger.Debug("Dropped superseded result", "id", id)
		}
	}()
}
