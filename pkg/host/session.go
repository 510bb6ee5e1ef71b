package host

import (
	"context"
	"time"

	"log/slog"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/weft-dev/weft/pkg/weft"
)

// Frame is the wire format in both directions.
//
// Inbound: {"type":"click","node":3} or {"type":"input","node":5,"value":"x"}.
// Outbound: {"type":"render","lines":[...]}.
type Frame struct {
	Type  string      `json:"type"`
	Node  uint64      `json:"node,omitempty"`
	Value string      `json:"value,omitempty"`
	Lines []FrameLine `json:"lines,omitempty"`
}

// FrameLine is one rendered line in an outbound frame.
type FrameLine struct {
	Kind LineKind `json:"kind"`
	Text string   `json:"text"`
	Node uint64   `json:"node,omitempty"`
}

// Session owns one connection's system. All system activity happens on the
// session's event-loop goroutine; the read pump and external callers hand
// work over through the dispatch channel.
type Session struct {
	sys  *weft.System
	sink *Sink
	conn *websocket.Conn

	dispatchCh chan func()
	wakeCh     chan struct{}
	done       chan struct{}

	// nodes maps wire IDs to routable node identities, rebuilt after every
	// refresh from the sink's lines.
	nodes    map[uint64]weft.RoutableNodeID
	nodeIDs  map[weft.NodeID]uint64
	nextNode uint64

	cfg     *Config
	metrics *metrics
	tracer  trace.Tracer
	logger  *slog.Logger
}

func newSession(conn *websocket.Conn, app func(weft.Context), cfg *Config, m *metrics, tracer trace.Tracer) *Session {
	s := &Session{
		sink:       &Sink{},
		conn:       conn,
		dispatchCh: make(chan func(), 256),
		wakeCh:     make(chan struct{}, 1),
		done:       make(chan struct{}),
		nodes:      make(map[uint64]weft.RoutableNodeID),
		nodeIDs:    make(map[weft.NodeID]uint64),
		cfg:        cfg,
		metrics:    m,
		tracer:     tracer,
		logger:     cfg.Logger,
	}

	s.sys = weft.NewSystem(func(ctx weft.Context) {
		if weft.IsRefresh(ctx) {
			s.sink.Reset()
		}
		app(WithSink(ctx, s.sink))
	})
	s.sys.SetExternal(s)

	return s
}

// RequestAnimationRefresh implements weft.ExternalInterface: it wakes the
// event loop for another refresh without blocking the current traversal.
func (s *Session) RequestAnimationRefresh() {
	select {
	case s.wakeCh <- struct{}{}:
	default:
	}
}

// TickCount implements weft.ExternalInterface.
func (s *Session) TickCount() uint32 {
	return weft.DefaultTickCount()
}

// Dispatch queues fn to run on the session's event loop. Safe to call from
// any goroutine; this is how asynchronous work reports results back.
func (s *Session) Dispatch(fn func()) {
	select {
	case s.dispatchCh <- fn:
	case <-s.done:
	}
}

// Close shuts the session down.
func (s *Session) Close() {
	select {
	case <-s.done:
	default:
		close(s.done)
	}
}

// run drives the session until the connection drops. It is the only
// goroutine that touches the system.
func (s *Session) run(ctx context.Context) {
	go s.readPump()

	ping := time.NewTicker(s.cfg.PingInterval)
	defer ping.Stop()

	// Initial refresh establishes the graph and the first render.
	s.refresh(ctx)
	s.sendRender()

	for {
		select {
		case fn := <-s.dispatchCh:
			fn()
			s.sendRender()
		case <-s.wakeCh:
			s.refresh(ctx)
			s.sendRender()
		case <-ping.C:
			deadline := time.Now().Add(s.cfg.WriteTimeout)
			if err := s.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				s.Close()
			}
		case <-s.done:
			return
		case <-ctx.Done():
			s.Close()
			return
		}
	}
}

// readPump reads frames off the websocket and hands them to the event loop.
func (s *Session) readPump() {
	s.conn.SetReadLimit(s.cfg.MaxMessageSize)
	for {
		var frame Frame
		if err := s.conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("websocket read failed", "err", err)
			}
			s.Close()
			return
		}
		s.Dispatch(func() { s.handleFrame(frame) })
	}
}

// handleFrame runs on the event loop.
func (s *Session) handleFrame(frame Frame) {
	start := time.Now()
	_, span := s.tracer.Start(context.Background(), "host.frame",
		trace.WithAttributes(
			attribute.String("frame.type", frame.Type),
			attribute.Int64("frame.node", int64(frame.Node)),
		))
	defer span.End()
	defer func() {
		s.metrics.frameDuration.Observe(time.Since(start).Seconds())
	}()

	s.metrics.framesReceived.WithLabelValues(frame.Type).Inc()

	switch frame.Type {
	case "click":
		if target, ok := s.nodes[frame.Node]; ok {
			s.sys.DispatchTargeted(&ClickEvent{}, target)
			s.metrics.dispatches.WithLabelValues("click").Inc()
			s.metrics.refreshes.Inc()
		}
	case "input":
		if target, ok := s.nodes[frame.Node]; ok {
			s.sys.DispatchTargeted(&InputEvent{Text: frame.Value}, target)
			s.metrics.dispatches.WithLabelValues("input").Inc()
			s.metrics.refreshes.Inc()
		}
	case "refresh":
		s.sys.Refresh()
		s.metrics.dispatches.WithLabelValues("refresh").Inc()
		s.metrics.refreshes.Inc()
	default:
		s.logger.Warn("unknown frame type", "type", frame.Type)
	}
	s.rebuildNodeMap()
}

func (s *Session) refresh(ctx context.Context) {
	_, span := s.tracer.Start(ctx, "host.refresh")
	defer span.End()

	s.sys.Refresh()
	s.metrics.refreshes.Inc()
	s.rebuildNodeMap()
}

// rebuildNodeMap reassigns wire IDs after a refresh. IDs are sticky per
// node identity so the client can keep referring to controls it has seen.
func (s *Session) rebuildNodeMap() {
	s.nodes = make(map[uint64]weft.RoutableNodeID, len(s.sink.Lines()))
	for _, line := range s.sink.Lines() {
		if !line.Node.Valid() {
			continue
		}
		wire, ok := s.nodeIDs[line.Node.ID]
		if !ok {
			s.nextNode++
			wire = s.nextNode
			s.nodeIDs[line.Node.ID] = wire
		}
		s.nodes[wire] = line.Node
	}
}

func (s *Session) sendRender() {
	select {
	case <-s.done:
		return
	default:
	}

	out := Frame{Type: "render"}
	for _, line := range s.sink.Lines() {
		fl := FrameLine{Kind: line.Kind, Text: line.Text}
		if line.Node.Valid() {
			fl.Node = s.nodeIDs[line.Node.ID]
		}
		out.Lines = append(out.Lines, fl)
	}

	_ = s.conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
	if err := s.conn.WriteJSON(out); err != nil {
		s.logger.Warn("websocket write failed", "err", err)
		s.Close()
		return
	}
	s.metrics.framesSent.Inc()
}
