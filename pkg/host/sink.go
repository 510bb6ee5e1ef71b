package host

import (
	"github.com/weft-dev/weft/pkg/weft"
)

// sinkTag is the context tag under which the sink component is stored.
type sinkTag struct{}

// LineKind distinguishes the controls a sink line represents.
type LineKind string

const (
	KindLabel  LineKind = "label"
	KindButton LineKind = "button"
	KindInput  LineKind = "input"
)

// Line is one entry of rendered output. Interactive lines carry the
// routable identity events are delivered to.
type Line struct {
	Kind LineKind
	Text string
	Node weft.RoutableNodeID
}

// Sink collects the lines emitted during one refresh traversal. The
// controller rebuilds it from scratch on every refresh.
type Sink struct {
	lines []Line
}

// Reset discards collected lines. The host calls this at the top of each
// refresh.
func (s *Sink) Reset() {
	s.lines = s.lines[:0]
}

// Lines returns the lines collected by the last refresh.
func (s *Sink) Lines() []Line {
	return s.lines
}

func (s *Sink) emit(l Line) {
	s.lines = append(s.lines, l)
}

// WithSink returns a context extended with the sink component.
func WithSink(ctx weft.Context, s *Sink) weft.Context {
	return weft.With(ctx, sinkTag{}, s)
}

// SinkFromContext returns the sink component of the context.
func SinkFromContext(ctx weft.Context) *Sink {
	return weft.Component[*Sink](ctx, sinkTag{})
}

// ClickEvent is delivered, targeted, to the control the user activated.
type ClickEvent struct{}

// InputEvent carries edited text for an input control.
type InputEvent struct {
	Text string
}

// Label emits a line of text during refresh events.
func Label(ctx weft.Context, text weft.Readable[string]) {
	sink := SinkFromContext(ctx)
	weft.OnRefresh(ctx, func(weft.Context) {
		sink.emit(Line{Kind: KindLabel, Text: weft.ReadOr(text, "")})
	})
}

// Button emits a clickable control bound to an action. The action performs
// when a targeted ClickEvent arrives at this node; the returned identity is
// what a host dispatches the click to.
func Button(ctx weft.Context, label weft.Readable[string], action weft.Action) weft.RoutableNodeID {
	id := weft.GetRoutableNodeID(ctx)
	sink := SinkFromContext(ctx)

	weft.OnRefresh(ctx, func(weft.Context) {
		sink.emit(Line{Kind: KindButton, Text: weft.ReadOr(label, ""), Node: id})
	})

	weft.OnTargetedEvent(ctx, id.ID, func(_ weft.Context, _ *ClickEvent) {
		_ = weft.PerformAction(action)
	})

	return id
}

// Input emits an editable text control bound to a duplex string signal.
// Edits arrive as targeted InputEvents; writes that the signal rejects
// (validation failures) leave the value untouched.
func Input(ctx weft.Context, value weft.Duplex[string]) weft.RoutableNodeID {
	id := weft.GetRoutableNodeID(ctx)
	sink := SinkFromContext(ctx)

	weft.OnRefresh(ctx, func(weft.Context) {
		sink.emit(Line{Kind: KindInput, Text: weft.ReadOr(value, ""), Node: id})
	})

	weft.OnTargetedEvent(ctx, id.ID, func(_ weft.Context, e *InputEvent) {
		_ = weft.WriteSignal[string](value, e.Text)
	})

	return id
}
