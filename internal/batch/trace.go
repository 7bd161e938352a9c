package batch

import "time"

// Span is one named segment of a request's path through the pipeline.
type Span struct {
	Name  string
	Start time.Time
	End   time.Time
}

// Trace records the spans a single request passes through. It is carried in
// the batch alongside the request it belongs to.
type Trace struct {
	ID    string
	spans []Span
	open  int
}

// NewTrace starts a trace for the given request id.
func NewTrace(id string) *Trace {
	return &Trace{ID: id, open: -1}
}

// StartSpan opens a named span. An open span is closed first.
func (t *Trace) StartSpan(name string, now time.Time) {
	t.EndSpan(now)
	t.spans = append(t.spans, Span{Name: name, Start: now})
	t.open = len(t.spans) - 1
}

// EndSpan closes the currently open span, if any.
func (t *Trace) EndSpan(now time.Time) {
	if t.open >= 0 {
		t.spans[t.open].End = now
		t.open = -1
	}
}

// Spans returns the recorded spans in order.
func (t *Trace) Spans() []Span { return t.spans }
