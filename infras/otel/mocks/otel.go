// Package mocks provides tracing fakes. NewOtel discards everything. Recorder keeps what the
// code under test reported so assertions can inspect it.
package mocks

import (
	"context"
	"stayledger/infras/otel"
	"sync"
)

func NewOtel() otel.Otel {
	return &Recorder{discard: true}
}

// Recorder is an otel.Otel whose scopes append to shared slices.
type Recorder struct {
	discard bool

	mu     sync.Mutex
	spans  []string
	events []string
	errors []error
	attrs  map[string]any
}

func NewRecorder() *Recorder {
	return &Recorder{attrs: map[string]any{}}
}

func (r *Recorder) NewScope(ctx context.Context, _, spanName string) (context.Context, otel.Scope) {
	r.record(func() { r.spans = append(r.spans, spanName) })

	return ctx, &scope{recorder: r}
}

func (r *Recorder) Spans() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.spans...)
}

func (r *Recorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.events...)
}

func (r *Recorder) Errors() []error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]error(nil), r.errors...)
}

func (r *Recorder) Attribute(key string) (any, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	value, ok := r.attrs[key]

	return value, ok
}

func (r *Recorder) record(fn func()) {
	if r.discard {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	fn()
}

type scope struct {
	recorder *Recorder
}

func (s *scope) End() {}

func (s *scope) TraceError(err error) {
	s.recorder.record(func() { s.recorder.errors = append(s.recorder.errors, err) })
}

func (s *scope) TraceIfError(err error) {
	if err != nil {
		s.TraceError(err)
	}
}

func (s *scope) AddEvent(name string) {
	s.recorder.record(func() { s.recorder.events = append(s.recorder.events, name) })
}

func (s *scope) SetAttribute(key string, value any) {
	s.recorder.record(func() { s.recorder.attrs[key] = value })
}

func (s *scope) SetAttributes(attributes map[string]any) {
	for key, value := range attributes {
		s.SetAttribute(key, value)
	}
}
