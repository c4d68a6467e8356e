// Package docstore saves and loads named JSON documents held by a Backend.
//
// A Store applies the jsonio save/load contract to documents identified by
// name instead of by file path, and reports its errors as *jsonio.Error with
// the same classification: a missing document is an I/O error, content that
// is not valid JSON or does not fit T is a deserialization error.
package docstore

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/holmberd/go-jsonio/encoder"
	"github.com/holmberd/go-jsonio/eventemitter"
	"github.com/holmberd/go-jsonio/jsonio"
)

type Event int

const (
	DocumentsSaved Event = iota
	DocumentsRemoved
)

func (e Event) String() string {
	switch e {
	case DocumentsSaved:
		return "DocumentsSaved"
	case DocumentsRemoved:
		return "DocumentsRemoved"
	default:
		return fmt.Sprintf("event(%d)", e)
	}
}

// Listener is called synchronously after documents are saved or removed.
type Listener func(ctx context.Context, names []string)

type event struct {
	ctx   context.Context
	names []string
}

type eventTarget struct {
	t *eventemitter.Target[event]
}

func newEventTarget(e Event) *eventTarget {
	return &eventTarget{eventemitter.NewTarget[event](e.String())}
}

func (e *eventTarget) AddListener(listener Listener) eventemitter.ListenerToken {
	return e.t.AddListener(func(ev event) {
		listener(ev.ctx, ev.names)
	})
}

func (e *eventTarget) RemoveListener(token eventemitter.ListenerToken) bool {
	return e.t.RemoveListener(token)
}

func (e *eventTarget) emit(ctx context.Context, names []string) bool {
	return e.t.Emit(event{ctx: ctx, names: names})
}

// Store saves and loads documents of type T.
type Store[T any] struct {
	backend   Backend
	codec     encoder.Codec
	onSaved   *eventTarget
	onRemoved *eventTarget
}

// New creates a new instance of a store.
// A nil codec selects jsonio.DefaultCodec.
func New[T any](backend Backend, codec encoder.Codec) (*Store[T], error) {
	if backend == nil {
		return nil, errors.New("docstore: backend must not be nil")
	}
	if codec == nil {
		codec = jsonio.DefaultCodec
	}
	return &Store[T]{
		backend:   backend,
		codec:     codec,
		onSaved:   newEventTarget(DocumentsSaved),
		onRemoved: newEventTarget(DocumentsRemoved),
	}, nil
}

// MustNew is like New but panics on error.
func MustNew[T any](backend Backend, codec encoder.Codec) *Store[T] {
	s, err := New[T](backend, codec)
	if err != nil {
		log.Panicf("docstore: %v", err)
	}
	return s
}

func (s *Store[T]) Backend() Backend {
	return s.backend
}

func (s *Store[T]) OnSaved() *eventTarget {
	return s.onSaved
}

func (s *Store[T]) OnRemoved() *eventTarget {
	return s.onRemoved
}

// Save encodes v and writes it as the named document, replacing any previous content.
// It triggers the DocumentsSaved event.
func (s *Store[T]) Save(ctx context.Context, name string, v T) error {
	data, err := jsonio.Marshal(s.codec, v)
	if err != nil {
		return withName(err, "save", name)
	}
	if err := s.backend.Put(ctx, name, data); err != nil {
		return &jsonio.Error{Kind: jsonio.KindIO, Op: "save", Path: name, Err: err}
	}
	s.onSaved.emit(ctx, []string{name})
	return nil
}

// Load reads the named document and decodes it into a new value of type T.
// The returned error wraps ErrNotFound if the document does not exist.
func (s *Store[T]) Load(ctx context.Context, name string) (T, error) {
	var v T
	data, err := s.backend.Get(ctx, name)
	if err != nil {
		return v, &jsonio.Error{Kind: jsonio.KindIO, Op: "load", Path: name, Err: err}
	}
	v, err = jsonio.Unmarshal[T](s.codec, data)
	if err != nil {
		return v, withName(err, "load", name)
	}
	return v, nil
}

// Remove removes the named documents. Missing documents are ignored.
// It triggers the DocumentsRemoved event.
func (s *Store[T]) Remove(ctx context.Context, names ...string) error {
	if len(names) == 0 {
		return nil // No-op for empty names.
	}
	if err := s.backend.Delete(ctx, names...); err != nil {
		return fmt.Errorf("docstore: failed to remove documents: %w", err)
	}
	s.onRemoved.emit(ctx, names)
	return nil
}

// Exists checks whether the named document exists.
func (s *Store[T]) Exists(ctx context.Context, name string) (bool, error) {
	return s.backend.Exists(ctx, name)
}

// Names returns the names of all documents held by the backend.
func (s *Store[T]) Names(ctx context.Context) ([]string, error) {
	return s.backend.Names(ctx)
}

// withName sets the operation and document name on a jsonio error.
func withName(err error, op, name string) error {
	var jerr *jsonio.Error
	if !errors.As(err, &jerr) {
		return err
	}
	out := *jerr
	out.Op = op
	out.Path = name
	return &out
}
