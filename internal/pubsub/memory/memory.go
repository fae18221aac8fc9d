// Package memory is the in-process pubsub backend used by tests and
// single-node deployments.
package memory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"

	"docuflow/internal/pubsub"
)

// ErrEngineClosed is returned on any operation after Close.
var ErrEngineClosed = errors.New("memory pubsub engine is closed")

// Engine routes messages between in-process publishers and consumers.
type Engine struct {
	mu     sync.RWMutex
	subs   map[*subscription]struct{}
	closed atomic.Bool
}

type subscription struct {
	pattern string
	ch      chan pubsub.Message
	ctx     context.Context
}

// NewEngine creates an empty in-memory engine.
func NewEngine() *Engine {
	return &Engine{subs: make(map[*subscription]struct{})}
}

// NewPublisher implements pubsub.Provider.
func (e *Engine) NewPublisher() (pubsub.Publisher, error) {
	if e.closed.Load() {
		return nil, ErrEngineClosed
	}
	return &publisher{engine: e}, nil
}

// NewConsumer implements pubsub.Provider.
func (e *Engine) NewConsumer() (pubsub.Consumer, error) {
	if e.closed.Load() {
		return nil, ErrEngineClosed
	}
	return &consumer{engine: e}, nil
}

// Close shuts down the engine and closes all subscription channels.
func (e *Engine) Close() error {
	if e.closed.Swap(true) {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	for sub := range e.subs {
		close(sub.ch)
	}
	e.subs = nil
	return nil
}

func (e *Engine) publish(ctx context.Context, subject string, data []byte) error {
	if e.closed.Load() {
		return ErrEngineClosed
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	for sub := range e.subs {
		if !matchSubject(sub.pattern, subject) {
			continue
		}
		if sub.ctx.Err() != nil {
			continue
		}
		msg := &message{data: data, subject: subject}
		select {
		case sub.ch <- msg:
		default:
			// Slow consumer: drop instead of blocking the publisher.
		}
	}
	return ctx.Err()
}

func (e *Engine) subscribe(ctx context.Context, pattern string) (<-chan pubsub.Message, error) {
	if e.closed.Load() {
		return nil, ErrEngineClosed
	}

	sub := &subscription{
		pattern: pattern,
		ch:      make(chan pubsub.Message, pubsub.ChannelBufSize),
		ctx:     ctx,
	}

	e.mu.Lock()
	e.subs[sub] = struct{}{}
	e.mu.Unlock()

	go func() {
		<-ctx.Done()
		e.mu.Lock()
		defer e.mu.Unlock()
		if _, ok := e.subs[sub]; ok {
			delete(e.subs, sub)
			close(sub.ch)
		}
	}()

	return sub.ch, nil
}

type publisher struct {
	engine *Engine
	closed atomic.Bool
}

func (p *publisher) Publish(ctx context.Context, subject string, data []byte) error {
	if p.closed.Load() {
		return ErrEngineClosed
	}
	return p.engine.publish(ctx, subject, data)
}

func (p *publisher) Close() error {
	p.closed.Store(true)
	return nil
}

type consumer struct {
	engine *Engine
}

func (c *consumer) Subscribe(ctx context.Context, pattern string) (<-chan pubsub.Message, error) {
	return c.engine.subscribe(ctx, pattern)
}

type message struct {
	data    []byte
	subject string
}

func (m *message) Data() []byte    { return m.data }
func (m *message) Subject() string { return m.subject }

// matchSubject checks a subject against a NATS-style pattern: "*" matches a
// single token, ">" matches one or more trailing tokens.
func matchSubject(pattern, subject string) bool {
	if pattern == "" || subject == "" {
		return false
	}

	patternParts := strings.Split(pattern, ".")
	subjectParts := strings.Split(subject, ".")

	for i, p := range patternParts {
		if p == ">" {
			return i < len(subjectParts)
		}
		if i >= len(subjectParts) {
			return false
		}
		if p != "*" && p != subjectParts[i] {
			return false
		}
	}
	return len(patternParts) == len(subjectParts)
}
