// Package viewmodel holds the per-entity collections screens bind to: the last
// fetched list, a busy flag, the last error message and a derived filtered view.
package viewmodel

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/mhAkoum/LearnTrack-sub000/internal/domain"
	"github.com/mhAkoum/LearnTrack-sub000/internal/repository"
)

// ErrInvalidInput wraps client-side validation failures. No request is sent.
var ErrInvalidInput = errors.New("invalid input")

// Store is the slice of a repository a collection needs.
type Store[T, C, U any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, in C) (*T, error)
	Update(ctx context.Context, id int64, in U) (*T, error)
	Delete(ctx context.Context, id int64) error
}

// collection is the state machine shared by every view-model:
// idle -> fetching -> idle (with or without error), idle -> mutating -> idle.
//
// Callers are expected to await one operation before starting the next. The mutex
// only keeps reads memory-safe; overlapping fetches still race and the last one wins.
type collection[T, C, U any] struct {
	store Store[T, C, U]
	name  string
	log   zerolog.Logger

	mu        sync.RWMutex
	items     []T
	busy      bool
	lastError string
	search    string
}

func newCollection[T, C, U any](name string, store Store[T, C, U], log zerolog.Logger) *collection[T, C, U] {
	return &collection[T, C, U]{
		store: store,
		name:  name,
		log:   log.With().Str("collection", name).Logger(),
		items: []T{},
	}
}

// Fetch replaces the held list with the backend's. Failures are recorded in
// LastError and never returned; the previous list is kept.
func (c *collection[T, C, U]) Fetch(ctx context.Context) {
	c.begin()

	items, err := c.store.List(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = false
	if err != nil {
		c.lastError = repository.Message(err)
		c.log.Warn().Err(err).Msg("fetch failed")
		return
	}
	if items == nil {
		items = []T{}
	}
	c.items = items
	c.log.Debug().Int("count", len(items)).Msg("fetched")
}

// Create validates in, sends it, then refetches the whole list.
func (c *collection[T, C, U]) Create(ctx context.Context, in C) (*T, error) {
	var created *T
	err := c.mutate(ctx, "create", in, func() (err error) {
		created, err = c.store.Create(ctx, in)
		return err
	})
	return created, err
}

// Update sends the present fields of in, then refetches the whole list.
func (c *collection[T, C, U]) Update(ctx context.Context, id int64, in U) (*T, error) {
	var updated *T
	err := c.mutate(ctx, "update", in, func() (err error) {
		updated, err = c.store.Update(ctx, id, in)
		return err
	})
	return updated, err
}

// Delete removes an item, then refetches the whole list.
func (c *collection[T, C, U]) Delete(ctx context.Context, id int64) error {
	return c.mutate(ctx, "delete", nil, func() error {
		return c.store.Delete(ctx, id)
	})
}

// mutate runs op; on failure it records the message, leaves items untouched and
// returns the error so a form can stay open.
func (c *collection[T, C, U]) mutate(ctx context.Context, op string, input any, call func() error) error {
	if input != nil {
		if err := domain.Validate(input); err != nil {
			err = fmt.Errorf("%w: %s", ErrInvalidInput, validationMessage(err))
			c.fail(op, err)
			return err
		}
	}

	c.begin()
	if err := call(); err != nil {
		c.fail(op, err)
		return err
	}
	c.log.Debug().Str("op", op).Msg("mutation succeeded, refreshing")
	c.Fetch(ctx)
	return nil
}

func (c *collection[T, C, U]) begin() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = true
	c.lastError = ""
}

func (c *collection[T, C, U]) fail(op string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = false
	c.lastError = repository.Message(err)
	c.log.Warn().Err(err).Str("op", op).Msg("mutation failed")
}

// Items returns a copy of the last fetched list, in backend order.
func (c *collection[T, C, U]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]T(nil), c.items...)
}

// IsBusy reports whether an operation is in flight.
func (c *collection[T, C, U]) IsBusy() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.busy
}

// LastError is the message of the last failure, or "" after a successful operation.
func (c *collection[T, C, U]) LastError() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastError
}

func (c *collection[T, C, U]) Search() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.search
}

func (c *collection[T, C, U]) SetSearch(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.search = s
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s fails %q", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, ", ")
}
