package rest

import (
	"context"
	"net/http"
	"strconv"

	"github.com/mhAkoum/LearnTrack-sub000/internal/domain"
)

// resource implements the CRUD verbs shared by every collection endpoint.
// T is the decoded entity, C its Create shape and U its Update shape.
type resource[T, C, U any] struct {
	client *Client
	path   string
}

func (r resource[T, C, U]) list(ctx context.Context) ([]T, error) {
	var items []T
	if err := r.client.do(ctx, http.MethodGet, nil, &items, r.path); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (r resource[T, C, U]) get(ctx context.Context, id int64) (*T, error) {
	var item T
	if err := r.client.do(ctx, http.MethodGet, nil, &item, r.path, idSegment(id)); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r resource[T, C, U]) create(ctx context.Context, in C) (*T, error) {
	var item T
	if err := r.client.do(ctx, http.MethodPost, in, &item, r.path); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r resource[T, C, U]) update(ctx context.Context, id int64, in U) (*T, error) {
	var item T
	if err := r.client.do(ctx, http.MethodPut, in, &item, r.path, idSegment(id)); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r resource[T, C, U]) delete(ctx context.Context, id int64) error {
	return r.client.do(ctx, http.MethodDelete, nil, nil, r.path, idSegment(id))
}

// sessions lists the sessions nested under one item, e.g. /clients/{id}/sessions.
func (r resource[T, C, U]) sessions(ctx context.Context, id int64) ([]domain.Session, error) {
	var items []domain.Session
	if err := r.client.do(ctx, http.MethodGet, nil, &items, r.path, idSegment(id), "sessions"); err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Session{}
	}
	return items, nil
}

func idSegment(id int64) string {
	return strconv.FormatInt(id, 10)
}
