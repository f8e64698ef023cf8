package rest

import (
	"context"
	"net/http"

	"github.com/mhAkoum/LearnTrack-sub000/internal/domain"
	"github.com/mhAkoum/LearnTrack-sub000/internal/repository"
)

type healthRepository struct {
	client *Client
}

// NewHealthRepository creates a repository for the /health probes.
func NewHealthRepository(client *Client) repository.HealthRepository {
	return &healthRepository{client: client}
}

// CheckHealth calls GET /health.
func (r *healthRepository) CheckHealth(ctx context.Context) (*domain.HealthStatus, error) {
	var status domain.HealthStatus
	if err := r.client.do(ctx, http.MethodGet, nil, &status, "health"); err != nil {
		return nil, err
	}
	return &status, nil
}

// CheckDatabaseHealth calls GET /health/db.
func (r *healthRepository) CheckDatabaseHealth(ctx context.Context) (*domain.DatabaseHealth, error) {
	var status domain.DatabaseHealth
	if err := r.client.do(ctx, http.MethodGet, nil, &status, "health", "db"); err != nil {
		return nil, err
	}
	return &status, nil
}
