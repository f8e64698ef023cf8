package rest

import (
	"context"

	"github.com/mhAkoum/LearnTrack-sub000/internal/domain"
	"github.com/mhAkoum/LearnTrack-sub000/internal/repository"
)

const sessionsPath = "sessions"

// sessionRepository implements repository.SessionRepository over the REST API.
type sessionRepository struct {
	resource[domain.Session, domain.SessionCreate, domain.SessionUpdate]
}

// NewSessionRepository creates a repository for /sessions.
func NewSessionRepository(client *Client) repository.SessionRepository {
	return &sessionRepository{resource[domain.Session, domain.SessionCreate, domain.SessionUpdate]{client: client, path: sessionsPath}}
}

func (r *sessionRepository) List(ctx context.Context) ([]domain.Session, error) {
	return r.list(ctx)
}

func (r *sessionRepository) Get(ctx context.Context, id int64) (*domain.Session, error) {
	return r.get(ctx, id)
}

// Create normalizes dates, times and modality before sending.
// Malformed values fail here and no request is issued.
func (r *sessionRepository) Create(ctx context.Context, in domain.SessionCreate) (*domain.Session, error) {
	normalized, err := in.Normalize()
	if err != nil {
		return nil, err
	}
	return r.create(ctx, normalized)
}

// Update normalizes the present fields the same way Create does.
func (r *sessionRepository) Update(ctx context.Context, id int64, in domain.SessionUpdate) (*domain.Session, error) {
	normalized, err := in.Normalize()
	if err != nil {
		return nil, err
	}
	return r.update(ctx, id, normalized)
}

func (r *sessionRepository) Delete(ctx context.Context, id int64) error {
	return r.delete(ctx, id)
}
