package rest

import (
	"context"

	"github.com/mhAkoum/LearnTrack-sub000/internal/domain"
	"github.com/mhAkoum/LearnTrack-sub000/internal/repository"
)

const formateursPath = "formateurs"

// formateurRepository implements repository.FormateurRepository over the REST API.
type formateurRepository struct {
	resource[domain.Formateur, domain.FormateurCreate, domain.FormateurUpdate]
}

// NewFormateurRepository creates a repository for /formateurs.
func NewFormateurRepository(client *Client) repository.FormateurRepository {
	return &formateurRepository{resource[domain.Formateur, domain.FormateurCreate, domain.FormateurUpdate]{client: client, path: formateursPath}}
}

// List retrieves every trainer in backend order.
func (r *formateurRepository) List(ctx context.Context) ([]domain.Formateur, error) {
	return r.list(ctx)
}

// Get retrieves a single trainer.
func (r *formateurRepository) Get(ctx context.Context, id int64) (*domain.Formateur, error) {
	return r.get(ctx, id)
}

func (r *formateurRepository) Create(ctx context.Context, in domain.FormateurCreate) (*domain.Formateur, error) {
	return r.create(ctx, in)
}

// Update sends only the fields set in the update shape.
func (r *formateurRepository) Update(ctx context.Context, id int64, in domain.FormateurUpdate) (*domain.Formateur, error) {
	return r.update(ctx, id, in)
}

func (r *formateurRepository) Delete(ctx context.Context, id int64) error {
	return r.delete(ctx, id)
}

// ListSessions retrieves the sessions linked to the given formateur.
func (r *formateurRepository) ListSessions(ctx context.Context, id int64) ([]domain.Session, error) {
	return r.sessions(ctx, id)
}
