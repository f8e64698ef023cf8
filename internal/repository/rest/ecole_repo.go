package rest

import (
	"context"

	"github.com/mhAkoum/LearnTrack-sub000/internal/domain"
	"github.com/mhAkoum/LearnTrack-sub000/internal/repository"
)

const ecolesPath = "ecoles"

// ecoleRepository implements repository.EcoleRepository over the REST API.
type ecoleRepository struct {
	resource[domain.Ecole, domain.EcoleCreate, domain.EcoleUpdate]
}

// NewEcoleRepository creates a repository for /ecoles.
func NewEcoleRepository(client *Client) repository.EcoleRepository {
	return &ecoleRepository{resource[domain.Ecole, domain.EcoleCreate, domain.EcoleUpdate]{client: client, path: ecolesPath}}
}

// List retrieves every school in backend order.
func (r *ecoleRepository) List(ctx context.Context) ([]domain.Ecole, error) {
	return r.list(ctx)
}

// Get retrieves a single school.
func (r *ecoleRepository) Get(ctx context.Context, id int64) (*domain.Ecole, error) {
	return r.get(ctx, id)
}

func (r *ecoleRepository) Create(ctx context.Context, in domain.EcoleCreate) (*domain.Ecole, error) {
	return r.create(ctx, in)
}

// Update sends only the fields set in the update shape.
func (r *ecoleRepository) Update(ctx context.Context, id int64, in domain.EcoleUpdate) (*domain.Ecole, error) {
	return r.update(ctx, id, in)
}

func (r *ecoleRepository) Delete(ctx context.Context, id int64) error {
	return r.delete(ctx, id)
}

// ListSessions retrieves the sessions linked to the given ecole.
func (r *ecoleRepository) ListSessions(ctx context.Context, id int64) ([]domain.Session, error) {
	return r.sessions(ctx, id)
}
