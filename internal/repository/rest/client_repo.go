package rest

import (
	"context"

	"github.com/mhAkoum/LearnTrack-sub000/internal/domain"
	"github.com/mhAkoum/LearnTrack-sub000/internal/repository"
)

const clientsPath = "clients"

// clientRepository implements repository.ClientRepository over the REST API.
type clientRepository struct {
	resource[domain.Client, domain.ClientCreate, domain.ClientUpdate]
}

// NewClientRepository creates a repository for /clients.
func NewClientRepository(client *Client) repository.ClientRepository {
	return &clientRepository{resource[domain.Client, domain.ClientCreate, domain.ClientUpdate]{client: client, path: clientsPath}}
}

// List retrieves every client in backend order.
func (r *clientRepository) List(ctx context.Context) ([]domain.Client, error) {
	return r.list(ctx)
}

// Get retrieves a single client.
func (r *clientRepository) Get(ctx context.Context, id int64) (*domain.Client, error) {
	return r.get(ctx, id)
}

func (r *clientRepository) Create(ctx context.Context, in domain.ClientCreate) (*domain.Client, error) {
	return r.create(ctx, in)
}

// Update sends only the fields set in the update shape.
func (r *clientRepository) Update(ctx context.Context, id int64, in domain.ClientUpdate) (*domain.Client, error) {
	return r.update(ctx, id, in)
}

func (r *clientRepository) Delete(ctx context.Context, id int64) error {
	return r.delete(ctx, id)
}

// ListSessions retrieves the sessions linked to the given client.
func (r *clientRepository) ListSessions(ctx context.Context, id int64) ([]domain.Session, error) {
	return r.sessions(ctx, id)
}
