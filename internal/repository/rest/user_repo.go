package rest

import (
	"context"

	"github.com/mhAkoum/LearnTrack-sub000/internal/domain"
	"github.com/mhAkoum/LearnTrack-sub000/internal/repository"
)

const usersPath = "users"

// userRepository implements repository.UserRepository over the REST API.
type userRepository struct {
	resource[domain.User, domain.UserCreate, domain.UserUpdate]
}

// NewUserRepository creates a repository for /users.
func NewUserRepository(client *Client) repository.UserRepository {
	return &userRepository{resource[domain.User, domain.UserCreate, domain.UserUpdate]{client: client, path: usersPath}}
}

// List retrieves every user in backend order.
func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	return r.list(ctx)
}

// Get retrieves a single user.
func (r *userRepository) Get(ctx context.Context, id int64) (*domain.User, error) {
	return r.get(ctx, id)
}

func (r *userRepository) Create(ctx context.Context, in domain.UserCreate) (*domain.User, error) {
	return r.create(ctx, in)
}

// Update sends only the fields set in the update shape.
func (r *userRepository) Update(ctx context.Context, id int64, in domain.UserUpdate) (*domain.User, error) {
	return r.update(ctx, id, in)
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	return r.delete(ctx, id)
}
