package repository

import (
	"context"

	"github.com/mhAkoum/LearnTrack-sub000/internal/domain"
)

// FormateurRepository defines the interface for interacting with trainer data.
type FormateurRepository interface {
	List(ctx context.Context) ([]domain.Formateur, error)
	Get(ctx context.Context, id int64) (*domain.Formateur, error)
	Create(ctx context.Context, in domain.FormateurCreate) (*domain.Formateur, error)
	Update(ctx context.Context, id int64, in domain.FormateurUpdate) (*domain.Formateur, error)
	Delete(ctx context.Context, id int64) error
	ListSessions(ctx context.Context, id int64) ([]domain.Session, error)
}

// ClientRepository defines the interface for interacting with client data.
type ClientRepository interface {
	List(ctx context.Context) ([]domain.Client, error)
	Get(ctx context.Context, id int64) (*domain.Client, error)
	Create(ctx context.Context, in domain.ClientCreate) (*domain.Client, error)
	Update(ctx context.Context, id int64, in domain.ClientUpdate) (*domain.Client, error)
	Delete(ctx context.Context, id int64) error
	ListSessions(ctx context.Context, id int64) ([]domain.Session, error)
}

// EcoleRepository defines the interface for interacting with school data.
type EcoleRepository interface {
	List(ctx context.Context) ([]domain.Ecole, error)
	Get(ctx context.Context, id int64) (*domain.Ecole, error)
	Create(ctx context.Context, in domain.EcoleCreate) (*domain.Ecole, error)
	Update(ctx context.Context, id int64, in domain.EcoleUpdate) (*domain.Ecole, error)
	Delete(ctx context.Context, id int64) error
	ListSessions(ctx context.Context, id int64) ([]domain.Session, error)
}

// SessionRepository defines the interface for interacting with session data.
type SessionRepository interface {
	List(ctx context.Context) ([]domain.Session, error)
	Get(ctx context.Context, id int64) (*domain.Session, error)
	Create(ctx context.Context, in domain.SessionCreate) (*domain.Session, error)
	Update(ctx context.Context, id int64, in domain.SessionUpdate) (*domain.Session, error)
	Delete(ctx context.Context, id int64) error
}

// UserRepository defines the interface for interacting with user accounts.
type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id int64) (*domain.User, error)
	Create(ctx context.Context, in domain.UserCreate) (*domain.User, error)
	Update(ctx context.Context, id int64, in domain.UserUpdate) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}

// AuthRepository talks to the /auth endpoints.
type AuthRepository interface {
	Login(ctx context.Context, in domain.Credentials) (*domain.AuthResponse, error)
	Register(ctx context.Context, in domain.Registration) (*domain.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*domain.AuthResponse, error)
}

// HealthRepository exposes the backend diagnostic probes.
type HealthRepository interface {
	CheckHealth(ctx context.Context) (*domain.HealthStatus, error)
	CheckDatabaseHealth(ctx context.Context) (*domain.DatabaseHealth, error)
}
