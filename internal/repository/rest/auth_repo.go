package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mhAkoum/LearnTrack-sub000/internal/domain"
	"github.com/mhAkoum/LearnTrack-sub000/internal/repository"
)

const authPath = "auth"

type authRepository struct {
	client *Client
}

// NewAuthRepository creates a repository for the /auth endpoints.
// The client passed here should not carry a token source.
func NewAuthRepository(client *Client) repository.AuthRepository {
	return &authRepository{client: client}
}

func (r *authRepository) Login(ctx context.Context, in domain.Credentials) (*domain.AuthResponse, error) {
	return r.post(ctx, in, "login")
}

func (r *authRepository) Register(ctx context.Context, in domain.Registration) (*domain.AuthResponse, error) {
	return r.post(ctx, in, "register")
}

func (r *authRepository) Refresh(ctx context.Context, refreshToken string) (*domain.AuthResponse, error) {
	return r.post(ctx, map[string]string{"refresh_token": refreshToken}, "refresh")
}

// post sends body to /auth/{action}. A {success:false} answer, whatever its status,
// is reported as ErrAuthentication carrying the backend message.
func (r *authRepository) post(ctx context.Context, body any, action string) (*domain.AuthResponse, error) {
	resp, err := r.client.roundTrip(ctx, http.MethodPost, body, authPath, action)
	if err != nil {
		return nil, err
	}

	var out domain.AuthResponse
	decodeErr := json.Unmarshal(resp.body, &out)

	switch {
	case resp.status >= 200 && resp.status < 300 && resp.status != http.StatusNoContent:
		if decodeErr != nil {
			return nil, &repository.DecodeError{Err: decodeErr}
		}
		if !out.Success {
			return nil, authFailure(out.Message)
		}
		return &out, nil
	case resp.status == http.StatusNoContent:
		return nil, repository.ErrNoContent
	case decodeErr == nil && out.Message != "" && resp.status >= 400 && resp.status < 500:
		return nil, authFailure(out.Message)
	}
	return nil, statusError(resp)
}

func authFailure(message string) error {
	if message == "" {
		return repository.ErrAuthentication
	}
	return fmt.Errorf("%w: %s", repository.ErrAuthentication, message)
}
