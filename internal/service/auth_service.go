package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/rs/zerolog"

	"github.com/mhAkoum/LearnTrack-sub000/internal/domain"
	"github.com/mhAkoum/LearnTrack-sub000/internal/repository"
	"github.com/mhAkoum/LearnTrack-sub000/internal/storage"
)

// Keys used in the token store.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyCurrentUser  = "current_user"
)

// expiryLeeway refreshes a token slightly before the backend would reject it.
const expiryLeeway = 30 * time.Second

var ErrNotAuthenticated = errors.New("not logged in")

// AuthService keeps the session of the signed-in user and hands bearer tokens
// to the gateway.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*domain.User, error)
	Register(ctx context.Context, in domain.Registration) (*domain.User, error)
	Logout() error
	CurrentUser() (*domain.User, error)
	IsAuthenticated() bool

	// AccessToken and Refresh make the service usable as the gateway's token source.
	AccessToken(ctx context.Context) (string, error)
	Refresh(ctx context.Context) (string, error)
}

type authService struct {
	authRepo repository.AuthRepository
	tokens   storage.TokenStore
	fallback string
	now      func() time.Time
	log      zerolog.Logger

	// serializes refreshes so concurrent 401s spend one refresh token
	refreshMu sync.Mutex
}

type AuthOption func(*authService)

// WithFallbackToken sets a bearer used while nobody is logged in.
func WithFallbackToken(token string) AuthOption {
	return func(s *authService) { s.fallback = token }
}

func NewAuthService(authRepo repository.AuthRepository, tokens storage.TokenStore, log zerolog.Logger, opts ...AuthOption) AuthService {
	s := &authService{
		authRepo: authRepo,
		tokens:   tokens,
		now:      time.Now,
		log:      log.With().Str("service", "auth").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	in := domain.Credentials{Email: email, Password: password}
	if err := domain.Validate(in); err != nil {
		return nil, fmt.Errorf("%w: email and password are required", repository.ErrAuthentication)
	}
	resp, err := s.authRepo.Login(ctx, in)
	if err != nil {
		s.log.Info().Str("email", email).Err(err).Msg("login failed")
		return nil, err
	}
	if err := s.persist(resp); err != nil {
		return nil, err
	}
	s.log.Info().Str("email", email).Msg("logged in")
	return resp.User, nil
}

// Register creates the account. When the backend also returns tokens the user
// is signed in right away.
func (s *authService) Register(ctx context.Context, in domain.Registration) (*domain.User, error) {
	if err := domain.Validate(in); err != nil {
		return nil, err
	}
	resp, err := s.authRepo.Register(ctx, in)
	if err != nil {
		return nil, err
	}
	if resp.Token != "" {
		if err := s.persist(resp); err != nil {
			return nil, err
		}
	}
	return resp.User, nil
}

func (s *authService) Logout() error {
	for _, key := range []string{KeyAccessToken, KeyRefreshToken, KeyCurrentUser} {
		if err := s.tokens.Delete(key); err != nil {
			return err
		}
	}
	return nil
}

func (s *authService) CurrentUser() (*domain.User, error) {
	raw, err := s.tokens.Get(KeyCurrentUser)
	if errors.Is(err, storage.ErrTokenNotFound) {
		return nil, ErrNotAuthenticated
	}
	if err != nil {
		return nil, err
	}
	var u domain.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, fmt.Errorf("stored user: %w", err)
	}
	return &u, nil
}

func (s *authService) IsAuthenticated() bool {
	_, err := s.tokens.Get(KeyAccessToken)
	return err == nil
}

// AccessToken returns the stored token, refreshing it first when its exp claim
// has passed. Tokens that are not JWTs are returned as they are.
func (s *authService) AccessToken(ctx context.Context) (string, error) {
	raw, err := s.tokens.Get(KeyAccessToken)
	if errors.Is(err, storage.ErrTokenNotFound) {
		return s.fallback, nil
	}
	if err != nil {
		return "", err
	}
	token := string(raw)
	if !s.expired(token) {
		return token, nil
	}
	fresh, err := s.Refresh(ctx)
	if err != nil {
		// let the backend decide; the gateway retries once on 401
		return token, nil
	}
	return fresh, nil
}

// Refresh trades the stored refresh token for a new pair. One attempt, no retry.
func (s *authService) Refresh(ctx context.Context) (string, error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	raw, err := s.tokens.Get(KeyRefreshToken)
	if errors.Is(err, storage.ErrTokenNotFound) {
		return "", ErrNotAuthenticated
	}
	if err != nil {
		return "", err
	}
	resp, err := s.authRepo.Refresh(ctx, string(raw))
	if err != nil {
		s.log.Warn().Err(err).Msg("token refresh rejected")
		return "", err
	}
	if err := s.persist(resp); err != nil {
		return "", err
	}
	s.log.Debug().Msg("token refreshed")
	return resp.Token, nil
}

func (s *authService) expired(token string) bool {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !s.now().Add(expiryLeeway).Before(claims.ExpiresAt.Time)
}

func (s *authService) persist(resp *domain.AuthResponse) error {
	if resp.Token != "" {
		if err := s.tokens.Save(KeyAccessToken, []byte(resp.Token)); err != nil {
			return err
		}
	}
	if resp.RefreshToken != "" {
		if err := s.tokens.Save(KeyRefreshToken, []byte(resp.RefreshToken)); err != nil {
			return err
		}
	}
	if resp.User != nil {
		raw, err := json.Marshal(resp.User)
		if err != nil {
			return err
		}
		if err := s.tokens.Save(KeyCurrentUser, raw); err != nil {
			return err
		}
	}
	return nil
}
