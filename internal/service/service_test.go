package service

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mhAkoum/LearnTrack-sub000/internal/domain"
	"github.com/mhAkoum/LearnTrack-sub000/internal/repository"
	"github.com/mhAkoum/LearnTrack-sub000/internal/repository/rest"
	"github.com/mhAkoum/LearnTrack-sub000/internal/storage"
	"github.com/mhAkoum/LearnTrack-sub000/internal/stubapi"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type fixture struct {
	stub   *stubapi.Server
	base   *rest.Client
	tokens *storage.MemoryTokenStore
	auth   AuthService
	api    *rest.Client
}

func newFixture(t *testing.T, requireAuth bool) *fixture {
	t.Helper()
	stub := stubapi.New(stubapi.Config{RequireAuth: requireAuth, JWTSecret: "test"})
	srv := httptest.NewServer(stub.Handler())
	t.Cleanup(srv.Close)

	base, err := rest.NewClient(srv.URL)
	if err != nil {
		t.Fatalf("NewClient error = %v", err)
	}
	tokens := storage.NewMemoryTokenStore()
	auth := NewAuthService(rest.NewAuthRepository(base), tokens, zerolog.Nop())
	return &fixture{stub: stub, base: base, tokens: tokens, auth: auth, api: base.WithTokens(auth)}
}

func TestLoginStoresSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)
	_, _ = f.stub.AddUser("admin@learntrack.fr", "password123", "Admin", "Root", domain.RoleAdmin)

	if f.auth.IsAuthenticated() {
		t.Fatal("Expected a fresh service to be logged out")
	}
	if _, err := f.auth.CurrentUser(); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("Expected ErrNotAuthenticated, got %v", err)
	}

	u, err := f.auth.Login(ctx, "admin@learntrack.fr", "password123")
	if err != nil {
		t.Fatalf("Login error = %v", err)
	}
	if !u.IsAdmin() || !f.auth.IsAuthenticated() {
		t.Errorf("Unexpected login state, user=%+v", u)
	}
	current, err := f.auth.CurrentUser()
	if err != nil || current.Email != "admin@learntrack.fr" {
		t.Errorf("CurrentUser = %+v, %v", current, err)
	}

	// protected routes now accept the stored bearer
	if _, err := rest.NewSessionRepository(f.api).List(ctx); err != nil {
		t.Errorf("Expected authorized list, got %v", err)
	}

	if err := f.auth.Logout(); err != nil {
		t.Fatalf("Logout error = %v", err)
	}
	if f.auth.IsAuthenticated() {
		t.Error("Expected logged out")
	}
	if _, err := rest.NewSessionRepository(f.api).List(ctx); repository.StatusCode(err) != 401 {
		t.Errorf("Expected ServerError(401) after logout, got %v", err)
	}
}

func TestLoginFailures(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	_, _ = f.stub.AddUser("jeanne@learntrack.fr", "password123", "Durand", "Jeanne", domain.RoleUser)

	if _, err := f.auth.Login(ctx, "jeanne@learntrack.fr", "wrong"); !errors.Is(err, repository.ErrAuthentication) {
		t.Errorf("Expected ErrAuthentication, got %v", err)
	}
	if _, err := f.auth.Login(ctx, "", ""); !errors.Is(err, repository.ErrAuthentication) {
		t.Errorf("Expected ErrAuthentication for empty credentials, got %v", err)
	}
	if f.auth.IsAuthenticated() {
		t.Error("A failed login must not store tokens")
	}
}

func TestRegisterSignsIn(t *testing.T) {
	f := newFixture(t, false)
	u, err := f.auth.Register(context.Background(), domain.Registration{
		Email: "new@learntrack.fr", Password: "password123", Nom: "Neuf", Prenom: "Nina",
	})
	if err != nil {
		t.Fatalf("Register error = %v", err)
	}
	if u.Email != "new@learntrack.fr" || u.Role != domain.RoleUser || !f.auth.IsAuthenticated() {
		t.Errorf("Unexpected registration result %+v", u)
	}
	if _, err := f.auth.Register(context.Background(), domain.Registration{Email: "bad"}); err == nil {
		t.Error("Expected validation error")
	}
}

func TestExpiredTokenIsRefreshedProactively(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)
	id, _ := f.stub.AddUser("admin@learntrack.fr", "password123", "Admin", "Root", domain.RoleAdmin)
	if _, err := f.auth.Login(ctx, "admin@learntrack.fr", "password123"); err != nil {
		t.Fatalf("Login error = %v", err)
	}

	expired, _ := f.stub.SignToken(id, domain.RoleAdmin, -time.Minute)
	_ = f.tokens.Save(KeyAccessToken, []byte(expired))

	if _, err := rest.NewClientRepository(f.api).List(ctx); err != nil {
		t.Fatalf("Expected the list to succeed after refresh, got %v", err)
	}
	fresh, _ := f.tokens.Get(KeyAccessToken)
	if string(fresh) == expired {
		t.Error("Expected a new access token to be stored")
	}
	if n := strings.Count(strings.Join(f.stub.Requests(), "\n"), "POST /auth/refresh"); n != 1 {
		t.Errorf("Expected exactly one refresh call, got %d", n)
	}
}

func TestRejectedTokenIsRefreshedOnce(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)
	_, _ = f.stub.AddUser("admin@learntrack.fr", "password123", "Admin", "Root", domain.RoleAdmin)
	if _, err := f.auth.Login(ctx, "admin@learntrack.fr", "password123"); err != nil {
		t.Fatalf("Login error = %v", err)
	}
	// not a JWT, so only the backend can reject it
	_ = f.tokens.Save(KeyAccessToken, []byte("opaque"))

	if _, err := rest.NewEcoleRepository(f.api).List(ctx); err != nil {
		t.Fatalf("Expected success after reactive refresh, got %v", err)
	}

	// refresh tokens are single use: a second forced failure cannot recover
	_ = f.tokens.Save(KeyAccessToken, []byte("opaque"))
	_ = f.tokens.Save(KeyRefreshToken, []byte("consumed"))
	if _, err := rest.NewEcoleRepository(f.api).List(ctx); repository.StatusCode(err) != 401 {
		t.Errorf("Expected ServerError(401) when refresh fails, got %v", err)
	}
}

func TestFallbackToken(t *testing.T) {
	tokens := storage.NewMemoryTokenStore()
	auth := NewAuthService(nil, tokens, zerolog.Nop(), WithFallbackToken("static"))
	if tok, _ := auth.AccessToken(context.Background()); tok != "static" {
		t.Errorf("Expected fallback token, got %q", tok)
	}
	if _, err := auth.Refresh(context.Background()); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("Expected ErrNotAuthenticated without refresh token, got %v", err)
	}
}

// fakeFiles records uploads in memory.
type fakeFiles struct {
	objects    map[string]string
	presignErr error
	deleted    []string
}

func (f *fakeFiles) PutObject(ctx context.Context, key, contentType string, body []byte) error {
	if f.objects == nil {
		f.objects = map[string]string{}
	}
	f.objects[key] = string(body)
	return nil
}

func (f *fakeFiles) GeneratePresignedDownloadURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	if f.presignErr != nil {
		return "", f.presignErr
	}
	return "https://files.example/" + key + "?expires=" + expires.String(), nil
}

func (f *fakeFiles) DeleteObject(ctx context.Context, key string) error {
	delete(f.objects, key)
	f.deleted = append(f.deleted, key)
	return nil
}

func seedSession(t *testing.T, stub *stubapi.Server) int64 {
	t.Helper()
	trainer, _ := stub.Seed(stubapi.Formateurs, domain.Formateur{Nom: "Martin", Prenom: "Claire"})
	client, _ := stub.Seed(stubapi.Clients, domain.Client{Nom: "Acme"})
	missing := int64(99)
	id, err := stub.Seed(stubapi.Sessions, domain.Session{
		Titre:          "Go avancé",
		DateDebut:      "2024-03-04",
		DateFin:        "2024-03-05",
		HeureDebut:     domain.Ptr("09:00:00"),
		HeureFin:       domain.Ptr("17:30:00"),
		FormateurID:    &trainer,
		ClientID:       &client,
		EcoleID:        &missing,
		NbParticipants: domain.Ptr(12),
		Prix:           domain.Ptr(1500.0),
		Statut:         domain.StatusPlanifiee,
		Modalite:       domain.ModalityRemote,
	})
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func shareRepos(c *rest.Client) ShareRepositories {
	return ShareRepositories{
		Sessions:   rest.NewSessionRepository(c),
		Formateurs: rest.NewFormateurRepository(c),
		Clients:    rest.NewClientRepository(c),
		Ecoles:     rest.NewEcoleRepository(c),
	}
}

func TestSessionSummary(t *testing.T) {
	f := newFixture(t, false)
	id := seedSession(t, f.stub)
	svc := NewShareService(shareRepos(f.base), nil, time.Hour, zerolog.Nop())

	text, err := svc.SessionSummary(context.Background(), id)
	if err != nil {
		t.Fatalf("SessionSummary error = %v", err)
	}
	for _, want := range []string{
		"Session: Go avancé\n",
		"Dates: 04/03/2024 - 05/03/2024\n",
		"Hours: 09:00 - 17:30\n",
		"Modality: remote\n",
		"Trainer: Claire Martin\n",
		"Client: Acme\n",
		"School: #99\n",
		"Participants: 12\n",
		"Price: 1500.00 EUR\n",
		"Status: planifiee\n",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("Summary misses %q:\n%s", want, text)
		}
	}

	if _, err := svc.SessionSummary(context.Background(), 42); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if _, err := svc.ShareSession(context.Background(), id); !errors.Is(err, ErrSharingDisabled) {
		t.Errorf("Expected ErrSharingDisabled, got %v", err)
	}
}

func TestRenderSummarySingleDay(t *testing.T) {
	text := RenderSummary(&domain.Session{Titre: "Intro", DateDebut: "2024-01-10", DateFin: "2024-01-10", HeureDebut: domain.Ptr("08:30")}, SummaryNames{})
	if text != "Session: Intro\nDate: 10/01/2024\nHours: from 08:30\n" {
		t.Errorf("Unexpected summary %q", text)
	}
}

func TestShareSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	id := seedSession(t, f.stub)
	files := &fakeFiles{}
	svc := NewShareService(shareRepos(f.base), files, 2*time.Hour, zerolog.Nop())

	url, err := svc.ShareSession(ctx, id)
	if err != nil {
		t.Fatalf("ShareSession error = %v", err)
	}
	if len(files.objects) != 1 {
		t.Fatalf("Expected one upload, got %d", len(files.objects))
	}
	for key, body := range files.objects {
		if !strings.HasPrefix(key, "shares/sessions/1/") || !strings.HasSuffix(key, ".txt") {
			t.Errorf("Unexpected object key %q", key)
		}
		if !strings.Contains(url, key) || !strings.Contains(url, "expires=2h0m0s") {
			t.Errorf("Unexpected url %q", url)
		}
		if !strings.Contains(body, "Go avancé") {
			t.Errorf("Unexpected body %q", body)
		}
	}

	files.presignErr = errors.New("boom")
	if _, err := svc.ShareSession(ctx, id); err == nil {
		t.Fatal("Expected presign failure")
	}
	if len(files.deleted) != 1 || len(files.objects) != 1 {
		t.Errorf("Expected the orphan upload to be removed, deleted=%v", files.deleted)
	}
}
