package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/mhAkoum/LearnTrack-sub000/internal/domain"
	"github.com/mhAkoum/LearnTrack-sub000/internal/repository"
)

// statusServer answers every request with status and body.
func statusServer(t *testing.T, status int, body string) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	c, err := NewClient(srv.URL)
	if err != nil {
		t.Fatalf("NewClient error = %v", err)
	}
	return c
}

func TestStatusMapping(t *testing.T) {
	ctx := context.Background()

	t.Run("404 is NotFound", func(t *testing.T) {
		_, err := NewClientRepository(statusServer(t, 404, `{"error":"Not found"}`)).List(ctx)
		if !errors.Is(err, repository.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("400 is BadRequest", func(t *testing.T) {
		_, err := NewSessionRepository(statusServer(t, 400, `{}`)).List(ctx)
		if !errors.Is(err, repository.ErrBadRequest) {
			t.Errorf("Expected ErrBadRequest, got %v", err)
		}
	})

	t.Run("500 is ServerError(500)", func(t *testing.T) {
		_, err := NewFormateurRepository(statusServer(t, 500, `oops`)).List(ctx)
		var se *repository.ServerError
		if !errors.As(err, &se) || se.Code != 500 {
			t.Errorf("Expected ServerError(500), got %v", err)
		}
	})

	t.Run("401 is ServerError(401) without token source", func(t *testing.T) {
		_, err := NewEcoleRepository(statusServer(t, 401, `{}`)).Get(ctx, 1)
		if repository.StatusCode(err) != 401 {
			t.Errorf("Expected ServerError(401), got %v", err)
		}
	})

	t.Run("204 where a body is expected is NoContent", func(t *testing.T) {
		_, err := NewUserRepository(statusServer(t, 204, ``)).List(ctx)
		if !errors.Is(err, repository.ErrNoContent) {
			t.Errorf("Expected ErrNoContent, got %v", err)
		}
	})

	t.Run("DELETE 204 succeeds", func(t *testing.T) {
		if err := NewClientRepository(statusServer(t, 204, ``)).Delete(ctx, 7); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("DELETE 200 is ServerError(200)", func(t *testing.T) {
		err := NewClientRepository(statusServer(t, 200, `{}`)).Delete(ctx, 7)
		if repository.StatusCode(err) != 200 {
			t.Errorf("Expected ServerError(200), got %v", err)
		}
	})

	t.Run("DELETE 404 is NotFound", func(t *testing.T) {
		err := NewClientRepository(statusServer(t, 404, ``)).Delete(ctx, 7)
		if !errors.Is(err, repository.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("shape mismatch is DecodeError", func(t *testing.T) {
		_, err := NewClientRepository(statusServer(t, 200, `{"id":1}`)).List(ctx)
		var de *repository.DecodeError
		if !errors.As(err, &de) {
			t.Errorf("Expected DecodeError, got %v", err)
		}
	})

	t.Run("null list decodes to empty slice", func(t *testing.T) {
		items, err := NewClientRepository(statusServer(t, 200, `null`)).List(ctx)
		if err != nil || items == nil || len(items) != 0 {
			t.Errorf("Expected empty slice, got %v, %v", items, err)
		}
	})
}

func TestInvalidURL(t *testing.T) {
	for _, base := range []string{"", "not a url", "/relative/only", "http://"} {
		if _, err := NewClient(base); !errors.Is(err, repository.ErrInvalidURL) {
			t.Errorf("NewClient(%q): expected ErrInvalidURL, got %v", base, err)
		}
	}
}

func TestTransportFailureIsInvalidResponse(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c, err := NewClient(base)
	if err != nil {
		t.Fatalf("NewClient error = %v", err)
	}
	_, err = NewHealthRepository(c).CheckHealth(context.Background())
	if !errors.Is(err, repository.ErrInvalidResponse) {
		t.Errorf("Expected ErrInvalidResponse, got %v", err)
	}
}

func TestRequestShape(t *testing.T) {
	var (
		gotMethod, gotPath, gotContentType, gotRequestID string
		gotBody                                          map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		gotRequestID = r.Header.Get("X-Request-ID")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = io.WriteString(w, `{"id":4,"titre":"Go","date_debut":"2024-05-02","date_fin":"2024-05-03","statut":"planifiee","modalite":"d"}`)
	}))
	defer srv.Close()

	c, _ := NewClient(srv.URL + "/api/")
	repo := NewSessionRepository(c)
	s, err := repo.Update(context.Background(), 4, domain.SessionUpdate{
		HeureDebut: domain.Ptr("08:30"),
		Modalite:   domain.Ptr(domain.Modality("Remote")),
	})
	if err != nil {
		t.Fatalf("Update error = %v", err)
	}

	if gotMethod != http.MethodPut || gotPath != "/api/sessions/4" {
		t.Errorf("Unexpected request %s %s", gotMethod, gotPath)
	}
	if gotContentType != "application/json" || gotRequestID == "" {
		t.Errorf("Missing headers: content-type=%q request-id=%q", gotContentType, gotRequestID)
	}
	if len(gotBody) != 2 || gotBody["heure_debut"] != "08:30:00" || gotBody["modalite"] != "D" {
		t.Errorf("Expected only present fields, normalized; got %v", gotBody)
	}
	if s.Modalite != domain.ModalityRemote || s.Modalite.Word() != domain.WordRemote {
		t.Errorf("Expected remote modality, got %q", s.Modalite)
	}
}

func TestSessionCreateRejectsMalformedTimeWithoutRequest(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	c, _ := NewClient(srv.URL)
	_, err := NewSessionRepository(c).Create(context.Background(), domain.SessionCreate{
		Titre: "Go", DateDebut: "2024-05-02", DateFin: "2024-05-02", HeureDebut: domain.Ptr("8h30"),
	})
	if !errors.Is(err, domain.ErrInvalidTime) {
		t.Errorf("Expected ErrInvalidTime, got %v", err)
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Error("No request must be sent for invalid input")
	}
}

type fakeTokens struct {
	access    string
	refreshed string
	refreshes int
}

func (f *fakeTokens) AccessToken(ctx context.Context) (string, error) { return f.access, nil }

func (f *fakeTokens) Refresh(ctx context.Context) (string, error) {
	f.refreshes++
	f.access = f.refreshed
	return f.refreshed, nil
}

func TestBearerRefreshIsAttemptedOnce(t *testing.T) {
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		if r.Header.Get("Authorization") != "Bearer fresh" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	base, _ := NewClient(srv.URL)
	tokens := &fakeTokens{access: "stale", refreshed: "fresh"}
	if _, err := NewClientRepository(base.WithTokens(tokens)).List(context.Background()); err != nil {
		t.Fatalf("Expected success after refresh, got %v", err)
	}
	if tokens.refreshes != 1 || len(seen) != 2 || seen[0] != "Bearer stale" {
		t.Errorf("Unexpected refresh behaviour: refreshes=%d headers=%v", tokens.refreshes, seen)
	}

	// a refresh that still yields a rejected token surfaces the 401
	seen = nil
	tokens = &fakeTokens{access: "stale", refreshed: "still-stale"}
	_, err := NewClientRepository(base.WithTokens(tokens)).List(context.Background())
	if repository.StatusCode(err) != 401 || tokens.refreshes != 1 || len(seen) != 2 {
		t.Errorf("Expected a single retry then ServerError(401); got err=%v refreshes=%d requests=%d", err, tokens.refreshes, len(seen))
	}

	// the base client is untouched by WithTokens
	seen = nil
	_, _ = NewClientRepository(base).List(context.Background())
	if len(seen) != 1 || seen[0] != "" {
		t.Errorf("Base client must not send tokens, got %v", seen)
	}
}
