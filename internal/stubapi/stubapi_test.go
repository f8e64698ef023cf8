package stubapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mhAkoum/LearnTrack-sub000/internal/domain"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func serve(s *Server, method, path string, body any, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestCRUDAndPartialUpdate(t *testing.T) {
	s := New(Config{})

	w := serve(s, http.MethodPost, "/clients", map[string]any{"nom": "Dupont", "ville": "Lyon"}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body)
	}
	var created map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &created)
	if created["id"] != float64(1) || created["actif"] != true {
		t.Errorf("Unexpected created record %v", created)
	}

	w = serve(s, http.MethodPut, "/clients/1", map[string]any{"email": "d@dupont.fr"}, "")
	var updated map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &updated)
	if updated["ville"] != "Lyon" || updated["email"] != "d@dupont.fr" {
		t.Errorf("Partial update lost fields: %v", updated)
	}

	if w = serve(s, http.MethodDelete, "/clients/1", nil, ""); w.Code != http.StatusNoContent {
		t.Errorf("Expected 204, got %d", w.Code)
	}
	if w = serve(s, http.MethodGet, "/clients/1", nil, ""); w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
	if w = serve(s, http.MethodPost, "/clients", map[string]any{"ville": "Lyon"}, ""); w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing nom, got %d", w.Code)
	}
}

func TestNestedSessions(t *testing.T) {
	s := New(Config{})
	clientID, _ := s.Seed(Clients, domain.Client{Nom: "Acme"})
	other, _ := s.Seed(Clients, domain.Client{Nom: "Globex"})
	_, _ = s.Seed(Sessions, domain.Session{Titre: "A", ClientID: &clientID})
	_, _ = s.Seed(Sessions, domain.Session{Titre: "B", ClientID: &other})

	w := serve(s, http.MethodGet, "/clients/1/sessions", nil, "")
	var sessions []domain.Session
	if err := json.Unmarshal(w.Body.Bytes(), &sessions); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}
	if len(sessions) != 1 || sessions[0].Titre != "A" {
		t.Errorf("Unexpected nested sessions %+v", sessions)
	}
}

func TestAuthFlowAndProtectedRoutes(t *testing.T) {
	s := New(Config{RequireAuth: true, JWTSecret: "test"})
	if _, err := s.AddUser("admin@learntrack.fr", "password123", "Admin", "Root", domain.RoleAdmin); err != nil {
		t.Fatalf("AddUser error = %v", err)
	}

	if w := serve(s, http.MethodGet, "/sessions", nil, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without token, got %d", w.Code)
	}

	w := serve(s, http.MethodPost, "/auth/login", map[string]string{"email": "admin@learntrack.fr", "password": "wrong"}, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for bad password, got %d", w.Code)
	}

	w = serve(s, http.MethodPost, "/auth/login", map[string]string{"email": "admin@learntrack.fr", "password": "password123"}, "")
	var resp domain.AuthResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if !resp.Success || resp.Token == "" || resp.User == nil || !resp.User.IsAdmin() {
		t.Fatalf("Unexpected login response %s", w.Body)
	}

	if w := serve(s, http.MethodGet, "/sessions", nil, resp.Token); w.Code != http.StatusOK {
		t.Errorf("Expected 200 with token, got %d", w.Code)
	}

	expired, _ := s.SignToken(resp.User.ID, domain.RoleAdmin, -time.Minute)
	if w := serve(s, http.MethodGet, "/sessions", nil, expired); w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for expired token, got %d", w.Code)
	}

	w = serve(s, http.MethodPost, "/auth/refresh", map[string]string{"refresh_token": resp.RefreshToken}, "")
	if w.Code != http.StatusOK {
		t.Errorf("Expected refresh to succeed, got %d", w.Code)
	}
	w = serve(s, http.MethodPost, "/auth/refresh", map[string]string{"refresh_token": resp.RefreshToken}, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Refresh tokens are single use, got %d", w.Code)
	}
}

func TestFaultInjection(t *testing.T) {
	s := New(Config{})
	s.Fail(http.MethodGet, "/ecoles", http.StatusInternalServerError)
	if w := serve(s, http.MethodGet, "/ecoles", nil, ""); w.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", w.Code)
	}
	s.ClearFaults()
	if w := serve(s, http.MethodGet, "/ecoles", nil, ""); w.Code != http.StatusOK {
		t.Errorf("Expected 200 after clearing, got %d", w.Code)
	}

	s.SetDatabaseDown(true)
	if w := serve(s, http.MethodGet, "/health/db", nil, ""); w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503, got %d", w.Code)
	}
}

func TestSeedDemo(t *testing.T) {
	s := New(Config{})
	if err := s.SeedDemo(); err != nil {
		t.Fatalf("SeedDemo error = %v", err)
	}
	w := serve(s, http.MethodPost, "/auth/login", map[string]string{"email": DemoAdminEmail, "password": DemoAdminPassword}, "")
	if w.Code != http.StatusOK {
		t.Errorf("Expected demo admin to log in, got %d", w.Code)
	}
	w = serve(s, http.MethodGet, "/formateurs/1/sessions", nil, "")
	var sessions []domain.Session
	_ = json.Unmarshal(w.Body.Bytes(), &sessions)
	if len(sessions) != 1 || sessions[0].Titre != "Go avancé" {
		t.Errorf("Unexpected seeded sessions %+v", sessions)
	}
}

func TestUsersRequireAdminRole(t *testing.T) {
	s := New(Config{RequireAuth: true, JWTSecret: "test"})
	adminID, _ := s.AddUser("admin@learntrack.fr", "password123", "Admin", "Root", domain.RoleAdmin)
	userID, _ := s.AddUser("user@learntrack.fr", "password123", "User", "Plain", domain.RoleUser)
	admin, _ := s.SignToken(adminID, domain.RoleAdmin, time.Hour)
	user, _ := s.SignToken(userID, domain.RoleUser, time.Hour)

	if w := serve(s, http.MethodGet, "/users", nil, user); w.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for a plain user, got %d", w.Code)
	}
	if w := serve(s, http.MethodGet, "/sessions", nil, user); w.Code != http.StatusOK {
		t.Errorf("Expected a plain user to read sessions, got %d", w.Code)
	}
	if w := serve(s, http.MethodGet, "/users", nil, admin); w.Code != http.StatusOK {
		t.Errorf("Expected 200 for an admin, got %d", w.Code)
	}

	open := New(Config{})
	if w := serve(open, http.MethodGet, "/users", nil, ""); w.Code != http.StatusOK {
		t.Errorf("Expected open access without auth, got %d", w.Code)
	}
}
