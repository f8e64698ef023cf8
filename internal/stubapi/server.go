package stubapi

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mhAkoum/LearnTrack-sub000/internal/domain"
)

// Config configures the stub backend.
type Config struct {
	JWTSecret     string
	JWTExpiration time.Duration
	// RequireAuth protects every data route with a bearer token.
	RequireAuth bool
	Logger      zerolog.Logger
}

// Server is the in-memory backend. Its zero value is not usable; call New.
type Server struct {
	store  *store
	cfg    Config
	log    zerolog.Logger
	router *gin.Engine

	mu       sync.Mutex
	faults   map[string]int
	dbDown   bool
	requests []string
}

// New creates a Server and wires its routes.
func New(cfg Config) *Server {
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "stub-secret"
	}
	if cfg.JWTExpiration <= 0 {
		cfg.JWTExpiration = time.Hour
	}
	s := &Server{
		store:  newStore(),
		cfg:    cfg,
		log:    cfg.Logger,
		faults: make(map[string]int),
	}
	s.router = gin.New()
	s.router.Use(gin.Recovery(), s.requestLogger(), s.faultInjector())
	s.setupRoutes(s.router)
	return s
}

// Handler returns the HTTP handler serving the API.
func (s *Server) Handler() *gin.Engine {
	return s.router
}

// Fail makes every subsequent request matching method and path answer status.
// path is the request path, e.g. "/clients/3".
func (s *Server) Fail(method, path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[method+" "+path] = status
}

// ClearFaults removes every injected failure.
func (s *Server) ClearFaults() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults = make(map[string]int)
}

// SetDatabaseDown makes /health/db report an unreachable database.
func (s *Server) SetDatabaseDown(down bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dbDown = down
}

// Requests returns "METHOD /path" for every request served so far.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

// Seed inserts v, marshalled to JSON, into collection and returns its id.
func (s *Server) Seed(collection string, v any) (int64, error) {
	r, err := toRecord(v)
	if err != nil {
		return 0, err
	}
	created := s.store.insert(collection, r)
	id, _ := toInt64(created["id"])
	return id, nil
}

// AddUser registers an account able to log in.
func (s *Server) AddUser(email, password, nom, prenom string, role domain.Role) (int64, error) {
	created, err := s.store.addUser(email, password, record{"nom": nom, "prenom": prenom, "role": string(role)})
	if err != nil {
		return 0, err
	}
	id, _ := toInt64(created["id"])
	return id, nil
}

func toRecord(v any) (record, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	delete(r, "id")
	return r, nil
}
