// Package stubapi is an in-memory implementation of the LearnTrack REST API.
// It backs the gateway tests and the stubserver command used for local development.
package stubapi

import (
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"sync"

	"github.com/mhAkoum/LearnTrack-sub000/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// Collections served by the stub.
const (
	Clients    = "clients"
	Ecoles     = "ecoles"
	Formateurs = "formateurs"
	Sessions   = "sessions"
	Users      = "users"
)

// foreignKeys maps a parent collection to the session column pointing at it.
var foreignKeys = map[string]string{
	Clients:    "client_id",
	Ecoles:     "ecole_id",
	Formateurs: "formateur_id",
}

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrEmailTaken     = errors.New("email already registered")
)

type record map[string]any

type table struct {
	nextID  int64
	records map[int64]record
}

type credential struct {
	userID       int64
	passwordHash []byte
}

// store keeps every collection in memory. Records are schemaless JSON objects,
// so partial updates are a key merge.
type store struct {
	mu            sync.Mutex
	tables        map[string]*table
	credentials   map[string]credential // by email
	refreshTokens map[string]int64      // token -> user id
}

func newStore() *store {
	s := &store{
		tables:        make(map[string]*table),
		credentials:   make(map[string]credential),
		refreshTokens: make(map[string]int64),
	}
	for _, name := range []string{Clients, Ecoles, Formateurs, Sessions, Users} {
		s.tables[name] = &table{nextID: 1, records: make(map[int64]record)}
	}
	return s
}

func (s *store) list(name string) []record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedLocked(s.tables[name], nil)
}

// listWhere returns the records of name whose column equals id.
func (s *store) listWhere(name, column string, id int64) []record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedLocked(s.tables[name], func(r record) bool {
		v, ok := toInt64(r[column])
		return ok && v == id
	})
}

func (s *store) sortedLocked(t *table, keep func(record) bool) []record {
	ids := make([]int64, 0, len(t.records))
	for id, r := range t.records {
		if keep == nil || keep(r) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]record, 0, len(ids))
	for _, id := range ids {
		out = append(out, copyRecord(t.records[id]))
	}
	return out
}

func (s *store) get(name string, id int64) (record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.tables[name].records[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return copyRecord(r), nil
}

func (s *store) insert(name string, r record) record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(name, r)
}

func (s *store) insertLocked(name string, r record) record {
	t := s.tables[name]
	id := t.nextID
	t.nextID++
	r = copyRecord(r)
	r["id"] = id
	t.records[id] = r
	return copyRecord(r)
}

func (s *store) update(name string, id int64, patch record) (record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.tables[name].records[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	for k, v := range patch {
		if k == "id" {
			continue
		}
		r[k] = v
	}
	return copyRecord(r), nil
}

func (s *store) delete(name string, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.tables[name]
	if _, ok := t.records[id]; !ok {
		return ErrRecordNotFound
	}
	delete(t.records, id)
	if name == Users {
		for email, c := range s.credentials {
			if c.userID == id {
				delete(s.credentials, email)
			}
		}
	}
	return nil
}

// addUser stores a user record and its bcrypt password hash.
func (s *store) addUser(email, password string, r record) (record, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.credentials[email]; taken {
		return nil, ErrEmailTaken
	}
	r = copyRecord(r)
	r["email"] = email
	if _, ok := r["role"]; !ok {
		r["role"] = string(domain.RoleUser)
	}
	if _, ok := r["actif"]; !ok {
		r["actif"] = true
	}
	created := s.insertLocked(Users, r)
	id, _ := toInt64(created["id"])
	s.credentials[email] = credential{userID: id, passwordHash: hash}
	return created, nil
}

// authenticate returns the user record matching the credentials.
func (s *store) authenticate(email, password string) (record, bool) {
	s.mu.Lock()
	c, ok := s.credentials[email]
	s.mu.Unlock()
	if !ok {
		return nil, false
	}
	if bcrypt.CompareHashAndPassword(c.passwordHash, []byte(password)) != nil {
		return nil, false
	}
	r, err := s.get(Users, c.userID)
	if err != nil {
		return nil, false
	}
	return r, true
}

func (s *store) saveRefreshToken(token string, userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshTokens[token] = userID
}

// consumeRefreshToken invalidates token and returns its user id.
func (s *store) consumeRefreshToken(token string) (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.refreshTokens[token]
	delete(s.refreshTokens, token)
	return id, ok
}

func copyRecord(r record) record {
	out := make(record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		return i, err == nil
	}
	return 0, false
}
