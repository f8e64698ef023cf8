package viewmodel

import (
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mhAkoum/LearnTrack-sub000/internal/domain"
	"github.com/mhAkoum/LearnTrack-sub000/internal/repository"
)

// SessionFilter narrows the session list. Zero fields match everything.
type SessionFilter struct {
	Statut      string
	Modalite    domain.Modality
	Date        *time.Time
	FormateurID *int64
	ClientID    *int64
	EcoleID     *int64
}

// Sessions is the view-model behind the session list screen.
type Sessions struct {
	*collection[domain.Session, domain.SessionCreate, domain.SessionUpdate]
	filter SessionFilter
}

func NewSessions(repo repository.SessionRepository, log zerolog.Logger) *Sessions {
	return &Sessions{collection: newCollection[domain.Session, domain.SessionCreate, domain.SessionUpdate]("sessions", repo, log)}
}

func (vm *Sessions) SetFilter(f SessionFilter) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.filter = f
}

func (vm *Sessions) Filter() SessionFilter {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.filter
}

// Filtered returns the sessions matching the current search and filter, most recent first.
func (vm *Sessions) Filtered() []domain.Session {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return FilterSessions(vm.items, vm.search, vm.filter)
}

// FilterSessions is the pure projection used by Sessions.Filtered.
func FilterSessions(items []domain.Session, search string, f SessionFilter) []domain.Session {
	q := query[domain.Session]{
		search: search,
		fields: func(s *domain.Session) []string {
			return []string{s.Titre, opt(s.Description), opt(s.Notes), s.Statut}
		},
		compare: compareSessions,
	}
	if f.Statut != "" {
		statut := fold(f.Statut)
		q.filters = append(q.filters, func(s *domain.Session) bool {
			return strings.Contains(fold(s.Statut), statut)
		})
	}
	if f.Modalite != "" {
		want, err := domain.ParseModality(string(f.Modalite))
		q.filters = append(q.filters, func(s *domain.Session) bool {
			got, gotErr := domain.ParseModality(string(s.Modalite))
			return err == nil && gotErr == nil && got == want
		})
	}
	if f.Date != nil {
		day := f.Date.Format(domain.DateLayout)
		q.filters = append(q.filters, func(s *domain.Session) bool {
			t, ok := s.StartDate()
			return ok && t.Format(domain.DateLayout) == day
		})
	}
	if f.FormateurID != nil || f.ClientID != nil || f.EcoleID != nil {
		q.filters = append(q.filters, func(s *domain.Session) bool {
			return sameID(f.FormateurID, s.FormateurID) &&
				sameID(f.ClientID, s.ClientID) &&
				sameID(f.EcoleID, s.EcoleID)
		})
	}
	return project(items, q)
}

// compareSessions puts later start dates first and unreadable dates last.
func compareSessions(a, b *domain.Session) int {
	ta, okA := a.StartDate()
	tb, okB := b.StartDate()
	switch {
	case okA && okB:
		if c := tb.Compare(ta); c != 0 {
			return c
		}
	case okA:
		return -1
	case okB:
		return 1
	}
	return byID(a.ID, b.ID)
}
