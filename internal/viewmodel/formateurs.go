package viewmodel

import (
	"github.com/rs/zerolog"

	"github.com/mhAkoum/LearnTrack-sub000/internal/domain"
	"github.com/mhAkoum/LearnTrack-sub000/internal/repository"
)

// FormateurFilter narrows trainers by derived type. Empty Type matches all.
type FormateurFilter struct {
	Type domain.TrainerType
}

type Formateurs struct {
	*collection[domain.Formateur, domain.FormateurCreate, domain.FormateurUpdate]
	filter FormateurFilter
}

func NewFormateurs(repo repository.FormateurRepository, log zerolog.Logger) *Formateurs {
	return &Formateurs{collection: newCollection[domain.Formateur, domain.FormateurCreate, domain.FormateurUpdate]("formateurs", repo, log)}
}

func (vm *Formateurs) SetFilter(f FormateurFilter) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.filter = f
}

// Filtered returns the matching trainers sorted by name.
func (vm *Formateurs) Filtered() []domain.Formateur {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return FilterFormateurs(vm.items, vm.search, vm.filter)
}

func FilterFormateurs(items []domain.Formateur, search string, f FormateurFilter) []domain.Formateur {
	q := query[domain.Formateur]{
		search: search,
		fields: func(t *domain.Formateur) []string {
			return []string{t.Nom, t.Prenom, opt(t.Email), opt(t.Specialite), opt(t.Ville), opt(t.Societe)}
		},
		compare: func(a, b *domain.Formateur) int {
			if c := compareNames([2]string{a.Nom, b.Nom}, [2]string{a.Prenom, b.Prenom}); c != 0 {
				return c
			}
			return byID(a.ID, b.ID)
		},
	}
	if f.Type != "" {
		q.filters = append(q.filters, func(t *domain.Formateur) bool { return t.Type() == f.Type })
	}
	return project(items, q)
}
