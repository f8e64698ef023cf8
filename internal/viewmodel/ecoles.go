package viewmodel

import (
	"github.com/rs/zerolog"

	"github.com/mhAkoum/LearnTrack-sub000/internal/domain"
	"github.com/mhAkoum/LearnTrack-sub000/internal/repository"
)

type Ecoles struct {
	*collection[domain.Ecole, domain.EcoleCreate, domain.EcoleUpdate]
	filter ActiveFilter
}

func NewEcoles(repo repository.EcoleRepository, log zerolog.Logger) *Ecoles {
	return &Ecoles{collection: newCollection[domain.Ecole, domain.EcoleCreate, domain.EcoleUpdate]("ecoles", repo, log)}
}

func (vm *Ecoles) SetFilter(f ActiveFilter) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.filter = f
}

func (vm *Ecoles) Filtered() []domain.Ecole {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return FilterEcoles(vm.items, vm.search, vm.filter)
}

func FilterEcoles(items []domain.Ecole, search string, f ActiveFilter) []domain.Ecole {
	q := query[domain.Ecole]{
		search: search,
		fields: func(e *domain.Ecole) []string {
			return []string{e.Nom, opt(e.Ville), opt(e.ContactNom), opt(e.ContactPrenom), opt(e.ContactEmail)}
		},
		compare: func(a, b *domain.Ecole) int {
			if c := compareNames([2]string{a.Nom, b.Nom}); c != 0 {
				return c
			}
			return byID(a.ID, b.ID)
		},
	}
	if f.Actif != nil {
		want := *f.Actif
		q.filters = append(q.filters, func(e *domain.Ecole) bool { return e.Actif == want })
	}
	return project(items, q)
}
