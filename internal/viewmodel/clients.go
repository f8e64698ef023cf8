package viewmodel

import (
	"github.com/rs/zerolog"

	"github.com/mhAkoum/LearnTrack-sub000/internal/domain"
	"github.com/mhAkoum/LearnTrack-sub000/internal/repository"
)

// ActiveFilter keeps only active or inactive records. Nil Actif matches all.
type ActiveFilter struct {
	Actif *bool
}

type Clients struct {
	*collection[domain.Client, domain.ClientCreate, domain.ClientUpdate]
	filter ActiveFilter
}

func NewClients(repo repository.ClientRepository, log zerolog.Logger) *Clients {
	return &Clients{collection: newCollection[domain.Client, domain.ClientCreate, domain.ClientUpdate]("clients", repo, log)}
}

func (vm *Clients) SetFilter(f ActiveFilter) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.filter = f
}

// Filtered returns the matching clients in alphabetical order.
func (vm *Clients) Filtered() []domain.Client {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return FilterClients(vm.items, vm.search, vm.filter)
}

func FilterClients(items []domain.Client, search string, f ActiveFilter) []domain.Client {
	q := query[domain.Client]{
		search: search,
		fields: func(c *domain.Client) []string {
			return []string{c.Nom, opt(c.Prenom), opt(c.Email), opt(c.ContactNom), opt(c.Ville), opt(c.Siret), opt(c.Entreprise)}
		},
		compare: func(a, b *domain.Client) int {
			if c := compareNames([2]string{a.Nom, b.Nom}, [2]string{opt(a.Prenom), opt(b.Prenom)}); c != 0 {
				return c
			}
			return byID(a.ID, b.ID)
		},
	}
	if f.Actif != nil {
		want := *f.Actif
		q.filters = append(q.filters, func(c *domain.Client) bool { return c.Actif == want })
	}
	return project(items, q)
}
