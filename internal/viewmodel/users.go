package viewmodel

import (
	"github.com/rs/zerolog"

	"github.com/mhAkoum/LearnTrack-sub000/internal/domain"
	"github.com/mhAkoum/LearnTrack-sub000/internal/repository"
)

// UserFilter keeps a single role. Empty Role matches all.
type UserFilter struct {
	Role domain.Role
}

// Users backs the admin-only account list.
type Users struct {
	*collection[domain.User, domain.UserCreate, domain.UserUpdate]
	filter UserFilter
}

func NewUsers(repo repository.UserRepository, log zerolog.Logger) *Users {
	return &Users{collection: newCollection[domain.User, domain.UserCreate, domain.UserUpdate]("users", repo, log)}
}

func (vm *Users) SetFilter(f UserFilter) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.filter = f
}

func (vm *Users) Filtered() []domain.User {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return FilterUsers(vm.items, vm.search, vm.filter)
}

func FilterUsers(items []domain.User, search string, f UserFilter) []domain.User {
	q := query[domain.User]{
		search: search,
		fields: func(u *domain.User) []string { return []string{u.Email, u.Nom, u.Prenom} },
		compare: func(a, b *domain.User) int {
			if c := compareNames([2]string{a.Nom, b.Nom}, [2]string{a.Prenom, b.Prenom}, [2]string{a.Email, b.Email}); c != 0 {
				return c
			}
			return byID(a.ID, b.ID)
		},
	}
	if f.Role != "" {
		q.filters = append(q.filters, func(u *domain.User) bool { return u.Role == f.Role })
	}
	return project(items, q)
}
