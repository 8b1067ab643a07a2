package app

import (
	"context"

	"github.com/thesavant42/launchdeck/internal/favorites"
	"github.com/thesavant42/launchdeck/internal/fetch"
	"github.com/thesavant42/launchdeck/internal/filter"
	"github.com/thesavant42/launchdeck/internal/models"
)

// State owns everything the catalog view reads and mutates: the list and
// detail lifecycles, the active filters and the favorites store. It is created
// once in main and handed to the view; all access happens on one goroutine.
type State struct {
	Launches  *fetch.Controller
	Details   *fetch.DetailController
	Filters   filter.Config
	Favorites *favorites.Store
}

// New wires a State. A nil store is replaced by an in-memory one.
func New(launches *fetch.Controller, details *fetch.DetailController, store *favorites.Store) *State {
	if store == nil {
		store = favorites.New(favorites.NewMemorySlot(), nil)
	}
	return &State{
		Launches:  launches,
		Details:   details,
		Filters:   filter.Default(),
		Favorites: store,
	}
}

// Visible returns the loaded launches that pass the active filters
func (s *State) Visible() []models.Launch {
	return filter.Apply(s.Launches.Launches(), s.Filters, s.Favorites.IDs())
}

// ToggleFavorite flips id's membership; returns true when it is now a favorite
func (s *State) ToggleFavorite(id string) bool {
	return s.Favorites.Toggle(id)
}

func (s *State) IsFavorite(id string) bool {
	return s.Favorites.Contains(id)
}

func (s *State) ClearFavorites() {
	s.Favorites.Clear()
}

func (s *State) ClearFilters() {
	s.Filters.Clear()
}

// FindLaunch looks id up in the loaded list
func (s *State) FindLaunch(id string) (models.Launch, bool) {
	for _, l := range s.Launches.Launches() {
		if l.ID == id {
			return l, true
		}
	}
	return models.Launch{}, false
}

// Refresh fetches the list synchronously (CLI path)
func (s *State) Refresh(ctx context.Context) error {
	return s.Launches.Fetch(ctx)
}
