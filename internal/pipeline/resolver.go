package pipeline

import (
	"context"
	"fmt"

	"github.com/furyhawk/barstats/internal/bar"
)

// Resolver maps display names to stable user ids and back. It is built once
// per logical request from the full roster listing, so repeated resolutions
// within a request never re-scan or re-fetch.
type Resolver struct {
	byName map[string]int
	byID   map[int]string
}

// NewResolver indexes the given roster.
func NewResolver(users []bar.CachedUser) *Resolver {
	r := &Resolver{
		byName: make(map[string]int, len(users)),
		byID:   make(map[int]string, len(users)),
	}
	for _, u := range users {
		r.byName[u.Username] = u.ID
		r.byID[u.ID] = u.Username
	}
	return r
}

// LoadResolver fetches the roster (durable cache path) and indexes it.
func LoadResolver(ctx context.Context, api API) (*Resolver, error) {
	users, err := api.CachedUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch roster: %w", err)
	}
	return NewResolver(users), nil
}

// UserID resolves a display name. An unknown name returns ok=false;
// callers treat that as "no data", never as a failure.
func (r *Resolver) UserID(name string) (int, bool) {
	id, ok := r.byName[name]
	return id, ok
}

// UserName resolves an id back to a display name.
func (r *Resolver) UserName(id int) (string, bool) {
	name, ok := r.byID[id]
	return name, ok
}
