// ABOUTME: In-memory fake record store shared by resolver tests
// ABOUTME: Mirrors the uniqueness rules of the real SQLite store

package resolve

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/shelfwise/shelfwise-identity/internal/store"
)

// fakeStore implements UserStore, PublisherStore, AdminStore, and the
// dispatcher's record lookup against in-memory maps.
type fakeStore struct {
	users      map[string]*store.User      // by ID
	publishers map[string]*store.Publisher // by ID
	admins     map[string]*store.Admin     // by ID
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:      make(map[string]*store.User),
		publishers: make(map[string]*store.Publisher),
		admins:     make(map[string]*store.Admin),
	}
}

func (f *fakeStore) CreateUser(_ context.Context, u *store.User) error {
	for _, existing := range f.users {
		if existing.Username == u.Username {
			return store.ErrDuplicate
		}
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.CreatedAt = time.Now().UTC()
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeStore) GetUserByID(_ context.Context, id string) (*store.User, error) {
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) GetUserByUsername(_ context.Context, username string) (*store.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (*store.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) SetUserRole(_ context.Context, id, role string) error {
	u, ok := f.users[id]
	if !ok {
		return store.ErrNotFound
	}
	u.Role = role
	return nil
}

func (f *fakeStore) SetUserVerified(_ context.Context, id string) error {
	u, ok := f.users[id]
	if !ok {
		return store.ErrNotFound
	}
	u.IsVerified = true
	return nil
}

func (f *fakeStore) CreatePublisher(_ context.Context, p *store.Publisher) error {
	for _, existing := range f.publishers {
		if existing.Email == p.Email || existing.Name == p.Name {
			return store.ErrDuplicate
		}
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.CreatedAt = time.Now().UTC()
	cp := *p
	f.publishers[p.ID] = &cp
	return nil
}

func (f *fakeStore) GetPublisherByID(_ context.Context, id string) (*store.Publisher, error) {
	if p, ok := f.publishers[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) GetPublisherByEmail(_ context.Context, email string) (*store.Publisher, error) {
	for _, p := range f.publishers {
		if p.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) CreateAdmin(_ context.Context, a *store.Admin) error {
	for _, existing := range f.admins {
		if existing.Username == a.Username || existing.Email == a.Email {
			return store.ErrDuplicate
		}
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.CreatedAt = time.Now().UTC()
	cp := *a
	f.admins[a.ID] = &cp
	return nil
}

func (f *fakeStore) GetAdminByUsername(_ context.Context, username string) (*store.Admin, error) {
	for _, a := range f.admins {
		if a.Username == username {
			cp := *a
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) TouchAdminLogin(_ context.Context, id string) error {
	a, ok := f.admins[id]
	if !ok {
		return store.ErrNotFound
	}
	now := time.Now().UTC()
	a.LastLogin = &now
	return nil
}
