// Package memory provides an in-memory Store used by service and handler
// tests. It mirrors the sqlite driver's semantics, including unique
// constraints and transaction rollback, without touching disk.
package memory

import (
	"context"
	"database/sql"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/hatchery/hatchd/internal/backend/domain"
	"github.com/hatchery/hatchd/internal/backend/store"
)

type state struct {
	users map[string]domain.User
	items map[string]domain.Item

	// itemOrder preserves insertion order for ListItems.
	itemOrder []string
}

func (s *state) clone() *state {
	return &state{
		users:     maps.Clone(s.users),
		items:     maps.Clone(s.items),
		itemOrder: slices.Clone(s.itemOrder),
	}
}

type Store struct {
	mu sync.Mutex
	st *state
}

func NewStore() *Store {
	return &Store{st: &state{
		users: make(map[string]domain.User),
		items: make(map[string]domain.Item),
	}}
}

func (s *Store) Users() store.Users { return &usersRepo{s: s} }
func (s *Store) Items() store.Items { return &itemsRepo{s: s} }

func (s *Store) ApplyMigrations() error         { return nil }
func (s *Store) Close() error                   { return nil }
func (s *Store) Ping(ctx context.Context) error { return nil }

// Tx takes a snapshot of the current state; Rollback restores it. The store
// mutex is held for the lifetime of the transaction, so transactions are
// fully serialized just like the single-writer sqlite setup.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	s.mu.Lock()
	return &txStore{s: s, snapshot: s.st.clone()}, nil
}

func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

type txStore struct {
	s        *Store
	snapshot *state
	done     bool
}

func (t *txStore) Commit() error {
	if t.done {
		return sql.ErrTxDone
	}
	t.done = true
	t.s.mu.Unlock()
	return nil
}

func (t *txStore) Rollback() error {
	if t.done {
		return sql.ErrTxDone
	}
	t.done = true
	t.s.st = t.snapshot
	t.s.mu.Unlock()
	return nil
}

func (t *txStore) Users() store.Users { return &usersRepo{s: t.s, inTx: true} }
func (t *txStore) Items() store.Items { return &itemsRepo{s: t.s, inTx: true} }

func (t *txStore) ApplyMigrations() error         { return nil }
func (t *txStore) Close() error                   { return nil }
func (t *txStore) Ping(ctx context.Context) error { return nil }

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

type usersRepo struct {
	s    *Store
	inTx bool
}

func (r *usersRepo) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *usersRepo) find(match func(domain.User) bool) (domain.User, error) {
	for _, u := range r.s.st.users {
		if match(u) {
			return u, nil
		}
	}
	return domain.User{}, store.ErrNotFound
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	defer r.lock()()
	u, ok := r.s.st.users[id]
	if !ok {
		return domain.User{}, store.ErrNotFound
	}
	return u, nil
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	defer r.lock()()
	return r.find(func(u domain.User) bool { return u.Username == username })
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	defer r.lock()()
	return r.find(func(u domain.User) bool { return u.Email == email })
}

func (r *usersRepo) GetUserByConfirmationToken(ctx context.Context, token string) (domain.User, error) {
	defer r.lock()()
	return r.find(func(u domain.User) bool {
		return u.ConfirmationToken != nil && *u.ConfirmationToken == token
	})
}

func (r *usersRepo) GetUserByConfirmedTokenHash(ctx context.Context, hash string) (domain.User, error) {
	defer r.lock()()
	return r.find(func(u domain.User) bool {
		return u.ConfirmedTokenHash != nil && *u.ConfirmedTokenHash == hash
	})
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	defer r.lock()()

	for _, existing := range r.s.st.users {
		if existing.ID == u.ID || existing.Username == u.Username {
			return store.ErrAlreadyExists
		}
		if u.Email != "" && existing.Email == u.Email {
			return store.ErrAlreadyExists
		}
	}

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	r.s.st.users[u.ID] = u
	return nil
}

func (r *usersRepo) ActivateUser(ctx context.Context, userID, consumedTokenHash string) error {
	defer r.lock()()

	u, ok := r.s.st.users[userID]
	if !ok {
		return store.ErrNotFound
	}
	u.IsActive = true
	u.ConfirmationToken = nil
	u.ConfirmationTokenExpires = nil
	u.ConfirmedTokenHash = &consumedTokenHash
	u.UpdatedAt = time.Now().UTC()
	r.s.st.users[userID] = u
	return nil
}

type itemsRepo struct {
	s    *Store
	inTx bool
}

func (r *itemsRepo) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *itemsRepo) GetItemByID(ctx context.Context, id string) (domain.Item, error) {
	defer r.lock()()
	it, ok := r.s.st.items[id]
	if !ok {
		return domain.Item{}, store.ErrNotFound
	}
	return it, nil
}

func (r *itemsRepo) ListItems(ctx context.Context) ([]domain.Item, error) {
	defer r.lock()()

	items := make([]domain.Item, 0, len(r.s.st.itemOrder))
	for _, id := range r.s.st.itemOrder {
		if it, ok := r.s.st.items[id]; ok {
			items = append(items, it)
		}
	}
	return items, nil
}

func (r *itemsRepo) CreateItem(ctx context.Context, it domain.Item) error {
	defer r.lock()()

	if _, ok := r.s.st.items[it.ID]; ok {
		return store.ErrAlreadyExists
	}
	now := time.Now().UTC()
	it.CreatedAt = now
	it.UpdatedAt = now
	r.s.st.items[it.ID] = it
	r.s.st.itemOrder = append(r.s.st.itemOrder, it.ID)
	return nil
}

func (r *itemsRepo) UpdateItem(ctx context.Context, it domain.Item) error {
	defer r.lock()()

	existing, ok := r.s.st.items[it.ID]
	if !ok {
		return store.ErrNotFound
	}
	existing.Name = it.Name
	existing.Price = it.Price
	existing.UpdatedAt = time.Now().UTC()
	r.s.st.items[it.ID] = existing
	return nil
}

func (r *itemsRepo) DeleteItem(ctx context.Context, id string) error {
	defer r.lock()()

	if _, ok := r.s.st.items[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.s.st.items, id)
	r.s.st.itemOrder = slices.DeleteFunc(r.s.st.itemOrder, func(other string) bool {
		return other == id
	})
	return nil
}
