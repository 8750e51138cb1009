package repository

import (
	"sync"
	"sync/atomic"

	"github.com/x-xyz/goimx/base/ctx"
	"github.com/x-xyz/goimx/domain"
	"github.com/x-xyz/goimx/domain/collection"
	"github.com/x-xyz/goimx/domain/sandbox"
	"github.com/x-xyz/goimx/domain/transfer"
)

type memoryRepo struct {
	lastId int64

	mu          sync.RWMutex
	users       map[domain.Address]sandbox.User
	pending     map[string]sandbox.Pending
	transfers   map[int64]transfer.Transfer
	collections map[domain.Address]collection.Collection
}

// NewMemory returns a Repo that lives for the process lifetime.
func NewMemory() sandbox.Repo {
	return &memoryRepo{
		users:       make(map[domain.Address]sandbox.User),
		pending:     make(map[string]sandbox.Pending),
		transfers:   make(map[int64]transfer.Transfer),
		collections: make(map[domain.Address]collection.Collection),
	}
}

func (r *memoryRepo) SaveUser(c ctx.Ctx, user sandbox.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.EthAddress.ToLower()] = user
	return nil
}

func (r *memoryRepo) FindUser(c ctx.Ctx, address domain.Address) (*sandbox.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[address.ToLower()]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &user, nil
}

func (r *memoryRepo) SavePending(c ctx.Ctx, nonce string, p sandbox.Pending) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending[nonce] = p
	return nil
}

func (r *memoryRepo) FindPending(c ctx.Ctx, nonce string) (*sandbox.Pending, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.pending[nonce]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (r *memoryRepo) TakePending(c ctx.Ctx, nonce string) (*sandbox.Pending, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pending[nonce]
	if !ok {
		return nil, domain.ErrNotFound
	}
	delete(r.pending, nonce)
	return &p, nil
}

func (r *memoryRepo) NextId(c ctx.Ctx) int64 {
	return atomic.AddInt64(&r.lastId, 1)
}

func (r *memoryRepo) Create(c ctx.Ctx, t transfer.Transfer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transfers[t.TransactionId] = t
	return nil
}

func (r *memoryRepo) FindOne(c ctx.Ctx, id int64) (*transfer.Transfer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.transfers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

func (r *memoryRepo) SaveCollection(c ctx.Ctx, col collection.Collection) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.collections[col.Address.ToLower()] = col
	return nil
}

func (r *memoryRepo) FindCollection(c ctx.Ctx, address domain.Address) (*collection.Collection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	col, ok := r.collections[address.ToLower()]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &col, nil
}
