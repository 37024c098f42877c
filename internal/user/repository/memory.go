package repository

import (
	"context"
	"fmt"
	"sync"

	commoncrypto "github.com/kariua-parish/parish-site/internal/common/crypto"
	commonerrors "github.com/kariua-parish/parish-site/internal/common/errors"
	"github.com/kariua-parish/parish-site/internal/user/domain"
)

type MemoryRepository struct {
	mu          sync.RWMutex
	byID        map[domain.ID]domain.User
	byUsername  map[string]domain.ID
	idGenerator commoncrypto.IDGenerator
}

func NewMemoryRepository(idGenerator commoncrypto.IDGenerator) *MemoryRepository {
	return &MemoryRepository{
		byID:        make(map[domain.ID]domain.User),
		byUsername:  make(map[string]domain.ID),
		idGenerator: idGenerator,
	}
}

func (r *MemoryRepository) Create(ctx context.Context, in domain.NewUser) (domain.User, error) {
	if err := checkNewUser(in); err != nil {
		return domain.User{}, err
	}

	id, err := r.idGenerator.NewID()
	if err != nil {
		return domain.User{}, commonerrors.ErrStoreUnavailable.WithCause(err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byUsername[in.Username]; taken {
		return domain.User{}, commonerrors.ErrStoreConstraint.WithCause(fmt.Errorf("username %q already exists", in.Username))
	}
	if _, exists := r.byID[domain.ID(id)]; exists {
		return domain.User{}, commonerrors.ErrStoreConstraint.WithCause(fmt.Errorf("duplicate user id %s", id))
	}

	user := domain.User{ID: domain.ID(id), Username: in.Username, Password: in.Password}
	r.byID[user.ID] = user
	r.byUsername[user.Username] = user.ID
	return user, nil
}

func (r *MemoryRepository) FindByID(ctx context.Context, id domain.ID) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return domain.User{}, commonerrors.ErrUserNotFound
	}
	return user, nil
}

func (r *MemoryRepository) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[username]
	if !ok {
		return domain.User{}, commonerrors.ErrUserNotFound
	}
	return r.byID[id], nil
}
