package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/kariua-parish/parish-site/internal/common/clock"
	commoncrypto "github.com/kariua-parish/parish-site/internal/common/crypto"
	commonerrors "github.com/kariua-parish/parish-site/internal/common/errors"
	"github.com/kariua-parish/parish-site/internal/intention/domain"
)

type memoryRecord struct {
	intention domain.PrayerIntention
	seq       uint64
}

type MemoryRepository struct {
	mu          sync.RWMutex
	records     map[domain.ID]memoryRecord
	seq         uint64
	lastCreated time.Time
	idGenerator commoncrypto.IDGenerator
	clock       clock.Clock
}

func NewMemoryRepository(idGenerator commoncrypto.IDGenerator, clk clock.Clock) *MemoryRepository {
	return &MemoryRepository{
		records:     make(map[domain.ID]memoryRecord),
		idGenerator: idGenerator,
		clock:       clk,
	}
}

func (r *MemoryRepository) List(ctx context.Context) ([]domain.PrayerIntention, error) {
	r.mu.RLock()
	records := make([]memoryRecord, 0, len(r.records))
	for _, rec := range r.records {
		records = append(records, rec)
	}
	r.mu.RUnlock()

	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if !a.intention.CreatedAt.Equal(b.intention.CreatedAt) {
			return a.intention.CreatedAt.After(b.intention.CreatedAt)
		}
		return a.seq > b.seq
	})

	result := make([]domain.PrayerIntention, len(records))
	for i, rec := range records {
		result[i] = rec.intention
	}
	return result, nil
}

func (r *MemoryRepository) Create(ctx context.Context, in domain.NewIntention) (domain.PrayerIntention, error) {
	id, err := r.idGenerator.NewID()
	if err != nil {
		return domain.PrayerIntention{}, commonerrors.ErrStoreUnavailable.WithCause(err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[domain.ID(id)]; exists {
		return domain.PrayerIntention{}, commonerrors.ErrStoreConstraint.WithCause(fmt.Errorf("duplicate intention id %s", id))
	}

	// Wall clock may step backwards; keep CreatedAt non-decreasing.
	createdAt := r.clock.Now()
	if createdAt.Before(r.lastCreated) {
		createdAt = r.lastCreated
	}
	r.lastCreated = createdAt

	r.seq++
	intention := domain.PrayerIntention{
		ID:        domain.ID(id),
		Name:      in.Name,
		Intention: in.Intention,
		CreatedAt: createdAt,
	}
	r.records[intention.ID] = memoryRecord{intention: intention, seq: r.seq}

	return intention, nil
}
