package repository_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kariua-parish/parish-site/internal/common/clock"
	commoncrypto "github.com/kariua-parish/parish-site/internal/common/crypto"
	commonerrors "github.com/kariua-parish/parish-site/internal/common/errors"
	"github.com/kariua-parish/parish-site/internal/intention/domain"
	"github.com/kariua-parish/parish-site/internal/intention/repository"
)

var processStart = time.Now().UTC()

func newMemoryRepo() *repository.MemoryRepository {
	return repository.NewMemoryRepository(commoncrypto.NewUUIDGenerator(), clock.NewRealClock())
}

// runContract exercises the behaviour every intention store must share.
func runContract(t *testing.T, newRepo func() repository.Repository) {
	t.Run("empty list", func(t *testing.T) {
		got, err := newRepo().List(context.Background())
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("create assigns id and timestamp", func(t *testing.T) {
		repo := newRepo()
		created, err := repo.Create(context.Background(), domain.NewIntention{Name: "Maria", Intention: "For peace"})
		require.NoError(t, err)

		assert.NotEmpty(t, created.ID)
		assert.Equal(t, "Maria", created.Name)
		assert.Equal(t, "For peace", created.Intention)
		assert.False(t, created.CreatedAt.Before(processStart.Truncate(time.Second)))
	})

	t.Run("list returns every record newest first", func(t *testing.T) {
		repo := newRepo()
		const n = 25
		ids := make(map[domain.ID]bool, n)
		for i := 0; i < n; i++ {
			created, err := repo.Create(context.Background(), domain.NewIntention{
				Name:      fmt.Sprintf("name-%d", i),
				Intention: "intention",
			})
			require.NoError(t, err)
			assert.False(t, ids[created.ID], "duplicate id %s", created.ID)
			ids[created.ID] = true
		}

		got, err := repo.List(context.Background())
		require.NoError(t, err)
		require.Len(t, got, n)

		for i := 1; i < len(got); i++ {
			assert.False(t, got[i].CreatedAt.After(got[i-1].CreatedAt), "record %d is newer than record %d", i, i-1)
		}
		assert.Equal(t, fmt.Sprintf("name-%d", n-1), got[0].Name)
	})
}

func TestMemoryRepository_Contract(t *testing.T) {
	runContract(t, func() repository.Repository { return newMemoryRepo() })
}

func TestMemoryRepository_ConcurrentCreates(t *testing.T) {
	repo := newMemoryRepo()

	const n = 100
	var wg sync.WaitGroup
	results := make(chan domain.PrayerIntention, n)
	errs := make(chan error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			created, err := repo.Create(context.Background(), domain.NewIntention{
				Name:      fmt.Sprintf("parishioner-%d", i),
				Intention: fmt.Sprintf("intention-%d", i),
			})
			if err != nil {
				errs <- err
				return
			}
			results <- created
		}(i)
	}
	wg.Wait()
	close(results)
	close(errs)

	for err := range errs {
		t.Fatalf("unexpected error: %v", err)
	}

	seen := make(map[domain.ID]bool, n)
	for r := range results {
		assert.False(t, seen[r.ID], "duplicate id %s", r.ID)
		seen[r.ID] = true
	}
	assert.Len(t, seen, n)

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, n)
}

func TestMemoryRepository_TiesBrokenByInsertionOrder(t *testing.T) {
	fixed := clock.NewMockClock(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC))
	repo := repository.NewMemoryRepository(commoncrypto.NewUUIDGenerator(), fixed)

	for _, name := range []string{"first", "second", "third"} {
		_, err := repo.Create(context.Background(), domain.NewIntention{Name: name, Intention: "x"})
		require.NoError(t, err)
	}

	for i := 0; i < 3; i++ {
		got, err := repo.List(context.Background())
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, []string{"third", "second", "first"}, []string{got[0].Name, got[1].Name, got[2].Name})
	}
}

func TestMemoryRepository_ClockStepBackKeepsOrder(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC))
	repo := repository.NewMemoryRepository(commoncrypto.NewUUIDGenerator(), clk)

	first, err := repo.Create(context.Background(), domain.NewIntention{Name: "first", Intention: "x"})
	require.NoError(t, err)

	clk.Advance(-time.Hour)
	second, err := repo.Create(context.Background(), domain.NewIntention{Name: "second", Intention: "x"})
	require.NoError(t, err)

	assert.False(t, second.CreatedAt.Before(first.CreatedAt))
}

type failingIDGenerator struct{}

func (failingIDGenerator) NewID() (string, error) { return "", errors.New("entropy exhausted") }

func TestMemoryRepository_IDGenerationFailure(t *testing.T) {
	repo := repository.NewMemoryRepository(failingIDGenerator{}, clock.NewRealClock())

	_, err := repo.Create(context.Background(), domain.NewIntention{Name: "a", Intention: "b"})
	assert.ErrorIs(t, err, commonerrors.ErrStoreUnavailable)

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}
