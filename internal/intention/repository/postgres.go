package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgconn"
	pgx "github.com/jackc/pgx/v4"

	commoncrypto "github.com/kariua-parish/parish-site/internal/common/crypto"
	commondb "github.com/kariua-parish/parish-site/internal/common/db"
	commonerrors "github.com/kariua-parish/parish-site/internal/common/errors"
	"github.com/kariua-parish/parish-site/internal/common/resilience"
	"github.com/kariua-parish/parish-site/internal/intention/domain"
)

const table = "prayer_intentions"

// Querier is the subset of *pgxpool.Pool the repository needs.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type PgRepository struct {
	db          Querier
	idGenerator commoncrypto.IDGenerator
	breaker     *resilience.CircuitBreaker
}

func NewPgRepository(db Querier, idGenerator commoncrypto.IDGenerator, breaker *resilience.CircuitBreaker) *PgRepository {
	return &PgRepository{db: db, idGenerator: idGenerator, breaker: breaker}
}

func (r *PgRepository) call(ctx context.Context, fn func(context.Context) error) error {
	if r.breaker == nil {
		return fn(ctx)
	}
	return r.breaker.Call(ctx, fn)
}

func (r *PgRepository) List(ctx context.Context) ([]domain.PrayerIntention, error) {
	var intentions []domain.PrayerIntention

	start := time.Now()
	err := r.call(ctx, func(ctx context.Context) error {
		rows, err := r.db.Query(
			ctx,
			`SELECT id, name, intention, created_at
			 FROM prayer_intentions
			 ORDER BY created_at DESC, id DESC`,
		)
		if err != nil {
			return err
		}
		defer rows.Close()

		intentions = intentions[:0]
		for rows.Next() {
			var it domain.PrayerIntention
			if err := rows.Scan(&it.ID, &it.Name, &it.Intention, &it.CreatedAt); err != nil {
				return fmt.Errorf("failed to scan prayer intention: %w", err)
			}
			intentions = append(intentions, it)
		}
		return rows.Err()
	})
	commondb.ObserveQuery("list_prayer_intentions", table, start, err)
	if err != nil {
		return nil, commondb.ClassifyError(err, "list prayer intentions")
	}

	if intentions == nil {
		intentions = []domain.PrayerIntention{}
	}
	return intentions, nil
}

func (r *PgRepository) Create(ctx context.Context, in domain.NewIntention) (domain.PrayerIntention, error) {
	id, err := r.idGenerator.NewID()
	if err != nil {
		return domain.PrayerIntention{}, commonerrors.ErrStoreUnavailable.WithCause(err)
	}

	var created domain.PrayerIntention

	start := time.Now()
	err = r.call(ctx, func(ctx context.Context) error {
		row := r.db.QueryRow(
			ctx,
			`INSERT INTO prayer_intentions (id, name, intention)
			 VALUES ($1, $2, $3)
			 RETURNING id, name, intention, created_at`,
			id,
			in.Name,
			in.Intention,
		)
		return row.Scan(&created.ID, &created.Name, &created.Intention, &created.CreatedAt)
	})
	commondb.ObserveQuery("create_prayer_intention", table, start, err)
	if err != nil {
		return domain.PrayerIntention{}, commondb.ClassifyError(err, "create prayer intention")
	}

	return created, nil
}
