package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgconn"
	pgx "github.com/jackc/pgx/v4"

	commoncrypto "github.com/kariua-parish/parish-site/internal/common/crypto"
	commondb "github.com/kariua-parish/parish-site/internal/common/db"
	commonerrors "github.com/kariua-parish/parish-site/internal/common/errors"
	"github.com/kariua-parish/parish-site/internal/user/domain"
)

type Querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type PgRepository struct {
	db          Querier
	idGenerator commoncrypto.IDGenerator
}

func NewPgRepository(db Querier, idGenerator commoncrypto.IDGenerator) *PgRepository {
	return &PgRepository{db: db, idGenerator: idGenerator}
}

func (r *PgRepository) Create(ctx context.Context, in domain.NewUser) (domain.User, error) {
	if err := checkNewUser(in); err != nil {
		return domain.User{}, err
	}

	id, err := r.idGenerator.NewID()
	if err != nil {
		return domain.User{}, commonerrors.ErrStoreUnavailable.WithCause(err)
	}

	start := time.Now()
	_, err = r.db.Exec(
		ctx,
		`INSERT INTO users (id, username, password) VALUES ($1, $2, $3)`,
		id,
		in.Username,
		in.Password,
	)
	commondb.ObserveQuery("create_user", "users", start, err)
	if err != nil {
		return domain.User{}, commondb.ClassifyError(err, "create user")
	}

	return domain.User{ID: domain.ID(id), Username: in.Username, Password: in.Password}, nil
}

func (r *PgRepository) FindByID(ctx context.Context, id domain.ID) (domain.User, error) {
	return r.findOne(ctx, "find_user_by_id", `SELECT id, username, password FROM users WHERE id = $1`, string(id))
}

func (r *PgRepository) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.findOne(ctx, "find_user_by_username", `SELECT id, username, password FROM users WHERE username = $1`, username)
}

func (r *PgRepository) findOne(ctx context.Context, operation, query string, arg string) (domain.User, error) {
	start := time.Now()
	var user domain.User
	err := r.db.QueryRow(ctx, query, arg).Scan(&user.ID, &user.Username, &user.Password)
	if errors.Is(err, pgx.ErrNoRows) {
		commondb.ObserveQuery(operation, "users", start, nil)
		return domain.User{}, commonerrors.ErrUserNotFound
	}
	commondb.ObserveQuery(operation, "users", start, err)
	if err != nil {
		return domain.User{}, commondb.ClassifyError(err, operation)
	}
	return user, nil
}
