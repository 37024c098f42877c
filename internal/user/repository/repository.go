package repository

import (
	"context"
	"errors"

	commonerrors "github.com/kariua-parish/parish-site/internal/common/errors"
	"github.com/kariua-parish/parish-site/internal/user/domain"
)

var errEmptyUsername = errors.New("username must not be empty")

type Repository interface {
	Create(ctx context.Context, in domain.NewUser) (domain.User, error)
	FindByID(ctx context.Context, id domain.ID) (domain.User, error)
	FindByUsername(ctx context.Context, username string) (domain.User, error)
}

// checkNewUser mirrors the users table constraints so both backends reject
// the same input before touching storage.
func checkNewUser(in domain.NewUser) error {
	if in.Username == "" {
		return commonerrors.ErrStoreConstraint.WithCause(errEmptyUsername)
	}
	return nil
}
