package repository

import (
	"context"

	"github.com/kariua-parish/parish-site/internal/intention/domain"
)

// Repository is the intention store. List returns records newest first;
// Create assigns ID and CreatedAt and returns the stored record, or an error
// and nothing stored.
type Repository interface {
	List(ctx context.Context) ([]domain.PrayerIntention, error)
	Create(ctx context.Context, in domain.NewIntention) (domain.PrayerIntention, error)
}
