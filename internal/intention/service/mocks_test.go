package service_test

import (
	"context"
	"sync"

	"github.com/kariua-parish/parish-site/internal/intention/domain"
)

type mockRepo struct {
	listFunc   func(ctx context.Context) ([]domain.PrayerIntention, error)
	createFunc func(ctx context.Context, in domain.NewIntention) (domain.PrayerIntention, error)

	mu          sync.Mutex
	createCalls []domain.NewIntention
}

func (m *mockRepo) List(ctx context.Context) ([]domain.PrayerIntention, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return []domain.PrayerIntention{}, nil
}

func (m *mockRepo) Create(ctx context.Context, in domain.NewIntention) (domain.PrayerIntention, error) {
	m.mu.Lock()
	m.createCalls = append(m.createCalls, in)
	m.mu.Unlock()
	if m.createFunc != nil {
		return m.createFunc(ctx, in)
	}
	return domain.PrayerIntention{ID: "generated", Name: in.Name, Intention: in.Intention}, nil
}

func (m *mockRepo) creates() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.createCalls)
}

type mockRelay struct {
	notifyFunc func(ctx context.Context, text string) error

	mu       sync.Mutex
	messages []string
}

func (m *mockRelay) Notify(ctx context.Context, text string) error {
	m.mu.Lock()
	m.messages = append(m.messages, text)
	m.mu.Unlock()
	if m.notifyFunc != nil {
		return m.notifyFunc(ctx, text)
	}
	return nil
}

func (m *mockRelay) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.messages)
}
