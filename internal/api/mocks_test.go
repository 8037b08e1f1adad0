package api

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) GetGame(ctx context.Context, id int64) (Game, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(Game), args.Error(1)
}

func (m *MockStore) GetGameByName(ctx context.Context, name string) (Game, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(Game), args.Error(1)
}

func (m *MockStore) CreateGame(ctx context.Context, g Game) (Game, error) {
	args := m.Called(ctx, g)
	return args.Get(0).(Game), args.Error(1)
}

func (m *MockStore) UpdateGame(ctx context.Context, id int64, p GamePatch) (Game, error) {
	args := m.Called(ctx, id, p)
	return args.Get(0).(Game), args.Error(1)
}

func (m *MockStore) DeleteGame(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStore) DeleteGameByName(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockStore) GetUser(ctx context.Context, id int64) (User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockStore) GetUserByName(ctx context.Context, name string) (User, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockStore) CreateUser(ctx context.Context, u User) (User, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockStore) UpdateUser(ctx context.Context, id int64, p UserPatch) (User, error) {
	args := m.Called(ctx, id, p)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockStore) DeleteUser(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStore) DeleteUserByName(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

type publishedEvent struct {
	Type    string
	Payload any
}

// recordingPublisher keeps every event in memory.
type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(_ context.Context, eventType string, payload any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Type: eventType, Payload: payload})
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

func ptr[T any](v T) *T {
	return &v
}
