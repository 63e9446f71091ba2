package testkit

import (
	"context"

	"terlab/domain/core"
	"terlab/domain/post"
	"terlab/domain/session"
	"terlab/ports"

	"github.com/stretchr/testify/mock"
)

// MockSessionRepository is a testify mock of ports.SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

var _ ports.SessionRepository = (*MockSessionRepository)(nil)

func (m *MockSessionRepository) Create(ctx context.Context, s *session.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSessionRepository) Get(ctx context.Context, id core.SessionID) (*session.Session, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*session.Session)
	return s, args.Error(1)
}

func (m *MockSessionRepository) List(ctx context.Context) ([]*session.Session, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).([]*session.Session)
	return s, args.Error(1)
}

func (m *MockSessionRepository) Activate(ctx context.Context, id core.SessionID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSessionRepository) GetActive(ctx context.Context) (*session.Session, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(*session.Session)
	return s, args.Error(1)
}

func (m *MockSessionRepository) Update(ctx context.Context, s *session.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSessionRepository) Delete(ctx context.Context, id core.SessionID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPostRepository is a testify mock of ports.PostRepository
type MockPostRepository struct {
	mock.Mock
}

var _ ports.PostRepository = (*MockPostRepository)(nil)

func (m *MockPostRepository) ReplaceSessionPosts(ctx context.Context, sessionID core.SessionID, posts []post.Post) error {
	args := m.Called(ctx, sessionID, posts)
	return args.Error(0)
}

func (m *MockPostRepository) ListBySession(ctx context.Context, sessionID core.SessionID) ([]post.Post, error) {
	args := m.Called(ctx, sessionID)
	p, _ := args.Get(0).([]post.Post)
	return p, args.Error(1)
}

func (m *MockPostRepository) ListByArchived(ctx context.Context, sessionID core.SessionID, archived bool) ([]post.Post, error) {
	args := m.Called(ctx, sessionID, archived)
	p, _ := args.Get(0).([]post.Post)
	return p, args.Error(1)
}

func (m *MockPostRepository) Get(ctx context.Context, id core.PostID) (*post.Post, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*post.Post)
	return p, args.Error(1)
}

func (m *MockPostRepository) Update(ctx context.Context, p *post.Post) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, id core.PostID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
