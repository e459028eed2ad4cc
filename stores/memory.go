package stores

import (
	"context"
	"sync"

	"github.com/martwain/todobackend/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// MemoryUserStore is a thread-safe in-memory credential store for tests and local dev.
type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[bson.ObjectID]models.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[bson.ObjectID]models.User)}
}

func (s *MemoryUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryUserStore) FindByID(_ context.Context, id bson.ObjectID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := u
	return &copied, nil
}

func (s *MemoryUserStore) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return ErrEmailExists
		}
	}
	if user.ID.IsZero() {
		user.ID = bson.NewObjectID()
	}
	s.users[user.ID] = *user
	return nil
}

func (s *MemoryUserStore) Update(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return ErrNotFound
	}
	s.users[user.ID] = *user
	return nil
}

func (s *MemoryUserStore) Delete(_ context.Context, id bson.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return ErrNotFound
	}
	delete(s.users, id)
	return nil
}

// MemoryTodoStore is a thread-safe in-memory to-do store for tests and local dev.
type MemoryTodoStore struct {
	mu    sync.RWMutex
	items map[bson.ObjectID]models.TodoItem
}

func NewMemoryTodoStore() *MemoryTodoStore {
	return &MemoryTodoStore{items: make(map[bson.ObjectID]models.TodoItem)}
}

func (s *MemoryTodoStore) Create(_ context.Context, item *models.TodoItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if item.ID.IsZero() {
		item.ID = bson.NewObjectID()
	}
	s.items[item.ID] = *item
	return nil
}

func (s *MemoryTodoStore) FindByID(_ context.Context, id bson.ObjectID) (*models.TodoItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := item
	return &copied, nil
}

func (s *MemoryTodoStore) ListByUser(_ context.Context, userID bson.ObjectID) ([]models.TodoItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]models.TodoItem, 0)
	for _, item := range s.items {
		if item.UserID == userID {
			items = append(items, item)
		}
	}
	return items, nil
}

func (s *MemoryTodoStore) Update(_ context.Context, item *models.TodoItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[item.ID]; !ok {
		return ErrNotFound
	}
	s.items[item.ID] = *item
	return nil
}

func (s *MemoryTodoStore) Delete(_ context.Context, id bson.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return ErrNotFound
	}
	delete(s.items, id)
	return nil
}
