package devserver

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/labstock-id/labstock/internal/models"
)

var (
	ErrEmailTaken   = errors.New("email already registered")
	ErrUserNotFound = errors.New("user not found")
	ErrItemNotFound = errors.New("item not found")
)

// account pairs the public user with its credential hash, which never
// leaves this package.
type account struct {
	user         models.User
	passwordHash string
}

// UserStore is an in-memory account store keyed by email.
type UserStore struct {
	mu       sync.Mutex
	accounts []account
}

func NewUserStore() *UserStore {
	return &UserStore{}
}

// Create registers a new account. Emails are unique.
func (s *UserStore) Create(name, email, passwordHash string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.accounts {
		if a.user.Email == email {
			return models.User{}, ErrEmailTaken
		}
	}

	user := models.User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	s.accounts = append(s.accounts, account{user: user, passwordHash: passwordHash})
	return user, nil
}

// GetByEmail returns the user and its password hash.
func (s *UserStore) GetByEmail(email string) (models.User, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.accounts {
		if a.user.Email == email {
			return a.user, a.passwordHash, nil
		}
	}
	return models.User{}, "", ErrUserNotFound
}

func (s *UserStore) GetByID(id string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.accounts {
		if a.user.ID == id {
			return a.user, nil
		}
	}
	return models.User{}, ErrUserNotFound
}

// ItemStore is an in-memory item store. Every operation is scoped to the
// owning user; an item belonging to someone else is indistinguishable
// from a missing one.
type ItemStore struct {
	mu    sync.Mutex
	items []models.Item
}

func NewItemStore() *ItemStore {
	return &ItemStore{}
}

func (s *ItemStore) Create(userID string, in models.ItemInput) models.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := models.Item{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Category:    in.Category,
		Quantity:    in.Quantity,
		Description: in.Description,
		UserID:      userID,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	s.items = append(s.items, item)
	return item
}

func (s *ItemStore) ListByUser(userID string) []models.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Item{}
	for _, item := range s.items {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	return out
}

func (s *ItemStore) Get(userID, id string) (models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.items {
		if item.ID == id && item.UserID == userID {
			return item, nil
		}
	}
	return models.Item{}, ErrItemNotFound
}

func (s *ItemStore) Update(userID, id string, in models.ItemInput) (models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, item := range s.items {
		if item.ID == id && item.UserID == userID {
			item.Name = in.Name
			item.Category = in.Category
			item.Quantity = in.Quantity
			item.Description = in.Description
			s.items[i] = item
			return item, nil
		}
	}
	return models.Item{}, ErrItemNotFound
}

func (s *ItemStore) Delete(userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, item := range s.items {
		if item.ID == id && item.UserID == userID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return ErrItemNotFound
}
