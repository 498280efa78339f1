package repository

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stampdeck/stampdeck-backend/internal/app/model"
	"github.com/stampdeck/stampdeck-backend/internal/kv"
	"github.com/stampdeck/stampdeck-backend/pkg/logger"
)

// UserRepository is the mock credential table. Email lookups are
// case-insensitive.
type UserRepository interface {
	List() ([]model.User, error)
	Create(input model.User) (*model.User, error)
	FindByID(id string) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	Update(id string, mutate func(*model.User)) error
}

type userRepository struct {
	store kv.Store
}

func NewUserRepository(store kv.Store) UserRepository {
	return &userRepository{store: store}
}

func (r *userRepository) List() ([]model.User, error) {
	return readCollection[model.User](r.store, KeyUsers)
}

// Create assigns an id and timestamp unless the caller supplied a fixed id
// (seeded demo users carry well-known ids).
func (r *userRepository) Create(input model.User) (*model.User, error) {
	next := input
	if next.ID == "" {
		next.ID = uuid.New().String()
	}
	if next.CreatedAt.IsZero() {
		next.CreatedAt = time.Now()
	}

	if err := prependToCollection(r.store, KeyUsers, next); err != nil {
		return nil, err
	}

	logger.Debug("User created", map[string]interface{}{
		"user_id": next.ID,
		"email":   next.Email,
		"role":    next.Role,
	})
	return &next, nil
}

func (r *userRepository) FindByID(id string) (*model.User, error) {
	items, err := r.List()
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, nil
}

func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	items, err := r.List()
	if err != nil {
		return nil, err
	}
	for i := range items {
		if strings.EqualFold(items[i].Email, email) {
			return &items[i], nil
		}
	}
	return nil, nil
}

func (r *userRepository) Update(id string, mutate func(*model.User)) error {
	return updateCollection(r.store, KeyUsers,
		func(u *model.User) bool { return u.ID == id }, mutate)
}
