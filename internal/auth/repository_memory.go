package auth

import (
	"errors"
	"time"
)

type InMemoryUserRepository struct {
	users  map[string]*User
	nextID int64
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		users: make(map[string]*User),
	}
}

func (r *InMemoryUserRepository) Save(user *User) error {
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.Username] = user
	return nil
}

func (r *InMemoryUserRepository) FindByUsername(username string) (*User, error) {
	user, ok := r.users[username]
	if !ok {
		return nil, errors.New("user not found")
	}
	return user, nil
}

func (r *InMemoryUserRepository) ExistsByUsername(username string) (bool, error) {
	_, exists := r.users[username]
	return exists, nil
}

func (r *InMemoryUserRepository) ExistsByEmail(email string) (bool, error) {
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *InMemoryUserRepository) Count() (int64, error) {
	return int64(len(r.users)), nil
}
