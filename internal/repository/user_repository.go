package repository

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/amigurumi/storefront/internal/model"
	"github.com/amigurumi/storefront/internal/utils"
)

// UserRepo is the in-memory credential store.  Users are keyed by
// normalized email and live for the lifetime of the process.  All methods
// are safe for concurrent use from multiple request goroutines.
type UserRepo struct {
	mu      sync.RWMutex
	byEmail map[string]model.User
}

func NewUserRepo() *UserRepo {
	return &UserRepo{byEmail: make(map[string]model.User)}
}

// NormalizeEmail trims and lower-cases an email so that lookups and the
// uniqueness invariant are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create hashes the password and inserts the user, returning ErrEmailExists
// if the normalized email is already taken.  The existence check and the
// insert happen under one lock, so concurrent registrations for the same
// email yield exactly one user.
func (r *UserRepo) Create(email, password, displayName string, isAdmin bool, cost int) (model.User, error) {
	email = NormalizeEmail(email)
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return model.User{}, err
	}
	role := model.RoleCustomer
	if isAdmin {
		role = model.RoleAdmin
	}
	u := model.User{
		ID:           uuid.New().String(),
		Email:        email,
		DisplayName:  displayName,
		Role:         role,
		PasswordHash: hash,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byEmail[email]; taken {
		return model.User{}, ErrEmailExists
	}
	r.byEmail[email] = u
	return u, nil
}

// Exists reports whether a user with the normalized email is present.
func (r *UserRepo) Exists(email string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byEmail[NormalizeEmail(email)]
	return ok
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(email string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byEmail[NormalizeEmail(email)]
	if !ok {
		return model.User{}, ErrUserNotFound
	}
	return u, nil
}

// GetByID fetches a user by id.  Implemented as a scan over all users;
// fine while the population is small, and this store never grows past a
// demo-sized population.
func (r *UserRepo) GetByID(id string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, ErrUserNotFound
}
