package datastore

import (
	"context"
	"sync"
	"time"

	"github.com/coreybb/voxvite/models"
	"github.com/google/uuid"
)

// AccountRegistry maps normalized email addresses to accounts.
type AccountRegistry struct {
	mu      sync.RWMutex
	byEmail map[string]*models.Account
}

func NewAccountRegistry() *AccountRegistry {
	return &AccountRegistry{
		byEmail: make(map[string]*models.Account),
	}
}

// Create registers a new account under the given email. The email must
// already be normalized (trimmed, lowercased) by the caller. The
// existence check and insert happen under one write lock so concurrent
// registrations of the same email cannot both succeed.
func (r *AccountRegistry) Create(ctx context.Context, email, password string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[email]; exists {
		return nil, ErrDuplicateEmail
	}

	account := &models.Account{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Email:     email,
		Password:  password,
	}
	r.byEmail[email] = account
	return account, nil
}

// Verify looks up the account for email and compares passwords by
// exact string equality. Both a missing account and a mismatched
// password return ErrInvalidCredentials.
func (r *AccountRegistry) Verify(ctx context.Context, email, password string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, exists := r.byEmail[email]
	if !exists || account.Password != password {
		return nil, ErrInvalidCredentials
	}
	return account, nil
}
