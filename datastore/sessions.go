package datastore

import (
	"context"
	"fmt"
	"sync"

	"github.com/coreybb/voxvite/models"
	"github.com/coreybb/voxvite/webutil"
)

// sessionTokenLength is the length of the opaque bearer credential
// returned to clients.
const sessionTokenLength = 32

// SessionRegistry maps session tokens to the identity snapshot taken
// at login. Tokens are keyed by their SHA-256 digest so the raw bearer
// credential is never held at rest. Sessions never expire and there is
// no logout, so entries live until process restart.
type SessionRegistry struct {
	mu       sync.RWMutex
	byDigest map[string]*models.Session
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		byDigest: make(map[string]*models.Session),
	}
}

// Create mints a fresh token for the identity and stores the snapshot.
// One account may hold any number of concurrent sessions.
func (r *SessionRegistry) Create(ctx context.Context, userID, email string) (string, error) {
	token, err := webutil.GenerateRandomToken(sessionTokenLength)
	if err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}

	session := &models.Session{
		Token:  token,
		UserID: userID,
		Email:  email,
	}

	r.mu.Lock()
	r.byDigest[webutil.GenerateHash(token)] = session
	r.mu.Unlock()

	return token, nil
}

// Resolve returns the identity snapshot for a token, or ErrNotFound.
func (r *SessionRegistry) Resolve(ctx context.Context, token string) (*models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, exists := r.byDigest[webutil.GenerateHash(token)]
	if !exists {
		return nil, ErrNotFound
	}
	return session, nil
}
