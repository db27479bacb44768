package datastore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/coreybb/voxvite/models"
	"github.com/coreybb/voxvite/webutil"
)

// LinkIDLength is the fixed length of every invite link id. Lookups
// are only valid for ids of exactly this length.
const LinkIDLength = 10

// InviteRegistry maps link ids to invites.
type InviteRegistry struct {
	mu   sync.RWMutex
	byID map[string]*models.Invite
}

func NewInviteRegistry() *InviteRegistry {
	return &InviteRegistry{
		byID: make(map[string]*models.Invite),
	}
}

// Create stores a new pending invite under a freshly generated link id.
// Name and message are expected to be sanitized by the caller; audioPath
// is the already-prefixed "/uploads/{filename}" URL or empty.
func (r *InviteRegistry) Create(ctx context.Context, ownerID, name, message, audioPath string) (*models.Invite, error) {
	id, err := webutil.GenerateRandomToken(LinkIDLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate link id: %w", err)
	}

	invite := &models.Invite{
		ID:        id,
		OwnerID:   ownerID,
		Name:      name,
		Message:   message,
		AudioPath: audioPath,
		Status:    models.InvitePending,
		CreatedAt: time.Now().UTC(),
	}

	r.mu.Lock()
	r.byID[id] = invite
	r.mu.Unlock()

	return invite, nil
}

// GetByID returns the invite for a link id, or ErrNotFound.
func (r *InviteRegistry) GetByID(ctx context.Context, id string) (*models.Invite, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	invite, exists := r.byID[id]
	if !exists {
		return nil, ErrNotFound
	}
	cp := *invite
	return &cp, nil
}

// ListByOwner returns a snapshot of every invite owned by ownerID,
// most recent first.
func (r *InviteRegistry) ListByOwner(ctx context.Context, ownerID string) ([]models.Invite, error) {
	r.mu.RLock()
	invites := make([]models.Invite, 0)
	for _, invite := range r.byID {
		if invite.OwnerID == ownerID {
			invites = append(invites, *invite)
		}
	}
	r.mu.RUnlock()

	sort.Slice(invites, func(i, j int) bool {
		return invites[i].CreatedAt.After(invites[j].CreatedAt)
	})
	return invites, nil
}

// Respond records a yes/no answer on the invite: accepted for yes,
// rejected for no, stamping RespondedAt. The current status is not
// checked, so answering an already-resolved invite overwrites the
// previous answer. That matches the observable behavior existing
// clients depend on.
func (r *InviteRegistry) Respond(ctx context.Context, id string, accept bool) (*models.Invite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	invite, exists := r.byID[id]
	if !exists {
		return nil, ErrNotFound
	}

	if accept {
		invite.Status = models.InviteAccepted
	} else {
		invite.Status = models.InviteRejected
	}
	now := time.Now().UTC()
	invite.RespondedAt = &now

	cp := *invite
	return &cp, nil
}
