package models

import "time"

type InviteStatus string

const (
	InvitePending  InviteStatus = "pending"
	InviteAccepted InviteStatus = "accepted"
	InviteRejected InviteStatus = "rejected"
)

// Invite pairs a name/message/audio clip with a yes/no response slot,
// addressable by a short shareable link id.
type Invite struct {
	ID          string       `json:"id"`
	OwnerID     string       `json:"owner_id"`
	Name        string       `json:"name"`
	Message     string       `json:"message"`
	AudioPath   string       `json:"audio_path"` // "/uploads/{filename}" or empty
	Status      InviteStatus `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	RespondedAt *time.Time   `json:"responded_at,omitempty"`
}

// InviteView is the subset shown to an invitee. Owner identity and
// timestamps stay private.
type InviteView struct {
	Name     string       `json:"name"`
	Message  string       `json:"message"`
	AudioURL string       `json:"audioUrl"`
	Status   InviteStatus `json:"status"`
}

// View projects the invite into its public shape.
func (i *Invite) View() InviteView {
	return InviteView{
		Name:     i.Name,
		Message:  i.Message,
		AudioURL: i.AudioPath,
		Status:   i.Status,
	}
}
