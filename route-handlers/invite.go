package routehandlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/coreybb/voxvite/datastore"
	"github.com/coreybb/voxvite/models"
	"github.com/coreybb/voxvite/validate"
	"github.com/coreybb/voxvite/webutil"
)

// uploadsURLPrefix is where stored audio files are served from.
const uploadsURLPrefix = "/uploads/"

type InviteHandler struct {
	Invites *datastore.InviteRegistry
}

func NewInviteHandler(invites *datastore.InviteRegistry) *InviteHandler {
	return &InviteHandler{Invites: invites}
}

// HandleGenerateLink creates an invite for the authenticated caller and
// returns its shareable link id.
func (h *InviteHandler) HandleGenerateLink(w http.ResponseWriter, r *http.Request) error {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		return webutil.ErrUnauthorized("")
	}

	var requestData struct {
		Name      string `json:"name"`
		Message   string `json:"message"`
		AudioFile string `json:"audioFile"`
	}
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&requestData); err != nil {
		return webutil.ErrBadRequest("Invalid request payload: " + err.Error())
	}
	defer r.Body.Close()

	checker := validate.New()
	name := validate.Sanitize(requestData.Name)
	checker.Required("name", name)

	audioPath := ""
	if audioFile := strings.TrimSpace(requestData.AudioFile); audioFile != "" {
		// Stored filenames are flat; a separator can only be an attempt
		// to point the invite outside the uploads directory.
		if strings.ContainsAny(audioFile, `/\`) {
			checker.AddViolation("audioFile must be a bare filename")
		}
		audioPath = uploadsURLPrefix + audioFile
	}

	if err := checker.Err(); err != nil {
		return err
	}

	invite, err := h.Invites.Create(r.Context(), session.UserID, name, validate.Sanitize(requestData.Message), audioPath)
	if err != nil {
		return fmt.Errorf("failed to create invite: %w", err)
	}

	webutil.RespondWithJSON(w, http.StatusCreated, map[string]string{
		"linkId": invite.ID,
	})
	return nil
}

// HandleListInvites returns every invite owned by the caller, most
// recent first.
func (h *InviteHandler) HandleListInvites(w http.ResponseWriter, r *http.Request) error {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		return webutil.ErrUnauthorized("")
	}

	invites, err := h.Invites.ListByOwner(r.Context(), session.UserID)
	if err != nil {
		return fmt.Errorf("failed to list invites: %w", err)
	}
	if invites == nil {
		invites = []models.Invite{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, invites)
	return nil
}

// HandleGetLink is the public invitee-facing lookup. It only exposes
// the display subset of the invite.
func (h *InviteHandler) HandleGetLink(w http.ResponseWriter, r *http.Request) error {
	linkID := r.URL.Query().Get("id")

	checker := validate.New()
	checker.TokenLen("id", linkID, datastore.LinkIDLength)
	if err := checker.Err(); err != nil {
		return err
	}

	invite, err := h.Invites.GetByID(r.Context(), linkID)
	if err != nil {
		if errors.Is(err, datastore.ErrNotFound) {
			return webutil.ErrNotFound("Invite not found")
		}
		return fmt.Errorf("failed to look up invite %s: %w", linkID, err)
	}

	webutil.RespondWithJSON(w, http.StatusOK, invite.View())
	return nil
}

// HandleRespond records the invitee's yes/no answer.
func (h *InviteHandler) HandleRespond(w http.ResponseWriter, r *http.Request) error {
	var requestData struct {
		LinkID   string `json:"linkId"`
		Response string `json:"response"`
	}
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&requestData); err != nil {
		return webutil.ErrBadRequest("Invalid request payload: " + err.Error())
	}
	defer r.Body.Close()

	checker := validate.New()
	checker.TokenLen("linkId", requestData.LinkID, datastore.LinkIDLength)
	checker.OneOf("response", requestData.Response, "yes", "no")
	if err := checker.Err(); err != nil {
		return err
	}

	if _, err := h.Invites.Respond(r.Context(), requestData.LinkID, requestData.Response == "yes"); err != nil {
		if errors.Is(err, datastore.ErrNotFound) {
			return webutil.ErrNotFound("Invite not found")
		}
		return fmt.Errorf("failed to record response for %s: %w", requestData.LinkID, err)
	}

	webutil.RespondWithJSON(w, http.StatusOK, map[string]any{"success": true})
	return nil
}
