package routehandlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/coreybb/voxvite/datastore"
	"github.com/coreybb/voxvite/validate"
	"github.com/coreybb/voxvite/webutil"
)

const minPasswordLength = 6

type AuthHandler struct {
	Accounts *datastore.AccountRegistry
	Sessions *datastore.SessionRegistry
}

func NewAuthHandler(accounts *datastore.AccountRegistry, sessions *datastore.SessionRegistry) *AuthHandler {
	return &AuthHandler{Accounts: accounts, Sessions: sessions}
}

func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) error {
	var requestData struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&requestData); err != nil {
		return webutil.ErrBadRequest("Invalid request payload: " + err.Error())
	}
	defer r.Body.Close()

	checker := validate.New()
	email := checker.Email("email", requestData.Email)
	checker.MinLen("password", requestData.Password, minPasswordLength)
	if err := checker.Err(); err != nil {
		return err
	}

	account, err := h.Accounts.Create(r.Context(), email, requestData.Password)
	if err != nil {
		if errors.Is(err, datastore.ErrDuplicateEmail) {
			return webutil.ErrBadRequest("Email already registered")
		}
		return fmt.Errorf("failed to create account for %s: %w", email, err)
	}

	webutil.RespondWithJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Account created",
		"id":      account.ID,
	})
	return nil
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) error {
	var requestData struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&requestData); err != nil {
		return webutil.ErrBadRequest("Invalid request payload: " + err.Error())
	}
	defer r.Body.Close()

	checker := validate.New()
	email := checker.Email("email", requestData.Email)
	checker.Required("password", requestData.Password)
	if err := checker.Err(); err != nil {
		return err
	}

	account, err := h.Accounts.Verify(r.Context(), email, requestData.Password)
	if err != nil {
		if errors.Is(err, datastore.ErrInvalidCredentials) {
			// Same response whether the email is unknown or the
			// password is wrong.
			return webutil.ErrUnauthorized("Invalid credentials")
		}
		return fmt.Errorf("failed to verify credentials: %w", err)
	}

	token, err := h.Sessions.Create(r.Context(), account.ID, account.Email)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	webutil.RespondWithJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"sessionId": token,
	})
	return nil
}
