package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreybb/voxvite/config"
	"github.com/coreybb/voxvite/datastore"
	rh "github.com/coreybb/voxvite/route-handlers"
	"github.com/coreybb/voxvite/storage"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := config.Config{
		Port:           "0",
		StaticDir:      t.TempDir(),
		UploadDir:      t.TempDir(),
		MaxUploadBytes: 10 << 20,
		MaxJSONBytes:   10 << 10,
	}

	accounts := datastore.NewAccountRegistry()
	sessions := datastore.NewSessionRegistry()
	invites := datastore.NewInviteRegistry()
	audioStore := storage.NewLocalAudioStore(cfg.UploadDir, cfg.MaxUploadBytes)

	router := SetupRoutes(
		cfg,
		sessions,
		rh.NewAuthHandler(accounts, sessions),
		rh.NewUploadHandler(audioStore, cfg.MaxUploadBytes),
		rh.NewInviteHandler(invites),
	)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, server *httptest.Server, method, path, token string, payload any) (int, map[string]any) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, server.URL+path, body)
	require.NoError(t, err)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	res, err := server.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	var decoded map[string]any
	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return res.StatusCode, decoded
}

func registerAndLogin(t *testing.T, server *httptest.Server, email, password string) string {
	t.Helper()

	code, _ := doJSON(t, server, http.MethodPost, "/api/register", "", map[string]string{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, code)

	code, body := doJSON(t, server, http.MethodPost, "/api/login", "", map[string]string{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, code)
	token, _ := body["sessionId"].(string)
	require.Len(t, token, 32)
	return token
}

func TestRegister(t *testing.T) {
	server := newTestServer(t)

	t.Run("success then duplicate", func(t *testing.T) {
		code, body := doJSON(t, server, http.MethodPost, "/api/register", "", map[string]string{
			"email": "a@x.com", "password": "secret1",
		})
		require.Equal(t, http.StatusCreated, code)
		assert.Equal(t, true, body["success"])

		code, body = doJSON(t, server, http.MethodPost, "/api/register", "", map[string]string{
			"email": "a@x.com", "password": "secret1",
		})
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "Email already registered", body["error"])
	})

	t.Run("validation failures are itemized", func(t *testing.T) {
		code, body := doJSON(t, server, http.MethodPost, "/api/register", "", map[string]string{
			"email": "nope", "password": "abc",
		})
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "Validation failed", body["error"])
		assert.Len(t, body["violations"], 2)
	})
}

func TestLogin_InvalidCredentials(t *testing.T) {
	server := newTestServer(t)
	registerAndLogin(t, server, "a@x.com", "secret1")

	codeWrong, bodyWrong := doJSON(t, server, http.MethodPost, "/api/login", "", map[string]string{
		"email": "a@x.com", "password": "wrong1",
	})
	codeUnknown, bodyUnknown := doJSON(t, server, http.MethodPost, "/api/login", "", map[string]string{
		"email": "nobody@x.com", "password": "secret1",
	})

	assert.Equal(t, http.StatusUnauthorized, codeWrong)
	assert.Equal(t, http.StatusUnauthorized, codeUnknown)
	// The response must not reveal whether the email exists.
	assert.Equal(t, bodyWrong, bodyUnknown)
}

func TestAuthGate(t *testing.T) {
	server := newTestServer(t)

	for name, token := range map[string]string{
		"missing token": "",
		"unknown token": "definitely-not-issued-aaaaaaaaaa",
	} {
		t.Run(name, func(t *testing.T) {
			code, body := doJSON(t, server, http.MethodGet, "/api/invites", token, nil)
			assert.Equal(t, http.StatusUnauthorized, code)
			assert.Equal(t, "Unauthorized", body["error"])
		})
	}
}

func TestInviteLifecycle(t *testing.T) {
	server := newTestServer(t)
	token := registerAndLogin(t, server, "a@x.com", "secret1")

	code, body := doJSON(t, server, http.MethodPost, "/api/generate-link", token, map[string]string{
		"name": "Sam", "message": "Dinner on Friday?",
	})
	require.Equal(t, http.StatusCreated, code)
	linkID, _ := body["linkId"].(string)
	require.Len(t, linkID, 10)

	// Public lookup returns the display subset, nothing else.
	code, body = doJSON(t, server, http.MethodGet, "/api/get-link?id="+linkID, "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Sam", body["name"])
	assert.Equal(t, "Dinner on Friday?", body["message"])
	assert.Equal(t, "pending", body["status"])
	assert.NotContains(t, body, "owner_id")
	assert.NotContains(t, body, "created_at")

	// Owner sees it in their listing.
	req, err := http.NewRequest(http.MethodGet, server.URL+"/api/invites", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", token)
	res, err := server.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	var invites []map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&invites))
	require.Len(t, invites, 1)
	assert.Equal(t, linkID, invites[0]["id"])

	// Respond yes, then confirm the status flipped.
	code, body = doJSON(t, server, http.MethodPost, "/api/respond", "", map[string]string{
		"linkId": linkID, "response": "yes",
	})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["success"])

	code, body = doJSON(t, server, http.MethodGet, "/api/get-link?id="+linkID, "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "accepted", body["status"])

	// A second response still succeeds and overwrites the answer.
	code, _ = doJSON(t, server, http.MethodPost, "/api/respond", "", map[string]string{
		"linkId": linkID, "response": "no",
	})
	require.Equal(t, http.StatusOK, code)

	code, body = doJSON(t, server, http.MethodGet, "/api/get-link?id="+linkID, "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "rejected", body["status"])
}

func TestGenerateLink_SanitizesMarkup(t *testing.T) {
	server := newTestServer(t)
	token := registerAndLogin(t, server, "a@x.com", "secret1")

	code, body := doJSON(t, server, http.MethodPost, "/api/generate-link", token, map[string]string{
		"name": "<b>Sam</b>", "message": "<script>alert(1)</script>see you",
	})
	require.Equal(t, http.StatusCreated, code)
	linkID, _ := body["linkId"].(string)

	code, body = doJSON(t, server, http.MethodGet, "/api/get-link?id="+linkID, "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Sam", body["name"])
	assert.Equal(t, "see you", body["message"])
}

func TestGetLink_Errors(t *testing.T) {
	server := newTestServer(t)

	t.Run("malformed id", func(t *testing.T) {
		code, body := doJSON(t, server, http.MethodGet, "/api/get-link?id=short", "", nil)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "Validation failed", body["error"])
	})

	t.Run("unknown id", func(t *testing.T) {
		code, body := doJSON(t, server, http.MethodGet, "/api/get-link?id=aaaaaaaaaa", "", nil)
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "Invite not found", body["error"])
	})
}

func TestRespond_Validation(t *testing.T) {
	server := newTestServer(t)

	code, body := doJSON(t, server, http.MethodPost, "/api/respond", "", map[string]string{
		"linkId": "aaaaaaaaaa", "response": "maybe",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Validation failed", body["error"])

	code, body = doJSON(t, server, http.MethodPost, "/api/respond", "", map[string]string{
		"linkId": "aaaaaaaaaa", "response": "yes",
	})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Invite not found", body["error"])
}

func uploadAudio(t *testing.T, server *httptest.Server, token, filename, contentType string, content []byte) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="audio"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req, err := http.NewRequest(http.MethodPost, server.URL+"/api/upload-audio", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	res, err := server.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	return res.StatusCode, body
}

func TestUploadAudio(t *testing.T) {
	server := newTestServer(t)
	token := registerAndLogin(t, server, "a@x.com", "secret1")

	t.Run("requires auth", func(t *testing.T) {
		code, body := uploadAudio(t, server, "", "voice.mp3", "audio/mpeg", []byte("xx"))
		assert.Equal(t, http.StatusUnauthorized, code)
		assert.Equal(t, "Unauthorized", body["error"])
	})

	t.Run("rejects non-audio", func(t *testing.T) {
		code, body := uploadAudio(t, server, token, "notes.txt", "text/plain", []byte("hello"))
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "Only audio files are accepted", body["error"])
	})

	t.Run("stores audio and serves it back", func(t *testing.T) {
		content := bytes.Repeat([]byte{0xAB}, 1<<20) // 1 MiB
		code, body := uploadAudio(t, server, token, "voice.mp3", "audio/mpeg", content)
		require.Equal(t, http.StatusOK, code)
		filename, _ := body["filename"].(string)
		require.NotEmpty(t, filename)

		res, err := server.Client().Get(server.URL + "/uploads/" + filename)
		require.NoError(t, err)
		defer res.Body.Close()
		require.Equal(t, http.StatusOK, res.StatusCode)
		served, err := io.ReadAll(res.Body)
		require.NoError(t, err)
		assert.Equal(t, content, served)
	})
}
