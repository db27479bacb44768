package routehandlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/coreybb/voxvite/storage"
	"github.com/coreybb/voxvite/webutil"
)

// uploadFieldName is the multipart form field carrying the audio file.
const uploadFieldName = "audio"

// multipartMemoryLimit bounds how much of a parsed form is held in
// memory before spilling to temp files.
const multipartMemoryLimit = 1 << 20

type UploadHandler struct {
	Store    storage.AudioStorer
	MaxBytes int64
}

func NewUploadHandler(store storage.AudioStorer, maxBytes int64) *UploadHandler {
	return &UploadHandler{Store: store, MaxBytes: maxBytes}
}

func (h *UploadHandler) HandleUploadAudio(w http.ResponseWriter, r *http.Request) error {
	// Transport-level ceiling; the store re-checks the file itself. The
	// slack covers multipart framing overhead.
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxBytes+multipartMemoryLimit)

	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return webutil.ErrBadRequest("Audio file exceeds the size limit")
		}
		return webutil.ErrBadRequestWrap("Invalid multipart form", err)
	}

	file, header, err := r.FormFile(uploadFieldName)
	if err != nil {
		return webutil.ErrBadRequest("No audio file provided")
	}
	defer file.Close()

	fileName, err := h.Store.Store(r.Context(), header.Filename, header.Header.Get(webutil.HeaderContentType), file)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrUnsupportedType):
			return webutil.ErrBadRequest("Only audio files are accepted")
		case errors.Is(err, storage.ErrTooLarge):
			return webutil.ErrBadRequest("Audio file exceeds the size limit")
		}
		return fmt.Errorf("failed to store uploaded audio: %w", err)
	}

	webutil.RespondWithJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"filename": fileName,
	})
	return nil
}
