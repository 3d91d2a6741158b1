package attachment

import (
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/sv1nxmmvt/GigaChat/internal/common"
)

type Handler struct {
	service  Service
	maxBytes int64
}

func NewHandler(service Service, maxBytes int64) *Handler {
	return &Handler{service: service, maxBytes: maxBytes}
}

// Upload handles POST /api/files/upload (multipart field "file")
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, common.ErrUnauthenticated)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+1<<20)
	file, header, err := r.FormFile("file")
	if err != nil {
		common.WriteError(w, common.ErrInvalidInput)
		return
	}
	defer file.Close()

	att, err := h.service.Upload(r.Context(), userID, header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusCreated, att)
}

// Download handles GET /api/files/{attachmentId}
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, common.ErrUnauthenticated)
		return
	}

	att, stream, err := h.service.Download(r.Context(), mux.Vars(r)["attachmentId"], userID)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	defer stream.Close()

	w.Header().Set("Content-Type", att.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(att.FileSize, 10))
	w.Header().Set("Content-Disposition", `attachment; filename="`+att.FileName+`"`)
	if _, err := io.Copy(w, stream); err != nil {
		log.Printf("failed to stream attachment %s: %v", att.ID, err)
	}
}

// Delete handles DELETE /api/files/{attachmentId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserIDFromContext(r.Context())
	if !ok {
		common.WriteError(w, common.ErrUnauthenticated)
		return
	}

	if err := h.service.Delete(r.Context(), mux.Vars(r)["attachmentId"], userID); err != nil {
		common.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
