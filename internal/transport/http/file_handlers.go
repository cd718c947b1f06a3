package http

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/SajeelSafdar99/mockupgenerator-be/internal/apperr"
)

func (h *Handler) UploadFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload+1024*1024)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		h.rp.Error(w, apperr.New(apperr.Validation,
			fmt.Sprintf("File size must be less than %dMB", h.maxUpload/(1024*1024))))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		h.rp.Error(w, apperr.New(apperr.Validation, "No image file provided"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.rp.Error(w, apperr.Wrap(apperr.Internal, "Internal server error", err))
		return
	}

	contentType := header.Header.Get("Content-Type")
	resp, err := h.files.Upload(r.Context(), userIDFrom(r.Context()), header.Filename, contentType, data)
	if err != nil {
		h.rp.Error(w, err)
		return
	}
	h.rp.JSON(w, http.StatusOK, "File uploaded successfully", resp)
}

// ServeFile streams a stored blob. Blob ids are immutable, so the id doubles
// as a strong ETag and responses carry a one-year cache lifetime.
func (h *Handler) ServeFile(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "fileID")
	etag := `"` + fileID + `"`

	if r.Header.Get("If-None-Match") == etag {
		w.Header().Set("ETag", etag)
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		w.WriteHeader(http.StatusNotModified)
		return
	}

	info, err := h.files.Serve(r.Context(), fileID, nil)
	if err != nil {
		h.rp.Error(w, err)
		return
	}

	w.Header().Set("Content-Type", info.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(info.Length, 10))
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")

	if _, err := h.files.Serve(r.Context(), fileID, w); err != nil {
		// Headers are gone; the truncated body is all we can signal with.
		h.log.WithContext(r.Context()).Error("file stream aborted", zap.Error(err))
	}
}
