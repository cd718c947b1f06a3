package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/SajeelSafdar99/mockupgenerator-be/internal/apperr"
	"github.com/SajeelSafdar99/mockupgenerator-be/internal/usecase"
)

func (h *Handler) SaveImage(w http.ResponseWriter, r *http.Request) {
	var req usecase.SaveImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.rp.Error(w, apperr.New(apperr.Validation, "Invalid JSON body"))
		return
	}

	resp, err := h.images.Save(r.Context(), userIDFrom(r.Context()), req)
	if err != nil {
		h.rp.Error(w, err)
		return
	}
	h.rp.JSON(w, http.StatusCreated, "Image saved successfully", resp)
}

func (h *Handler) GetImage(w http.ResponseWriter, r *http.Request) {
	resp, err := h.images.Get(r.Context(), userIDFrom(r.Context()), chi.URLParam(r, "imageID"))
	if err != nil {
		h.rp.Error(w, err)
		return
	}
	h.rp.JSON(w, http.StatusOK, "Image retrieved successfully", resp)
}

func (h *Handler) ListImages(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 20)

	resp, err := h.images.List(r.Context(), userIDFrom(r.Context()), r.URL.Query().Get("type"), page, limit)
	if err != nil {
		h.rp.Error(w, err)
		return
	}
	h.rp.JSON(w, http.StatusOK, "Images retrieved successfully", resp)
}

func (h *Handler) BulkDeleteImages(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ImageIDs []string `json:"imageIds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.rp.Error(w, apperr.New(apperr.Validation, "Invalid JSON body"))
		return
	}

	resp, err := h.images.BulkDelete(r.Context(), userIDFrom(r.Context()), req.ImageIDs)
	if err != nil {
		h.rp.Error(w, err)
		return
	}
	h.rp.JSON(w, http.StatusOK, "Images deleted successfully", resp)
}
