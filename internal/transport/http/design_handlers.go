package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/SajeelSafdar99/mockupgenerator-be/internal/apperr"
	"github.com/SajeelSafdar99/mockupgenerator-be/internal/usecase"
)

func (h *Handler) CreateDesign(w http.ResponseWriter, r *http.Request) {
	var req usecase.CreateDesignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.rp.Error(w, apperr.New(apperr.Validation, "Invalid JSON body"))
		return
	}

	resp, err := h.designs.Create(r.Context(), userIDFrom(r.Context()), req)
	if err != nil {
		h.rp.Error(w, err)
		return
	}
	h.rp.JSON(w, http.StatusCreated, "Design created successfully", resp)
}

func (h *Handler) GetDesign(w http.ResponseWriter, r *http.Request) {
	resp, err := h.designs.Get(r.Context(), userIDFrom(r.Context()), chi.URLParam(r, "designID"))
	if err != nil {
		h.rp.Error(w, err)
		return
	}
	h.rp.JSON(w, http.StatusOK, "Design retrieved successfully", resp)
}

func (h *Handler) ListDesigns(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 10)

	resp, err := h.designs.List(r.Context(), userIDFrom(r.Context()), r.URL.Query().Get("search"), page, limit)
	if err != nil {
		h.rp.Error(w, err)
		return
	}
	h.rp.JSON(w, http.StatusOK, "Designs retrieved successfully", resp)
}

func (h *Handler) UpdateDesign(w http.ResponseWriter, r *http.Request) {
	// Thumbnail needs three-way handling: absent (keep), null (clear),
	// string (replace). Raw message keeps the distinction.
	var body struct {
		Name      string                 `json:"name"`
		Data      map[string]interface{} `json:"data"`
		Thumbnail json.RawMessage        `json:"thumbnail"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.rp.Error(w, apperr.New(apperr.Validation, "Invalid JSON body"))
		return
	}

	req := usecase.UpdateDesignRequest{Name: body.Name, Data: body.Data}
	if body.Thumbnail != nil {
		req.ThumbnailSet = true
		if string(body.Thumbnail) != "null" {
			var thumb string
			if err := json.Unmarshal(body.Thumbnail, &thumb); err != nil {
				h.rp.Error(w, apperr.New(apperr.Validation, "Invalid thumbnail value"))
				return
			}
			req.Thumbnail = &thumb
		}
	}

	resp, err := h.designs.Update(r.Context(), userIDFrom(r.Context()), chi.URLParam(r, "designID"), req)
	if err != nil {
		h.rp.Error(w, err)
		return
	}
	h.rp.JSON(w, http.StatusOK, "Design updated successfully", resp)
}

func (h *Handler) DeleteDesign(w http.ResponseWriter, r *http.Request) {
	if err := h.designs.Delete(r.Context(), userIDFrom(r.Context()), chi.URLParam(r, "designID")); err != nil {
		h.rp.Error(w, err)
		return
	}
	h.rp.JSON(w, http.StatusOK, "Design deleted successfully", nil)
}

func (h *Handler) BulkDeleteDesigns(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DesignIDs []string `json:"designIds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.rp.Error(w, apperr.New(apperr.Validation, "Invalid JSON body"))
		return
	}

	resp, err := h.designs.BulkDelete(r.Context(), userIDFrom(r.Context()), req.DesignIDs)
	if err != nil {
		h.rp.Error(w, err)
		return
	}
	h.rp.JSON(w, http.StatusOK, "Designs deleted successfully", resp)
}

func queryInt(r *http.Request, key string, def int64) int64 {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 1 {
		return def
	}
	return n
}
