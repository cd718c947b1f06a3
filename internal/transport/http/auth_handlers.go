package http

import (
	"encoding/json"
	"net/http"

	"github.com/SajeelSafdar99/mockupgenerator-be/internal/apperr"
	"github.com/SajeelSafdar99/mockupgenerator-be/internal/usecase"
)

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req usecase.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.rp.Error(w, apperr.New(apperr.Validation, "Invalid JSON body"))
		return
	}

	resp, err := h.signup.Handle(r.Context(), req)
	if err != nil {
		h.rp.Error(w, err)
		return
	}
	h.rp.JSON(w, http.StatusCreated, "User created successfully", resp)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req usecase.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.rp.Error(w, apperr.New(apperr.Validation, "Invalid JSON body"))
		return
	}

	resp, err := h.login.Handle(r.Context(), req)
	if err != nil {
		h.rp.Error(w, err)
		return
	}
	h.rp.JSON(w, http.StatusOK, "Login successful", resp)
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req usecase.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.rp.Error(w, apperr.New(apperr.Validation, "Invalid JSON body"))
		return
	}

	resp, err := h.refresh.Handle(r.Context(), req)
	if err != nil {
		h.rp.Error(w, err)
		return
	}
	h.rp.JSON(w, http.StatusOK, "Token refreshed successfully", resp)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	var req usecase.LogoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.rp.Error(w, apperr.New(apperr.Validation, "Invalid JSON body"))
		return
	}

	if err := h.logout.Handle(r.Context(), req); err != nil {
		h.rp.Error(w, err)
		return
	}
	h.rp.JSON(w, http.StatusOK, "Logged out successfully", nil)
}

func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	resp, err := h.profile.Handle(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		h.rp.Error(w, err)
		return
	}
	h.rp.JSON(w, http.StatusOK, "Profile retrieved successfully", resp)
}
