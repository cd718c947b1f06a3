// Package http exposes the REST surface: auth, profile, designs, images
// and the upload bucket, all behind a shared JSON envelope.
package http

import (
	"encoding/json"
	"net/http"

	"github.com/SajeelSafdar99/mockupgenerator-be/internal/apperr"
)

// envelope is the uniform response body. Details carries the underlying
// error text and is populated only when the responder runs in dev mode.
type envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Code    string      `json:"code,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Details string      `json:"details,omitempty"`
}

type responder struct {
	devMode bool
}

func (rp *responder) JSON(w http.ResponseWriter, status int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func (rp *responder) Error(w http.ResponseWriter, err error) {
	e := apperr.From(err)

	body := envelope{
		Success: false,
		Message: e.Message,
		Code:    e.Code,
	}
	if rp.devMode && e.Err != nil {
		body.Details = e.Err.Error()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.HTTPStatus())
	_ = json.NewEncoder(w).Encode(body)
}
