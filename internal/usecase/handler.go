// Package usecase orchestrates the session lifecycle and resource flows on
// top of the storage adapters and the token service.
package usecase

import (
	"context"
	"time"
)

type SignupRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// AuthUser is the safe projection of a user returned by auth flows.
// It never carries the password digest.
type AuthUser struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type SignupResponse struct {
	User         AuthUser `json:"user"`
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
}

type LoginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

type LoginResponse struct {
	User         AuthUser `json:"user"`
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
	RememberMe   bool     `json:"rememberMe"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type RefreshResponse struct {
	AccessToken string `json:"accessToken"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type ProfileUser struct {
	ID        string     `json:"id"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Email     string     `json:"email"`
	CreatedAt time.Time  `json:"createdAt"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

type ProfileResponse struct {
	User ProfileUser `json:"user"`
}

type SignupHandler interface {
	Handle(ctx context.Context, req SignupRequest) (*SignupResponse, error)
}

type LoginHandler interface {
	Handle(ctx context.Context, req LoginRequest) (*LoginResponse, error)
}

type RefreshHandler interface {
	Handle(ctx context.Context, req RefreshRequest) (*RefreshResponse, error)
}

type LogoutHandler interface {
	Handle(ctx context.Context, req LogoutRequest) error
}

type ProfileHandler interface {
	Handle(ctx context.Context, userID string) (*ProfileResponse, error)
}

// Pagination is the shared page descriptor for list responses.
type Pagination struct {
	CurrentPage int64 `json:"currentPage"`
	TotalPages  int64 `json:"totalPages"`
	TotalCount  int64 `json:"totalCount"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
}

func paginate(page, limit, total int64) Pagination {
	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}
	return Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalCount:  total,
		HasNext:     (page-1)*limit+limit < total,
		HasPrev:     page > 1,
	}
}
