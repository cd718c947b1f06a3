package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/SajeelSafdar99/mockupgenerator-be/internal/apperr"
	"github.com/SajeelSafdar99/mockupgenerator-be/internal/auth"
	"github.com/SajeelSafdar99/mockupgenerator-be/internal/storage/mongo"
	"github.com/SajeelSafdar99/mockupgenerator-be/internal/usecase"
)

func TestSignup_CreatesUserAndSession(t *testing.T) {
	users := newFakeUserRepo()
	tokens := newFakeTokenRepo()
	tm := testTokenManager(t)
	h := usecase.NewSignupHandler(users, tokens, tm, testLogger(t))

	resp, err := h.Handle(context.Background(), usecase.SignupRequest{
		FirstName: " John ",
		LastName:  "Doe",
		Email:     "John@Example.COM",
		Password:  "Passw0rdOk",
	})
	require.NoError(t, err)
	require.Equal(t, "john@example.com", resp.User.Email)
	require.Equal(t, "John", resp.User.FirstName)
	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.RefreshToken)

	// Refresh token is persisted with the standard 7-day lifetime.
	require.Len(t, tokens.tokens, 1)
	for _, rec := range tokens.tokens {
		require.WithinDuration(t, time.Now().Add(7*24*time.Hour), rec.ExpiresAt, time.Minute)
	}

	// Tokens verify under their own class.
	subject, err := tm.Verify(resp.AccessToken, auth.AccessToken)
	require.NoError(t, err)
	require.Equal(t, resp.User.ID, subject)
}

func TestSignup_Validation(t *testing.T) {
	h := usecase.NewSignupHandler(newFakeUserRepo(), newFakeTokenRepo(), testTokenManager(t), testLogger(t))

	cases := []struct {
		name string
		req  usecase.SignupRequest
		msg  string
	}{
		{"missing fields", usecase.SignupRequest{Email: "a@b.co"}, "All fields are required"},
		{"bad email", usecase.SignupRequest{FirstName: "Jo", LastName: "Do", Email: "nope", Password: "Passw0rdOk"}, "Invalid email format"},
		{"short name", usecase.SignupRequest{FirstName: "J", LastName: "Do", Email: "a@b.co", Password: "Passw0rdOk"}, "Names must be between 2-50 characters"},
		{"weak password", usecase.SignupRequest{FirstName: "Jo", LastName: "Do", Email: "a@b.co", Password: "weakpass"}, "Password must be at least 8 characters with uppercase, lowercase, and number"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := h.Handle(context.Background(), tc.req)
			e := apperr.From(err)
			require.Equal(t, apperr.Validation, e.Kind)
			require.Equal(t, tc.msg, e.Message)
		})
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	users := newFakeUserRepo()
	h := usecase.NewSignupHandler(users, newFakeTokenRepo(), testTokenManager(t), testLogger(t))

	req := usecase.SignupRequest{FirstName: "Jo", LastName: "Do", Email: "dup@example.com", Password: "Passw0rdOk"}
	_, err := h.Handle(context.Background(), req)
	require.NoError(t, err)

	_, err = h.Handle(context.Background(), req)
	e := apperr.From(err)
	require.Equal(t, apperr.Conflict, e.Kind)
	require.Equal(t, "User already exists with this email", e.Message)
}

func signupUser(t *testing.T, users *fakeUserRepo, email, password string) primitive.ObjectID {
	t.Helper()
	digest, err := auth.HashPassword(password)
	require.NoError(t, err)
	id, err := users.Insert(context.Background(), &mongo.User{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     email,
		Password:  digest,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	})
	require.NoError(t, err)
	return id
}

func TestLogin_Success(t *testing.T) {
	users := newFakeUserRepo()
	tokens := newFakeTokenRepo()
	id := signupUser(t, users, "jane@example.com", "Passw0rdOk")
	h := usecase.NewLoginHandler(users, tokens, testTokenManager(t), testLogger(t))

	resp, err := h.Handle(context.Background(), usecase.LoginRequest{
		Email:    "Jane@Example.com",
		Password: "Passw0rdOk",
	})
	require.NoError(t, err)
	require.Equal(t, id.Hex(), resp.User.ID)
	require.False(t, resp.RememberMe)
	require.NotEmpty(t, resp.AccessToken)

	require.NotNil(t, users.users[id].LastLogin)
}

func TestLogin_EnumerationResistance(t *testing.T) {
	users := newFakeUserRepo()
	signupUser(t, users, "jane@example.com", "Passw0rdOk")
	h := usecase.NewLoginHandler(users, newFakeTokenRepo(), testTokenManager(t), testLogger(t))

	_, errUnknown := h.Handle(context.Background(), usecase.LoginRequest{Email: "ghost@example.com", Password: "Passw0rdOk"})
	_, errWrongPw := h.Handle(context.Background(), usecase.LoginRequest{Email: "jane@example.com", Password: "WrongPass1"})

	eu, ew := apperr.From(errUnknown), apperr.From(errWrongPw)
	require.Equal(t, eu.Kind, ew.Kind)
	require.Equal(t, eu.Message, ew.Message)
	require.Equal(t, eu.Code, ew.Code)
	require.Equal(t, "Invalid credentials", eu.Message)
	require.Equal(t, apperr.Unauthorized, eu.Kind)
}

func TestLogin_RememberMeExtendsExpiry(t *testing.T) {
	users := newFakeUserRepo()
	tokens := newFakeTokenRepo()
	signupUser(t, users, "jane@example.com", "Passw0rdOk")
	h := usecase.NewLoginHandler(users, tokens, testTokenManager(t), testLogger(t))

	resp, err := h.Handle(context.Background(), usecase.LoginRequest{
		Email:      "jane@example.com",
		Password:   "Passw0rdOk",
		RememberMe: true,
	})
	require.NoError(t, err)
	require.True(t, resp.RememberMe)

	require.Len(t, tokens.tokens, 1)
	for _, rec := range tokens.tokens {
		require.WithinDuration(t, time.Now().Add(30*24*time.Hour), rec.ExpiresAt, time.Minute)
	}
}

func TestRefresh_Success(t *testing.T) {
	users := newFakeUserRepo()
	tokens := newFakeTokenRepo()
	tm := testTokenManager(t)
	id := signupUser(t, users, "jane@example.com", "Passw0rdOk")

	refresh, err := tm.IssueRefresh(id.Hex(), false)
	require.NoError(t, err)
	require.NoError(t, tokens.Insert(context.Background(), &mongo.RefreshToken{
		UserID:    id,
		Token:     refresh,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	h := usecase.NewRefreshHandler(tokens, tm, testLogger(t))
	resp, err := h.Handle(context.Background(), usecase.RefreshRequest{RefreshToken: refresh})
	require.NoError(t, err)

	subject, err := tm.Verify(resp.AccessToken, auth.AccessToken)
	require.NoError(t, err)
	require.Equal(t, id.Hex(), subject)

	// No rotation: the refresh record is untouched.
	require.Len(t, tokens.tokens, 1)
}

func TestRefresh_UnknownToken(t *testing.T) {
	tm := testTokenManager(t)
	h := usecase.NewRefreshHandler(newFakeTokenRepo(), tm, testLogger(t))

	// Validly signed but never persisted (e.g. logged out).
	refresh, err := tm.IssueRefresh(primitive.NewObjectID().Hex(), false)
	require.NoError(t, err)

	_, err = h.Handle(context.Background(), usecase.RefreshRequest{RefreshToken: refresh})
	e := apperr.From(err)
	require.Equal(t, apperr.Forbidden, e.Kind)
	require.Equal(t, "Refresh token not found", e.Message)
}

func TestRefresh_MalformedToken(t *testing.T) {
	h := usecase.NewRefreshHandler(newFakeTokenRepo(), testTokenManager(t), testLogger(t))

	_, err := h.Handle(context.Background(), usecase.RefreshRequest{RefreshToken: "garbage"})
	e := apperr.From(err)
	require.Equal(t, apperr.Forbidden, e.Kind)
	require.Equal(t, apperr.CodeInvalidToken, e.Code)
}

func TestRefresh_ExpiredRecordLazilyDeleted(t *testing.T) {
	tokens := newFakeTokenRepo()
	tm := testTokenManager(t)
	id := primitive.NewObjectID()

	refresh, err := tm.IssueRefresh(id.Hex(), false)
	require.NoError(t, err)
	require.NoError(t, tokens.Insert(context.Background(), &mongo.RefreshToken{
		UserID:    id,
		Token:     refresh,
		CreatedAt: time.Now().Add(-2 * time.Hour),
		ExpiresAt: time.Now().Add(-time.Hour),
	}))

	h := usecase.NewRefreshHandler(tokens, tm, testLogger(t))

	_, err = h.Handle(context.Background(), usecase.RefreshRequest{RefreshToken: refresh})
	require.Equal(t, "Refresh token expired", apperr.From(err).Message)

	// Second attempt lands on not-found: the expired record was removed.
	_, err = h.Handle(context.Background(), usecase.RefreshRequest{RefreshToken: refresh})
	require.Equal(t, "Refresh token not found", apperr.From(err).Message)
}

func TestLogout_Idempotent(t *testing.T) {
	tokens := newFakeTokenRepo()
	id := primitive.NewObjectID()
	require.NoError(t, tokens.Insert(context.Background(), &mongo.RefreshToken{
		UserID:    id,
		Token:     "tok-1",
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	h := usecase.NewLogoutHandler(tokens, testLogger(t))

	require.NoError(t, h.Handle(context.Background(), usecase.LogoutRequest{RefreshToken: "tok-1"}))
	require.Empty(t, tokens.tokens)

	// Repeating with the same (now unknown) token still succeeds.
	require.NoError(t, h.Handle(context.Background(), usecase.LogoutRequest{RefreshToken: "tok-1"}))
}

func TestLogout_RequiresToken(t *testing.T) {
	h := usecase.NewLogoutHandler(newFakeTokenRepo(), testLogger(t))
	err := h.Handle(context.Background(), usecase.LogoutRequest{})
	require.Equal(t, apperr.Validation, apperr.From(err).Kind)
}

func TestProfile(t *testing.T) {
	users := newFakeUserRepo()
	id := signupUser(t, users, "jane@example.com", "Passw0rdOk")
	h := usecase.NewProfileHandler(users, testLogger(t))

	resp, err := h.Handle(context.Background(), id.Hex())
	require.NoError(t, err)
	require.Equal(t, "jane@example.com", resp.User.Email)

	_, err = h.Handle(context.Background(), primitive.NewObjectID().Hex())
	require.Equal(t, apperr.NotFound, apperr.From(err).Kind)

	_, err = h.Handle(context.Background(), "not-an-id")
	require.Equal(t, apperr.NotFound, apperr.From(err).Kind)
}

func TestLogin_StoreErrorIsInternal(t *testing.T) {
	users := newFakeUserRepo()
	users.Err = context.DeadlineExceeded
	h := usecase.NewLoginHandler(users, newFakeTokenRepo(), testTokenManager(t), testLogger(t))

	_, err := h.Handle(context.Background(), usecase.LoginRequest{Email: "jane@example.com", Password: "Passw0rdOk"})
	require.Equal(t, apperr.Internal, apperr.From(err).Kind)
}
