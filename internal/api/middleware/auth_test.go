package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpdesk14/helpdesk/internal/api/middleware"
	"github.com/helpdesk14/helpdesk/internal/auth"
	"github.com/helpdesk14/helpdesk/internal/authz"
	"github.com/helpdesk14/helpdesk/internal/user"
)

// singleUserRepo serves exactly one user by email.
type singleUserRepo struct {
	user user.User
}

func (r *singleUserRepo) Create(context.Context, *user.User) error { return nil }

func (r *singleUserRepo) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	if id == r.user.ID {
		u := r.user
		return &u, nil
	}
	return nil, user.ErrUserNotFound
}

func (r *singleUserRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	if email == r.user.Email {
		u := r.user
		return &u, nil
	}
	return nil, user.ErrUserNotFound
}

func (r *singleUserRepo) List(context.Context) ([]user.User, error) {
	return []user.User{r.user}, nil
}

func (r *singleUserRepo) Update(context.Context, *user.User) error { return nil }

func (r *singleUserRepo) Delete(context.Context, uuid.UUID) error { return nil }

func setupAuthMiddleware(t *testing.T, role user.Role) (func(http.Handler) http.Handler, string) {
	t.Helper()

	repo := &singleUserRepo{user: user.User{
		ID:    uuid.New(),
		Email: "alice@x.com",
		Role:  role,
	}}
	codec := auth.NewTokenCodec([]byte("0123456789abcdef0123456789abcdef"), time.Hour)
	resolver := auth.NewResolver(repo, codec)

	token, err := codec.Issue("alice@x.com")
	require.NoError(t, err)

	return middleware.Auth(resolver), token
}

func callerProbe(seen **auth.Caller) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*seen = middleware.GetCaller(r.Context())
	})
}

func TestAuth_MissingHeader(t *testing.T) {
	mw, _ := setupAuthMiddleware(t, user.RoleUser)

	var caller *auth.Caller
	rec := httptest.NewRecorder()
	mw(callerProbe(&caller)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, caller)
}

func TestAuth_MalformedHeader(t *testing.T) {
	mw, token := setupAuthMiddleware(t, user.RoleUser)

	for _, header := range []string{token, "Basic " + token, "Bearer"} {
		var caller *auth.Caller
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", header)

		rec := httptest.NewRecorder()
		mw(callerProbe(&caller)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
		assert.Nil(t, caller)
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	mw, _ := setupAuthMiddleware(t, user.RoleUser)

	var caller *auth.Caller
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")

	rec := httptest.NewRecorder()
	mw(callerProbe(&caller)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, caller)
}

// failingUserRepo simulates a store outage.
type failingUserRepo struct {
	singleUserRepo
}

func (r *failingUserRepo) GetByEmail(context.Context, string) (*user.User, error) {
	return nil, errors.New("connection refused")
}

func TestAuth_StoreFailure(t *testing.T) {
	codec := auth.NewTokenCodec([]byte("0123456789abcdef0123456789abcdef"), time.Hour)
	resolver := auth.NewResolver(&failingUserRepo{}, codec)

	token, err := codec.Issue("alice@x.com")
	require.NoError(t, err)

	var caller *auth.Caller
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	middleware.Auth(resolver)(callerProbe(&caller)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code,
		"a store outage is a server error, not an authentication failure")
	assert.Nil(t, caller)
}

func TestAuth_ValidToken(t *testing.T) {
	mw, token := setupAuthMiddleware(t, user.RoleUser)

	var caller *auth.Caller
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	mw(callerProbe(&caller)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, caller)
	assert.Equal(t, "alice@x.com", caller.User.Email)
	assert.Equal(t, user.RoleUser, caller.Role())
}

func TestRequire_TechGate(t *testing.T) {
	mwAuth, token := setupAuthMiddleware(t, user.RoleUser)
	gate := middleware.Require(authz.OpUserManage)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	mwAuth(gate(next)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code, "USER should be denied user management")
}

func TestRequire_TechAllowed(t *testing.T) {
	mwAuth, token := setupAuthMiddleware(t, user.RoleTech)
	gate := middleware.Require(authz.OpUserManage)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	mwAuth(gate(next)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequire_NoCaller(t *testing.T) {
	gate := middleware.Require(authz.OpUserManage)

	rec := httptest.NewRecorder()
	gate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run without a caller")
	})).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
