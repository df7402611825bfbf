package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type memUsers struct {
	mu    sync.Mutex
	byID  map[string]*entity.User
	byKey map[string]*entity.User
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byKey[u.Email]; ok {
		return entity.ErrEmailAlreadyExists
	}
	m.byID[u.ID], m.byKey[u.Email] = u, u
	return nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byKey[entity.NormalizeEmail(email)]; ok {
		return u, nil
	}
	return nil, entity.ErrUserNotFound
}

func (m *memUsers) FindByID(_ context.Context, id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byID[id]; ok {
		return u, nil
	}
	return nil, entity.ErrUserNotFound
}

type memSessions struct {
	mu   sync.Mutex
	data map[string]*entity.Session
}

func (m *memSessions) Create(_ context.Context, s *entity.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[s.Token] = s
	return nil
}

func (m *memSessions) FindByToken(_ context.Context, token string) (*entity.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.data[token]; ok {
		return s, nil
	}
	return nil, entity.ErrUnauthenticated
}

func (m *memSessions) Delete(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, token)
	return nil
}

func (m *memSessions) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	return 0, nil
}

func newAuthHandler(limit int) (*AuthHandler, *memSessions) {
	sessions := &memSessions{data: map[string]*entity.Session{}}
	auth := usecase.NewAuthUseCase(&memUsers{byID: map[string]*entity.User{}, byKey: map[string]*entity.User{}}, sessions, time.Hour)
	auth.HashCost = bcrypt.MinCost
	return NewAuthHandler(auth, NewRateLimiter(limit, time.Minute), newRegistry(newFakeCRM()), zap.NewNop()), sessions
}

func TestSignUpLoginMeLogout(t *testing.T) {
	h, sessions := newAuthHandler(10)
	body := `{"email":"ana@acme.com","password":"segredo123"}`

	rec := httptest.NewRecorder()
	h.SignUp(rec, httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = httptest.NewRecorder()
	h.SignUp(rec, httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(body)))
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.SessionCookie, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	token := cookies[0].Value
	assert.Contains(t, sessions.data, token)

	me := middleware.RequireUser(h.Auth)(http.HandlerFunc(h.Me))
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	me.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ana@acme.com")

	req = httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	h.Logout(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.NotContains(t, sessions.data, token)
}

func TestLogoutDropsCachedBoard(t *testing.T) {
	h, _ := newAuthHandler(10)
	body := `{"email":"bia@acme.com","password":"segredo123"}`

	rec := httptest.NewRecorder()
	h.SignUp(rec, httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code)
	var user entity.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))

	rec = httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)
	token := rec.Result().Cookies()[0].Value

	h.Boards.Get(user.ID).Load(nil)
	h.Boards.Get("someone-else").Load(nil)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	h.Logout(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)

	_, ok := h.Boards.Peek(user.ID)
	assert.False(t, ok)
	_, ok = h.Boards.Peek("someone-else")
	assert.True(t, ok)
}

func TestLoginWrongPassword(t *testing.T) {
	h, _ := newAuthHandler(10)
	h.SignUp(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/signup",
		strings.NewReader(`{"email":"ana@acme.com","password":"segredo123"}`)))

	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"email":"ana@acme.com","password":"outra-senha"}`)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), usecase.CodeInvalidCredentials)
	assert.Empty(t, rec.Result().Cookies())
}

func TestLoginIsRateLimited(t *testing.T) {
	h, _ := newAuthHandler(2)
	send := func() int {
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"x@y.com","password":"12345678"}`))
		req.RemoteAddr = "203.0.113.9:5555"
		rec := httptest.NewRecorder()
		h.Login(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusUnauthorized, send())
	assert.Equal(t, http.StatusUnauthorized, send())
	assert.Equal(t, http.StatusTooManyRequests, send())
}
