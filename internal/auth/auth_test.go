package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Flexure/internal/repo"
)

type memRepo struct {
	mu    sync.Mutex
	users map[string]string
	ids   map[string]int
}

func newMemRepo() *memRepo {
	return &memRepo{users: map[string]string{}, ids: map[string]int{}}
}

func (m *memRepo) CreateUser(ctx context.Context, login, email, password string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[login]; ok {
		return 0, errors.New("duplicate login")
	}
	m.users[login] = password
	m.ids[login] = len(m.ids) + 1
	return m.ids[login], nil
}

func (m *memRepo) GetByLogin(ctx context.Context, login string) (int, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	hash, ok := m.users[login]
	if !ok {
		return 0, "", repo.ErrUserNotFound
	}
	return m.ids[login], hash, nil
}

func newEnv() *Authenv {
	return &Authenv{JWTkey: []byte("test-key"), Repo: newMemRepo()}
}

func post(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/api/x", strings.NewReader(body)))
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == CookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie", CookieName)
	return nil
}

func TestRegisterAndLogin(t *testing.T) {
	env := newEnv()

	rec := post(env.RegisterHandler, `{"login":" eng ","email":"eng@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	c := sessionCookie(t, rec)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)

	rec = post(env.RegisterHandler, `{"login":"eng","email":"eng@example.com","password":"secret1"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = post(env.AuthHandler, `{"login":"eng","password":"secret1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	sessionCookie(t, rec)

	rec = post(env.AuthHandler, `{"login":"eng","password":"wrong!!"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = post(env.AuthHandler, `{"login":"ghost","password":"secret1"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterValidation(t *testing.T) {
	env := newEnv()
	assert.Equal(t, http.StatusBadRequest, post(env.RegisterHandler, `{`).Code)
	assert.Equal(t, http.StatusBadRequest, post(env.RegisterHandler, `{"login":"a","email":"","password":"secret1"}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(env.RegisterHandler, `{"login":"a","email":"a@b","password":"123"}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(env.AuthHandler, `{"login":"","password":"x"}`).Code)
}

func TestAuthMiddleware(t *testing.T) {
	env := newEnv()
	var gotID int
	var gotLogin string
	protected := env.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = UserID(r.Context())
		gotLogin = UserLogin(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/user/tools", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/profile/", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/auth/", rec.Header().Get("Location"))

	reg := post(env.RegisterHandler, `{"login":"eng","email":"eng@example.com","password":"secret1"}`)
	req := httptest.NewRequest(http.MethodGet, "/api/user/tools", nil)
	req.AddCookie(sessionCookie(t, reg))
	rec = httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 1, gotID)
	assert.Equal(t, "eng", gotLogin)
}

func TestAuthMiddlewareRejectsForeignKey(t *testing.T) {
	env := newEnv()
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 1, "login": "eng",
	}).SignedString([]byte("other-key"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/user/tools", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: forged})
	rec := httptest.NewRecorder()
	env.AuthMiddleware(http.NotFoundHandler()).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRedirectIfLoggedIn(t *testing.T) {
	env := newEnv()
	page := env.RedirectIfLoggedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	page.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	reg := post(env.RegisterHandler, `{"login":"eng","email":"eng@example.com","password":"secret1"}`)
	req := httptest.NewRequest(http.MethodGet, "/auth/", nil)
	req.AddCookie(sessionCookie(t, reg))
	rec = httptest.NewRecorder()
	page.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestLimitMiddleware(t *testing.T) {
	limiter := NewIPRateLimiter(0.001, 2)
	h := limiter.LimitMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/login", nil)
		req.RemoteAddr = "10.0.0.1:" + []string{"1000", "1001", "1002"}[i]
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	req := httptest.NewRequest(http.MethodGet, "/api/login", nil)
	req.RemoteAddr = "10.0.0.2:1000"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
