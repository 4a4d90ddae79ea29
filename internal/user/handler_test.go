package user_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saulo-duarte/quizforge/internal/auth"
	"github.com/saulo-duarte/quizforge/internal/user"
)

func TestHandler_RegisterLoginMe(t *testing.T) {
	svc, _ := newService(t)
	h := user.NewHandler(svc)

	body := `{"username":"margaret","password":"apollo11"}`

	rec := httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created user.AuthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.Equal(t, "margaret", created.User.Username)
	assert.NotEmpty(t, created.Token)

	var jwtCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.CookieName {
			jwtCookie = c
		}
	}
	require.NotNil(t, jwtCookie)
	assert.True(t, jwtCookie.HttpOnly)

	rec = httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body)))
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"margaret","password":"wrong-pass"}`)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)

	var logged user.AuthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&logged))

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+logged.Token)
	rec = httptest.NewRecorder()
	auth.AuthMiddleware(http.HandlerFunc(h.GetUser)).ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var me user.UserResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&me))
	assert.Equal(t, created.User.ID, me.ID)
	assert.Empty(t, me.LastQuizDate)
}

func TestHandler_RegisterValidation(t *testing.T) {
	svc, _ := newService(t)
	h := user.NewHandler(svc)

	cases := map[string]string{
		"malformed":      `{"username":`,
		"short username": `{"username":"ab","password":"secret123"}`,
		"short password": `{"username":"alan","password":"123"}`,
		"missing fields": `{}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.Register(rec, httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body)))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}
