package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/jobtracker/internal/server/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	router *gin.Engine
	users  *fakeUsers
	jobs   *fakeJobs
	tokens *auth.TokenService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	tokens := auth.NewTokenService(testSecret)
	env := &testEnv{users: newFakeUsers(tokens), jobs: newFakeJobs(), tokens: tokens}

	r, err := NewRouter(Deps{
		Users:          env.users,
		Jobs:           env.jobs,
		Tokens:         tokens,
		DB:             fakePinger{},
		Logger:         discardLogger(),
		AllowedOrigins: []string{"http://localhost:5173"},
	})
	require.NoError(t, err)
	env.router = r
	return env
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) signup(t *testing.T, email string) string {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/auth/register", "", map[string]string{"email": email, "password": "pw"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = e.do(t, http.MethodPost, "/auth/login", "", map[string]string{"email": email, "password": "pw"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp loginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestScenario_RegisterLoginCreate(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/auth/register", "", map[string]string{"email": "a@x.com", "password": "pw"})
	require.Equal(t, http.StatusCreated, rec.Code)
	reg := decode[map[string]any](t, rec)
	assert.Equal(t, "a@x.com", reg["email"])
	assert.NotEmpty(t, reg["id"])
	assert.NotContains(t, reg, "password_hash")

	rec = env.do(t, http.MethodPost, "/auth/login", "", map[string]string{"email": "a@x.com", "password": "pw"})
	require.Equal(t, http.StatusOK, rec.Code)
	token := decode[loginResponse](t, rec).Token

	rec = env.do(t, http.MethodPost, "/api/jobs", token, map[string]string{"title": "SWE", "company": "Acme"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	job := decode[map[string]any](t, rec)
	assert.Equal(t, "applied", job["status"])
	assert.Equal(t, []any{}, job["tags"])
	assert.Nil(t, job["date_applied"])
	assert.Equal(t, reg["id"], job["user_id"])
}

func TestScenario_CrossUserIs404(t *testing.T) {
	env := newTestEnv(t)
	t1 := env.signup(t, "one@x.com")
	t2 := env.signup(t, "two@x.com")

	rec := env.do(t, http.MethodPost, "/api/jobs", t1, map[string]string{"title": "SWE", "company": "Acme"})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decode[jobResponse](t, rec).ID

	rec = env.do(t, http.MethodGet, "/api/jobs/"+id, t2, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodPut, "/api/jobs/"+id, t2, map[string]string{"title": "x", "company": "y"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/jobs/"+id, t2, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/jobs", t2, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/api/jobs/"+id, t1, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJobsCRUD(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "a@x.com")

	rec := env.do(t, http.MethodPost, "/api/jobs", token, map[string]any{
		"title": "SWE", "company": "Acme", "link": "https://acme.test/1", "status": "interviewing",
		"date_applied": "2024-05-01", "notes": "n", "tags": []string{"go", " remote "},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[jobResponse](t, rec)
	require.NotNil(t, created.DateApplied)
	assert.Equal(t, "2024-05-01", *created.DateApplied)
	assert.Equal(t, []string{"go", " remote "}, created.Tags)

	rec = env.do(t, http.MethodGet, "/api/jobs/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created, decode[jobResponse](t, rec))

	rec = env.do(t, http.MethodPut, "/api/jobs/"+created.ID, token, map[string]any{
		"title": "Staff SWE", "company": "Acme", "status": "offered", "date_applied": "",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[jobResponse](t, rec)
	assert.Equal(t, "Staff SWE", updated.Title)
	assert.Equal(t, "offered", updated.Status)
	assert.Nil(t, updated.DateApplied)

	rec = env.do(t, http.MethodGet, "/api/jobs", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]jobResponse](t, rec), 1)

	rec = env.do(t, http.MethodDelete, "/api/jobs/"+created.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = env.do(t, http.MethodDelete, "/api/jobs/"+created.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestJobs_Validation(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "a@x.com")

	tests := []struct {
		name string
		body any
	}{
		{"empty title", map[string]string{"title": "", "company": "Acme"}},
		{"missing company", map[string]string{"title": "SWE"}},
		{"bad status", map[string]string{"title": "SWE", "company": "Acme", "status": "hired"}},
		{"bad date", map[string]string{"title": "SWE", "company": "Acme", "date_applied": "yesterday"}},
		{"malformed json", "{"},
		{"wrong types", `{"title": 1, "company": "Acme"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := env.jobs.calls
			rec := env.do(t, http.MethodPost, "/api/jobs", token, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.NotEmpty(t, decode[errorResponse](t, rec).Error)
			assert.Equal(t, before, env.jobs.calls)
		})
	}
}

func TestJobs_StorageFailureIs500(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "a@x.com")
	env.jobs.err = errors.New("db error: connection refused")

	rec := env.do(t, http.MethodGet, "/api/jobs", token, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal error"}`, rec.Body.String())
}

func TestAuth_RegisterErrors(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/auth/register", "", map[string]string{"email": "a@x.com", "password": "pw"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodPost, "/auth/register", "", map[string]string{"email": "a@x.com", "password": "pw"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"user already exists"}`, rec.Body.String())

	rec = env.do(t, http.MethodPost, "/auth/register", "", map[string]string{"email": "", "password": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/auth/register", "", "not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuth_LoginErrors(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "a@x.com")

	rec := env.do(t, http.MethodPost, "/auth/login", "", map[string]string{"email": "a@x.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"invalid credentials"}`, rec.Body.String())

	rec = env.do(t, http.MethodPost, "/auth/login", "", "[")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	r, err := NewRouter(Deps{
		Users: env.users, Jobs: env.jobs, Tokens: env.tokens,
		DB: fakePinger{err: errors.New("down")}, Logger: discardLogger(),
	})
	require.NoError(t, err)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCORS_Preflight(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/jobs", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.test")
	rec = httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCorsConfig(t *testing.T) {
	cfg, err := corsConfig(nil)
	require.NoError(t, err)
	assert.True(t, cfg.AllowAllOrigins)

	cfg, err = corsConfig([]string{"*"})
	require.NoError(t, err)
	assert.True(t, cfg.AllowAllOrigins)
	assert.Empty(t, cfg.AllowOrigins)

	_, err = corsConfig([]string{"localhost:5173"})
	assert.Error(t, err)

	_, err = NewRouter(Deps{AllowedOrigins: []string{"ftp//nope"}, Logger: discardLogger()})
	assert.Error(t, err)
}

func TestRequestIDIsEchoed(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))

	rec = env.do(t, http.MethodGet, "/health", "", nil)
	assert.Len(t, rec.Header().Get("X-Request-ID"), 32)
}
